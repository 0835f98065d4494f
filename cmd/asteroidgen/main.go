// asteroidgen is a CLI utility for generating procedural asteroids without
// a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Faultbox/spaaace/internal/asteroid"
	"github.com/Faultbox/spaaace/internal/config"
	"github.com/Faultbox/spaaace/internal/logger"
	"github.com/Faultbox/spaaace/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "stats":
		err = cmdStats(args, os.Stdout)
	case "obj":
		err = cmdOBJ(args, os.Stdout)
	case "field":
		err = cmdField(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`asteroidgen - procedural asteroid generator

Usage:
  asteroidgen <command> [options]

Commands:
  stats   Generate one asteroid and print its stats
  obj     Generate one asteroid and write it as Wavefront OBJ
  field   Generate a field of asteroids in parallel and print a table
  config  Write the default configuration as YAML

Common options:
  -config <file>      Load settings from a YAML config file
  -seed <n>           Global seed (-1 picks a random seed)
  -subdivisions <n>   Icosphere subdivision level
  -v                  Log generation details

Examples:
  asteroidgen stats -seed 42
  asteroidgen obj -seed 42 -subdivisions 4 -o rock.obj
  asteroidgen field -count 32 -workers 8 -seed 7
  asteroidgen config -o spaaace.yaml`)
}

// common holds the flags shared by generating commands.
type common struct {
	configPath   string
	seed         int
	subdivisions int
	verbose      bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to config file")
	fs.IntVar(&c.seed, "seed", -1, "Global seed (-1 = random)")
	fs.IntVar(&c.subdivisions, "subdivisions", -1, "Icosphere subdivision level (-1 = config)")
	fs.BoolVar(&c.verbose, "v", false, "Log generation details")
}

// load returns the config with flag overrides applied.
func (c *common) load() (*config.Config, error) {
	if c.verbose {
		if err := logger.InitWithFileConfig("debug", logger.FileConfig{}, true); err != nil {
			return nil, err
		}
	}

	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(c.configPath); err != nil {
			return nil, err
		}
	}
	if c.seed >= 0 {
		cfg.Asteroid.GlobalSeed = c.seed
		cfg.Field.Seed = c.seed
	}
	if c.subdivisions >= 0 {
		cfg.Asteroid.Subdivisions = c.subdivisions
	}
	return cfg, nil
}

func generate(cfg asteroid.GenerationConfig) (*asteroid.Asteroid, *asteroid.MemorySink, error) {
	sink := &asteroid.MemorySink{}
	a, err := asteroid.NewGenerator(cfg, asteroid.WithMeshSink(sink), asteroid.WithLogger(logger.Named("asteroid"))).Generate()
	return a, sink, err
}

func cmdStats(args []string, out io.Writer) error {
	var c common
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	c.register(fs)
	fs.Parse(args)

	cfg, err := c.load()
	if err != nil {
		return err
	}
	a, _, err := generate(cfg.Asteroid)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed:         %d\n", a.GlobalSeed)
	fmt.Fprintf(out, "Layer seeds:  %v\n", a.Stats.LayerSeeds)
	fmt.Fprintf(out, "Radius:       %.2f\n", a.Stats.Radius)
	fmt.Fprintf(out, "Volume:       %.6g\n", a.Stats.Volume)
	fmt.Fprintf(out, "Mass:         %.6g kg\n", a.Stats.Mass)
	fmt.Fprintf(out, "Vertices:     %d\n", len(a.Vertices))
	fmt.Fprintf(out, "Triangles:    %d\n", len(a.Triangles)/3)
	fmt.Fprintf(out, "Hull bounds:  %v .. %v\n", a.Hull.Min, a.Hull.Max)
	return nil
}

func cmdOBJ(args []string, out io.Writer) error {
	var c common
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	c.register(fs)
	output := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	cfg, err := c.load()
	if err != nil {
		return err
	}
	a, sink, err := generate(cfg.Asteroid)
	if err != nil {
		return err
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	mesh := &formats.OBJMesh{
		Name: fmt.Sprintf("asteroid_%d", a.GlobalSeed),
		Comments: []string{
			"asteroidgen",
			fmt.Sprintf("seed %d radius %.2f mass %.6g", a.GlobalSeed, a.Stats.Radius, a.Stats.Mass),
		},
		Positions: sink.Mesh.Positions,
		Normals:   sink.Mesh.Normals,
		Triangles: sink.Mesh.Triangles,
	}
	if err := formats.WriteOBJ(out, mesh); err != nil {
		return err
	}
	if *output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d vertices, %d triangles)\n", *output, len(mesh.Positions), len(mesh.Triangles)/3)
	}
	return nil
}

func cmdField(args []string, out io.Writer) error {
	var c common
	fs := flag.NewFlagSet("field", flag.ExitOnError)
	c.register(fs)
	count := fs.Int("count", -1, "Number of asteroids (-1 = config)")
	workers := fs.Int("workers", -1, "Parallel workers (0 = GOMAXPROCS, -1 = config)")
	fs.Parse(args)

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if *count >= 0 {
		cfg.Field.Count = *count
	}
	if *workers >= 0 {
		cfg.Field.Workers = *workers
	}

	field := asteroid.Field{
		Config: cfg.Field,
		Base:   cfg.Asteroid,
		Log:    logger.Named("field"),
	}
	start := time.Now()
	members, err := field.Generate(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tseed\tradius\tmass (kg)\tx\ty\tz\t")
	var total float64
	for _, m := range members {
		a := m.Asteroid
		total += a.Stats.Mass
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.4g\t%.0f\t%.0f\t%.0f\t\n",
			m.Index, a.GlobalSeed, a.Stats.Radius, a.Stats.Mass,
			m.Position.X(), m.Position.Y(), m.Position.Z())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d asteroids, total mass %.4g kg, generated in %s\n", len(members), total, elapsed.Round(time.Millisecond))
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	cfg := config.Default()
	if *output != "" {
		if err := cfg.SaveTo(*output); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *output)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
