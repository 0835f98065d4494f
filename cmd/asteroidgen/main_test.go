package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/spaaace/internal/config"
	"github.com/Faultbox/spaaace/pkg/formats"
)

func TestCmdStats(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdStats([]string{"-seed", "42", "-subdivisions", "1"}, &buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Seed:         42", "Vertices:     42", "Triangles:    80"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestCmdOBJ(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdOBJ([]string{"-seed", "7", "-subdivisions", "1"}, &buf); err != nil {
		t.Fatal(err)
	}

	mesh, err := formats.ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("output is not readable OBJ: %v", err)
	}
	if mesh.Name != "asteroid_7" {
		t.Errorf("object name = %q", mesh.Name)
	}
	if len(mesh.Positions) != 42 || len(mesh.Normals) != 42 || len(mesh.Triangles) != 240 {
		t.Errorf("got %d vertices, %d normals, %d indices", len(mesh.Positions), len(mesh.Normals), len(mesh.Triangles))
	}
}

func TestCmdField(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"-seed", "5", "-subdivisions", "0", "-count", "3", "-workers", "2"}
	if err := cmdField(args, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "3 asteroids") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}

func TestCmdConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdConfig(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "subdivisions:") {
		t.Errorf("default config missing asteroid section:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "spaaace.yaml")
	if err := cmdConfig([]string{"-o", path}, &buf); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Window.Title != config.Default().Window.Title {
		t.Errorf("title = %q", cfg.Window.Title)
	}
}

func TestCmdStatsBadConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdStats([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &buf); err == nil {
		t.Error("missing config file accepted")
	}
}
