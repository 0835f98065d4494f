package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/physics"
)

type recorder struct {
	name  string
	log   *[]string
	body  *physics.Body
	fail  error
	inits int
}

func (r *recorder) Init() error {
	r.inits++
	*r.log = append(*r.log, "init:"+r.name)
	return r.fail
}

func (r *recorder) Update(float64) error {
	*r.log = append(*r.log, "update:"+r.name)
	return nil
}

type lateRecorder struct {
	recorder
	seenX float64
}

func (r *lateRecorder) LateUpdate(float64) error {
	*r.log = append(*r.log, "late:"+r.name)
	r.seenX = r.body.Position.X()
	return nil
}

func (r *lateRecorder) PhysicsBody() *physics.Body {
	return r.body
}

func TestSceneOrder(t *testing.T) {
	var log []string
	s := New(nil, zap.NewNop())

	body := physics.NewBody()
	body.Velocity = mgl64.Vec3{2, 0, 0}
	a := &recorder{name: "a", log: &log}
	b := &lateRecorder{recorder: recorder{name: "b", log: &log, body: body}}

	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(b); err != nil {
		t.Fatal(err)
	}
	if s.World().Len() != 1 {
		t.Fatalf("world has %d bodies, want 1", s.World().Len())
	}

	if err := s.Update(0.5); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Update before Init = %v, want ErrNotInitialized", err)
	}

	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(0.5); err != nil {
		t.Fatal(err)
	}

	want := []string{"init:a", "init:b", "update:a", "update:b", "late:b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}
	if a.inits != 1 {
		t.Errorf("actor initialized %d times", a.inits)
	}
	// Late updates observe the stepped body.
	if b.seenX != 1 {
		t.Errorf("late update saw x=%v, want 1", b.seenX)
	}
}

func TestSceneInitFailure(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	s := New(nil, zap.NewNop())
	s.Add(&recorder{name: "a", log: &log, fail: boom})
	s.Add(&recorder{name: "b", log: &log})

	if err := s.Init(); !errors.Is(err, boom) {
		t.Fatalf("Init = %v, want %v", err, boom)
	}
	if len(log) != 1 {
		t.Errorf("init continued past failure: %v", log)
	}
}

func TestSceneAddAfterInit(t *testing.T) {
	var log []string
	s := New(nil, zap.NewNop())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	late := &recorder{name: "late", log: &log}
	if err := s.Add(late); err != nil {
		t.Fatal(err)
	}
	if late.inits != 1 {
		t.Error("actor added after Init was not initialized")
	}
	if len(s.Actors()) != 1 {
		t.Errorf("Actors() = %d, want 1", len(s.Actors()))
	}

	boom := errors.New("boom")
	if err := s.Add(&recorder{name: "bad", log: &log, fail: boom}); !errors.Is(err, boom) {
		t.Errorf("Add = %v, want %v", err, boom)
	}
	if len(s.Actors()) != 1 {
		t.Error("failed actor was scheduled")
	}
}
