package states

import (
	"errors"
	"testing"

	"github.com/Faultbox/spaaace/internal/engine/input"
)

type fakeState struct {
	name  string
	log   *[]string
	enter error
}

func (s *fakeState) Enter() error {
	*s.log = append(*s.log, s.name+":enter")
	return s.enter
}

func (s *fakeState) Exit() error {
	*s.log = append(*s.log, s.name+":exit")
	return nil
}

func (s *fakeState) Update(float64) error {
	*s.log = append(*s.log, s.name+":update")
	return nil
}

func (s *fakeState) Render() error {
	*s.log = append(*s.log, s.name+":render")
	return nil
}

func (s *fakeState) HandleInput(input.Event) error {
	*s.log = append(*s.log, s.name+":input")
	return nil
}

func TestManagerTransitions(t *testing.T) {
	var log []string
	a := &fakeState{name: "a", log: &log}
	b := &fakeState{name: "b", log: &log}

	m := NewManager()
	if err := m.Update(0.1); err != nil || m.Render() != nil || m.HandleInput(input.Event{}) != nil {
		t.Fatal("empty manager returned an error")
	}

	m.Change(a)
	if m.Current() != nil {
		t.Fatal("Change applied before Update")
	}
	m.Update(0.1)
	m.HandleInput(input.Event{Type: input.EventKeyDown})
	m.Change(b)
	m.Update(0.1)
	m.Render()

	want := []string{"a:enter", "a:update", "a:input", "a:exit", "b:enter", "b:update", "b:render"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}
	if m.Current() != b {
		t.Error("current state is not b")
	}
}

func TestManagerEnterError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	m := NewManager()
	m.Change(&fakeState{name: "bad", log: &log, enter: boom})
	if err := m.Update(0); !errors.Is(err, boom) {
		t.Errorf("Update = %v, want %v", err, boom)
	}
	if len(log) != 1 {
		t.Errorf("state updated after failed Enter: %v", log)
	}
}
