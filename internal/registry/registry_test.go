package registry

import (
	"testing"

	"github.com/vovakirdan/snake-rival/internal/core"
)

type fakeGame struct{ id string }

func (f fakeGame) ID() string                           { return f.id }
func (f fakeGame) Title() string                        { return "Fake " + f.id }
func (f fakeGame) Reset(core.RuntimeConfig)             {}
func (f fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (f fakeGame) Render(*core.Screen)                  {}
func (f fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_fake", func() Game { return fakeGame{id: "zz_fake"} })

	if !Exists("zz_fake") {
		t.Fatal("registered game not found")
	}

	g, err := Create("zz_fake")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_fake" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_fake" {
			found = info.Title == "Fake zz_fake"
		}
	}
	if !found {
		t.Error("List() missing the fake game or its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return fakeGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return fakeGame{id: "zz_dup"} })
}
