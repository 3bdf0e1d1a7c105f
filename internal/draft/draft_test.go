package draft

import (
	"testing"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/testutil"
)

func TestNewSeedsDefaultStage(t *testing.T) {
	d := New(&testutil.SeqGen{})

	if len(d.Stages) != 1 {
		t.Fatalf("stages = %d, want 1", len(d.Stages))
	}
	if d.Stages[0].Name != "Awareness" {
		t.Errorf("stage name = %q", d.Stages[0].Name)
	}
	if len(d.Stages[0].Touchpoints) != 1 {
		t.Fatalf("touchpoints = %d, want 1", len(d.Stages[0].Touchpoints))
	}
	tp := d.Stages[0].Touchpoints[0]
	if tp.Name != "Initial Contact" || tp.Emotion != models.EmotionNeutral {
		t.Errorf("seed touchpoint = %+v", tp)
	}
	if d.State != models.StateDraft {
		t.Errorf("state = %q, want draft", d.State)
	}
}

func TestAddStageNumbering(t *testing.T) {
	gen := &testutil.SeqGen{}
	var stages []models.Stage

	stages = AddStage(stages, gen)
	stages = AddStage(stages, gen)
	stages = AddStage(stages, gen)

	if len(stages) != 3 {
		t.Fatalf("len = %d, want 3", len(stages))
	}
	want := []string{"Stage 1", "Stage 2", "Stage 3"}
	for i, s := range stages {
		if s.Name != want[i] {
			t.Errorf("stages[%d].Name = %q, want %q", i, s.Name, want[i])
		}
		if s.Touchpoints == nil || len(s.Touchpoints) != 0 {
			t.Errorf("stages[%d] should start with an empty touchpoint list", i)
		}
	}
}

func TestAddStageDoesNotMutateInput(t *testing.T) {
	gen := &testutil.SeqGen{}
	orig := AddStage(nil, gen)
	_ = AddStage(orig, gen)

	if len(orig) != 1 {
		t.Errorf("original sequence mutated, len = %d", len(orig))
	}
}

func TestRenameStage(t *testing.T) {
	gen := &testutil.SeqGen{}
	stages := AddStage(AddStage(nil, gen), gen)

	renamed := RenameStage(stages, stages[1].ID, "Consideration")
	if renamed[1].Name != "Consideration" {
		t.Errorf("name = %q", renamed[1].Name)
	}
	if renamed[0].Name != "Stage 1" {
		t.Errorf("other stage touched: %q", renamed[0].Name)
	}
	// Input untouched.
	if stages[1].Name != "Stage 2" {
		t.Errorf("input mutated: %q", stages[1].Name)
	}
}

func TestRenameStageUnknownIDIsNoop(t *testing.T) {
	gen := &testutil.SeqGen{}
	stages := AddStage(nil, gen)

	out := RenameStage(stages, "missing", "X")
	if out[0].Name != stages[0].Name {
		t.Errorf("unknown id should leave sequence unchanged")
	}
}

func TestMergeTouchpointReplacesInPlace(t *testing.T) {
	tps := []models.Touchpoint{
		{ID: "a", Name: "First"},
		{ID: "b", Name: "Second"},
		{ID: "c", Name: "Third"},
	}

	out := MergeTouchpoint(tps, models.Touchpoint{ID: "b", Name: "Edited"})
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[1].ID != "b" || out[1].Name != "Edited" {
		t.Errorf("out[1] = %+v", out[1])
	}
	if out[0].Name != "First" || out[2].Name != "Third" {
		t.Errorf("neighbours touched: %+v", out)
	}
}

func TestMergeTouchpointAppendsNew(t *testing.T) {
	tps := []models.Touchpoint{{ID: "a"}}

	out := MergeTouchpoint(tps, models.Touchpoint{ID: "z", Name: "New"})
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[1].ID != "z" {
		t.Errorf("appended at wrong position: %+v", out)
	}
}

func TestUpdateStageTouchpoints(t *testing.T) {
	gen := &testutil.SeqGen{}
	stages := AddStage(AddStage(nil, gen), gen)

	tps := []models.Touchpoint{{ID: "x", Name: "Call"}}
	out := UpdateStageTouchpoints(stages, stages[0].ID, tps)
	if len(out[0].Touchpoints) != 1 || out[0].Touchpoints[0].ID != "x" {
		t.Errorf("touchpoints not replaced: %+v", out[0].Touchpoints)
	}
	if len(out[1].Touchpoints) != 0 {
		t.Errorf("wrong stage updated")
	}
}
