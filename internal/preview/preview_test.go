package preview

import (
	"strings"
	"testing"

	"github.com/starford/raido/internal/models"
)

func sampleStages() []models.Stage {
	return []models.Stage{
		{
			ID:   "s1",
			Name: "Awareness",
			Touchpoints: []models.Touchpoint{
				{ID: "t1", Name: "Initial Contact", Description: "First interaction", Emotion: models.EmotionNeutral},
				{ID: "t2", Name: "Churn risk", Emotion: models.EmotionNegative},
			},
		},
		{ID: "s2", Name: "Decision", Touchpoints: []models.Touchpoint{}},
	}
}

func TestRenderLayout(t *testing.T) {
	out := Render(sampleStages(), []string{"p1", "p2"}, models.StateCurrent, "/covers/hero.png")

	for _, want := range []string{
		"# Journey Preview",
		"State: Current State",
		"Cover: /covers/hero.png",
		"Personas: p1, p2",
		"## Stage 1: Awareness",
		"(=) Initial Contact: First interaction",
		"(-) Churn risk",
		"## Stage 2: Decision",
		"_No touchpoints yet._",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderOmitsEmptyOptionals(t *testing.T) {
	out := Render(nil, nil, models.StateDraft, "")
	if strings.Contains(out, "Cover:") || strings.Contains(out, "Personas:") {
		t.Errorf("empty optionals should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "State: Draft") {
		t.Errorf("missing state line:\n%s", out)
	}
}

func TestRenderDoesNotMutateInputs(t *testing.T) {
	stages := sampleStages()
	personas := []string{"p1"}
	_ = Render(stages, personas, models.StateDraft, "")

	if stages[0].Touchpoints[0].Name != "Initial Contact" || personas[0] != "p1" {
		t.Error("render mutated its inputs")
	}
}

func TestRenderUnknownEmotionFallsBackToNeutral(t *testing.T) {
	stages := []models.Stage{{ID: "s", Name: "S", Touchpoints: []models.Touchpoint{{Name: "X", Emotion: ""}}}}
	out := Render(stages, nil, models.StateDraft, "")
	if !strings.Contains(out, "(=) X") {
		t.Errorf("expected neutral marker:\n%s", out)
	}
}
