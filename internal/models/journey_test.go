package models

import "testing"

func TestNormalizeTouchpointDefaults(t *testing.T) {
	tp := NormalizeTouchpoint(Touchpoint{ID: "t1", Name: "Call"})

	if tp.Emotion != EmotionNeutral {
		t.Errorf("emotion = %q, want neutral", tp.Emotion)
	}
	if tp.Insights == nil {
		t.Fatal("insights not materialized")
	}
	if tp.Insights.Needs == nil || tp.Insights.PainPoints == nil || tp.Insights.Opportunities == nil {
		t.Errorf("insight lists must be non-nil: %+v", tp.Insights)
	}
	if len(tp.Insights.Needs) != 0 {
		t.Errorf("needs = %v, want empty", tp.Insights.Needs)
	}
	if tp.Metrics == nil {
		t.Fatal("metrics not materialized")
	}
	if tp.Metrics.Satisfaction != 0 || tp.Metrics.Effort != 0 || tp.Metrics.Completion != 0 {
		t.Errorf("metrics = %+v, want zeros", tp.Metrics)
	}
}

func TestNormalizeTouchpointPreservesValues(t *testing.T) {
	tp := NormalizeTouchpoint(Touchpoint{
		ID:      "t1",
		Name:    "Demo",
		Emotion: EmotionPositive,
		Insights: &Insights{
			Needs:      []string{"speed"},
			PainPoints: []string{"latency"},
		},
		Metrics: &Metrics{Satisfaction: 4.5, Effort: 2, Completion: 1},
	})

	if tp.Emotion != EmotionPositive {
		t.Errorf("emotion = %q", tp.Emotion)
	}
	if len(tp.Insights.Needs) != 1 || tp.Insights.Needs[0] != "speed" {
		t.Errorf("needs = %v", tp.Insights.Needs)
	}
	if tp.Insights.Opportunities == nil {
		t.Error("missing list should still be materialized")
	}
	if tp.Metrics.Satisfaction != 4.5 {
		t.Errorf("metrics = %+v", tp.Metrics)
	}
}

func TestNormalizeTouchpointDoesNotShareShapes(t *testing.T) {
	in := Touchpoint{ID: "t1", Insights: &Insights{Needs: []string{"a"}}, Metrics: &Metrics{Effort: 1}}
	out := NormalizeTouchpoint(in)

	out.Insights.PainPoints = append(out.Insights.PainPoints, "x")
	out.Metrics.Effort = 99

	if in.Insights.PainPoints != nil {
		t.Error("normalize must copy insights, not alias them")
	}
	if in.Metrics.Effort != 1 {
		t.Error("normalize must copy metrics, not alias them")
	}
}
