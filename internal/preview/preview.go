// Package preview renders a read-only projection of a journey draft.
package preview

import (
	"fmt"
	"strings"

	"github.com/starford/raido/internal/models"
)

// Emotion markers used in the rendered layout.
var emotionMarkers = map[string]string{
	models.EmotionPositive: "(+)",
	models.EmotionNeutral:  "(=)",
	models.EmotionNegative: "(-)",
}

// Render produces a Markdown layout of the draft canvas. It is a pure
// function of its inputs and never mutates them; callers re-render
// whenever any input changes.
func Render(stages []models.Stage, personaIDs []string, state, coverImage string) string {
	var sb strings.Builder
	sb.WriteString("# Journey Preview\n\n")

	sb.WriteString(fmt.Sprintf("State: %s\n", displayState(state)))
	if coverImage != "" {
		sb.WriteString(fmt.Sprintf("Cover: %s\n", coverImage))
	}
	if len(personaIDs) > 0 {
		sb.WriteString(fmt.Sprintf("Personas: %s\n", strings.Join(personaIDs, ", ")))
	}
	sb.WriteString("\n")

	for i, stage := range stages {
		sb.WriteString(fmt.Sprintf("## Stage %d: %s\n\n", i+1, stage.Name))
		if len(stage.Touchpoints) == 0 {
			sb.WriteString("_No touchpoints yet._\n\n")
			continue
		}
		for _, tp := range stage.Touchpoints {
			marker := emotionMarkers[tp.Emotion]
			if marker == "" {
				marker = emotionMarkers[models.EmotionNeutral]
			}
			sb.WriteString(fmt.Sprintf("- %s %s", marker, tp.Name))
			if tp.Description != "" {
				sb.WriteString(": " + tp.Description)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		if i < len(stages)-1 {
			sb.WriteString("↓\n\n")
		}
	}

	return sb.String()
}

func displayState(state string) string {
	switch state {
	case models.StateCurrent:
		return "Current State"
	case models.StateFuture:
		return "To-Be State"
	default:
		return "Draft"
	}
}
