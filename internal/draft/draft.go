// Package draft implements the in-memory journey authoring model: the
// working draft, the stage edit operations, the touchpoint editor
// session, and the finalize transformation that produces a persistable
// snapshot.
package draft

import (
	"fmt"

	"github.com/starford/raido/internal/idgen"
	"github.com/starford/raido/internal/models"
)

// Draft is the not-yet-persisted working copy of a journey. Stage Order
// fields are ignored until finalize; sequence position is authoritative.
type Draft struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CoverImage  string         `json:"coverImage,omitempty"`
	PersonaIDs  []string       `json:"personaIds"`
	State       string         `json:"state"`
	Stages      []models.Stage `json:"stages"`
}

// New returns a draft seeded with one "Awareness" stage containing one
// neutral "Initial Contact" touchpoint, mirroring the canvas a user
// starts from.
func New(gen idgen.Generator) *Draft {
	return &Draft{
		State:      models.StateDraft,
		PersonaIDs: []string{},
		Stages: []models.Stage{
			{
				ID:   gen.NewID(),
				Name: "Awareness",
				Touchpoints: []models.Touchpoint{
					{
						ID:          gen.NewID(),
						Name:        "Initial Contact",
						Description: "First interaction with the product",
						Emotion:     models.EmotionNeutral,
					},
				},
			},
		},
	}
}

// AddStage appends a new empty stage named after the count at call
// time ("Stage N", 1-based). Names are never renumbered afterwards.
// Existing stages are not mutated.
func AddStage(stages []models.Stage, gen idgen.Generator) []models.Stage {
	out := make([]models.Stage, len(stages), len(stages)+1)
	copy(out, stages)
	return append(out, models.Stage{
		ID:          gen.NewID(),
		Name:        fmt.Sprintf("Stage %d", len(stages)+1),
		Touchpoints: []models.Touchpoint{},
	})
}

// RenameStage replaces the name of the stage with the given id. An
// unknown id is tolerated silently: the sequence is returned unchanged.
func RenameStage(stages []models.Stage, stageID, newName string) []models.Stage {
	out := make([]models.Stage, len(stages))
	for i, s := range stages {
		if s.ID == stageID {
			s.Name = newName
		}
		out[i] = s
	}
	return out
}

// UpdateStageTouchpoints replaces one stage's touchpoint sequence
// wholesale. Unknown stage ids are tolerated silently.
func UpdateStageTouchpoints(stages []models.Stage, stageID string, tps []models.Touchpoint) []models.Stage {
	out := make([]models.Stage, len(stages))
	for i, s := range stages {
		if s.ID == stageID {
			s.Touchpoints = tps
		}
		out[i] = s
	}
	return out
}

// MergeTouchpoint folds an editor result into a touchpoint sequence:
// if an entry with the same id exists it is replaced in place, keeping
// its position; otherwise the touchpoint is appended.
func MergeTouchpoint(tps []models.Touchpoint, tp models.Touchpoint) []models.Touchpoint {
	out := make([]models.Touchpoint, len(tps))
	copy(out, tps)
	for i, existing := range out {
		if existing.ID == tp.ID {
			out[i] = tp
			return out
		}
	}
	return append(out, tp)
}

// StageByID returns the stage with the given id, or nil.
func StageByID(stages []models.Stage, stageID string) *models.Stage {
	for i := range stages {
		if stages[i].ID == stageID {
			return &stages[i]
		}
	}
	return nil
}
