package draft

import (
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/idgen"
	"github.com/starford/raido/internal/models"
)

// Finalize transforms a draft into a persistable journey snapshot. The
// journey name is the sole required field; an empty or whitespace-only
// name fails with a ValidationError and no snapshot is produced.
//
// The snapshot gets a fresh identifier, createdAt = updatedAt = now,
// and status "draft". Stage order is derived from sequence position,
// and every touchpoint is normalized to its fully-defaulted shape.
// Finalize is pure given the injected generator and clock and never
// mutates the draft.
func Finalize(d *Draft, gen idgen.Generator, clock idgen.Clock) (*models.Journey, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, &apperr.ValidationError{Field: "name", Msg: "journey name is required"}
	}

	now := clock.Now().UTC().Format(time.RFC3339)
	j := &models.Journey{
		ID:          gen.NewID(),
		Name:        d.Name,
		Description: d.Description,
		CoverImage:  d.CoverImage,
		PersonaIDs:  append([]string{}, d.PersonaIDs...),
		State:       d.State,
		Status:      models.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
		Stages:      make([]models.Stage, len(d.Stages)),
	}

	for i, s := range d.Stages {
		tps := make([]models.Touchpoint, len(s.Touchpoints))
		for k, tp := range s.Touchpoints {
			tps[k] = models.NormalizeTouchpoint(tp)
		}
		j.Stages[i] = models.Stage{
			ID:          s.ID,
			Name:        s.Name,
			Order:       i,
			Touchpoints: tps,
		}
	}
	return j, nil
}
