// Package composer orchestrates a single journey authoring session: it
// owns the draft, the touchpoint editor, and the guarded save-to-store
// handoff.
package composer

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/draft"
	"github.com/starford/raido/internal/idgen"
	"github.com/starford/raido/internal/models"
)

// JourneyStore is the persistence collaborator contract. It is called
// exactly once per save attempt; idempotency across retries is not
// guaranteed at this layer.
type JourneyStore interface {
	CreateJourney(ctx context.Context, j *models.Journey) error
}

// Composer holds one draft journey and its editing state.
//
// All mutations are synchronous responses to discrete user actions.
// The saving flag is not a lock over shared data, merely a debounce
// that rejects a second save while one is outstanding; the mutex keeps
// the flag and the draft consistent under concurrent HTTP handlers.
type Composer struct {
	mu     sync.Mutex
	id     string
	d      *draft.Draft
	editor draft.Editor
	gen    idgen.Generator
	clock  idgen.Clock
	store  JourneyStore
	saving bool
	saved  bool
}

// New creates a composer with a freshly seeded draft.
func New(gen idgen.Generator, clock idgen.Clock, store JourneyStore) *Composer {
	return &Composer{
		id:    gen.NewID(),
		d:     draft.New(gen),
		gen:   gen,
		clock: clock,
		store: store,
	}
}

// ID returns the session identifier.
func (c *Composer) ID() string {
	return c.id
}

// Draft returns a snapshot copy of the current draft.
func (c *Composer) Draft() draft.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := *c.d
	snap.PersonaIDs = append([]string{}, c.d.PersonaIDs...)
	snap.Stages = append([]models.Stage{}, c.d.Stages...)
	return snap
}

// Details carries the scalar draft fields a caller may replace. Nil
// pointers leave the corresponding field untouched. No validation
// happens here; the name is only checked at save time.
type Details struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	PersonaIDs  *[]string `json:"personaIds,omitempty"`
	State       *string   `json:"state,omitempty"`
}

// SetDetails replaces the provided scalar draft fields.
func (c *Composer) SetDetails(d Details) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d.Name != nil {
		c.d.Name = *d.Name
	}
	if d.Description != nil {
		c.d.Description = *d.Description
	}
	if d.CoverImage != nil {
		c.d.CoverImage = *d.CoverImage
	}
	if d.PersonaIDs != nil {
		c.d.PersonaIDs = append([]string{}, (*d.PersonaIDs)...)
	}
	if d.State != nil {
		c.d.State = *d.State
	}
}

// AddStage appends a new empty stage and returns it.
func (c *Composer) AddStage() models.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.d.Stages = draft.AddStage(c.d.Stages, c.gen)
	return c.d.Stages[len(c.d.Stages)-1]
}

// RenameStage renames the stage with the given id. Unknown ids are a
// silent no-op.
func (c *Composer) RenameStage(stageID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.d.Stages = draft.RenameStage(c.d.Stages, stageID, name)
}

// OpenEditor starts a touchpoint editing session against the given
// stage. A non-empty touchpointID selects edit mode and must name a
// touchpoint currently in that stage.
func (c *Composer) OpenEditor(stageID, touchpointID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stage := draft.StageByID(c.d.Stages, stageID)
	if stage == nil {
		return fmt.Errorf("stage %s: %w", stageID, apperr.ErrNotFound)
	}
	var existing *models.Touchpoint
	if touchpointID != "" {
		for i := range stage.Touchpoints {
			if stage.Touchpoints[i].ID == touchpointID {
				existing = &stage.Touchpoints[i]
				break
			}
		}
		if existing == nil {
			return fmt.Errorf("touchpoint %s: %w", touchpointID, apperr.ErrNotFound)
		}
	}
	c.editor.Open(stageID, existing)
	return nil
}

// ConfirmEditor validates the form fields, closes the editor, and
// merges the resulting touchpoint into its stage (replace by id, else
// append).
func (c *Composer) ConfirmEditor(fields draft.Fields) (models.Touchpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tp, stageID, err := c.editor.Confirm(fields, c.gen)
	if err != nil {
		return models.Touchpoint{}, err
	}
	stage := draft.StageByID(c.d.Stages, stageID)
	if stage != nil {
		c.d.Stages = draft.UpdateStageTouchpoints(
			c.d.Stages, stageID, draft.MergeTouchpoint(stage.Touchpoints, tp))
	}
	return tp, nil
}

// CancelEditor discards the in-progress edits, if any.
func (c *Composer) CancelEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editor.Cancel()
}

// EditorOpen reports whether a touchpoint editing session is active.
func (c *Composer) EditorOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.IsOpen()
}

// Saved reports whether this session has been persisted.
func (c *Composer) Saved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

// Save finalizes the draft and hands the snapshot to the store.
//
// A second save while one is outstanding fails with ErrSaveInFlight.
// Validation failure aborts before the store is touched. Store failure
// clears the flag and leaves the draft intact, so the user can retry
// without re-entering data.
func (c *Composer) Save(ctx context.Context) (*models.Journey, error) {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return nil, apperr.ErrSaveInFlight
	}
	j, err := draft.Finalize(c.d, c.gen, c.clock)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.saving = true
	c.mu.Unlock()

	if err := c.store.CreateJourney(ctx, j); err != nil {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
		return nil, fmt.Errorf("persist journey: %w", err)
	}

	c.mu.Lock()
	c.saving = false
	c.saved = true
	c.mu.Unlock()
	return j, nil
}
