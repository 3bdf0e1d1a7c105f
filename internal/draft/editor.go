package draft

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/idgen"
	"github.com/starford/raido/internal/models"
)

// Fields carries the form values of a touchpoint editing session.
type Fields struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Emotion        string           `json:"emotion"`
	CustomerAction string           `json:"customerAction,omitempty"`
	CustomerJob    string           `json:"customerJob,omitempty"`
	Image          string           `json:"image,omitempty"`
	Insights       *models.Insights `json:"insights,omitempty"`
	Metrics        *models.Metrics  `json:"metrics,omitempty"`
}

// Validate checks the editor form. Name is the only required field;
// everything else is defaulted at confirm time.
func (f Fields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Emotion, validation.In(
			models.EmotionPositive, models.EmotionNeutral, models.EmotionNegative)),
	)
}

// Editor is the touchpoint editing session. It has two states: closed
// (zero value) and editing, carrying the target stage and, in edit
// mode, the touchpoint being modified.
type Editor struct {
	open     bool
	stageID  string
	existing *models.Touchpoint
}

// Open transitions closed -> editing against the given stage. A non-nil
// existing touchpoint puts the session in edit mode; nil means a new
// touchpoint is being created.
func (e *Editor) Open(stageID string, existing *models.Touchpoint) {
	e.open = true
	e.stageID = stageID
	if existing != nil {
		tp := *existing
		e.existing = &tp
	} else {
		e.existing = nil
	}
}

// IsOpen reports whether a session is in progress.
func (e *Editor) IsOpen() bool {
	return e.open
}

// StageID returns the stage the open session targets.
func (e *Editor) StageID() string {
	return e.stageID
}

// Existing returns the touchpoint under edit, or nil in create mode.
func (e *Editor) Existing() *models.Touchpoint {
	return e.existing
}

// Confirm validates the form fields and produces the resulting
// touchpoint, transitioning editing -> closed. In edit mode the
// original identifier is preserved; in create mode a fresh one is
// generated. The caller merges the result via MergeTouchpoint.
func (e *Editor) Confirm(fields Fields, gen idgen.Generator) (models.Touchpoint, string, error) {
	if !e.open {
		return models.Touchpoint{}, "", apperr.ErrNoEditor
	}
	if err := fields.Validate(); err != nil {
		return models.Touchpoint{}, "", &apperr.ValidationError{Field: "touchpoint", Msg: err.Error()}
	}

	tp := models.Touchpoint{
		Name:           fields.Name,
		Description:    fields.Description,
		Emotion:        fields.Emotion,
		CustomerAction: fields.CustomerAction,
		CustomerJob:    fields.CustomerJob,
		Image:          fields.Image,
		Insights:       fields.Insights,
		Metrics:        fields.Metrics,
	}
	if e.existing != nil {
		tp.ID = e.existing.ID
	} else {
		tp.ID = gen.NewID()
	}
	tp = models.NormalizeTouchpoint(tp)

	stageID := e.stageID
	e.reset()
	return tp, stageID, nil
}

// Cancel discards all in-progress field edits and closes the session.
// The target stage's touchpoint list is untouched.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.open = false
	e.stageID = ""
	e.existing = nil
}
