package api

import (
	"github.com/starford/raido/internal/composer"
	"github.com/starford/raido/internal/draft"
	"github.com/starford/raido/internal/journeydb"
	"github.com/starford/raido/internal/models"
)

// DraftResponse wraps a draft session snapshot.
type DraftResponse struct {
	ID    string      `json:"id"`
	Saved bool        `json:"saved"`
	Draft draft.Draft `json:"draft"`
}

// DetailsRequest is the request body for PATCH /drafts/{id}. Absent
// fields are left untouched.
type DetailsRequest = composer.Details

// RenameStageRequest is the request body for renaming a stage.
type RenameStageRequest struct {
	Name string `json:"name"`
}

// OpenEditorRequest starts a touchpoint editing session. An empty
// touchpointId means a new touchpoint is being created.
type OpenEditorRequest struct {
	StageID      string `json:"stageId"`
	TouchpointID string `json:"touchpointId,omitempty"`
}

// TouchpointFields is the editor confirm payload (aliased from the
// domain layer).
type TouchpointFields = draft.Fields

// JourneyListResponse wraps paginated journey listings.
type JourneyListResponse struct {
	Journeys []journeydb.JourneyListItem `json:"journeys"`
	Total    int                         `json:"total"`
}

// CoverUploadResponse is returned after a successful cover upload.
type CoverUploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// Journey is the persisted journey response type (aliased from the
// domain layer).
type Journey = models.Journey
