package draft

import (
	"errors"
	"testing"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/testutil"
)

func TestEditorCreateMode(t *testing.T) {
	gen := &testutil.SeqGen{}
	var e Editor

	e.Open("stage-1", nil)
	if !e.IsOpen() {
		t.Fatal("editor should be open")
	}

	tp, stageID, err := e.Confirm(Fields{Name: "Sign-up", Description: "User registers"}, gen)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if stageID != "stage-1" {
		t.Errorf("stageID = %q", stageID)
	}
	if tp.ID == "" {
		t.Error("create mode should assign a fresh id")
	}
	if tp.Emotion != models.EmotionNeutral {
		t.Errorf("emotion = %q, want defaulted neutral", tp.Emotion)
	}
	if tp.Insights == nil || tp.Metrics == nil {
		t.Error("confirm should normalize insights/metrics")
	}
	if e.IsOpen() {
		t.Error("editor should be closed after confirm")
	}
}

func TestEditorEditModeKeepsID(t *testing.T) {
	gen := &testutil.SeqGen{}
	existing := models.Touchpoint{ID: "tp-7", Name: "Old", Emotion: models.EmotionNegative}
	var e Editor

	e.Open("stage-1", &existing)
	tp, _, err := e.Confirm(Fields{Name: "New name", Emotion: models.EmotionPositive}, gen)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if tp.ID != "tp-7" {
		t.Errorf("id = %q, want preserved tp-7", tp.ID)
	}
	if tp.Name != "New name" || tp.Emotion != models.EmotionPositive {
		t.Errorf("fields not replaced: %+v", tp)
	}
}

func TestEditorConfirmRequiresName(t *testing.T) {
	gen := &testutil.SeqGen{}
	var e Editor
	e.Open("stage-1", nil)

	_, _, err := e.Confirm(Fields{Description: "no name"}, gen)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !apperr.IsValidation(err) {
		t.Errorf("error type = %v", err)
	}
	// A failed confirm keeps the session open for correction.
	if !e.IsOpen() {
		t.Error("editor should stay open after validation failure")
	}
}

func TestEditorConfirmRejectsUnknownEmotion(t *testing.T) {
	gen := &testutil.SeqGen{}
	var e Editor
	e.Open("stage-1", nil)

	_, _, err := e.Confirm(Fields{Name: "X", Emotion: "ecstatic"}, gen)
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEditorCancelDiscards(t *testing.T) {
	gen := &testutil.SeqGen{}
	var e Editor
	e.Open("stage-1", nil)
	e.Cancel()

	if e.IsOpen() {
		t.Error("editor should be closed after cancel")
	}
	_, _, err := e.Confirm(Fields{Name: "X"}, gen)
	if !errors.Is(err, apperr.ErrNoEditor) {
		t.Errorf("confirm on closed editor = %v, want ErrNoEditor", err)
	}
}
