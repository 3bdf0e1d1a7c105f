package journeydb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// JourneyListItem is a lightweight row returned by list operations.
type JourneyListItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	State      string   `json:"state"`
	Status     string   `json:"status"`
	CoverImage string   `json:"coverImage,omitempty"`
	PersonaIDs []string `json:"personaIds"`
	StageCount int      `json:"stageCount"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

// CreateJourney inserts a finalized journey with its stages and
// touchpoints in a single transaction. The document arrives fully
// normalized from finalize, so no defaulting happens here.
func (db *DB) CreateJourney(ctx context.Context, j *models.Journey) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("journeydb: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	personaJSON, _ := json.Marshal(j.PersonaIDs)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO journeys (id, name, description, cover_image, persona_ids, state, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.Name, j.Description, j.CoverImage, string(personaJSON), j.State, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("journeydb: insert journey: %w", err)
	}

	stageStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stages (id, journey_id, name, ord) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("journeydb: prepare stage insert: %w", err)
	}
	defer stageStmt.Close()

	tpStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO touchpoints (id, stage_id, name, description, emotion, customer_action, customer_job, image, insights, metrics, ord)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("journeydb: prepare touchpoint insert: %w", err)
	}
	defer tpStmt.Close()

	for _, s := range j.Stages {
		if _, err := stageStmt.ExecContext(ctx, s.ID, j.ID, s.Name, s.Order); err != nil {
			return fmt.Errorf("journeydb: insert stage: %w", err)
		}
		for k, tp := range s.Touchpoints {
			insightsJSON, _ := json.Marshal(tp.Insights)
			metricsJSON, _ := json.Marshal(tp.Metrics)
			if _, err := tpStmt.ExecContext(ctx, tp.ID, s.ID, tp.Name, tp.Description,
				tp.Emotion, tp.CustomerAction, tp.CustomerJob, tp.Image,
				string(insightsJSON), string(metricsJSON), k); err != nil {
				return fmt.Errorf("journeydb: insert touchpoint: %w", err)
			}
		}
	}

	return tx.Commit()
}

// GetJourney loads a full journey document by id.
func (db *DB) GetJourney(ctx context.Context, id string) (*models.Journey, error) {
	var j models.Journey
	var personaJSON string
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, name, description, cover_image, persona_ids, state, status, created_at, updated_at
		FROM journeys WHERE id = ?
	`, id).Scan(&j.ID, &j.Name, &j.Description, &j.CoverImage, &personaJSON,
		&j.State, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("journeydb: get journey: %w", err)
	}
	if err := json.Unmarshal([]byte(personaJSON), &j.PersonaIDs); err != nil {
		j.PersonaIDs = []string{}
	}

	j.Stages = []models.Stage{}
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, ord FROM stages WHERE journey_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("journeydb: list stages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Stage
		if err := rows.Scan(&s.ID, &s.Name, &s.Order); err != nil {
			return nil, err
		}
		s.Touchpoints, err = db.stageTouchpoints(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		j.Stages = append(j.Stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &j, nil
}

func (db *DB) stageTouchpoints(ctx context.Context, stageID string) ([]models.Touchpoint, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, description, emotion, customer_action, customer_job, image, insights, metrics
		FROM touchpoints WHERE stage_id = ? ORDER BY ord
	`, stageID)
	if err != nil {
		return nil, fmt.Errorf("journeydb: list touchpoints: %w", err)
	}
	defer rows.Close()

	out := []models.Touchpoint{}
	for rows.Next() {
		var tp models.Touchpoint
		var insightsJSON, metricsJSON string
		if err := rows.Scan(&tp.ID, &tp.Name, &tp.Description, &tp.Emotion,
			&tp.CustomerAction, &tp.CustomerJob, &tp.Image, &insightsJSON, &metricsJSON); err != nil {
			return nil, err
		}
		tp.Insights = &models.Insights{}
		tp.Metrics = &models.Metrics{}
		_ = json.Unmarshal([]byte(insightsJSON), tp.Insights)
		_ = json.Unmarshal([]byte(metricsJSON), tp.Metrics)
		out = append(out, models.NormalizeTouchpoint(tp))
	}
	return out, rows.Err()
}

// ListJourneys returns journey summaries, newest first.
func (db *DB) ListJourneys(ctx context.Context, limit, offset int) ([]JourneyListItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM journeys`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("journeydb: count journeys: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT j.id, j.name, j.state, j.status, j.cover_image, j.persona_ids,
		       (SELECT COUNT(*) FROM stages s WHERE s.journey_id = j.id),
		       j.created_at, j.updated_at
		FROM journeys j
		ORDER BY j.created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("journeydb: list journeys: %w", err)
	}
	defer rows.Close()

	items := []JourneyListItem{}
	for rows.Next() {
		var it JourneyListItem
		var personaJSON string
		if err := rows.Scan(&it.ID, &it.Name, &it.State, &it.Status, &it.CoverImage,
			&personaJSON, &it.StageCount, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(personaJSON), &it.PersonaIDs); err != nil {
			it.PersonaIDs = []string{}
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}
