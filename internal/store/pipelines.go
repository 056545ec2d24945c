package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// PipelineRecord is a stored pipeline and its current action list.
type PipelineRecord struct {
	ID           string               `json:"id"`
	FeatureSetID string               `json:"feature_set_id"`
	Version      int                  `json:"version"`
	Actions      []transformer.Action `json:"actions"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// GetPipeline loads a pipeline and its latest action list.
func (s *Store) GetPipeline(id string) (*PipelineRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, COALESCE(feature_set_id, ''), created_at, updated_at FROM pipelines WHERE id = ?`, id,
	)
	p := &PipelineRecord{}
	err := row.Scan(&p.ID, &p.FeatureSetID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "pipeline", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load pipeline: %w", err)
	}
	actions, version, err := s.latestActions(s.db, p.ID)
	if err != nil {
		return nil, err
	}
	p.Actions = actions
	p.Version = version
	return p, nil
}

// GetPipelineForFeatureSet loads the pipeline attached to a feature set.
func (s *Store) GetPipelineForFeatureSet(featureSetID string) (*PipelineRecord, error) {
	row := s.db.QueryRow(
		`SELECT id FROM pipelines WHERE feature_set_id = ? ORDER BY created_at LIMIT 1`, featureSetID,
	)
	var id string
	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "pipeline for feature set", ID: featureSetID}
	}
	if err != nil {
		return nil, fmt.Errorf("load pipeline for feature set: %w", err)
	}
	return s.GetPipeline(id)
}

// ListPipelines returns all pipelines with their current action lists.
func (s *Store) ListPipelines() ([]*PipelineRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(feature_set_id, ''), created_at, updated_at FROM pipelines ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	var out []*PipelineRecord
	for rows.Next() {
		p := &PipelineRecord{}
		if err := rows.Scan(&p.ID, &p.FeatureSetID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range out {
		actions, version, err := s.latestActions(s.db, p.ID)
		if err != nil {
			return nil, err
		}
		p.Actions = actions
		p.Version = version
	}
	return out, nil
}

// ReplaceActions replaces a pipeline's action list wholesale and returns
// the length the list had immediately before the replacement. The read of
// the previous list and the write of the new snapshot happen in one
// transaction, so concurrent replacements serialize and readers never see
// a half-applied state.
func (s *Store) ReplaceActions(id string, actions []transformer.Action) (prevVersion int, err error) {
	if actions == nil {
		actions = []transformer.Action{}
	}
	encoded, err := json.Marshal(actions)
	if err != nil {
		return 0, fmt.Errorf("encode actions: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM pipelines WHERE id = ?`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check pipeline: %w", err)
	}
	if exists == 0 {
		return 0, &NotFoundError{Entity: "pipeline", ID: id}
	}

	_, prevVersion, err = s.latestActions(tx, id)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(
		`INSERT INTO pipeline_versions (pipeline_id, version, actions, created_at) VALUES (?, ?, ?, ?)`,
		id, len(actions), string(encoded), now,
	); err != nil {
		return 0, fmt.Errorf("insert pipeline version: %w", err)
	}
	if _, err := tx.Exec(`UPDATE pipelines SET updated_at = ? WHERE id = ?`, now, id); err != nil {
		return 0, fmt.Errorf("touch pipeline: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit pipeline replacement: %w", err)
	}
	return prevVersion, nil
}

// querier covers both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// latestActions returns the newest action-list snapshot and its length.
// A pipeline without snapshots has an empty list and version zero.
func (s *Store) latestActions(q querier, pipelineID string) ([]transformer.Action, int, error) {
	var encoded string
	err := q.QueryRow(
		`SELECT actions FROM pipeline_versions WHERE pipeline_id = ? ORDER BY id DESC LIMIT 1`,
		pipelineID,
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return []transformer.Action{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load pipeline actions: %w", err)
	}
	var actions []transformer.Action
	if err := json.Unmarshal([]byte(encoded), &actions); err != nil {
		return nil, 0, fmt.Errorf("decode pipeline actions: %w", err)
	}
	if actions == nil {
		actions = []transformer.Action{}
	}
	return actions, len(actions), nil
}
