package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thunderstroke325/mage-ai/pkg/cleaner"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// FeatureSet is a stored dataset with its metadata, the latest analysis
// results, and the untouched original data used when replaying a pipeline
// from scratch.
type FeatureSet struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Metadata    map[string]any       `json:"metadata"`
	Statistics  map[string]any       `json:"statistics"`
	Suggestions []cleaner.Suggestion `json:"suggestions"`
	Data        *frame.Frame         `json:"sample_data"`
	DataOrig    *frame.Frame         `json:"-"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// FeatureSetVersion is a snapshot of a feature set captured right before a
// pipeline replacement, keyed by the pipeline version it belonged to.
type FeatureSetVersion struct {
	FeatureSetID string               `json:"feature_set_id"`
	Version      int                  `json:"version"`
	Statistics   map[string]any       `json:"statistics"`
	Suggestions  []cleaner.Suggestion `json:"suggestions"`
	Data         *frame.Frame         `json:"sample_data"`
	CreatedAt    time.Time            `json:"created_at"`
}

// CreateFeatureSet stores a new feature set along with an empty pipeline
// attached to it. The frame is stored twice: as the working data and as the
// original replay source.
func (s *Store) CreateFeatureSet(name string, data *frame.Frame) (*FeatureSet, error) {
	now := time.Now().UTC()
	fs := &FeatureSet{
		ID:          generateID(),
		Name:        name,
		Metadata:    map[string]any{"name": name},
		Statistics:  map[string]any{},
		Suggestions: []cleaner.Suggestion{},
		Data:        data.Copy(),
		DataOrig:    data.Copy(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	metadata, err := json.Marshal(fs.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	encodedData, err := json.Marshal(fs.Data)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO feature_sets (id, name, metadata, statistics, suggestions, data, data_orig, created_at, updated_at)
		 VALUES (?, ?, ?, '{}', '[]', ?, ?, ?, ?)`,
		fs.ID, fs.Name, string(metadata), string(encodedData), string(encodedData), fs.CreatedAt, fs.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert feature set: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO pipelines (id, feature_set_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		generateID(), fs.ID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pipeline: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit feature set: %w", err)
	}
	return fs, nil
}

// GetFeatureSet loads a feature set by id.
func (s *Store) GetFeatureSet(id string) (*FeatureSet, error) {
	row := s.db.QueryRow(
		`SELECT id, name, metadata, statistics, suggestions, data, data_orig, created_at, updated_at
		 FROM feature_sets WHERE id = ?`, id,
	)
	fs := &FeatureSet{}
	var metadata, statistics, suggestions, data, dataOrig string
	err := row.Scan(&fs.ID, &fs.Name, &metadata, &statistics, &suggestions, &data, &dataOrig, &fs.CreatedAt, &fs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "feature set", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load feature set: %w", err)
	}
	if err := decodeFeatureSet(fs, metadata, statistics, suggestions, data, dataOrig); err != nil {
		return nil, err
	}
	return fs, nil
}

// ListFeatureSets returns all stored feature sets ordered by creation time.
// Data payloads are included; callers building summaries should drop them.
func (s *Store) ListFeatureSets() ([]*FeatureSet, error) {
	rows, err := s.db.Query(
		`SELECT id, name, metadata, statistics, suggestions, data, data_orig, created_at, updated_at
		 FROM feature_sets ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list feature sets: %w", err)
	}
	defer rows.Close()

	var out []*FeatureSet
	for rows.Next() {
		fs := &FeatureSet{}
		var metadata, statistics, suggestions, data, dataOrig string
		if err := rows.Scan(&fs.ID, &fs.Name, &metadata, &statistics, &suggestions, &data, &dataOrig, &fs.CreatedAt, &fs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan feature set: %w", err)
		}
		if err := decodeFeatureSet(fs, metadata, statistics, suggestions, data, dataOrig); err != nil {
			return nil, err
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

// UpdateFeatureSet writes the mutable parts of a feature set: metadata,
// statistics, suggestions, and the working data.
func (s *Store) UpdateFeatureSet(fs *FeatureSet) error {
	metadata, err := json.Marshal(fs.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	statistics, err := json.Marshal(fs.Statistics)
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}
	suggestions, err := json.Marshal(fs.Suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	data, err := json.Marshal(fs.Data)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	result, err := s.db.Exec(
		`UPDATE feature_sets SET metadata = ?, statistics = ?, suggestions = ?, data = ?, updated_at = ? WHERE id = ?`,
		string(metadata), string(statistics), string(suggestions), string(data), time.Now().UTC(), fs.ID,
	)
	if err != nil {
		return fmt.Errorf("update feature set: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update feature set: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "feature set", ID: fs.ID}
	}
	return nil
}

// SaveFeatureSetVersion snapshots the feature set's current analysis state
// under the given pipeline version.
func (s *Store) SaveFeatureSetVersion(fs *FeatureSet, version int) error {
	statistics, err := json.Marshal(fs.Statistics)
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}
	suggestions, err := json.Marshal(fs.Suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	data, err := json.Marshal(fs.Data)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO feature_set_versions (feature_set_id, version, statistics, suggestions, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		fs.ID, version, string(statistics), string(suggestions), string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save feature set version: %w", err)
	}
	return nil
}

// GetFeatureSetVersion loads the most recent snapshot stored under the
// given version.
func (s *Store) GetFeatureSetVersion(id string, version int) (*FeatureSetVersion, error) {
	row := s.db.QueryRow(
		`SELECT feature_set_id, version, statistics, suggestions, data, created_at
		 FROM feature_set_versions WHERE feature_set_id = ? AND version = ?
		 ORDER BY id DESC LIMIT 1`,
		id, version,
	)
	v := &FeatureSetVersion{}
	var statistics, suggestions, data string
	err := row.Scan(&v.FeatureSetID, &v.Version, &statistics, &suggestions, &data, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "feature set version", ID: fmt.Sprintf("%s@%d", id, version)}
	}
	if err != nil {
		return nil, fmt.Errorf("load feature set version: %w", err)
	}
	if err := json.Unmarshal([]byte(statistics), &v.Statistics); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestions), &v.Suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	v.Data = &frame.Frame{}
	if err := json.Unmarshal([]byte(data), v.Data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return v, nil
}

func decodeFeatureSet(fs *FeatureSet, metadata, statistics, suggestions, data, dataOrig string) error {
	if err := json.Unmarshal([]byte(metadata), &fs.Metadata); err != nil {
		return fmt.Errorf("decode metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(statistics), &fs.Statistics); err != nil {
		return fmt.Errorf("decode statistics: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestions), &fs.Suggestions); err != nil {
		return fmt.Errorf("decode suggestions: %w", err)
	}
	fs.Data = &frame.Frame{}
	if err := json.Unmarshal([]byte(data), fs.Data); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	fs.DataOrig = &frame.Frame{}
	if err := json.Unmarshal([]byte(dataOrig), fs.DataOrig); err != nil {
		return fmt.Errorf("decode original data: %w", err)
	}
	return nil
}
