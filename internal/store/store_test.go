package store

import (
	"errors"
	"testing"

	"github.com/thunderstroke325/mage-ai/pkg/frame"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if err := s.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return s
}

func testData(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		[]string{"name", "age"},
		[][]any{{"alice", "30"}, {"bob", "25"}},
	)
	if err != nil {
		t.Fatalf("failed to build frame: %v", err)
	}
	return f
}

func TestStoreOpenClose(t *testing.T) {
	s := NewStore()
	if err := s.Open(":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestInitSchema(t *testing.T) {
	s := setupTestStore(t)

	tables := []string{"feature_sets", "feature_set_versions", "pipelines", "pipeline_versions"}
	for _, table := range tables {
		rows, err := s.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		} else {
			rows.Close()
		}
	}

	// Idempotent.
	if err := s.InitSchema(); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}
}

func TestCreateAndGetFeatureSet(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateFeatureSet("users", testData(t))
	if err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}
	if created.ID == "" {
		t.Fatal("feature set ID should not be empty")
	}

	loaded, err := s.GetFeatureSet(created.ID)
	if err != nil {
		t.Fatalf("failed to load feature set: %v", err)
	}
	if loaded.Name != "users" {
		t.Errorf("expected name 'users', got %q", loaded.Name)
	}
	if loaded.Data.NumRows() != 2 {
		t.Errorf("expected 2 data rows, got %d", loaded.Data.NumRows())
	}
	if loaded.DataOrig.NumRows() != 2 {
		t.Errorf("expected 2 original rows, got %d", loaded.DataOrig.NumRows())
	}
	if len(loaded.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %d", len(loaded.Suggestions))
	}
}

func TestGetFeatureSetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetFeatureSet("missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.ID != "missing" {
		t.Errorf("expected id 'missing', got %q", notFound.ID)
	}
}

func TestCreateFeatureSetAttachesPipeline(t *testing.T) {
	s := setupTestStore(t)

	fs, err := s.CreateFeatureSet("users", testData(t))
	if err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}

	p, err := s.GetPipelineForFeatureSet(fs.ID)
	if err != nil {
		t.Fatalf("failed to load attached pipeline: %v", err)
	}
	if p.FeatureSetID != fs.ID {
		t.Errorf("pipeline bound to %q, want %q", p.FeatureSetID, fs.ID)
	}
	if p.Version != 0 {
		t.Errorf("new pipeline version should be 0, got %d", p.Version)
	}
	if len(p.Actions) != 0 {
		t.Errorf("new pipeline should have no actions, got %d", len(p.Actions))
	}
}

func TestUpdateFeatureSet(t *testing.T) {
	s := setupTestStore(t)

	fs, err := s.CreateFeatureSet("users", testData(t))
	if err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}

	fs.Statistics = map[string]any{"count": 2.0}
	fs.Metadata["column_types"] = map[string]any{"name": "text"}
	if err := s.UpdateFeatureSet(fs); err != nil {
		t.Fatalf("failed to update feature set: %v", err)
	}

	loaded, err := s.GetFeatureSet(fs.ID)
	if err != nil {
		t.Fatalf("failed to reload feature set: %v", err)
	}
	if loaded.Statistics["count"] != 2.0 {
		t.Errorf("expected count 2, got %v", loaded.Statistics["count"])
	}

	missing := &FeatureSet{ID: "missing", Data: testData(t)}
	err = s.UpdateFeatureSet(missing)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListFeatureSets(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateFeatureSet("first", testData(t)); err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}
	if _, err := s.CreateFeatureSet("second", testData(t)); err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}

	all, err := s.ListFeatureSets()
	if err != nil {
		t.Fatalf("failed to list feature sets: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 feature sets, got %d", len(all))
	}
}

func TestReplaceActionsReturnsPreviousVersion(t *testing.T) {
	s := setupTestStore(t)

	fs, err := s.CreateFeatureSet("users", testData(t))
	if err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}
	p, err := s.GetPipelineForFeatureSet(fs.ID)
	if err != nil {
		t.Fatalf("failed to load pipeline: %v", err)
	}

	first := []transformer.Action{
		{ActionType: transformer.ActionRemove, ActionArguments: []string{"age"}},
		{ActionType: transformer.ActionDropDuplicate},
	}
	prev, err := s.ReplaceActions(p.ID, first)
	if err != nil {
		t.Fatalf("failed to replace actions: %v", err)
	}
	if prev != 0 {
		t.Errorf("first replacement should report previous version 0, got %d", prev)
	}

	second := []transformer.Action{{ActionType: transformer.ActionDropDuplicate}}
	prev, err = s.ReplaceActions(p.ID, second)
	if err != nil {
		t.Fatalf("failed to replace actions again: %v", err)
	}
	if prev != 2 {
		t.Errorf("second replacement should report previous version 2, got %d", prev)
	}

	reloaded, err := s.GetPipeline(p.ID)
	if err != nil {
		t.Fatalf("failed to reload pipeline: %v", err)
	}
	if reloaded.Version != 1 {
		t.Errorf("expected current version 1, got %d", reloaded.Version)
	}
	if len(reloaded.Actions) != 1 {
		t.Fatalf("expected 1 current action, got %d", len(reloaded.Actions))
	}
	if reloaded.Actions[0].ActionType != transformer.ActionDropDuplicate {
		t.Errorf("unexpected action type %q", reloaded.Actions[0].ActionType)
	}
}

func TestReplaceActionsUnknownPipeline(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.ReplaceActions("missing", nil)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListPipelines(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateFeatureSet("a", testData(t)); err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}
	if _, err := s.CreateFeatureSet("b", testData(t)); err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}

	pipelines, err := s.ListPipelines()
	if err != nil {
		t.Fatalf("failed to list pipelines: %v", err)
	}
	if len(pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(pipelines))
	}
}

func TestFeatureSetVersions(t *testing.T) {
	s := setupTestStore(t)

	fs, err := s.CreateFeatureSet("users", testData(t))
	if err != nil {
		t.Fatalf("failed to create feature set: %v", err)
	}

	fs.Statistics = map[string]any{"count": 2.0}
	if err := s.SaveFeatureSetVersion(fs, 0); err != nil {
		t.Fatalf("failed to save version: %v", err)
	}

	v, err := s.GetFeatureSetVersion(fs.ID, 0)
	if err != nil {
		t.Fatalf("failed to load version: %v", err)
	}
	if v.Version != 0 {
		t.Errorf("expected version 0, got %d", v.Version)
	}
	if v.Statistics["count"] != 2.0 {
		t.Errorf("expected count 2, got %v", v.Statistics["count"])
	}
	if v.Data.NumRows() != 2 {
		t.Errorf("expected 2 snapshot rows, got %d", v.Data.NumRows())
	}

	_, err = s.GetFeatureSetVersion(fs.ID, 7)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
