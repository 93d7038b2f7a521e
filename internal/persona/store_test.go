package persona

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/evida/coach-api/internal/domain"
)

func TestGeneratedStoreCatalog(t *testing.T) {
	store := NewStore("")

	personas := store.List()
	if len(personas) != 4 {
		t.Fatalf("persona count = %d, want 4", len(personas))
	}

	ids := map[string]bool{}
	for _, p := range personas {
		ids[p.ID] = true
		if p.Name == "" || p.Description == "" {
			t.Errorf("persona %s missing name or description", p.ID)
		}
	}
	for _, id := range []string{"active-alex", "stressed-sam", "sleep-challenged-chris", "recovering-riley"} {
		if !ids[id] {
			t.Errorf("persona %s missing from catalog", id)
		}
	}
}

func TestGeneratedSeriesShape(t *testing.T) {
	store := NewStore("")

	data, err := store.Data("active-alex")
	if err != nil {
		t.Fatalf("Data returned error: %v", err)
	}
	if len(data.Data) != seriesDays {
		t.Fatalf("series length = %d, want %d", len(data.Data), seriesDays)
	}

	for _, record := range data.Data {
		if record.Date() == "" {
			t.Fatal("record missing date")
		}
		steps, ok := record.Numeric("steps")
		if !ok || steps < 9000 || steps > 12000 {
			t.Errorf("steps = %v, want within active-alex profile range", record["steps"])
		}
		sleep, ok := record.Numeric("sleep_hours")
		if !ok || sleep < 7.0 || sleep > 8.0 {
			t.Errorf("sleep_hours = %v, want within 7.0-8.0", record["sleep_hours"])
		}
		if _, ok := record.Numeric("sleep_efficiency"); !ok {
			t.Error("sleep_efficiency missing")
		}
	}
}

func TestGeneratedSeriesDeterministic(t *testing.T) {
	first, err := NewStore("").Data("stressed-sam")
	if err != nil {
		t.Fatalf("Data returned error: %v", err)
	}
	second, err := NewStore("").Data("stressed-sam")
	if err != nil {
		t.Fatalf("Data returned error: %v", err)
	}

	firstJSON, _ := json.Marshal(first.Data)
	secondJSON, _ := json.Marshal(second.Data)
	if string(firstJSON) != string(secondJSON) {
		t.Error("generated series differs between runs for the same persona")
	}
}

func TestDataUnknownPersona(t *testing.T) {
	_, err := NewStore("").Data("nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	index := []domain.Persona{{ID: "disk-dana", Name: "Disk Dana", Description: "Loaded from files."}}
	writeJSON(t, filepath.Join(dir, "personas.json"), index)

	if err := os.MkdirAll(filepath.Join(dir, "personas"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeJSON(t, filepath.Join(dir, "personas", "disk-dana.json"), domain.PersonaData{
		Persona: index[0],
		Data:    []domain.MetricRecord{{"date": "2025-01-01", "steps": 5000.0}},
	})

	store := NewStore(dir)

	personas := store.List()
	if len(personas) != 1 || personas[0].ID != "disk-dana" {
		t.Fatalf("personas = %+v", personas)
	}

	data, err := store.Data("disk-dana")
	if err != nil {
		t.Fatalf("Data returned error: %v", err)
	}
	if len(data.Data) != 1 {
		t.Errorf("series length = %d, want 1", len(data.Data))
	}
}

func TestMissingDirFallsBackToGenerated(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))
	if len(store.List()) != 4 {
		t.Error("missing data dir should fall back to generated personas")
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
}
