// Package persona serves the built-in demo personas and their metric
// series. Series either come from static JSON files under a data
// directory or, when none exists, are generated deterministically in
// memory at startup. There is no other persistence.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evida/coach-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// Store provides read-only access to the persona catalog.
type Store interface {
	// List returns the persona index, stable order.
	List() []domain.Persona
	// Data returns one persona with its full series.
	// Returns domain.ErrNotFound for unknown ids.
	Data(id string) (*domain.PersonaData, error)
}

type store struct {
	index []domain.Persona
	data  map[string]*domain.PersonaData
}

// NewStore builds the persona catalog. When dataDir contains a
// personas.json index, series are read from dataDir/personas/<id>.json;
// otherwise the built-in profiles are generated in memory.
func NewStore(dataDir string) Store {
	if dataDir != "" {
		if s, err := loadFromDir(dataDir); err == nil {
			log.Info().Str("dir", dataDir).Int("personas", len(s.index)).Msg("loaded persona catalog from disk")
			return s
		} else if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("dir", dataDir).Msg("failed to load persona catalog, using generated data")
		}
	}
	return generatedStore()
}

func generatedStore() *store {
	s := &store{data: make(map[string]*domain.PersonaData, len(profiles))}
	for _, p := range profiles {
		s.index = append(s.index, p.Persona)
		s.data[p.ID] = &domain.PersonaData{
			Persona: p.Persona,
			Data:    generateSeries(p, seriesDays),
		}
	}
	return s
}

func loadFromDir(dataDir string) (*store, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, "personas.json"))
	if err != nil {
		return nil, err
	}

	var index []domain.Persona
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parse personas index: %w", err)
	}

	s := &store{index: index, data: make(map[string]*domain.PersonaData, len(index))}
	for _, p := range index {
		body, err := os.ReadFile(filepath.Join(dataDir, "personas", p.ID+".json"))
		if err != nil {
			return nil, fmt.Errorf("read persona %s: %w", p.ID, err)
		}
		var data domain.PersonaData
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("parse persona %s: %w", p.ID, err)
		}
		if data.ID == "" {
			data.Persona = p
		}
		s.data[p.ID] = &data
	}
	return s, nil
}

func (s *store) List() []domain.Persona {
	out := make([]domain.Persona, len(s.index))
	copy(out, s.index)
	return out
}

func (s *store) Data(id string) (*domain.PersonaData, error) {
	data, ok := s.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}
