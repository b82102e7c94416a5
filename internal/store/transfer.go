package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/codr1/themesmith/internal/models"
)

// Export is the backup envelope.
type Export struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Themes     []models.StoredTheme `json:"themes"`
}

type importEnvelope struct {
	Version string             `json:"version"`
	Themes  *[]json.RawMessage `json:"themes"`
}

// ExportAll serializes every stored theme, most recently modified first.
func (s *Store) ExportAll() ([]byte, error) {
	themes := s.GetAll()
	data, err := json.MarshalIndent(Export{
		Version:    ExportVersion,
		ExportedAt: s.timestamp(),
		Themes:     themes,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ImportAll merges an export envelope into the store and returns the number
// of themes imported. Entries whose id is taken are re-keyed with an
// -imported-N suffix. Every imported entry is stamped modified now. The
// payload is checked in full before anything is written.
func (s *Store) ImportAll(data []byte) (int, error) {
	var envelope importEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		s.logger.Debug().Err(err).Msg("Import payload is not JSON")
		return 0, ErrImportFormat
	}
	if envelope.Themes == nil {
		return 0, ErrImportFormat
	}

	incoming := make([]models.StoredTheme, 0, len(*envelope.Themes))
	for i, raw := range *envelope.Themes {
		var entry models.StoredTheme
		if err := json.Unmarshal(raw, &entry); err != nil {
			s.logger.Debug().Err(err).Int("index", i).Msg("Import entry is malformed")
			return 0, ErrImportFormat
		}
		if err := entry.Theme.Validate(); err != nil {
			s.logger.Debug().Err(err).Int("index", i).Msg("Import entry failed validation")
			return 0, ErrImportFormat
		}
		incoming = append(incoming, entry)
	}

	themes := s.load()
	now := s.timestamp()
	for _, entry := range incoming {
		id := entry.Theme.ID
		if _, taken := themes[id]; taken {
			id = importedID(id, themes)
		}
		entry.Theme.ID = id
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		entry.ModifiedAt = now
		entry.Tags = normalizeTags(entry.Tags)
		themes[id] = entry
	}
	s.persist(themes)

	s.logger.Info().Int("count", len(incoming)).Msg("Themes imported")
	return len(incoming), nil
}

func importedID(id string, taken map[string]models.StoredTheme) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-imported-%d", id, i)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}
