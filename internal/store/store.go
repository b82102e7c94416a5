// Package store persists generated themes in a kv.Storage.
//
// The whole collection lives under one key as a JSON object keyed by theme
// id, and every mutation is a read-modify-write of that object. There is no
// locking: concurrent writers sharing a medium can lose updates, so hosts
// serialize mutations through a single owner. When the medium is unavailable
// every operation degrades to an empty read or a dropped write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/kv"
	"github.com/codr1/themesmith/internal/models"
)

const (
	DefaultThemesKey = "themesmith:themes"
	DefaultActiveKey = "themesmith:active-theme"

	ExportVersion = "1.0"
)

var ErrImportFormat = errors.New("invalid theme import format: expected {version, exportedAt, themes[]}")

type Store struct {
	storage   kv.Storage
	now       func() time.Time
	logger    zerolog.Logger
	themesKey string
	activeKey string
}

type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithKeys overrides the storage keys for the collection and the active
// theme pointer.
func WithKeys(themesKey, activeKey string) Option {
	return func(s *Store) {
		if themesKey != "" {
			s.themesKey = themesKey
		}
		if activeKey != "" {
			s.activeKey = activeKey
		}
	}
}

// New returns a store over storage. A nil storage behaves like an
// unavailable one.
func New(storage kv.Storage, opts ...Option) *Store {
	if storage == nil {
		storage = kv.Unavailable{}
	}
	s := &Store{
		storage:   storage,
		now:       time.Now,
		logger:    log.Logger,
		themesKey: DefaultThemesKey,
		activeKey: DefaultActiveKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "store").Logger()
	return s
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Store) load() map[string]models.StoredTheme {
	themes := make(map[string]models.StoredTheme)
	raw, ok, err := s.storage.Get(s.themesKey)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Theme storage unavailable")
		return themes
	}
	if !ok || raw == "" {
		return themes
	}
	if err := json.Unmarshal([]byte(raw), &themes); err != nil {
		s.logger.Warn().Err(err).Str("key", s.themesKey).Msg("Ignoring unreadable theme collection")
		return make(map[string]models.StoredTheme)
	}
	return themes
}

func (s *Store) persist(themes map[string]models.StoredTheme) {
	data, err := json.Marshal(themes)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode themes")
		return
	}
	if err := s.storage.Set(s.themesKey, string(data)); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to persist themes")
	}
}

func uniqueID(base string, taken map[string]models.StoredTheme) string {
	if _, exists := taken[base]; !exists {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}

func baseID(theme models.ThemePreset) string {
	if theme.ID != "" {
		return theme.ID
	}
	return models.Slugify(theme.Name)
}

// Save stores theme under its id, appending -1, -2, ... until the id is
// free. The returned entry carries the id actually used.
func (s *Store) Save(theme models.ThemePreset, tags ...string) models.StoredTheme {
	themes := s.load()
	theme.ID = uniqueID(baseID(theme), themes)

	now := s.timestamp()
	entry := models.StoredTheme{
		Theme:      theme,
		CreatedAt:  now,
		ModifiedAt: now,
		Tags:       normalizeTags(tags),
	}
	themes[theme.ID] = entry
	s.persist(themes)

	s.logger.Debug().Str("theme_id", theme.ID).Msg("Theme saved")
	return entry
}

func (s *Store) Get(id string) (models.StoredTheme, bool) {
	entry, ok := s.load()[id]
	return entry, ok
}

// GetAll returns every stored theme, most recently modified first.
func (s *Store) GetAll() []models.StoredTheme {
	return sorted(s.load())
}

func sorted(themes map[string]models.StoredTheme) []models.StoredTheme {
	out := make([]models.StoredTheme, 0, len(themes))
	for _, entry := range themes {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModifiedAt.Equal(out[j].ModifiedAt) {
			return out[i].ModifiedAt.After(out[j].ModifiedAt)
		}
		return out[i].Theme.ID < out[j].Theme.ID
	})
	return out
}

// Update replaces the preset stored under id. The id itself never changes.
func (s *Store) Update(id string, theme models.ThemePreset) (models.StoredTheme, bool) {
	themes := s.load()
	entry, ok := themes[id]
	if !ok {
		return models.StoredTheme{}, false
	}
	theme.ID = id
	entry.Theme = theme
	entry.ModifiedAt = s.timestamp()
	themes[id] = entry
	s.persist(themes)
	return entry, true
}

func (s *Store) SetTags(id string, tags []string) (models.StoredTheme, bool) {
	themes := s.load()
	entry, ok := themes[id]
	if !ok {
		return models.StoredTheme{}, false
	}
	entry.Tags = normalizeTags(tags)
	entry.ModifiedAt = s.timestamp()
	themes[id] = entry
	s.persist(themes)
	return entry, true
}

// Delete removes id and clears the active pointer when it referenced id.
func (s *Store) Delete(id string) bool {
	themes := s.load()
	if _, ok := themes[id]; !ok {
		return false
	}
	delete(themes, id)
	s.persist(themes)

	if active, ok := s.Active(); ok && active == id {
		s.clearActive()
	}
	s.logger.Debug().Str("theme_id", id).Msg("Theme deleted")
	return true
}

// ToggleFavorite flips the favorite flag and returns the new value. ok is
// false when id is unknown.
func (s *Store) ToggleFavorite(id string) (isFavorite bool, ok bool) {
	themes := s.load()
	entry, ok := themes[id]
	if !ok {
		return false, false
	}
	entry.IsFavorite = !entry.IsFavorite
	entry.ModifiedAt = s.timestamp()
	themes[id] = entry
	s.persist(themes)
	return entry.IsFavorite, true
}

func (s *Store) Favorites() []models.StoredTheme {
	var out []models.StoredTheme
	for _, entry := range s.GetAll() {
		if entry.IsFavorite {
			out = append(out, entry)
		}
	}
	return out
}

// SetActive points the active theme at id. An empty id clears the pointer.
// Unknown ids are rejected.
func (s *Store) SetActive(id string) bool {
	if id == "" {
		s.clearActive()
		return true
	}
	if _, ok := s.Get(id); !ok {
		return false
	}
	if err := s.storage.Set(s.activeKey, id); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to persist active theme")
	}
	return true
}

// Active returns the active theme id.
func (s *Store) Active() (string, bool) {
	id, ok, err := s.storage.Get(s.activeKey)
	if err != nil || !ok || id == "" {
		return "", false
	}
	return id, true
}

// ActiveTheme resolves the active pointer to its stored theme.
func (s *Store) ActiveTheme() (models.StoredTheme, bool) {
	id, ok := s.Active()
	if !ok {
		return models.StoredTheme{}, false
	}
	return s.Get(id)
}

func (s *Store) clearActive() {
	if err := s.storage.Remove(s.activeKey); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to clear active theme")
	}
}

// Clear drops the collection and the active pointer.
func (s *Store) Clear() {
	if err := s.storage.Remove(s.themesKey); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to clear themes")
	}
	s.clearActive()
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
