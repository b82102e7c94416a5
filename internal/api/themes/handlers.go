// internal/api/themes/handlers.go
package themes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/api/apiutil"
	"github.com/codr1/themesmith/internal/catalog"
	"github.com/codr1/themesmith/internal/contrast"
	"github.com/codr1/themesmith/internal/export"
	"github.com/codr1/themesmith/internal/generator"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/metrics"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/oklch"
	"github.com/codr1/themesmith/internal/store"
)

const (
	themeIDParam   = "id"
	formatQueryKey = "format"
)

// Deps are the collaborators the handlers share.
type Deps struct {
	Store           *store.Store
	Catalog         *catalog.Catalog
	DefaultHarmony  harmony.Kind
	DefaultIndustry string
}

var (
	deps     *Deps
	depsOnce sync.Once

	// The store is read-modify-write over its whole collection, so every
	// mutation goes through this lock.
	mutations sync.Mutex
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Deps) {
	if d.Store == nil || d.Catalog == nil {
		return
	}
	depsOnce.Do(func() {
		deps = &d
	})
}

func loadDeps() *Deps {
	return deps
}

// RegisterRoutes mounts the theme API on mux. The generator routes are
// wrapped in generateMiddleware, first entry outermost.
func RegisterRoutes(mux *http.ServeMux, generateMiddleware ...func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		var handler http.Handler = h
		for i := len(generateMiddleware) - 1; i >= 0; i-- {
			handler = generateMiddleware[i](handler)
		}
		return handler
	}
	mux.Handle("POST /api/v1/themes/generate", wrap(HandleGenerate))
	mux.Handle("POST /api/v1/themes/render", wrap(HandleRender))

	mux.HandleFunc("GET /api/v1/themes", HandleThemesList)
	mux.HandleFunc("POST /api/v1/themes", HandleThemeCreate)

	mux.HandleFunc("GET /api/v1/themes/active", HandleActiveTheme)
	mux.HandleFunc("PUT /api/v1/themes/active", HandleActiveThemeSet)
	mux.HandleFunc("GET /api/v1/themes/backup", HandleBackup)
	mux.HandleFunc("POST /api/v1/themes/restore", HandleRestore)

	mux.HandleFunc("GET /api/v1/themes/{id}", HandleThemeDetail)
	mux.HandleFunc("PUT /api/v1/themes/{id}", HandleThemeUpdate)
	mux.HandleFunc("DELETE /api/v1/themes/{id}", HandleThemeDelete)
	mux.HandleFunc("POST /api/v1/themes/{id}/favorite", HandleThemeFavorite)
	mux.HandleFunc("GET /api/v1/themes/{id}/export", HandleThemeExport)

	mux.HandleFunc("GET /api/v1/catalog", HandleCatalog)
	mux.HandleFunc("GET /themes.css", HandleThemesCSS)
}

type generateRequest struct {
	generator.Options
	Save bool     `json:"save,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

type generateResponse struct {
	Theme    models.ThemePreset  `json:"theme"`
	Contrast []contrast.Finding  `json:"contrast"`
	Stored   *models.StoredTheme `json:"stored,omitempty"`
}

type themeRequest struct {
	Theme models.ThemePreset `json:"theme"`
	Tags  *[]string          `json:"tags,omitempty"`
}

type themesListResponse struct {
	Themes   []models.StoredTheme `json:"themes"`
	ActiveID string               `json:"activeId,omitempty"`
}

type activeThemeRequest struct {
	ID string `json:"id"`
}

type favoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

type catalogResponse struct {
	DefaultID string               `json:"defaultId"`
	Presets   []models.ThemePreset `json:"presets"`
}

type restoreResponse struct {
	Imported int `json:"imported"`
}

func requireDeps(w http.ResponseWriter, r *http.Request) *Deps {
	d := loadDeps()
	if d == nil {
		log.Ctx(r.Context()).Error().Msg("Theme handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	return d
}

// /api/v1/themes/generate
func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	var req generateRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	kind := d.DefaultHarmony
	if strings.TrimSpace(string(req.Harmony)) != "" {
		parsed, ok := harmony.ParseKind(string(req.Harmony))
		if !ok {
			http.Error(w, fmt.Sprintf("unknown harmony %q", req.Harmony), http.StatusBadRequest)
			return
		}
		kind = parsed
	}
	req.Harmony = kind
	if strings.TrimSpace(req.Industry) == "" {
		req.Industry = d.DefaultIndustry
	}

	preset, err := generator.Generate(req.Options)
	if err != nil {
		metrics.ThemesGenerated.WithLabelValues(string(kind), "invalid").Inc()
		if errors.Is(err, oklch.ErrInvalidColor) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("Failed to generate theme")
		http.Error(w, "Failed to generate theme", http.StatusInternalServerError)
		return
	}
	metrics.ThemesGenerated.WithLabelValues(string(kind), "ok").Inc()

	findings, err := contrast.CheckPreset(preset)
	if err != nil {
		logger.Error().Err(err).Str("theme_id", preset.ID).Msg("Failed to check theme contrast")
		http.Error(w, "Failed to check theme contrast", http.StatusInternalServerError)
		return
	}
	for _, f := range contrast.Failures(findings) {
		metrics.ContrastFailures.WithLabelValues(string(f.Mode)).Inc()
	}

	resp := generateResponse{Theme: preset, Contrast: findings}
	status := http.StatusOK
	if req.Save {
		mutations.Lock()
		stored := d.Store.Save(preset, req.Tags...)
		recordMutation(d, "save")
		mutations.Unlock()
		resp.Stored = &stored
		status = http.StatusCreated
	}

	if err := apiutil.WriteJSON(w, status, resp); err != nil {
		logger.Error().Err(err).Str("theme_id", preset.ID).Msg("Failed to write generate response")
	}
}

// /api/v1/themes/render
func HandleRender(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	format, err := formatFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var preset models.ThemePreset
	if err := apiutil.DecodeJSON(w, r, &preset); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := preset.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeExport(w, r, preset, format, false)
	logger.Debug().Str("theme_id", preset.ID).Str("format", string(format)).Msg("Theme rendered")
}

// /api/v1/themes
func HandleThemesList(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	var themes []models.StoredTheme
	if favoritesOnly(r) {
		themes = d.Store.Favorites()
	} else {
		themes = d.Store.GetAll()
	}
	if themes == nil {
		themes = []models.StoredTheme{}
	}
	activeID, _ := d.Store.Active()

	if err := apiutil.WriteJSON(w, http.StatusOK, themesListResponse{Themes: themes, ActiveID: activeID}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write themes list response")
	}
}

func HandleThemeCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	var req themeRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Theme.ID == "" {
		req.Theme.ID = models.Slugify(req.Theme.Name)
	}
	if err := req.Theme.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var tags []string
	if req.Tags != nil {
		tags = *req.Tags
	}

	mutations.Lock()
	stored := d.Store.Save(req.Theme, tags...)
	recordMutation(d, "save")
	mutations.Unlock()

	logger.Info().Str("theme_id", stored.Theme.ID).Msg("Theme saved")
	if err := apiutil.WriteJSON(w, http.StatusCreated, stored); err != nil {
		logger.Error().Err(err).Str("theme_id", stored.Theme.ID).Msg("Failed to write theme create response")
	}
}

// /api/v1/themes/{id}
func HandleThemeDetail(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	id := r.PathValue(themeIDParam)
	stored, ok := d.Store.Get(id)
	if !ok {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, stored); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("theme_id", id).Msg("Failed to write theme response")
	}
}

func HandleThemeUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	id := r.PathValue(themeIDParam)
	var req themeRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Theme.ID = id
	if err := req.Theme.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mutations.Lock()
	stored, ok := d.Store.Update(id, req.Theme)
	if ok && req.Tags != nil {
		stored, ok = d.Store.SetTags(id, *req.Tags)
	}
	if ok {
		recordMutation(d, "update")
	}
	mutations.Unlock()

	if !ok {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, stored); err != nil {
		logger.Error().Err(err).Str("theme_id", id).Msg("Failed to write theme update response")
	}
}

func HandleThemeDelete(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	id := r.PathValue(themeIDParam)
	mutations.Lock()
	deleted := d.Store.Delete(id)
	if deleted {
		recordMutation(d, "delete")
	}
	mutations.Unlock()

	if !deleted {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}
	log.Ctx(r.Context()).Info().Str("theme_id", id).Msg("Theme deleted")
	w.WriteHeader(http.StatusNoContent)
}

// /api/v1/themes/{id}/favorite
func HandleThemeFavorite(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	id := r.PathValue(themeIDParam)
	mutations.Lock()
	isFavorite, ok := d.Store.ToggleFavorite(id)
	if ok {
		recordMutation(d, "favorite")
	}
	mutations.Unlock()

	if !ok {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, favoriteResponse{ID: id, IsFavorite: isFavorite}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("theme_id", id).Msg("Failed to write favorite response")
	}
}

// /api/v1/themes/{id}/export
//
// Stored themes take precedence over catalog presets with the same id.
func HandleThemeExport(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	format, err := formatFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue(themeIDParam)
	preset, ok := lookupPreset(d, id)
	if !ok {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}
	writeExport(w, r, preset, format, true)
}

// /api/v1/themes/active
func HandleActiveTheme(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	stored, ok := d.Store.ActiveTheme()
	if !ok {
		http.Error(w, "No active theme", http.StatusNotFound)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, stored); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write active theme response")
	}
}

func HandleActiveThemeSet(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	var req activeThemeRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mutations.Lock()
	ok := d.Store.SetActive(strings.TrimSpace(req.ID))
	mutations.Unlock()

	if !ok {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}
	log.Ctx(r.Context()).Info().Str("theme_id", req.ID).Msg("Active theme updated")
	w.WriteHeader(http.StatusNoContent)
}

// /api/v1/themes/backup
func HandleBackup(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	data, err := d.Store.ExportAll()
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to export themes")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="themes-backup.json"`)
	if err := apiutil.WriteText(w, http.StatusOK, "application/json", string(data)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write backup response")
	}
}

// /api/v1/themes/restore
func HandleRestore(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	body, err := apiutil.ReadBody(w, r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mutations.Lock()
	imported, err := d.Store.ImportAll(body)
	if err == nil {
		recordMutation(d, "import")
	}
	mutations.Unlock()

	if err != nil {
		if errors.Is(err, store.ErrImportFormat) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}, "")
			return
		}
		apiutil.WriteError(w, r, err, "Failed to import themes")
		return
	}

	logger.Info().Int("count", imported).Msg("Themes restored")
	if err := apiutil.WriteJSON(w, http.StatusOK, restoreResponse{Imported: imported}); err != nil {
		logger.Error().Err(err).Msg("Failed to write restore response")
	}
}

// /api/v1/catalog
func HandleCatalog(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	resp := catalogResponse{DefaultID: d.Catalog.DefaultID(), Presets: d.Catalog.Presets()}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write catalog response")
	}
}

// /themes.css
func HandleThemesCSS(w http.ResponseWriter, r *http.Request) {
	d := requireDeps(w, r)
	if d == nil {
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	css := export.AllThemesCSS(allPresets(d))
	if err := apiutil.WriteText(w, http.StatusOK, export.FormatCSS.ContentType(), css); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write themes stylesheet")
	}
}

// allPresets lists catalog presets in catalog order, replaced by stored
// themes with the same id, followed by the remaining stored themes.
func allPresets(d *Deps) []models.ThemePreset {
	stored := d.Store.GetAll()
	byID := make(map[string]models.ThemePreset, len(stored))
	for _, s := range stored {
		byID[s.Theme.ID] = s.Theme
	}

	presets := make([]models.ThemePreset, 0, len(stored)+len(d.Catalog.Presets()))
	used := make(map[string]bool)
	for _, p := range d.Catalog.Presets() {
		if override, ok := byID[p.ID]; ok {
			p = override
		}
		used[p.ID] = true
		presets = append(presets, p)
	}
	for _, s := range stored {
		if !used[s.Theme.ID] {
			presets = append(presets, s.Theme)
		}
	}
	return presets
}

func lookupPreset(d *Deps, id string) (models.ThemePreset, bool) {
	if stored, ok := d.Store.Get(id); ok {
		return stored.Theme, true
	}
	return d.Catalog.Get(id)
}

func writeExport(w http.ResponseWriter, r *http.Request, preset models.ThemePreset, format export.Format, attachment bool) {
	body, err := export.Render(preset, format)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to render theme")
		return
	}
	metrics.Exports.WithLabelValues(string(format)).Inc()

	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(preset.ID)))
	}
	if err := apiutil.WriteText(w, http.StatusOK, format.ContentType(), body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("theme_id", preset.ID).Msg("Failed to write export response")
	}
}

func formatFromQuery(r *http.Request) (export.Format, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(formatQueryKey))
	if raw == "" {
		return export.FormatCSS, nil
	}
	return export.ParseFormat(raw)
}

func favoritesOnly(r *http.Request) bool {
	raw := r.URL.Query().Get("favorites")
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// recordMutation must be called with mutations held.
func recordMutation(d *Deps, operation string) {
	metrics.StoreOperations.WithLabelValues(operation).Inc()
	metrics.StoredThemes.Set(float64(len(d.Store.GetAll())))
}
