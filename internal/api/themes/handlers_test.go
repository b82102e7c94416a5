package themes

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codr1/themesmith/internal/catalog"
	"github.com/codr1/themesmith/internal/export"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/kv"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/store"
)

func setupHandlers(t *testing.T) (*http.ServeMux, *store.Store) {
	t.Helper()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	s := store.New(kv.NewMemory(),
		store.WithLogger(zerolog.Nop()),
		store.WithClock(func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }),
	)

	deps = &Deps{
		Store:           s,
		Catalog:         cat,
		DefaultHarmony:  harmony.Complementary,
		DefaultIndustry: "Custom",
	}
	t.Cleanup(func() {
		deps = nil
	})

	mux := http.NewServeMux()
	RegisterRoutes(mux)
	return mux, s
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestGenerate_ValidInput(t *testing.T) {
	mux, s := setupHandlers(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/themes/generate",
		`{"primaryColor":"#3B82F6","name":"Ocean Blue"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	decodeBody(t, rec, &resp)
	if resp.Theme.ID != "ocean-blue" || resp.Theme.Industry != "Custom" {
		t.Fatalf("theme = %s/%s", resp.Theme.ID, resp.Theme.Industry)
	}
	if len(resp.Contrast) != 10 {
		t.Fatalf("contrast findings = %d, want 10", len(resp.Contrast))
	}
	if resp.Stored != nil || len(s.GetAll()) != 0 {
		t.Fatalf("generate without save stored a theme")
	}
}

func TestGenerate_Save(t *testing.T) {
	mux, s := setupHandlers(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/themes/generate",
		`{"primaryColor":"oklch(0.6 0.15 150)","name":"Meadow","harmony":"triadic","save":true,"tags":["green"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	stored, ok := s.Get("meadow")
	if !ok {
		t.Fatalf("theme not stored")
	}
	if len(stored.Tags) != 1 || stored.Tags[0] != "green" {
		t.Fatalf("tags = %v", stored.Tags)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	mux, _ := setupHandlers(t)

	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{name: "bad color", body: `{"primaryColor":"blue","name":"X"}`, wantBody: `"blue"`},
		{name: "missing name", body: `{"primaryColor":"#3B82F6"}`, wantBody: "name is required"},
		{name: "unknown harmony", body: `{"primaryColor":"#3B82F6","name":"X","harmony":"tetradic"}`, wantBody: "unknown harmony"},
		{name: "unknown field", body: `{"primaryColor":"#3B82F6","name":"X","extra":1}`, wantBody: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, mux, http.MethodPost, "/api/v1/themes/generate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestThemeCRUD(t *testing.T) {
	mux, s := setupHandlers(t)
	preset, _ := deps.Catalog.Get("forest-trail")
	body, _ := json.Marshal(themeRequest{Theme: preset})

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/themes", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, mux, http.MethodPost, "/api/v1/themes", string(body))
	var second models.StoredTheme
	decodeBody(t, rec, &second)
	if second.Theme.ID != "forest-trail-1" {
		t.Fatalf("second create id = %q, want forest-trail-1", second.Theme.ID)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/themes/forest-trail", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d", rec.Code)
	}

	preset.Name = "Forest Trail Revised"
	tags := []string{"outdoor"}
	body, _ = json.Marshal(themeRequest{Theme: preset, Tags: &tags})
	rec = doRequest(t, mux, http.MethodPut, "/api/v1/themes/forest-trail", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	updated, _ := s.Get("forest-trail")
	if updated.Theme.Name != "Forest Trail Revised" || len(updated.Tags) != 1 {
		t.Fatalf("updated = %+v", updated)
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/v1/themes/forest-trail/favorite", "")
	var fav favoriteResponse
	decodeBody(t, rec, &fav)
	if !fav.IsFavorite {
		t.Fatalf("favorite = false after toggle")
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/themes?favorites=true", "")
	var list themesListResponse
	decodeBody(t, rec, &list)
	if len(list.Themes) != 1 || list.Themes[0].Theme.ID != "forest-trail" {
		t.Fatalf("favorites list = %+v", list.Themes)
	}

	rec = doRequest(t, mux, http.MethodDelete, "/api/v1/themes/forest-trail", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, mux, http.MethodDelete, "/api/v1/themes/forest-trail", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestThemeNotFound(t *testing.T) {
	mux, _ := setupHandlers(t)
	preset, _ := deps.Catalog.Get("ocean-blue")
	body, _ := json.Marshal(themeRequest{Theme: preset})

	tests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodGet, target: "/api/v1/themes/missing"},
		{method: http.MethodPut, target: "/api/v1/themes/missing", body: string(body)},
		{method: http.MethodPost, target: "/api/v1/themes/missing/favorite"},
		{method: http.MethodGet, target: "/api/v1/themes/missing/export"},
		{method: http.MethodGet, target: "/api/v1/themes/active"},
		{method: http.MethodPut, target: "/api/v1/themes/active", body: `{"id":"missing"}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := doRequest(t, mux, tt.method, tt.target, tt.body)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want 404", rec.Code)
			}
		})
	}
}

func TestCreateTheme_InvalidPreset(t *testing.T) {
	mux, _ := setupHandlers(t)
	preset, _ := deps.Catalog.Get("ocean-blue")
	preset.Light.Primary.Default = "not-a-color"
	body, _ := json.Marshal(themeRequest{Theme: preset})

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/themes", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "primary.default") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestActiveTheme(t *testing.T) {
	mux, s := setupHandlers(t)
	preset, _ := deps.Catalog.Get("sunset-market")
	s.Save(preset)

	rec := doRequest(t, mux, http.MethodPut, "/api/v1/themes/active", `{"id":"sunset-market"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set active status = %d", rec.Code)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/themes/active", "")
	var active models.StoredTheme
	decodeBody(t, rec, &active)
	if active.Theme.ID != "sunset-market" {
		t.Fatalf("active = %q", active.Theme.ID)
	}

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/themes", "")
	var list themesListResponse
	decodeBody(t, rec, &list)
	if list.ActiveID != "sunset-market" {
		t.Fatalf("list activeId = %q", list.ActiveID)
	}
}

func TestExport(t *testing.T) {
	mux, _ := setupHandlers(t)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{format: "", contentType: "text/css", contains: ".theme-ocean-blue {"},
		{format: "json", contentType: "application/json", contains: `"$schema"`},
		{format: "tailwind", contentType: "text/javascript", contains: "module.exports"},
		{format: "tokens", contentType: "application/json", contains: `"$type": "color"`},
	}

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			rec := doRequest(t, mux, http.MethodGet, "/api/v1/themes/ocean-blue/export?format="+tt.format, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType) {
				t.Fatalf("Content-Type = %q", rec.Header().Get("Content-Type"))
			}
			if !strings.Contains(rec.Header().Get("Content-Disposition"), "attachment") {
				t.Fatalf("missing attachment disposition")
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Fatalf("body missing %q", tt.contains)
			}
		})
	}

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/themes/ocean-blue/export?format=scss", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format status = %d", rec.Code)
	}
}

func TestRender(t *testing.T) {
	mux, _ := setupHandlers(t)
	preset, _ := deps.Catalog.Get("clinic-calm")
	body, _ := json.Marshal(preset)

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/themes/render?format=css", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != export.ThemeCSS(preset) {
		t.Fatalf("render output does not match ThemeCSS")
	}
}

func TestBackupAndRestore(t *testing.T) {
	mux, s := setupHandlers(t)
	preset, _ := deps.Catalog.Get("royal-ledger")
	s.Save(preset)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/themes/backup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("backup status = %d", rec.Code)
	}
	backup := rec.Body.String()

	rec = doRequest(t, mux, http.MethodPost, "/api/v1/themes/restore", backup)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp restoreResponse
	decodeBody(t, rec, &resp)
	if resp.Imported != 1 {
		t.Fatalf("imported = %d", resp.Imported)
	}
	if _, ok := s.Get("royal-ledger-imported-1"); !ok {
		t.Fatalf("restored theme not re-keyed")
	}

	rec = doRequest(t, mux, http.MethodPost, "/api/v1/themes/restore", `{"version":"1.0"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad restore status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), store.ErrImportFormat.Error()) {
		t.Fatalf("bad restore body = %q", rec.Body.String())
	}
}

func TestCatalogAndStylesheet(t *testing.T) {
	mux, s := setupHandlers(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/catalog", "")
	var cat catalogResponse
	decodeBody(t, rec, &cat)
	if cat.DefaultID != "ocean-blue" || len(cat.Presets) != 6 {
		t.Fatalf("catalog = %s with %d presets", cat.DefaultID, len(cat.Presets))
	}

	override, _ := deps.Catalog.Get("ocean-blue")
	override.Name = "Ocean Blue Custom"
	s.Save(override)
	extra, _ := deps.Catalog.Get("forest-trail")
	extra.ID = "my-forest"
	s.Save(extra)

	rec = doRequest(t, mux, http.MethodGet, "/themes.css", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stylesheet status = %d", rec.Code)
	}
	css := rec.Body.String()
	if strings.Count(css, ".theme-ocean-blue {") != 1 {
		t.Fatalf("stored override duplicated the catalog theme")
	}
	if !strings.Contains(css, "/* Ocean Blue Custom */") {
		t.Fatalf("stored override missing")
	}
	if !strings.Contains(css, ".theme-my-forest {") {
		t.Fatalf("stored-only theme missing")
	}
}

func TestHandlersNotInitialized(t *testing.T) {
	deps = nil
	mux := http.NewServeMux()
	RegisterRoutes(mux)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/themes", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
