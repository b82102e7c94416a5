package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codr1/themesmith/internal/app"
	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/generator"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/oklch"
)

func openServices() (*app.Services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.Open(cfg)
}

func parseHarmony(raw string) (harmony.Kind, error) {
	if strings.TrimSpace(raw) == "" {
		return harmony.Complementary, nil
	}
	kind, ok := harmony.ParseKind(raw)
	if !ok {
		return "", fmt.Errorf("unknown harmony %q (want complementary, analogous, triadic, or split-complementary)", raw)
	}
	return kind, nil
}

// resolvePreset accepts a color, a stored theme id or a catalog id, in that
// order. Colors produce a freshly generated preset.
func resolvePreset(services *app.Services, ref string, kind harmony.Kind) (models.ThemePreset, error) {
	if _, err := oklch.ParseAny(ref); err == nil {
		return generator.Generate(generator.Options{
			PrimaryColor: ref,
			Name:         "Preview",
			Harmony:      kind,
		})
	}
	if stored, ok := services.Store.Get(ref); ok {
		return stored.Theme, nil
	}
	if preset, ok := services.Catalog.Get(ref); ok {
		return preset, nil
	}
	return models.ThemePreset{}, fmt.Errorf("%q is not a color, stored theme or catalog preset", ref)
}

// writeOutput writes body to path, or to w when path is empty.
func writeOutput(w io.Writer, path, body string) error {
	if path == "" {
		_, err := io.WriteString(w, body)
		return err
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
