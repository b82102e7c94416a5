package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codr1/themesmith/internal/generator"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/models"
)

func samplePreset(t *testing.T) models.ThemePreset {
	t.Helper()
	preset, err := generator.Generate(generator.Options{
		PrimaryColor: "#0F766E",
		Name:         "Harbor",
		Harmony:      harmony.Analogous,
	})
	require.NoError(t, err)
	return preset
}
