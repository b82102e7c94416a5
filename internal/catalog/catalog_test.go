package catalog

import (
	"strings"
	"testing"

	"github.com/codr1/themesmith/internal/contrast"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	presets := c.Presets()
	if len(presets) != 6 {
		t.Fatalf("Presets() = %d, want 6", len(presets))
	}
	if c.DefaultID() != "ocean-blue" || c.Default().Name != "Ocean Blue" {
		t.Fatalf("default = %q", c.DefaultID())
	}

	for _, p := range presets {
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %s invalid: %v", p.ID, err)
		}
		got, ok := c.Get(p.ID)
		if !ok || got.Name != p.Name {
			t.Fatalf("Get(%s) = %v, %t", p.ID, got.Name, ok)
		}
		if _, err := contrast.CheckPreset(p); err != nil {
			t.Fatalf("CheckPreset(%s) error = %v", p.ID, err)
		}
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("Get(missing) = true")
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	presets := c.Presets()
	presets[0].Name = "changed"
	if c.Presets()[0].Name == "changed" {
		t.Fatalf("Presets() exposes internal slice")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "empty", yaml: "presets: []", wantErr: "no presets"},
		{name: "malformed", yaml: "presets: [", wantErr: "parse catalog"},
		{
			name:    "missing name",
			yaml:    "presets:\n  - primary: \"#3B82F6\"\n",
			wantErr: "name is required",
		},
		{
			name:    "bad color",
			yaml:    "presets:\n  - name: Broken\n    primary: blue\n",
			wantErr: "unrecognized color format",
		},
		{
			name:    "unknown harmony",
			yaml:    "presets:\n  - name: Odd\n    primary: \"#3B82F6\"\n    harmony: tetradic\n",
			wantErr: "unknown harmony",
		},
		{
			name: "duplicate id",
			yaml: "presets:\n  - name: Same Name\n    primary: \"#3B82F6\"\n" +
				"  - name: same-name\n    primary: \"#15803D\"\n",
			wantErr: "duplicate preset id",
		},
		{
			name: "two defaults",
			yaml: "presets:\n  - name: One\n    primary: \"#3B82F6\"\n    default: true\n" +
				"  - name: Two\n    primary: \"#15803D\"\n    default: true\n",
			wantErr: "multiple default presets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseDefaultsToFirst(t *testing.T) {
	c, err := Parse([]byte("presets:\n  - name: First\n    primary: \"#3B82F6\"\n  - name: Second\n    primary: \"#15803D\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.DefaultID() != "first" {
		t.Fatalf("DefaultID() = %q, want first", c.DefaultID())
	}
}
