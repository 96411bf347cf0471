package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docmodel/pkg/config"
)

func TestFormatScannerID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.LabelFormat
		id     string
		label  string
		want   string
	}{
		{"name format", config.LabelFormatName, "SCN001", "functions", "functions"},
		{"id format", config.LabelFormatID, "SCN001", "functions", "SCN001"},
		{"combined format", config.LabelFormatCombined, "SCN001", "functions", "SCN001/functions"},
		{"empty name", config.LabelFormatName, "SCN001", "", "SCN001"},
		{"default to combined", config.LabelFormat(""), "SCN003", "custom-properties", "SCN003/custom-properties"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatScannerID(tt.format, tt.id, tt.label))
		})
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range config.ValidFormats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestConfig_DocumentType(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.TypeMarkdown, cfg.DocumentType("docs/README.MD"))
	assert.Equal(t, config.TypeJavaScript, cfg.DocumentType("x.mjs"))
	assert.Equal(t, config.TypeCSS, cfg.DocumentType("a/b.css"))
	assert.Empty(t, cfg.DocumentType("main.go"))

	cfg.Extensions[".mdx"] = config.TypeMarkdown
	assert.Equal(t, config.TypeMarkdown, cfg.DocumentType("page.mdx"))

	var nilCfg *config.Config
	assert.Equal(t, config.TypeCSS, nilCfg.DocumentType("x.css"))
}

func TestConfig_ScannerEnabled(t *testing.T) {
	t.Parallel()

	off := false
	cfg := config.NewConfig()
	cfg.Scanners["SCN002"] = config.ScannerConfig{Enabled: &off}
	cfg.Scanners["SCN003"] = config.ScannerConfig{Options: map[string]any{"x": 1}}

	enabled, set := cfg.ScannerEnabled("SCN002")
	assert.True(t, set)
	assert.False(t, enabled)

	_, set = cfg.ScannerEnabled("SCN003")
	assert.False(t, set)
	_, set = cfg.ScannerEnabled("SCN001")
	assert.False(t, set)
}
