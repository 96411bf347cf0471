package scan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/scan"
)

type stubDoc struct {
	document.Document

	docType string
}

func (d stubDoc) Type() string   { return d.docType }
func (d stubDoc) URL() string    { return "x" }
func (d stubDoc) IsInline() bool { return false }

// stubScanner returns fixed candidates or an error.
type stubScanner struct {
	scan.BaseScanner

	off   bool
	found []feature.Scanned
	err   error
	seen  *[]*scan.Context
}

func (s *stubScanner) DefaultEnabled() bool { return !s.off }

func (s *stubScanner) Scan(ctx *scan.Context) ([]feature.Scanned, error) {
	if s.seen != nil {
		*s.seen = append(*s.seen, ctx)
	}
	return s.found, s.err
}

func newStub(id, name, docType string) *stubScanner {
	return &stubScanner{BaseScanner: scan.NewBaseScanner(id, name, "stub", docType)}
}

func TestBaseScanner(t *testing.T) {
	t.Parallel()

	base := scan.NewBaseScanner("SCN900", "stub", "finds nothing", "css")
	assert.Equal(t, "SCN900", base.ID())
	assert.Equal(t, "stub", base.Name())
	assert.Equal(t, "finds nothing", base.Description())
	assert.Equal(t, "css", base.DocumentType())
	assert.True(t, base.DefaultEnabled())

	found, err := base.Scan(nil)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := scan.NewRegistry()
	reg.Register(newStub("SCN002", "elements", "javascript"))
	reg.Register(newStub("SCN001", "functions", "javascript"))
	reg.Register(newStub("SCN003", "custom-properties", "css"))

	assert.Equal(t, []string{"SCN001", "SCN002", "SCN003"}, reg.IDs())

	got, ok := reg.Get("functions")
	require.True(t, ok)
	assert.Equal(t, "SCN001", got.ID())

	_, ok = reg.GetByID("functions")
	assert.False(t, ok)
	_, ok = reg.GetByName("SCN001")
	assert.False(t, ok)

	id, ok := reg.CanonicalID("custom-properties")
	assert.True(t, ok)
	assert.Equal(t, "SCN003", id)

	js := reg.ForType("javascript")
	require.Len(t, js, 2)
	assert.Equal(t, "SCN001", js[0].ID())
	assert.Empty(t, reg.ForType("markdown"))
	assert.Len(t, reg.Scanners(), 3)
}

func TestRegistry_ReplaceDropsOldName(t *testing.T) {
	t.Parallel()

	reg := scan.NewRegistry()
	reg.Register(newStub("SCN001", "old", "css"))
	reg.Register(newStub("SCN001", "new", "css"))

	_, ok := reg.GetByName("old")
	assert.False(t, ok)
	got, ok := reg.Get("new")
	require.True(t, ok)
	assert.Equal(t, "SCN001", got.ID())
}

func TestResolveScanners(t *testing.T) {
	t.Parallel()

	reg := scan.NewRegistry()
	reg.Register(newStub("SCN001", "functions", "javascript"))
	reg.Register(newStub("SCN002", "elements", "javascript"))
	off := newStub("SCN003", "custom-properties", "css")
	off.off = true
	reg.Register(off)

	ids := func(rs []scan.ResolvedScanner) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Scanner.ID())
		}
		return out
	}

	assert.Equal(t, []string{"SCN001", "SCN002"}, ids(scan.ResolveScanners(reg, nil)))

	disabled := false
	cfg := config.NewConfig()
	cfg.Scanners["SCN002"] = config.ScannerConfig{Enabled: &disabled, Options: map[string]any{"k": "v"}}
	assert.Equal(t, []string{"SCN001"}, ids(scan.ResolveScanners(reg, cfg)))

	cfg.EnableScanners = []string{"elements", "SCN003"}
	cfg.DisableScanners = []string{"functions"}
	resolved := scan.ResolveScanners(reg, cfg)
	assert.Equal(t, []string{"SCN002", "SCN003"}, ids(resolved))
	require.NotNil(t, resolved[0].Config)
	assert.Equal(t, "v", resolved[0].Config.Options["k"])
}

func TestEngine_ScanDocument(t *testing.T) {
	t.Parallel()

	var seen []*scan.Context
	fn := &feature.ScannedFunction{Name: "f"}
	el := &feature.ScannedElement{TagName: "x-a"}

	first := newStub("SCN001", "functions", "javascript")
	first.found = []feature.Scanned{fn, nil}
	first.seen = &seen
	failing := newStub("SCN002", "elements", "javascript")
	failing.err = errors.New("boom")
	third := newStub("SCN004", "more", "javascript")
	third.found = []feature.Scanned{el}
	css := newStub("SCN003", "custom-properties", "css")
	css.seen = &seen

	reg := scan.NewRegistry()
	for _, s := range []scan.Scanner{first, failing, third, css} {
		reg.Register(s)
	}
	cfg := config.NewConfig()
	engine := scan.NewEngine(reg, cfg)
	assert.Len(t, engine.Scanners(), 4)

	doc := stubDoc{docType: "javascript"}
	result, err := engine.Scan(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, scan.Candidate{ScannerID: "SCN001", Scanned: fn}, result.Candidates[0])
	assert.Equal(t, scan.Candidate{ScannerID: "SCN004", Scanned: el}, result.Candidates[1])

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "SCN002", result.Errors[0].ScannerID)
	assert.EqualError(t, result.Errors[0], "scanner SCN002 failed on javascript document at x: boom")

	require.Len(t, seen, 1, "the css scanner does not run on javascript")
	assert.Same(t, cfg, seen[0].Config)
	assert.Equal(t, doc, seen[0].Document)
}

func TestEngine_ScanDocument_Cancelled(t *testing.T) {
	t.Parallel()

	reg := scan.NewRegistry()
	reg.Register(newStub("SCN001", "functions", "javascript"))
	engine := scan.NewEngine(reg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Scan(ctx, stubDoc{docType: "javascript"})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.Candidates)
}

func TestContext_Options(t *testing.T) {
	t.Parallel()

	sc := scan.NewContext(context.Background(), nil, nil, &config.ScannerConfig{Options: map[string]any{
		"n":     int64(3),
		"f":     2.0,
		"s":     "x",
		"b":     true,
		"list":  []any{"a", 1, "b"},
		"wrong": 5,
	}})

	assert.Equal(t, 3, sc.OptionInt("n", 0))
	assert.Equal(t, 2, sc.OptionInt("f", 0))
	assert.Equal(t, 7, sc.OptionInt("s", 7))
	assert.Equal(t, "x", sc.OptionString("s", ""))
	assert.Equal(t, "d", sc.OptionString("wrong", "d"))
	assert.True(t, sc.OptionBool("b", false))
	assert.True(t, sc.OptionBool("missing", true))
	assert.Equal(t, []string{"a", "b"}, sc.OptionStringSlice("list", nil))
	assert.Equal(t, []string{"z"}, sc.OptionStringSlice("wrong", []string{"z"}))
	assert.False(t, sc.Cancelled())

	bare := scan.NewContext(context.Background(), nil, nil, nil)
	assert.Equal(t, "d", bare.OptionString("s", "d"))
}
