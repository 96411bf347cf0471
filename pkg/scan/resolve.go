package scan

import "github.com/yaklabco/docmodel/pkg/config"

// ResolvedScanner pairs a Scanner with its resolved configuration.
type ResolvedScanner struct {
	// Scanner is the underlying scanner implementation.
	Scanner Scanner

	// Enabled indicates whether the scanner should be run.
	Enabled bool

	// Config is the scanner-specific configuration (may be nil).
	Config *config.ScannerConfig
}

// ResolveScanners determines which scanners to run based on registry and
// config. Returns only enabled scanners, sorted by ID.
//
// Enablement is decided by the scanner default, then the config file, then
// the CLI enable and disable lists, which accept IDs or names.
func ResolveScanners(registry *Registry, cfg *config.Config) []ResolvedScanner {
	var resolved []ResolvedScanner

	for _, scanner := range registry.Scanners() {
		rs := resolveScanner(registry, scanner, cfg)
		if rs.Enabled {
			resolved = append(resolved, rs)
		}
	}

	return resolved
}

func resolveScanner(registry *Registry, scanner Scanner, cfg *config.Config) ResolvedScanner {
	rs := ResolvedScanner{
		Scanner: scanner,
		Enabled: scanner.DefaultEnabled(),
	}

	if cfg == nil {
		return rs
	}

	if sc, ok := cfg.Scanners[scanner.ID()]; ok {
		rs.Config = &sc
		if sc.Enabled != nil {
			rs.Enabled = *sc.Enabled
		}
	}

	if listed(registry, cfg.EnableScanners, scanner.ID()) {
		rs.Enabled = true
	}
	if listed(registry, cfg.DisableScanners, scanner.ID()) {
		rs.Enabled = false
	}

	return rs
}

func listed(registry *Registry, keys []string, id string) bool {
	for _, key := range keys {
		if key == id {
			return true
		}
		if canonical, ok := registry.CanonicalID(key); ok && canonical == id {
			return true
		}
	}
	return false
}
