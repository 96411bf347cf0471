// Package feature holds the two stages of the feature model: scanned
// candidates, produced by scanners without knowledge of the wider document,
// and the immutable features they resolve into.
package feature

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// Privacy is the visibility of a feature.
type Privacy string

// Privacy levels.
const (
	PrivacyPublic    Privacy = "public"
	PrivacyProtected Privacy = "protected"
	PrivacyPrivate   Privacy = "private"
)

// ParsePrivacy parses a privacy level name.
func ParsePrivacy(s string) (Privacy, bool) {
	switch p := Privacy(strings.ToLower(strings.TrimSpace(s))); p {
	case PrivacyPublic, PrivacyProtected, PrivacyPrivate:
		return p, true
	default:
		return "", false
	}
}

// PrivacyFromName infers privacy from naming convention: a "__" prefix is
// private and a "_" prefix is protected.
func PrivacyFromName(name string) Privacy {
	switch {
	case strings.HasPrefix(name, "__"):
		return PrivacyPrivate
	case strings.HasPrefix(name, "_"):
		return PrivacyProtected
	default:
		return PrivacyPublic
	}
}

// Severity is the severity of a warning.
type Severity string

// Severity levels.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity parses a severity name.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityError, SeverityWarning, SeverityInfo:
		return sev, true
	default:
		return "", false
	}
}

// Rank orders severities from info (lowest) to error (highest). Unknown
// severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Warning is a problem found while scanning or resolving.
type Warning struct {
	Code        string               `json:"code" msgpack:"code"`
	Message     string               `json:"message" msgpack:"message"`
	Severity    Severity             `json:"severity" msgpack:"severity"`
	SourceRange srcrange.SourceRange `json:"sourceRange" msgpack:"sourceRange"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", w.SourceRange, w.Severity, w.Message, w.Code)
}

// Set is an immutable sorted set of non-empty strings.
type Set struct {
	items []string
}

// NewSet returns a set of the non-empty items.
func NewSet(items ...string) Set {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	slices.Sort(out)
	return Set{items: slices.Compact(out)}
}

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, found := slices.BinarySearch(s.items, item)
	return found
}

// Items returns the members in sorted order.
func (s Set) Items() []string {
	return slices.Clone(s.items)
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.items)
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items) //nolint:wrapcheck // plain string slice
}

func (s Set) String() string {
	return "{" + strings.Join(s.items, ", ") + "}"
}
