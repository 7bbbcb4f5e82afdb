// Package feature resolves the named, version-gated behavior toggles
// spec.md §3 calls FeatureSet against a semver-like world version.
// Version comparison is delegated to golang.org/x/mod/semver (already
// an ecosystem dependency in this ecosystem via dm-vev-adamant) rather
// than hand-rolled integer parsing, after normalizing Minecraft's
// two-component "major version" strings into full semver triples.
package feature

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ConditionGroup is an AND-list of predicate conditions. A bare string
// in Features.json (Condition ::= string | string[]) normalizes to a
// one-element group.
type ConditionGroup []string

// UnmarshalJSON accepts either a bare string or a list of strings,
// matching the Condition grammar in spec.md §6.
func (c *ConditionGroup) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = ConditionGroup{single}
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return err
	}
	*c = ConditionGroup(multi)
	return nil
}

// Definition is one entry of Features.json: a named feature and the
// OR-reduced list of AND-condition-groups that enable it.
type Definition struct {
	Name     string           `json:"name"`
	Versions []ConditionGroup `json:"versions"`
}

// Version is a semver-like world version string with the comparison
// methods spec.md §3 requires (>, >=, <, <=, ==) plus MajorVersion.
type Version string

// normalize pads a bare "1.14" or "1.14.2" style string out to a full
// "vMAJOR.MINOR.PATCH" semver string that golang.org/x/mod/semver can compare.
func normalize(v string) string {
	v = strings.TrimPrefix(v, "v")
	parts := strings.Split(v, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return "v" + strings.Join(parts, ".")
}

// MajorVersion returns the "1.14"-style major version: the first two
// dot-separated components, which is how Minecraft names its releases.
func (v Version) MajorVersion() string {
	parts := strings.Split(string(v), ".")
	if len(parts) >= 2 {
		return parts[0] + "." + parts[1]
	}
	return parts[0]
}

func (v Version) compare(other string) int {
	return semver.Compare(normalize(string(v)), normalize(other))
}

// Greater reports whether v > other (full semver comparison).
func (v Version) Greater(other string) bool { return v.compare(other) > 0 }

// GreaterOrEqual reports whether v >= other.
func (v Version) GreaterOrEqual(other string) bool { return v.compare(other) >= 0 }

// Less reports whether v < other.
func (v Version) Less(other string) bool { return v.compare(other) < 0 }

// LessOrEqual reports whether v <= other.
func (v Version) LessOrEqual(other string) bool { return v.compare(other) <= 0 }

// Equal reports whether v's major version equals other's major version.
// This is the bare-condition match ("1.14" matches every "1.14.x"); the
// explicit "==" predicate uses exactEqual instead, which does not
// collapse the patch component.
func (v Version) Equal(other string) bool {
	return v.MajorVersion() == Version(other).MajorVersion()
}

// exactEqual reports whether v and other normalize to the identical
// semver triple, so "== 1.14" (normalized "v1.14.0") matches "1.14" and
// "1.14.0" but not "1.14.1".
func (v Version) exactEqual(other string) bool {
	return semver.Compare(normalize(string(v)), normalize(other)) == 0
}

// Set resolves a fixed list of Definitions against a fixed Version.
// Immutable once built; safe to share across simulators.
type Set struct {
	enabled map[string]bool
}

// New resolves every definition's OR-of-ANDs condition grammar against
// version once and freezes the result.
func New(defs []Definition, version Version) *Set {
	s := &Set{enabled: make(map[string]bool, len(defs))}
	for _, d := range defs {
		s.enabled[d.Name] = matchesAny(d.Versions, version)
	}
	return s
}

// Enabled reports whether the named feature is enabled. An unknown
// feature name is always disabled.
func (s *Set) Enabled(name string) bool {
	return s.enabled[name]
}

func matchesAny(groups []ConditionGroup, version Version) bool {
	for _, group := range groups {
		if matchesAll(group, version) {
			return true
		}
	}
	return false
}

func matchesAll(group ConditionGroup, version Version) bool {
	for _, cond := range group {
		if !matchesCondition(cond, version) {
			return false
		}
	}
	return len(group) > 0
}

var predicates = []string{">=", "<=", "==", ">", "<"}

func matchesCondition(cond string, version Version) bool {
	cond = strings.TrimSpace(cond)
	for _, pred := range predicates {
		if strings.HasPrefix(cond, pred) {
			target := strings.TrimSpace(strings.TrimPrefix(cond, pred))
			return matchesPredicate(pred, target, version)
		}
	}
	// bare majorVersion: "1.14" matches every "1.14.x".
	return version.Equal(cond)
}

func matchesPredicate(pred, target string, version Version) bool {
	switch pred {
	case "==":
		return version.exactEqual(target)
	case ">=":
		return version.GreaterOrEqual(target)
	case "<=":
		return version.LessOrEqual(target)
	case ">":
		return version.Greater(target)
	case "<":
		return version.Less(target)
	default:
		panic(fmt.Sprintf("feature: unknown predicate %q", pred))
	}
}
