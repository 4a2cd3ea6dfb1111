/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unknown is the sentinel value recorded when a version could not be
// determined from a source. It never parses as a version and never
// satisfies a minimum.
const Unknown = "Unknown"

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 4 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version represents a dotted-numeric version with Major, Minor, Build,
// and Revision components (e.g., "2.9.7653.47581"). Missing trailing
// components default to 0, so "2.9" compares as 2.9.0.0. The Precision
// field records how many components were present in the parsed input.
type Version struct {
	Major    int `json:"major,omitempty" yaml:"major,omitempty"`
	Minor    int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Build    int `json:"build,omitempty" yaml:"build,omitempty"`
	Revision int `json:"revision,omitempty" yaml:"revision,omitempty"`

	// Precision indicates how many components were supplied (1-4)
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`
}

// NewVersion creates a new Version with the specified components.
// The precision is set to 4 (all components supplied).
func NewVersion(major, minor, build, revision int) Version {
	return Version{
		Major:     major,
		Minor:     minor,
		Build:     build,
		Revision:  revision,
		Precision: 4,
	}
}

// String returns the string representation of the Version respecting its precision.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return fmt.Sprintf("%d", v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	case 3:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
	default:
		return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
	}
}

// ParseVersion parses a version string into a Version struct.
// Supported formats: "2", "2.9", "2.9.7653", "2.9.7653.47581", each with an
// optional "v" prefix. Missing trailing components default to 0.
// The sentinel Unknown is not a version and returns ErrNonNumeric.
// Returns an error if the string is empty, a component is non-numeric or
// negative, or there are more than 4 components.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return Version{}, ErrTooManyComponents
	}

	var v Version
	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}

		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Build = num
		case 3:
			v.Revision = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests. For runtime data,
// always use ParseVersion and handle errors explicitly.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Compare returns an integer comparing two versions numerically,
// component by component in declared order:
// -1 if v < other, 0 if v == other, 1 if v > other.
// Missing components compare as 0, so "2.9" equals "2.9.0.0".
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Build, other.Build); c != 0 {
		return c
	}
	return compareInt(v.Revision, other.Revision)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// Equals returns true if all components of v and other match.
func (v Version) Equals(other Version) bool {
	return v.Compare(other) == 0
}

// IsValid returns true if the version has valid values.
// All components must be non-negative and precision must be 1-4.
func (v Version) IsValid() bool {
	if v.Major < 0 || v.Minor < 0 || v.Build < 0 || v.Revision < 0 {
		return false
	}
	if v.Precision < 1 || v.Precision > 4 {
		return false
	}
	return true
}

// Compare parses and numerically compares two version strings:
// -1 if a < b, 0 if a == b, 1 if a > b.
// Lexical comparison is explicitly wrong here ("2.10" orders after "2.9").
func Compare(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", a, err)
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", b, err)
	}
	return va.Compare(vb), nil
}

// MeetsMinimum reports whether the candidate version string satisfies the
// minimum. The Unknown sentinel never satisfies a minimum and is not parsed.
// A malformed candidate fails closed (false). A malformed minimum also
// returns false; callers validate the minimum up front with ValidateMinimum.
func MeetsMinimum(candidate, minimum string) bool {
	if candidate == Unknown || minimum == Unknown {
		return false
	}
	c, err := Compare(candidate, minimum)
	if err != nil {
		return false
	}
	return c >= 0
}

// ValidateMinimum checks that a caller-supplied minimum version is parseable.
// This is the only version fault that propagates as a hard error: a bad
// minimum invalidates the whole batch, whereas bad candidates fail closed.
func ValidateMinimum(minimum string) error {
	if minimum == Unknown {
		return fmt.Errorf("%w: %q", ErrNonNumeric, minimum)
	}
	if _, err := ParseVersion(minimum); err != nil {
		return err
	}
	return nil
}
