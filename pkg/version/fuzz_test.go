package version

import (
	"testing"
)

// FuzzParseVersion performs fuzz testing on ParseVersion to find edge cases
func FuzzParseVersion(f *testing.F) {
	// Seed corpus with valid and edge case inputs
	f.Add("2")
	f.Add("2.9")
	f.Add("2.9.7653")
	f.Add("2.9.7653.47581")
	f.Add("v1.2.3.4")
	f.Add("0")
	f.Add("0.0.0.0")
	f.Add("999.999.999.999")
	f.Add("")
	f.Add(".")
	f.Add("..")
	f.Add("1.")
	f.Add(".1")
	f.Add("1..2")
	f.Add("v")
	f.Add("-1")
	f.Add("1.-2")
	f.Add("a.b.c.d")
	f.Add("1.2.3.4.5")
	f.Add("Unknown")
	f.Add("   1.2.3.4")

	f.Fuzz(func(t *testing.T, input string) {
		// ParseVersion should never panic
		v, err := ParseVersion(input)

		if err == nil {
			if !v.IsValid() {
				t.Errorf("ParseVersion(%q) returned invalid version: %+v", input, v)
			}

			s := v.String()

			// Re-parsing the string should produce the same version
			v2, err2 := ParseVersion(s)
			if err2 != nil {
				t.Errorf("Re-parsing %q (from %q) failed: %v", s, input, err2)
			} else if v != v2 {
				t.Errorf("Round-trip mismatch for %q: %+v != %+v", input, v, v2)
			}

			// Comparison must agree with itself
			if v.Compare(v) != 0 {
				t.Errorf("Compare(%q, %q) != 0", s, s)
			}

			// Comparison methods must not panic
			other := NewVersion(2, 9, 7653, 47581)
			_ = v.EqualsOrNewer(other)
			_ = v.IsNewer(other)
			_ = v.Equals(other)
		}
	})
}

// FuzzMeetsMinimum ensures MeetsMinimum never panics and the sentinel
// always fails closed.
func FuzzMeetsMinimum(f *testing.F) {
	f.Add("2.9.0.0", "2.9.7653.47581")
	f.Add(Unknown, "2.9.0.0")
	f.Add("garbage", "2.9.0.0")
	f.Add("2.10", "2.9")

	f.Fuzz(func(t *testing.T, candidate, minimum string) {
		result := MeetsMinimum(candidate, minimum)
		if candidate == Unknown && result {
			t.Errorf("MeetsMinimum(Unknown, %q) = true", minimum)
		}
	})
}
