package version

import (
	"testing"
)

func BenchmarkParseVersion(b *testing.B) {
	tests := []string{
		"2",
		"2.9",
		"2.9.7653",
		"2.9.7653.47581",
		"v1.2.3.4",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		input := tests[i%len(tests)]
		_, _ = ParseVersion(input)
	}
}

func BenchmarkParseVersionFull(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseVersion("2.9.7653.47581")
	}
}

func BenchmarkCompare(b *testing.B) {
	v1, _ := ParseVersion("2.10.0.0")
	v2, _ := ParseVersion("2.9.7653.47581")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v1.Compare(v2)
	}
}

func BenchmarkMeetsMinimum(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MeetsMinimum("2.9.7654.0", "2.9.7653.47581")
	}
}

func BenchmarkMeetsMinimumUnknown(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MeetsMinimum(Unknown, "2.9.7653.47581")
	}
}

func BenchmarkVersionString(b *testing.B) {
	v := NewVersion(2, 9, 7653, 47581)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.String()
	}
}
