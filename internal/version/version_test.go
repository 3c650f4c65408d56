package version

import "testing"

func TestCurrentVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = " v1.2.3 "
	if got := Current(); got != "v1.2.3" {
		t.Fatalf("expected trimmed version, got %q", got)
	}

	Version = "   "
	if got := Current(); got != "dev" {
		t.Fatalf("expected dev fallback, got %q", got)
	}
}

func TestIsRelease(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	cases := []struct {
		in        string
		release   bool
		canonical string
	}{
		{in: "v1.2.3", release: true, canonical: "v1.2.3"},
		{in: "1.4", release: true, canonical: "v1.4.0"},
		{in: "dev", release: false, canonical: ""},
		{in: "a1b2c3d", release: false, canonical: ""},
	}
	for _, tc := range cases {
		Version = tc.in
		if got := IsRelease(); got != tc.release {
			t.Fatalf("IsRelease(%q)=%v want %v", tc.in, got, tc.release)
		}
		if got := Canonical(); got != tc.canonical {
			t.Fatalf("Canonical(%q)=%q want %q", tc.in, got, tc.canonical)
		}
	}
}
