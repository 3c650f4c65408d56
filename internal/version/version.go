package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with:
// -ldflags "-X github.com/bamreyes/Project-Green/internal/version.Version=vX.Y.Z"
var Version = "dev"

func Current() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	return v
}

// IsRelease reports whether the current version is a semver tag.
// Builds without a tag ("dev", commit hashes) are not releases.
func IsRelease() bool {
	_, ok := canonical(Current())
	return ok
}

// Canonical returns the semver form of the current version, or "" for
// development builds.
func Canonical() string {
	v, _ := canonical(Current())
	return v
}

func canonical(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return semver.Canonical(v), true
}
