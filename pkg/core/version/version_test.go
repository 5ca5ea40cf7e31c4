package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestAppVersion(t *testing.T) {
	if !semverRegex.MatchString(App) {
		t.Errorf("App version %q does not match semver format (x.y.z)", App)
	}
	if API != "v1" {
		t.Errorf("API = %q, want v1", API)
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != App {
		t.Errorf("Version = %q, want %q", info.Version, App)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q", info.Platform)
	}

	s := info.String()
	for _, want := range []string{"krama", App, info.Commit} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
