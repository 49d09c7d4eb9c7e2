package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origVersion := Version
	origCommit := GitCommit
	origBuildTime := BuildTime

	defer func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}()

	Version = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"

	result := String()
	if !strings.Contains(result, "flowerpass") {
		t.Errorf("String() should contain 'flowerpass', got: %s", result)
	}
	if !strings.Contains(result, "dev") {
		t.Errorf("String() should contain version 'dev', got: %s", result)
	}
	if !strings.Contains(result, runtime.Version()) {
		t.Errorf("String() should contain Go version, got: %s", result)
	}

	Version = "1.2.3"
	GitCommit = "abc123def"
	BuildTime = "2026-01-15T10:30:00Z"

	result = String()
	if !strings.Contains(result, "1.2.3") {
		t.Errorf("String() should contain version '1.2.3', got: %s", result)
	}
	if !strings.Contains(result, "abc123def") {
		t.Errorf("String() should contain commit, got: %s", result)
	}
}

func TestInfo(t *testing.T) {
	info := Info()

	for _, key := range []string{"version", "commit", "buildTime", "goVersion", "platform"} {
		if _, ok := info[key]; !ok {
			t.Errorf("Info() missing key %q", key)
		}
	}

	if info["goVersion"] != runtime.Version() {
		t.Errorf("Info() goVersion = %s, want %s", info["goVersion"], runtime.Version())
	}
	if !strings.Contains(info["platform"], "/") {
		t.Errorf("Info() platform should be os/arch, got: %s", info["platform"])
	}
}
