package review

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfileEmptyPathUsesDefaults(t *testing.T) {
	profile, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.Version != 1 {
		t.Fatalf("version = %d", profile.Version)
	}
	if profile.Review.InviteCapacity != 12 || profile.Review.ActivityLogLimit != 20 {
		t.Fatalf("review defaults = %+v", profile.Review)
	}
	if profile.Exports.BaseName != "speakers" {
		t.Fatalf("base name = %q", profile.Exports.BaseName)
	}
}

func TestLoadProfileFull(t *testing.T) {
	path := writeProfile(t, `
version = 1

[event]
name = "Summit 2026"

[review]
invite_capacity = 18
activity_log_limit = 40

[exports]
base_name = "summit26"
`)

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.Event.Name != "Summit 2026" {
		t.Fatalf("event name = %q", profile.Event.Name)
	}
	if profile.Review.InviteCapacity != 18 || profile.Review.ActivityLogLimit != 40 {
		t.Fatalf("review = %+v", profile.Review)
	}
	if profile.Exports.BaseName != "summit26" {
		t.Fatalf("base name = %q", profile.Exports.BaseName)
	}
}

func TestLoadProfilePartialGetsDefaults(t *testing.T) {
	path := writeProfile(t, `
version = 1

[event]
name = "  Summit 2026  "
`)

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.Event.Name != "Summit 2026" {
		t.Fatalf("event name must be trimmed, got %q", profile.Event.Name)
	}
	if profile.Review.InviteCapacity != 12 {
		t.Fatalf("capacity = %d, want default 12", profile.Review.InviteCapacity)
	}
	if profile.Exports.BaseName != "speakers" {
		t.Fatalf("base name = %q, want default", profile.Exports.BaseName)
	}
}

func TestLoadProfileRejectsBadVersion(t *testing.T) {
	path := writeProfile(t, "version = 2\n")

	if _, err := LoadProfile(path); err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("LoadProfile() error = %v, want version error", err)
	}
}

func TestLoadProfileRejectsNegativeValues(t *testing.T) {
	path := writeProfile(t, `
version = 1

[review]
invite_capacity = -1
`)

	if _, err := LoadProfile(path); err == nil {
		t.Fatalf("LoadProfile() expected error for negative capacity")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("LoadProfile() expected error for missing file")
	}
}
