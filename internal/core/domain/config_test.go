package domain

import (
	"strings"
	"testing"
)

func TestResolveConfigurationEnvironmentWins(t *testing.T) {
	cfg := ResolveConfiguration("mycloud", "real_preset", "other", "other_preset")
	if cfg.Source != SourceEnvironment {
		t.Fatalf("expected environment source, got %s", cfg.Source)
	}
	if cfg.CloudName != "mycloud" || cfg.UploadPreset != "real_preset" {
		t.Fatalf("unexpected pair %q/%q", cfg.CloudName, cfg.UploadPreset)
	}
}

func TestResolveConfigurationPlaceholderFallsThrough(t *testing.T) {
	cfg := ResolveConfiguration("your_cloud_name", "real_preset", "saved", "saved_preset")
	if cfg.Source != SourcePersistedLocal {
		t.Fatalf("expected local source, got %s", cfg.Source)
	}
	if cfg.CloudName != "saved" || cfg.UploadPreset != "saved_preset" {
		t.Fatalf("unexpected pair %q/%q", cfg.CloudName, cfg.UploadPreset)
	}
}

func TestResolveConfigurationPlaceholderCaseInsensitive(t *testing.T) {
	cfg := ResolveConfiguration("YOUR_CLOUD_NAME", "Preset", "", "")
	if cfg.Source != SourceUnset {
		t.Fatalf("expected unset source, got %s", cfg.Source)
	}
}

func TestResolveConfigurationLocalNotPlaceholderFiltered(t *testing.T) {
	// A user may legitimately name their preset "preset"; filtering applies
	// to the environment tier only.
	cfg := ResolveConfiguration("", "", "cloud_name", "preset")
	if cfg.Source != SourcePersistedLocal {
		t.Fatalf("expected local source, got %s", cfg.Source)
	}
}

func TestResolveConfigurationUnset(t *testing.T) {
	cfg := ResolveConfiguration("", "", "", "")
	if cfg.Source != SourceUnset {
		t.Fatalf("expected unset source, got %s", cfg.Source)
	}
	if cfg.Complete() {
		t.Fatalf("unset configuration must not report complete")
	}
}

func TestResolveConfigurationPartialEnvIgnored(t *testing.T) {
	cfg := ResolveConfiguration("mycloud", "", "", "")
	if cfg.Source != SourceUnset {
		t.Fatalf("expected unset source for half-set env, got %s", cfg.Source)
	}
}

func TestMissingCredentialMessageNamesCredential(t *testing.T) {
	unset := Configuration{Source: SourceUnset}
	if msg := unset.MissingCredentialMessage(); !strings.Contains(msg, "cloud name") {
		t.Fatalf("expected cloud name to be named, got %q", msg)
	}
	presetMissing := Configuration{CloudName: "mycloud", Source: SourceUnset}
	if msg := presetMissing.MissingCredentialMessage(); !strings.Contains(msg, "preset") {
		t.Fatalf("expected preset to be named, got %q", msg)
	}
}
