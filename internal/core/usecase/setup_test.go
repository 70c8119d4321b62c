package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk is on fire")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("disk is on fire")
}

func TestSetupResolvePrefersEnvironment(t *testing.T) {
	store := newSettingsFake()
	store.values[KeyCloudName] = "localcloud"
	store.values[KeyUploadPreset] = "localpreset"

	uc := NewSetupUseCase("envcloud", "envpreset", store, nil)
	cfg := uc.Resolve(context.Background())

	if cfg.Source != domain.SourceEnvironment {
		t.Fatalf("expected environment tier, got %s", cfg.Source)
	}
	if cfg.CloudName != "envcloud" || cfg.UploadPreset != "envpreset" {
		t.Fatalf("unexpected configuration %+v", cfg)
	}
}

func TestSetupResolveFallsBackToStore(t *testing.T) {
	store := newSettingsFake()
	uc := NewSetupUseCase("", "", store, nil)

	if cfg := uc.Resolve(context.Background()); cfg.Source != domain.SourceUnset {
		t.Fatalf("expected unset tier with empty store, got %s", cfg.Source)
	}

	if err := uc.Persist(context.Background(), "  mycloud  ", "mypreset"); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	cfg := uc.Resolve(context.Background())
	if cfg.Source != domain.SourcePersistedLocal {
		t.Fatalf("expected local tier after persist, got %s", cfg.Source)
	}
	if cfg.CloudName != "mycloud" {
		t.Fatalf("expected trimmed cloud name, got %q", cfg.CloudName)
	}
}

func TestSetupResolveToleratesBrokenStore(t *testing.T) {
	uc := NewSetupUseCase("", "", brokenStore{}, nil)
	if cfg := uc.Resolve(context.Background()); cfg.Source != domain.SourceUnset {
		t.Fatalf("expected unset tier when the store is unreadable, got %s", cfg.Source)
	}
}

func TestSetupPersistValidation(t *testing.T) {
	uc := NewSetupUseCase("", "", newSettingsFake(), nil)

	err := uc.Persist(context.Background(), "   ", "preset")
	if err == nil || !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank cloud name, got %v", err)
	}
	err = uc.Persist(context.Background(), "cloud", "")
	if err == nil || !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank preset, got %v", err)
	}
}

func TestSetupPersistSurfacesStoreFailure(t *testing.T) {
	uc := NewSetupUseCase("", "", brokenStore{}, nil)
	err := uc.Persist(context.Background(), "cloud", "preset")
	if err == nil || domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected a plain store error, got %v", err)
	}
}

func TestSetupRememberedEmail(t *testing.T) {
	store := newSettingsFake()
	uc := NewSetupUseCase("", "", store, nil)

	if got := uc.RememberedEmail(context.Background()); got != "" {
		t.Fatalf("expected empty remembered email, got %q", got)
	}
	store.values[KeyRememberedEmail] = "a@b.com"
	if got := uc.RememberedEmail(context.Background()); got != "a@b.com" {
		t.Fatalf("RememberedEmail() = %q", got)
	}
}
