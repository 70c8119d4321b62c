package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
	"github.com/mkravchenko/receiptdrop/internal/core/ports"
)

// Settings store keys, kept stable across releases so saved devices keep
// working after upgrades.
const (
	KeyCloudName       = "cloudinary_cloud_name"
	KeyUploadPreset    = "cloudinary_unsigned_preset"
	KeyRememberedEmail = "uploader_client_email"
)

// SetupUseCase resolves upload credentials from the environment tier and the
// persisted-local tier, and persists user-entered credentials.
type SetupUseCase struct {
	envCloud  string
	envPreset string
	settings  ports.SettingsStore
	logger    *slog.Logger
}

func NewSetupUseCase(envCloud, envPreset string, settings ports.SettingsStore, logger *slog.Logger) *SetupUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetupUseCase{
		envCloud:  envCloud,
		envPreset: envPreset,
		settings:  settings,
		logger:    logger,
	}
}

// Resolve computes a fresh configuration snapshot on every call so that a
// settings edit takes effect on the next attempt. It never fails: a broken
// store reads as the empty tier.
func (uc *SetupUseCase) Resolve(ctx context.Context) domain.Configuration {
	localCloud := uc.readSetting(ctx, KeyCloudName)
	localPreset := uc.readSetting(ctx, KeyUploadPreset)
	return domain.ResolveConfiguration(uc.envCloud, uc.envPreset, localCloud, localPreset)
}

// Persist writes both credentials to the local store, overwriting prior
// values. No placeholder filtering here: the user typed these on purpose.
func (uc *SetupUseCase) Persist(ctx context.Context, cloudName, uploadPreset string) error {
	cloudName = strings.TrimSpace(cloudName)
	uploadPreset = strings.TrimSpace(uploadPreset)
	if cloudName == "" {
		return domain.WrapError(domain.ErrValidation, "persist setup", errors.New("cloud name is required"))
	}
	if uploadPreset == "" {
		return domain.WrapError(domain.ErrValidation, "persist setup", errors.New("upload preset is required"))
	}

	if err := uc.settings.Set(ctx, KeyCloudName, cloudName); err != nil {
		return fmt.Errorf("persist cloud name: %w", err)
	}
	if err := uc.settings.Set(ctx, KeyUploadPreset, uploadPreset); err != nil {
		return fmt.Errorf("persist upload preset: %w", err)
	}
	return nil
}

// RememberedEmail returns the last email the user asked to remember, or "".
func (uc *SetupUseCase) RememberedEmail(ctx context.Context) string {
	return uc.readSetting(ctx, KeyRememberedEmail)
}

func (uc *SetupUseCase) readSetting(ctx context.Context, key string) string {
	v, err := uc.settings.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("settings_read_failed", "key", key, "error", err)
		return ""
	}
	return v
}
