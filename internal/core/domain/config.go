package domain

import "strings"

type ConfigSource string

const (
	SourceEnvironment    ConfigSource = "environment"
	SourcePersistedLocal ConfigSource = "local"
	SourceUnset          ConfigSource = "unset"
)

// Configuration is an immutable snapshot of the upload credentials. Source is
// SourceUnset iff at least one credential is missing.
type Configuration struct {
	CloudName    string       `json:"cloud_name"`
	UploadPreset string       `json:"upload_preset"`
	Source       ConfigSource `json:"source"`
}

// Example values shipped in docs and deploy templates. They must never be
// accepted as real credentials from the environment tier.
var (
	placeholderCloudNames = []string{"your_cloud_name", "your unsigned cloud name", "cloud_name"}
	placeholderPresets    = []string{"your_unsigned_preset", "unsigned_preset", "preset"}
)

func isPlaceholder(v string, set []string) bool {
	for _, p := range set {
		if strings.EqualFold(v, p) {
			return true
		}
	}
	return false
}

// ResolveConfiguration picks credentials by tier priority: environment values
// win when both are present and neither is a placeholder; otherwise the
// persisted-local pair wins when both are present; otherwise SourceUnset.
// Placeholder filtering applies to the environment tier only.
func ResolveConfiguration(envCloud, envPreset, localCloud, localPreset string) Configuration {
	envCloud = strings.TrimSpace(envCloud)
	envPreset = strings.TrimSpace(envPreset)
	if envCloud != "" && envPreset != "" &&
		!isPlaceholder(envCloud, placeholderCloudNames) && !isPlaceholder(envPreset, placeholderPresets) {
		return Configuration{CloudName: envCloud, UploadPreset: envPreset, Source: SourceEnvironment}
	}

	localCloud = strings.TrimSpace(localCloud)
	localPreset = strings.TrimSpace(localPreset)
	if localCloud != "" && localPreset != "" {
		return Configuration{CloudName: localCloud, UploadPreset: localPreset, Source: SourcePersistedLocal}
	}

	return Configuration{Source: SourceUnset}
}

func (c Configuration) Complete() bool {
	return c.Source != SourceUnset
}

// MissingCredentialMessage names the first missing credential, cloud name
// before upload preset.
func (c Configuration) MissingCredentialMessage() string {
	if c.CloudName == "" {
		return "Cloudinary cloud name is not configured. Save it in setup or set CLOUDINARY_CLOUD_NAME."
	}
	return "Cloudinary unsigned upload preset is not configured. Save it in setup or set CLOUDINARY_UPLOAD_PRESET."
}
