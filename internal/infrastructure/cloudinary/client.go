// Package cloudinary implements the upload transfer against the Cloudinary
// unsigned upload endpoint.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

const DefaultBaseURL = "https://api.cloudinary.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	AssetID   string `json:"asset_id"`
}

// Upload sends exactly one multipart transfer with the file bytes, the
// upload-policy name, the destination folder and object id, and the combined
// context string. A missing credential fails locally before any network is
// attempted.
func (c *Client) Upload(
	ctx context.Context,
	file domain.FileHandle,
	target domain.UploadTarget,
	cfg domain.Configuration,
) (domain.UploadResult, error) {
	if !cfg.Complete() {
		return domain.UploadResult{}, domain.WrapError(
			domain.ErrConfiguration, "upload", errors.New(cfg.MissingCredentialMessage()))
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/auto/upload", c.baseURL, cfg.CloudName)
	var parsed uploadResponse
	if err := c.postMultipart(ctx, endpoint, file, target, cfg.UploadPreset, &parsed); err != nil {
		return domain.UploadResult{}, err
	}

	url := parsed.SecureURL
	if url == "" {
		url = parsed.URL
	}
	return domain.UploadResult{
		URL:          url,
		ObjectID:     parsed.PublicID,
		AssetID:      parsed.AssetID,
		ConfigSource: cfg.Source,
	}, nil
}
