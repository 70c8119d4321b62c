package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

// Error bodies are opaque text in the worst case; cap what we harvest.
const maxErrorBodyBytes = 64 << 10

func (c *Client) postMultipart(
	ctx context.Context,
	endpoint string,
	file domain.FileHandle,
	target domain.UploadTarget,
	uploadPreset string,
	out any,
) error {
	body, contentType, err := encodeForm(file, target, uploadPreset)
	if err != nil {
		return fmt.Errorf("encode upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(domain.ErrNetwork, "upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return domain.WrapError(domain.ErrService, "upload", errors.New(ExtractErrorMessage(raw)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A 2xx with an unreadable body is still the service misbehaving.
		return domain.WrapError(domain.ErrService, "upload", fmt.Errorf("decode upload response: %w", err))
	}
	return nil
}

func encodeForm(file domain.FileHandle, target domain.UploadTarget, uploadPreset string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewind file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, "", fmt.Errorf("copy file bytes: %w", err)
	}

	fields := map[string]string{
		"upload_preset": uploadPreset,
		"folder":        target.Folder,
		"public_id":     target.ObjectID,
		"context":       target.ContextTag,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// ExtractErrorMessage recovers a human-readable message from a failure body.
// A JSON body with error.message yields that message trimmed; anything else
// yields the raw body text trimmed; an empty body yields "Unknown error".
func ExtractErrorMessage(raw []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && strings.TrimSpace(parsed.Error.Message) != "" {
		return strings.TrimSpace(parsed.Error.Message)
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "Unknown error"
}
