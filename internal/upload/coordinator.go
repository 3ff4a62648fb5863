// Package upload coordinates the signed-upload handoff: client-side file
// gating, a fresh single-use authorization from the backend, then a direct
// multipart upload to the storage provider.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/hrmstack/leavectl/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedType is returned when the file's MIME type is not in
	// the constraint's allow list. No network call is made.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrSizeOutOfRange is returned when the file size falls outside the
	// constraint's bounds. No network call is made.
	ErrSizeOutOfRange = errors.New("file size out of range")

	// ErrAuthorizationFailed is returned when the backend refuses to issue
	// an upload authorization. The operation aborts with no partial state.
	ErrAuthorizationFailed = errors.New("upload authorization failed")

	// ErrUploadFailed is returned when the storage provider rejects the
	// upload. The spent authorization is discarded; a retry starts over
	// with a fresh one.
	ErrUploadFailed = errors.New("upload failed")
)

// File is the in-memory file a caller wants to attach
type File struct {
	Name     string
	MIMEType string
	Content  []byte
}

// Size returns the file size in bytes
func (f File) Size() int64 {
	return int64(len(f.Content))
}

// SignatureIssuer obtains a fresh single-use upload authorization from the
// backend. Implemented by the HRMS API client.
type SignatureIssuer interface {
	UploadSignature(ctx context.Context, folder, resourceType string) (*models.UploadAuthorization, error)
}

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Coordinator performs one upload per call. It never retries on its own:
// transient failures are surfaced and the retry decision stays with the
// caller, so a flaky network cannot produce duplicate remote objects.
type Coordinator struct {
	issuer       SignatureIssuer
	httpClient   HTTPClient
	uploadBase   string // e.g. https://api.cloudinary.com
	folder       string
	resourceType string
	logger       *zap.Logger
}

// Config holds coordinator configuration
type Config struct {
	UploadBaseURL string
	Folder        string
	ResourceType  string
	Timeout       time.Duration
}

// NewCoordinator creates an upload coordinator
func NewCoordinator(cfg Config, issuer SignatureIssuer, logger *zap.Logger) *Coordinator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Coordinator{
		issuer:       issuer,
		httpClient:   &http.Client{Timeout: timeout},
		uploadBase:   cfg.UploadBaseURL,
		folder:       cfg.Folder,
		resourceType: cfg.ResourceType,
		logger:       logger,
	}
}

// providerResponse is the storage provider's upload response
type providerResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload gates the file against the constraint, obtains a fresh
// authorization and performs the direct upload. On success exactly one
// remote object exists and its stable reference is returned; on any failure
// no attachment reference is recorded.
func (c *Coordinator) Upload(ctx context.Context, file File, constraint FileConstraint) (models.Attachment, error) {
	if !constraint.AllowsType(file.MIMEType) {
		return models.Attachment{}, fmt.Errorf("%w: %s", ErrUnsupportedType, file.MIMEType)
	}
	if !constraint.AllowsSize(file.Size()) {
		return models.Attachment{}, fmt.Errorf("%w: %d bytes (allowed %d-%d)",
			ErrSizeOutOfRange, file.Size(), constraint.MinSizeBytes, constraint.MaxSizeBytes)
	}

	auth, err := c.issuer.UploadSignature(ctx, c.folder, c.resourceType)
	if err != nil {
		c.logger.Warn("Upload authorization request failed",
			zap.String("folder", c.folder),
			zap.Error(err))
		return models.Attachment{}, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	url, err := c.performUpload(ctx, file, auth)
	if err != nil {
		return models.Attachment{}, err
	}

	c.logger.Info("Attachment uploaded",
		zap.String("filename", file.Name),
		zap.Int64("size", file.Size()),
		zap.String("url", url))

	return models.Attachment{URL: url, Filename: file.Name}, nil
}

// performUpload sends the multipart request to the storage provider using
// the fields of a single-use authorization.
func (c *Coordinator) performUpload(ctx context.Context, file File, auth *models.UploadAuthorization) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	fields := map[string]string{
		"api_key":   auth.APIKey,
		"timestamp": strconv.FormatInt(auth.Timestamp, 10),
		"signature": auth.Signature,
		"folder":    auth.Folder,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/%s/upload", c.uploadBase, auth.CloudName, c.resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Storage provider request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Storage provider returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload))
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var pr providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("%w: invalid provider response: %v", ErrUploadFailed, err)
	}

	url := pr.SecureURL
	if url == "" {
		url = pr.URL
	}
	if url == "" {
		return "", fmt.Errorf("%w: provider response carried no url", ErrUploadFailed)
	}
	return url, nil
}
