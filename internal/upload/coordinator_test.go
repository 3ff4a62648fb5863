package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/hrmstack/leavectl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingIssuer counts authorization requests so gate tests can prove zero
// network activity.
type countingIssuer struct {
	calls int
	auth  *models.UploadAuthorization
	err   error
}

func (i *countingIssuer) UploadSignature(ctx context.Context, folder, resourceType string) (*models.UploadAuthorization, error) {
	i.calls++
	if i.err != nil {
		return nil, i.err
	}
	return i.auth, nil
}

// fakeHTTP records requests and replies with a canned response
type fakeHTTP struct {
	calls    int
	lastReq  *http.Request
	lastBody []byte
	status   int
	body     string
	err      error
}

func (f *fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	f.lastReq = req
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(bytes.NewBufferString(f.body)),
		Header:     make(http.Header),
	}, nil
}

func testAuth() *models.UploadAuthorization {
	return &models.UploadAuthorization{
		Signature: "sig123",
		Timestamp: 1718000000,
		CloudName: "acme",
		APIKey:    "key123",
		Folder:    "leave-attachments",
	}
}

func newTestCoordinator(issuer SignatureIssuer, client HTTPClient) *Coordinator {
	c := NewCoordinator(Config{
		UploadBaseURL: "https://api.cloudinary.com",
		Folder:        "leave-attachments",
		ResourceType:  "auto",
	}, issuer, zap.NewNop())
	c.httpClient = client
	return c
}

func validFile() File {
	return File{
		Name:     "certificate.pdf",
		MIMEType: "application/pdf",
		Content:  bytes.Repeat([]byte("a"), 300*1024),
	}
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	issuer := &countingIssuer{auth: testAuth()}
	client := &fakeHTTP{status: http.StatusOK}
	c := newTestCoordinator(issuer, client)

	f := validFile()
	f.MIMEType = "application/zip"

	_, err := c.Upload(context.Background(), f, DefaultConstraint())
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Zero(t, issuer.calls, "no authorization request for a gated file")
	assert.Zero(t, client.calls, "no provider request for a gated file")
}

func TestUpload_RejectsSizeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"below minimum", 100 * 1024},
		{"one byte under", 200*1024 - 1},
		{"one byte over", 500*1024 + 1},
		{"far above maximum", 2 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &countingIssuer{auth: testAuth()}
			client := &fakeHTTP{status: http.StatusOK}
			c := newTestCoordinator(issuer, client)

			f := validFile()
			f.Content = bytes.Repeat([]byte("a"), tt.size)

			_, err := c.Upload(context.Background(), f, DefaultConstraint())
			require.ErrorIs(t, err, ErrSizeOutOfRange)
			assert.Zero(t, issuer.calls)
			assert.Zero(t, client.calls)
		})
	}
}

func TestUpload_BoundarySizesAccepted(t *testing.T) {
	for _, size := range []int{200 * 1024, 500 * 1024} {
		t.Run(fmt.Sprintf("%d bytes", size), func(t *testing.T) {
			issuer := &countingIssuer{auth: testAuth()}
			client := &fakeHTTP{status: http.StatusOK, body: `{"secure_url":"https://cdn.acme.com/x.pdf"}`}
			c := newTestCoordinator(issuer, client)

			f := validFile()
			f.Content = bytes.Repeat([]byte("a"), size)

			att, err := c.Upload(context.Background(), f, DefaultConstraint())
			require.NoError(t, err)
			assert.Equal(t, "https://cdn.acme.com/x.pdf", att.URL)
		})
	}
}

func TestUpload_AuthorizationFailureAborts(t *testing.T) {
	issuer := &countingIssuer{err: errors.New("backend unavailable")}
	client := &fakeHTTP{status: http.StatusOK}
	c := newTestCoordinator(issuer, client)

	_, err := c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.ErrorIs(t, err, ErrAuthorizationFailed)
	assert.Equal(t, 1, issuer.calls)
	assert.Zero(t, client.calls, "no provider request without an authorization")
}

func TestUpload_Success(t *testing.T) {
	issuer := &countingIssuer{auth: testAuth()}
	client := &fakeHTTP{status: http.StatusOK, body: `{"secure_url":"https://cdn.acme.com/leave/certificate.pdf"}`}
	c := newTestCoordinator(issuer, client)

	att, err := c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.acme.com/leave/certificate.pdf", att.URL)
	assert.Equal(t, "certificate.pdf", att.Filename)
	assert.True(t, att.Complete())

	require.NotNil(t, client.lastReq)
	assert.Equal(t, "https://api.cloudinary.com/v1_1/acme/auto/upload", client.lastReq.URL.String())
	assert.Contains(t, client.lastReq.Header.Get("Content-Type"), "multipart/form-data")

	body := string(client.lastBody)
	assert.Contains(t, body, `name="signature"`)
	assert.Contains(t, body, "sig123")
	assert.Contains(t, body, `name="api_key"`)
	assert.Contains(t, body, `name="timestamp"`)
	assert.Contains(t, body, "1718000000")
	assert.Contains(t, body, `name="folder"`)
	assert.Contains(t, body, `filename="certificate.pdf"`)
}

func TestUpload_ProviderFailure(t *testing.T) {
	issuer := &countingIssuer{auth: testAuth()}
	client := &fakeHTTP{status: http.StatusBadRequest, body: `{"error":{"message":"Invalid signature"}}`}
	c := newTestCoordinator(issuer, client)

	_, err := c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestUpload_FreshAuthorizationPerAttempt(t *testing.T) {
	issuer := &countingIssuer{auth: testAuth()}
	client := &fakeHTTP{status: http.StatusInternalServerError, body: `{}`}
	c := newTestCoordinator(issuer, client)

	_, err := c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.ErrorIs(t, err, ErrUploadFailed)

	// Caller-level retry re-enters from the authorization step; the spent
	// signature is never reused.
	client.status = http.StatusOK
	client.body = `{"secure_url":"https://cdn.acme.com/x.pdf"}`
	_, err = c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.NoError(t, err)
	assert.Equal(t, 2, issuer.calls)
}

func TestUpload_NetworkError(t *testing.T) {
	issuer := &countingIssuer{auth: testAuth()}
	client := &fakeHTTP{err: errors.New("connection reset")}
	c := newTestCoordinator(issuer, client)

	_, err := c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestUpload_EmptyProviderResponse(t *testing.T) {
	issuer := &countingIssuer{auth: testAuth()}
	client := &fakeHTTP{status: http.StatusOK, body: `{}`}
	c := newTestCoordinator(issuer, client)

	_, err := c.Upload(context.Background(), validFile(), DefaultConstraint())
	require.ErrorIs(t, err, ErrUploadFailed)
}
