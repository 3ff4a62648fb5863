package hrms

import (
	"context"
	"net/url"

	"github.com/hrmstack/leavectl/internal/models"
)

// UploadSignature requests a fresh single-use signed-upload authorization
// scoped to a folder and resource type. Every upload attempt fetches its
// own; a spent authorization is never presented again.
func (c *Client) UploadSignature(ctx context.Context, folder, resourceType string) (*models.UploadAuthorization, error) {
	q := url.Values{}
	q.Set("folder", folder)
	q.Set("resource_type", resourceType)

	var out models.UploadAuthorization
	if err := c.get(ctx, "/cloudinary/signature", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
