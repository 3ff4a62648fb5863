package upload

// FileConstraint is the static policy a file must satisfy before any network
// round trip is spent on it.
type FileConstraint struct {
	AllowedMIMETypes map[string]bool
	MinSizeBytes     int64
	MaxSizeBytes     int64
}

// DefaultConstraint returns the attachment policy for leave requests:
// 200 KB to 500 KB inclusive, images or PDF.
func DefaultConstraint() FileConstraint {
	return FileConstraint{
		AllowedMIMETypes: map[string]bool{
			"image/jpeg":      true,
			"image/png":       true,
			"application/pdf": true,
		},
		MinSizeBytes: 200 * 1024,
		MaxSizeBytes: 500 * 1024,
	}
}

// AllowsType reports whether the MIME type passes the policy
func (c FileConstraint) AllowsType(mimeType string) bool {
	return c.AllowedMIMETypes[mimeType]
}

// AllowsSize reports whether the byte size is within [min, max]
func (c FileConstraint) AllowsSize(size int64) bool {
	return size >= c.MinSizeBytes && size <= c.MaxSizeBytes
}
