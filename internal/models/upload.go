package models

// UploadAuthorization is the single-use signed-upload credential set issued
// by the backend for one direct upload to the storage provider. It is never
// persisted and never reused across files.
type UploadAuthorization struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Folder    string `json:"folder"`
}
