package upload

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// DetectMIMEType resolves a file's MIME type from its extension, falling
// back to content sniffing when the extension is unknown.
func DetectMIMEType(filename string, content []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			// Strip optional parameters like "; charset=utf-8".
			if i := strings.IndexByte(t, ';'); i >= 0 {
				t = strings.TrimSpace(t[:i])
			}
			return t
		}
	}
	if len(content) > 0 {
		return http.DetectContentType(content)
	}
	return "application/octet-stream"
}
