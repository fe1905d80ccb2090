// Package storage holds uploaded assets (cover images, translation files)
// and hands back the public path they are served from.
package storage

import (
	"context"
	"io"
	"strings"
)

// FileStore is the capability the handlers use to persist an upload.
// Store writes the file under a collision-safe name derived from name and
// returns the public path a client can fetch it from.
type FileStore interface {
	Store(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

// sanitizeName strips path separators and other characters that have no
// business in a stored filename.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
