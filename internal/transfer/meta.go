package transfer

import (
	"mime"
	"path/filepath"
)

// MetaInfo is the local description of a file about to be sent.
type MetaInfo struct {
	Name string
	Mime string
	Size int64
}

// FileMetaFor derives a transfer description from a file name and size,
// detecting the MIME type from the extension.
func FileMetaFor(name string, size int64) MetaInfo {
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return MetaInfo{Name: name, Mime: mimeType, Size: size}
}
