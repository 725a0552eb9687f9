package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// FileType is the lower-case extension (without dot) of a document file.
// It is stored as free text; the constants below are the known values.
type FileType string

// Known file types.
const (
	FileTypePDF FileType = "pdf"
	FileTypeDXF FileType = "dxf"
	FileTypeDWG FileType = "dwg"
	FileTypeDWF FileType = "dwf"
)

// FileTypeFromPath derives the file type from a path's extension.
func FileTypeFromPath(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	return FileType(strings.TrimPrefix(ext, "."))
}

// IsTracked reports whether documents of this type can be registered.
func (t FileType) IsTracked() bool {
	switch t {
	case FileTypePDF, FileTypeDXF, FileTypeDWG:
		return true
	default:
		return false
	}
}

// IsViewable reports whether the viewer can display this type.
// DWF files can be viewed but are not tracked.
func (t FileType) IsViewable() bool {
	return t.IsTracked() || t == FileTypeDWF
}

// IsCAD reports whether the type is a CAD drawing format.
func (t FileType) IsCAD() bool {
	switch t {
	case FileTypeDXF, FileTypeDWG, FileTypeDWF:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}

// Document represents an engineering file that has been opened at least once.
type Document struct {
	// ID is the store-assigned identifier.
	ID int64

	// FilePath is the absolute, cleaned path. Unique across documents.
	FilePath string

	// FileName is the base name of FilePath.
	FileName string

	// FileType is the lower-case extension without dot.
	FileType FileType

	// CreatedAt is when the document was first opened.
	CreatedAt time.Time

	// LastModified is bumped on every reopen or save.
	LastModified time.Time
}

// RecentDocument is a Document enriched for display in recent lists.
type RecentDocument struct {
	Document

	// Exists is false when the file is no longer on disk.
	Exists bool
}

// DisplayName returns the file name, marked when the file is missing.
func (r RecentDocument) DisplayName() string {
	if !r.Exists {
		return r.FileName + " (Missing)"
	}
	return r.FileName
}

// Tooltip returns a multi-line description of the document.
func (r RecentDocument) Tooltip() string {
	return r.FilePath + "\n" +
		"Last Modified: " + r.LastModified.Local().Format("2006-01-02 15:04") + "\n" +
		"Type: " + strings.ToUpper(r.FileType.String())
}
