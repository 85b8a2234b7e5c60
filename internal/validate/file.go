package validate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxCVSize is the maximum allowed CV file size (10 MiB).
const MaxCVSize int64 = 10 * 1024 * 1024

// cvExtensions is the accepted set of CV file extensions, lowercase.
var cvExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// FileErrorKind classifies a file constraint failure.
type FileErrorKind string

const (
	FileUnsupportedType FileErrorKind = "unsupported_type"
	FileTooLarge        FileErrorKind = "too_large"
	FileContentMismatch FileErrorKind = "content_mismatch"
)

// FileError reports why an uploaded CV was rejected before upload.
type FileError struct {
	Kind FileErrorKind
	Name string
	Size int64
}

func (e *FileError) Error() string {
	switch e.Kind {
	case FileUnsupportedType:
		return fmt.Sprintf("unsupported file type %q (allowed: .pdf, .doc, .docx)", filepath.Ext(e.Name))
	case FileTooLarge:
		return fmt.Sprintf("file %q is %d bytes, exceeds %d byte limit", e.Name, e.Size, MaxCVSize)
	case FileContentMismatch:
		return fmt.Sprintf("file %q content does not match its extension", e.Name)
	}
	return "invalid file"
}

// CheckFile validates the CV's extension and byte size before any network
// activity. Rules run in order and short-circuit: extension first, then size.
//
// This is the single entry point for both the file picker and the
// drag-and-drop path; divergence between the two is a defect.
func CheckFile(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !cvExtensions[ext] {
		return &FileError{Kind: FileUnsupportedType, Name: name, Size: size}
	}
	if size > MaxCVSize {
		return &FileError{Kind: FileTooLarge, Name: name, Size: size}
	}
	return nil
}

// SignatureLen is how many leading bytes CheckSignature needs.
const SignatureLen = 8

// File type signatures. .docx is a ZIP container, .doc an OLE2 compound
// document.
var (
	pdfMagic  = []byte("%PDF-")
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// CheckSignature verifies that the file's leading bytes carry the magic
// number expected for its extension. Extension checks alone are a trust
// boundary weakness: a renamed executable passes them, so the content is
// re-validated here before the file reaches durable storage.
func CheckSignature(name string, header []byte) error {
	var want []byte
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		want = pdfMagic
	case ".docx":
		want = zipMagic
	case ".doc":
		want = ole2Magic
	default:
		return &FileError{Kind: FileUnsupportedType, Name: name}
	}

	if len(header) < len(want) || !bytes.Equal(header[:len(want)], want) {
		return &FileError{Kind: FileContentMismatch, Name: name}
	}
	return nil
}
