package validate

import (
	"errors"
	"testing"
)

func TestCheckFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		wantKind FileErrorKind // "" means accepted
	}{
		{"pdf ok", "cv.pdf", 2 * 1024 * 1024, ""},
		{"doc ok", "cv.doc", 1024, ""},
		{"docx ok", "cv.docx", MaxCVSize, ""},
		{"uppercase extension ok", "CV.PDF", 1024, ""},
		{"mixed case extension ok", "resume.DocX", 1024, ""},
		{"exe rejected", "cv.exe", 1024, FileUnsupportedType},
		{"no extension rejected", "cv", 1024, FileUnsupportedType},
		{"txt rejected", "notes.txt", 1024, FileUnsupportedType},
		{"too large", "cv.pdf", 12 * 1024 * 1024, FileTooLarge},
		{"one byte over", "cv.pdf", MaxCVSize + 1, FileTooLarge},
		// Extension is checked first, so a huge exe reports the type error.
		{"huge exe reports type", "cv.exe", 12 * 1024 * 1024, FileUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFile(tt.fileName, tt.size)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("CheckFile(%q, %d) = %v, want nil", tt.fileName, tt.size, err)
				}
				return
			}

			var fe *FileError
			if !errors.As(err, &fe) {
				t.Fatalf("CheckFile(%q, %d) = %v, want *FileError", tt.fileName, tt.size, err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("FileError.Kind = %q, want %q", fe.Kind, tt.wantKind)
			}
		})
	}
}

func TestCheckSignature(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		header   []byte
		wantKind FileErrorKind // "" means accepted
	}{
		{"pdf ok", "cv.pdf", []byte("%PDF-1.4"), ""},
		{"docx ok", "cv.docx", []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00}, ""},
		{"doc ok", "cv.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, ""},
		{"renamed executable", "cv.pdf", []byte("MZ\x90\x00\x03\x00\x00\x00"), FileContentMismatch},
		{"zip renamed to pdf", "cv.pdf", []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00}, FileContentMismatch},
		{"pdf renamed to docx", "cv.docx", []byte("%PDF-1.4"), FileContentMismatch},
		{"truncated header", "cv.pdf", []byte("%P"), FileContentMismatch},
		{"empty file", "cv.pdf", nil, FileContentMismatch},
		{"unexpected extension", "cv.exe", []byte("MZ\x90\x00\x03\x00\x00\x00"), FileUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSignature(tt.fileName, tt.header)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("CheckSignature(%q) = %v, want nil", tt.fileName, err)
				}
				return
			}

			var fe *FileError
			if !errors.As(err, &fe) {
				t.Fatalf("CheckSignature(%q) = %v, want *FileError", tt.fileName, err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("FileError.Kind = %q, want %q", fe.Kind, tt.wantKind)
			}
		})
	}
}
