package imagecheck

import (
	"bytes"
	"testing"
)

// pngHeader is a minimal PNG signature followed by padding, enough for
// content sniffing to report image/png.
var pngHeader = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 64)...)

// jpegHeader is a minimal JPEG SOI marker with padding.
var jpegHeader = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)

func TestChecker_Check(t *testing.T) {
	checker := New(1024)

	tests := []struct {
		name     string
		image    []byte
		wantOK   bool
		wantType string
	}{
		{name: "png", image: pngHeader, wantOK: true, wantType: "image/png"},
		{name: "jpeg", image: jpegHeader, wantOK: true, wantType: "image/jpeg"},
		{name: "gif", image: append([]byte("GIF89a"), bytes.Repeat([]byte{0}, 32)...), wantOK: true, wantType: "image/gif"},
		{name: "plain text", image: []byte("definitely not an image"), wantOK: false, wantType: "text/plain; charset=utf-8"},
		{name: "pdf renamed to jpg", image: append([]byte("%PDF-1.4"), bytes.Repeat([]byte{0}, 32)...), wantOK: false, wantType: "application/pdf"},
		{name: "empty", image: nil, wantOK: false, wantType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, ok := checker.Check(tt.image)
			if ok != tt.wantOK {
				t.Errorf("Check() ok = %v, want %v", ok, tt.wantOK)
			}
			if stats.ContentType != tt.wantType {
				t.Errorf("ContentType = %q, want %q", stats.ContentType, tt.wantType)
			}
			if stats.Size != len(tt.image) {
				t.Errorf("Size = %d, want %d", stats.Size, len(tt.image))
			}
		})
	}
}

func TestChecker_Check_Oversized(t *testing.T) {
	checker := New(16)

	stats, ok := checker.Check(pngHeader)
	if ok {
		t.Error("Check() accepted an oversized payload")
	}
	if !stats.Recognized {
		t.Error("oversized payload should still be recognized as an image")
	}
}

func TestChecker_SizeChecks(t *testing.T) {
	checker := New(8)

	if !checker.IsEmpty(nil) || !checker.IsEmpty([]byte{}) {
		t.Error("IsEmpty() = false for empty payloads")
	}
	if checker.IsEmpty([]byte{1}) {
		t.Error("IsEmpty() = true for non-empty payload")
	}
	if checker.IsTooLarge(bytes.Repeat([]byte{1}, 8)) {
		t.Error("IsTooLarge() = true at the exact limit")
	}
	if !checker.IsTooLarge(bytes.Repeat([]byte{1}, 9)) {
		t.Error("IsTooLarge() = false over the limit")
	}
}

func TestNewWithTypes(t *testing.T) {
	checker := NewWithTypes(1024, []string{"image/png"})

	if _, ok := checker.Check(pngHeader); !ok {
		t.Error("Check() rejected an allowed type")
	}
	if _, ok := checker.Check(jpegHeader); ok {
		t.Error("Check() accepted a type outside the allow list")
	}
}
