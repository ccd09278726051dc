// Package imagecheck validates incoming image payloads before they reach
// the inference backends.
package imagecheck

import "net/http"

// Checker enforces image intake limits.
type Checker struct {
	maxSize      int
	allowedTypes map[string]bool
}

// defaultAllowedTypes are the content types the backends accept.
var defaultAllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/gif":  true,
}

// New creates a Checker with the default accepted content types.
func New(maxSize int) *Checker {
	return &Checker{
		maxSize:      maxSize,
		allowedTypes: defaultAllowedTypes,
	}
}

// NewWithTypes creates a Checker accepting only the given content types.
func NewWithTypes(maxSize int, types []string) *Checker {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return &Checker{
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

// IsEmpty checks if the payload is empty.
func (c *Checker) IsEmpty(image []byte) bool {
	return len(image) == 0
}

// IsTooLarge checks if the payload exceeds the maximum size.
func (c *Checker) IsTooLarge(image []byte) bool {
	return len(image) > c.maxSize
}

// Stats describes a checked payload.
type Stats struct {
	Size        int
	ContentType string
	Recognized  bool
}

// Check sniffs the payload and returns whether it is acceptable together
// with its stats. Sniffing uses content detection, not file names, so a
// renamed PDF does not pass as a JPEG.
func (c *Checker) Check(image []byte) (Stats, bool) {
	stats := Stats{Size: len(image)}
	if len(image) == 0 {
		return stats, false
	}

	stats.ContentType = http.DetectContentType(image)
	stats.Recognized = c.allowedTypes[stats.ContentType]

	ok := stats.Recognized && len(image) <= c.maxSize
	return stats, ok
}
