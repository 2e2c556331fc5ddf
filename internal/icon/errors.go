package icon

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks failures where no icon is available from any
	// applicable source.
	ErrNotFound = errors.New("icon not found")
	// ErrFormat marks retrieved bitmaps with an unexpected color depth
	// or dimensions. Icon sources must hand back 32-bit pixels.
	ErrFormat = errors.New("unsupported icon format")
	// ErrResolution marks alias chains, shortcut or opaque identity,
	// that could not be resolved to a concrete icon-bearing source.
	ErrResolution = errors.New("icon resolution failed")
)

// Wrap builds an error message that includes operation context while
// tagging it with the provided marker for later classification. Both the
// marker and the cause survive errors.Is, so a resolution failure whose
// underlying cause was a missing icon matches ErrResolution and
// ErrNotFound at the same time.
func Wrap(marker error, operation, subject string, err error) error {
	detail := buildDetail(operation, subject)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an extraction error to a short label for logs and CLI
// output. I/O failures carry no marker and fall through to "io".
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrResolution):
		return "resolution"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "io"
	}
}

func buildDetail(operation, subject string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if subject = strings.TrimSpace(subject); subject != "" {
		parts = append(parts, subject)
	}
	if len(parts) == 0 {
		return "icon failure"
	}
	return strings.Join(parts, ": ")
}
