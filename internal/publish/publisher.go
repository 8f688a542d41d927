package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Publisher pushes one document to one destination path.
type Publisher interface {
	Publish(ctx context.Context, doc any, path, message string) (location string, err error)
}

// PublishError is returned when a destination rejects a document.
type PublishError struct {
	Destination string
	Path        string
	StatusCode  int
	Body        string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s to %s: status %d: %s", e.Path, e.Destination, e.StatusCode, e.Body)
}

// EncodeDocument renders a document the way all destinations store it:
// two-space indented JSON, no HTML escaping.
func EncodeDocument(doc any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
