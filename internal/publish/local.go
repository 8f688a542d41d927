package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Local writes documents to a directory on disk. Rewriting the same
// document is a plain overwrite, there is no versioning to care about.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{
		dir: dir,
	}
}

func (l *Local) Publish(_ context.Context, doc any, path, _ string) (string, error) {
	content, err := EncodeDocument(doc)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(l.dir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		log.Warnf("get absolute path of %s: %s", fullPath, err)
		return fullPath, nil
	}
	return absPath, nil
}
