package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Render writes one file per configured format. All files of a run share
// the base name meeting_minutes_<uuid hex>.
func (r *implRenderer) Render(ctx context.Context, markdown string) ([]File, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := FilePrefix + strings.ReplaceAll(uuid.NewString(), "-", "")

	files := make([]File, 0, len(r.writers))
	for _, w := range r.writers {
		name := base + "." + w.Format()
		path := filepath.Join(r.outputDir, name)

		if err := w.Write(r.title, markdown, path); err != nil {
			r.removeAll(ctx, append(files, File{Path: path}))
			return nil, fmt.Errorf("write %s: %w", w.Format(), err)
		}

		r.logger.Info(ctx, "Document written: %s", path)
		files = append(files, File{Format: w.Format(), Name: name, Path: path})
	}

	return files, nil
}

// removeAll drops the output of a failed run so no partial set is downloadable
func (r *implRenderer) removeAll(ctx context.Context, files []File) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			r.logger.Warn(ctx, "Failed to remove partial document %s: %v", f.Path, err)
		}
	}
}
