// Package document renders generated minutes to downloadable files.
package document

import "context"

// FilePrefix starts the name of every rendered document.
const FilePrefix = "meeting_minutes_"

// File is one rendered document.
type File struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	Path   string `json:"-"`
}

// Writer writes markdown minutes in a single format.
type Writer interface {
	Write(title, markdown, path string) error
	// Format returns the format name, which is also the file extension.
	Format() string
}

// Renderer writes the minutes in every configured format.
type Renderer interface {
	Render(ctx context.Context, markdown string) ([]File, error)
}
