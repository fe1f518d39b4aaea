package transcriber

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var extensionMIME = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// audioMIME sniffs the recording and falls back to the file extension when
// the content is not recognised as audio.
func audioMIME(path string, data []byte) string {
	if m := mimetype.Detect(data); strings.HasPrefix(m.String(), "audio/") {
		return m.String()
	}
	if m, ok := extensionMIME[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "audio/mpeg"
}
