package document

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// docxWriter converts markdown minutes to a styled Word document.
type docxWriter struct {
	font string
	size uint64
}

func newDocxWriter(font string, size float64) *docxWriter {
	if size <= 0 {
		size = 12
	}
	return &docxWriter{font: font, size: uint64(size)}
}

func (w *docxWriter) Write(title, markdown, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	if title != "" {
		w.addStyledRun(doc.AddParagraph(""), title, true, w.size+4)
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			w.addStyledRun(doc.AddParagraph(""), m[2], true, w.headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			w.addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		// Plain text, numbered items keep their number as written
		w.addRichText(doc.AddParagraph(""), trimmed)
	}

	return doc.SaveTo(path)
}

func (w *docxWriter) Format() string {
	return "docx"
}

func (w *docxWriter) headingSize(level int) uint64 {
	switch level {
	case 1:
		return w.size + 4
	case 2:
		return w.size + 3
	case 3:
		return w.size + 2
	default:
		return w.size
	}
}

func (w *docxWriter) addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(w.font).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans bold and strips the other inline markers.
func (w *docxWriter) addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(w.font).Size(w.size).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(w.font).Size(w.size).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
