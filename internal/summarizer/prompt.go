package summarizer

import (
	"fmt"
	"strings"
)

const minutesPrompt = `You are a professional meeting minutes writer.
Generate meeting minutes in markdown format with a refined, formal style.
Include:
- Summary (attendees, date, location)
- Discussion Points
- Key Takeaways
- Action Items with Owners

Transcript:
%s
`

// BuildPrompt renders the fixed minutes prompt around a transcript.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(minutesPrompt, strings.TrimSpace(transcript))
}
