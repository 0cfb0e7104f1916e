package gemini

import (
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// maxSegmentRunes bounds each embedded document to keep token cost and
// latency predictable. Deliberately lossy: anything past the cap is never
// shown to the model.
const maxSegmentRunes = 4000

// BuildPrompt composes the instruction prompt from the resume and the job
// description. Same inputs always produce the same prompt.
func BuildPrompt(resumeText, jobText string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME}}", capRunes(resumeText, maxSegmentRunes))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", capRunes(jobText, maxSegmentRunes))
	return prompt
}

func capRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
