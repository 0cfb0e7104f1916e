package gemini

import (
	"strings"
	"testing"
)

func promptSegment(t *testing.T, prompt, header string) string {
	t.Helper()

	_, after, found := strings.Cut(prompt, header+"\n\"\"\"")
	if !found {
		t.Fatalf("prompt is missing the %s segment", header)
	}

	segment, _, found := strings.Cut(after, "\"\"\"")
	if !found {
		t.Fatalf("prompt segment %s is not closed", header)
	}

	return segment
}

func TestBuildPromptEmbedsInputs(t *testing.T) {
	prompt := BuildPrompt("5 years Python", "Need Python developer")

	if got := promptSegment(t, prompt, "RESUME:"); got != "5 years Python" {
		t.Fatalf("unexpected resume segment: %q", got)
	}

	if got := promptSegment(t, prompt, "JOB DESCRIPTION:"); got != "Need Python developer" {
		t.Fatalf("unexpected job description segment: %q", got)
	}
}

func TestBuildPromptContainsFormattingRules(t *testing.T) {
	prompt := BuildPrompt("resume", "job")

	for _, required := range []string{
		"Return ONLY valid JSON",
		"No markdown",
		"No explanation",
		`"match_score"`,
		`"matched_skills"`,
		`"missing_skills"`,
		`"experience_fit"`,
		`"recommendation"`,
		`"summary"`,
	} {
		if !strings.Contains(prompt, required) {
			t.Fatalf("prompt is missing %q", required)
		}
	}
}

func TestBuildPromptCapsSegments(t *testing.T) {
	longResume := strings.Repeat("р", maxSegmentRunes+500)
	longJob := strings.Repeat("j", maxSegmentRunes+1)

	prompt := BuildPrompt(longResume, longJob)

	resumeSegment := promptSegment(t, prompt, "RESUME:")
	if got := len([]rune(resumeSegment)); got != maxSegmentRunes {
		t.Fatalf("expected resume segment capped at %d runes, got %d", maxSegmentRunes, got)
	}

	jobSegment := promptSegment(t, prompt, "JOB DESCRIPTION:")
	if got := len([]rune(jobSegment)); got != maxSegmentRunes {
		t.Fatalf("expected job segment capped at %d runes, got %d", maxSegmentRunes, got)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	first := BuildPrompt("resume text", "job text")
	second := BuildPrompt("resume text", "job text")

	if first != second {
		t.Fatalf("expected identical prompts for identical inputs")
	}
}
