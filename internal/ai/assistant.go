package ai

import (
	"context"

	"github.com/jobmatch-ai/jobmatch/internal/match"
)

// Analyzer produces a structured compatibility judgment for a resume and a
// job description.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobText string) (*match.Result, error)
}
