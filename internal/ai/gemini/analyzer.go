package gemini

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jobmatch-ai/jobmatch/internal/logger"
	"github.com/jobmatch-ai/jobmatch/internal/match"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

const defaultMaxLogLength = 200

// Analyzer turns a resume and a job description into a structured match
// verdict: build the prompt, ask the generator, parse the response.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyzer{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string) (*match.Result, error) {
	prompt := BuildPrompt(resumeText, jobText)

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	result, err := match.Parse(raw)
	if err != nil {
		// The raw output travels with the error so the caller can show
		// exactly what the model said.
		return nil, fmt.Errorf("%w; raw output: %s", err, raw)
	}

	return result, nil
}
