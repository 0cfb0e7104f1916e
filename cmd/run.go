package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jobmatch-ai/jobmatch/internal/ai"
	"github.com/jobmatch-ai/jobmatch/internal/ai/gemini"
	"github.com/jobmatch-ai/jobmatch/internal/extract"
	"github.com/jobmatch-ai/jobmatch/internal/logger"
	"github.com/jobmatch-ai/jobmatch/internal/match"
	"github.com/jobmatch-ai/jobmatch/internal/secrets"
	"github.com/jobmatch-ai/jobmatch/internal/webhook"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var dispatchPrompt = promptui.Select{
	Label: "Send the result to the automation webhook?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze the resume against the job description and forward the result",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (PDF or plain text)")
	runCmd.Flags().String("job-description", "", "path to the job description text file")
	runCmd.Flags().String("name", "", "candidate name")
	runCmd.Flags().String("company", "", "target company")
	runCmd.Flags().String("role", "", "target role")
	runCmd.Flags().String("recruiter-email", "", "recruiter email address")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before sending to the webhook")

	cobra.CheckErr(runCmd.MarkFlagRequired("resume"))
	cobra.CheckErr(runCmd.MarkFlagRequired("job-description"))

	viper.BindPFlag("candidate.name", runCmd.Flags().Lookup("name"))
	viper.BindPFlag("candidate.company", runCmd.Flags().Lookup("company"))
	viper.BindPFlag("candidate.role", runCmd.Flags().Lookup("role"))
	viper.BindPFlag("candidate.recruiter-email", runCmd.Flags().Lookup("recruiter-email"))
}

// run is the whole pipeline: extract, analyze, display, dispatch. One
// invocation is one run; every failure aborts it with enough context to act
// on.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobmatch", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	if err := validateCandidate(config.Candidate); err != nil {
		logger.Fatal("incomplete candidate details",
			zap.Error(err),
			zap.String("hint", "set candidate.* in the configuration file or pass --name, --company, --role and --recruiter-email"),
		)
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		logger.Fatal("loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	webhookURL := resolveWebhookURL(config)
	if webhookURL == "" {
		logger.Fatal("webhook url is required",
			zap.String("hint", "set N8N_WEBHOOK_URL environment variable or the 'webhook.url' key in the configuration file"),
		)
	}

	resumeText, engine, err := readResume(cmd.Flag("resume").Value.String())
	if err != nil {
		logger.Fatal("extracting resume text", zap.Error(err))
	}

	logger.Info("resume loaded",
		zap.String("engine", engine),
		zap.Int("characters", utf8.RuneCountInString(resumeText)),
	)

	jobText, err := readJobDescription(cmd.Flag("job-description").Value.String())
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	if resumeText == "" || jobText == "" {
		logger.Fatal("resume and job description must not be empty")
	}

	analyzer, err := newAnalyzer(ctx, config, apiKey, logger)
	if err != nil {
		logger.Fatal("building analyzer", zap.Error(err))
	}

	logger.Info("asking gemini for a verdict")

	result, err := analyzer.Analyze(ctx, resumeText, jobText)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	display(result)

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := dispatchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	dispatcher := webhook.NewDispatcher(webhookURL, webhook.DefaultTimeout, logger)

	payload := &webhook.Payload{
		CandidateName:  config.Candidate.Name,
		Company:        config.Candidate.Company,
		Role:           config.Candidate.Role,
		RecruiterEmail: config.Candidate.RecruiterEmail,
		GeminiResult:   json.RawMessage(result.Raw),
	}

	if err := dispatcher.Dispatch(ctx, payload); err != nil {
		logger.Fatal("sending to webhook", zap.Error(err))
	}

	logger.Info("check the automation target for the final result")
}

func validateCandidate(c *CandidateConfig) error {
	if c == nil {
		return errors.New("candidate details are required")
	}

	missing := make([]string, 0, 4)
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"company", c.Company},
		{"role", c.Role},
		{"recruiter-email", c.RecruiterEmail},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing candidate fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

func resolveAPIKey(config *Config) (string, error) {
	src := secrets.Source{Name: "gemini api key"}

	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		src.Value = config.AI.Gemini.APIKey
		src.File = config.AI.Gemini.APIKeyFile
	}

	if strings.TrimSpace(src.Value) == "" && strings.TrimSpace(src.File) == "" {
		src.Value = viper.GetString("ai.gemini.api-key")
	}

	return secrets.Load(src)
}

func resolveWebhookURL(config *Config) string {
	if config != nil && config.Webhook != nil && strings.TrimSpace(config.Webhook.URL) != "" {
		return strings.TrimSpace(config.Webhook.URL)
	}

	return strings.TrimSpace(viper.GetString("webhook.url"))
}

func newAnalyzer(ctx context.Context, config *Config, apiKey string, log *zap.Logger) (ai.Analyzer, error) {
	var model string
	var maxLogLength int
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		model = config.AI.Gemini.Model
		maxLogLength = config.AI.Gemini.MaxLogLength
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	log.Info("gemini generator ready", zap.String("model", generator.Model()))

	return gemini.NewAnalyzer(generator, maxLogLength, log), nil
}

func readResume(path string) (text, engine string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading resume file: %w", err)
	}

	result, err := extract.New().Extract(extract.MediaForFile(path), data)
	if err != nil {
		return "", "", err
	}

	return result.Text, result.Engine, nil
}

func readJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading job description file: %w", err)
	}

	result, err := extract.New().FromText(data)
	if err != nil {
		return "", err
	}

	return result.Text, nil
}

// display mirrors the interactive view: the full object first, then the
// selected insights with graceful defaults for keys the model omitted.
func display(result *match.Result) {
	fmt.Println(result.Pretty())
	fmt.Printf("Match score: %d%%\n", result.Lookup("match_score").Int())

	recommendation := result.Lookup("recommendation").String()
	if recommendation == "" {
		recommendation = "N/A"
	}
	fmt.Printf("Recommendation: %s\n", recommendation)

	if summary := result.Lookup("summary").String(); summary != "" {
		fmt.Printf("Summary: %s\n", summary)
	}
}
