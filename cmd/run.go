package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/sortinghat-ai/sortinghat/internal/advice"
	"github.com/sortinghat-ai/sortinghat/internal/advice/gemini"
	"github.com/sortinghat-ai/sortinghat/internal/advice/ollama"
	"github.com/sortinghat-ai/sortinghat/internal/loader"
	"github.com/sortinghat-ai/sortinghat/internal/logger"
	"github.com/sortinghat-ai/sortinghat/internal/pipeline"
	"github.com/sortinghat-ai/sortinghat/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run <resume> <job-description>",
	Short: "Parse a resume and score it against a job description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceP("required", "r", nil, "explicit required skills; skipping this auto-extracts them from the job description")
	runCmd.Flags().StringSliceP("optional", "o", nil, "optional (nice to have) skills")
	runCmd.Flags().Bool("ai", false, "enable the advisory service for skill extraction and recommendations")
	runCmd.Flags().String("ai-provider", "", "advisory provider: ollama (default) or gemini")
	runCmd.Flags().String("ai-model", "", "advisory model name")
	runCmd.Flags().String("ai-endpoint", "", "ollama base URL")

	viper.BindPFlag("ai.enabled", runCmd.Flags().Lookup("ai"))
	viper.BindPFlag("ai.provider", runCmd.Flags().Lookup("ai-provider"))
	viper.BindPFlag("ai.model", runCmd.Flags().Lookup("ai-model"))
	viper.BindPFlag("ai.endpoint", runCmd.Flags().Lookup("ai-endpoint"))
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Error("getting a config", zap.Error(err))
		return err
	}

	resumeText, err := loader.Load(args[0])
	if err != nil {
		zlog.Error("reading resume", zap.Error(err))
		return err
	}

	jdText, err := loader.Load(args[1])
	if err != nil {
		zlog.Error("reading job description", zap.Error(err))
		return err
	}

	required, _ := cmd.Flags().GetStringSlice("required")
	optional, _ := cmd.Flags().GetStringSlice("optional")

	assistant := buildAssistant(ctx, config.AI, zlog)

	pipe := pipeline.New(ctx, jdText, required, optional, assistant, zlog)
	result := pipe.Run(ctx, resumeText)

	printReport(cmd.OutOrStdout(), result)

	return nil
}

// buildAssistant constructs the advisory assistant when enabled. Construction
// problems disable the service with a warning instead of failing the run: the
// local heuristic path works without it.
func buildAssistant(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) *advice.Assistant {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", "ollama":
		generator := ollama.New(cfg.Model, cfg.Endpoint, timeout, logger.WithCommonFields(zlog, "ollama", cfg.Model))
		return advice.NewAssistant(generator, zlog)

	case "gemini":
		src := secrets.Source{Name: "gemini api key"}
		if cfg.Gemini != nil {
			src.Value = cfg.Gemini.APIKey
			src.File = cfg.Gemini.APIKeyFile
		}

		apiKey, err := secrets.Load(src)
		if err != nil {
			zlog.Warn("advisory service disabled",
				zap.Error(err),
				zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
			)
			return nil
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, logger.WithCommonFields(zlog, "gemini", cfg.Model))
		if err != nil {
			zlog.Warn("advisory service disabled", zap.Error(err))
			return nil
		}
		return advice.NewAssistant(generator, zlog)

	default:
		zlog.Warn("unsupported advisory provider, advisory service disabled", zap.String("provider", cfg.Provider))
		return nil
	}
}

func printReport(w io.Writer, result *pipeline.Result) {
	fmt.Fprintln(w, "Candidate Profile:")
	fmt.Fprintf(w, "  Name: %s\n", result.Profile.Contact.Name)
	fmt.Fprintf(w, "  Email: %s\n", result.Profile.Contact.Email)
	fmt.Fprintf(w, "  Skills: %s\n", strings.Join(result.Profile.NormalizedSkills(), ", "))

	fmt.Fprintln(w, "\nScore Breakdown:")
	fmt.Fprintf(w, "  Required coverage: %.2f%%\n", result.Breakdown.RequiredCoverage)
	fmt.Fprintf(w, "  Optional coverage: %.2f%%\n", result.Breakdown.OptionalCoverage)
	fmt.Fprintf(w, "  Experience alignment: %.2f%%\n", result.Breakdown.ExperienceAlignment)
	fmt.Fprintf(w, "  Overall: %.2f\n", result.Breakdown.Overall())

	fmt.Fprintln(w, "\nRecommendations:")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
}
