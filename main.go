package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	defaultef "github.com/amikos-tech/chroma-go/pkg/embeddings/default_ef"
	gemini "github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
	openai "github.com/amikos-tech/chroma-go/pkg/embeddings/openai"
	"github.com/spf13/cobra"

	"github.com/gamma-omg/resume-ranker/docstore"
	"github.com/gamma-omg/resume-ranker/keywords"
	"github.com/gamma-omg/resume-ranker/ranker"
	"github.com/gamma-omg/resume-ranker/readers"
	"github.com/gamma-omg/resume-ranker/scoring"
)

const app = "resume-ranker"

// Actual version can be specified in build command.
var version = "unknown"

var (
	cfgPath string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "Rank resumes against a job description by text similarity",
		SilenceUsage: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("%s version: %s\n", app, version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "cfg/config.yaml", "Configuration file")
	rootCmd.AddCommand(versionCmd)
}

func configFromFlags(cmd *cobra.Command) (*Config, error) {
	return loadConfig(cfgPath, cmd.Flags().Changed("config"))
}

type stderrCloser struct{}

// Close leaves stderr open for the rest of the process.
func (stderrCloser) Close() error { return nil }

func newLogger(cfg *Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil)), stderrCloser{}, nil
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return slog.New(slog.NewJSONHandler(logFile, nil)), logFile, nil
}

func createEmbeddingFunction(cfg *Config) (embeddings.EmbeddingFunction, func() error, error) {
	if cfg.OpenAI != nil {
		ef, err := openai.NewOpenAIEmbeddingFunction(
			cfg.OpenAI.ApiKey,
			openai.WithModel(openai.EmbeddingModel(cfg.OpenAI.Model)))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OpenAI embedding function: %w", err)
		}

		return ef, nil, nil
	}

	if cfg.Gemini != nil {
		ef, err := gemini.NewGeminiEmbeddingFunction(
			gemini.WithAPIKey(cfg.Gemini.ApiKey),
			gemini.WithDefaultModel(embeddings.EmbeddingModel(cfg.Gemini.Model)))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
		}

		return ef, nil, nil
	}

	ef, closeEf, err := defaultef.NewDefaultEmbeddingFunction()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create default embedding function: %w", err)
	}

	return ef, closeEf, nil
}

func modelName(cfg *Config) string {
	switch {
	case cfg.OpenAI != nil:
		return "openai/" + cfg.OpenAI.Model
	case cfg.Gemini != nil:
		return "gemini/" + cfg.Gemini.Model
	default:
		return "onnx/all-MiniLM-L6-v2"
	}
}

func newScorer(cfg *Config, model *scoring.Model) (scoring.Scorer, error) {
	switch cfg.Strategy {
	case StrategySemantic:
		return scoring.NewEmbeddingScorer(model), nil
	case StrategyChroma:
		store, err := docstore.NewChromaStore(docstore.ChromaStoreConfig{
			BaseURL: cfg.ChromaAddr,
			Model:   model,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Chroma doc store: %w", err)
		}

		return store, nil
	case StrategyLexical:
		return scoring.NewTfidfScorer(), nil
	}

	return nil, errors.New("invalid scoring strategy configuration")
}

func newFillerWords(cfg *Config) (*keywords.FillerWords, error) {
	if cfg.FillerWordsFile == "" {
		return keywords.NewFillerWords(keywords.DefaultFillerWords), nil
	}

	return keywords.LoadFillerWords(cfg.FillerWordsFile)
}

func newRanker(cfg *Config, logger *slog.Logger, scorer scoring.Scorer, filler *keywords.FillerWords) *ranker.Ranker {
	opts := []ranker.Option{
		ranker.WithLogger(logger),
		ranker.WithKeywordExtractor(keywords.NewExtractor(filler)),
	}
	if cfg.KeywordGap != nil {
		opts = append(opts, ranker.WithKeywordGap(*cfg.KeywordGap))
	}

	return ranker.New(readers.DefaultExtractor(), scorer, opts...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
