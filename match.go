package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/spf13/cobra"

	"github.com/gamma-omg/resume-ranker/ranker"
	"github.com/gamma-omg/resume-ranker/readers"
	"github.com/gamma-omg/resume-ranker/scoring"
)

type matchOptions struct {
	jobFile string
	jobText string
	output  string
}

var matchOpts matchOptions

var matchCmd = &cobra.Command{
	Use:   "match [flags] RESUME...",
	Short: "Rank resume files or folders against a job description",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}

		return runMatch(cmd.Context(), cfg, matchOpts, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchOpts.jobFile, "job", "j", "", "file holding the job description")
	matchCmd.Flags().StringVar(&matchOpts.jobText, "job-text", "", "job description text")
	matchCmd.Flags().StringVarP(&matchOpts.output, "output", "o", "", "CSV file for the results (default from config)")
}

func runMatch(ctx context.Context, cfg *Config, opts matchOptions, paths []string, stdout, stderr io.Writer) error {
	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	job := opts.jobText
	if opts.jobFile != "" {
		buf, err := os.ReadFile(opts.jobFile)
		if err != nil {
			return fmt.Errorf("unable to read job description: %w", err)
		}
		job = string(buf)
	}

	model := scoring.NewModel(modelName(cfg), func() (embeddings.EmbeddingFunction, func() error, error) {
		return createEmbeddingFunction(cfg)
	})
	defer model.Close()

	scorer, err := newScorer(cfg, model)
	if err != nil {
		return err
	}

	filler, err := newFillerWords(cfg)
	if err != nil {
		return err
	}

	extractor := readers.DefaultExtractor()
	docs, err := collectDocuments(logger, extractor, paths...)
	if err != nil {
		return err
	}

	res, err := newRanker(cfg, logger, scorer, filler).Rank(ctx, job, docs)
	if errors.Is(err, ranker.ErrEmptyInput) {
		fmt.Fprintf(stderr, "warning: %s\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	for _, f := range res.Failures {
		fmt.Fprintf(stderr, "error: %s\n", f.Error())
	}

	scoring.Render(stdout, res.Table)

	output := opts.output
	if output == "" {
		output = cfg.Output
	}

	return writeCSVFile(output, res.Table)
}

func writeCSVFile(path string, t scoring.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return scoring.WriteCSV(f, t)
}
