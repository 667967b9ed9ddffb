package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/gamma-omg/resume-ranker/readers"
	"github.com/gamma-omg/resume-ranker/scoring"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the match_resumes MCP tool",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}

		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *Config) error {
	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

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

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.FillerWordsFile != "" {
		delay := time.Duration(cfg.ReloadDebounceMs) * time.Millisecond
		if err := filler.Watch(ctx, logger, cfg.FillerWordsFile, delay); err != nil {
			return err
		}
	}

	srv := NewRankServer(&rankServer{
		log:    logger,
		root:   cfg.DocRoot,
		filter: readers.DefaultExtractor(),
		ranker: newRanker(cfg, logger, scorer, filler),
	})

	logger.Info("starting server",
		"version", version,
		"transport", cfg.Transport,
		"strategy", cfg.Strategy,
		"doc_root", cfg.DocRoot)

	if cfg.Transport == TransportStdio {
		return server.ServeStdio(srv)
	}

	sse := server.NewSSEServer(srv, server.WithBaseURL(fmt.Sprintf("http://%s", cfg.ServerAddr)))
	return sse.Start(cfg.ServerAddr)
}
