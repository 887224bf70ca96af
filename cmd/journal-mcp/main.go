// Package main implements the MCP server for markdown journals.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taigrr/journal-mcp/internal/config"
	"github.com/taigrr/journal-mcp/internal/journal"
	"github.com/taigrr/journal-mcp/internal/search"
)

var (
	cfg        config.Config
	journalSvc *journal.Service
	searchSvc  *search.Service
	logger     zerolog.Logger
	logLevel   string
)

func main() {
	cmd := &cobra.Command{
		Use:   "journal-mcp [vault-path]",
		Short: "MCP bridge for markdown journals",
		Long: `journal-mcp is a Model Context Protocol (MCP) server over a markdown
journal vault. It resolves free-form temporal expressions (ISO dates,
signed day offsets, weekday phrases) to daily pages, appends timestamped
entries, computes durations between clock times picked out of a page, and
searches pages by date window.`,
		Example: `journal-mcp ~/vault`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServer,
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var vaultPath string
	if len(args) > 0 {
		vaultPath = args[0]
	} else {
		var err error
		vaultPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	// Stdout belongs to the MCP transport; logs go to stderr only.
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err = config.Load(vaultPath)
	if err != nil {
		return err
	}

	journalSvc = journal.New(vaultPath, journal.Options{
		Dir:        cfg.Dir,
		FileLayout: cfg.FileLayout,
	})
	searchSvc = search.New(journalSvc)

	logger.Info().
		Str("vault", vaultPath).
		Str("journal_dir", cfg.Dir).
		Str("locale", cfg.Locale).
		Msg("starting journal-mcp")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "journal-mcp",
		Version: version,
	}, nil)

	registerTools(server)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
