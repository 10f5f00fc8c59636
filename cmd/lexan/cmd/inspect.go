// ============================================================================
// lexan - Lexical and Syntax Analysis Engine
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive inspector TUI
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/internal/analyzer/server"
	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/internal/tui/inspector"
	coreGrpc "github.com/msto63/lexan/pkg/core/grpc"
	"github.com/msto63/lexan/pkg/core/logging"
)

var (
	inspectMode string
	inspectAddr string
)

var inspectCmd = &cobra.Command{
	Use:     "inspect [file]",
	Aliases: []string{"tui"},
	Short:   "Start the interactive inspector",
	Long: `Opens an editable buffer and re-analyzes it after every change.

Keys:
  ctrl+t      next mode (tokens, declarations, descent, quads)
  tab         next view (tokens, diagnostics, quads, trace)
  shift+tab   previous view
  PgUp/PgDn   scroll
  esc         quit

With --addr the analyses run on a lexan gRPC server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectMode, "mode", "m", "declarations", "initial mode")
	inspectCmd.Flags().StringVar(&inspectAddr, "addr", "", "gRPC address; empty analyzes locally")
	inspectCmd.Flags().StringVar(&localeFlag, "locale", "", "message locale (en, ru)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	mode, err := lexan.ParseMode(inspectMode)
	if err != nil {
		return err
	}

	var text string
	if len(args) == 1 && args[0] != "-" {
		if text, err = readInput(args, nil); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log output would corrupt the alternate screen
	logger := logging.Wrap(mdwlog.Nop(), "lexan-inspect")

	icfg := inspector.DefaultConfig()
	icfg.Mode = mode
	icfg.Text = text
	icfg.Locale = localeFlag

	if inspectAddr == "" {
		svc, err := service.NewService(serviceConfig(cfg, logger))
		if err != nil {
			return err
		}
		icfg.Analyzer = svc
	} else {
		clientCfg := coreGrpc.DefaultClientConfig(inspectAddr)
		clientCfg.Logger = logger
		client, err := server.Dial(clientCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		icfg.Source = inspectAddr
		icfg.Analyzer = inspector.AnalyzerFunc(func(ctx context.Context, req service.Request) (*service.Response, error) {
			return client.Analyze(ctx, req.Mode, req.Text, req.Locale)
		})
	}

	return inspector.Run(icfg)
}
