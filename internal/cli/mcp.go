package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	inspmcp "github.com/gyaneshwarpardhi/inspector/internal/mcp"
)

var mcpEvents string

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpEvents, "events", "", "Recorded stream (JSONL or JSON array) to preload as history")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs the inspector as an MCP (Model Context Protocol) server over stdio.\nExposes tools: inspector_inspect, inspector_summary, inspector_entries.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	_, eng, err := newEngine(configPath)
	if err != nil {
		return err
	}

	if mcpEvents == "-" {
		return fmt.Errorf("--events cannot read stdin: stdio carries the MCP transport")
	}
	if mcpEvents != "" {
		events, err := readEvents(mcpEvents, cmd.InOrStdin())
		if err != nil {
			return err
		}
		eng.Append(events...)
		slog.Info("history preloaded", "events", len(events))
	}

	srv := inspmcp.New(inspmcp.Config{Name: "inspector", Version: version}, eng)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	slog.Info("inspector MCP server running on stdio")
	return srv.Run(ctx)
}
