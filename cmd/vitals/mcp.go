// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/vitals/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to classify and record vitals through a standardized
protocol. The server communicates via stdin/stdout; logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "vitals": {
        "command": "vitals",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  classify_vital    Classify a value without storing it
  add_reading       Record a reading (alerts are published)
  list_readings     List recent readings
  delete_reading    Delete a reading by ID
  get_dashboard     Latest value and badge per vital, with trends
  analyze_report    Analyze a text report, optionally saving it
  list_reports      List analyzed reports
  diet_goal         Diet goal for a BMI
  workout_suggestion  Exercises for a level and type

AVAILABLE RESOURCES:

  vitals://dashboard    Dashboard snapshot
  vitals://recent       Recent readings
  vitals://reports      Analyzed reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, notifier, logger)
		if err != nil {
			return err
		}
		server.SetReportKeep(cfg.GetReportKeep())

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logger.Info("shutting down")
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
