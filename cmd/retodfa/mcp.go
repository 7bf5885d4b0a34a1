package main

import (
	"log"
	"os"

	"retodfa/internal/mcp"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server on stdio",
	Long: `Starts retodfa as an MCP server so agents can call the convert_regex and
match_regex tools. Logs go to stderr to keep the JSON-RPC stream clean.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		log.SetOutput(os.Stderr)
		e.logger.Info("starting retodfa MCP server (stdio)")
		srv := mcp.NewServer(e.conv, version, e.logger)
		if err := srv.ServeStdio(); err != nil {
			e.logger.Error("MCP server execution failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
