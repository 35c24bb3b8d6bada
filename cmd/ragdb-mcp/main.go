// ragdb-mcp is an MCP stdio server exposing read-only database access
// and RAG service tools.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ragstack/ragdb-mcp/internal/server"
)

var version = "1.0.0"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ragdb-mcp",
		Short: "MCP server for PostgreSQL queries and RAG document tools",
		Long: `ragdb-mcp speaks the Model Context Protocol over stdin/stdout and
exposes read-only SQL tools against PostgreSQL plus question answering,
document listing and PDF upload against a RAG service.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Optional; env vars may come from the MCP client instead.
	_ = godotenv.Load()

	srv, err := server.NewServer(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
