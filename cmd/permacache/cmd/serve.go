/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/permacache/permacache/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the Permacache HTTP API server.

The server exposes the cache operations (get, put, delete, exists) under
/api/v1/cache, pool statistics under /api/v1/stats, and Prometheus metrics
under /metrics.

Examples:
  permacache serve --api-key=mysecretkey --port=8080
  permacache serve --api-key=mysecretkey --data-dir=./data`,
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			cmd.Println("Error: store not found in context")
			return
		}

		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if apiKey == "" {
			apiKey = a.cfg.Security.APIKey
		}
		if apiKey == "" {
			cmd.Println("Error: --api-key is required (or set security.api_key in the config)")
			return
		}
		if port == 0 {
			port = a.cfg.Port
		}
		if bind == "" {
			bind = a.cfg.Bind
		}

		serverConfig := api.ServerConfig{
			Bind:   bind,
			Port:   port,
			APIKey: apiKey,
		}

		if err := api.StartServer(a.items, a.pool, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (defaults to config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (defaults to config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
}
