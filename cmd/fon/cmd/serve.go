/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fastobjectnotation/fon/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the FON REST API server.

The server exposes the codec (parse and serialize endpoints) and the record
archive, with API key authentication and Prometheus metrics.

Examples:
	  fon serve
	  fon serve --port=9000 --api-key=mysecretkey`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if port == 0 {
			port = cfg.Port
		}
		if bind == "" {
			bind = cfg.Bind
		}
		if apiKey == "" {
			apiKey = cfg.Security.ClientAPIKey
		}
		// "auto" is the unbootstrapped placeholder; run `fon init` to mint a
		// real key.
		if apiKey == "auto" {
			apiKey = ""
		}
		if apiKey == "" {
			cmd.Println("Warning: no API key configured, authentication is disabled (run 'fon init' to generate one)")
		}

		a, err := openArchive()
		if err != nil {
			cmd.Printf("Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		serverConfig := api.ServerConfig{
			Port:   port,
			Bind:   bind,
			APIKey: apiKey,
		}

		if err := api.StartServer(a, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (default from config)")
	serveCmd.Flags().String("api-key", "", "API key for client authentication (default from config)")
}
