package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"study-buddy/internal/config"
	"study-buddy/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API.",
	Long:  `Starts a local web server with the Explain, Summarize and Quiz tabs and a JSON API over the same state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, label, closeFn, err := newService(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		srv, err := server.New(ctx, svc, server.Options{
			SessionTTL: cfg.Server.SessionTTL,
			Provider:   label,
		})
		if err != nil {
			return err
		}
		go srv.Sessions().Run(ctx, time.Minute)

		config.Logger.WithField("provider", cfg.Provider.Name).Infof("Starting server on port %d", cfg.Server.Port)
		return server.StartServer(ctx, cfg.Server.Port, srv.Routes())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to run the server on")
}
