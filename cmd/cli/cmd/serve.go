package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelospk/streailer/internal/addon"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the addon HTTP server",
	Long: `Starts the addon server exposing the manifest, configure page and stream routes.
The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides server.port)")
	cobra.CheckErr(viper.BindPFlag(CfgKeyServerHost, serveCmd.Flags().Lookup("host")))
	cobra.CheckErr(viper.BindPFlag(CfgKeyServerPort, serveCmd.Flags().Lookup("port")))
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := NewClientFunc(clientConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	if !client.Available() {
		log.Warnf("TMDB API key not configured (%s); every stream request will return no streams", CfgKeyTMDBAPIKey)
	}

	addr := net.JoinHostPort(viper.GetString(CfgKeyServerHost), strconv.Itoa(viper.GetInt(CfgKeyServerPort)))
	srv := addon.NewServer(addon.Config{
		Addr:            addr,
		DefaultLanguage: viper.GetString(CfgKeyDefaultLanguage),
		RateLimit:       viper.GetInt(CfgKeyRateLimitRequest),
		RateWindow:      viper.GetDuration(CfgKeyRateLimitWindow),
		ShutdownTimeout: shutdownTimeout,
	}, client, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	log.WithFields(logrus.Fields{
		"addr":     addr,
		"language": viper.GetString(CfgKeyDefaultLanguage),
	}).Info("Addon starting; configure at /configure, manifest at /manifest.json")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Info("Addon stopped")
	return nil
}
