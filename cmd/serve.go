package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"collab-notifier/infrastructure/configuration"
	"collab-notifier/infrastructure/logger"
	httpHandler "collab-notifier/interfaces/http"
	"collab-notifier/server"
	"collab-notifier/usecase"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// serveCmd runs the HTTP surface and, unless disabled, pulls both event streams.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and event consumers",
	Long: `Serve the health check, the Pub/Sub push endpoints and the admin API.
With --pull the snapshot and video events are also consumed from the configured transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		pull, _ := cmd.Flags().GetBool("pull")
		return serve(ctx, a, pull)
	},
}

func serve(ctx context.Context, a *app, pull bool) error {
	g, ctx := errgroup.WithContext(ctx)

	snapshotHandler := usecase.SnapshotStoredHandler(a.videoUsecase)
	videoHandler := usecase.VideoChangedHandler(a.notifierUsecase)

	router := server.InitiateRouter(
		httpHandler.NewHealthHandler(),
		httpHandler.NewEventHandler(snapshotHandler, videoHandler),
		httpHandler.NewChannelHandler(a.channelUsecase),
		httpHandler.NewNotifyHandler(a.notifierUsecase),
		configuration.C.App.SecretKey,
		configuration.C.Cors.AllowOrigins,
	)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", configuration.C.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.GetLogger().WithField("port", configuration.C.App.Port).Info("Starting application")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if pull {
		if a.bus == nil {
			logger.GetLogger().Warn("Event bus not available - pull consumers disabled")
		} else {
			events := configuration.C.Events
			g.Go(func() error {
				return a.bus.Receive(ctx, events.SnapshotSubscription, snapshotHandler)
			})
			g.Go(func() error {
				return a.bus.Receive(ctx, events.VideoSubscription, videoHandler)
			})
		}
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().Bool("pull", true, "Consume events from the configured transport")
	rootCmd.AddCommand(serveCmd)
}
