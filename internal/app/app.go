package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	productcmd "github.com/tair/retail-dashboard/internal/product/usecase/command"
	productquery "github.com/tair/retail-dashboard/internal/product/usecase/query"
	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/kafka"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/config"
	"github.com/tair/retail-dashboard/pkg/httpapi"
	"github.com/tair/retail-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled service
type App struct {
	cfg    *config.Config
	stores *Stores
	events Events

	Router          http.Handler
	GRPC            *grpc.Server
	Health          *health.Server
	SeedHandler     *productcmd.SeedCatalogHandler
	RegisterHandler *usercmd.RegisterUserHandler
	ExportHandler   *productquery.ExportCatalogHandler
}

// NewApp wires the router and gRPC server around the handlers
func NewApp(
	cfg *config.Config,
	stores *Stores,
	events Events,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	handlers *Handlers,
	seedHandler *productcmd.SeedCatalogHandler,
	registerHandler *usercmd.RegisterUserHandler,
	exportHandler *productquery.ExportCatalogHandler,
) *App {
	grpcServer, healthServer := NewGRPCServer(reg)
	return &App{
		cfg:             cfg,
		stores:          stores,
		events:          events,
		Router:          NewRouter(handlers, stores, gatherer, httpapi.DefaultMiddlewareConfig()),
		GRPC:            grpcServer,
		Health:          healthServer,
		SeedHandler:     seedHandler,
		RegisterHandler: registerHandler,
		ExportHandler:   exportHandler,
	}
}

// Bootstrap opens the stores and the event stream and assembles the app.
// The returned cleanup closes both.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.JWT.Secret == config.DefaultJWTSecret {
		logger.Logger.Warn().Msg("JWT_SECRET not set, signing sessions with the default key")
	}

	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var events Events = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Service.InstanceID)
		if err != nil {
			stores.Close()
			return nil, nil, err
		}
		events = publisher
	}

	a, err := InitializeApp(cfg, stores, events, prometheus.NewRegistry())
	if err != nil {
		events.Close()
		stores.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := events.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close event publisher")
		}
		stores.Close()
	}
	return a, cleanup, nil
}

// Seed fills an empty catalog with the configured sample rows
func (a *App) Seed(ctx context.Context, force bool) (int, error) {
	return a.SeedHandler.Handle(ctx, auth.System, productcmd.SeedCatalogCommand{
		Rows:  a.cfg.Seed.Rows,
		Seed:  a.cfg.Seed.Seed,
		Force: force,
	})
}

// Run serves HTTP and gRPC, and consumes catalog events when Kafka is
// enabled, until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              ":" + a.cfg.HTTPPort,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", ":"+a.cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", a.cfg.GRPCPort, err)
	}

	var consumer *kafka.Consumer
	if a.cfg.Kafka.Enabled {
		// One group per instance so every instance sees every change
		groupID := a.cfg.Kafka.GroupID + "-" + a.cfg.Service.InstanceID
		consumer, err = kafka.NewConsumer(a.cfg.Kafka.Brokers, groupID, []string{kafka.TopicCatalogChanged}, a.cfg.Service.InstanceID)
		if err != nil {
			lis.Close()
			return err
		}
		consumer.RegisterHandler(kafka.EventTypeCatalogChanged, kafka.InvalidateOnCatalogChange(a.stores.Mirror))
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info().
			Str("port", a.cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		logger.Logger.Info().Str("port", a.cfg.GRPCPort).Msg("gRPC server started")
		if err := a.GRPC.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Logger.Info().Msg("Shutting down servers...")

		a.Health.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		a.GRPC.GracefulStop()
		if consumer != nil {
			if cerr := consumer.Close(); cerr != nil {
				logger.Logger.Warn().Err(cerr).Msg("Failed to close consumer")
			}
		}
		return err
	})

	return g.Wait()
}
