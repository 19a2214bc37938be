// Package server boots the storefront: config, MongoDB, Redis, storage,
// the HTTP stack and the optional gRPC health endpoint.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	grpcgo "google.golang.org/grpc"

	"github.com/shashiranjanraj/stride/app/routes"
	"github.com/shashiranjanraj/stride/config"
	"github.com/shashiranjanraj/stride/pkg/cache"
	"github.com/shashiranjanraj/stride/pkg/database"
	stridegrpc "github.com/shashiranjanraj/stride/pkg/grpc"
	"github.com/shashiranjanraj/stride/pkg/logger"
	"github.com/shashiranjanraj/stride/pkg/metrics"
	"github.com/shashiranjanraj/stride/pkg/middleware"
	"github.com/shashiranjanraj/stride/pkg/reqid"
	"github.com/shashiranjanraj/stride/pkg/response"
	"github.com/shashiranjanraj/stride/pkg/router"
	"github.com/shashiranjanraj/stride/pkg/storage"
	"github.com/shashiranjanraj/stride/pkg/ws"
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(shutdownCtx); err != nil {
			logger.Error("mongo disconnect", "error", err)
		}
	}()

	// Redis is optional: cache reads degrade to MongoDB when absent.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	storage.Connect()

	feed := ws.NewHub()
	go feed.Run()

	handler := buildHandler(feed)

	var grpcSrv *grpcgo.Server
	if port := config.GRPCPort(); port != "" {
		srv, err := stridegrpc.Start(port)
		if err != nil {
			return err
		}
		grpcSrv = srv
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stridegrpc.Stop(grpcSrv)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	stridegrpc.Stop(grpcSrv)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildHandler assembles the router with the global middleware stack.
//
// Ordering (outermost to innermost): metrics for accurate total latency,
// recovery before anything can panic unhandled, request id before the
// first log line, then logging, CORS, and the rate limiter.
func buildHandler(feed *ws.Hub) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, response.M{"status": "ok"})
	})

	// Locally stored product images are served straight off the disk.
	if config.StorageDisk() == "local" {
		fs := http.FileServer(http.Dir(config.StorageLocalRoot()))
		r.Mount("/storage", http.StripPrefix("/storage", fs))
	}

	routes.RegisterAPI(r, feed)

	return r.Handler()
}

// Routes exposes the registered route table for the route:list command.
func Routes() ([]router.RouteInfo, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	r := router.New()
	routes.RegisterAPI(r, nil)
	return r.Routes(), nil
}
