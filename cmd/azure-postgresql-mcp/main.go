package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/logging"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/version"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const serverName = "azure-postgresql-mcp"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// fallback logger
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to init logger", zap.Error(err))
	}
	defer logger.Sync()

	srv, err := mcpserver.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	defer srv.Close()

	switch cfg.Transport {
	case config.TransportStdio:
		runStdio(ctx, srv, logger)
	case config.TransportSSE:
		runSSE(ctx, srv, cfg, logger)
	case config.TransportStreamable:
		runStreamable(ctx, srv, cfg, logger)
	default:
		logger.Fatal("unknown transport", zap.String("transport", string(cfg.Transport)))
	}
}

func runStdio(ctx context.Context, srv *mcpserver.Server, logger *zap.Logger) {
	transport := &mcp.StdioTransport{}
	logger.Info("starting server (stdio)", zap.String("name", serverName), zap.String("version", version.Version))
	if err := srv.Run(ctx, transport); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func runSSE(ctx context.Context, srv *mcpserver.Server, cfg config.Config, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort)
	endpoint := cfg.HTTPPath

	logger.Info("starting server (SSE)",
		zap.String("name", serverName),
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.String("endpoint", endpoint),
	)

	mux := http.NewServeMux()

	// SSE endpoint - handles both GET (SSE stream) and POST (messages)
	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			sessionID := uuid.NewString()
			sessionEndpoint := fmt.Sprintf("%s/session/%s", endpoint, sessionID)

			transport := &mcp.SSEServerTransport{
				Endpoint: sessionEndpoint,
				Response: w,
			}

			// Register session handler for POST messages
			mux.Handle(sessionEndpoint, transport)

			logger.Info("new SSE session", zap.String("session_id", sessionID))

			if err := srv.Run(r.Context(), transport); err != nil {
				logger.Error("SSE session error", zap.Error(err), zap.String("session_id", sessionID))
			}
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("HTTP server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func runStreamable(ctx context.Context, srv *mcpserver.Server, cfg config.Config, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort)
	endpoint := cfg.HTTPPath

	logger.Info("starting server (Streamable HTTP)",
		zap.String("name", serverName),
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.String("endpoint", endpoint),
	)

	mux := http.NewServeMux()

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		sessionID := uuid.NewString()

		transport := &mcp.StreamableServerTransport{
			SessionID: sessionID,
		}

		go func() {
			if err := srv.Run(r.Context(), transport); err != nil {
				logger.Error("Streamable session error", zap.Error(err), zap.String("session_id", sessionID))
			}
		}()

		transport.ServeHTTP(w, r)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("HTTP server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
