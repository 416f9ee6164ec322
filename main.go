package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/chigwell/graph-ui/prompts"
	"github.com/chigwell/graph-ui/services"
	"github.com/chigwell/graph-ui/tools"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	enableSSE := flag.Bool("sse", false, "Enable SSE server")
	sseAddr := flag.String("sse-addr", ":8080", "Address for SSE server to listen on")
	sseBasePath := flag.String("sse-base-path", "/mcp", "Base path for SSE endpoints")
	metricsAddr := flag.String("metrics-addr", "", "Address to serve Prometheus metrics on (empty disables)")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}
	if *metricsAddr == "" {
		*metricsAddr = os.Getenv("METRICS_ADDR")
	}
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(level)
	}

	defaults, err := graph.RunConfigFromEnv()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"graph-ui",
		"1.0.0",
		server.WithLogging(),
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
	)

	enableTools := strings.Split(os.Getenv("ENABLE_TOOLS"), ",")
	allToolsEnabled := len(enableTools) == 1 && enableTools[0] == ""

	isEnabled := func(toolName string) bool {
		return allToolsEnabled || slices.Contains(enableTools, toolName)
	}

	if isEnabled("graph") {
		graphTools := tools.NewGraphTools(services.DefaultOllamaExtractor(), defaults, logger)
		tools.RegisterGraphTools(mcpServer, graphTools)
	}

	prompts.RegisterExtractionPrompts(mcpServer, defaults)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Infof("Serving metrics on %s/metrics", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Errorf("Metrics server stopped: %v", err)
			}
		}()
	}

	// Check if SSE server should be enabled
	if *enableSSE || os.Getenv("ENABLE_SSE") == "true" {
		sseServer := server.NewSSEServer(
			mcpServer,
			server.WithBasePath(*sseBasePath),
			server.WithKeepAlive(true),
		)

		go func() {
			logger.Infof("Starting SSE server on %s with base path %s", *sseAddr, *sseBasePath)
			if err := sseServer.Start(*sseAddr); err != nil {
				logger.Fatalf("Failed to start SSE server: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		sig := <-sigCh
		logger.Infof("Received signal %v, shutting down...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := sseServer.Shutdown(ctx); err != nil {
			logger.Errorf("Error during SSE server shutdown: %v", err)
		}
		logger.Info("SSE server shutdown complete")
	} else {
		if err := server.ServeStdio(mcpServer); err != nil {
			panic(fmt.Sprintf("Server error: %v", err))
		}
	}
}
