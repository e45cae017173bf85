package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/rentcore/rentcore/internal/api"
	"github.com/rentcore/rentcore/internal/assistant"
	"github.com/rentcore/rentcore/internal/config"
	"github.com/rentcore/rentcore/internal/session"
	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/store"
)

const defaultSigningKey = "mJ3r8qQxTAfZk1uNc5vB7yD0eHsWgLoPi2S4U6X9jRE="

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	backend        string
	dataDir        string
	dsn            string
	signingKey     string
	allowedOrigins stringSliceFlag
	assistantKey   string
	assistantURL   string
)

func main() {
	logger := log.New(os.Stderr, "[rentcore] ", log.LstdFlags)

	// load .env before flag defaults read the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Println("load .env:", err)
	}

	flag.StringVar(&addr, "addr", "localhost:8000", "server address")
	flag.StringVar(&backend, "backend", config.BackendFile, "storage backend (file, postgres or memory)")
	flag.StringVar(&dataDir, "data-dir", "data", "directory for the file backend")
	flag.StringVar(&dsn, "dsn", "", "database connection string for the postgres backend")
	flag.StringVar(&signingKey, "signing-key", defaultSigningKey, "base64 encoded signing key")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.StringVar(&assistantKey, "assistant-key", os.Getenv("ASSISTANT_API_KEY"), "generative assistant API key")
	flag.StringVar(&assistantURL, "assistant-url", os.Getenv("ASSISTANT_BASE_URL"), "generative assistant base URL")
	flag.Parse()

	cfg, err := config.NewConfig(addr, backend, dataDir, dsn, signingKey, allowedOrigins)
	if err != nil {
		logger.Fatal("config:", err)
	}
	cfg.AssistantAPIKey = assistantKey
	cfg.AssistantBaseURL = assistantURL

	var storeBackend store.Backend
	switch cfg.StorageBackend {
	case config.BackendFile:
		storeBackend, err = store.NewFileBackend(cfg.DataDir)
	case config.BackendPostgres:
		storeBackend, err = store.NewPgBackend(cfg.DatabaseDSN)
	case config.BackendMemory:
		storeBackend = store.NewMemBackend()
	}
	if err != nil {
		logger.Fatal("storage backend:", err)
	}
	defer func() {
		if err := storeBackend.Close(); err != nil {
			logger.Println("backend close:", err)
		}
	}()

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	ctrl := session.NewController(logger, store.NewStore(logger, storeBackend), statsUpdater)

	asst := assistant.NewClient(logger, cfg.AssistantBaseURL, cfg.AssistantAPIKey)

	srv := api.NewRentcoreApp(mux, logger, ctrl, asst, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
