package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/isozombie/pkg/api"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/version"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	allowOrigin := flag.String("allow-origin", "*", "allowed CORS origin")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting scoreboard server version %s", version.Get())
	ctx := context.Background()

	connStr := os.Getenv("ISOZOMBIE_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://isozombie-scoreboard.db"
	}
	repository, err := repositories.NewRepositoryFromURL(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to open score repository: %v", err))
	}
	defer repository.Close(ctx)

	apiServerOpts := api.NewAPIServerOptions{
		Port:        *port,
		AllowOrigin: *allowOrigin,
		Repository:  repository,
	}
	tlsCertFile := os.Getenv("ISOZOMBIE_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("ISOZOMBIE_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go func() {
		if err := server.Start(); err != nil {
			log.Error("Scoreboard server stopped: %v", err)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}
