package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/goalgrid/goalgrid/internal/api"
	"github.com/goalgrid/goalgrid/internal/cli"
	"github.com/goalgrid/goalgrid/internal/config"
	"github.com/goalgrid/goalgrid/internal/db"
	"github.com/goalgrid/goalgrid/internal/docstore"
	"github.com/goalgrid/goalgrid/internal/lesson"
	"github.com/goalgrid/goalgrid/internal/oracle"
	"github.com/goalgrid/goalgrid/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Required configuration is checked up front so a misconfigured process
	// fails at startup, not on the first request.
	oracleCfg := oracle.LoadConfig()
	if oracleCfg.APIKey == "" {
		return fmt.Errorf("GOALGRID_ORACLE_API_KEY is not set")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	var oracleObserver oracle.Observer = oracle.NewMetricsObserver(registry)
	if oracleCfg.LogCalls {
		oracleObserver = oracle.MultiObserver{oracleObserver, oracle.NewLogObserver(os.Stderr)}
	}

	docs := docstore.NewSQLiteStore(database)
	lessons := store.NewLessonStore(docs)
	client := oracle.NewChatClient(oracleCfg, oracleObserver)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := lesson.NewService(lessons, client, lesson.NewLogUseCaseObserver(os.Stderr))
	server := api.NewServer(svc, lessons, logger, registry)

	app := &cli.App{
		Lessons: lessons,
		Service: svc,
		Handler: server.Routes(),
		Addr:    cfg.Addr,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
