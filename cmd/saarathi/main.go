package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rohinthram/sanskrita-saarathi/internal/agent"
	"github.com/rohinthram/sanskrita-saarathi/internal/database"
	"github.com/rohinthram/sanskrita-saarathi/internal/logging"
	"github.com/rohinthram/sanskrita-saarathi/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	dbPath    string
	port      int
	bind      string
	logFile   string
	verbosity int
	opTimeout time.Duration
	yes       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "saarathi",
		Short: "Saarathi - Sanskrit learning agent backend",
		Long:  `Saarathi is the record-access backend for the Sanskrit learning agents: it manages the glossary and quiz tables and exposes them as agent-callable tools.`,
	}

	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./saarathi.db", "SQLite database path (or set DATABASE_URL env var)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: alongside the database)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().DurationVar(&opTimeout, "op-timeout", database.DefaultOperationTimeout, "Deadline for each database operation")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the agent tool server",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	serveCmd.Flags().StringVarP(&bind, "bind", "b", "127.0.0.1", "IP address to bind to")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create every registered table",
		RunE:  runInit,
	}

	dropCmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every registered table",
		RunE:  runDrop,
	}
	dropCmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check database connectivity",
		RunE:  runHealth,
	}

	vacuumCmd := &cobra.Command{
		Use:   "vacuum",
		Short: "Rebuild the database file to reclaim space",
		RunE:  runVacuum,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("saarathi %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}

	rootCmd.AddCommand(serveCmd, initCmd, dropCmd, healthCmd, vacuumCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openManager() (*database.Manager, error) {
	if env := os.Getenv("DATABASE_URL"); env != "" && dbPath == "./saarathi.db" {
		dbPath = env
	}

	level := "info"
	switch {
	case verbosity >= 2:
		level = "trace"
	case verbosity == 1:
		level = "debug"
	}
	if logFile == "" {
		logFile = logging.FilePathForDB(dbPath)
	}
	logging.Apply(level, logFile)

	registry, err := agent.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema registry: %w", err)
	}

	return database.New(dbPath, registry, database.WithOperationTimeout(opTimeout))
}

func runServe(cmd *cobra.Command, args []string) error {
	if port == 0 {
		if env := os.Getenv("PORT"); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return fmt.Errorf("invalid PORT env var: %w", err)
			}
			port = p
		}
	}
	if port == 0 {
		return fmt.Errorf("port is required (use --port or the PORT env var)")
	}

	mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	if res := mgr.CreateTables(); !res.OK() {
		return fmt.Errorf("failed to prepare tables: %s", res.Message)
	}

	// Periodic planner-stat refresh keeps long-running deployments snappy.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := mgr.Optimize(); err != nil {
			log.Error().Err(err).Msg("Scheduled optimize failed")
		} else {
			log.Debug().Msg("Scheduled optimize completed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := web.NewServer(mgr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(bind, port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	res := mgr.CreateTables()
	fmt.Println(res.Message)
	if !res.OK() {
		return fmt.Errorf("init failed")
	}
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !yes {
		return fmt.Errorf("dropping tables destroys data; re-run with --yes to confirm")
	}

	mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	res := mgr.DropTables()
	fmt.Println(res.Message)
	if !res.OK() {
		return fmt.Errorf("drop failed")
	}
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	res := mgr.HealthCheck()
	fmt.Println(res.Message)
	if !res.OK() {
		return fmt.Errorf("unhealthy")
	}
	return nil
}

func runVacuum(cmd *cobra.Command, args []string) error {
	mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Vacuum(); err != nil {
		return err
	}
	fmt.Println("Database vacuumed")
	return nil
}
