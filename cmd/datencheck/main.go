// Package main provides the datencheck CLI: consistency checks, duplicate
// searches and ignored-issue management over a GEDCOM file.
//
// Backing services come from the environment (see config.FromEnv). Results
// are written to stdout; logs go to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"datencheck/internal/platform/config"
	"datencheck/internal/platform/logger"
	dErrors "datencheck/pkg/domain-errors"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"validate", "Validate one person, optionally with form overrides", runValidate},
	{"scan", "Validate every person of a tree", runScan},
	{"search", "Find stored persons matching a new person", runSearch},
	{"siblings", "Find existing children matching a new child", runSiblings},
	{"families", "Find families with the given spouses", runFamilies},
	{"pairs", "List probable duplicate persons", runPairs},
	{"titles", "List sources or repositories with similar titles", runTitles},
	{"details", "Show one person with parents and families", runDetails},
	{"ignore", "Suppress an issue code for a person", runIgnore},
	{"unignore", "Restore a suppressed issue code", runUnignore},
	{"ignored", "List suppressed issues of a tree", runIgnored},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	name := os.Args[1]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage()
		return
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := run(cmd, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process status: 2 for bad input, 3 for an
// unreachable dependency or cancellation, 1 otherwise.
func exitCode(err error) int {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInvalidInput, dErrors.CodeValidation, dErrors.CodeNotFound:
		return 2
	case dErrors.CodeUnavailable, dErrors.CodeStoreUnavailable, dErrors.CodeTimeout:
		return 3
	default:
		return 1
	}
}

func run(cmd *command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return cmd.run(ctx, a, args)
}

func printUsage() {
	fmt.Println(`datencheck - genealogy consistency checks

Usage:
  datencheck <command> [flags]

Commands:`)
	for _, c := range commands {
		fmt.Printf("  %-10s %s\n", c.name, c.summary)
	}
	fmt.Println(`
Run 'datencheck <command> -h' for the flags of a command.

Environment:
  DATABASE_URL                  PostgreSQL store for ignored issues (memory if unset)
  REDIS_URL                     Cache in front of the ignored-issue store
  KAFKA_BROKERS                 Audit events for ignore/unignore (memory if unset)
  DATENCHECK_SETTINGS_FILE      YAML file with validation settings
  DATENCHECK_LOG_LEVEL          debug, info, warn or error
  DATENCHECK_SCAN_WORKERS       Concurrent validations per scan page
  DATENCHECK_SCAN_PAGE_SIZE     Persons per scan page
  DATENCHECK_METRICS_ADDR       Serve Prometheus metrics at this address
  DATENCHECK_TRACE_EXPORTER     Export spans (stdout)`)
}
