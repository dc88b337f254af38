package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	satchelApp "github.com/shhac/satchel/internal/app"
	apperrors "github.com/shhac/satchel/internal/errors"
)

func main() {
	if err := runApp(os.Args[1:]); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// runApp is the main entry point with panic recovery.
func runApp(args []string) (err error) {
	// Create a temporary stdout logger for bootstrap errors
	tempLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			tempLogger.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if len(args) == 0 {
		printUsage()
		return nil
	}

	// Load configuration from environment
	cfg := satchelApp.ConfigFromEnv()

	a, err := satchelApp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	switch args[0] {
	case "ensure":
		created, err := a.Store().EnsureBaseEnvironments()
		if err != nil {
			return err
		}
		fmt.Printf("created %d base environment(s)\n", created)

	case "list":
		collections, err := a.Store().ListCollections()
		if err != nil {
			return err
		}
		for _, c := range collections {
			fmt.Printf("%s  %s  (%d folders, %d requests)\n",
				c.ID, c.Name, len(c.Folders), len(c.Requests))
		}

	case "fingerprint":
		sum, err := a.Store().Fingerprint()
		if err != nil {
			return err
		}
		fmt.Println(sum)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	a.Logger().Info("command complete", slog.String("command", args[0]))
	return nil
}

// reportError prints a classified error so operational failures read
// differently from correctable ones.
func reportError(err error) {
	classified := apperrors.Classify(err)
	fmt.Fprintf(os.Stderr, "%s: %s\n", classified.Title, classified.Message)
	for _, hint := range classified.Recovery {
		fmt.Fprintf(os.Stderr, "  - %s\n", hint)
	}
	if classified.Details != "" {
		fmt.Fprintf(os.Stderr, "  (%s)\n", classified.Details)
	}
}

func printUsage() {
	fmt.Println(`satchel - flat-file collection store maintenance

Usage:
  satchel ensure       create missing base environments
  satchel list         print all collections
  satchel fingerprint  print a hash of the full collection listing

Environment:
  SATCHEL_DATA_DIR     override the data directory
  SATCHEL_PROJECT_ID   override the owning project for new collections
  SATCHEL_DEBUG        enable debug logging`)
}
