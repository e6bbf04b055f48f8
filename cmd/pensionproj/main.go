package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/rgehrsitz/pensionproj/internal/calculation"
	"github.com/rgehrsitz/pensionproj/internal/config"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/output"
	"github.com/rgehrsitz/pensionproj/internal/storage"
	"github.com/rgehrsitz/pensionproj/internal/storage/cache"
	"github.com/rgehrsitz/pensionproj/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pensionproj",
		Short:        "UK retirement pension projection",
		Long:         "Projects a pension pot, state pension, income tax and net worth year by year to a planning horizon",
		SilenceUsage: true,
	}
	root.AddCommand(
		projectCmd(),
		compareCmd(),
		validateCmd(),
		userCmd(),
		importCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pensionproj %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newEngine(debugMode bool) *calculation.Engine {
	engine := calculation.NewEngine()
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func formatterFor(name string) (output.Formatter, error) {
	f := output.GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unknown output format %q (valid: %v)", name, output.AvailableFormatterNames())
	}
	return f, nil
}

// emit writes the report to file, or to the command's output when file is empty.
func emit(cmd *cobra.Command, f output.Formatter, report output.Report, file string) error {
	if file != "" {
		if err := output.WriteFormatted(f, report, file); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", f.Name(), file)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func projectCmd() *cobra.Command {
	var format, outFile string
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project a scenario file (YAML or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatterFor(format)
			if err != nil {
				return err
			}

			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			result, err := newEngine(debugMode).Project(cmd.Context(), *req.Data, req.Events, req.Assumptions)
			if err != nil {
				return err
			}

			name := req.Name
			if name == "" {
				name = args[0]
			}
			return emit(cmd, f, output.Report{Name: name, Result: result}, outFile)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, summary, csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid\n", args[0])
			return nil
		},
	}
}

func userCmd() *cobra.Command {
	var dbPath, redisAddr, format, outFile string
	var cacheTTL time.Duration
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "user [user-id]",
		Short: "Project a stored user's records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatterFor(format)
			if err != nil {
				return err
			}

			store, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var source storage.SnapshotSource = store
			if redisAddr != "" {
				rc := cache.NewRedisCache(redisAddr, cacheTTL)
				defer rc.Close()
				source = cache.NewCachedSource(store, rc, simpleCLILogger{})
			}

			records, err := source.LookupUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			overrides := domain.ProfileOverrides(records)
			result, err := newEngine(debugMode).Project(cmd.Context(), domain.BuildSnapshot(records), nil, &overrides)
			if err != nil {
				return err
			}
			return emit(cmd, f, output.Report{Name: "User " + args[0], Result: result}, outFile)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "pensionproj.db", "SQLite database holding user records")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the read-through cache (disabled when empty)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 5*time.Minute, "Cache entry lifetime")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, summary, csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func importCmd() *cobra.Command {
	var dbPath, redisAddr string

	cmd := &cobra.Command{
		Use:   "import [users-file]",
		Short: "Store a user records file in the SQLite database",
		Long: `Store a user records file in the SQLite database.

With --redis, the cached records of every imported user are dropped so a running
service sees the new values on its next lookup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := config.NewInputParser().LoadUserRecords(args[0])
			if err != nil {
				return err
			}

			store, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var invalidator cacheInvalidator
			if redisAddr != "" {
				rc := cache.NewRedisCache(redisAddr, 0)
				defer rc.Close()
				invalidator = cache.NewCachedSource(store, rc, simpleCLILogger{})
			}

			if err := importUsers(cmd.Context(), store, invalidator, users, simpleCLILogger{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users into %s\n", len(users), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "pensionproj.db", "SQLite database to write")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address whose cached user records are dropped after the import")
	return cmd
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// importUsers saves every user and drops their cached records. A failed
// invalidation is logged; the rows are already written.
func importUsers(ctx context.Context, store *sqlite.Store, invalidator cacheInvalidator, users []domain.UserRecords, logger calculation.Logger) error {
	for _, u := range users {
		if err := store.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("import user %s: %w", u.Profile.UserID, err)
		}
		if invalidator == nil {
			continue
		}
		if err := invalidator.Invalidate(ctx, u.Profile.UserID); err != nil {
			logger.Warnf("cached records for %s were not invalidated: %v", u.Profile.UserID, err)
		}
	}
	return nil
}
