package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finsim/finsim/internal/calculation"
	"github.com/finsim/finsim/internal/config"
	"github.com/finsim/finsim/internal/output"
	"github.com/finsim/finsim/internal/server"
	"github.com/finsim/finsim/internal/store"
	"github.com/finsim/finsim/internal/tui"
	"github.com/finsim/finsim/pkg/dateutil"
)

// zerologAdapter implements calculation.Logger on top of zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func (l zerologAdapter) Debugf(format string, args ...any) { l.log.Debug().Msgf(format, args...) }
func (l zerologAdapter) Infof(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l zerologAdapter) Warnf(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l zerologAdapter) Errorf(format string, args ...any) { l.log.Error().Msgf(format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newLogger(debugMode bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debugMode {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "finsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
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

// envOr returns the named environment variable or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var rootCmd = &cobra.Command{
	Use:   "finsim",
	Short: "Personal finance projection CLI",
	Long:  "Deterministic day-stepped projections over wallets, fixed-term contracts, and reinvestment cycles",
}

var projectCmd = &cobra.Command{
	Use:   "project [plan-file]",
	Short: "Run a projection for a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugMode, _ := cmd.Flags().GetBool("debug")
		log := newLogger(debugMode)

		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		// Pin the forecast reference date to today unless the plan sets it.
		if plan.Config.AsOf == "" {
			plan.Config.AsOf = dateutil.Format(time.Now().UTC())
		}

		engine := calculation.NewEngine()
		if debugMode {
			engine.SetLogger(zerologAdapter{log: log})
		}

		proj, err := engine.Project(plan)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format %q (valid: console, json, csv)", outputFormat)
		}
		data, err := f.Format(proj)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Plan file %s is valid\n", args[0])
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		debugMode, _ := cmd.Flags().GetBool("debug")
		log := newLogger(debugMode)

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port, _ = strconv.Atoi(envOr("FINSIM_PORT", "8080"))
		}
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = envOr("FINSIM_DB", "finsim.db")
		}

		st, err := store.Open(dbPath, log)
		if err != nil {
			return err
		}
		defer st.Close()

		engine := calculation.NewEngine()
		engine.SetLogger(zerologAdapter{log: log})

		srv := server.New(server.Config{
			Port:    port,
			Log:     log,
			Store:   st,
			Engine:  engine,
			DevMode: debugMode,
		})

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [plan-file]",
	Short: "Browse a projection's day ledger interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(tui.NewModel(args[0]), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	projectCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	projectCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	serveCmd.Flags().IntP("port", "p", 0, "Listen port (default $FINSIM_PORT or 8080)")
	serveCmd.Flags().String("db", "", "Plan database path (default $FINSIM_DB or finsim.db)")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Optional .env file for serve defaults; missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
