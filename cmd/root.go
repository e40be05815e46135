package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/movie-tui/config"
	"github.com/sebastiantruijens/movie-tui/logger"
	"github.com/sebastiantruijens/movie-tui/rottentomatoes"
	"github.com/sebastiantruijens/movie-tui/tmdb"
	"github.com/sebastiantruijens/movie-tui/ui"
)

// consoleLogAnnotation marks commands that may also log to stderr.
const consoleLogAnnotation = "console-log"

var errNotTerminal = errors.New("movie-tui needs an interactive terminal; use `movie-tui search` for scripts")

var (
	cfgFile    string
	logLevel   string
	cfg        *config.Config
	appLog     *logger.Logger
	tmdbClient *tmdb.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "movie-tui",
	Short: "Search The Movie Database from your terminal",
	Long: `movie-tui is a terminal interface for searching movies on The Movie
Database (TMDB). Results are shown as a paged grid; select one to see its
details and, optionally, its Rotten Tomatoes scores.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
	RunE:               runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.movie-tui/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(searchCmd)
}

// initializeApp loads configuration and builds the logger and TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	var console io.Writer
	if cmd.Annotations[consoleLogAnnotation] == "true" {
		console = os.Stderr
	}

	appLog, err = logger.New(cfg.Logging, console)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB, appLog.Logger, tmdb.WithUserAgent("movie-tui/"+appVersion))
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	appLog.Debug().
		Str("command", cmd.Name()).
		Str("version", appVersion).
		Bool("scores", cfg.Scores.Enabled).
		Msg("initialized")

	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if appLog == nil {
		return nil
	}
	return appLog.Close()
}

func runTUI(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errNotTerminal
	}

	var scores ui.ScoresFetcher
	if cfg.Scores.Enabled {
		scores = rottentomatoes.NewClient(cfg.Scores.BaseURL, cfg.Scores.Timeout, appLog.Logger)
	}

	model := ui.NewModel(ui.Options{
		Searcher:     tmdbClient,
		Scores:       scores,
		ImageBaseURL: tmdbClient.ImageBaseURL(),
		Config:       cfg.UI,
		Logger:       appLog.Logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
