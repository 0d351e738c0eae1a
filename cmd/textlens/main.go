package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/studiowebux/textlens/internal/cli"
	"github.com/studiowebux/textlens/internal/client"
	"github.com/studiowebux/textlens/internal/config"
	"github.com/studiowebux/textlens/internal/keybinds"
	"github.com/studiowebux/textlens/internal/logging"
	"github.com/studiowebux/textlens/internal/mock"
	"github.com/studiowebux/textlens/internal/tui"
	"github.com/studiowebux/textlens/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "textlens",
	Short: "textlens - terminal client for the text analysis API",
	Long: `textlens submits text to a text analysis service and browses the history
of past analyses.

Run without arguments to start the interactive TUI, or use a subcommand for
scripting.

Examples:
  textlens                                   # Start interactive TUI
  textlens analyze "The launch went great"   # Analyze text
  cat notes.txt | textlens analyze -o json   # Analyze stdin
  textlens history --sentiment positive      # Filter past analyses
  textlens mock                              # Serve canned API responses
  textlens --help                            # Show help`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze text from the arguments or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(ctx context.Context, r *cli.Runner, settings config.Settings) error {
			return r.Analyze(ctx, cli.AnalyzeOptions{
				Text:             strings.Join(args, " "),
				IncludeKeywords:  settings.IncludeKeywords && !flagNoKeywords,
				IncludeSentiment: settings.IncludeSentiment && !flagNoSentiment,
				Output:           flagOutput,
				Query:            flagQuery,
			})
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(ctx context.Context, r *cli.Runner, _ config.Settings) error {
			return r.History(ctx, cli.HistoryOptions{
				Search:    flagSearch,
				Sentiment: flagSentiment,
				Keyword:   flagKeyword,
				Limit:     flagLimit,
				Output:    flagOutput,
				Query:     flagQuery,
				Pick:      flagPick,
			})
		})
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the API health endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(ctx context.Context, r *cli.Runner, _ config.Settings) error {
			return r.Health(ctx, flagOutput)
		})
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve canned analysis API responses for local development",
	Long: `Start a mock of the analysis API.

Routes come from a YAML or JSON file given with --config; without one the
built-in fixtures are served. Use --write-config to save the fixtures as a
starting point.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and optionally check for updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd.Context())
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Validate or export the TUI key bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeybinds()
	},
}

// Persistent flags
var (
	flagAPIURL        string
	flagEnvFile       string
	flagDebug         bool
	flagNoUpdateCheck bool
)

// Flags for analyze/history/health
var (
	flagOutput      string
	flagQuery       string
	flagNoKeywords  bool
	flagNoSentiment bool
	flagSearch      string
	flagSentiment   string
	flagKeyword     string
	flagLimit       int
	flagPick        bool
)

// Flags for mock
var (
	mockConfigFile  string
	mockPort        int
	mockWriteConfig string
)

// Flags for version and keybinds
var (
	versionCheck   bool
	keybindsExport string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Analysis API base URL (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Load environment variables from file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "Skip the release check at startup")

	analyzeCmd.Flags().BoolVar(&flagNoKeywords, "no-keywords", false, "Do not request keyword extraction")
	analyzeCmd.Flags().BoolVar(&flagNoSentiment, "no-sentiment", false, "Do not request sentiment analysis")
	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.OutputText, "Output format (text/json/yaml)")
	analyzeCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression or $(command) applied to the JSON result")

	historyCmd.Flags().StringVar(&flagSearch, "search", "", "Search text in summaries")
	historyCmd.Flags().StringVar(&flagSentiment, "sentiment", "", "Filter by sentiment (positive/neutral/negative)")
	historyCmd.Flags().StringVar(&flagKeyword, "keyword", "", "Filter by keyword")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum number of analyses (server default when 0)")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.OutputText, "Output format (text/json/yaml)")
	historyCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression or $(command) applied to the JSON result")
	historyCmd.Flags().BoolVar(&flagPick, "pick", false, "Pick an analysis interactively and show it in full")

	healthCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.OutputText, "Output format (text/json/yaml)")

	mockCmd.Flags().StringVarP(&mockConfigFile, "config", "c", "", "Mock routes file (.yaml/.yml/.json)")
	mockCmd.Flags().IntVarP(&mockPort, "port", "p", 0, "Port to listen on (overrides the config)")
	mockCmd.Flags().StringVar(&mockWriteConfig, "write-config", "", "Write the built-in fixtures to a file and exit")

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check for a newer release")

	keybindsCmd.Flags().StringVar(&keybindsExport, "export", "", "Write the default bindings to a file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// loadSettings resolves settings from the config file, env and flags
func loadSettings() (config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.Resolve(config.GetSettingsFilePath(), flagEnvFile)
	if err != nil {
		return config.Settings{}, err
	}
	if flagAPIURL != "" {
		settings.APIURL = flagAPIURL
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func newClient(settings config.Settings, logger *logrus.Logger) (*client.Client, error) {
	return client.New(client.Options{
		BaseURL:   settings.APIURL,
		Timeout:   settings.Timeout(),
		UserAgent: version.UserAgent(),
		TLS:       settings.TLS,
		Logger:    logger,
	})
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// withRunner builds the CLI runner, logging to stderr, and runs fn
func withRunner(fn func(ctx context.Context, r *cli.Runner, settings config.Settings) error) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Debug:  flagDebug,
		Writer: os.Stderr,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	api, err := newClient(settings, logger)
	if err != nil {
		return err
	}

	runner := cli.New(api, cli.Options{
		Out:         os.Stdout,
		Err:         os.Stderr,
		In:          os.Stdin,
		Logger:      logger,
		Interactive: cli.IsInteractive(),
		Colors:      cli.ResolveColors(os.Stdout),
	})

	ctx, cancel := signalContext()
	defer cancel()
	return fn(ctx, runner, settings)
}

// runTUI starts the interactive TUI, logging to the log file
func runTUI() error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level: settings.LogLevel,
		Debug: flagDebug,
		File:  config.LogFile,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}
	if result := keybinds.NewValidator().ValidateRegistry(registry); result.HasWarnings() {
		logger.Warn(result.String())
	}

	api, err := newClient(settings, logger)
	if err != nil {
		return err
	}

	logger.WithField("api_url", settings.APIURL).Info("Starting TUI")
	return tui.Run(tui.Options{
		Service:          api,
		Keybinds:         registry,
		Logger:           logger,
		Version:          version.Version,
		APIURL:           settings.APIURL,
		IncludeKeywords:  settings.IncludeKeywords,
		IncludeSentiment: settings.IncludeSentiment,
		MaxEditorHeight:  settings.MaxEditorHeight,
		CheckUpdates:     !flagNoUpdateCheck,
	})
}

// runMock serves the mock API until interrupted
func runMock() error {
	if mockWriteConfig != "" {
		if err := mock.SaveConfig(mock.DefaultConfig(), mockWriteConfig); err != nil {
			return err
		}
		fmt.Printf("Mock config written to %s\n", mockWriteConfig)
		return nil
	}

	cfg := mock.DefaultConfig()
	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if mockConfigFile != "" {
		cfg, err = mock.LoadConfig(mockConfigFile)
		if err != nil {
			return err
		}
		workdir = filepath.Dir(mockConfigFile)
	}
	if mockPort != 0 {
		cfg.Port = mockPort
	}

	logger, closer, err := logging.New(logging.Options{Debug: flagDebug, Writer: os.Stderr})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	server := mock.NewServer(cfg, workdir, logger)
	return server.Run(ctx)
}

// runVersion prints the version and the result of an update check
func runVersion(ctx context.Context) error {
	printer := cli.NewPrinter(os.Stdout, os.Stderr, cli.ResolveColors(os.Stdout))
	printer.Line("textlens %s", version.Version)
	if !versionCheck {
		return nil
	}

	update, err := version.NewChecker().CheckForUpdate(ctx, version.Version)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if update.Available {
		printer.Warning("textlens %s is available: %s", update.Latest, update.URL)
		return nil
	}
	printer.Success("You are running the latest version")
	return nil
}

// runKeybinds validates the user bindings or exports the defaults
func runKeybinds() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	printer := cli.NewPrinter(os.Stdout, os.Stderr, cli.ResolveColors(os.Stdout))

	if keybindsExport != "" {
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), keybindsExport); err != nil {
			return err
		}
		printer.Success("Default key bindings written to %s", keybindsExport)
		return nil
	}

	if _, err := os.Stat(config.KeybindsFile); os.IsNotExist(err) {
		printer.Line("No %s found, the default bindings are in use", config.KeybindsFile)
		return nil
	}

	cfg, err := keybinds.LoadConfig(config.KeybindsFile)
	if err != nil {
		return err
	}
	result := keybinds.NewValidator().ValidateConfig(cfg)
	if result.HasErrors() || result.HasWarnings() {
		fmt.Print(result.String())
	}
	if result.HasErrors() {
		return fmt.Errorf("%s has errors", config.KeybindsFile)
	}
	printer.Success("%s is valid", config.KeybindsFile)
	return nil
}
