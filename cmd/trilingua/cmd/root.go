// Package cmd contains all CLI commands for the trilingua tool.
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/trilingua/internal/config"
	"github.com/f3rmion/trilingua/internal/genai"
	"github.com/f3rmion/trilingua/internal/history"
	"github.com/f3rmion/trilingua/internal/session"
	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/f3rmion/trilingua/internal/tui"
	"github.com/f3rmion/trilingua/internal/tui/bigchar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trilingua",
	Short: "Trilingual Japanese/English/Chinese dictionary powered by a generative backend",
	Long: `Trilingua is an interactive trilingual dictionary and sentence analyzer.

Submit a word or sentence in Japanese, English or Chinese and get back:
  - The word in all three languages with pronunciations
  - Definitions (Japanese with furigana), example sentences, etymology
  - Synonyms and antonyms, or a unit-level sentence breakdown
  - An optional illustrative image and spoken audio

Lookups are kept in a local, deduplicated history (most recent 50)
that can be browsed, replayed and exported as CSV.

Requires the GEMINI_API_KEY environment variable.

Running 'trilingua' without arguments launches the interactive TUI.`,
	RunE: runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/trilingua)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("TRILINGUA")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// app bundles everything a command needs.
type app struct {
	settings *config.Settings
	client   *genai.Client
	store    *history.Store
	kv       *history.SQLiteKV
	logf     func(format string, args ...any)
}

func (a *app) close() {
	if a.kv != nil {
		a.kv.Close()
	}
}

// newApp loads settings, opens the history store and builds the backend
// client.
func newApp() (*app, error) {
	dir := getConfigDir()
	if err := config.EnsureConfigDir(dir); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	// internal diagnostics (backend failures, unreadable history) only
	// surface with --verbose; user-facing errors are reported regardless
	logf := func(string, ...any) {}
	if viper.GetBool("verbose") {
		logf = log.Printf
	}

	settings, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if settings.FontPath != "" {
		bigchar.ConfiguredPath = settings.FontPath
	}

	voices := make(map[trilingua.Lang]string, len(settings.Voices))
	for code, voice := range settings.Voices {
		lang, err := trilingua.ParseLang(code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring voice override: %v\n", err)
			continue
		}
		voices[lang] = voice
	}

	client := genai.New(genai.Options{
		TextModel:   settings.TextModel,
		ImageModel:  settings.ImageModel,
		SpeechModel: settings.SpeechModel,
		Timeout:     settings.Timeout(),
		Voices:      voices,
		Logf:        logf,
	})

	kv, err := history.OpenKV(config.HistoryPath(dir))
	if err != nil {
		return nil, err
	}

	return &app{
		settings: settings,
		client:   client,
		store:    history.NewStore(kv, logf),
		kv:       kv,
		logf:     logf,
	}, nil
}

// runInteractive launches the TUI.
func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	logPath := filepath.Join(getConfigDir(), "trilingua.log")
	logFile, err := tea.LogToFile(logPath, "trilingua")
	if err == nil {
		defer logFile.Close()
	}

	controller := session.New(a.client, a.store, session.Options{
		Timeout: a.settings.Timeout(),
		Logf:    a.logf,
	})

	p := tea.NewProgram(
		tui.NewApp(controller, a.client),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
