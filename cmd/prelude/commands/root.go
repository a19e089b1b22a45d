package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwelin/prelude/examples"
	"github.com/rwelin/prelude/internal/config"
	"github.com/rwelin/prelude/theory"
)

var (
	// Global flags
	configPath  string
	debug       bool
	keyName     string
	exampleName string
)

var rootCmd = &cobra.Command{
	Use:   "prelude",
	Short: "Generate and play a diatonic prelude",
	Long: `prelude - builds a short melody from scales, keys and 5-note motifs.

The reference composition expands 21 motifs, each under a borrowed-key
transform, into 336 notes. It can be printed, rendered to WAVE or MIDI,
played on the speakers, streamed to a serial synthesizer or served over HTTP.

Configuration is read from the OS config directory:
  macOS:   ~/Library/Application Support/prelude/config.yaml
  Linux:   ~/.config/prelude/config.yaml
  Windows: %AppData%/prelude/config.yaml

Examples:
  prelude notes --format table
  prelude play --key harmonic-minor
  prelude render -o prelude.wav --smooth 4000
  prelude serve --listen :7999`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(cmd.ErrOrStderr(), debug)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default is <user config dir>/prelude/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.StringVarP(&keyName, "key", "k", "", "key preset: major, minor, harmonic-minor, mode5, mode6 or mode<N>")
	pf.StringVarP(&exampleName, "example", "e", "prelude", "melody: prelude, phrases or scale")
}

// logger is the command-wide structured logger.
var logger = slog.Default()

// initLogger configures the shared slog logger and makes it the default so
// library packages log through the same handler.
func initLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if keyName != "" {
		cfg.Key = keyName
		if _, err := cfg.KeyFunc(); err != nil {
			return nil, err
		}
	}
	logger.Debug("config loaded", "path", cfg.Path(), "key", cfg.Key)
	return cfg, nil
}

// melody resolves the --example flag and the configured key.
func melody(cfg *config.Config) (*examples.Example, theory.Key, error) {
	key, err := cfg.KeyFunc()
	if err != nil {
		return nil, key, err
	}
	ex := examples.ByName(exampleName)
	if ex == nil {
		return nil, key, fmt.Errorf("no such example %q", exampleName)
	}
	return ex, key, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput opens path for writing; "-" is the command's stdout.
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}
