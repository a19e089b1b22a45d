package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rwelin/prelude"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a melody on the default audio device",
	Long: `Play a melody on the default audio device.

Ctrl-C fades the sound out before exiting.`,
	Example: `  prelude play
  prelude play -k harmonic-minor -e phrases`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ex, key, err := melody(cfg)
	if err != nil {
		return err
	}

	player := prelude.NewPlayer(cfg.NewMix())
	out, err := openSpeaker(cfg.SampleRate, player)
	if err != nil {
		return err
	}

	seq := ex.Sequence(key, cfg.Timing())
	if err := player.Start(seq); err != nil {
		out.Close()
		return err
	}
	logger.Info("playing", "example", ex.Name, "key", cfg.Key,
		"duration", cfg.Timing().Duration(len(ex.Notes(key))))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-player.Idle():
	case <-ctx.Done():
		player.Stop()
		<-player.Idle()
	}
	out.Drain()
	return out.Close()
}
