package commands

import (
	"github.com/spf13/cobra"

	"github.com/rwelin/prelude/midifile"
)

var midiOutput string

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "Write a melody as a standard MIDI file",
	Long: `Write a melody as a single track standard MIDI file.

Every note is a sixteenth; the tempo is chosen so the file plays at the
configured notes per second. Channel and velocity come from the midi
section of the config file.`,
	Args: cobra.NoArgs,
	RunE: runMIDI,
}

func init() {
	midiCmd.Flags().StringVarP(&midiOutput, "output", "o", "prelude.mid", "output file, - for stdout")
	rootCmd.AddCommand(midiCmd)
}

func runMIDI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ex, key, err := melody(cfg)
	if err != nil {
		return err
	}
	opts := cfg.MIDIOptions()
	opts.Name = ex.Name

	out, err := createOutput(cmd, midiOutput)
	if err != nil {
		return err
	}
	n, err := midifile.Write(out, ex.Notes(key), opts)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("wrote midi", "example", ex.Name, "bpm", opts.Tempo(), "bytes", n, "output", midiOutput)
	return nil
}
