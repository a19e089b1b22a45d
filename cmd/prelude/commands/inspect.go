package commands

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwelin/prelude"
	"github.com/rwelin/prelude/dsp"
	"github.com/rwelin/prelude/theory"
)

var inspectExpect bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.wav>",
	Short: "Detect the pitch of every note slot of a rendered file",
	Long: `Detect the pitch of every note slot of a rendered file.

The file is cut into slots of one note duration at the configured notes per
second and the strongest frequency of each slot is mapped back to the
nearest semitone. With --expect the detected notes are compared against the
selected example and key; silent or missing slots count as differences.`,
	Example: `  prelude render -e scale -o scale.wav
  prelude inspect -e scale --expect scale.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectExpect, "expect", false, "compare against the selected example")
	rootCmd.AddCommand(inspectCmd)
}

// silentRMS is the level below which a slot counts as silence.
const silentRMS = 1e-3

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	rate, pcm, err := prelude.ReadWAV(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var want []int
	if inspectExpect {
		ex, key, err := melody(cfg)
		if err != nil {
			return err
		}
		want = ex.Notes(key)
	}

	x := dsp.FromPCM16(pcm)
	t := prelude.Timing{SampleRate: rate, NotesPerSecond: cfg.NotesPerSecond}
	out := cmd.OutOrStdout()
	mismatches := 0
	slots := 0
	for i := 0; t.NoteTime(i+1) <= int64(len(x)); i++ {
		slots++
		slot := x[t.NoteTime(i):t.NoteTime(i+1)]
		if rms(slot) < silentRMS {
			if i < len(want) {
				fmt.Fprintf(out, "%5d  %10s  %-4s  want %s\n", i, "-", "", theory.NoteName(want[i]))
				mismatches++
			} else {
				fmt.Fprintf(out, "%5d  %10s\n", i, "-")
			}
			continue
		}
		freq := dsp.PeakFrequency(slot, rate)
		n := theory.NearestNote(freq)
		mark := ""
		if want != nil {
			switch {
			case i >= len(want):
				mark = "  extra"
				mismatches++
			case want[i] != n:
				mark = fmt.Sprintf("  want %s", theory.NoteName(want[i]))
				mismatches++
			}
		}
		fmt.Fprintf(out, "%5d  %10.2f  %-4s%s\n", i, freq, theory.NoteName(n), mark)
	}
	if missing := len(want) - slots; missing > 0 {
		fmt.Fprintf(out, "%d notes missing\n", missing)
		mismatches += missing
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d notes differ", mismatches, len(want))
	}
	return nil
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}
