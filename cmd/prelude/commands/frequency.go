package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rwelin/prelude/theory"
)

var frequencyCmd = &cobra.Command{
	Use:   "frequency <note>...",
	Short: "Print the frequency of semitone offsets from C4",
	Example: `  prelude frequency 0 9 -- -12`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid note %q: %w", a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f Hz\n", n, theory.NoteName(n), theory.Frequency(float64(n)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(frequencyCmd)
}
