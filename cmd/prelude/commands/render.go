package commands

import (
	"github.com/spf13/cobra"

	"github.com/rwelin/prelude"
)

var (
	renderOutput string
	renderSmooth float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a melody to a WAVE file",
	Example: `  prelude render -o prelude.wav
  prelude render -k mode5 --smooth 4000 -o - > prelude.wav`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "prelude.wav", "output file, - for stdout")
	renderCmd.Flags().Float64Var(&renderSmooth, "smooth", 0, "low-pass cutoff in Hz (default from config, 0 disables)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("smooth") {
		cfg.Smooth = renderSmooth
	}
	ex, key, err := melody(cfg)
	if err != nil {
		return err
	}

	out, err := createOutput(cmd, renderOutput)
	if err != nil {
		return err
	}
	n, err := prelude.RenderWAV(out, cfg.NewMix(), ex.Sequence(key, cfg.Timing()), cfg.Smooth)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("rendered", "example", ex.Name, "key", cfg.Key, "bytes", n, "output", renderOutput)
	return nil
}
