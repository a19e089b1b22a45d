package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rwelin/prelude/device"
)

var (
	serialPort string
	serialBaud int
	serialList bool
)

var serialCmd = &cobra.Command{
	Use:   "serial",
	Short: "Stream a melody to a synthesizer on a serial port",
	Long: `Stream a melody to a synthesizer on a serial port.

One note frame is sent per note at the configured rate; a stop frame is
sent when the melody ends or the command is interrupted.`,
	Example: `  prelude serial --list
  prelude serial --port /dev/ttyACM0 --baud 115200`,
	Args: cobra.NoArgs,
	RunE: runSerial,
}

func init() {
	serialCmd.Flags().StringVarP(&serialPort, "port", "p", "", "serial port (default from config)")
	serialCmd.Flags().IntVarP(&serialBaud, "baud", "b", 0, "baud rate (default from config)")
	serialCmd.Flags().BoolVar(&serialList, "list", false, "list available ports and exit")
	rootCmd.AddCommand(serialCmd)
}

func runSerial(cmd *cobra.Command, args []string) error {
	if serialList {
		ports, err := device.Ports()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serialPort != "" {
		cfg.Serial.Port = serialPort
	}
	if serialBaud > 0 {
		cfg.Serial.Baud = serialBaud
	}
	if cfg.Serial.Port == "" {
		return fmt.Errorf("no serial port, use --port or set serial.port in %s", cfg.Path())
	}
	ex, key, err := melody(cfg)
	if err != nil {
		return err
	}

	port, err := device.Open(cfg.Serial.Port, cfg.Serial.Baud)
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notes := ex.Notes(key)
	logger.Info("streaming", "port", cfg.Serial.Port, "baud", cfg.Serial.Baud, "notes", len(notes))
	err = device.Stream(ctx, port, notes, cfg.Timing().NoteDuration())
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	return err
}
