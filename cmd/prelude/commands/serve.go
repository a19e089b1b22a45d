package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rwelin/prelude"
	"github.com/rwelin/prelude/api"
	"github.com/rwelin/prelude/internal/config"
)

var (
	serveListen  string
	serveNoAudio bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the HTTP API.

The player endpoints drive the default audio device. With --no-audio the
player still runs in real time but its output is discarded.`,
	Example: `  prelude serve
  prelude serve --listen 127.0.0.1:8080 --no-audio`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoAudio, "no-audio", false, "do not open the audio device")
	rootCmd.AddCommand(serveCmd)
}

// apiCallbacks backs the API with the config file and a live player.
type apiCallbacks struct {
	mu     sync.Mutex
	cfg    *config.Config
	player *prelude.Player
}

func (cb *apiCallbacks) UpdateInstrumentHarmonics(inst int, harm []float64) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if inst < 0 || inst >= len(cb.cfg.Instruments) {
		return fmt.Errorf("no such instrument")
	}
	cb.player.Mix().SetInstrument(inst, harm)
	cb.cfg.Instruments[inst].Harmonics = slices.Clone(harm)

	if err := cb.cfg.Save(); err != nil {
		return err
	}
	logger.Info("instrument updated", "instrument", inst, "harmonics", len(harm))
	return nil
}

func (cb *apiCallbacks) Mix() ([]byte, error) {
	m := cb.player.Mix()
	m.Lock()
	defer m.Unlock()
	return json.Marshal(m)
}

func (cb *apiCallbacks) NewMix() *prelude.Mix {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.cfg.NewMix()
}

func (cb *apiCallbacks) Player() *prelude.Player {
	return cb.player
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := prelude.NewPlayer(cfg.NewMix())
	if serveNoAudio {
		go pace(ctx, player, cfg.SampleRate)
	} else {
		out, err := openSpeaker(cfg.SampleRate, player)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	srv := &http.Server{
		Addr: cfg.Listen,
		Handler: api.NewHandler(&apiCallbacks{cfg: cfg, player: player}, api.Options{
			Key:    cfg.Key,
			Timing: cfg.Timing(),
			Smooth: cfg.Smooth,
			MIDI:   cfg.MIDIOptions(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "audio", !serveNoAudio)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	player.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
