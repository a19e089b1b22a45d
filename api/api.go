// Package api serves the prelude over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rwelin/prelude"
	"github.com/rwelin/prelude/examples"
	"github.com/rwelin/prelude/midifile"
	"github.com/rwelin/prelude/theory"
)

func Err(w http.ResponseWriter, err error) {
	ErrStatus(w, http.StatusBadRequest, err)
}

func ErrStatus(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
	slog.Warn("api: request failed", "status", status, "error", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("api: encode response", "error", err)
	}
}

// Callbacks connects the API to the running application.
type Callbacks interface {
	// Mix returns the JSON encoding of the live mix settings.
	Mix() ([]byte, error)
	UpdateInstrumentHarmonics(instrument int, harmonics []float64) error
	// NewMix returns a fresh mix for offline rendering.
	NewMix() *prelude.Mix
	Player() *prelude.Player
}

// Options holds the defaults requests fall back to.
type Options struct {
	Key    string
	Timing prelude.Timing
	Smooth float64
	MIDI   midifile.Options
}

type handler struct {
	Callbacks Callbacks
	Options   Options
}

// NoteInfo describes one note of a sequence.
type NoteInfo struct {
	Note      int     `json:"note"`
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
}

func noteInfo(n int) NoteInfo {
	return NoteInfo{Note: n, Name: theory.NoteName(n), Frequency: theory.Frequency(float64(n))}
}

// Melody is the response of GET /prelude.
type Melody struct {
	Key     string     `json:"key"`
	Example string     `json:"example"`
	Notes   []NoteInfo `json:"notes"`
}

// PlayerState is the response of the player endpoints.
type PlayerState struct {
	State prelude.State `json:"state"`
}

// melody resolves the key and example query parameters.
func (h *handler) melody(r *http.Request) (string, *examples.Example, theory.Key, error) {
	q := r.URL.Query()
	keyName := q.Get("key")
	if keyName == "" {
		keyName = h.Options.Key
	}
	key, err := theory.KeyByName(keyName)
	if err != nil {
		return "", nil, key, err
	}
	name := q.Get("example")
	if name == "" {
		name = "prelude"
	}
	ex := examples.ByName(name)
	if ex == nil {
		return "", nil, key, fmt.Errorf("no such example %q", name)
	}
	return keyName, ex, key, nil
}

func (h *handler) handlePreludeGet(w http.ResponseWriter, r *http.Request) {
	keyName, ex, key, err := h.melody(r)
	if err != nil {
		Err(w, err)
		return
	}
	notes := ex.Notes(key)
	m := Melody{Key: keyName, Example: ex.Name, Notes: make([]NoteInfo, len(notes))}
	for i, n := range notes {
		m.Notes[i] = noteInfo(n)
	}
	writeJSON(w, m)
}

func (h *handler) handleWAVGet(w http.ResponseWriter, r *http.Request) {
	_, ex, key, err := h.melody(r)
	if err != nil {
		Err(w, err)
		return
	}
	m := h.Callbacks.NewMix()
	w.Header().Set("Content-Type", "audio/wav")
	if _, err := prelude.RenderWAV(w, m, ex.Sequence(key, h.Options.Timing), h.Options.Smooth); err != nil {
		slog.Error("api: render wav", "error", err)
	}
}

func (h *handler) handleMIDIGet(w http.ResponseWriter, r *http.Request) {
	_, ex, key, err := h.melody(r)
	if err != nil {
		Err(w, err)
		return
	}
	var buf bytes.Buffer
	if _, err := midifile.Write(&buf, ex.Notes(key), h.Options.MIDI); err != nil {
		Err(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	buf.WriteTo(w)
}

func (h *handler) handleFrequencyGet(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil {
		Err(w, err)
		return
	}
	writeJSON(w, noteInfo(n))
}

func (h *handler) handleInstrumentPut(w http.ResponseWriter, r *http.Request) {
	var voice []float64
	err := json.NewDecoder(r.Body).Decode(&voice)
	if err != nil {
		Err(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	i, err := strconv.Atoi(id)
	if err != nil {
		Err(w, err)
		return
	}

	if err := h.Callbacks.UpdateInstrumentHarmonics(i, voice); err != nil {
		Err(w, err)
	}
}

func (h *handler) handleMixGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.Callbacks.Mix()
	if err != nil {
		ErrStatus(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(d)
}

func (h *handler) handlePlayerGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, PlayerState{State: h.Callbacks.Player().State()})
}

func (h *handler) handlePlayerToggle(w http.ResponseWriter, r *http.Request) {
	_, ex, key, err := h.melody(r)
	if err != nil {
		Err(w, err)
		return
	}
	state := h.Callbacks.Player().Toggle(ex.Sequence(key, h.Options.Timing))
	writeJSON(w, PlayerState{State: state})
}

func (h *handler) handlePlayerStop(w http.ResponseWriter, r *http.Request) {
	p := h.Callbacks.Player()
	p.Stop()
	writeJSON(w, PlayerState{State: p.State()})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func NewHandler(cb Callbacks, opts Options) http.Handler {
	h := &handler{
		Callbacks: cb,
		Options:   opts,
	}

	sr := mux.NewRouter()
	sr.HandleFunc("/prelude", h.handlePreludeGet).Methods(http.MethodGet)
	sr.HandleFunc("/prelude.wav", h.handleWAVGet).Methods(http.MethodGet)
	sr.HandleFunc("/prelude.mid", h.handleMIDIGet).Methods(http.MethodGet)
	sr.HandleFunc("/frequency/{n:-?[0-9]+}", h.handleFrequencyGet).Methods(http.MethodGet)
	sr.HandleFunc("/instruments/{id}", h.handleInstrumentPut).Methods(http.MethodPut)
	sr.HandleFunc("/mix", h.handleMixGet).Methods(http.MethodGet)
	sr.HandleFunc("/player", h.handlePlayerGet).Methods(http.MethodGet)
	sr.HandleFunc("/player/toggle", h.handlePlayerToggle).Methods(http.MethodPost)
	sr.HandleFunc("/player/stop", h.handlePlayerStop).Methods(http.MethodPost)
	sr.HandleFunc("/stream", h.handleStream).Methods(http.MethodGet)

	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.PathPrefix("/").Handler(sr)
	return r
}
