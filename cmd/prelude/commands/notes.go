package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rwelin/prelude/theory"
)

var (
	notesFormat string
	notesOutput string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the generated note sequence",
	Long: `Print the notes of a melody as semitone offsets from C4.

Formats:
  text     space separated offsets (default)
  json     {key, example, notes}
  yaml     same document as YAML
  msgpack  same document as MessagePack
  table    one row per note with name and frequency`,
	Args: cobra.NoArgs,
	RunE: runNotes,
}

func init() {
	notesCmd.Flags().StringVarP(&notesFormat, "format", "f", "text", "output format: text, json, yaml, msgpack or table")
	notesCmd.Flags().StringVarP(&notesOutput, "output", "o", "-", "output file")
	rootCmd.AddCommand(notesCmd)
}

// noteDoc is the structured form of a note listing.
type noteDoc struct {
	Key     string `json:"key" yaml:"key" msgpack:"key"`
	Example string `json:"example" yaml:"example" msgpack:"example"`
	Notes   []int  `json:"notes" yaml:"notes" msgpack:"notes"`
}

func runNotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ex, key, err := melody(cfg)
	if err != nil {
		return err
	}
	doc := noteDoc{Key: cfg.Key, Example: ex.Name, Notes: ex.Notes(key)}

	out, err := createOutput(cmd, notesOutput)
	if err != nil {
		return err
	}
	if err := writeNotes(out, notesFormat, doc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeNotes(w io.Writer, format string, doc noteDoc) error {
	switch format {
	case "text":
		s := make([]string, len(doc.Notes))
		for i, n := range doc.Notes {
			s[i] = strconv.Itoa(n)
		}
		_, err := fmt.Fprintln(w, strings.Join(s, " "))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		b, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(doc)
	case "table":
		return writeTable(w, doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

func writeTable(w io.Writer, doc noteDoc) error {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s in %s, %d notes", doc.Example, doc.Key, len(doc.Notes))))
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%5s  %5s  %-4s  %10s", "#", "note", "name", "Hz")))
	for i, n := range doc.Notes {
		idx := dimStyle.Render(fmt.Sprintf("%5d", i))
		if _, err := fmt.Fprintf(w, "%s  %5d  %-4s  %10.2f\n", idx, n, theory.NoteName(n), theory.Frequency(float64(n))); err != nil {
			return err
		}
	}
	return nil
}
