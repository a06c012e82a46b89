package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"player-list/web/core"
)

type lister interface {
	ListTasks(ctx context.Context) ([]core.Task, error)
}

type Exporter struct{ src lister }

func NewExporter(src lister) *Exporter { return &Exporter{src: src} }

var formats = map[string]bool{"json": true, "csv": true, "pdf": true}

// Export renders the current list as json, csv or pdf.
func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if !formats[format] {
		return nil, fmt.Errorf("unknown format %s", format)
	}

	all, err := e.src.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	switch format {
	case "json":
		return json.MarshalIndent(all, "", "  ")
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "player", "completed", "created_at"})
		for _, t := range all {
			_ = w.Write([]string{t.ID, t.Task, strconv.FormatBool(t.Completed), formatTime(t.CreatedAt)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.SetCompression(false)
		// core fonts are cp1252
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "My Players List")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		if len(all) == 0 {
			pdf.Cell(40, 6, "No players.")
		}
		for _, t := range all {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s  (%s)", mark, t.Task, t.ID)
			pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %s", format)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func newExportCmd(opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the player list",
		Long:  `Export the player list as json, csv or pdf. Writes to stdout unless --out is given.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			data, err := NewExporter(c).Export(cmdContext(cmd), format)
			if err != nil {
				return fmt.Errorf("export players: %w", err)
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %s to %s\n", strings.ToLower(format), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, csv, pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
