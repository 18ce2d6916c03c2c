package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/outline"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/structure"
)

var (
	flagFormat string
	flagOut    string
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <result.json>...",
	Short: "Structure saved recognition results into an outline",
	Long: `Transcribe reads one or more saved recognition results (JSON from the
recognition service, or hOCR with .html/.hocr extension) and structures
each into an indented outline.

Examples:
  penbridge transcribe page1.json
  penbridge transcribe page1.json page2.json --format json --out ./notes
  penbridge transcribe scan.hocr --format pdf --out ./notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().StringVar(&flagFormat, "format", "markdown", "Output format: markdown, json, or pdf")
	transcribeCmd.Flags().StringVar(&flagOut, "out", "", "Output directory (default: stdout, required for pdf)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	switch flagFormat {
	case "markdown", "json", "pdf":
	default:
		return fmt.Errorf("unknown format %q: use markdown, json, or pdf", flagFormat)
	}
	if flagFormat == "pdf" && flagOut == "" {
		return fmt.Errorf("--out is required with --format pdf")
	}
	if flagOut != "" {
		if err := os.MkdirAll(flagOut, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, path := range args {
		if err := transcribeFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func transcribeFile(path string) error {
	res, err := readResult(path)
	if err != nil {
		return err
	}

	doc := structure.Build(*res, structure.DefaultConfig())

	data, ext, err := renderDoc(doc, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return err
	}

	if flagOut == "" {
		os.Stdout.Write(data)
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(flagOut, base+ext)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", outPath)
	return nil
}

func readResult(path string) (*recognition.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".hocr", ".xml":
		return recognition.ParseHOCR(f)
	default:
		var res recognition.Result
		if err := json.NewDecoder(f).Decode(&res); err != nil {
			return nil, fmt.Errorf("decoding recognition result: %w", err)
		}
		return &res, nil
	}
}

func renderDoc(doc *structure.Document, title string) ([]byte, string, error) {
	switch flagFormat {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return append(data, '\n'), ".json", nil
	case "pdf":
		data, err := outline.PDF(doc, title)
		if err != nil {
			return nil, "", fmt.Errorf("rendering pdf: %w", err)
		}
		return data, ".pdf", nil
	default:
		return []byte(outline.Markdown(doc)), ".md", nil
	}
}
