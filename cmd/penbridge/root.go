package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "penbridge",
	Short: "penbridge structures handwriting recognition results into outlines",
	Long: `penbridge takes saved handwriting recognition results (JSON or hOCR)
and structures the flat word list into an indented outline, without
needing the bridge server.

Usage:
  penbridge transcribe <result.json>... [flags]`,
}
