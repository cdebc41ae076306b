package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		style      bool
		jsonOutput bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a SAMI, SRT, or WebVTT file to WebVTT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, format, err := readSubtitle(args[0])
			if err != nil {
				return err
			}
			conv, err := ctx.converter()
			if err != nil {
				return err
			}
			result, err := conv.Convert(data, format)
			if err != nil {
				return fmt.Errorf("convert %s: %w", filepath.Base(args[0]), err)
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			document := result.Track
			if style {
				document = result.Document()
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), document)
				return err
			}
			if err := os.WriteFile(target, []byte(document), 0o644); err != nil {
				return fmt.Errorf("write track: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues (%s, %s) to %s\n",
				len(result.Entries), result.Format, result.Encoding, target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&style, "style", true, "Include the STYLE block for SAMI font colors")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full conversion result as JSON")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the track to a file instead of stdout")
	return cmd
}
