package main

import (
	"fmt"
	"strconv"

	"github.com/saintfish/chardet"
	"github.com/spf13/cobra"

	"reel/internal/subtitles"
)

type inspectReport struct {
	File       string                 `json:"file"`
	Format     subtitles.Format       `json:"format"`
	Encoding   string                 `json:"encoding"`
	Score      int                    `json:"score"`
	BOM        bool                   `json:"bom"`
	Fallback   bool                   `json:"fallback"`
	Candidates []inspectCandidate     `json:"candidates,omitempty"`
	Guess      *chardetGuess          `json:"chardet,omitempty"`
	Colors     []subtitles.ColorClass `json:"colors,omitempty"`
	Cues       int                    `json:"cues"`
	Dropped    int                    `json:"dropped_blocks"`
}

type inspectCandidate struct {
	Encoding string `json:"encoding"`
	Score    int    `json:"score"`
	Error    string `json:"error,omitempty"`
}

type chardetGuess struct {
	Charset    string `json:"charset"`
	Language   string `json:"language,omitempty"`
	Confidence int    `json:"confidence"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show how a subtitle file's encoding was detected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, format, err := readSubtitle(args[0])
			if err != nil {
				return err
			}

			detection := subtitles.NewDetector(cfg.Subtitles.CandidateEncodings...).Detect(data, format)
			report := inspectReport{
				File:     args[0],
				Format:   format,
				Encoding: detection.Encoding,
				Score:    detection.Score,
				BOM:      detection.BOM,
				Fallback: detection.Fallback,
			}
			for _, candidate := range detection.Candidates {
				entry := inspectCandidate{Encoding: candidate.Encoding, Score: candidate.Score}
				if candidate.Err != nil {
					entry.Error = candidate.Err.Error()
				}
				report.Candidates = append(report.Candidates, entry)
			}
			if best, err := chardet.NewTextDetector().DetectBest(data); err == nil {
				report.Guess = &chardetGuess{Charset: best.Charset, Language: best.Language, Confidence: best.Confidence}
			}

			conv, err := ctx.converter()
			if err != nil {
				return err
			}
			if result, err := conv.Convert(data, format); err == nil {
				report.Colors = result.Colors
				report.Cues = len(result.Entries)
				report.Dropped = result.DroppedBlocks
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			printInspectReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func printInspectReport(cmd *cobra.Command, report inspectReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:     %s\n", report.File)
	fmt.Fprintf(out, "Format:   %s\n", report.Format)
	fmt.Fprintf(out, "Encoding: %s (score %d, bom %s, fallback %s)\n",
		report.Encoding, report.Score, yesNo(report.BOM), yesNo(report.Fallback))
	if report.Guess != nil {
		fmt.Fprintf(out, "chardet:  %s %s (confidence %d)\n",
			report.Guess.Charset, report.Guess.Language, report.Guess.Confidence)
	}
	if report.Format == subtitles.FormatSAMI {
		fmt.Fprintf(out, "Cues:     %d (%d sync blocks dropped)\n", report.Cues, report.Dropped)
		fmt.Fprintf(out, "Colors:   %d\n", len(report.Colors))
	}
	if len(report.Candidates) == 0 {
		return
	}

	rows := make([][]string, 0, len(report.Candidates))
	for _, candidate := range report.Candidates {
		marker := ""
		if candidate.Encoding == report.Encoding && !report.Fallback {
			marker = "*"
		}
		rows = append(rows, []string{marker, candidate.Encoding, strconv.Itoa(candidate.Score), candidate.Error})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"", "Candidate", "Score", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}
