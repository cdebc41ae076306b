package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/discovery"
	"reel/internal/trackcache"
)

// probedTrack is a descriptor with the outcome of converting it.
type probedTrack struct {
	discovery.Descriptor
	Encoding string `json:"encoding,omitempty"`
	Cues     int    `json:"cues"`
	Error    string `json:"error,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		probe      bool
	)

	cmd := &cobra.Command{
		Use:   "list [video]",
		Short: "List subtitle tracks for a video, or every video in the library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			asJSON := jsonOutput || !isTerminal(cmd.OutOrStdout())

			if len(args) == 0 {
				videos, err := discovery.ScanLibrary(cfg.Paths.LibraryDir)
				if err != nil {
					return err
				}
				if asJSON {
					if videos == nil {
						videos = []discovery.Video{}
					}
					return writeJSON(cmd, videos)
				}
				return printVideos(cmd, cfg.Paths.LibraryDir, videos)
			}

			video := args[0]
			dir := filepath.Dir(video)
			if !strings.ContainsRune(video, filepath.Separator) {
				dir = cfg.Paths.LibraryDir
			}
			descs, err := discovery.Find(dir, video)
			if err != nil {
				return err
			}
			if probe {
				tracks, err := probeTracks(cmd, ctx, descs)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, tracks)
				}
				return printProbedTracks(cmd, filepath.Base(video), tracks)
			}
			if asJSON {
				if descs == nil {
					descs = []discovery.Descriptor{}
				}
				return writeJSON(cmd, descs)
			}
			return printDescriptors(cmd, filepath.Base(video), descs)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON even on a terminal")
	cmd.Flags().BoolVar(&probe, "probe", false, "Convert each track and report its encoding and cue count")
	return cmd
}

func printVideos(cmd *cobra.Command, dir string, videos []discovery.Video) error {
	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintf(out, "No videos found in %s\n", dir)
		return nil
	}
	rows := make([][]string, 0, len(videos))
	for _, video := range videos {
		rows = append(rows, []string{
			video.Title,
			video.Filename,
			strconv.Itoa(len(video.Subtitles)),
			video.Modified.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Title", "File", "Tracks", "Modified"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}

func printDescriptors(cmd *cobra.Command, video string, descs []discovery.Descriptor) error {
	out := cmd.OutOrStdout()
	if len(descs) == 0 {
		fmt.Fprintf(out, "No subtitles found for %s\n", video)
		return nil
	}
	rows := make([][]string, 0, len(descs))
	for _, desc := range descs {
		rows = append(rows, []string{desc.Filename, desc.Format.String(), desc.Language, desc.Label, desc.URL})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Format", "Lang", "Label", "URL"},
		rows,
		nil,
	))
	return nil
}

func probeTracks(cmd *cobra.Command, ctx *commandContext, descs []discovery.Descriptor) ([]probedTrack, error) {
	inner, err := ctx.converter()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.logger()
	if err != nil {
		return nil, err
	}
	converted := discovery.ConvertAll(cmd.Context(), trackcache.NewConverter(inner, nil, logger), descs, logger)
	tracks := make([]probedTrack, 0, len(converted))
	for _, item := range converted {
		track := probedTrack{Descriptor: item.Descriptor}
		if item.Err != nil {
			track.Error = item.Err.Error()
		} else {
			track.Encoding = item.Result.Encoding
			track.Cues = len(item.Result.Entries)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func printProbedTracks(cmd *cobra.Command, video string, tracks []probedTrack) error {
	out := cmd.OutOrStdout()
	if len(tracks) == 0 {
		fmt.Fprintf(out, "No subtitles found for %s\n", video)
		return nil
	}
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		status := track.Encoding
		if track.Error != "" {
			status = "error: " + track.Error
		}
		rows = append(rows, []string{track.Filename, track.Format.String(), track.Language, status, strconv.Itoa(track.Cues)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Format", "Lang", "Encoding", "Cues"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))
	return nil
}
