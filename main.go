package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anushka157/Yt-Video-Splitter/pkg/splitter"
	"github.com/anushka157/Yt-Video-Splitter/pkg/types"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "yt-video-splitter",
		Short: "Split videos into clips with FFmpeg",
		Long: `yt-video-splitter splits a source video into clips by driving FFmpeg.
Clips can be reformatted for vertical or horizontal viewing and stamped
with a text watermark; the encoding itself is delegated to FFmpeg.

Examples:
  # Split into 60-second clips (the default)
  yt-video-splitter split -i input.mp4 -o ./output

  # Four equal clips, reformatted for portrait viewing
  yt-video-splitter split -i input.mp4 --chunks 4 --aspect portrait

  # Explicit boundaries with a centered watermark
  yt-video-splitter split -i input.mp4 --split-times 10,1:30,40:00 --text '@mychannel'`,
	}

	splitCmd = &cobra.Command{
		Use:   "split",
		Short: "Split a video into clips",
		Long: fmt.Sprintf(`Split a video file into clips with optional reformatting and watermark.

Supported aspect profiles:
%s
Example:
  yt-video-splitter split -i input.mp4 -o ./output --chunks 4 --aspect portrait`,
			formatSupportedProfiles()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &splitter.Options{}

			// Get flags
			inputPath, _ := cmd.Flags().GetString("input")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			chunks, _ := cmd.Flags().GetInt("chunks")
			duration, _ := cmd.Flags().GetFloat64("duration")
			splitTimes, _ := cmd.Flags().GetStringSlice("split-times")
			minRemainder, _ := cmd.Flags().GetFloat64("min-remainder")
			aspect, _ := cmd.Flags().GetString("aspect")
			aspectHandling, _ := cmd.Flags().GetString("aspect-handling")
			background, _ := cmd.Flags().GetString("background")
			text, _ := cmd.Flags().GetString("text")
			textSize, _ := cmd.Flags().GetInt("text-size")
			textColor, _ := cmd.Flags().GetString("text-color")
			textPosition, _ := cmd.Flags().GetString("text-position")
			font, _ := cmd.Flags().GetString("font")
			outputFormat, _ := cmd.Flags().GetString("output-format")
			skip, _ := cmd.Flags().GetString("skip")
			onCollision, _ := cmd.Flags().GetString("on-collision")
			catalogPath, _ := cmd.Flags().GetString("catalog")
			verbose, _ := cmd.Flags().GetBool("verbose")

			// Set options
			opts.InputPath = inputPath
			opts.OutputDir = outputDir
			opts.ChunkCount = chunks
			opts.ChunkDuration = duration
			opts.SplitTimes = splitTimes
			opts.MinRemainder = minRemainder
			opts.Aspect = types.AspectMode(aspect)
			opts.AspectHandling = types.AspectHandling(aspectHandling)
			opts.Background = background
			opts.Watermark = splitter.Watermark{
				Text:     text,
				Size:     textSize,
				Color:    textColor,
				Position: textPosition,
				FontFile: font,
			}
			opts.OutputFormat = outputFormat
			opts.Skip = skip
			opts.OnCollision = types.CollisionPolicy(onCollision)
			opts.CatalogPath = catalogPath
			opts.Verbose = verbose

			if opts.InputPath == "" {
				return fmt.Errorf("input path is required")
			}

			cmd.SilenceUsage = true

			results, err := splitter.Split(opts)
			if err != nil {
				return err
			}

			for _, r := range results {
				switch r.Status {
				case types.ClipStatusFailed:
					fmt.Printf("clip %d (%.2fs-%.2fs): FAILED: %v\n", r.Index, r.Range.Start, r.Range.End, r.Err)
				case types.ClipStatusSkipped:
					fmt.Printf("clip %d (%.2fs-%.2fs): skipped, %s exists\n", r.Index, r.Range.Start, r.Range.End, r.OutputPath)
				default:
					fmt.Printf("clip %d (%.2fs-%.2fs): %s\n", r.Index, r.Range.Start, r.Range.End, r.OutputPath)
				}
			}

			succeeded, failed, skipped := splitter.Tally(results)
			fmt.Printf("%d succeeded, %d failed, %d skipped\n", succeeded, failed, skipped)
			if failed > 0 {
				return fmt.Errorf("%d of %d clips failed", failed, len(results))
			}
			return nil
		},
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List recorded splitting runs",
		Long: `List runs recorded in the catalog database.

Runs are recorded when the split command is given --catalog.

Example:
  yt-video-splitter history --catalog runs.db --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			limit, _ := cmd.Flags().GetInt("limit")

			if catalogPath == "" {
				return fmt.Errorf("catalog path is required")
			}

			cmd.SilenceUsage = true

			runs, err := splitter.History(catalogPath, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("#%d  %s  %s -> %s  (%d ok / %d failed / %d skipped)\n",
					run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.SourcePath, run.OutputDir,
					run.Succeeded, run.Failed, run.Skipped)
				for _, clip := range run.Clips {
					line := fmt.Sprintf("    clip %d [%.2fs-%.2fs] %s %s",
						clip.Index, clip.StartSeconds, clip.EndSeconds, clip.Status, clip.OutputPath)
					if clip.Error != "" {
						line += fmt.Sprintf(" (%s)", firstLine(clip.Error))
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}
)

func formatSupportedProfiles() string {
	var sb strings.Builder
	for _, name := range splitter.SupportedProfiles() {
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	// Split command flags
	splitCmd.Flags().StringP("input", "i", "", "Input video file")
	splitCmd.Flags().StringP("output-dir", "o", "output", "Output directory")
	splitCmd.Flags().IntP("chunks", "n", 0, "Split into this many equal clips")
	splitCmd.Flags().Float64P("duration", "d", 60, "Duration of each clip in seconds (ignored with --chunks or --split-times)")
	splitCmd.Flags().StringSlice("split-times", nil, "Explicit split boundaries (seconds, MM:SS or HH:MM:SS)")
	splitCmd.Flags().Float64("min-remainder", 1, "Shortest trailing clip in seconds; smaller remainders merge into the previous clip")
	splitCmd.Flags().StringP("aspect", "a", "original",
		fmt.Sprintf("Target aspect profile (%s)", strings.Join(splitter.SupportedProfiles(), ", ")))
	splitCmd.Flags().String("aspect-handling", "pad", "How to fit the frame (pad, crop, stretch)")
	splitCmd.Flags().String("background", "black", "Padding background color")
	splitCmd.Flags().String("text", "", "Watermark text")
	splitCmd.Flags().Int("text-size", 48, "Watermark font size")
	splitCmd.Flags().String("text-color", "white", "Watermark text color")
	splitCmd.Flags().String("text-position", "center", "Watermark position (center, bottom-right, bottom-left, top-right, top-left)")
	splitCmd.Flags().String("font", "", "Path to a font file for the watermark")
	splitCmd.Flags().StringP("output-format", "f", "mp4", "Output format (mp4 or webm)")
	splitCmd.Flags().StringP("skip", "s", "", "Duration to skip from start (e.g., '10s', '1m')")
	splitCmd.Flags().String("on-collision", "overwrite", "Policy for existing output files (overwrite or skip)")
	splitCmd.Flags().String("catalog", "", "Record the run in this SQLite catalog")
	splitCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	splitCmd.MarkFlagRequired("input")

	// History command flags
	historyCmd.Flags().String("catalog", "", "SQLite catalog written by split --catalog")
	historyCmd.Flags().Int("limit", 10, "Maximum number of runs to list")

	historyCmd.MarkFlagRequired("catalog")

	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
