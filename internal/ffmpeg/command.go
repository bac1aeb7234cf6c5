package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/anushka157/Yt-Video-Splitter/internal/config"
	"github.com/anushka157/Yt-Video-Splitter/internal/planner"
	"github.com/anushka157/Yt-Video-Splitter/internal/profile"
	"github.com/anushka157/Yt-Video-Splitter/pkg/types"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ClipCommand is one fully specified FFmpeg invocation for a single clip.
// Building a ClipCommand never touches the file system or spawns a
// process, so identical inputs always produce identical commands.
type ClipCommand struct {
	InputPath    string
	InputKwargs  ffmpeg.KwArgs
	OutputPath   string
	OutputKwargs ffmpeg.KwArgs
}

// BuildClipCommand constructs the FFmpeg invocation for one split range.
// The seek is applied on the input side so FFmpeg can use keyframe
// seeking; when no video filter is needed the video stream is copied
// instead of re-encoded.
func BuildClipCommand(r planner.SplitRange, opts *config.SplitterOptions, prof profile.Profile, outputPath string) (ClipCommand, error) {
	settings, err := GetCodecSettings(opts.OutputFormat)
	if err != nil {
		return ClipCommand{}, err
	}

	inputKwargs := ffmpeg.KwArgs{
		"ss": formatSeconds(r.Start),
		"t":  formatSeconds(r.Duration()),
	}

	filters := buildFilters(opts, prof)

	outputKwargs := ffmpeg.KwArgs{
		"c:a": settings.AudioCodec,
		"b:a": settings.AudioBitrate,
	}
	if len(filters) == 0 {
		outputKwargs["c:v"] = "copy"
	} else {
		outputKwargs["vf"] = strings.Join(filters, ",")
		outputKwargs["c:v"] = settings.VideoCodec
		for k, v := range settings.EncoderKwargs {
			outputKwargs[k] = v
		}
	}

	return ClipCommand{
		InputPath:    opts.InputPath,
		InputKwargs:  inputKwargs,
		OutputPath:   EnsureExtension(outputPath, settings.FileExtension),
		OutputKwargs: outputKwargs,
	}, nil
}

func buildFilters(opts *config.SplitterOptions, prof profile.Profile) []string {
	var filters []string

	if prof.Reformats() {
		width, height := prof.GetTargetDimensions()
		switch opts.AspectHandling {
		case types.AspectHandlingCrop:
			filters = append(filters,
				fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", width, height),
				fmt.Sprintf("crop=%d:%d", width, height),
			)
		case types.AspectHandlingStretch:
			filters = append(filters, fmt.Sprintf("scale=%d:%d", width, height))
		default: // pad
			background := opts.Background
			if background == "" {
				background = config.DefaultBackground
			}
			filters = append(filters,
				fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height),
				fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=%s", width, height, background),
			)
		}
	}

	if opts.Watermark.Text != "" {
		filters = append(filters, buildDrawtextFilter(opts.Watermark))
	}

	return filters
}

func buildDrawtextFilter(wm config.WatermarkOptions) string {
	// Escape single quotes so the text survives FFmpeg filter parsing
	escapedText := strings.ReplaceAll(wm.Text, "'", "'\\''")

	size := wm.Size
	if size <= 0 {
		size = config.DefaultTextSize
	}
	color := wm.Color
	if color == "" {
		color = config.DefaultTextColor
	}

	var x, y string
	switch wm.Position {
	case "bottom-right":
		x = "w-tw-20"
		y = "h-th-20"
	case "bottom-left":
		x = "20"
		y = "h-th-20"
	case "top-right":
		x = "w-tw-20"
		y = "20"
	case "top-left":
		x = "20"
		y = "20"
	default: // center
		x = "(w-text_w)/2"
		y = "(h-text_h)/2"
	}

	filter := fmt.Sprintf(
		"drawtext=text='%s':fontsize=%d:fontcolor=%s:x=%s:y=%s",
		escapedText, size, color, x, y,
	)
	if wm.FontFile != "" {
		filter += fmt.Sprintf(":fontfile='%s'", wm.FontFile)
	}
	return filter
}

// formatSeconds renders a seek or duration value the same way every time,
// without float formatting drift.
func formatSeconds(seconds float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", seconds), "0"), ".")
}
