package processor

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anushka157/Yt-Video-Splitter/internal/config"
	"github.com/anushka157/Yt-Video-Splitter/internal/ffmpeg"
	"github.com/anushka157/Yt-Video-Splitter/internal/planner"
	"github.com/anushka157/Yt-Video-Splitter/pkg/types"
)

// InvalidInputError reports a source file that is missing or unreadable.
type InvalidInputError struct {
	Path string
	Err  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input file %s: %v", e.Path, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// OutputWriteError reports a failure preparing the output location.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("cannot write output at %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// ClipResult is the outcome of one planned clip.
type ClipResult struct {
	Index      int
	Range      planner.SplitRange
	OutputPath string
	Status     types.ClipStatus
	Err        error
}

// Tally counts results by status.
func Tally(results []ClipResult) (succeeded, failed, skipped int) {
	for _, r := range results {
		switch r.Status {
		case types.ClipStatusSuccess:
			succeeded++
		case types.ClipStatusFailed:
			failed++
		case types.ClipStatusSkipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}

// clipRunner executes one built FFmpeg command.
type clipRunner interface {
	Run(cmd ffmpeg.ClipCommand) error
}

// Splitter handles video splitting operations
type Splitter struct {
	opts   *config.SplitterOptions
	runner clipRunner
	probe  func(inputPath string) (*ffmpeg.VideoMetadata, error)
}

// NewSplitter creates a new video splitter
func NewSplitter(opts *config.SplitterOptions) *Splitter {
	return &Splitter{
		opts:   opts,
		runner: ffmpeg.NewRunner(opts.Verbose),
		probe:  ffmpeg.GetVideoMetadata,
	}
}

// Helper functions
func parseSkipDuration(skip string) (float64, error) {
	if skip == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(skip)
	if err != nil {
		return 0, fmt.Errorf("invalid skip duration format: %v", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("skip duration must not be negative: %s", skip)
	}

	return duration.Seconds(), nil
}

func sanitizeFilename(filename string) string {
	sanitized := filename

	reg := regexp.MustCompile(`[^a-zA-Z0-9-_.]`)
	sanitized = reg.ReplaceAllString(sanitized, "_")

	reg = regexp.MustCompile(`_+`)
	sanitized = reg.ReplaceAllString(sanitized, "_")

	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		sanitized = "clip"
	}
	return sanitized
}
