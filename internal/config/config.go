package config

import "github.com/anushka157/Yt-Video-Splitter/pkg/types"

// WatermarkOptions describes the drawtext overlay applied to each clip.
// A zero Text disables the watermark entirely.
type WatermarkOptions struct {
	Text     string
	FontFile string
	Size     int
	Color    string
	Position string
}

// SplitterOptions defines a fully resolved splitting job. It is built once
// from CLI flags and treated as read-only afterwards.
type SplitterOptions struct {
	InputPath string
	OutputDir string

	// Split mode: SplitTimes wins when non-empty, then ChunkCount when
	// positive, otherwise fixed-length chunks of ChunkDuration seconds.
	ChunkCount    int
	ChunkDuration float64
	SplitTimes    []string

	// MinRemainder is the shortest trailing chunk (seconds) emitted on its
	// own in fixed-length mode; anything shorter merges into the previous
	// chunk.
	MinRemainder float64

	Aspect         types.AspectMode
	AspectHandling types.AspectHandling
	Background     string

	Watermark WatermarkOptions

	OutputFormat string // "mp4" or "webm"
	Skip         string // leading duration to skip, e.g. "10s", "1m"
	OnCollision  types.CollisionPolicy

	CatalogPath string
	Verbose     bool
}

const (
	// Defaults for fixed-length splitting
	DefaultChunkDuration = 60.0
	DefaultMinRemainder  = 1.0

	// Default output location when none is given
	DefaultOutputDir = "output"

	// Watermark defaults
	DefaultTextSize     = 48
	DefaultTextColor    = "white"
	DefaultTextPosition = "center"

	// Padding background
	DefaultBackground = "black"
)
