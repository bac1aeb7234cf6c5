// Package splitter is the public entry point for splitting a video into
// clips. It wires the planner, command builder, runner and optional run
// catalog together; the CLI is a thin shell over this package.
package splitter

import (
	"context"
	"log"
	"time"

	"github.com/anushka157/Yt-Video-Splitter/internal/catalog"
	"github.com/anushka157/Yt-Video-Splitter/internal/config"
	"github.com/anushka157/Yt-Video-Splitter/internal/processor"
	"github.com/anushka157/Yt-Video-Splitter/internal/profile"
)

// Options defines a splitting job.
type Options = config.SplitterOptions

// Watermark defines the optional text overlay.
type Watermark = config.WatermarkOptions

// Result is the outcome of one clip.
type Result = processor.ClipResult

// Split runs the full pipeline: probe, plan, process every clip
// sequentially, and record the run in the catalog when one is
// configured. The returned results contain one entry per planned clip,
// failed clips included.
func Split(opts *Options) ([]Result, error) {
	startedAt := time.Now()

	results, err := processor.NewSplitter(opts).Process()
	if err != nil {
		return nil, err
	}

	if opts.CatalogPath != "" {
		if err := recordRun(opts, results, startedAt); err != nil {
			// History is best effort; the clips themselves are done.
			log.Printf("Warning: failed to record run in catalog: %v", err)
		}
	}

	return results, nil
}

// Tally counts results by status.
func Tally(results []Result) (succeeded, failed, skipped int) {
	return processor.Tally(results)
}

// SupportedProfiles returns the aspect profile names the splitter accepts.
func SupportedProfiles() []string {
	return profile.Supported()
}

// History returns the most recent recorded runs from a catalog database.
func History(catalogPath string, limit int) ([]catalog.Run, error) {
	cat, err := catalog.Open(catalogPath)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	return cat.ListRuns(context.Background(), limit)
}

func recordRun(opts *Options, results []Result, startedAt time.Time) error {
	cat, err := catalog.Open(opts.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	succeeded, failed, skipped := processor.Tally(results)
	run := &catalog.Run{
		SourcePath: opts.InputPath,
		OutputDir:  opts.OutputDir,
		StartedAt:  startedAt,
		Succeeded:  succeeded,
		Failed:     failed,
		Skipped:    skipped,
	}
	for _, r := range results {
		record := catalog.ClipRecord{
			Index:        r.Index,
			StartSeconds: r.Range.Start,
			EndSeconds:   r.Range.End,
			OutputPath:   r.OutputPath,
			Status:       string(r.Status),
		}
		if r.Err != nil {
			record.Error = r.Err.Error()
		}
		run.Clips = append(run.Clips, record)
	}

	return cat.RecordRun(context.Background(), run)
}
