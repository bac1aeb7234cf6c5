package processor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anushka157/Yt-Video-Splitter/internal/config"
	ffmpegWrap "github.com/anushka157/Yt-Video-Splitter/internal/ffmpeg"
	"github.com/anushka157/Yt-Video-Splitter/internal/planner"
	"github.com/anushka157/Yt-Video-Splitter/internal/profile"
	"github.com/anushka157/Yt-Video-Splitter/pkg/types"
	"github.com/pkg/errors"
)

// Process plans the split, runs one FFmpeg invocation per clip and
// collects per-clip results. A failed clip does not stop the run;
// remaining clips are still processed and the failure is carried in its
// ClipResult.
func (s *Splitter) Process() ([]ClipResult, error) {
	info, err := os.Stat(s.opts.InputPath)
	if err != nil {
		return nil, &InvalidInputError{Path: s.opts.InputPath, Err: err}
	}
	if info.IsDir() {
		return nil, &InvalidInputError{Path: s.opts.InputPath, Err: fmt.Errorf("is a directory")}
	}

	outputFormat := strings.ToLower(s.opts.OutputFormat)
	if outputFormat == "" {
		outputFormat = "mp4"
	}
	if _, err := ffmpegWrap.GetCodecSettings(outputFormat); err != nil {
		return nil, errors.WithStack(err)
	}
	s.opts.OutputFormat = outputFormat

	aspect := s.opts.Aspect
	if aspect == "" {
		aspect = types.AspectModeOriginal
	}
	prof, err := profile.Get(string(aspect))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	metadata, err := s.probe(s.opts.InputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get video metadata")
	}

	if s.opts.Verbose {
		log.Printf("Video metadata: Duration=%.2fs, Resolution=%dx%d, Codec=%s\n",
			metadata.Duration, metadata.Width, metadata.Height, metadata.Codec)
		log.Printf("Output format: %s, aspect profile: %s\n", outputFormat, prof.GetName())
	}

	skipSeconds, err := parseSkipDuration(s.opts.Skip)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if skipSeconds >= metadata.Duration {
		return nil, fmt.Errorf("skip duration exceeds video duration")
	}

	ranges, err := s.plan(skipSeconds, metadata.Duration)
	if err != nil {
		return nil, err
	}

	outputDir, err := s.ensureOutputDir()
	if err != nil {
		return nil, err
	}

	baseFileName := filepath.Base(s.opts.InputPath)
	baseFileName = strings.TrimSuffix(baseFileName, filepath.Ext(baseFileName))
	baseFileName = sanitizeFilename(baseFileName)

	results := make([]ClipResult, 0, len(ranges))
	for i, r := range ranges {
		outputFileName := fmt.Sprintf("%s_clip_%03d", baseFileName, i+1)
		outputPath := filepath.Join(outputDir, outputFileName)

		cmd, err := ffmpegWrap.BuildClipCommand(r, s.opts, prof, outputPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build command for clip %d", i+1)
		}

		result := ClipResult{
			Index:      i + 1,
			Range:      r,
			OutputPath: cmd.OutputPath,
		}

		if s.opts.OnCollision == types.CollisionSkip {
			if _, err := os.Stat(cmd.OutputPath); err == nil {
				if s.opts.Verbose {
					log.Printf("Skipping clip %d/%d: %s already exists\n", i+1, len(ranges), cmd.OutputPath)
				}
				result.Status = types.ClipStatusSkipped
				results = append(results, result)
				continue
			}
		}

		if s.opts.Verbose {
			log.Printf("Processing clip %d/%d (%.2fs - %.2fs): %s\n",
				i+1, len(ranges), r.Start, r.End, cmd.OutputPath)
		}

		if err := s.runner.Run(cmd); err != nil {
			log.Printf("Clip %d failed: %v\n", i+1, err)
			result.Status = types.ClipStatusFailed
			result.Err = err
			results = append(results, result)
			continue
		}

		result.Status = types.ClipStatusSuccess
		results = append(results, result)
	}

	return results, nil
}

func (s *Splitter) plan(start, end float64) ([]planner.SplitRange, error) {
	switch {
	case len(s.opts.SplitTimes) > 0:
		return planner.PlanExplicit(start, end, s.opts.SplitTimes)
	case s.opts.ChunkCount > 0:
		return planner.PlanEqualCount(start, end, s.opts.ChunkCount)
	default:
		length := s.opts.ChunkDuration
		if length <= 0 {
			length = config.DefaultChunkDuration
		}
		minRemainder := s.opts.MinRemainder
		if minRemainder <= 0 {
			minRemainder = config.DefaultMinRemainder
		}
		return planner.PlanFixedLength(start, end, length, minRemainder)
	}
}

// ensureOutputDir creates <output-dir>/<sanitized-input-basename> and
// returns it. Clips of one source always land in their own subfolder.
func (s *Splitter) ensureOutputDir() (string, error) {
	outputDir := s.opts.OutputDir
	if outputDir == "" {
		outputDir = config.DefaultOutputDir
	}

	base := filepath.Base(s.opts.InputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	outputDir = filepath.Join(outputDir, sanitizeFilename(base))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", &OutputWriteError{Path: outputDir, Err: err}
	}
	return outputDir, nil
}
