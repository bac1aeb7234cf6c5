package processor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/anushka157/Yt-Video-Splitter/internal/config"
	ffmpegWrap "github.com/anushka157/Yt-Video-Splitter/internal/ffmpeg"
	"github.com/anushka157/Yt-Video-Splitter/internal/planner"
	"github.com/anushka157/Yt-Video-Splitter/pkg/types"
)

type fakeRunner struct {
	commands []ffmpegWrap.ClipCommand
	failOn   map[int]bool // 1-based invocation index
}

func (f *fakeRunner) Run(cmd ffmpegWrap.ClipCommand) error {
	f.commands = append(f.commands, cmd)
	if f.failOn[len(f.commands)] {
		return &ffmpegWrap.ExternalToolError{
			Err:        errors.New("exit status 1"),
			Diagnostic: "simulated encoder failure",
		}
	}
	return nil
}

func fakeProbe(duration float64) func(string) (*ffmpegWrap.VideoMetadata, error) {
	return func(string) (*ffmpegWrap.VideoMetadata, error) {
		return &ffmpegWrap.VideoMetadata{Duration: duration, Width: 1920, Height: 1080, Codec: "h264"}, nil
	}
}

func newTestSplitter(t *testing.T, opts *config.SplitterOptions, duration float64) (*Splitter, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{failOn: make(map[int]bool)}
	if opts.InputPath == "" {
		opts.InputPath = writeSourceFile(t, "source video.mp4")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	return &Splitter{opts: opts, runner: runner, probe: fakeProbe(duration)}, runner
}

func writeSourceFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not really a video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcess_MissingInput(t *testing.T) {
	opts := &config.SplitterOptions{InputPath: "/nonexistent/input.mp4", OutputDir: t.TempDir()}
	s := &Splitter{opts: opts, runner: &fakeRunner{}, probe: fakeProbe(100)}

	_, err := s.Process()
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Errorf("error = %T, want *InvalidInputError", err)
	}
}

func TestProcess_EqualCount(t *testing.T) {
	opts := &config.SplitterOptions{ChunkCount: 4}
	s, runner := newTestSplitter(t, opts, 100)

	results, err := s.Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}

	succeeded, failed, skipped := Tally(results)
	if succeeded != 4 || failed != 0 || skipped != 0 {
		t.Errorf("tally = %d/%d/%d, want 4/0/0", succeeded, failed, skipped)
	}

	wantStarts := []string{"0", "25", "50", "75"}
	for i, cmd := range runner.commands {
		if got := cmd.InputKwargs["ss"]; got != wantStarts[i] {
			t.Errorf("clip %d ss = %v, want %v", i+1, got, wantStarts[i])
		}
	}

	// Clips land in a per-source subfolder with indexed names
	wantName := fmt.Sprintf("source_video_clip_%03d.mp4", 1)
	if got := filepath.Base(results[0].OutputPath); got != wantName {
		t.Errorf("first clip name = %s, want %s", got, wantName)
	}
	if dir := filepath.Base(filepath.Dir(results[0].OutputPath)); dir != "source_video" {
		t.Errorf("clip subfolder = %s, want source_video", dir)
	}
}

func TestProcess_FailedClipDoesNotAbortRun(t *testing.T) {
	opts := &config.SplitterOptions{ChunkCount: 4}
	s, runner := newTestSplitter(t, opts, 100)
	runner.failOn[2] = true

	results, err := s.Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}

	succeeded, failed, _ := Tally(results)
	if succeeded != 3 || failed != 1 {
		t.Errorf("tally = %d succeeded / %d failed, want 3/1", succeeded, failed)
	}

	if results[1].Status != types.ClipStatusFailed {
		t.Errorf("clip 2 status = %s, want failed", results[1].Status)
	}
	var toolErr *ffmpegWrap.ExternalToolError
	if !errors.As(results[1].Err, &toolErr) {
		t.Fatalf("clip 2 error = %T, want *ExternalToolError", results[1].Err)
	}
	if toolErr.Diagnostic != "simulated encoder failure" {
		t.Errorf("diagnostic = %q", toolErr.Diagnostic)
	}
	if len(runner.commands) != 4 {
		t.Errorf("runner saw %d commands, want 4", len(runner.commands))
	}
}

func TestProcess_CollisionSkip(t *testing.T) {
	opts := &config.SplitterOptions{
		ChunkCount:  2,
		OnCollision: types.CollisionSkip,
		OutputDir:   t.TempDir(),
	}
	s, runner := newTestSplitter(t, opts, 100)

	// Pre-create the first clip's output file
	existing := filepath.Join(opts.OutputDir, "source_video", "source_video_clip_001.mp4")
	if err := os.MkdirAll(filepath.Dir(existing), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte("old clip"), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := s.Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if results[0].Status != types.ClipStatusSkipped {
		t.Errorf("clip 1 status = %s, want skipped", results[0].Status)
	}
	if results[1].Status != types.ClipStatusSuccess {
		t.Errorf("clip 2 status = %s, want success", results[1].Status)
	}
	if len(runner.commands) != 1 {
		t.Errorf("runner saw %d commands, want 1 (skipped clip must not run)", len(runner.commands))
	}
}

func TestProcess_ExplicitTimestamps(t *testing.T) {
	opts := &config.SplitterOptions{SplitTimes: []string{"10", "40", "90"}}
	s, _ := newTestSplitter(t, opts, 100)

	results, err := s.Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	want := []planner.SplitRange{{Start: 0, End: 10}, {Start: 10, End: 40}, {Start: 40, End: 90}, {Start: 90, End: 100}}
	for i, r := range results {
		if r.Range != want[i] {
			t.Errorf("clip %d range = %+v, want %+v", i+1, r.Range, want[i])
		}
	}
}

func TestProcess_BadTimestampsFailBeforeAnyRun(t *testing.T) {
	opts := &config.SplitterOptions{SplitTimes: []string{"90", "10"}}
	s, runner := newTestSplitter(t, opts, 100)

	_, err := s.Process()
	if err == nil {
		t.Fatal("expected error for descending timestamps")
	}
	var tsErr *planner.InvalidTimestampError
	if !errors.As(err, &tsErr) {
		t.Errorf("error = %T, want *InvalidTimestampError", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("runner saw %d commands, want 0", len(runner.commands))
	}
}

func TestProcess_SkipOffsetsPlanning(t *testing.T) {
	opts := &config.SplitterOptions{ChunkCount: 2, Skip: "20s"}
	s, runner := newTestSplitter(t, opts, 100)

	results, err := s.Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if got := runner.commands[0].InputKwargs["ss"]; got != "20" {
		t.Errorf("first clip ss = %v, want 20", got)
	}
	if results[1].Range.End != 100 {
		t.Errorf("last range end = %v, want 100", results[1].Range.End)
	}
}

func TestProcess_SkipExceedsDuration(t *testing.T) {
	opts := &config.SplitterOptions{ChunkCount: 2, Skip: "3m"}
	s, _ := newTestSplitter(t, opts, 100)

	if _, err := s.Process(); err == nil {
		t.Fatal("expected error when skip exceeds duration")
	}
}

func TestProcess_UnwritableOutputDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks do not apply")
	}

	readOnly := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(readOnly, 0555); err != nil {
		t.Fatal(err)
	}

	opts := &config.SplitterOptions{ChunkCount: 2, OutputDir: filepath.Join(readOnly, "clips")}
	s, _ := newTestSplitter(t, opts, 100)

	_, err := s.Process()
	if err == nil {
		t.Fatal("expected error for unwritable output dir")
	}
	var writeErr *OutputWriteError
	if !errors.As(err, &writeErr) {
		t.Errorf("error = %T, want *OutputWriteError", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"source video", "source_video"},
		{"a  b!!c", "a_b_c"},
		{"___", "clip"},
		{"clean-name_01", "clean-name_01"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSkipDuration(t *testing.T) {
	got, err := parseSkipDuration("1m30s")
	if err != nil {
		t.Fatalf("parseSkipDuration() error = %v", err)
	}
	if got != 90 {
		t.Errorf("parseSkipDuration(1m30s) = %v, want 90", got)
	}

	if _, err := parseSkipDuration("abc"); err == nil {
		t.Error("expected error for malformed duration")
	}
	if _, err := parseSkipDuration("-10s"); err == nil {
		t.Error("expected error for negative duration")
	}
	if got, err := parseSkipDuration(""); err != nil || got != 0 {
		t.Errorf("parseSkipDuration(\"\") = %v, %v; want 0, nil", got, err)
	}
}
