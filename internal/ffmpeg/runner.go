package ffmpeg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ExternalToolError reports a failed FFmpeg invocation together with the
// tool's captured stderr output.
type ExternalToolError struct {
	Err        error
	Diagnostic string
}

func (e *ExternalToolError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("ffmpeg failed: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg failed: %v\n%s", e.Err, e.Diagnostic)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// Runner executes built clip commands one at a time.
type Runner struct {
	verbose bool
}

// NewRunner creates a new invocation runner
func NewRunner(verbose bool) *Runner {
	return &Runner{verbose: verbose}
}

// Run executes the command synchronously and waits for FFmpeg to exit.
// Diagnostic output is captured either way; verbose mode mirrors it to
// the console while it streams.
func (r *Runner) Run(cmd ClipCommand) error {
	var diagnostic bytes.Buffer
	var errOut io.Writer = &diagnostic
	if r.verbose {
		errOut = io.MultiWriter(os.Stderr, &diagnostic)
	}

	err := ffmpeg.Input(cmd.InputPath, cmd.InputKwargs).
		Output(cmd.OutputPath, cmd.OutputKwargs).
		OverWriteOutput().
		WithErrorOutput(errOut).
		Run()
	if err != nil {
		return &ExternalToolError{
			Err:        err,
			Diagnostic: strings.TrimSpace(diagnostic.String()),
		}
	}
	return nil
}
