// Package exiftool writes Motion Photo XMP tags by shelling out to exiftool.
package exiftool

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lepinkainen/motionmux/media"
)

const (
	// DefaultBinary is looked up in PATH when no explicit tool is configured
	DefaultBinary = "exiftool"

	// PresentationTimestampMicros places the still frame 1.5s into the clip,
	// which is where Live Photos take it from. It is not derived from the video.
	PresentationTimestampMicros = 1500000

	// jpegDiagnostic is what exiftool prints for a .heic file with JPEG content
	jpegDiagnostic = "looks more like a JPEG"
)

// Result holds the captured outcome of one exiftool invocation
type Result struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Output returns stdout and stderr together
func (r *Result) Output() string {
	return r.Stdout + r.Stderr
}

// Failed reports whether the tool could not run or exited non-zero
func (r *Result) Failed() bool {
	return r.Err != nil
}

// ToolError describes a failed exiftool run. It matches media.ErrExternalTool.
type ToolError struct {
	Path     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("exiftool failed on %s (exit %d): %v", e.Path, e.ExitCode, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ToolError) Unwrap() []error {
	return []error{media.ErrExternalTool, e.Err}
}

// BuildArgs returns the exiftool arguments that tag file in place
func BuildArgs(file string, offset int64) []string {
	return []string{
		"-overwrite_original",
		"-xmp:MicroVideo=1",
		"-xmp:MicroVideoVersion=1",
		fmt.Sprintf("-xmp:MicroVideoOffset=%d", offset),
		fmt.Sprintf("-xmp:MicroVideoPresentationTimestampUs=%d", PresentationTimestampMicros),
		file,
	}
}

// Writer implements media.MetadataWriter on top of the exiftool binary
type Writer struct {
	Binary string
	Logger *log.Logger
}

// New returns a Writer running binary, or DefaultBinary when binary is empty
func New(binary string, logger *log.Logger) *Writer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Writer{Binary: binary, Logger: logger}
}

// Run invokes exiftool once against file and waits for it to finish
func (w *Writer) Run(file string, offset int64) *Result {
	args := BuildArgs(file, offset)
	w.Logger.Info("Running > " + w.Binary + " " + strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(w.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Args:     args,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
		Err:      err,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
	}
	return result
}

// TagFile writes the Motion Photo tags into path. When exiftool reports that
// a .heic file is really a JPEG, the file is renamed to .jpg and tagged once
// more; there is no further retry.
func (w *Writer) TagFile(path string, offset int64) (string, error) {
	result := w.Run(path, offset)

	if NeedsJPEGRename(path, result) {
		newPath := media.JPEGSiblingPath(path)
		w.Logger.Warn(fmt.Sprintf("Renaming %s to %s", path, newPath))
		if err := os.Rename(path, newPath); err != nil {
			return path, fmt.Errorf("failed to rename %s: %w", path, err)
		}
		path = newPath
		result = w.Run(path, offset)
	}

	w.Logger.Info("stderr: " + strings.TrimSpace(result.Stderr))
	w.Logger.Info("stdout: " + strings.TrimSpace(result.Stdout))

	if result.Failed() {
		return path, &ToolError{
			Path:     path,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      result.Err,
		}
	}
	return path, nil
}

// NeedsJPEGRename decides whether a .heic file tagged by result should become
// a .jpg. The exiftool diagnostic is authoritative; when the tool failed
// without printing it, the file signature is sniffed instead.
func NeedsJPEGRename(path string, result *Result) bool {
	if !media.IsHEICPath(path) {
		return false
	}
	if strings.Contains(result.Output(), jpegDiagnostic) {
		return true
	}
	if !result.Failed() {
		return false
	}
	format, err := media.DetectFormat(path)
	return err == nil && format == media.FormatJPEG
}
