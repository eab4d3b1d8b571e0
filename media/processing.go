package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// MetadataWriter writes the Motion Photo XMP fields into the file at path,
// in place. It returns the final path of the file, which differs from path
// when the writer had to rename it. On failure the returned path is still the
// best known location of the file.
type MetadataWriter interface {
	TagFile(path string, offset int64) (string, error)
}

// Merger muxes photo/video pairs into Motion Photos. Merging is single-shot:
// every call rebuilds the output from the source photo.
type Merger struct {
	Writer MetadataWriter
	Logger *log.Logger

	// AbortOnMetadataFailure discards the output instead of appending the
	// video to a file whose metadata write failed
	AbortOnMetadataFailure bool

	// NewProgress, when set, is called once per pair to track the video append
	NewProgress func(name string, total int64) ProgressTracker
}

// Convert copies the photo to outDir, tags it with the video offset and
// appends the video bytes
func (m *Merger) Convert(pair MediaPair, outDir string) *MergeResult {
	result := &MergeResult{Pair: pair}
	m.Logger.Info(fmt.Sprintf("Merging %s and %s.", pair.PhotoPath, pair.VideoPath))

	merged, err := CopyPhoto(pair.PhotoPath, outDir)
	if err != nil {
		result.Error = err
		return result
	}

	// the offset counts back from EOF, so it is exactly the video length
	offset, err := GetFileSize(pair.VideoPath)
	if err != nil {
		result.Error = err
		return result
	}
	result.Offset = offset

	finalPath, err := m.Writer.TagFile(merged, offset)
	if finalPath == "" {
		finalPath = merged
	}
	result.OutputPath = finalPath
	result.Renamed = finalPath != merged

	if err != nil {
		result.MetadataErr = err
		m.Logger.Error("Metadata write failed", "file", finalPath, "err", err)
		if m.AbortOnMetadataFailure {
			_ = os.Remove(finalPath)
			result.Error = fmt.Errorf("output discarded: %w", err)
			return result
		}
	}

	var tracker ProgressTracker
	if m.NewProgress != nil {
		tracker = m.NewProgress(filepath.Base(finalPath), offset)
	}

	written, err := AppendVideo(finalPath, pair.VideoPath, tracker)
	if tracker != nil {
		tracker.Done()
	}
	if err != nil {
		result.Error = err
		return result
	}
	if written != offset {
		result.Error = fmt.Errorf("video %s changed during merge: expected %d bytes, appended %d", pair.VideoPath, offset, written)
		return result
	}

	size, err := GetFileSize(finalPath)
	if err != nil {
		result.Error = err
		return result
	}
	result.OutputSize = size
	return result
}
