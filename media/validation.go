package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	photoExtensions = []string{".jpg", ".jpeg", ".heic"}
	videoExtensions = []string{".mov", ".mp4"}

	// bookkeeping entries written by file managers, never part of a scan
	bookkeepingNames = []string{".DS_Store", "Thumbs.db", "desktop.ini"}
)

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range exts {
		if v == ext {
			return true
		}
	}
	return false
}

// IsPhotoFile checks if the path has one of the accepted photo extensions
func IsPhotoFile(path string) bool {
	return hasExtension(path, photoExtensions)
}

// IsVideoFile checks if the path has one of the accepted video extensions
func IsVideoFile(path string) bool {
	return hasExtension(path, videoExtensions)
}

// IsBookkeepingEntry reports whether a directory entry name is filesystem clutter
func IsBookkeepingEntry(name string) bool {
	for _, b := range bookkeepingNames {
		if strings.Contains(name, b) {
			return true
		}
	}
	return false
}

// ValidateDirectory checks that dir exists and is a directory
func ValidateDirectory(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: path doesn't exist: %s", ErrInputNotFound, dir)
		}
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	return nil
}

// ValidateMedia checks that both files of a pair exist and carry accepted
// extensions. Only extensions are checked; content is not inspected.
func ValidateMedia(photoPath, videoPath string) error {
	if !exists(photoPath) {
		return fmt.Errorf("%w: photo does not exist: %s", ErrInputNotFound, photoPath)
	}
	if !exists(videoPath) {
		return fmt.Errorf("%w: video does not exist: %s", ErrInputNotFound, videoPath)
	}
	if !IsPhotoFile(photoPath) {
		return fmt.Errorf("%w: photo isn't a JPEG or HEIC: %s", ErrUnsupportedExtension, photoPath)
	}
	if !IsVideoFile(videoPath) {
		return fmt.Errorf("%w: video isn't a MOV or MP4: %s", ErrUnsupportedExtension, videoPath)
	}
	return nil
}

// IsValidPair runs ValidateMedia and logs the reason a pair is rejected.
// A content sniff is logged as a warning when the photo's extension lies.
func IsValidPair(logger *log.Logger, pair MediaPair) bool {
	if err := ValidateMedia(pair.PhotoPath, pair.VideoPath); err != nil {
		logger.Error("Skipping pair", "err", err)
		return false
	}

	if format, err := DetectFormat(pair.PhotoPath); err == nil && !format.MatchesExtension(pair.PhotoPath) {
		logger.Warn("Photo content does not match its extension", "photo", pair.PhotoPath, "detected", format)
	}
	return true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
