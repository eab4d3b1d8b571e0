package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// videoSuffixes is the lookup order for a photo's companion video
var videoSuffixes = []string{".mov", ".mp4", ".MOV", ".MP4"}

// MatchingVideo returns the first existing video sharing photoPath's stem,
// or "" when there is none
func MatchingVideo(photoPath string) string {
	stem := strings.TrimSuffix(photoPath, filepath.Ext(photoPath))
	for _, suffix := range videoSuffixes {
		candidate := stem + suffix
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
	}
	return ""
}

// ScanDirectory lists the immediate children of dir and splits them into
// photo/video pairs and leftovers. Pairs keep directory listing order.
func ScanDirectory(dir string, recurse bool) (*ScanResult, error) {
	if recurse {
		return nil, fmt.Errorf("%w: recursive traversal", ErrUnimplementedFeature)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	result := &ScanResult{}
	var candidates []string

	for _, entry := range entries {
		name := entry.Name()
		if IsBookkeepingEntry(name) {
			continue
		}
		fullPath := filepath.Join(dir, name)

		if entry.IsDir() {
			result.Skipped = append(result.Skipped, fullPath)
			continue
		}

		if IsPhotoFile(name) {
			if video := MatchingVideo(fullPath); video != "" {
				result.Pairs = append(result.Pairs, MediaPair{PhotoPath: fullPath, VideoPath: video})
				continue
			}
		}
		candidates = append(candidates, fullPath)
	}

	// MatchingVideo may return a differently cased name than the listing on
	// case-insensitive filesystems, so compare lowercased
	pairedVideos := make(map[string]bool, len(result.Pairs))
	for _, pair := range result.Pairs {
		pairedVideos[strings.ToLower(pair.VideoPath)] = true
	}
	for _, candidate := range candidates {
		if !pairedVideos[strings.ToLower(candidate)] {
			result.Leftovers = append(result.Leftovers, candidate)
		}
	}

	return result, nil
}

// ProcessDirectory scans dir and copies the leftovers to outDir. The pairs in
// the result are left for the caller to merge.
func ProcessDirectory(logger *log.Logger, dir string, recurse bool, outDir string) (*ScanResult, error) {
	logger.Info("Processing dir", "dir", dir)

	result, err := ScanDirectory(dir, recurse)
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Found %d pairs, %d left over.", len(result.Pairs), len(result.Leftovers)))
	for _, skipped := range result.Skipped {
		logger.Info("Skipping subdirectory", "path", skipped)
	}

	if err := CopyLeftovers(logger, result.Leftovers, outDir); err != nil {
		return nil, err
	}

	for _, pair := range result.Pairs {
		logger.Info("Pair", "photo", pair.PhotoPath, "video", pair.VideoPath)
	}
	return result, nil
}

// CopyLeftovers copies every leftover verbatim into outDir
func CopyLeftovers(logger *log.Logger, leftovers []string, outDir string) error {
	for _, leftover := range leftovers {
		dst := filepath.Join(outDir, filepath.Base(leftover))
		logger.Info("Copying leftover", "src", leftover, "dst", dst)
		if err := CopyFilePreserving(leftover, dst); err != nil {
			return fmt.Errorf("failed to copy leftover %s: %w", leftover, err)
		}
	}
	return nil
}
