package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is the container format of a file as identified by its magic bytes
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatHEIC
	FormatQuickTime
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatHEIC:
		return "heic"
	case FormatQuickTime:
		return "quicktime"
	case FormatMP4:
		return "mp4"
	default:
		return "unknown"
	}
}

// MatchesExtension reports whether path's extension is one this format is
// normally stored under. Unknown formats never contradict an extension.
func (f Format) MatchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch f {
	case FormatJPEG:
		return ext == ".jpg" || ext == ".jpeg"
	case FormatHEIC:
		return ext == ".heic"
	case FormatQuickTime, FormatMP4:
		// phones write both brands under either extension
		return ext == ".mov" || ext == ".mp4"
	default:
		return true
	}
}

// DetectFormat sniffs the file signature of path
func DetectFormat(path string) (Format, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to detect file signature: %w", err)
	}

	for m := mtype; m != nil; m = m.Parent() {
		switch m.String() {
		case "image/jpeg":
			return FormatJPEG, nil
		case "image/heic", "image/heic-sequence", "image/heif", "image/heif-sequence":
			return FormatHEIC, nil
		case "video/quicktime":
			return FormatQuickTime, nil
		case "video/mp4":
			return FormatMP4, nil
		}
	}
	return FormatUnknown, nil
}

// IsHEICPath checks for a .heic extension in any case
func IsHEICPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".heic")
}

// JPEGSiblingPath returns path with a .heic extension swapped for .jpg,
// keeping the case of the original: .HEIC becomes .JPG, .heic becomes .jpg.
// Mixed-case extensions follow the lowercase form.
func JPEGSiblingPath(path string) string {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".heic") {
		return path
	}
	stem := strings.TrimSuffix(path, ext)
	if ext == ".HEIC" {
		return stem + ".JPG"
	}
	return stem + ".jpg"
}
