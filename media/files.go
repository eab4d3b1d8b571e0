package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fi, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to get file size: %w", err)
	}
	return fi.Size(), nil
}

// CopyPhoto copies the photo into outDir under its original base name,
// creating outDir if needed. An existing output is truncated.
func CopyPhoto(photoPath, outDir string) (string, error) {
	outPath := filepath.Join(outDir, filepath.Base(photoPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := copyContents(photoPath, outPath); err != nil {
		return "", fmt.Errorf("failed to copy photo: %w", err)
	}
	return outPath, nil
}

// CopyFilePreserving copies src to dst, keeping permission bits and the
// modification time of src
func CopyFilePreserving(src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := copyContents(src, dst); err != nil {
		return err
	}
	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}

// AppendVideo appends the raw bytes of videoPath to the end of mergedPath and
// returns the number of bytes written. progress, if not nil, receives a copy
// of every chunk.
func AppendVideo(mergedPath, videoPath string, progress io.Writer) (int64, error) {
	out, err := os.OpenFile(mergedPath, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open merged file for append: %w", err)
	}

	video, err := os.Open(videoPath)
	if err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("failed to open video: %w", err)
	}
	defer func() { _ = video.Close() }()

	var w io.Writer = out
	if progress != nil {
		w = io.MultiWriter(out, progress)
	}

	n, err := io.Copy(w, video)
	if err != nil {
		_ = out.Close()
		return n, fmt.Errorf("failed to append video: %w", err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("failed to close merged file: %w", err)
	}
	return n, nil
}

func copyContents(src, dst string) error {
	if sameFile(src, dst) {
		return fmt.Errorf("%s and %s are the same file", src, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}
