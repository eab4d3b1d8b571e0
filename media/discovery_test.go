package media

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// caseInsensitiveFS reports whether dir lives on a filesystem that ignores case
func caseInsensitiveFS(t *testing.T, dir string) bool {
	t.Helper()
	probe := filepath.Join(dir, "CaseProbe")
	writeTestFile(t, probe, nil)
	defer os.Remove(probe)
	_, err := os.Stat(strings.ToLower(probe))
	return err == nil
}

func TestMatchingVideo(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		photo    string
		expected string
	}{
		{"MOV preferred over MP4", []string{"a.jpg", "a.mov", "a.mp4"}, "a.jpg", "a.mov"},
		{"MP4 when no MOV", []string{"a.jpg", "a.mp4"}, "a.jpg", "a.mp4"},
		{"Lowercase MP4 before uppercase MOV", []string{"a.jpg", "a.mp4", "a.MOV"}, "a.jpg", "a.mp4"},
		{"Uppercase MOV", []string{"IMG.HEIC", "IMG.MOV"}, "IMG.HEIC", "IMG.MOV"},
		{"Uppercase MP4", []string{"IMG.JPG", "IMG.MP4"}, "IMG.JPG", "IMG.MP4"},
		{"No video", []string{"a.jpg", "b.mov"}, "a.jpg", ""},
		{"Stem with dots", []string{"trip.day1.jpg", "trip.day1.mov"}, "trip.day1.jpg", "trip.day1.mov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if caseInsensitiveFS(t, dir) {
				t.Skip("filesystem is case-insensitive, lookup order is not observable")
			}
			for _, f := range tt.files {
				writeTestFile(t, filepath.Join(dir, f), []byte("x"))
			}

			expected := ""
			if tt.expected != "" {
				expected = filepath.Join(dir, tt.expected)
			}
			if result := MatchingVideo(filepath.Join(dir, tt.photo)); result != expected {
				t.Errorf("MatchingVideo() = %q, expected %q", result, expected)
			}
		})
	}
}

func TestMatchingVideo_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("x"))
	if err := os.Mkdir(filepath.Join(dir, "a.mov"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if result := MatchingVideo(filepath.Join(dir, "a.jpg")); result != "" {
		t.Errorf("Expected no match for a directory named like a video, got %q", result)
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.jpg", "a.mov", "b.jpg", "c.mp4", "notes.txt", ".DS_Store"} {
		writeTestFile(t, filepath.Join(dir, f), []byte(f))
	}
	if err := os.Mkdir(filepath.Join(dir, "album"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	result, err := ScanDirectory(dir, false)
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}

	expectedPairs := []MediaPair{{
		PhotoPath: filepath.Join(dir, "a.jpg"),
		VideoPath: filepath.Join(dir, "a.mov"),
	}}
	if !reflect.DeepEqual(result.Pairs, expectedPairs) {
		t.Errorf("Pairs = %v, expected %v", result.Pairs, expectedPairs)
	}

	expectedLeftovers := []string{
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "c.mp4"),
		filepath.Join(dir, "notes.txt"),
	}
	if !reflect.DeepEqual(result.Leftovers, expectedLeftovers) {
		t.Errorf("Leftovers = %v, expected %v", result.Leftovers, expectedLeftovers)
	}

	if len(result.Skipped) != 1 || filepath.Base(result.Skipped[0]) != "album" {
		t.Errorf("Expected subdirectory to be skipped, got %v", result.Skipped)
	}
}

func TestScanDirectory_PreservesListingOrder(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"c.jpg", "c.mov", "a.jpg", "a.mp4", "b.heic", "b.mov"} {
		writeTestFile(t, filepath.Join(dir, f), []byte(f))
	}

	result, err := ScanDirectory(dir, false)
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}

	var photos []string
	for _, pair := range result.Pairs {
		photos = append(photos, filepath.Base(pair.PhotoPath))
	}
	expected := []string{"a.jpg", "b.heic", "c.jpg"}
	if !reflect.DeepEqual(photos, expected) {
		t.Errorf("Pair order = %v, expected %v", photos, expected)
	}
	if len(result.Leftovers) != 0 {
		t.Errorf("Expected no leftovers, got %v", result.Leftovers)
	}
}

func TestScanDirectory_Recurse(t *testing.T) {
	_, err := ScanDirectory(t.TempDir(), true)
	if !errors.Is(err, ErrUnimplementedFeature) {
		t.Errorf("Expected ErrUnimplementedFeature, got %v", err)
	}
}

func TestScanDirectory_NonExistentDirectory(t *testing.T) {
	if _, err := ScanDirectory(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("Expected error for non-existent directory")
	}
}

func TestProcessDirectory_CopiesLeftovers(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	for _, f := range []string{"a.jpg", "a.mov", "b.jpg", "c.mp4", "notes.txt"} {
		writeTestFile(t, filepath.Join(dir, f), []byte("content of "+f))
	}

	result, err := ProcessDirectory(log.New(io.Discard), dir, false, outDir)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}
	if len(result.Pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(result.Pairs))
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	expected := []string{"b.jpg", "c.mp4", "notes.txt"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Output directory = %v, expected %v", names, expected)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "notes.txt"))
	if err != nil {
		t.Fatalf("Failed to read copied leftover: %v", err)
	}
	if string(data) != "content of notes.txt" {
		t.Errorf("Leftover content changed: %q", data)
	}
}

func TestCopyFilePreserving(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeTestFile(t, src, []byte("hello"))

	mtime := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatalf("Failed to set times: %v", err)
	}

	if err := CopyFilePreserving(src, dst); err != nil {
		t.Fatalf("CopyFilePreserving() error = %v", err)
	}

	fi, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("Failed to stat copy: %v", err)
	}
	if !fi.ModTime().Equal(mtime) {
		t.Errorf("Expected modification time %v, got %v", mtime, fi.ModTime())
	}
	if fi.Size() != 5 {
		t.Errorf("Expected size 5, got %d", fi.Size())
	}
}
