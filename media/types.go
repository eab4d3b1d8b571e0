package media

// MediaPair is a photo and the same-stem video that will be muxed into it.
type MediaPair struct {
	PhotoPath string
	VideoPath string
}

// ScanResult contains everything found in a single directory scan
type ScanResult struct {
	Pairs     []MediaPair
	Leftovers []string
	// Skipped holds subdirectories, which are never copied
	Skipped []string
}

// MergeResult holds the outcome of muxing a single pair
type MergeResult struct {
	Pair       MediaPair
	OutputPath string
	// Offset is the length of the trailing video segment, counted back from EOF
	Offset     int64
	OutputSize int64
	// Renamed is set when the output was moved from .heic to .jpg
	Renamed     bool
	MetadataErr error
	Error       error
}
