package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lepinkainen/motionmux/exiftool"
	"github.com/lepinkainen/motionmux/media"
	"github.com/lepinkainen/motionmux/types"
	"github.com/lepinkainen/motionmux/ui"
	"github.com/lepinkainen/motionmux/utils"
	"github.com/schollz/progressbar/v3"
)

// MuxCmd merges photos and their companion videos into Motion Photos, either
// for a whole directory or for a single photo/video pair.
type MuxCmd struct {
	Verbose  bool   `short:"v" help:"Show logging messages."`
	Dir      string `help:"Process a directory for photos/videos. Takes precedence over --photo/--video." placeholder:"PATH"`
	Recurse  bool   `help:"Recursively process a directory. Only applies if --dir is also provided."`
	Photo    string `help:"Path to the JPEG photo to add." placeholder:"PATH"`
	Video    string `help:"Path to the MOV video to add." placeholder:"PATH"`
	Output   string `short:"o" help:"Path to where files should be written out to." placeholder:"PATH"`
	Exiftool string `help:"exiftool binary name or path." default:"exiftool" env:"MOTIONMUX_EXIFTOOL"`
	Progress bool   `help:"Show progress bars."`

	AbortOnMetadataFailure bool `name:"abort-on-metadata-failure" help:"Discard the output when writing metadata fails instead of appending the video anyway." env:"MOTIONMUX_ABORT_ON_METADATA_FAILURE"`

	// writer overrides the exiftool-backed metadata writer
	writer media.MetadataWriter `kong:"-"`
}

// muxStats tracks outcomes across a run
type muxStats struct {
	Merged          int
	Failed          int
	MetadataFailed  int
	Renamed         int
	LeftoversCopied int
}

// ValidateMode checks the flag combination before anything touches the disk
func (cmd *MuxCmd) ValidateMode() error {
	if cmd.Dir != "" {
		if cmd.Recurse {
			return fmt.Errorf("%w: recursive traversal", media.ErrUnimplementedFeature)
		}
		return nil
	}
	if cmd.Photo == "" && cmd.Video == "" {
		return fmt.Errorf("%w: either --dir or --photo and --video are required", media.ErrMissingPairArgument)
	}
	if cmd.Photo == "" || cmd.Video == "" {
		return media.ErrMissingPairArgument
	}
	return nil
}

// OutputDir resolves the output directory, defaulting to a sibling of the input
func (cmd *MuxCmd) OutputDir() string {
	if cmd.Output != "" {
		return cmd.Output
	}
	if cmd.Dir != "" {
		return filepath.Clean(cmd.Dir) + "-output"
	}
	return filepath.Dir(cmd.Photo) + "-output"
}

func (cmd *MuxCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	var logger *log.Logger
	if appCtx != nil {
		version = appCtx.Version
		logger = appCtx.Logger
	}
	if logger == nil {
		logger = ui.NewLogger(os.Stderr, cmd.Verbose)
	}
	logger.Info("Enabled verbose logging", "version", version)

	if err := cmd.ValidateMode(); err != nil {
		return err
	}

	if cmd.Dir != "" {
		if err := media.ValidateDirectory(cmd.Dir); err != nil {
			return err
		}
	}

	outDir := cmd.OutputDir()
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stats := &muxStats{}
	var err error
	if cmd.Dir != "" {
		err = cmd.runDirectory(logger, outDir, stats)
	} else {
		err = cmd.runSinglePair(logger, outDir, stats)
	}
	if err != nil {
		return err
	}

	cmd.printSummary(stats, outDir)
	return nil
}

// runDirectory processes every pair found in cmd.Dir, one at a time
func (cmd *MuxCmd) runDirectory(logger *log.Logger, outDir string, stats *muxStats) error {
	result, err := media.ProcessDirectory(logger, cmd.Dir, cmd.Recurse, outDir)
	if err != nil {
		return err
	}
	stats.LeftoversCopied = len(result.Leftovers)

	if len(result.Pairs) == 0 {
		return nil
	}

	merger, err := cmd.newMerger(logger)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if cmd.Progress {
		bar = progressbar.NewOptions(len(result.Pairs),
			progressbar.OptionSetDescription("Merging"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, pair := range result.Pairs {
		if media.IsValidPair(logger, pair) {
			cmd.handleResult(logger, merger.Convert(pair, outDir), stats)
		} else {
			stats.Failed++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

// runSinglePair processes the pair given by --photo and --video
func (cmd *MuxCmd) runSinglePair(logger *log.Logger, outDir string, stats *muxStats) error {
	pair := media.MediaPair{PhotoPath: cmd.Photo, VideoPath: cmd.Video}
	if !media.IsValidPair(logger, pair) {
		stats.Failed++
		return nil
	}

	merger, err := cmd.newMerger(logger)
	if err != nil {
		return err
	}
	if cmd.Progress {
		merger.NewProgress = func(name string, total int64) media.ProgressTracker {
			return media.NewProgressBar(os.Stderr, name, total)
		}
	}

	cmd.handleResult(logger, merger.Convert(pair, outDir), stats)
	return nil
}

func (cmd *MuxCmd) newMerger(logger *log.Logger) (*media.Merger, error) {
	writer := cmd.writer
	if writer == nil {
		if err := utils.ValidateExiftoolDependency(cmd.Exiftool); err != nil {
			return nil, err
		}
		writer = exiftool.New(cmd.Exiftool, logger)
	}

	return &media.Merger{
		Writer:                 writer,
		Logger:                 logger,
		AbortOnMetadataFailure: cmd.AbortOnMetadataFailure,
	}, nil
}

// handleResult logs a merge result and updates statistics
func (cmd *MuxCmd) handleResult(logger *log.Logger, result *media.MergeResult, stats *muxStats) {
	if result.MetadataErr != nil {
		stats.MetadataFailed++
	}
	if result.Renamed {
		stats.Renamed++
	}
	if result.Error != nil {
		logger.Error("Failed to merge pair", "photo", result.Pair.PhotoPath, "err", result.Error)
		stats.Failed++
		return
	}

	logger.Info("Merged", "output", result.OutputPath, "offset", result.Offset, "size", result.OutputSize)
	stats.Merged++
}

// printSummary displays final statistics
func (cmd *MuxCmd) printSummary(stats *muxStats, outDir string) {
	fmt.Printf("%s\n", ui.HeaderStyle.Render("Motion Photo Summary"))
	fmt.Printf("   Output: %s\n", outDir)
	fmt.Printf("   %s\n", ui.SuccessStyle.Render(fmt.Sprintf("Merged: %d pairs", stats.Merged)))
	if stats.Failed > 0 {
		fmt.Printf("   %s\n", ui.ErrorStyle.Render(fmt.Sprintf("Failed: %d pairs", stats.Failed)))
	}
	if stats.MetadataFailed > 0 {
		fmt.Printf("   %s\n", ui.WarnStyle.Render(fmt.Sprintf("Metadata write failed: %d files", stats.MetadataFailed)))
	}
	if stats.Renamed > 0 {
		fmt.Printf("   Renamed HEIC to JPG: %d files\n", stats.Renamed)
	}
	if cmd.Dir != "" {
		fmt.Printf("   Leftovers copied: %d files\n", stats.LeftoversCopied)
	}
}
