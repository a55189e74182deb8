// Package common provides shared utilities for ulmake: logging, typed errors,
// configuration and helpers for the fixed-width fields of ul.cfg records.
package common

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global variable to control debug output
var VerboseMode bool = false

var logger = newLogger(os.Stderr)

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// SetLogOutput redirects every log helper to w.
func SetLogOutput(w io.Writer) {
	logger = newLogger(w)
}

// Logger returns the structured logger behind the Log helpers.
func Logger() *zap.Logger {
	return logger.Desugar()
}

func newLogger(w io.Writer) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}

// Error messages
const (
	ErrFailedToOpenImage        = "failed to open disc image"
	ErrFailedToReadDescriptor   = "failed to read volume descriptor"
	ErrFailedToReadSystemCNF    = "failed to read SYSTEM.CNF"
	ErrFailedToLoadCatalog      = "failed to load ul.cfg"
	ErrFailedToSaveCatalog      = "failed to save ul.cfg"
	ErrFailedToCreateFragment   = "failed to create fragment file"
	ErrFailedToCopyFragment     = "failed to copy fragment data"
	ErrFailedToDeleteFragment   = "failed to delete fragment file"
	ErrFailedToListFragments    = "failed to list fragment directory"
	ErrFailedToQueryFreeSpace   = "failed to query free disk space"
	ErrFailedToLoadConfig       = "failed to load configuration"
	ErrFailedToEncodeRecord     = "failed to encode catalog record"
	ErrFailedToDecodeRecord     = "failed to decode catalog record"
	ErrFailedToExportCatalog    = "failed to export catalog listing"
	ErrNameTooLong              = "game name exceeds %d bytes"
	ErrNameEmpty                = "game name must not be empty"
	ErrSerialTooLong            = "serial %q exceeds %d bytes"
	ErrNotEnoughSpace           = "image needs %d bytes but only %d are available"
	ErrTooManyFragments         = "image would need %d fragments, at most %d are supported"
	ErrAlreadySplit             = "game %q does not hold a single unsplit image"
	ErrMalformedFragmentName    = "fragment name %q has %d segments, want %d"
	ErrNoFragmentsFound         = "no fragments matching %s"
	ErrGameNotFound             = "no game named %q"
	ErrDuplicateGame            = "game %q would share fragment files with %q"
	ErrIndexOutOfRange          = "index %d out of range (catalog has %d games)"
	ErrTrailingCatalogBytes     = "catalog has %d trailing bytes that do not form a record"
	ErrNoBootLine               = "boot line %q does not name an executable"
	ErrStringTooLong            = "string of %d bytes does not fit a %d byte field"
	ErrUnsupportedListingFormat = "unsupported listing format %q"
)

// Info messages
const (
	InfoCreatingGame     = "Creating %s from %s"
	InfoCreatingFragment = "Creating chunk %d of %d"
	InfoDeletingGame     = "Deleting %s"
	InfoDeletingFragment = "Deleting chunk %d of %d"
	InfoCatalogSaved     = "Saved %d games to %s"
	InfoCatalogLoaded    = "Loaded %d games from %s"
)

// Debug messages
const (
	DebugSectorLayout     = "Image %s uses %d byte sectors (data offset %d)"
	DebugDirectoryEntry   = "Directory entry %s (LBA: %d, Size: %d, Dir: %t)"
	DebugBootLine         = "SYSTEM.CNF boot line: %q"
	DebugFragmentFound    = "Fragment %s matches %s"
	DebugRecordDecoded    = "Record %d: name=%q serial=%q chunks=%d"
	DebugFragmentCopied   = "Copied %d bytes to %s"
	DebugConfigFileAbsent = "No configuration file at %s, using defaults"
)

// Warning messages
const (
	WarnTrailingBytes   = "Ignoring %d trailing bytes at the end of %s"
	WarnGameNoData      = "Game %q has no fragments on disk"
	WarnGameLostData    = "Game %q expects %d fragments, found %d"
	WarnCleanupFragment = "Could not remove partial fragment %s: %v"
	WarnSkippingEntry   = "Skipping invalid directory entry %q"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		logger.Infof(message, args...)
	} else {
		logger.Info(message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		logger.Warnf(message, args...)
	} else {
		logger.Warn(message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		logger.Errorf(message, args...)
	} else {
		logger.Error(message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		logger.Debugf(message, args...)
	} else {
		logger.Debug(message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}
