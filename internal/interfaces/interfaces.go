package interfaces

import (
	"context"
	"time"

	"spotify-yt-downloader/internal/shared"
)

// CatalogService defines the interface for the music catalog (Spotify)
type CatalogService interface {
	// Authenticate obtains credentials for subsequent page fetches
	Authenticate(ctx context.Context) error

	// FetchPage returns one page of items for ref. An empty cursor requests the
	// first page; the returned page's Next is the cursor for the following one.
	FetchPage(ctx context.Context, ref shared.CatalogReference, cursor string) (*shared.CatalogPage, error)
}

// MediaService defines the interface for media search and download (YouTube)
type MediaService interface {
	// SearchTop returns the best match for query or shared.ErrNoResults
	SearchTop(ctx context.Context, query string) (*shared.MediaRef, error)

	// FetchAndTranscode downloads ref, converts it to the configured audio
	// format and returns the written file path. outputTemplate uses the
	// %(title)s / %(ext)s placeholders.
	FetchAndTranscode(ctx context.Context, ref *shared.MediaRef, outputTemplate string) (string, error)
}

// TagWriter writes catalog metadata into a finished audio file
type TagWriter interface {
	WriteTags(path string, track shared.Track) error
}

// ProgressReporter reports overall download progress
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

// MetricsRecorder records per-run download metrics
type MetricsRecorder interface {
	ObserveResult(ok bool, elapsed time.Duration)
	SetQueued(n int)
	WriteTextfile(path string) error
}

// LoggerService defines the interface for logging operations
type LoggerService interface {
	// Info logs an informational message
	Info(message string, args ...interface{})

	// Warning logs a warning message
	Warning(message string, args ...interface{})

	// Error logs an error message
	Error(message string, args ...interface{})

	// Debug logs a debug message
	Debug(message string, args ...interface{})

	// Success logs a success message
	Success(message string, args ...interface{})

	// SetDebugMode enables or disables debug logging
	SetDebugMode(enabled bool)
}

// WarningCollectorService defines the interface for warning collection
type WarningCollectorService interface {
	// AddIncompleteTrackWarning records a track missing its title or artist
	AddIncompleteTrackWarning(position int, track shared.Track)

	// AddTagWriteWarning records a file whose tags could not be written
	AddTagWriteWarning(path, details string)

	// HasWarnings returns true if there are any warnings
	HasWarnings() bool

	// PrintSummary prints a formatted summary of all warnings
	PrintSummary()
}
