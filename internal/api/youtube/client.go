package youtube

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"spotify-yt-downloader/internal/shared"
)

const (
	// TitlePlaceholder and ExtPlaceholder are the yt-dlp output template fields
	// used to name downloaded files.
	TitlePlaceholder = "%(title)s"
	ExtPlaceholder   = "%(ext)s"

	searchPrefix = "ytsearch1:"
)

// Client searches YouTube and downloads audio through yt-dlp.
type Client struct {
	AudioFormat  string
	AudioQuality string
}

// NewClient creates a client that transcodes to the given format and quality.
func NewClient(audioFormat, audioQuality string) *Client {
	return &Client{AudioFormat: audioFormat, AudioQuality: audioQuality}
}

// Install makes sure a yt-dlp binary is available, downloading one if needed.
func Install(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return resolved.Executable, nil
}

// SearchTop returns the first search result for query.
func (c *Client) SearchTop(ctx context.Context, query string) (*shared.MediaRef, error) {
	dl := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		PrintJSON().
		Quiet().
		NoWarnings()

	result, err := dl.Run(ctx, searchPrefix+query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse search result: %w", err)
	}
	for _, info := range infos {
		url := deref(info.WebpageURL)
		if url == "" {
			continue
		}
		return &shared.MediaRef{Title: deref(info.Title), URL: url}, nil
	}
	return nil, fmt.Errorf("%w for %q", shared.ErrNoResults, query)
}

// FetchAndTranscode downloads ref's best audio stream and converts it to the
// configured format. It returns the path of the converted file.
func (c *Client) FetchAndTranscode(ctx context.Context, ref *shared.MediaRef, outputTemplate string) (string, error) {
	if ref == nil || ref.URL == "" {
		return "", fmt.Errorf("%w: empty media reference", shared.ErrNoResults)
	}

	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(c.AudioFormat).
		AudioQuality(c.AudioQuality).
		NoPlaylist().
		Output(outputTemplate).
		PrintJSON().
		Quiet().
		NoWarnings()

	result, err := dl.Run(ctx, ref.URL)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	infos, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("failed to parse download result: %w", err)
	}
	for _, info := range infos {
		if name := deref(info.Filename); name != "" {
			return AudioPath(name, c.AudioFormat), nil
		}
	}
	return RenderTemplate(outputTemplate, ref.Title, c.AudioFormat), nil
}

// OutputTemplate returns the yt-dlp output template for files in dir.
func OutputTemplate(dir string) string {
	return filepath.Join(dir, TitlePlaceholder+"."+ExtPlaceholder)
}

// RenderTemplate fills an output template the way yt-dlp would for a title
// and extension.
func RenderTemplate(tmpl, title, ext string) string {
	out := strings.ReplaceAll(tmpl, TitlePlaceholder, shared.SanitizeFileName(title))
	return strings.ReplaceAll(out, ExtPlaceholder, ext)
}

// AudioPath maps the pre-conversion file name reported by yt-dlp to the file
// written by the audio extraction step.
func AudioPath(filename, format string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "." + format
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
