package downloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"

	"spotify-yt-downloader/internal/shared"
)

// ID3Tagger writes title, artist and album frames into mp3 files. Other
// formats are left untouched.
type ID3Tagger struct{}

// NewID3Tagger creates a tagger for mp3 output.
func NewID3Tagger() *ID3Tagger {
	return &ID3Tagger{}
}

// WriteTags writes the track's catalog metadata into the file at path.
func (t *ID3Tagger) WriteTags(path string, track shared.Track) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if track.Title != "" {
		tag.SetTitle(track.Title)
	}
	if track.Artist != "" {
		tag.SetArtist(track.Artist)
	}
	if track.Album != "" {
		tag.SetAlbum(track.Album)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags to %s: %w", path, err)
	}
	return nil
}
