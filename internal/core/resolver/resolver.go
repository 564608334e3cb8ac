package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"spotify-yt-downloader/internal/interfaces"
	"spotify-yt-downloader/internal/shared"
)

// Both the open.spotify.com URL form and the spotify:<kind>:<id> URI form match.
var (
	playlistPattern = regexp.MustCompile(`playlist[/:]([a-zA-Z0-9]+)`)
	albumPattern    = regexp.MustCompile(`album[/:]([a-zA-Z0-9]+)`)
)

// ParseReference extracts the playlist or album id from a catalog URL.
// Playlists take precedence when both patterns match.
func ParseReference(url string) (shared.CatalogReference, error) {
	if m := playlistPattern.FindStringSubmatch(url); m != nil {
		return shared.CatalogReference{ID: m[1], Kind: shared.KindPlaylist}, nil
	}
	if m := albumPattern.FindStringSubmatch(url); m != nil {
		return shared.CatalogReference{ID: m[1], Kind: shared.KindAlbum}, nil
	}
	return shared.CatalogReference{}, fmt.Errorf("%w: %q is not a playlist or album URL", shared.ErrInvalidReference, url)
}

// Resolver turns a catalog URL into the ordered list of its tracks.
type Resolver struct {
	catalog interfaces.CatalogService
	logger  interfaces.LoggerService
}

// New creates a resolver over an authenticated catalog.
func New(catalog interfaces.CatalogService, logger interfaces.LoggerService) *Resolver {
	return &Resolver{catalog: catalog, logger: logger}
}

// Resolve fetches every page of the referenced playlist or album in catalog
// order. Any page failure discards the partial result.
func (r *Resolver) Resolve(ctx context.Context, url string) ([]shared.Track, error) {
	ref, err := ParseReference(url)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	r.logger.Info("Fetching tracks from %s ID: %s", ref.Kind, ref.ID)

	var tracks []shared.Track
	cursor := ""
	for page := 1; ; page++ {
		result, err := r.catalog.FetchPage(ctx, ref, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d of %s: %v", shared.ErrPagination, page, ref, err)
		}
		for _, item := range result.Items {
			tracks = append(tracks, Normalize(item))
		}
		r.logger.Debug("Fetched page %d of %s (%d items)", page, ref, len(result.Items))

		if result.Next == "" {
			break
		}
		if result.Next == cursor {
			return nil, fmt.Errorf("%w: cursor %q repeated on page %d of %s", shared.ErrPagination, cursor, page, ref)
		}
		cursor = result.Next
	}

	r.logger.Info("Fetched %s in %.2f s", capitalize(ref.Kind.String()), time.Since(start).Seconds())
	return tracks, nil
}

// Normalize unwraps an enveloped item and keeps only the primary artist.
func Normalize(item shared.CatalogItem) shared.Track {
	if item.Track != nil {
		item = *item.Track
	}
	track := shared.Track{Title: item.Name, Album: item.Album}
	if len(item.Artists) > 0 {
		track.Artist = item.Artists[0]
	}
	return track
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
