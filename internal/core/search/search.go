package search

import (
	"fmt"

	"spotify-yt-downloader/internal/shared"
)

// BuildQuery renders the media search string for a track: "{title} {artist}".
func BuildQuery(track shared.Track) shared.SearchQuery {
	return shared.SearchQuery{
		Text:  fmt.Sprintf("%s %s", track.Title, track.Artist),
		Track: track,
	}
}

// BuildQueries returns one query per track, in the same order. Tracks with an
// empty title or artist still produce a query.
func BuildQueries(tracks []shared.Track) []shared.SearchQuery {
	queries := make([]shared.SearchQuery, 0, len(tracks))
	for _, track := range tracks {
		queries = append(queries, BuildQuery(track))
	}
	return queries
}

// Incomplete returns the positions of tracks missing a title or an artist.
func Incomplete(tracks []shared.Track) []int {
	var positions []int
	for i, track := range tracks {
		if track.Title == "" || track.Artist == "" {
			positions = append(positions, i)
		}
	}
	return positions
}
