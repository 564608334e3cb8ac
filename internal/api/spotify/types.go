package spotify

import (
	"github.com/zmb3/spotify/v2"

	"spotify-yt-downloader/internal/shared"
)

// playlistItems keeps the playlist envelope: each item wraps the actual
// track. Local files and removed tracks come back with an empty envelope.
func playlistItems(items []spotify.PlaylistItem) []shared.CatalogItem {
	out := make([]shared.CatalogItem, 0, len(items))
	for _, item := range items {
		envelope := shared.CatalogItem{}
		if track := item.Track.Track; track != nil {
			inner := simpleTrackItem(track.SimpleTrack)
			inner.Album = track.Album.Name
			envelope.Track = &inner
		}
		out = append(out, envelope)
	}
	return out
}

func albumItems(tracks []spotify.SimpleTrack) []shared.CatalogItem {
	out := make([]shared.CatalogItem, 0, len(tracks))
	for _, track := range tracks {
		out = append(out, simpleTrackItem(track))
	}
	return out
}

func simpleTrackItem(track spotify.SimpleTrack) shared.CatalogItem {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}
	return shared.CatalogItem{Name: track.Name, Artists: artists}
}
