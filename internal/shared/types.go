package shared

import (
	"fmt"
	"strings"
	"sync"
)

// CatalogKind identifies which catalog collection a reference points at.
type CatalogKind string

const (
	KindPlaylist CatalogKind = "playlist"
	KindAlbum    CatalogKind = "album"
)

// String returns the string representation of CatalogKind
func (k CatalogKind) String() string {
	return string(k)
}

// CatalogReference is a parsed playlist or album identifier.
type CatalogReference struct {
	ID   string
	Kind CatalogKind
}

func (r CatalogReference) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}

// CatalogItem is a raw record as returned by a catalog page. Playlist pages
// wrap the real track in Track; album pages carry the fields directly.
type CatalogItem struct {
	Name    string
	Artists []string
	Album   string
	Track   *CatalogItem
}

// CatalogPage is one page of catalog items. An empty Next means there are no
// further pages.
type CatalogPage struct {
	Items []CatalogItem
	Next  string
}

// Track is a normalized track record: title and primary artist.
type Track struct {
	Title  string
	Artist string
	Album  string
}

// SearchQuery is the search string derived from a single track record.
type SearchQuery struct {
	Text  string
	Track Track
}

func (q SearchQuery) String() string {
	return q.Text
}

// MediaRef is the best match returned by a media search.
type MediaRef struct {
	ID    string
	Title string
	URL   string
}

// DownloadStats counts the outcome of a download run. It is safe for
// concurrent use.
type DownloadStats struct {
	mu          sync.Mutex
	Succeeded   int
	Failed      int
	FailedItems []string
}

// RecordSuccess counts a successfully written file.
func (s *DownloadStats) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Succeeded++
}

// RecordFailure counts a failed item.
func (s *DownloadStats) RecordFailure(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	s.FailedItems = append(s.FailedItems, query)
}

// Total returns the number of processed items.
func (s *DownloadStats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Succeeded + s.Failed
}

// Summary renders a one-line outcome count.
func (s *DownloadStats) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "%d downloaded, %d failed", s.Succeeded, s.Failed)
	return b.String()
}
