package shared

import "errors"

var (
	// ErrInvalidReference is returned when a catalog URL matches neither the
	// playlist nor the album pattern.
	ErrInvalidReference = errors.New("invalid catalog URL: expected a playlist or album reference")

	// ErrAuthentication is returned when the catalog rejects the client credentials.
	ErrAuthentication = errors.New("catalog authentication failed")

	// ErrPagination is returned when a page fetch fails part way through resolution.
	ErrPagination = errors.New("catalog page fetch failed")

	// ErrNoResults is returned by a media search that found nothing.
	ErrNoResults = errors.New("no search results")
)
