package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"spotify-yt-downloader/internal/shared"
)

// Client fetches playlist and album pages from the Spotify Web API.
type Client struct {
	ID     string
	Secret string

	// TokenURL and BaseURL default to the public Spotify endpoints.
	TokenURL string
	BaseURL  string

	playlistLimit int
	albumLimit    int

	mu     sync.RWMutex
	client *spotify.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoints points the client at a different token endpoint and API base URL.
func WithEndpoints(tokenURL, baseURL string) Option {
	return func(c *Client) {
		c.TokenURL = tokenURL
		c.BaseURL = baseURL
	}
}

// WithPageLimits sets the page size used for playlist and album pages.
func WithPageLimits(playlist, album int) Option {
	return func(c *Client) {
		c.playlistLimit = playlist
		c.albumLimit = album
	}
}

// NewClient creates a new spotify client
func NewClient(id, secret string, opts ...Option) *Client {
	c := &Client{
		ID:            id,
		Secret:        secret,
		TokenURL:      spotifyauth.TokenURL,
		playlistLimit: 100,
		albumLimit:    50,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate authenticates the client with the spotify api using the
// client-credentials flow.
func (c *Client) Authenticate(ctx context.Context) error {
	config := &clientcredentials.Config{
		ClientID:     c.ID,
		ClientSecret: c.Secret,
		TokenURL:     c.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthentication, err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	c.setClient(c.newAPIClient(httpClient))
	return nil
}

func (c *Client) newAPIClient(httpClient *http.Client) *spotify.Client {
	if c.BaseURL == "" {
		return spotify.New(httpClient)
	}
	return spotify.New(httpClient, spotify.WithBaseURL(c.BaseURL))
}

func (c *Client) setClient(client *spotify.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client = client
}

func (c *Client) api() (*spotify.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		return nil, errors.New("spotify client is not authenticated")
	}
	return c.client, nil
}

// FetchPage returns one page of ref's tracks. The cursor is the offset of the
// page to fetch; an empty cursor starts at the beginning.
func (c *Client) FetchPage(ctx context.Context, ref shared.CatalogReference, cursor string) (*shared.CatalogPage, error) {
	client, err := c.api()
	if err != nil {
		return nil, err
	}

	offset := 0
	if cursor != "" {
		offset, err = strconv.Atoi(cursor)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid page cursor %q", cursor)
		}
	}

	switch ref.Kind {
	case shared.KindPlaylist:
		page, err := client.GetPlaylistItems(ctx, spotify.ID(ref.ID), spotify.Limit(c.playlistLimit), spotify.Offset(offset))
		if err != nil {
			return nil, err
		}
		items := playlistItems(page.Items)
		return &shared.CatalogPage{Items: items, Next: nextCursor(page.Next, offset, len(items))}, nil
	case shared.KindAlbum:
		page, err := client.GetAlbumTracks(ctx, spotify.ID(ref.ID), spotify.Limit(c.albumLimit), spotify.Offset(offset))
		if err != nil {
			return nil, err
		}
		items := albumItems(page.Tracks)
		return &shared.CatalogPage{Items: items, Next: nextCursor(page.Next, offset, len(items))}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", shared.ErrInvalidReference, ref.Kind)
	}
}

// nextCursor turns the API's next-page link into an offset cursor. An empty
// page ends pagination even if the API claims otherwise.
func nextCursor(next string, offset, count int) string {
	if next == "" || count == 0 {
		return ""
	}
	return strconv.Itoa(offset + count)
}
