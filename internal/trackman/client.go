// Package trackman implements the client for the TrackMan
// post-session API, which is the authoritative source for session
// listings and the origin of the recording media the portal caches.
package trackman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
)

const (
	defaultBaseURL = "https://api.trackmanbaseball.com"

	sessionListTemplate = "%s/api/v2/postsession?teamId=%s&fromDate=%s&toDate=%s"

	clientIDHeader  = "ClientId"
	queryDateFormat = "2006-01-02"
)

var log = logger.Get("TrackMan")

type (
	// Config carries the TrackMan API credentials. All four credential
	// fields are mandatory; BaseURL is only overridden in tests.
	Config struct {
		Username string `yaml:"username" env:"TRACKMAN_USERNAME"`
		Password string `yaml:"password" env:"TRACKMAN_PASSWORD"`
		ClientID string `yaml:"client_id" env:"TRACKMAN_CLIENT_ID"`
		TeamID   string `yaml:"team_id" env:"TRACKMAN_TEAM_ID"`
		BaseURL  string `yaml:"base_url" env:"TRACKMAN_BASE_URL"`
	}

	// Session is a single session record as returned by the provider.
	// Received fresh per request and never persisted; the date keeps
	// the provider's slash-separated formatting at this layer.
	Session struct {
		PlayerName string `json:"playerName"`
		Date       string `json:"date"`
		MediaURL   string `json:"mediaUrl"`
	}

	// Client talks to the TrackMan post-session API using basic auth
	// plus the ClientId header the API requires on every request.
	Client struct {
		config Config
		client *http.Client
	}
)

// New validates the provided credentials and constructs a Client.
// Missing credentials are a configuration error raised here, rather
// than a mysterious 401 at request time.
func New(config Config) (*Client, error) {
	if config.Username == "" || config.Password == "" || config.ClientID == "" || config.TeamID == "" {
		return nil, errors.New("cannot construct TrackMan client: username, password, client ID and team ID are all required")
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	// Deliberately no client-level timeout: media downloads are
	// long-lived streams and are governed by the request context.
	return &Client{config: config, client: &http.Client{}}, nil
}

// ListSessions fetches the authoritative session listing for the
// given date window. This is a single call with no pagination; any
// non-2xx response or transport failure is returned as a ListingError
// since without a listing the caller has nothing to reconcile against.
func (client *Client) ListSessions(ctx context.Context, from time.Time, to time.Time) ([]Session, error) {
	path := fmt.Sprintf(sessionListTemplate,
		client.config.BaseURL,
		url.QueryEscape(client.config.TeamID),
		from.Format(queryDateFormat),
		to.Format(queryDateFormat),
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &ListingError{reason: err.Error()}
	}
	client.authorize(request)

	response, err := client.client.Do(request)
	if err != nil {
		return nil, &ListingError{reason: err.Error()}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &ListingError{StatusCode: response.StatusCode, reason: "non-2xx response from provider"}
	}

	var sessions []Session
	if err := json.NewDecoder(response.Body).Decode(&sessions); err != nil {
		return nil, &ListingError{reason: fmt.Sprintf("malformed session listing: %s", err)}
	}

	log.Debugf("Fetched %d sessions for window %s..%s\n", len(sessions), from.Format(queryDateFormat), to.Format(queryDateFormat))
	return sessions, nil
}

// FetchMedia opens a streamed download of a session's recording. The
// returned reader is the raw response body; the caller owns closing it
// and MUST consume it as a stream rather than buffering.
func (client *Client) FetchMedia(ctx context.Context, mediaURL string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, &MediaFetchError{URL: mediaURL, reason: err.Error()}
	}
	client.authorize(request)

	response, err := client.client.Do(request)
	if err != nil {
		return nil, &MediaFetchError{URL: mediaURL, reason: err.Error()}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		response.Body.Close()
		return nil, &MediaFetchError{URL: mediaURL, StatusCode: response.StatusCode, reason: "non-2xx response from provider"}
	}

	return response.Body, nil
}

func (client *Client) authorize(request *http.Request) {
	request.SetBasicAuth(client.config.Username, client.config.Password)
	request.Header.Set(clientIDHeader, client.config.ClientID)
}
