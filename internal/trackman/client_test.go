package trackman_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/trackman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) trackman.Config {
	return trackman.Config{
		Username: "user",
		Password: "pass",
		ClientID: "client-123",
		TeamID:   "team-456",
		BaseURL:  baseURL,
	}
}

func window() (time.Time, time.Time) {
	from, _ := time.Parse("2006-01-02", "2025-01-01")
	to, _ := time.Parse("2006-01-02", "2025-12-31")
	return from, to
}

func Test_New_RequiresAllCredentials(t *testing.T) {
	_, err := trackman.New(trackman.Config{Username: "user", Password: "pass"})
	assert.Error(t, err)
}

func Test_ListSessions_SendsAuthAndWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user", username)
		assert.Equal(t, "pass", password)
		assert.Equal(t, "client-123", r.Header.Get("ClientId"))

		query := r.URL.Query()
		assert.Equal(t, "team-456", query.Get("teamId"))
		assert.Equal(t, "2025-01-01", query.Get("fromDate"))
		assert.Equal(t, "2025-12-31", query.Get("toDate"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"playerName": "Dom Stagliano", "date": "2025/07/18", "mediaUrl": "https://media.example/1.mp4"},
			{"playerName": "Michael Kelly", "date": "2025/07/26"}
		]`))
	}))
	defer server.Close()

	client, err := trackman.New(testConfig(server.URL))
	require.Nil(t, err)

	from, to := window()
	sessions, err := client.ListSessions(context.Background(), from, to)
	require.Nil(t, err)

	require.Len(t, sessions, 2)
	assert.Equal(t, "Dom Stagliano", sessions[0].PlayerName)
	assert.Equal(t, "2025/07/18", sessions[0].Date)
	assert.Equal(t, "https://media.example/1.mp4", sessions[0].MediaURL)
	assert.Empty(t, sessions[1].MediaURL)
}

func Test_ListSessions_NonSuccessIsListingError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := trackman.New(testConfig(server.URL))
	require.Nil(t, err)

	from, to := window()
	_, err = client.ListSessions(context.Background(), from, to)

	var listingErr *trackman.ListingError
	require.ErrorAs(t, err, &listingErr)
	assert.Equal(t, http.StatusUnauthorized, listingErr.StatusCode)
}

func Test_ListSessions_MalformedBodyIsListingError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"oops": "not an array"`))
	}))
	defer server.Close()

	client, err := trackman.New(testConfig(server.URL))
	require.Nil(t, err)

	from, to := window()
	_, err = client.ListSessions(context.Background(), from, to)

	var listingErr *trackman.ListingError
	assert.ErrorAs(t, err, &listingErr)
}

func Test_FetchMedia_StreamsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("video-bytes"))
	}))
	defer server.Close()

	client, err := trackman.New(testConfig(server.URL))
	require.Nil(t, err)

	body, err := client.FetchMedia(context.Background(), server.URL+"/media/1.mp4")
	require.Nil(t, err)
	defer body.Close()

	content, err := io.ReadAll(body)
	assert.Nil(t, err)
	assert.Equal(t, "video-bytes", string(content))
}

func Test_FetchMedia_NonSuccessIsMediaFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := trackman.New(testConfig(server.URL))
	require.Nil(t, err)

	_, err = client.FetchMedia(context.Background(), server.URL+"/media/missing.mp4")

	var fetchErr *trackman.MediaFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}
