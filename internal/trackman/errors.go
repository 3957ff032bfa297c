package trackman

import "fmt"

// ListingError indicates the session listing call itself failed. It
// is fatal to the ingestion request which triggered it: with no
// listing there is nothing to reconcile against.
type ListingError struct {
	StatusCode int
	reason     string
}

func (err *ListingError) Error() string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("session listing failed with status %d: %s", err.StatusCode, err.reason)
	}

	return fmt.Sprintf("session listing failed: %s", err.reason)
}

// MediaFetchError indicates a single session's media download failed.
// Recoverable: the ingestion pipeline skips the session and carries on.
type MediaFetchError struct {
	URL        string
	StatusCode int
	reason     string
}

func (err *MediaFetchError) Error() string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("media fetch from %s failed with status %d: %s", err.URL, err.StatusCode, err.reason)
	}

	return fmt.Sprintf("media fetch from %s failed: %s", err.URL, err.reason)
}
