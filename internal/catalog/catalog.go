// Package catalog owns the mapping between a provider session and the
// stable filename the portal serves it under, along with the
// response-ready entry type and the player filtering applied to it.
// Everything in here is pure; the derivation MUST be deterministic so
// that repeated ingestion runs against the same session dedupe against
// the same storage key.
package catalog

import (
	"fmt"
	"strings"
)

// unknownPlayer is the sentinel used when a session arrives without a
// player name attached. Such sessions still get a defined, stable key.
const unknownPlayer = "unknown"

// Entry is a single available video in the catalog returned to
// clients. Filename doubles as the object store key.
type Entry struct {
	Player   string `json:"player"`
	Date     string `json:"date"`
	Filename string `json:"filename"`
}

// NormalizeDate converts the provider's slash-separated date format
// in to the hyphenated form used in keys and responses.
func NormalizeDate(date string) string {
	return strings.ReplaceAll(date, "/", "-")
}

// DeriveKey maps a session's player name and date to the storage key
// (and served filename) for its recording. Total over all inputs: a
// missing player name falls back to a fixed sentinel rather than
// producing an empty component.
//
// Two sessions sharing a player and date collide on the same key; the
// store treats that as last-write-wins.
func DeriveKey(playerName string, date string) string {
	if playerName == "" {
		playerName = unknownPlayer
	}

	player := strings.ReplaceAll(playerName, " ", "_")
	return fmt.Sprintf("%s_%s.mp4", player, NormalizeDate(date))
}

// NewEntry constructs the catalog entry for a session, deriving the
// filename from the same inputs as DeriveKey.
func NewEntry(playerName string, date string) Entry {
	return Entry{
		Player:   playerName,
		Date:     NormalizeDate(date),
		Filename: DeriveKey(playerName, date),
	}
}

// Filter returns the entries whose player matches the given filter,
// compared case-insensitively as an exact string. An empty filter is
// the identity. Input ordering is preserved.
func Filter(entries []Entry, playerFilter string) []Entry {
	if playerFilter == "" {
		return entries
	}

	wanted := strings.ToLower(playerFilter)
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if strings.ToLower(entry.Player) == wanted {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}
