// Package bgg implements a client for the hobbyist game-database API: XML
// title search, the two-step designer lookup (documented XML search plus
// the linked-items JSON endpoint), and full game details. Calls are
// single-attempt; retry and pacing belong to the caller. The API answers
// HTTP 202 while a search is still being prepared, surfaced here as
// ErrStillProcessing.
package bgg
