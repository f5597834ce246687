package store

import (
	"context"
	"strings"
)

// History keeps one growing conversation transcript per session. Backends
// provide last-write-wins semantics per session key; no cross-session
// ordering is guaranteed.
type History interface {
	// Get returns the transcript for a session, or "" when none exists.
	Get(ctx context.Context, sessionID string) (string, error)
	// Append records one user/assistant turn.
	Append(ctx context.Context, sessionID, userText, reply string) error
}

// appendTurn extends a transcript with one turn in the dialogue format the
// generative fallback prompt expects.
func appendTurn(history, userText, reply string) string {
	return strings.TrimSpace(history + "\nUser: " + userText + "\nJabir: " + reply)
}
