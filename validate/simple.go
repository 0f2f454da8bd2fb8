// ABOUTME: Small load-bearing validators for lost reasons and entity ids
// ABOUTME: Used by every win/lose and delete flow before a mutation fires
package validate

import (
	"fmt"
	"strings"
)

const maxLostReasonLen = 500

// LostReason trims and bounds the reason text captured when a deal is
// marked lost.
func LostReason(s string) (string, error) {
	reason := strings.TrimSpace(s)
	if reason == "" {
		return "", errRequired("reason", "A reason is required.")
	}
	if len(reason) > maxLostReasonLen {
		return "", errTooLong("reason", fmt.Sprintf("Reason must be %d characters or less.", maxLostReasonLen))
	}
	return reason, nil
}

// EntityID trims and rejects empty ids. Applied defensively even to ids
// that should already be valid, because callers may pass stale state.
func EntityID(s string) (string, error) {
	id := strings.TrimSpace(s)
	if id == "" {
		return "", errRequired("id", "A valid id is required.")
	}
	return id, nil
}
