package conversation

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

const (
	chatMarker   = "@助教"
	searchMarker = "@請查詢"
)

// Marker order matters when markers overlap as prefixes: first match wins.
var triggerMarkers = []string{chatMarker, searchMarker}

func IsTriggered(message string) bool {
	return TriggerType(message) != ""
}

// TriggerType returns the first marker that prefixes the trimmed message,
// or an empty string when none match.
func TriggerType(message string) string {
	trimmed := strings.TrimSpace(message)

	idx := pie.FindFirstUsing(triggerMarkers, func(marker string) bool {
		return strings.HasPrefix(trimmed, marker)
	})
	if idx < 0 {
		return ""
	}

	return triggerMarkers[idx]
}

// ExtractContent returns the trimmed payload after the matched marker.
// ok is false when no marker matched; a matched marker with nothing after
// it yields ("", true) and the caller treats it as non-actionable.
func ExtractContent(message string) (content string, ok bool) {
	marker := TriggerType(message)
	if marker == "" {
		return "", false
	}

	trimmed := strings.TrimSpace(message)

	return strings.TrimSpace(strings.TrimPrefix(trimmed, marker)), true
}
