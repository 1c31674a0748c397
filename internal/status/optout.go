package status

import "strings"

// OptOutMarker is the literal sequence an operator embeds in their MOTD to
// signal they don't want the server indexed.
const OptOutMarker = "§b§d§f§d§b"

// IsOptedOut reports whether the formatted description carries the
// opt-out marker.
func IsOptedOut(descriptionFormatted string) bool {
	return strings.Contains(descriptionFormatted, OptOutMarker)
}
