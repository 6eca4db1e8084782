package discord

import "regexp"

// Legacy section-sign styling codes, e.g. "§a" or "§l".
var stylingCode = regexp.MustCompile(`§[0-9a-fA-Fk-oK-OrRxX]`)

// StripStyling removes styling codes from text.
func StripStyling(text string) string {
	return stylingCode.ReplaceAllString(text, "")
}
