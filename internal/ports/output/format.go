package output

import "github.com/bwmarrin/discordgo"

// Formatter converts resolved lines into the forms sinks accept.
type Formatter interface {
	// ToConsole joins lines into a single plain string.
	ToConsole(lines []string) string
	// ToRich builds the structured form used by interactive sinks.
	ToRich(lines []string) *discordgo.MessageEmbed
	// StripStyling removes styling codes from plain text.
	StripStyling(text string) string
}
