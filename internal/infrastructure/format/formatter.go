package format

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"areamsg/internal/ports/output"
	pkgdiscord "areamsg/pkg/discord"
)

// Ensure Formatter implements the output.Formatter port.
var _ output.Formatter = (*Formatter)(nil)

// Formatter renders resolved lines for Discord. Styling codes pass through
// untouched unless StripStyling is called.
type Formatter struct{}

func New() *Formatter {
	return &Formatter{}
}

// ToConsole joins lines with a newline.
func (f *Formatter) ToConsole(lines []string) string {
	return strings.Join(lines, "\n")
}

func (f *Formatter) ToRich(lines []string) *discordgo.MessageEmbed {
	return pkgdiscord.BuildMessageEmbed(lines)
}

func (f *Formatter) StripStyling(text string) string {
	return pkgdiscord.StripStyling(text)
}
