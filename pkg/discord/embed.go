package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor = 0x5865F2
	// Discord rejects embed descriptions longer than this.
	maxDescriptionLength = 4096
)

// BuildMessageEmbed renders resolved message lines as an embed description.
func BuildMessageEmbed(lines []string) *discordgo.MessageEmbed {
	desc := strings.Join(lines, "\n")
	if len(desc) > maxDescriptionLength {
		desc = truncate(desc, maxDescriptionLength-len("…")) + "…"
	}
	return &discordgo.MessageEmbed{
		Description: desc,
		Color:       embedColor,
	}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
