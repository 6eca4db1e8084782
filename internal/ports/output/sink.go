package output

import "github.com/bwmarrin/discordgo"

// PlayerSink is an interactive target such as a player talking to the bot.
// It accepts both the rich and the plain form.
type PlayerSink interface {
	SendEmbed(embed *discordgo.MessageEmbed) error
	SendText(text string) error
}

// TextSink accepts plain text only.
type TextSink interface {
	SendText(text string) error
}

// LogSink receives messages at informational level. *slog.Logger satisfies it.
type LogSink interface {
	Info(msg string, args ...any)
}
