package discord

import (
	"github.com/bwmarrin/discordgo"

	"areamsg/internal/ports/output"
)

var (
	_ output.PlayerSink = (*interactionSink)(nil)
	_ output.TextSink   = (*channelSink)(nil)
)

// interactionSink answers the player who ran a command. The first message is
// the interaction response, later ones are follow-ups.
type interactionSink struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	responded   bool
}

func newInteractionSink(s *discordgo.Session, i *discordgo.Interaction) *interactionSink {
	return &interactionSink{session: s, interaction: i}
}

func (r *interactionSink) SendText(text string) error {
	return r.respond(&discordgo.InteractionResponseData{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func (r *interactionSink) SendEmbed(embed *discordgo.MessageEmbed) error {
	return r.respond(&discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
}

func (r *interactionSink) respond(data *discordgo.InteractionResponseData) error {
	if r.responded {
		_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
			Content: data.Content,
			Embeds:  data.Embeds,
			Flags:   data.Flags,
		})
		return err
	}
	r.responded = true
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// channelSink posts plain text to a channel.
type channelSink struct {
	session   *discordgo.Session
	channelID string
}

func newChannelSink(s *discordgo.Session, channelID string) *channelSink {
	return &channelSink{session: s, channelID: channelID}
}

func (c *channelSink) SendText(text string) error {
	_, err := c.session.ChannelMessageSend(c.channelID, text)
	return err
}
