package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"areamsg/internal/domain"
	"areamsg/internal/domain/entities"
	pkgdiscord "areamsg/pkg/discord"
)

// HandleRegionCommand answers /region info and /region list.
func (h *Handler) HandleRegionCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	sink := newInteractionSink(s, i.Interaction)
	sub, options := pkgdiscord.SubCommand(i.ApplicationCommandData())

	var (
		msg *entities.Message
		err error
	)
	switch sub {
	case "info":
		msg, err = h.regions.Describe(ctx, pkgdiscord.StringOption(options, "name"))
	case "list":
		msg, err = h.regions.ListAll(ctx)
	default:
		// Sous-commande inconnue : on ignore silencieusement.
		return
	}
	if err != nil {
		h.replyError(sink, err)
		return
	}
	h.messages.Send(msg, sink)
}

// HandleAdminCommand answers /regionadmin announce and /regionadmin reload.
func (h *Handler) HandleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	sink := newInteractionSink(s, i.Interaction)
	sub, options := pkgdiscord.SubCommand(i.ApplicationCommandData())

	switch sub {
	case "announce":
		h.announce(ctx, s, sink, pkgdiscord.StringOption(options, "name"))
	case "reload":
		h.reload(sink)
	}
}

func (h *Handler) announce(ctx context.Context, s *discordgo.Session, sink *interactionSink, name string) {
	if h.announceChannelID == "" {
		h.replyError(sink, domain.ErrNoAnnounceChannel)
		return
	}
	msg, err := h.regions.Announce(ctx, name)
	if err != nil {
		h.replyError(sink, err)
		return
	}
	h.messages.Send(msg, newChannelSink(s, h.announceChannelID))
	h.messages.Send(h.messages.FromKey("announce-sent",
		entities.Value(name),
		entities.Value(h.announceChannelID),
	).Prefix(), sink)
}

func (h *Handler) reload(sink *interactionSink) {
	if err := h.templates.Reload(); err != nil {
		h.logger.Error("message catalog reload failed", slog.Any("error", err))
		h.messages.Send(h.messages.FromKey("reload-failed", entities.Value(err)).Prefix(), sink)
		return
	}
	done := h.messages.FromKey("reload-success")
	h.messages.Send(done, h.logger)
	h.messages.Send(done.Prefix(), sink)
}

func (h *Handler) replyError(sink *interactionSink, err error) {
	if domain.Code(err) == "" {
		h.logger.Error("command failed", slog.Any("error", err))
	}
	h.messages.Send(h.messages.FromKey(pkgdiscord.DomainErrorKey(err)).Prefix(), sink)
}
