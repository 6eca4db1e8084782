package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

const expiryInterval = 10 * time.Minute

// RunScheduledTasks announces rents that ran out, every 10 minutes, until ctx
// is cancelled.
func (h *Handler) RunScheduledTasks(ctx context.Context, s *discordgo.Session) {
	ticker := time.NewTicker(expiryInterval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.announceExpiredRents(ctx, s, last, now)
			last = now
		}
	}
}

func (h *Handler) announceExpiredRents(ctx context.Context, s *discordgo.Session, since, now time.Time) {
	if h.announceChannelID == "" {
		return
	}
	msgs, err := h.regions.Expired(ctx, since, now)
	if err != nil {
		h.logger.Error("expired rents lookup failed", slog.Any("error", err))
		return
	}
	sink := newChannelSink(s, h.announceChannelID)
	for _, msg := range msgs {
		h.messages.Send(msg, sink)
	}
}
