package discord

import (
	"log/slog"

	"areamsg/internal/ports/input"
	"areamsg/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	messages          input.MessageUseCase
	regions           input.RegionUseCase
	templates         output.ReloadableTemplateStore
	announceChannelID string
	logger            *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	messages input.MessageUseCase,
	regions input.RegionUseCase,
	templates output.ReloadableTemplateStore,
	announceChannelID string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		messages:          messages,
		regions:           regions,
		templates:         templates,
		announceChannelID: announceChannelID,
		logger:            logger,
	}
}
