package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"areamsg/internal/config"
	"areamsg/internal/domain/entities"
	"areamsg/internal/ports/input"
	"areamsg/internal/ports/output"
)

var adminPermissions int64 = discordgo.PermissionManageServer

var nameOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "name",
	Description: "Nom de la région",
	Required:    true,
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "region",
		Description: "Informations sur les régions",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Afficher une région",
				Options:     []*discordgo.ApplicationCommandOption{nameOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Lister les régions",
			},
		},
	},
	{
		Name:                     "regionadmin",
		Description:              "Administration des régions",
		DefaultMemberPermissions: &adminPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "announce",
				Description: "Annoncer une région dans le salon d'annonce",
				Options:     []*discordgo.ApplicationCommandOption{nameOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "reload",
				Description: "Recharger le catalogue de messages",
			},
		},
	},
}

// Bot is the Discord adapter.
type Bot struct {
	session  *discordgo.Session
	config   *config.Config
	handler  *Handler
	messages input.MessageUseCase
	logger   *slog.Logger
}

// NewBot creates a Bot and wires the message and region use cases into the handler.
func NewBot(
	cfg *config.Config,
	messages input.MessageUseCase,
	regions input.RegionUseCase,
	templates output.ReloadableTemplateStore,
	logger *slog.Logger,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("création de la session Discord: %w", err)
	}

	handler := NewHandler(messages, regions, templates, cfg.AnnounceChannelID, logger)

	bot := &Bot{
		session:  s,
		config:   cfg,
		handler:  handler,
		messages: messages,
		logger:   logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch i.ApplicationCommandData().Name {
	case "region":
		b.handler.HandleRegionCommand(s, i)
	case "regionadmin":
		b.handler.HandleAdminCommand(s, i)
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	registered := 0
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			b.logger.Warn("command registration failed", slog.String("command", cmd.Name), slog.Any("error", err))
			continue
		}
		registered++
	}

	b.messages.Send(b.messages.FromKey("startup",
		entities.Value(b.session.State.User.Username),
		entities.Value(registered),
	), b.logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.handler.RunScheduledTasks(ctx, b.session)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
