package application

import (
	"log/slog"

	"areamsg/internal/domain/entities"
	"areamsg/internal/ports/output"
)

// Settings are the output switches read from the configuration.
type Settings struct {
	// RichMessages sends embeds to player sinks instead of plain text.
	RichMessages bool
	// ConsoleColors keeps styling codes in plain text sent to text and log sinks.
	ConsoleColors bool
}

// MessageService resolves messages and delivers them to sinks.
type MessageService struct {
	templates output.TemplateStore
	resolver  *Resolver
	formatter output.Formatter
	settings  Settings
	logger    *slog.Logger
}

func NewMessageService(
	templates output.TemplateStore,
	resolver *Resolver,
	formatter output.Formatter,
	settings Settings,
	logger *slog.Logger,
) *MessageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageService{
		templates: templates,
		resolver:  resolver,
		formatter: formatter,
		settings:  settings,
		logger:    logger,
	}
}

// FromKey builds a message from the catalog with its replacements bound.
func (s *MessageService) FromKey(key string, args ...entities.Replacement) *entities.Message {
	return entities.FromKey(s.templates, key).Replacements(args...)
}

func (s *MessageService) Resolve(msg *entities.Message) []string {
	return s.resolver.Resolve(msg)
}

// Plain returns the resolved message as one console string.
func (s *MessageService) Plain(msg *entities.Message) string {
	return s.formatter.ToConsole(s.resolver.Resolve(msg))
}

// Send resolves msg and delivers it to sink. Blank messages are dropped.
// Delivery problems are logged, never returned.
func (s *MessageService) Send(msg *entities.Message, sink any) {
	if msg.IsEmpty() {
		return
	}
	lines := s.resolver.Resolve(msg)
	if msg.IsEmpty() {
		return
	}

	if player, ok := sink.(output.PlayerSink); ok {
		var err error
		if s.settings.RichMessages {
			err = player.SendEmbed(s.formatter.ToRich(lines))
		} else {
			err = player.SendText(s.formatter.ToConsole(lines))
		}
		if err != nil {
			s.logger.Warn("could not send message to player", slog.String("key", msg.Key()), slog.Any("error", err))
		}
		return
	}

	plain := s.formatter.ToConsole(lines)
	if !s.settings.ConsoleColors {
		plain = s.formatter.StripStyling(plain)
	}
	switch target := sink.(type) {
	case output.TextSink:
		if err := target.SendText(plain); err != nil {
			s.logger.Warn("could not send message", slog.String("key", msg.Key()), slog.Any("error", err))
		}
	case output.LogSink:
		target.Info(plain)
	default:
		s.logger.Warn("could not send message, target is wrong: " + plain)
	}
}
