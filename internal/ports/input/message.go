package input

import "areamsg/internal/domain/entities"

type MessageUseCase interface {
	Resolve(msg *entities.Message) []string
	Plain(msg *entities.Message) string
	Send(msg *entities.Message, sink any)
	FromKey(key string, args ...entities.Replacement) *entities.Message
}
