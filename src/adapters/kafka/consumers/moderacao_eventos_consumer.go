package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"portalnoticias/src/domain"
	"portalnoticias/src/infra/kafka"
	"portalnoticias/src/repositories"
)

// ModeracaoEventosConsumer consome o tópico de eventos de moderação e
// grava cada decisão na trilha de auditoria. O insert é idempotente
// por evento_id, então reentrega do kafka não duplica linha.
type ModeracaoEventosConsumer struct {
	logger           *slog.Logger
	eventoRepository *repositories.EventoRepository
}

func NewModeracaoEventosConsumer(
	logger *slog.Logger,
	eventoRepository *repositories.EventoRepository,
) *ModeracaoEventosConsumer {
	return &ModeracaoEventosConsumer{
		logger:           logger,
		eventoRepository: eventoRepository,
	}
}

func (c *ModeracaoEventosConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting moderation events consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.handleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

func (c *ModeracaoEventosConsumer) handleMessages(ctx context.Context, messages []kafka.Message) error {
	for _, msg := range messages {
		var evento domain.EventoModeracao
		if err := json.Unmarshal(msg.Value, &evento); err != nil {
			c.logger.Error("Failed to unmarshal moderation event",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			return fmt.Errorf("failed to unmarshal event with key %s: %w", msg.Key, err)
		}

		if evento.EventoID == "" || evento.Tipo == "" {
			c.logger.Error("Invalid moderation event: missing required fields",
				"key", msg.Key,
				"evento_id", evento.EventoID,
				"tipo", evento.Tipo)
			return fmt.Errorf("invalid event with key %s: evento_id and tipo are required", msg.Key)
		}

		if err := c.eventoRepository.Registrar(ctx, &evento); err != nil {
			c.logger.Error("Failed to persist moderation event",
				"error", err,
				"evento_id", evento.EventoID)
			return fmt.Errorf("failed to persist event %s: %w", evento.EventoID, err)
		}

		c.logger.Debug("Moderation event persisted",
			"evento_id", evento.EventoID,
			"tipo", evento.Tipo,
			"noticia_id", evento.NoticiaID)
	}

	return nil
}
