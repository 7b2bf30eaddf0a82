package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"portalnoticias/src/domain"
	"portalnoticias/src/infra/kafka"

	"github.com/google/uuid"
)

// Publisher emite os eventos de domínio da moderação para o kafka.
// Publicação é melhor-esforço: falha vira log, nunca derruba o comando
// que já foi aplicado no banco.
type Publisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *Publisher {
	return &Publisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// Publicar monta e envia um evento de moderação. A chave da mensagem é
// o id da notícia, então decisões sobre o mesmo artigo chegam em ordem
// ao consumidor de auditoria.
func (p *Publisher) Publicar(ctx context.Context, tipo string, noticiaID int64, atorID int64, detalhe string) {
	if p == nil || p.kafkaClient == nil {
		return
	}

	evento := domain.EventoModeracao{
		EventoID:   uuid.NewString(),
		Tipo:       tipo,
		NoticiaID:  noticiaID,
		AtorID:     atorID,
		Detalhe:    detalhe,
		OcorridoEm: time.Now().UTC(),
	}

	payload, err := json.Marshal(evento)
	if err != nil {
		p.logger.Error("Failed to marshal moderation event",
			"error", err,
			"evento_id", evento.EventoID,
			"tipo", tipo)
		return
	}

	msg := kafka.Message{
		Key:   strconv.FormatInt(noticiaID, 10),
		Value: payload,
		Headers: map[string]string{
			"tipo_evento":    tipo,
			"source_service": "portal-noticias-api",
			"schema_version": "v1",
			"evento_id":      evento.EventoID,
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{msg}, p.topic); err != nil {
		p.logger.Error("Failed to publish moderation event",
			"error", err,
			"topic", p.topic,
			"evento_id", evento.EventoID,
			"tipo", tipo)
		return
	}

	p.logger.Debug("Published moderation event",
		"topic", p.topic,
		"evento_id", evento.EventoID,
		"tipo", tipo,
		"noticia_id", noticiaID)
}
