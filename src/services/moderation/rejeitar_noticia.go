package moderation

import (
	"context"
	"fmt"
	"strings"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// RejeitarNoticia rejeita uma notícia pendente guardando o motivo.
// Motivo vazio não passa: o autor precisa saber por que foi rejeitado.
// Em caso de falha nada muda no banco - a notícia segue pendente.
func (ms *ModerationService) RejeitarNoticia(ctx context.Context, noticiaID int64, ator domain.Ator, motivo string) (*entities.Noticia, error) {
	if !ator.Admin {
		return nil, fmt.Errorf("ModerationService.RejeitarNoticia - cliente (%d) não é administrador: %w", ator.ID, domain.ErrForbidden)
	}

	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return nil, domain.NovaValidationError("motivo", "informe o motivo da rejeição")
	}

	noticia, err := ms.noticiaRepository.Rejeitar(ctx, noticiaID, motivo)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.RejeitarNoticia - failed to reject noticia (%d): %w", noticiaID, err)
	}

	ms.publisher.Publicar(ctx, domain.EventoNoticiaRejeitada, noticiaID, ator.ID, motivo)

	return noticia, nil
}
