package moderation

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// AprovarNoticia publica uma notícia pendente. Só administrador
// aprova, e aprovada é estado terminal.
func (ms *ModerationService) AprovarNoticia(ctx context.Context, noticiaID int64, ator domain.Ator) (*entities.Noticia, error) {
	if !ator.Admin {
		return nil, fmt.Errorf("ModerationService.AprovarNoticia - cliente (%d) não é administrador: %w", ator.ID, domain.ErrForbidden)
	}

	noticia, err := ms.noticiaRepository.Aprovar(ctx, noticiaID)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.AprovarNoticia - failed to approve noticia (%d): %w", noticiaID, err)
	}

	ms.publisher.Publicar(ctx, domain.EventoNoticiaAprovada, noticiaID, ator.ID, "")

	return noticia, nil
}
