package moderation

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
)

// ExcluirNoticia remove uma notícia que ainda está pendente. Só o dono
// ou um administrador podem excluir; depois da decisão de moderação o
// corpus fica imutável e auditável.
func (ms *ModerationService) ExcluirNoticia(ctx context.Context, noticiaID int64, ator domain.Ator) error {
	noticia, err := ms.noticiaRepository.BuscarPorID(ctx, noticiaID)
	if err != nil {
		return fmt.Errorf("ModerationService.ExcluirNoticia - failed to load noticia (%d): %w", noticiaID, err)
	}

	if !ator.Admin && ator.ID != noticia.ClienteID {
		return fmt.Errorf("ModerationService.ExcluirNoticia - cliente (%d) não é dono da noticia (%d) nem administrador: %w",
			ator.ID, noticiaID, domain.ErrForbidden)
	}

	if err := ms.noticiaRepository.Excluir(ctx, noticiaID); err != nil {
		return fmt.Errorf("ModerationService.ExcluirNoticia - failed to delete noticia (%d): %w", noticiaID, err)
	}

	ms.publisher.Publicar(ctx, domain.EventoNoticiaExcluida, noticiaID, ator.ID, "")

	return nil
}
