package moderation

import (
	"context"
	"fmt"
)

// RegistrarVisualizacao conta 1 view para uma notícia aprovada.
// Notícia pendente ou rejeitada não é pública, então view nela não
// conta e a chamada falha com InvalidTransition.
func (ms *ModerationService) RegistrarVisualizacao(ctx context.Context, noticiaID int64) error {
	if err := ms.noticiaRepository.IncrementarVisualizacoes(ctx, noticiaID); err != nil {
		return fmt.Errorf("ModerationService.RegistrarVisualizacao - failed for noticia (%d): %w", noticiaID, err)
	}

	return nil
}
