package interaction

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// ListarPorNoticia devolve as interações da notícia em ordem de
// criação ascendente, estável.
func (is *InteractionService) ListarPorNoticia(ctx context.Context, noticiaID int64) ([]entities.Interacao, error) {
	interacoes, err := is.interacaoRepository.ListarPorNoticia(ctx, noticiaID)
	if err != nil {
		return nil, fmt.Errorf("InteractionService.ListarPorNoticia - noticia (%d): %w", noticiaID, err)
	}
	return interacoes, nil
}

// ListarPorCliente devolve as interações do cliente, mais recentes
// primeiro, cada uma com o resumo da notícia alvo.
func (is *InteractionService) ListarPorCliente(ctx context.Context, clienteID int64) ([]domain.InteracaoComNoticia, error) {
	itens, err := is.interacaoRepository.ListarPorCliente(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("InteractionService.ListarPorCliente - cliente (%d): %w", clienteID, err)
	}
	return itens, nil
}
