package moderation

import (
	"context"
	"fmt"
	"strings"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// ListarAprovadas é a vitrine pública: só notícias aprovadas, mais
// recentes primeiro.
func (ms *ModerationService) ListarAprovadas(ctx context.Context) ([]entities.Noticia, error) {
	noticias, err := ms.noticiaRepository.ListarAprovadas(ctx)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.ListarAprovadas - %w", err)
	}
	return noticias, nil
}

// PesquisarNoticias busca por substring em título e resumo entre as
// notícias aprovadas. Sem ranking, é delegação direta ao banco.
func (ms *ModerationService) PesquisarNoticias(ctx context.Context, termo string) ([]entities.Noticia, error) {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return nil, domain.NovaValidationError("termo", "informe um termo de pesquisa")
	}

	noticias, err := ms.noticiaRepository.PesquisarAprovadas(ctx, termo)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.PesquisarNoticias - %w", err)
	}
	return noticias, nil
}

// ListarCategorias é o dado de referência do formulário de submissão,
// em ordem alfabética.
func (ms *ModerationService) ListarCategorias(ctx context.Context) ([]entities.Categoria, error) {
	categorias, err := ms.categoriaRepository.Listar(ctx)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.ListarCategorias - %w", err)
	}
	return categorias, nil
}

// ListarPendentes é a fila de moderação, exclusiva do administrador.
func (ms *ModerationService) ListarPendentes(ctx context.Context, ator domain.Ator) ([]entities.Noticia, error) {
	if !ator.Admin {
		return nil, fmt.Errorf("ModerationService.ListarPendentes - cliente (%d) não é administrador: %w", ator.ID, domain.ErrForbidden)
	}

	noticias, err := ms.noticiaRepository.ListarPendentes(ctx)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.ListarPendentes - %w", err)
	}
	return noticias, nil
}

// ListarDoCliente devolve todas as notícias do cliente, em qualquer
// status - é a tela "minhas notícias".
func (ms *ModerationService) ListarDoCliente(ctx context.Context, clienteID int64) ([]entities.Noticia, error) {
	noticias, err := ms.noticiaRepository.ListarDoCliente(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.ListarDoCliente - %w", err)
	}
	return noticias, nil
}

// BuscarDetalhes carrega a notícia com categoria e interações para a
// tela de detalhes.
func (ms *ModerationService) BuscarDetalhes(ctx context.Context, noticiaID int64) (*domain.NoticiaDetalhes, error) {
	detalhes, err := ms.noticiaRepository.BuscarDetalhes(ctx, noticiaID)
	if err != nil {
		return nil, fmt.Errorf("ModerationService.BuscarDetalhes - noticia (%d): %w", noticiaID, err)
	}
	return detalhes, nil
}
