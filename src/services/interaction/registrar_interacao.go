package interaction

import (
	"context"
	"fmt"
	"strings"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// Curtir registra uma curtida e incrementa o contador da notícia.
// Curtidas repetidas do mesmo cliente são aceitas e contam de novo:
// é o comportamento de referência do portal, mantido de propósito
// (ver DESIGN.md) - quem quiser deduplicar muda aqui e no schema.
func (is *InteractionService) Curtir(ctx context.Context, noticiaID int64, clienteID int64) (*entities.Interacao, error) {
	interacao, err := is.interacaoRepository.CriarCurtida(ctx, noticiaID, clienteID)
	if err != nil {
		return nil, fmt.Errorf("InteractionService.Curtir - noticia (%d): %w", noticiaID, err)
	}

	is.publisher.Publicar(ctx, domain.EventoInteracaoRegistrada, noticiaID, clienteID, string(entities.TipoCurtida))

	return interacao, nil
}

// Comentar exige conteúdo não vazio depois de aparar espaços.
func (is *InteractionService) Comentar(ctx context.Context, noticiaID int64, clienteID int64, conteudo string) (*entities.Interacao, error) {
	conteudo = strings.TrimSpace(conteudo)
	if conteudo == "" {
		return nil, domain.NovaValidationError("conteudo", "o comentário não pode ser vazio")
	}

	interacao, err := is.interacaoRepository.CriarComentario(ctx, noticiaID, clienteID, conteudo)
	if err != nil {
		return nil, fmt.Errorf("InteractionService.Comentar - noticia (%d): %w", noticiaID, err)
	}

	is.publisher.Publicar(ctx, domain.EventoInteracaoRegistrada, noticiaID, clienteID, string(entities.TipoComentario))

	return interacao, nil
}

// Avaliar registra uma nota de 1 a 5.
func (is *InteractionService) Avaliar(ctx context.Context, noticiaID int64, clienteID int64, nota int) (*entities.Interacao, error) {
	if nota < 1 || nota > 5 {
		return nil, domain.NovaValidationError("nota", "a nota deve estar entre 1 e 5")
	}

	interacao, err := is.interacaoRepository.CriarAvaliacao(ctx, noticiaID, clienteID, nota)
	if err != nil {
		return nil, fmt.Errorf("InteractionService.Avaliar - noticia (%d): %w", noticiaID, err)
	}

	is.publisher.Publicar(ctx, domain.EventoInteracaoRegistrada, noticiaID, clienteID, string(entities.TipoAvaliacao))

	return interacao, nil
}

// Responder grava a resposta do administrador em um comentário.
func (is *InteractionService) Responder(ctx context.Context, interacaoID int64, ator domain.Ator, resposta string) error {
	if !ator.Admin {
		return fmt.Errorf("InteractionService.Responder - cliente (%d) não é administrador: %w", ator.ID, domain.ErrForbidden)
	}

	resposta = strings.TrimSpace(resposta)
	if resposta == "" {
		return domain.NovaValidationError("resposta", "a resposta não pode ser vazia")
	}

	if err := is.interacaoRepository.Responder(ctx, interacaoID, resposta); err != nil {
		return fmt.Errorf("InteractionService.Responder - interacao (%d): %w", interacaoID, err)
	}

	return nil
}
