package moderation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// Mesma regra do formulário de submissão: http/https e extensão de
// imagem reconhecida no fim do caminho.
var imagemURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp|gif)$`)

// SubmeterNoticia cria a notícia com status pendente. Toda notícia
// nasce pendente; só o administrador a move dali.
func (ms *ModerationService) SubmeterNoticia(ctx context.Context, request domain.SubmeterNoticiaRequest) (*entities.Noticia, error) {
	if err := ms.validarSubmissao(ctx, request); err != nil {
		return nil, err
	}

	noticia := &entities.Noticia{
		Titulo:      strings.TrimSpace(request.Titulo),
		Resumo:      strings.TrimSpace(request.Resumo),
		Conteudo:    strings.TrimSpace(request.Conteudo),
		ImagemURL:   strings.TrimSpace(request.ImagemURL),
		Autor:       strings.TrimSpace(request.Autor),
		CategoriaID: request.CategoriaID,
		ClienteID:   request.ClienteID,
	}

	if err := ms.noticiaRepository.Criar(ctx, noticia); err != nil {
		return nil, fmt.Errorf("ModerationService.SubmeterNoticia - failed to create noticia: %w", err)
	}

	ms.publisher.Publicar(ctx, domain.EventoNoticiaSubmetida, noticia.ID, request.ClienteID, noticia.Titulo)

	return noticia, nil
}

func (ms *ModerationService) validarSubmissao(ctx context.Context, request domain.SubmeterNoticiaRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(request.Titulo)) < 5 {
		return domain.NovaValidationError("titulo", "deve ter pelo menos 5 caracteres")
	}

	if utf8.RuneCountInString(strings.TrimSpace(request.Resumo)) < 10 {
		return domain.NovaValidationError("resumo", "deve ter pelo menos 10 caracteres")
	}

	if utf8.RuneCountInString(strings.TrimSpace(request.Conteudo)) < 50 {
		return domain.NovaValidationError("conteudo", "deve ter pelo menos 50 caracteres")
	}

	if utf8.RuneCountInString(strings.TrimSpace(request.Autor)) < 2 {
		return domain.NovaValidationError("autor", "deve ter pelo menos 2 caracteres")
	}

	if !imagemURLPattern.MatchString(strings.TrimSpace(request.ImagemURL)) {
		return domain.NovaValidationError("imagemUrl", "deve ser uma URL de imagem válida")
	}

	if _, err := ms.categoriaRepository.BuscarPorID(ctx, request.CategoriaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NovaValidationError("categoria_id", "categoria não encontrada")
		}
		return fmt.Errorf("ModerationService.validarSubmissao - categoria lookup failed: %w", err)
	}

	return nil
}
