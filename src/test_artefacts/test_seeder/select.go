package test_seeder

import (
	"context"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// SelectNoticiaByID reads a noticia back with its current status and
// counters, for asserting on state transitions
func (ts TestSeeder) SelectNoticiaByID(ctx context.Context, id int64) (*entities.Noticia, error) {
	query := `
		SELECT id, titulo, resumo, conteudo, imagem_url, autor, categoria_id, cliente_id, status, COALESCE(motivo_rejeicao, ''), data_publicacao, visualizacoes, curtidas
		FROM noticias WHERE id = $1`

	var noticia entities.Noticia
	err := ts.pool.QueryRow(ctx, query, id).Scan(
		&noticia.ID,
		&noticia.Titulo,
		&noticia.Resumo,
		&noticia.Conteudo,
		&noticia.ImagemURL,
		&noticia.Autor,
		&noticia.CategoriaID,
		&noticia.ClienteID,
		&noticia.Status,
		&noticia.MotivoRejeicao,
		&noticia.DataPublicacao,
		&noticia.Visualizacoes,
		&noticia.Curtidas,
	)
	if err != nil {
		return nil, err
	}

	return &noticia, nil
}

// SelectInteracoesByNoticiaID retrieves all interacoes attached to a
// noticia, in insertion order
func (ts TestSeeder) SelectInteracoesByNoticiaID(ctx context.Context, noticiaID int64) ([]entities.Interacao, error) {
	query := `
		SELECT id, tipo, COALESCE(conteudo, ''), COALESCE(nota, 0), data, COALESCE(resposta, ''), cliente_id, noticia_id
		FROM interacoes WHERE noticia_id = $1
		ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, noticiaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interacoes []entities.Interacao
	for rows.Next() {
		var interacao entities.Interacao
		err := rows.Scan(
			&interacao.ID,
			&interacao.Tipo,
			&interacao.Conteudo,
			&interacao.Nota,
			&interacao.Data,
			&interacao.Resposta,
			&interacao.ClienteID,
			&interacao.NoticiaID,
		)
		if err != nil {
			return nil, err
		}
		interacoes = append(interacoes, interacao)
	}

	return interacoes, rows.Err()
}

// SelectEventosByNoticiaID retrieves the audit trail rows written by
// the moderation events consumer for a noticia
func (ts TestSeeder) SelectEventosByNoticiaID(ctx context.Context, noticiaID int64) ([]domain.EventoModeracao, error) {
	query := `
		SELECT evento_id, tipo, noticia_id, cliente_id, COALESCE(detalhe, ''), ocorrido_em
		FROM eventos_moderacao WHERE noticia_id = $1
		ORDER BY ocorrido_em`

	rows, err := ts.pool.Query(ctx, query, noticiaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eventos []domain.EventoModeracao
	for rows.Next() {
		var evento domain.EventoModeracao
		err := rows.Scan(
			&evento.EventoID,
			&evento.Tipo,
			&evento.NoticiaID,
			&evento.AtorID,
			&evento.Detalhe,
			&evento.OcorridoEm,
		)
		if err != nil {
			return nil, err
		}
		eventos = append(eventos, evento)
	}

	return eventos, rows.Err()
}
