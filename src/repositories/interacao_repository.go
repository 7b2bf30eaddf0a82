package repositories

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
	"portalnoticias/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InteracaoRepository struct {
	pool *pgxpool.Pool
}

func NewInteracaoRepository(pool *pgxpool.Pool) *InteracaoRepository {
	return &InteracaoRepository{pool: pool}
}

// interacaoInvalida desambigua uma criação que não afetou linha
// nenhuma: notícia inexistente ou fora do ar para interação.
func (ir *InteracaoRepository) interacaoInvalida(ctx context.Context, metodo string, noticiaID int64) error {
	var status entities.StatusNoticia
	err := ir.pool.QueryRow(ctx, `SELECT status FROM noticias WHERE id = $1`, noticiaID).Scan(&status)
	if err != nil {
		if postgres.IsNoRows(err) {
			return fmt.Errorf("%s - noticia (%d): %w", metodo, noticiaID, domain.ErrNotFound)
		}
		return fmt.Errorf("%s - status query failed: %w", metodo, err)
	}

	return fmt.Errorf("%s - noticia (%d) está %s: %w", metodo, noticiaID, status, domain.ErrInvalidTransition)
}

// CriarCurtida grava a interação e incrementa o contador derivado na
// mesma transação: ou os dois efeitos aparecem, ou nenhum. O UPDATE
// guardado por status trava a linha da notícia, então curtidas
// concorrentes serializam e nenhum incremento se perde.
func (ir *InteracaoRepository) CriarCurtida(ctx context.Context, noticiaID int64, clienteID int64) (*entities.Interacao, error) {
	tx, err := ir.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("InteracaoRepository.CriarCurtida - begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE noticias SET curtidas = curtidas + 1 WHERE id = $1 AND status = $2`,
		noticiaID, entities.StatusAprovada)
	if err != nil {
		return nil, fmt.Errorf("InteracaoRepository.CriarCurtida - counter update failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ir.interacaoInvalida(ctx, "InteracaoRepository.CriarCurtida", noticiaID)
	}

	interacao := &entities.Interacao{
		Tipo:      entities.TipoCurtida,
		ClienteID: clienteID,
		NoticiaID: noticiaID,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO interacoes (tipo, cliente_id, noticia_id, data) VALUES ($1, $2, $3, NOW()) RETURNING id, data`,
		entities.TipoCurtida, clienteID, noticiaID,
	).Scan(&interacao.ID, &interacao.Data)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("InteracaoRepository.CriarCurtida - cliente (%d) inexistente: %w", clienteID, domain.ErrConstraintViolation)
		}
		return nil, fmt.Errorf("InteracaoRepository.CriarCurtida - insert failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("InteracaoRepository.CriarCurtida - commit failed: %w", err)
	}

	return interacao, nil
}

// criarGuardada insere comentário ou avaliação com o guard de status
// embutido no INSERT...SELECT: não existe janela em que a notícia sai
// do ar entre a checagem e a escrita.
func (ir *InteracaoRepository) criarGuardada(ctx context.Context, metodo string, interacao *entities.Interacao) (*entities.Interacao, error) {
	query := `
		INSERT INTO interacoes (tipo, conteudo, nota, cliente_id, noticia_id, data)
		SELECT $1, $2, $3, $4, n.id, NOW()
		FROM noticias n
		WHERE n.id = $5 AND n.status = $6
		RETURNING id, data`

	err := ir.pool.QueryRow(ctx, query,
		interacao.Tipo,
		postgres.NewNullString(&interacao.Conteudo),
		postgres.NewNullInt(&interacao.Nota),
		interacao.ClienteID,
		interacao.NoticiaID,
		entities.StatusAprovada,
	).Scan(&interacao.ID, &interacao.Data)

	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ir.interacaoInvalida(ctx, metodo, interacao.NoticiaID)
		}
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s - cliente (%d) inexistente: %w", metodo, interacao.ClienteID, domain.ErrConstraintViolation)
		}
		return nil, fmt.Errorf("%s - insert failed: %w", metodo, err)
	}

	return interacao, nil
}

func (ir *InteracaoRepository) CriarComentario(ctx context.Context, noticiaID int64, clienteID int64, conteudo string) (*entities.Interacao, error) {
	interacao := &entities.Interacao{
		Tipo:      entities.TipoComentario,
		Conteudo:  conteudo,
		ClienteID: clienteID,
		NoticiaID: noticiaID,
	}
	return ir.criarGuardada(ctx, "InteracaoRepository.CriarComentario", interacao)
}

func (ir *InteracaoRepository) CriarAvaliacao(ctx context.Context, noticiaID int64, clienteID int64, nota int) (*entities.Interacao, error) {
	interacao := &entities.Interacao{
		Tipo:      entities.TipoAvaliacao,
		Nota:      nota,
		ClienteID: clienteID,
		NoticiaID: noticiaID,
	}
	return ir.criarGuardada(ctx, "InteracaoRepository.CriarAvaliacao", interacao)
}

// Responder grava a resposta do administrador em um comentário
// existente. Interações de outros tipos não aceitam resposta.
func (ir *InteracaoRepository) Responder(ctx context.Context, interacaoID int64, resposta string) error {
	tag, err := ir.pool.Exec(ctx,
		`UPDATE interacoes SET resposta = $1 WHERE id = $2 AND tipo = $3`,
		resposta, interacaoID, entities.TipoComentario)
	if err != nil {
		return fmt.Errorf("InteracaoRepository.Responder - update failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var tipo entities.TipoInteracao
		err := ir.pool.QueryRow(ctx, `SELECT tipo FROM interacoes WHERE id = $1`, interacaoID).Scan(&tipo)
		if err != nil {
			if postgres.IsNoRows(err) {
				return fmt.Errorf("InteracaoRepository.Responder - interacao (%d): %w", interacaoID, domain.ErrNotFound)
			}
			return fmt.Errorf("InteracaoRepository.Responder - tipo query failed: %w", err)
		}
		return fmt.Errorf("InteracaoRepository.Responder - interacao (%d) é %s, não comentário: %w", interacaoID, tipo, domain.ErrValidation)
	}

	return nil
}

func (ir *InteracaoRepository) BuscarPorID(ctx context.Context, id int64) (*entities.Interacao, error) {
	query := `
		SELECT id, tipo, COALESCE(conteudo, ''), COALESCE(nota, 0), data, COALESCE(resposta, ''), cliente_id, noticia_id
		FROM interacoes
		WHERE id = $1`

	var interacao entities.Interacao
	err := ir.pool.QueryRow(ctx, query, id).Scan(
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
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("InteracaoRepository.BuscarPorID - interacao (%d): %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("InteracaoRepository.BuscarPorID - query failed: %w", err)
	}

	return &interacao, nil
}

// ListarPorNoticia devolve as interações em ordem de criação
// ascendente. O desempate por id mantém a ordem estável quando duas
// interações caem no mesmo instante.
func (ir *InteracaoRepository) ListarPorNoticia(ctx context.Context, noticiaID int64) ([]entities.Interacao, error) {
	query := `
		SELECT id, tipo, COALESCE(conteudo, ''), COALESCE(nota, 0), data, COALESCE(resposta, ''), cliente_id, noticia_id
		FROM interacoes
		WHERE noticia_id = $1
		ORDER BY data ASC, id ASC`

	rows, err := ir.pool.Query(ctx, query, noticiaID)
	if err != nil {
		return nil, fmt.Errorf("InteracaoRepository.ListarPorNoticia - query failed: %w", err)
	}
	defer rows.Close()

	interacoes := make([]entities.Interacao, 0)
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
			return nil, fmt.Errorf("InteracaoRepository.ListarPorNoticia - scan failed: %w", err)
		}
		interacoes = append(interacoes, interacao)
	}

	return interacoes, rows.Err()
}

// ListarPorCliente é a visão da área do cliente: interações mais
// recentes primeiro, cada uma com o resumo da notícia alvo.
func (ir *InteracaoRepository) ListarPorCliente(ctx context.Context, clienteID int64) ([]domain.InteracaoComNoticia, error) {
	query := `
		SELECT i.id, i.tipo, COALESCE(i.conteudo, ''), COALESCE(i.nota, 0), i.data, COALESCE(i.resposta, ''), i.cliente_id, i.noticia_id, n.titulo, n.status
		FROM interacoes i
		JOIN noticias n ON n.id = i.noticia_id
		WHERE i.cliente_id = $1
		ORDER BY i.data DESC, i.id DESC`

	rows, err := ir.pool.Query(ctx, query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("InteracaoRepository.ListarPorCliente - query failed: %w", err)
	}
	defer rows.Close()

	itens := make([]domain.InteracaoComNoticia, 0)
	for rows.Next() {
		var item domain.InteracaoComNoticia
		err := rows.Scan(
			&item.ID,
			&item.Tipo,
			&item.Conteudo,
			&item.Nota,
			&item.Data,
			&item.Resposta,
			&item.ClienteID,
			&item.NoticiaID,
			&item.NoticiaTitulo,
			&item.NoticiaStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("InteracaoRepository.ListarPorCliente - scan failed: %w", err)
		}
		itens = append(itens, item)
	}

	return itens, rows.Err()
}
