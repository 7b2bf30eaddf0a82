package repositories

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
	"portalnoticias/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NoticiaRepository struct {
	pool *pgxpool.Pool
}

func NewNoticiaRepository(pool *pgxpool.Pool) *NoticiaRepository {
	return &NoticiaRepository{pool: pool}
}

const noticiaColumns = `id, titulo, resumo, conteudo, imagem_url, autor, categoria_id, cliente_id, status, COALESCE(motivo_rejeicao, ''), data_publicacao, visualizacoes, curtidas`

func scanNoticia(row interface{ Scan(...any) error }) (*entities.Noticia, error) {
	var noticia entities.Noticia
	err := row.Scan(
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

// Criar insere a notícia já com status pendente. A validação de campos
// acontece no serviço de moderação; aqui só as restrições de
// integridade do banco.
func (nr *NoticiaRepository) Criar(ctx context.Context, noticia *entities.Noticia) error {
	query := `
		INSERT INTO noticias (titulo, resumo, conteudo, imagem_url, autor, categoria_id, cliente_id, status, data_publicacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, data_publicacao`

	err := nr.pool.QueryRow(ctx, query,
		noticia.Titulo,
		noticia.Resumo,
		noticia.Conteudo,
		noticia.ImagemURL,
		noticia.Autor,
		noticia.CategoriaID,
		noticia.ClienteID,
		entities.StatusPendente,
	).Scan(&noticia.ID, &noticia.DataPublicacao)

	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("NoticiaRepository.Criar - categoria (%d) ou cliente (%d) inexistente: %w",
				noticia.CategoriaID, noticia.ClienteID, domain.ErrConstraintViolation)
		}
		return fmt.Errorf("NoticiaRepository.Criar - insert failed: %w", err)
	}

	noticia.Status = entities.StatusPendente
	return nil
}

func (nr *NoticiaRepository) BuscarPorID(ctx context.Context, id int64) (*entities.Noticia, error) {
	query := `SELECT ` + noticiaColumns + ` FROM noticias WHERE id = $1`

	noticia, err := scanNoticia(nr.pool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("NoticiaRepository.BuscarPorID - noticia (%d): %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("NoticiaRepository.BuscarPorID - query failed: %w", err)
	}

	return noticia, nil
}

// BuscarDetalhes monta a projeção da tela de detalhes: notícia,
// categoria resolvida e interações em ordem de criação com o nome de
// quem interagiu.
func (nr *NoticiaRepository) BuscarDetalhes(ctx context.Context, id int64) (*domain.NoticiaDetalhes, error) {
	noticia, err := nr.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	detalhes := &domain.NoticiaDetalhes{Noticia: *noticia}

	categoriaQuery := `SELECT id, nome FROM categorias WHERE id = $1`
	if err := nr.pool.QueryRow(ctx, categoriaQuery, noticia.CategoriaID).Scan(&detalhes.Categoria.ID, &detalhes.Categoria.Nome); err != nil {
		if !postgres.IsNoRows(err) {
			return nil, fmt.Errorf("NoticiaRepository.BuscarDetalhes - categoria query failed: %w", err)
		}
	}

	interacoesQuery := `
		SELECT i.id, i.tipo, COALESCE(i.conteudo, ''), COALESCE(i.nota, 0), i.data, COALESCE(i.resposta, ''), i.cliente_id, i.noticia_id, c.nome
		FROM interacoes i
		JOIN clientes c ON c.id = i.cliente_id
		WHERE i.noticia_id = $1
		ORDER BY i.data ASC, i.id ASC`

	rows, err := nr.pool.Query(ctx, interacoesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("NoticiaRepository.BuscarDetalhes - interacoes query failed: %w", err)
	}
	defer rows.Close()

	detalhes.Interacoes = make([]domain.InteracaoComCliente, 0)
	for rows.Next() {
		var item domain.InteracaoComCliente
		err := rows.Scan(
			&item.ID,
			&item.Tipo,
			&item.Conteudo,
			&item.Nota,
			&item.Data,
			&item.Resposta,
			&item.ClienteID,
			&item.NoticiaID,
			&item.ClienteNome,
		)
		if err != nil {
			return nil, fmt.Errorf("NoticiaRepository.BuscarDetalhes - interacoes scan failed: %w", err)
		}
		detalhes.Interacoes = append(detalhes.Interacoes, item)
	}

	return detalhes, rows.Err()
}

func (nr *NoticiaRepository) listar(ctx context.Context, where string, args ...any) ([]entities.Noticia, error) {
	query := `SELECT ` + noticiaColumns + ` FROM noticias ` + where

	rows, err := nr.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("NoticiaRepository.listar - query failed: %w", err)
	}
	defer rows.Close()

	noticias := make([]entities.Noticia, 0)
	for rows.Next() {
		noticia, err := scanNoticia(rows)
		if err != nil {
			return nil, fmt.Errorf("NoticiaRepository.listar - scan failed: %w", err)
		}
		noticias = append(noticias, *noticia)
	}

	return noticias, rows.Err()
}

func (nr *NoticiaRepository) ListarAprovadas(ctx context.Context) ([]entities.Noticia, error) {
	return nr.listar(ctx, `WHERE status = $1 ORDER BY data_publicacao DESC`, entities.StatusAprovada)
}

// PesquisarAprovadas faz busca por substring (sem ranking) em título e
// resumo, só entre notícias públicas.
func (nr *NoticiaRepository) PesquisarAprovadas(ctx context.Context, termo string) ([]entities.Noticia, error) {
	return nr.listar(ctx,
		`WHERE status = $1 AND (titulo ILIKE '%' || $2 || '%' OR resumo ILIKE '%' || $2 || '%') ORDER BY data_publicacao DESC`,
		entities.StatusAprovada, termo)
}

func (nr *NoticiaRepository) ListarDoCliente(ctx context.Context, clienteID int64) ([]entities.Noticia, error) {
	return nr.listar(ctx, `WHERE cliente_id = $1 ORDER BY data_publicacao DESC`, clienteID)
}

func (nr *NoticiaRepository) ListarPendentes(ctx context.Context) ([]entities.Noticia, error) {
	return nr.listar(ctx, `WHERE status = $1 ORDER BY data_publicacao ASC`, entities.StatusPendente)
}

// transicaoFalhou desambigua um UPDATE/DELETE de zero linhas: a notícia
// não existe (NotFound) ou existe em outro status (InvalidTransition).
func (nr *NoticiaRepository) transicaoFalhou(ctx context.Context, metodo string, id int64) error {
	var status entities.StatusNoticia
	err := nr.pool.QueryRow(ctx, `SELECT status FROM noticias WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if postgres.IsNoRows(err) {
			return fmt.Errorf("%s - noticia (%d): %w", metodo, id, domain.ErrNotFound)
		}
		return fmt.Errorf("%s - status query failed: %w", metodo, err)
	}

	return fmt.Errorf("%s - noticia (%d) está %s: %w", metodo, id, status, domain.ErrInvalidTransition)
}

// Aprovar move pendente -> aprovada e carimba a data de publicação.
// O guard de status no WHERE serializa decisões concorrentes: só uma
// transição sai do pendente.
func (nr *NoticiaRepository) Aprovar(ctx context.Context, id int64) (*entities.Noticia, error) {
	query := `
		UPDATE noticias
		SET status = $1, data_publicacao = NOW(), motivo_rejeicao = NULL
		WHERE id = $2 AND status = $3
		RETURNING ` + noticiaColumns

	noticia, err := scanNoticia(nr.pool.QueryRow(ctx, query, entities.StatusAprovada, id, entities.StatusPendente))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nr.transicaoFalhou(ctx, "NoticiaRepository.Aprovar", id)
		}
		return nil, fmt.Errorf("NoticiaRepository.Aprovar - update failed: %w", err)
	}

	return noticia, nil
}

// Rejeitar move pendente -> rejeitada guardando o motivo. O motivo já
// chega validado como não vazio pelo serviço.
func (nr *NoticiaRepository) Rejeitar(ctx context.Context, id int64, motivo string) (*entities.Noticia, error) {
	query := `
		UPDATE noticias
		SET status = $1, motivo_rejeicao = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + noticiaColumns

	noticia, err := scanNoticia(nr.pool.QueryRow(ctx, query, entities.StatusRejeitada, motivo, id, entities.StatusPendente))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nr.transicaoFalhou(ctx, "NoticiaRepository.Rejeitar", id)
		}
		return nil, fmt.Errorf("NoticiaRepository.Rejeitar - update failed: %w", err)
	}

	return noticia, nil
}

// Excluir remove a notícia, permitido só enquanto pendente. A checagem
// de dono/admin fica no serviço; o guard de status fica aqui para não
// haver janela entre a leitura e o DELETE.
func (nr *NoticiaRepository) Excluir(ctx context.Context, id int64) error {
	tag, err := nr.pool.Exec(ctx, `DELETE FROM noticias WHERE id = $1 AND status = $2`, id, entities.StatusPendente)
	if err != nil {
		return fmt.Errorf("NoticiaRepository.Excluir - delete failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nr.transicaoFalhou(ctx, "NoticiaRepository.Excluir", id)
	}

	return nil
}

// IncrementarVisualizacoes soma 1 view de forma atômica; incrementos
// concorrentes nunca se perdem. Notícia não pública não conta view.
func (nr *NoticiaRepository) IncrementarVisualizacoes(ctx context.Context, id int64) error {
	query := `
		UPDATE noticias
		SET visualizacoes = visualizacoes + 1
		WHERE id = $1 AND status = $2`

	tag, err := nr.pool.Exec(ctx, query, id, entities.StatusAprovada)
	if err != nil {
		return fmt.Errorf("NoticiaRepository.IncrementarVisualizacoes - update failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nr.transicaoFalhou(ctx, "NoticiaRepository.IncrementarVisualizacoes", id)
	}

	return nil
}
