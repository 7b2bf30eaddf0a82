package repositories

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardQueryRepository computa as estatísticas do dashboard
// varrendo o banco a cada chamada. Não há materialização incremental:
// a transação repeatable read garante que todos os números saem do
// mesmo snapshot e fecham entre si.
type DashboardQueryRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardQueryRepository(pool *pgxpool.Pool) *DashboardQueryRepository {
	return &DashboardQueryRepository{pool: pool}
}

func (dqr *DashboardQueryRepository) Estatisticas(ctx context.Context, dias int, limiteRecentes int) (*domain.Estatisticas, error) {
	tx, err := dqr.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.Estatisticas - begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	stats := &domain.Estatisticas{}

	statusQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pendente'),
			COUNT(*) FILTER (WHERE status = 'aprovada'),
			COUNT(*) FILTER (WHERE status = 'rejeitada')
		FROM noticias`

	err = tx.QueryRow(ctx, statusQuery).Scan(
		&stats.TotalNoticias,
		&stats.NoticiasPendentes,
		&stats.NoticiasAprovadas,
		&stats.NoticiasRejeitadas,
	)
	if err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.Estatisticas - status counts failed: %w", err)
	}

	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`).Scan(&stats.TotalClientes); err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.Estatisticas - clientes count failed: %w", err)
	}

	interacoesQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE tipo = 'curtida'),
			COUNT(*) FILTER (WHERE tipo = 'comentario')
		FROM interacoes`

	err = tx.QueryRow(ctx, interacoesQuery).Scan(
		&stats.TotalInteracoes,
		&stats.TotalCurtidas,
		&stats.TotalComentarios,
	)
	if err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.Estatisticas - interacoes counts failed: %w", err)
	}

	stats.NoticiasPorCategoria, err = dqr.noticiasPorCategoria(ctx, tx)
	if err != nil {
		return nil, err
	}

	stats.NoticiasRecentes, err = dqr.noticiasRecentes(ctx, tx, limiteRecentes)
	if err != nil {
		return nil, err
	}

	stats.InteracoesPorDia, err = dqr.interacoesPorDia(ctx, tx, dias)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Categorias sem notícia nenhuma ficam de fora; as demais contam
// notícias de qualquer status (visão administrativa).
func (dqr *DashboardQueryRepository) noticiasPorCategoria(ctx context.Context, tx pgx.Tx) ([]domain.CategoriaTotal, error) {
	query := `
		SELECT c.nome, COUNT(n.id)
		FROM noticias n
		JOIN categorias c ON c.id = n.categoria_id
		GROUP BY c.nome
		ORDER BY COUNT(n.id) DESC, c.nome ASC`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.noticiasPorCategoria - query failed: %w", err)
	}
	defer rows.Close()

	totais := make([]domain.CategoriaTotal, 0)
	for rows.Next() {
		var item domain.CategoriaTotal
		if err := rows.Scan(&item.Categoria, &item.Total); err != nil {
			return nil, fmt.Errorf("DashboardQueryRepository.noticiasPorCategoria - scan failed: %w", err)
		}
		totais = append(totais, item)
	}

	return totais, rows.Err()
}

func (dqr *DashboardQueryRepository) noticiasRecentes(ctx context.Context, tx pgx.Tx, limite int) ([]domain.NoticiaRecente, error) {
	query := `
		SELECT n.id, n.titulo, n.status, n.data_publicacao, c.nome, cl.nome
		FROM noticias n
		JOIN categorias c ON c.id = n.categoria_id
		JOIN clientes cl ON cl.id = n.cliente_id
		ORDER BY n.data_publicacao DESC, n.id DESC
		LIMIT $1`

	rows, err := tx.Query(ctx, query, limite)
	if err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.noticiasRecentes - query failed: %w", err)
	}
	defer rows.Close()

	recentes := make([]domain.NoticiaRecente, 0)
	for rows.Next() {
		var item domain.NoticiaRecente
		err := rows.Scan(
			&item.ID,
			&item.Titulo,
			&item.Status,
			&item.DataPublicacao,
			&item.Categoria.Nome,
			&item.Cliente.Nome,
		)
		if err != nil {
			return nil, fmt.Errorf("DashboardQueryRepository.noticiasRecentes - scan failed: %w", err)
		}
		recentes = append(recentes, item)
	}

	return recentes, rows.Err()
}

// interacoesPorDia cobre os últimos N dias de calendário terminando
// hoje, inclusive. O generate_series preenche com zero os dias sem
// interação para o eixo do gráfico não ter buracos.
func (dqr *DashboardQueryRepository) interacoesPorDia(ctx context.Context, tx pgx.Tx, dias int) ([]domain.InteracoesDia, error) {
	query := `
		SELECT d.dia::date, COUNT(i.id)
		FROM generate_series(CURRENT_DATE - ($1::int - 1), CURRENT_DATE, '1 day') AS d(dia)
		LEFT JOIN interacoes i ON i.data::date = d.dia::date
		GROUP BY d.dia
		ORDER BY d.dia ASC`

	rows, err := tx.Query(ctx, query, dias)
	if err != nil {
		return nil, fmt.Errorf("DashboardQueryRepository.interacoesPorDia - query failed: %w", err)
	}
	defer rows.Close()

	serie := make([]domain.InteracoesDia, 0, dias)
	for rows.Next() {
		var ponto domain.InteracoesDia
		if err := rows.Scan(&ponto.Dia, &ponto.Total); err != nil {
			return nil, fmt.Errorf("DashboardQueryRepository.interacoesPorDia - scan failed: %w", err)
		}
		serie = append(serie, ponto)
	}

	return serie, rows.Err()
}
