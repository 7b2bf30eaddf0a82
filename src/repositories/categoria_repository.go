package repositories

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
	"portalnoticias/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoriaRepository é somente leitura: categorias são dado de
// referência administrado fora deste serviço.
type CategoriaRepository struct {
	pool *pgxpool.Pool
}

func NewCategoriaRepository(pool *pgxpool.Pool) *CategoriaRepository {
	return &CategoriaRepository{pool: pool}
}

func (cr *CategoriaRepository) Listar(ctx context.Context) ([]entities.Categoria, error) {
	query := `SELECT id, nome FROM categorias ORDER BY nome`

	rows, err := cr.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CategoriaRepository.Listar - query failed: %w", err)
	}
	defer rows.Close()

	var categorias []entities.Categoria
	for rows.Next() {
		var categoria entities.Categoria
		if err := rows.Scan(&categoria.ID, &categoria.Nome); err != nil {
			return nil, fmt.Errorf("CategoriaRepository.Listar - scan failed: %w", err)
		}
		categorias = append(categorias, categoria)
	}

	return categorias, rows.Err()
}

func (cr *CategoriaRepository) BuscarPorID(ctx context.Context, id int64) (*entities.Categoria, error) {
	query := `SELECT id, nome FROM categorias WHERE id = $1`

	var categoria entities.Categoria
	err := cr.pool.QueryRow(ctx, query, id).Scan(&categoria.ID, &categoria.Nome)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("CategoriaRepository.BuscarPorID - categoria (%d): %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("CategoriaRepository.BuscarPorID - query failed: %w", err)
	}

	return &categoria, nil
}
