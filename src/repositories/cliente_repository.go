package repositories

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
	"portalnoticias/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClienteRepository struct {
	pool *pgxpool.Pool
}

func NewClienteRepository(pool *pgxpool.Pool) *ClienteRepository {
	return &ClienteRepository{pool: pool}
}

// Criar insere um cliente vindo do colaborador de identidade. A senha
// chega opaca e é armazenada como veio.
func (cr *ClienteRepository) Criar(ctx context.Context, cliente *entities.Cliente) error {
	query := `
		INSERT INTO clientes (nome, email, senha, telefone, cidade, admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := cr.pool.QueryRow(ctx, query,
		cliente.Nome,
		cliente.Email,
		cliente.Senha,
		cliente.Telefone,
		cliente.Cidade,
		cliente.Admin,
	).Scan(&cliente.ID)

	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("ClienteRepository.Criar - email (%s) já cadastrado: %w", cliente.Email, domain.ErrConstraintViolation)
		}
		return fmt.Errorf("ClienteRepository.Criar - insert failed: %w", err)
	}

	return nil
}

func (cr *ClienteRepository) BuscarPorID(ctx context.Context, id int64) (*entities.Cliente, error) {
	query := `
		SELECT id, nome, email, senha, telefone, cidade, admin
		FROM clientes
		WHERE id = $1`

	var cliente entities.Cliente
	err := cr.pool.QueryRow(ctx, query, id).Scan(
		&cliente.ID,
		&cliente.Nome,
		&cliente.Email,
		&cliente.Senha,
		&cliente.Telefone,
		&cliente.Cidade,
		&cliente.Admin,
	)

	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("ClienteRepository.BuscarPorID - cliente (%d): %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ClienteRepository.BuscarPorID - query failed: %w", err)
	}

	return &cliente, nil
}
