package repositories

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventoRepository grava a trilha de auditoria alimentada pelo
// consumidor de eventos de moderação. Só append, nunca update.
type EventoRepository struct {
	pool *pgxpool.Pool
}

func NewEventoRepository(pool *pgxpool.Pool) *EventoRepository {
	return &EventoRepository{pool: pool}
}

// Registrar insere o evento de forma idempotente: reentrega do kafka
// com o mesmo evento_id não duplica linha.
func (er *EventoRepository) Registrar(ctx context.Context, evento *domain.EventoModeracao) error {
	query := `
		INSERT INTO eventos_moderacao (evento_id, tipo, noticia_id, cliente_id, detalhe, ocorrido_em)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (evento_id) DO NOTHING`

	_, err := er.pool.Exec(ctx, query,
		evento.EventoID,
		evento.Tipo,
		evento.NoticiaID,
		evento.AtorID,
		evento.Detalhe,
		evento.OcorridoEm,
	)
	if err != nil {
		return fmt.Errorf("EventoRepository.Registrar - insert failed: %w", err)
	}

	return nil
}

func (er *EventoRepository) ListarRecentes(ctx context.Context, limite int) ([]domain.EventoModeracao, error) {
	query := `
		SELECT evento_id, tipo, noticia_id, cliente_id, COALESCE(detalhe, ''), ocorrido_em
		FROM eventos_moderacao
		ORDER BY ocorrido_em DESC
		LIMIT $1`

	rows, err := er.pool.Query(ctx, query, limite)
	if err != nil {
		return nil, fmt.Errorf("EventoRepository.ListarRecentes - query failed: %w", err)
	}
	defer rows.Close()

	eventos := make([]domain.EventoModeracao, 0)
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
			return nil, fmt.Errorf("EventoRepository.ListarRecentes - scan failed: %w", err)
		}
		eventos = append(eventos, evento)
	}

	return eventos, rows.Err()
}
