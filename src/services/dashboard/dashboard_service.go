package dashboard

import (
	"context"
	"fmt"

	"portalnoticias/src/domain"
	"portalnoticias/src/repositories"
)

const (
	// Janela padrão da série diária: hoje e os 6 dias anteriores.
	DiasSerie = 7
	// Quantas notícias aparecem no feed de recentes do dashboard.
	LimiteRecentes = 5
	// Quantos eventos a trilha de auditoria devolve por chamada.
	LimiteTrilha = 50
)

// DashboardService expõe as estatísticas administrativas. É só
// leitura: uma função pura do conteúdo atual do banco, recomputada a
// cada chamada (com cache-aside opcional na frente).
type DashboardService struct {
	cachedDashboardRepository *repositories.CachedDashboardRepository
	eventoRepository          *repositories.EventoRepository
}

func NewDashboardService(
	cachedDashboardRepository *repositories.CachedDashboardRepository,
	eventoRepository *repositories.EventoRepository,
) *DashboardService {
	return &DashboardService{
		cachedDashboardRepository: cachedDashboardRepository,
		eventoRepository:          eventoRepository,
	}
}

// Estatisticas é restrita a administradores, seguindo a política do
// painel: não-admin recebe Forbidden.
func (ds *DashboardService) Estatisticas(ctx context.Context, ator domain.Ator) (*domain.Estatisticas, error) {
	if !ator.Admin {
		return nil, fmt.Errorf("DashboardService.Estatisticas - cliente (%d) não é administrador: %w", ator.ID, domain.ErrForbidden)
	}

	stats, err := ds.cachedDashboardRepository.Estatisticas(ctx, DiasSerie, LimiteRecentes)
	if err != nil {
		return nil, fmt.Errorf("DashboardService.Estatisticas - %w", err)
	}

	return stats, nil
}

// TrilhaAuditoria devolve as decisões de moderação mais recentes,
// gravadas pelo consumidor de eventos. Também restrita ao painel
// administrativo.
func (ds *DashboardService) TrilhaAuditoria(ctx context.Context, ator domain.Ator) ([]domain.EventoModeracao, error) {
	if !ator.Admin {
		return nil, fmt.Errorf("DashboardService.TrilhaAuditoria - cliente (%d) não é administrador: %w", ator.ID, domain.ErrForbidden)
	}

	eventos, err := ds.eventoRepository.ListarRecentes(ctx, LimiteTrilha)
	if err != nil {
		return nil, fmt.Errorf("DashboardService.TrilhaAuditoria - %w", err)
	}

	return eventos, nil
}
