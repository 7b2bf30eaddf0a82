package moderation

import (
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/events"
)

// ModerationService governa a máquina de estados da notícia:
// pendente -> aprovada ou pendente -> rejeitada, ambos terminais.
// Nenhuma transição sai de aprovada/rejeitada nem volta a pendente.
type ModerationService struct {
	noticiaRepository   *repositories.NoticiaRepository
	categoriaRepository *repositories.CategoriaRepository
	publisher           *events.Publisher
}

func NewModerationService(
	noticiaRepository *repositories.NoticiaRepository,
	categoriaRepository *repositories.CategoriaRepository,
	publisher *events.Publisher,
) *ModerationService {
	return &ModerationService{
		noticiaRepository:   noticiaRepository,
		categoriaRepository: categoriaRepository,
		publisher:           publisher,
	}
}
