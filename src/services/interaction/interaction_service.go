package interaction

import (
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/events"
)

// InteractionService registra curtidas, comentários e avaliações
// contra notícias aprovadas e mantém o contador derivado de curtidas.
type InteractionService struct {
	interacaoRepository *repositories.InteracaoRepository
	publisher           *events.Publisher
}

func NewInteractionService(
	interacaoRepository *repositories.InteracaoRepository,
	publisher *events.Publisher,
) *InteractionService {
	return &InteractionService{
		interacaoRepository: interacaoRepository,
		publisher:           publisher,
	}
}
