package server

import (
	"net/http"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// CriarInteracao atende o POST único do front: o campo tipo decide se
// é curtida, comentário ou avaliação.
func (s *Server) CriarInteracao(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	var request criarInteracaoRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		interacao *entities.Interacao
		err       error
	)

	switch entities.TipoInteracao(request.Tipo) {
	case entities.TipoCurtida:
		interacao, err = s.interactionService.Curtir(r.Context(), request.NoticiaID, ator.ID)
	case entities.TipoComentario:
		interacao, err = s.interactionService.Comentar(r.Context(), request.NoticiaID, ator.ID, request.Conteudo)
	case entities.TipoAvaliacao:
		interacao, err = s.interactionService.Avaliar(r.Context(), request.NoticiaID, ator.ID, request.Nota)
	default:
		err = domain.NovaValidationError("tipo", "deve ser curtida, comentario ou avaliacao")
	}

	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, interacao)
}

func (s *Server) ResponderInteracao(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var request responderInteracaoRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.interactionService.Responder(r.Context(), id, ator, request.Resposta); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListarInteracoesDoCliente(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	clienteID, err := pathID(r, "clienteId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if !ator.Admin && ator.ID != clienteID {
		s.writeError(w, domain.ErrForbidden)
		return
	}

	itens, err := s.interactionService.ListarPorCliente(r.Context(), clienteID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, mapInteracoesComNoticia(itens))
}
