package server

import (
	"errors"
	"log"
	"net/http"

	"portalnoticias/src/domain"
)

func (s *Server) ListarNoticias(w http.ResponseWriter, r *http.Request) {
	noticias, err := s.moderationService.ListarAprovadas(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, noticias)
}

// BuscarNoticia devolve os detalhes e conta uma visualização quando a
// notícia é pública. A falha do contador não derruba a leitura.
func (s *Server) BuscarNoticia(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	detalhes, err := s.moderationService.BuscarDetalhes(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.moderationService.RegistrarVisualizacao(r.Context(), id); err != nil {
		if !errors.Is(err, domain.ErrInvalidTransition) {
			log.Printf("ERROR: Failed to record view for noticia %d: %v", id, err)
		}
	} else {
		detalhes.Visualizacoes++
	}

	s.writeJSON(w, http.StatusOK, mapNoticiaDetalhes(detalhes))
}

func (s *Server) PesquisarNoticias(w http.ResponseWriter, r *http.Request) {
	noticias, err := s.moderationService.PesquisarNoticias(r.Context(), r.PathValue("termo"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, noticias)
}

func (s *Server) ListarMinhasNoticias(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	clienteID, err := pathID(r, "clienteId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Cada cliente só enxerga as próprias submissões; admin vê todas.
	if !ator.Admin && ator.ID != clienteID {
		s.writeError(w, domain.ErrForbidden)
		return
	}

	noticias, err := s.moderationService.ListarDoCliente(r.Context(), clienteID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, noticias)
}

func (s *Server) ListarPendentes(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	noticias, err := s.moderationService.ListarPendentes(r.Context(), ator)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, noticias)
}

func (s *Server) SubmeterNoticia(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	var request submeterNoticiaRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	noticia, err := s.moderationService.SubmeterNoticia(r.Context(), domain.SubmeterNoticiaRequest{
		Titulo:      request.Titulo,
		Resumo:      request.Resumo,
		Conteudo:    request.Conteudo,
		ImagemURL:   request.ImagemURL,
		Autor:       request.Autor,
		CategoriaID: request.CategoriaID,
		ClienteID:   ator.ID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, noticia)
}

func (s *Server) AprovarNoticia(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	noticia, err := s.moderationService.AprovarNoticia(r.Context(), id, ator)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, noticia)
}

func (s *Server) RejeitarNoticia(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var request rejeitarNoticiaRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	noticia, err := s.moderationService.RejeitarNoticia(r.Context(), id, ator, request.Motivo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, noticia)
}

func (s *Server) ExcluirNoticia(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.moderationService.ExcluirNoticia(r.Context(), id, ator); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
