package server

import "net/http"

// ListarCategorias alimenta o dropdown de categoria do formulário de
// submissão de notícias.
func (s *Server) ListarCategorias(w http.ResponseWriter, r *http.Request) {
	categorias, err := s.moderationService.ListarCategorias(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, categorias)
}
