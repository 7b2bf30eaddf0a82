package server

import "net/http"

// EstatisticasDashboard agrega os números do painel administrativo.
// A autorização (somente admin) é decidida no serviço.
func (s *Server) EstatisticasDashboard(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	stats, err := s.dashboardService.Estatisticas(r.Context(), ator)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

// EventosDashboard lista a trilha de auditoria das decisões de
// moderação, mais recentes primeiro.
func (s *Server) EventosDashboard(w http.ResponseWriter, r *http.Request) {
	ator, ok := s.exigeAtor(w, r)
	if !ok {
		return
	}

	eventos, err := s.dashboardService.TrilhaAuditoria(r.Context(), ator)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, eventos)
}
