package server

import (
	"fmt"
	"net/http"
	"strconv"

	"portalnoticias/src/domain"
)

// atorDaRequisicao resolve a identidade autenticada do cabeçalho
// X-Cliente-ID contra a base de clientes. A sessão em si (login,
// token) é responsabilidade do colaborador de identidade; aqui só se
// consome o id autenticado e a flag de admin.
func (s *Server) atorDaRequisicao(r *http.Request) (domain.Ator, error) {
	header := r.Header.Get("X-Cliente-ID")
	if header == "" {
		return domain.Ator{}, fmt.Errorf("cabeçalho X-Cliente-ID ausente")
	}

	clienteID, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return domain.Ator{}, fmt.Errorf("cabeçalho X-Cliente-ID inválido")
	}

	cliente, err := s.clienteRepository.BuscarPorID(r.Context(), clienteID)
	if err != nil {
		return domain.Ator{}, fmt.Errorf("cliente não autenticado")
	}

	return domain.Ator{ID: cliente.ID, Admin: cliente.Admin}, nil
}

// exigeAtor escreve 401 e devolve false quando não há identidade.
func (s *Server) exigeAtor(w http.ResponseWriter, r *http.Request) (domain.Ator, bool) {
	ator, err := s.atorDaRequisicao(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{"erro": err.Error()})
		return domain.Ator{}, false
	}
	return ator, true
}
