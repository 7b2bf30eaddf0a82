package server

import (
	"net/http"
	"strings"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// CriarCliente é a borda com o colaborador de identidade: o cadastro
// chega pronto (senha já opaca) e só é persistido. Hash, login e
// sessão não são responsabilidade deste serviço.
func (s *Server) CriarCliente(w http.ResponseWriter, r *http.Request) {
	var request criarClienteRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	if strings.TrimSpace(request.Nome) == "" {
		s.writeError(w, domain.NovaValidationError("nome", "é obrigatório"))
		return
	}
	if strings.TrimSpace(request.Email) == "" {
		s.writeError(w, domain.NovaValidationError("email", "é obrigatório"))
		return
	}
	if request.Senha == "" {
		s.writeError(w, domain.NovaValidationError("senha", "é obrigatória"))
		return
	}

	cliente := &entities.Cliente{
		Nome:     strings.TrimSpace(request.Nome),
		Email:    strings.TrimSpace(request.Email),
		Senha:    request.Senha,
		Telefone: request.Telefone,
		Cidade:   request.Cidade,
	}

	if err := s.clienteRepository.Criar(r.Context(), cliente); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, cliente)
}

func (s *Server) BuscarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	cliente, err := s.clienteRepository.BuscarPorID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// A senha nunca sai na resposta (tag json:"-").
	s.writeJSON(w, http.StatusOK, cliente)
}
