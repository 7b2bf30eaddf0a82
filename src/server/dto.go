package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
)

// DTOs de entrada. O decode rejeita campos desconhecidos: payload
// malformado vira ValidationError na borda em vez de undefined
// escorrendo para dentro do domínio.

type criarClienteRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Telefone string `json:"telefone"`
	Cidade   string `json:"cidade"`
}

type submeterNoticiaRequest struct {
	Titulo      string `json:"titulo"`
	Resumo      string `json:"resumo"`
	Conteudo    string `json:"conteudo"`
	ImagemURL   string `json:"imagemUrl"`
	Autor       string `json:"autor"`
	CategoriaID int64  `json:"categoria_id"`
}

type rejeitarNoticiaRequest struct {
	Motivo string `json:"motivo"`
}

type criarInteracaoRequest struct {
	Tipo      string `json:"tipo"`
	NoticiaID int64  `json:"noticia_id"`
	Conteudo  string `json:"conteudo"`
	Nota      int    `json:"nota"`
}

type responderInteracaoRequest struct {
	Resposta string `json:"resposta"`
}

// DTOs de saída, no formato que as telas consomem: categoria e
// cliente desnormalizados como {"nome": ...}.

type noticiaDetalhesResponse struct {
	entities.Noticia
	Categoria  entities.Categoria  `json:"categoria"`
	Interacoes []interacaoResponse `json:"interacoes"`
}

type interacaoResponse struct {
	entities.Interacao
	Cliente domain.NomeRef `json:"cliente"`
}

type interacaoComNoticiaResponse struct {
	entities.Interacao
	Noticia noticiaResumoResponse `json:"noticia"`
}

type noticiaResumoResponse struct {
	Titulo string                 `json:"titulo"`
	Status entities.StatusNoticia `json:"status"`
}

func mapNoticiaDetalhes(detalhes *domain.NoticiaDetalhes) noticiaDetalhesResponse {
	response := noticiaDetalhesResponse{
		Noticia:    detalhes.Noticia,
		Categoria:  detalhes.Categoria,
		Interacoes: make([]interacaoResponse, 0, len(detalhes.Interacoes)),
	}

	for _, item := range detalhes.Interacoes {
		response.Interacoes = append(response.Interacoes, interacaoResponse{
			Interacao: item.Interacao,
			Cliente:   domain.NomeRef{Nome: item.ClienteNome},
		})
	}

	return response
}

func mapInteracoesComNoticia(itens []domain.InteracaoComNoticia) []interacaoComNoticiaResponse {
	response := make([]interacaoComNoticiaResponse, 0, len(itens))
	for _, item := range itens {
		response = append(response, interacaoComNoticiaResponse{
			Interacao: item.Interacao,
			Noticia: noticiaResumoResponse{
				Titulo: item.NoticiaTitulo,
				Status: item.NoticiaStatus,
			},
		})
	}
	return response
}

func decodeJSON(r *http.Request, destino any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(destino); err != nil {
		return domain.NovaValidationError("body", fmt.Sprintf("JSON inválido: %v", err))
	}

	return nil
}

func pathID(r *http.Request, nome string) (int64, error) {
	valor := r.PathValue(nome)
	id, err := strconv.ParseInt(valor, 10, 64)
	if err != nil {
		return 0, domain.NovaValidationError(nome, "deve ser um id numérico")
	}
	return id, nil
}

// writeError traduz o erro de domínio em status HTTP. Todo erro chega
// com contexto suficiente (campo ofensor ou estado atual) para a UI
// montar a mensagem.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrConstraintViolation):
		status = http.StatusUnprocessableEntity
	default:
		log.Printf("ERROR: unexpected error: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"erro": domain.ErrUnavailableServer.Error()})
		return
	}

	mensagem := err.Error()

	// A ValidationError embutida é a mensagem que interessa à UI, sem
	// o prefixo de contexto interno acumulado pelos wraps.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		mensagem = validationErr.Error()
	}

	s.writeJSON(w, status, map[string]string{"erro": mensagem})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}
