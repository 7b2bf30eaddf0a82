package entities

import "time"

type StatusNoticia string

const (
	StatusPendente  StatusNoticia = "pendente"
	StatusAprovada  StatusNoticia = "aprovada"
	StatusRejeitada StatusNoticia = "rejeitada"
)

// Valido reporta se o status é um dos três valores conhecidos.
// O domínio nunca compara status por string solta.
func (s StatusNoticia) Valido() bool {
	switch s {
	case StatusPendente, StatusAprovada, StatusRejeitada:
		return true
	}
	return false
}

// Noticia é o "nó" central do domínio: um artigo submetido por um
// cliente e sujeito à moderação de um administrador.
type Noticia struct {
	ID       int64  `json:"id"`
	Titulo   string `json:"titulo"`
	Resumo   string `json:"resumo"`
	Conteudo string `json:"conteudo"`
	// URL da imagem de capa. Validada na submissão (http/https e
	// extensão de imagem reconhecida), nunca armazenada como binário.
	ImagemURL string `json:"imagemUrl"`
	// Nome de exibição do autor, texto livre. Pode divergir do nome
	// do cliente dono da notícia.
	Autor       string        `json:"autor"`
	CategoriaID int64         `json:"categoria_id"`
	ClienteID   int64         `json:"cliente_id"`
	Status      StatusNoticia `json:"status"`
	// Preenchido exatamente quando Status = rejeitada.
	MotivoRejeicao string    `json:"motivoRejeicao,omitempty"`
	DataPublicacao time.Time `json:"dataPublicacao"`
	Visualizacoes  uint64    `json:"visualizacoes"`
	// Campo derivado: igual ao número de interações do tipo curtida
	// apontando para esta notícia. Nunca é escrito diretamente.
	Curtidas uint64 `json:"curtidas"`
}
