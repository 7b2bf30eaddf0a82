package entities

import "time"

type TipoInteracao string

const (
	TipoCurtida    TipoInteracao = "curtida"
	TipoComentario TipoInteracao = "comentario"
	TipoAvaliacao  TipoInteracao = "avaliacao"
)

func (t TipoInteracao) Valido() bool {
	switch t {
	case TipoCurtida, TipoComentario, TipoAvaliacao:
		return true
	}
	return false
}

// Interacao é uma curtida, comentário ou avaliação que um cliente
// anexa a uma notícia aprovada. Imutável após a criação, exceto a
// resposta do administrador.
type Interacao struct {
	ID   int64         `json:"id"`
	Tipo TipoInteracao `json:"tipo"`
	// Texto do comentário. Obrigatório quando Tipo = comentario.
	Conteudo string `json:"conteudo,omitempty"`
	// Nota de 1 a 5. Obrigatória quando Tipo = avaliacao.
	Nota int       `json:"nota,omitempty"`
	Data time.Time `json:"data"`
	// Resposta do administrador a um comentário, preenchida depois.
	Resposta  string `json:"resposta,omitempty"`
	ClienteID int64  `json:"cliente_id"`
	NoticiaID int64  `json:"noticia_id"`
}
