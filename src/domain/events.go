package domain

import "time"

// Tipos de evento publicados no tópico de moderação. A chave da
// mensagem é o id da notícia, garantindo ordem por artigo.
const (
	EventoNoticiaSubmetida    = "noticia.submetida"
	EventoNoticiaAprovada     = "noticia.aprovada"
	EventoNoticiaRejeitada    = "noticia.rejeitada"
	EventoNoticiaExcluida     = "noticia.excluida"
	EventoInteracaoRegistrada = "interacao.registrada"
)

// EventoModeracao é o evento de domínio emitido após cada decisão de
// moderação ou interação registrada. Consumido pelo gravador de
// trilha de auditoria.
type EventoModeracao struct {
	EventoID   string    `json:"evento_id"`
	Tipo       string    `json:"tipo"`
	NoticiaID  int64     `json:"noticia_id"`
	AtorID     int64     `json:"ator_id"`
	Detalhe    string    `json:"detalhe,omitempty"`
	OcorridoEm time.Time `json:"ocorrido_em"`
}
