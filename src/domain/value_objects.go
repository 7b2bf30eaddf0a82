package domain

import (
	"errors"
	"fmt"
	"time"

	"portalnoticias/src/domain/entities"
)

var (
	ErrNotFound            = errors.New("registro não encontrado")
	ErrForbidden           = errors.New("cliente não tem permissão para esta operação")
	ErrInvalidTransition   = errors.New("operação não permitida no status atual da notícia")
	ErrValidation          = errors.New("dados inválidos")
	ErrConstraintViolation = errors.New("operação violaria uma restrição de integridade")

	ErrUnavailableServer = errors.New("Ops, algo inesperado aconteceu. Tente novamente mais tarde.")
)

// ValidationError aponta o campo ofensor para a camada de
// apresentação poder montar a mensagem ao usuário.
type ValidationError struct {
	Campo    string
	Mensagem string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Campo, e.Mensagem)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NovaValidationError(campo string, mensagem string) error {
	return &ValidationError{Campo: campo, Mensagem: mensagem}
}

// ############################################################
// ############  IDENTIDADE AUTENTICADA  ######################
// ############################################################

// Ator é a identidade autenticada que o colaborador de sessão entrega
// ao domínio. Toda operação que exige autorização recebe um Ator
// explícito; nunca há "cliente logado" ambiente.
type Ator struct {
	ID    int64
	Admin bool
}

// ############################################################
// ############  COMANDOS DE ESCRITA  #########################
// ############################################################

// SubmeterNoticiaRequest é o comando de submissão de uma notícia.
// A notícia nasce sempre com status pendente.
type SubmeterNoticiaRequest struct {
	Titulo      string
	Resumo      string
	Conteudo    string
	ImagemURL   string
	Autor       string
	CategoriaID int64
	ClienteID   int64
}

// ############################################################
// ############  PROJEÇÕES DE LEITURA  ########################
// ############################################################

// NoticiaDetalhes junta a notícia com a categoria resolvida e as
// interações (cada uma com o nome do cliente autor).
type NoticiaDetalhes struct {
	entities.Noticia
	Categoria  entities.Categoria
	Interacoes []InteracaoComCliente
}

type InteracaoComCliente struct {
	entities.Interacao
	ClienteNome string
}

// InteracaoComNoticia é a visão da área do cliente: cada interação
// acompanhada de um resumo da notícia alvo.
type InteracaoComNoticia struct {
	entities.Interacao
	NoticiaTitulo string
	NoticiaStatus entities.StatusNoticia
}

// ############################################################
// ############  ESTATÍSTICAS DO DASHBOARD  ###################
// ############################################################

// Estatisticas é o agregado completo do dashboard administrativo,
// recomputado por chamada a partir de um único snapshot do banco.
type Estatisticas struct {
	TotalNoticias      int64 `json:"totalNoticias"`
	NoticiasPendentes  int64 `json:"noticiasPendentes"`
	NoticiasAprovadas  int64 `json:"noticiasAprovadas"`
	NoticiasRejeitadas int64 `json:"noticiasRejeitadas"`
	TotalClientes      int64 `json:"totalClientes"`
	TotalInteracoes    int64 `json:"totalInteracoes"`
	TotalCurtidas      int64 `json:"totalCurtidas"`
	TotalComentarios   int64 `json:"totalComentarios"`

	NoticiasPorCategoria []CategoriaTotal `json:"noticiasPorCategoria"`
	NoticiasRecentes     []NoticiaRecente `json:"noticiasRecentes"`
	InteracoesPorDia     []InteracoesDia  `json:"interacoesPorDia"`
}

type CategoriaTotal struct {
	Categoria string `json:"categoria"`
	Total     int64  `json:"total"`
}

// NomeRef é a forma desnormalizada {"nome": ...} que o dashboard
// consome para categoria e cliente.
type NomeRef struct {
	Nome string `json:"nome"`
}

type NoticiaRecente struct {
	ID             int64                  `json:"id"`
	Titulo         string                 `json:"titulo"`
	Status         entities.StatusNoticia `json:"status"`
	DataPublicacao time.Time              `json:"dataPublicacao"`
	Categoria      NomeRef                `json:"categoria"`
	Cliente        NomeRef                `json:"cliente"`
}

// InteracoesDia é um ponto da série diária. Dias sem interação
// aparecem com total zero para o gráfico não ter buracos no eixo.
type InteracoesDia struct {
	Dia   time.Time `json:"dia"`
	Total int64     `json:"total"`
}
