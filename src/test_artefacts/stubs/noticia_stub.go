package stubs

import (
	"fmt"
	"time"

	"portalnoticias/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type NoticiaStub struct {
	noticia entities.Noticia
}

func NewNoticiaStub() NoticiaStub {
	now := time.Now().UTC()

	noticia := entities.Noticia{
		ID:             gofakeit.Int64(),
		Titulo:         gofakeit.Sentence(6),
		Resumo:         gofakeit.Sentence(12),
		Conteudo:       gofakeit.Paragraph(3, 4, 12, " "),
		ImagemURL:      fmt.Sprintf("https://cdn.example.com/%s.jpg", gofakeit.UUID()),
		Autor:          gofakeit.Name(),
		Status:         entities.StatusPendente,
		DataPublicacao: now,
	}

	return NoticiaStub{noticia: noticia}
}

func (ns NoticiaStub) WithTitulo(titulo string) NoticiaStub {
	ns.noticia.Titulo = titulo
	return ns
}

func (ns NoticiaStub) WithClienteID(clienteID int64) NoticiaStub {
	ns.noticia.ClienteID = clienteID
	return ns
}

func (ns NoticiaStub) WithCategoriaID(categoriaID int64) NoticiaStub {
	ns.noticia.CategoriaID = categoriaID
	return ns
}

func (ns NoticiaStub) WithStatus(status entities.StatusNoticia) NoticiaStub {
	ns.noticia.Status = status
	return ns
}

func (ns NoticiaStub) Aprovada() NoticiaStub {
	ns.noticia.Status = entities.StatusAprovada
	return ns
}

func (ns NoticiaStub) Rejeitada(motivo string) NoticiaStub {
	ns.noticia.Status = entities.StatusRejeitada
	ns.noticia.MotivoRejeicao = motivo
	return ns
}

func (ns NoticiaStub) Get() entities.Noticia {
	return ns.noticia
}
