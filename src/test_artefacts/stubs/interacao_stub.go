package stubs

import (
	"time"

	"portalnoticias/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type InteracaoStub struct {
	interacao entities.Interacao
}

func NewInteracaoStub() InteracaoStub {
	interacao := entities.Interacao{
		ID:   gofakeit.Int64(),
		Tipo: entities.TipoCurtida,
		Data: time.Now().UTC(),
	}

	return InteracaoStub{interacao: interacao}
}

func (is InteracaoStub) Comentario(conteudo string) InteracaoStub {
	is.interacao.Tipo = entities.TipoComentario
	is.interacao.Conteudo = conteudo
	return is
}

func (is InteracaoStub) Avaliacao(nota int) InteracaoStub {
	is.interacao.Tipo = entities.TipoAvaliacao
	is.interacao.Nota = nota
	return is
}

func (is InteracaoStub) WithClienteID(clienteID int64) InteracaoStub {
	is.interacao.ClienteID = clienteID
	return is
}

func (is InteracaoStub) WithNoticiaID(noticiaID int64) InteracaoStub {
	is.interacao.NoticiaID = noticiaID
	return is
}

func (is InteracaoStub) Get() entities.Interacao {
	return is.interacao
}
