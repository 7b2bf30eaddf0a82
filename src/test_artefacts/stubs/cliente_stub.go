package stubs

import (
	"portalnoticias/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ClienteStub struct {
	cliente entities.Cliente
}

func NewClienteStub() ClienteStub {
	cliente := entities.Cliente{
		ID:       gofakeit.Int64(),
		Nome:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Senha:    gofakeit.Password(true, true, true, false, false, 12),
		Telefone: gofakeit.Phone(),
		Cidade:   gofakeit.City(),
		Admin:    false,
	}

	return ClienteStub{cliente: cliente}
}

func (cs ClienteStub) WithNome(nome string) ClienteStub {
	cs.cliente.Nome = nome
	return cs
}

func (cs ClienteStub) WithEmail(email string) ClienteStub {
	cs.cliente.Email = email
	return cs
}

func (cs ClienteStub) AsAdmin() ClienteStub {
	cs.cliente.Admin = true
	return cs
}

func (cs ClienteStub) Get() entities.Cliente {
	return cs.cliente
}
