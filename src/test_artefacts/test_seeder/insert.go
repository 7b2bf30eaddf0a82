package test_seeder

import (
	"context"
	"fmt"

	"portalnoticias/src/domain/entities"
)

// InsertCliente inserts a cliente into the database for testing
func (ts TestSeeder) InsertCliente(ctx context.Context, cliente *entities.Cliente) {
	query := `
		INSERT INTO clientes (nome, email, senha, telefone, cidade, admin)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		cliente.Nome,
		cliente.Email,
		cliente.Senha,
		cliente.Telefone,
		cliente.Cidade,
		cliente.Admin,
	).Scan(&cliente.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertCliente failed: %v", err))
	}
}

// InsertCategoria inserts a categoria into the database for testing
func (ts TestSeeder) InsertCategoria(ctx context.Context, categoria *entities.Categoria) {
	query := `INSERT INTO categorias (nome) VALUES ($1) RETURNING id`

	err := ts.pool.QueryRow(ctx, query, categoria.Nome).Scan(&categoria.ID)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertCategoria failed: %v", err))
	}
}

// InsertNoticia inserts a noticia with its full state, including
// status and counters, bypassing the moderation state machine
func (ts TestSeeder) InsertNoticia(ctx context.Context, noticia *entities.Noticia) {
	query := `
		INSERT INTO noticias (titulo, resumo, conteudo, imagem_url, autor, categoria_id, cliente_id, status, motivo_rejeicao, data_publicacao, visualizacoes, curtidas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		noticia.Titulo,
		noticia.Resumo,
		noticia.Conteudo,
		noticia.ImagemURL,
		noticia.Autor,
		noticia.CategoriaID,
		noticia.ClienteID,
		noticia.Status,
		noticia.MotivoRejeicao,
		noticia.DataPublicacao,
		noticia.Visualizacoes,
		noticia.Curtidas,
	).Scan(&noticia.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertNoticia failed: %v", err))
	}
}

// InsertInteracao inserts an interacao directly, without the status
// guard the repository applies
func (ts TestSeeder) InsertInteracao(ctx context.Context, interacao *entities.Interacao) {
	query := `
		INSERT INTO interacoes (tipo, conteudo, nota, data, resposta, cliente_id, noticia_id)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, 0), $4, NULLIF($5, ''), $6, $7) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		interacao.Tipo,
		interacao.Conteudo,
		interacao.Nota,
		interacao.Data,
		interacao.Resposta,
		interacao.ClienteID,
		interacao.NoticiaID,
	).Scan(&interacao.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertInteracao failed: %v", err))
	}
}
