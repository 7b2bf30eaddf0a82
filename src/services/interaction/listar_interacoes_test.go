package interaction_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"portalnoticias/src/domain/entities"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/interaction"
	"portalnoticias/src/test_artefacts/stubs"
	"portalnoticias/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("ListarInteracoes", func() {
	var (
		pool               *pgxpool.Pool
		seeder             test_seeder.TestSeeder
		interactionService *interaction.InteractionService
		ctx                context.Context
		err                error

		cliente   entities.Cliente
		categoria entities.Categoria
		noticia   entities.Noticia
	)

	dbHost := env.MustGetString("TEST_DB_HOST")
	dbPort := env.GetString("TEST_DB_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	BeforeEach(func() {
		ctx = context.Background()

		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		interacaoRepository := repositories.NewInteracaoRepository(pool)
		interactionService = interaction.NewInteractionService(interacaoRepository, nil)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)

		cliente = stubs.NewClienteStub().Get()
		seeder.InsertCliente(ctx, &cliente)

		categoria = entities.Categoria{Nome: "Cultura"}
		seeder.InsertCategoria(ctx, &categoria)

		noticia = stubs.NewNoticiaStub().
			WithClienteID(cliente.ID).
			WithCategoriaID(categoria.ID).
			Aprovada().
			Get()
		seeder.InsertNoticia(ctx, &noticia)
	})

	AfterEach(func() {
		pool.Close()
	})

	Context("ListarPorNoticia", func() {
		When("the noticia has no interacoes", func() {
			It("should return an empty list, not nil", func() {
				// ACT
				interacoes, err := interactionService.ListarPorNoticia(ctx, noticia.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(interacoes).NotTo(BeNil())
				Expect(interacoes).To(BeEmpty())
			})
		})

		When("interacoes were created at different moments", func() {
			It("should return them in ascending creation order", func() {
				// ARRANGE
				agora := time.Now().UTC()

				antiga := stubs.NewInteracaoStub().
					Comentario("Primeiro comentário").
					WithClienteID(cliente.ID).
					WithNoticiaID(noticia.ID).
					Get()
				antiga.Data = agora.Add(-2 * time.Hour)
				seeder.InsertInteracao(ctx, &antiga)

				recente := stubs.NewInteracaoStub().
					Comentario("Último comentário").
					WithClienteID(cliente.ID).
					WithNoticiaID(noticia.ID).
					Get()
				recente.Data = agora
				seeder.InsertInteracao(ctx, &recente)

				media := stubs.NewInteracaoStub().
					Avaliacao(5).
					WithClienteID(cliente.ID).
					WithNoticiaID(noticia.ID).
					Get()
				media.Data = agora.Add(-1 * time.Hour)
				seeder.InsertInteracao(ctx, &media)

				// ACT
				interacoes, err := interactionService.ListarPorNoticia(ctx, noticia.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(interacoes).To(HaveLen(3))
				Expect(interacoes[0].ID).To(Equal(antiga.ID))
				Expect(interacoes[1].ID).To(Equal(media.ID))
				Expect(interacoes[2].ID).To(Equal(recente.ID))
			})
		})
	})

	Context("ListarPorCliente", func() {
		When("the cliente interacted with multiple noticias", func() {
			It("should return most recent first with the noticia summary", func() {
				// ARRANGE
				outraNoticia := stubs.NewNoticiaStub().
					WithClienteID(cliente.ID).
					WithCategoriaID(categoria.ID).
					Aprovada().
					Get()
				seeder.InsertNoticia(ctx, &outraNoticia)

				agora := time.Now().UTC()

				antiga := stubs.NewInteracaoStub().
					Comentario("Comentário antigo").
					WithClienteID(cliente.ID).
					WithNoticiaID(noticia.ID).
					Get()
				antiga.Data = agora.Add(-1 * time.Hour)
				seeder.InsertInteracao(ctx, &antiga)

				recente := stubs.NewInteracaoStub().
					Avaliacao(3).
					WithClienteID(cliente.ID).
					WithNoticiaID(outraNoticia.ID).
					Get()
				recente.Data = agora
				seeder.InsertInteracao(ctx, &recente)

				// ACT
				itens, err := interactionService.ListarPorCliente(ctx, cliente.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(itens).To(HaveLen(2))
				Expect(itens[0].ID).To(Equal(recente.ID))
				Expect(itens[0].NoticiaTitulo).To(Equal(outraNoticia.Titulo))
				Expect(itens[0].NoticiaStatus).To(Equal(entities.StatusAprovada))
				Expect(itens[1].ID).To(Equal(antiga.ID))
				Expect(itens[1].NoticiaTitulo).To(Equal(noticia.Titulo))
			})
		})

		When("another cliente interacted too", func() {
			It("should only return the requested cliente's interacoes", func() {
				// ARRANGE
				outro := stubs.NewClienteStub().Get()
				seeder.InsertCliente(ctx, &outro)

				minha := stubs.NewInteracaoStub().
					WithClienteID(cliente.ID).
					WithNoticiaID(noticia.ID).
					Get()
				seeder.InsertInteracao(ctx, &minha)

				deleOutro := stubs.NewInteracaoStub().
					WithClienteID(outro.ID).
					WithNoticiaID(noticia.ID).
					Get()
				seeder.InsertInteracao(ctx, &deleOutro)

				// ACT
				itens, err := interactionService.ListarPorCliente(ctx, cliente.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(itens).To(HaveLen(1))
				Expect(itens[0].ID).To(Equal(minha.ID))
			})
		})
	})
})
