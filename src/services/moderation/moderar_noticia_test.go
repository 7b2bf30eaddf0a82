package moderation_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/moderation"
	"portalnoticias/src/test_artefacts/stubs"
	"portalnoticias/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("ModerarNoticia", func() {
	var (
		pool              *pgxpool.Pool
		seeder            test_seeder.TestSeeder
		moderationService *moderation.ModerationService
		ctx               context.Context
		err               error

		autor     entities.Cliente
		admin     entities.Cliente
		categoria entities.Categoria

		atorAutor domain.Ator
		atorAdmin domain.Ator
	)

	dbHost := env.MustGetString("TEST_DB_HOST")
	dbPort := env.GetString("TEST_DB_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	inserirPendente := func() entities.Noticia {
		noticia := stubs.NewNoticiaStub().
			WithClienteID(autor.ID).
			WithCategoriaID(categoria.ID).
			Get()
		seeder.InsertNoticia(ctx, &noticia)
		return noticia
	}

	BeforeEach(func() {
		ctx = context.Background()

		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		noticiaRepository := repositories.NewNoticiaRepository(pool)
		categoriaRepository := repositories.NewCategoriaRepository(pool)
		moderationService = moderation.NewModerationService(noticiaRepository, categoriaRepository, nil)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)

		autor = stubs.NewClienteStub().Get()
		seeder.InsertCliente(ctx, &autor)

		admin = stubs.NewClienteStub().AsAdmin().Get()
		seeder.InsertCliente(ctx, &admin)

		categoria = entities.Categoria{Nome: "Economia"}
		seeder.InsertCategoria(ctx, &categoria)

		atorAutor = domain.Ator{ID: autor.ID, Admin: false}
		atorAdmin = domain.Ator{ID: admin.ID, Admin: true}
	})

	AfterEach(func() {
		pool.Close()
	})

	Context("AprovarNoticia", func() {
		When("admin approves a pendente noticia", func() {
			It("should move it to aprovada", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				aprovada, err := moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(aprovada.Status).To(Equal(entities.StatusAprovada))

				persisted, err := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(persisted.Status).To(Equal(entities.StatusAprovada))
				Expect(persisted.MotivoRejeicao).To(BeEmpty())
			})
		})

		When("a non-admin tries to approve", func() {
			It("should return forbidden and leave the noticia pendente", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				_, err := moderationService.AprovarNoticia(ctx, noticia.ID, atorAutor)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrForbidden))

				persisted, _ := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(persisted.Status).To(Equal(entities.StatusPendente))
			})
		})

		When("the noticia does not exist", func() {
			It("should return not found", func() {
				// ACT
				_, err := moderationService.AprovarNoticia(ctx, 99999, atorAdmin)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrNotFound))
			})
		})

		When("the noticia was already approved", func() {
			It("should return invalid transition", func() {
				// ARRANGE
				noticia := inserirPendente()
				_, err := moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidTransition))
			})
		})

		When("the noticia was already rejected", func() {
			It("should return invalid transition and keep the rejection", func() {
				// ARRANGE
				noticia := inserirPendente()
				_, err := moderationService.RejeitarNoticia(ctx, noticia.ID, atorAdmin, "Sem fonte")
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidTransition))

				persisted, _ := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(persisted.Status).To(Equal(entities.StatusRejeitada))
				Expect(persisted.MotivoRejeicao).To(Equal("Sem fonte"))
			})
		})
	})

	Context("RejeitarNoticia", func() {
		When("admin rejects with a motivo", func() {
			It("should move it to rejeitada and record the motivo", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				rejeitada, err := moderationService.RejeitarNoticia(ctx, noticia.ID, atorAdmin, "Conteúdo sem fonte verificável")

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(rejeitada.Status).To(Equal(entities.StatusRejeitada))
				Expect(rejeitada.MotivoRejeicao).To(Equal("Conteúdo sem fonte verificável"))

				persisted, err := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(persisted.Status).To(Equal(entities.StatusRejeitada))
				Expect(persisted.MotivoRejeicao).To(Equal("Conteúdo sem fonte verificável"))
			})
		})

		When("the motivo is empty", func() {
			It("should return validation error and leave the noticia pendente", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				_, err := moderationService.RejeitarNoticia(ctx, noticia.ID, atorAdmin, "   ")

				// ASSERT
				Expect(err).To(MatchError(domain.ErrValidation))

				persisted, _ := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(persisted.Status).To(Equal(entities.StatusPendente))
				Expect(persisted.MotivoRejeicao).To(BeEmpty())
			})
		})

		When("a non-admin tries to reject", func() {
			It("should return forbidden", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				_, err := moderationService.RejeitarNoticia(ctx, noticia.ID, atorAutor, "Motivo qualquer")

				// ASSERT
				Expect(err).To(MatchError(domain.ErrForbidden))
			})
		})

		When("the noticia was already approved", func() {
			It("should return invalid transition", func() {
				// ARRANGE
				noticia := inserirPendente()
				_, err := moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = moderationService.RejeitarNoticia(ctx, noticia.ID, atorAdmin, "Tarde demais")

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidTransition))

				persisted, _ := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(persisted.Status).To(Equal(entities.StatusAprovada))
			})
		})
	})

	Context("ExcluirNoticia", func() {
		When("the owner deletes a pendente noticia", func() {
			It("should remove it", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				err := moderationService.ExcluirNoticia(ctx, noticia.ID, atorAutor)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				_, err = seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(err).To(HaveOccurred())
			})
		})

		When("an admin deletes someone else's pendente noticia", func() {
			It("should remove it", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				err := moderationService.ExcluirNoticia(ctx, noticia.ID, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
			})
		})

		When("another cliente tries to delete", func() {
			It("should return forbidden", func() {
				// ARRANGE
				noticia := inserirPendente()

				outro := stubs.NewClienteStub().Get()
				seeder.InsertCliente(ctx, &outro)

				// ACT
				err := moderationService.ExcluirNoticia(ctx, noticia.ID, domain.Ator{ID: outro.ID})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrForbidden))
			})
		})

		When("the noticia was already moderated", func() {
			It("should return invalid transition and keep the row", func() {
				// ARRANGE
				noticia := inserirPendente()
				_, err := moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)
				Expect(err).NotTo(HaveOccurred())

				// ACT
				err = moderationService.ExcluirNoticia(ctx, noticia.ID, atorAutor)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidTransition))

				persisted, selectErr := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(selectErr).NotTo(HaveOccurred())
				Expect(persisted.Status).To(Equal(entities.StatusAprovada))
			})
		})

		When("the noticia does not exist", func() {
			It("should return not found", func() {
				// ACT
				err := moderationService.ExcluirNoticia(ctx, 99999, atorAdmin)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrNotFound))
			})
		})
	})

	Context("RegistrarVisualizacao", func() {
		When("the noticia is aprovada", func() {
			It("should increment the counter once per call", func() {
				// ARRANGE
				noticia := inserirPendente()
				_, err := moderationService.AprovarNoticia(ctx, noticia.ID, atorAdmin)
				Expect(err).NotTo(HaveOccurred())

				// ACT
				Expect(moderationService.RegistrarVisualizacao(ctx, noticia.ID)).To(Succeed())
				Expect(moderationService.RegistrarVisualizacao(ctx, noticia.ID)).To(Succeed())

				// ASSERT
				persisted, err := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(persisted.Visualizacoes).To(Equal(uint64(2)))
			})
		})

		When("the noticia is still pendente", func() {
			It("should return invalid transition and not count", func() {
				// ARRANGE
				noticia := inserirPendente()

				// ACT
				err := moderationService.RegistrarVisualizacao(ctx, noticia.ID)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidTransition))

				persisted, _ := seeder.SelectNoticiaByID(ctx, noticia.ID)
				Expect(persisted.Visualizacoes).To(BeZero())
			})
		})

		When("the noticia does not exist", func() {
			It("should return not found", func() {
				// ACT
				err := moderationService.RegistrarVisualizacao(ctx, 99999)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrNotFound))
			})
		})
	})
})
