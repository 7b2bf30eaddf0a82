package moderation_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"portalnoticias/src/domain/entities"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/moderation"
	"portalnoticias/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("ListarCategorias", func() {
	var (
		pool              *pgxpool.Pool
		seeder            test_seeder.TestSeeder
		moderationService *moderation.ModerationService
		ctx               context.Context
		err               error
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

		noticiaRepository := repositories.NewNoticiaRepository(pool)
		categoriaRepository := repositories.NewCategoriaRepository(pool)
		moderationService = moderation.NewModerationService(noticiaRepository, categoriaRepository, nil)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		pool.Close()
	})

	Context("with no categorias cadastradas", func() {
		When("listing the reference data", func() {
			It("should return an empty list", func() {
				// ACT
				categorias, err := moderationService.ListarCategorias(ctx)

				// ASSERT
				Expect(err).ToNot(HaveOccurred())
				Expect(categorias).To(BeEmpty())
			})
		})
	})

	Context("with categorias cadastradas", func() {
		When("listing the reference data", func() {
			It("should return every categoria in alphabetical order", func() {
				// ARRANGE
				for _, nome := range []string{"Política", "Esportes", "Cultura"} {
					categoria := entities.Categoria{Nome: nome}
					seeder.InsertCategoria(ctx, &categoria)
				}

				// ACT
				categorias, err := moderationService.ListarCategorias(ctx)

				// ASSERT
				Expect(err).ToNot(HaveOccurred())
				Expect(categorias).To(HaveLen(3))
				Expect(categorias[0].Nome).To(Equal("Cultura"))
				Expect(categorias[1].Nome).To(Equal("Esportes"))
				Expect(categorias[2].Nome).To(Equal("Política"))
			})
		})
	})
})
