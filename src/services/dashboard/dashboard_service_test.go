package dashboard_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"portalnoticias/src/domain"
	"portalnoticias/src/domain/entities"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/dashboard"
	"portalnoticias/src/test_artefacts/stubs"
	"portalnoticias/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("Estatisticas", func() {
	var (
		pool             *pgxpool.Pool
		seeder           test_seeder.TestSeeder
		dashboardService *dashboard.DashboardService
		eventoRepository *repositories.EventoRepository
		ctx              context.Context
		err              error

		atorAdmin domain.Ator
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

		dashboardQueryRepository := repositories.NewDashboardQueryRepository(pool)
		// Sem redis: o cache-aside vira passthrough e cada chamada
		// recomputa do banco, que é o que os asserts precisam.
		cachedDashboardRepository := repositories.NewCachedDashboardRepository(dashboardQueryRepository, nil)
		eventoRepository = repositories.NewEventoRepository(pool)
		dashboardService = dashboard.NewDashboardService(cachedDashboardRepository, eventoRepository)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)

		admin := stubs.NewClienteStub().AsAdmin().Get()
		seeder.InsertCliente(ctx, &admin)

		atorAdmin = domain.Ator{ID: admin.ID, Admin: true}
	})

	AfterEach(func() {
		pool.Close()
	})

	Context("authorization", func() {
		When("a non-admin requests the stats", func() {
			It("should return forbidden", func() {
				// ACT
				stats, err := dashboardService.Estatisticas(ctx, domain.Ator{ID: 42})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrForbidden))
				Expect(stats).To(BeNil())
			})
		})
	})

	Context("empty store", func() {
		When("only the admin cliente exists", func() {
			It("should return zeroed counters and a zero-filled daily series", func() {
				// ACT
				stats, err := dashboardService.Estatisticas(ctx, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.TotalNoticias).To(BeZero())
				Expect(stats.NoticiasPendentes).To(BeZero())
				Expect(stats.NoticiasAprovadas).To(BeZero())
				Expect(stats.NoticiasRejeitadas).To(BeZero())
				Expect(stats.TotalClientes).To(Equal(int64(1)))
				Expect(stats.TotalInteracoes).To(BeZero())

				Expect(stats.NoticiasPorCategoria).To(BeEmpty())
				Expect(stats.NoticiasRecentes).To(BeEmpty())

				Expect(stats.InteracoesPorDia).To(HaveLen(dashboard.DiasSerie))
				for _, ponto := range stats.InteracoesPorDia {
					Expect(ponto.Total).To(BeZero())
				}
			})
		})
	})

	Context("populated store", func() {
		var (
			autor    entities.Cliente
			politica entities.Categoria
			esportes entities.Categoria
		)

		BeforeEach(func() {
			autor = stubs.NewClienteStub().Get()
			seeder.InsertCliente(ctx, &autor)

			politica = entities.Categoria{Nome: "Política"}
			seeder.InsertCategoria(ctx, &politica)

			esportes = entities.Categoria{Nome: "Esportes"}
			seeder.InsertCategoria(ctx, &esportes)
		})

		When("noticias exist in every status", func() {
			It("should count them per status and per categoria across all statuses", func() {
				// ARRANGE
				aprovada := stubs.NewNoticiaStub().WithClienteID(autor.ID).WithCategoriaID(politica.ID).Aprovada().Get()
				seeder.InsertNoticia(ctx, &aprovada)

				pendente := stubs.NewNoticiaStub().WithClienteID(autor.ID).WithCategoriaID(politica.ID).Get()
				seeder.InsertNoticia(ctx, &pendente)

				rejeitada := stubs.NewNoticiaStub().WithClienteID(autor.ID).WithCategoriaID(esportes.ID).Rejeitada("Sem fonte").Get()
				seeder.InsertNoticia(ctx, &rejeitada)

				// ACT
				stats, err := dashboardService.Estatisticas(ctx, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.TotalNoticias).To(Equal(int64(3)))
				Expect(stats.NoticiasPendentes).To(Equal(int64(1)))
				Expect(stats.NoticiasAprovadas).To(Equal(int64(1)))
				Expect(stats.NoticiasRejeitadas).To(Equal(int64(1)))
				Expect(stats.TotalClientes).To(Equal(int64(2)))

				Expect(stats.NoticiasPorCategoria).To(ConsistOf(
					domain.CategoriaTotal{Categoria: "Política", Total: 2},
					domain.CategoriaTotal{Categoria: "Esportes", Total: 1},
				))

				// A soma por categoria fecha com o total geral
				var soma int64
				for _, item := range stats.NoticiasPorCategoria {
					soma += item.Total
				}
				Expect(soma).To(Equal(stats.TotalNoticias))
			})
		})

		When("interacoes of each tipo exist", func() {
			It("should break the totals down by tipo", func() {
				// ARRANGE
				noticia := stubs.NewNoticiaStub().WithClienteID(autor.ID).WithCategoriaID(politica.ID).Aprovada().Get()
				seeder.InsertNoticia(ctx, &noticia)

				curtida := stubs.NewInteracaoStub().WithClienteID(autor.ID).WithNoticiaID(noticia.ID).Get()
				seeder.InsertInteracao(ctx, &curtida)

				comentario := stubs.NewInteracaoStub().Comentario("Ótima matéria").WithClienteID(autor.ID).WithNoticiaID(noticia.ID).Get()
				seeder.InsertInteracao(ctx, &comentario)

				avaliacao := stubs.NewInteracaoStub().Avaliacao(5).WithClienteID(autor.ID).WithNoticiaID(noticia.ID).Get()
				seeder.InsertInteracao(ctx, &avaliacao)

				// ACT
				stats, err := dashboardService.Estatisticas(ctx, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.TotalInteracoes).To(Equal(int64(3)))
				Expect(stats.TotalCurtidas).To(Equal(int64(1)))
				Expect(stats.TotalComentarios).To(Equal(int64(1)))
			})
		})

		When("interacoes happened today and inside the window", func() {
			It("should place them on the right days of the series", func() {
				// ARRANGE
				noticia := stubs.NewNoticiaStub().WithClienteID(autor.ID).WithCategoriaID(politica.ID).Aprovada().Get()
				seeder.InsertNoticia(ctx, &noticia)

				hoje := stubs.NewInteracaoStub().WithClienteID(autor.ID).WithNoticiaID(noticia.ID).Get()
				seeder.InsertInteracao(ctx, &hoje)

				outraHoje := stubs.NewInteracaoStub().WithClienteID(autor.ID).WithNoticiaID(noticia.ID).Get()
				seeder.InsertInteracao(ctx, &outraHoje)

				// ACT
				stats, err := dashboardService.Estatisticas(ctx, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.InteracoesPorDia).To(HaveLen(dashboard.DiasSerie))

				ultimo := stats.InteracoesPorDia[len(stats.InteracoesPorDia)-1]
				Expect(ultimo.Total).To(Equal(int64(2)))

				var somaSerie int64
				for _, ponto := range stats.InteracoesPorDia {
					somaSerie += ponto.Total
				}
				Expect(somaSerie).To(Equal(stats.TotalInteracoes))
			})
		})

		When("more noticias exist than the recent feed limit", func() {
			It("should cap the feed and order it by publication date descending", func() {
				// ARRANGE
				agora := time.Now().UTC()
				var maisRecente entities.Noticia

				for i := 0; i < dashboard.LimiteRecentes+2; i++ {
					noticia := stubs.NewNoticiaStub().
						WithTitulo(fmt.Sprintf("Notícia número %d desta série", i)).
						WithClienteID(autor.ID).
						WithCategoriaID(politica.ID).
						Aprovada().
						Get()
					noticia.DataPublicacao = agora.Add(-time.Duration(i) * time.Hour)
					seeder.InsertNoticia(ctx, &noticia)

					if i == 0 {
						maisRecente = noticia
					}
				}

				// ACT
				stats, err := dashboardService.Estatisticas(ctx, atorAdmin)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.NoticiasRecentes).To(HaveLen(dashboard.LimiteRecentes))
				Expect(stats.NoticiasRecentes[0].ID).To(Equal(maisRecente.ID))
				Expect(stats.NoticiasRecentes[0].Categoria.Nome).To(Equal("Política"))
				Expect(stats.NoticiasRecentes[0].Cliente.Nome).To(Equal(autor.Nome))
			})
		})
	})
})
