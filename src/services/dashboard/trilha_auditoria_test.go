package dashboard_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"portalnoticias/src/domain"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/repositories"
	"portalnoticias/src/services/dashboard"
	"portalnoticias/src/test_artefacts/stubs"
	"portalnoticias/src/test_artefacts/test_seeder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("TrilhaAuditoria", func() {
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

	registrarEvento := func(tipo string, noticiaID int64, ocorridoEm time.Time) domain.EventoModeracao {
		evento := domain.EventoModeracao{
			EventoID:   uuid.NewString(),
			Tipo:       tipo,
			NoticiaID:  noticiaID,
			AtorID:     atorAdmin.ID,
			OcorridoEm: ocorridoEm,
		}
		Expect(eventoRepository.Registrar(ctx, &evento)).To(Succeed())
		return evento
	}

	BeforeEach(func() {
		ctx = context.Background()

		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		dashboardQueryRepository := repositories.NewDashboardQueryRepository(pool)
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
		When("a non-admin requests the trail", func() {
			It("should return forbidden", func() {
				// ACT
				eventos, err := dashboardService.TrilhaAuditoria(ctx, domain.Ator{ID: 42})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrForbidden))
				Expect(eventos).To(BeNil())
			})
		})
	})

	Context("with no recorded decisions", func() {
		When("an admin requests the trail", func() {
			It("should return an empty list", func() {
				// ACT
				eventos, err := dashboardService.TrilhaAuditoria(ctx, atorAdmin)

				// ASSERT
				Expect(err).ToNot(HaveOccurred())
				Expect(eventos).To(BeEmpty())
			})
		})
	})

	Context("with recorded decisions", func() {
		When("an admin requests the trail", func() {
			It("should return the events most recent first", func() {
				// ARRANGE
				agora := time.Now().UTC()
				primeiro := registrarEvento(domain.EventoNoticiaSubmetida, 10, agora.Add(-2*time.Hour))
				segundo := registrarEvento(domain.EventoNoticiaAprovada, 10, agora.Add(-1*time.Hour))
				terceiro := registrarEvento(domain.EventoNoticiaRejeitada, 11, agora)

				// ACT
				eventos, err := dashboardService.TrilhaAuditoria(ctx, atorAdmin)

				// ASSERT
				Expect(err).ToNot(HaveOccurred())
				Expect(eventos).To(HaveLen(3))
				Expect(eventos[0].EventoID).To(Equal(terceiro.EventoID))
				Expect(eventos[1].EventoID).To(Equal(segundo.EventoID))
				Expect(eventos[2].EventoID).To(Equal(primeiro.EventoID))
				Expect(eventos[1].Tipo).To(Equal(domain.EventoNoticiaAprovada))
				Expect(eventos[1].AtorID).To(Equal(atorAdmin.ID))
			})
		})

		When("the same event is delivered twice", func() {
			It("should keep a single row per evento_id", func() {
				// ARRANGE
				evento := registrarEvento(domain.EventoNoticiaAprovada, 10, time.Now().UTC())

				// ACT
				Expect(eventoRepository.Registrar(ctx, &evento)).To(Succeed())

				// ASSERT
				persistidos, err := seeder.SelectEventosByNoticiaID(ctx, 10)
				Expect(err).ToNot(HaveOccurred())
				Expect(persistidos).To(HaveLen(1))
				Expect(persistidos[0].EventoID).To(Equal(evento.EventoID))

				eventos, err := dashboardService.TrilhaAuditoria(ctx, atorAdmin)
				Expect(err).ToNot(HaveOccurred())
				Expect(eventos).To(HaveLen(1))
			})
		})
	})
})
