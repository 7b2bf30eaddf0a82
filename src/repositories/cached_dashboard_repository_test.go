package repositories_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"portalnoticias/src/domain/entities"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/infra/redis"
	"portalnoticias/src/repositories"
	"portalnoticias/src/test_artefacts/stubs"
	"portalnoticias/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("CachedDashboardRepository", func() {
	var (
		pool        *pgxpool.Pool
		seeder      test_seeder.TestSeeder
		redisClient *redis.RedisClient
		cachedRepo  *repositories.CachedDashboardRepository
		ctx         context.Context
		err         error

		cliente   entities.Cliente
		categoria entities.Categoria
	)

	dbHost := env.MustGetString("TEST_DB_HOST")
	dbPort := env.GetString("TEST_DB_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	redisAddr := env.MustGetString("TEST_REDIS_HOSTS")
	redisPoolSize := env.GetInt("TEST_REDIS_POOL_SIZE", 10)
	redisTTL := env.GetInt("TEST_REDIS_TTL_SECONDS", 60)

	inserirAprovada := func() {
		noticia := stubs.NewNoticiaStub().
			WithClienteID(cliente.ID).
			WithCategoriaID(categoria.ID).
			Aprovada().
			Get()
		seeder.InsertNoticia(ctx, &noticia)
	}

	// O write-back do cache é assíncrono: espera a chave aparecer no
	// prefixo de teste antes de seguir.
	esperarCachePopulado := func() {
		Eventually(func() ([]string, error) {
			return redisClient.KeysByPrefix(ctx)
		}).WithTimeout(2 * time.Second).WithPolling(20 * time.Millisecond).ShouldNot(BeEmpty())
	}

	BeforeEach(func() {
		ctx = context.Background()

		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		// Prefixo isola o keyspace do teste do de qualquer outro uso
		// do mesmo redis.
		redisClient = redis.NewRedisClient(redisAddr, redisPoolSize, time.Duration(redisTTL)*time.Second).WithPrefix("test:")
		Expect(redisClient.FlushByPrefix(ctx)).To(Succeed())

		dashboardQueryRepository := repositories.NewDashboardQueryRepository(pool)
		cachedRepo = repositories.NewCachedDashboardRepository(dashboardQueryRepository, redisClient)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)

		cliente = stubs.NewClienteStub().Get()
		seeder.InsertCliente(ctx, &cliente)

		categoria = entities.Categoria{Nome: "Esportes"}
		seeder.InsertCategoria(ctx, &categoria)
	})

	AfterEach(func() {
		redisClient.FlushByPrefix(ctx)
		pool.Close()
	})

	Context("cache-aside over the stats query", func() {
		When("the stats were already computed once", func() {
			It("should serve the cached snapshot instead of recomputing", func() {
				// ARRANGE
				inserirAprovada()

				primeira, err := cachedRepo.Estatisticas(ctx, 7, 5)
				Expect(err).ToNot(HaveOccurred())
				Expect(primeira.TotalNoticias).To(Equal(int64(1)))

				esperarCachePopulado()
				inserirAprovada()

				// ACT
				segunda, err := cachedRepo.Estatisticas(ctx, 7, 5)

				// ASSERT
				Expect(err).ToNot(HaveOccurred())
				Expect(segunda.TotalNoticias).To(Equal(int64(1)))
			})
		})

		When("the prefixed keys are flushed", func() {
			It("should recompute from the database", func() {
				// ARRANGE
				inserirAprovada()

				_, err := cachedRepo.Estatisticas(ctx, 7, 5)
				Expect(err).ToNot(HaveOccurred())

				esperarCachePopulado()
				inserirAprovada()

				// ACT
				Expect(redisClient.FlushByPrefix(ctx)).To(Succeed())
				recomputada, err := cachedRepo.Estatisticas(ctx, 7, 5)

				// ASSERT
				Expect(err).ToNot(HaveOccurred())
				Expect(recomputada.TotalNoticias).To(Equal(int64(2)))
			})
		})
	})
})
