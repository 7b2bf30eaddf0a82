package repositories

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"portalnoticias/src/domain"
	"portalnoticias/src/infra/redis"
)

// CachedDashboardRepository põe um cache-aside na frente do cálculo de
// estatísticas. Erro de cache nunca derruba a chamada: cai no postgres
// e segue. Sem redis configurado (client nil) vira passthrough.
type CachedDashboardRepository struct {
	dashboardQueryRepository *DashboardQueryRepository
	redisClient              *redis.RedisClient
}

func NewCachedDashboardRepository(
	dashboardQueryRepository *DashboardQueryRepository,
	redisClient *redis.RedisClient,
) *CachedDashboardRepository {
	return &CachedDashboardRepository{
		dashboardQueryRepository: dashboardQueryRepository,
		redisClient:              redisClient,
	}
}

func (r *CachedDashboardRepository) Estatisticas(ctx context.Context, dias int, limiteRecentes int) (*domain.Estatisticas, error) {
	if r.redisClient == nil {
		return r.dashboardQueryRepository.Estatisticas(ctx, dias, limiteRecentes)
	}

	cacheKey := r.generateCacheKey(dias, limiteRecentes)

	cached, found, err := r.getFromCache(ctx, cacheKey)
	if found && err == nil {
		log.Printf("Cache HIT for key: %s", cacheKey)
		return cached, nil
	}

	if err != nil {
		// Loga o erro de cache mas continua no PostgreSQL
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	log.Printf("Cache MISS for key: %s", cacheKey)

	stats, err := r.dashboardQueryRepository.Estatisticas(ctx, dias, limiteRecentes)
	if err != nil {
		return nil, fmt.Errorf("postgres stats query failed: %w", err)
	}

	go func() {
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, stats)
	}()

	return stats, nil
}

// O dia corrente entra na chave: na virada de dia a série diária muda
// de janela e o cache antigo não serve mais.
func (r *CachedDashboardRepository) generateCacheKey(dias int, limiteRecentes int) string {
	keyData := fmt.Sprintf("stats:dias:%d:recentes:%d:hoje:%s",
		dias,
		limiteRecentes,
		time.Now().Format("2006-01-02"),
	)

	hash := md5.Sum([]byte(keyData))
	return fmt.Sprintf("dashboard:stats:%x", hash)
}

func (r *CachedDashboardRepository) getFromCache(ctx context.Context, cacheKey string) (*domain.Estatisticas, bool, error) {
	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if !found || err != nil {
		return nil, found, err
	}

	var stats domain.Estatisticas
	if err := json.Unmarshal([]byte(cachedJSON), &stats); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached stats: %w", err)
	}

	return &stats, true, nil
}

func (r *CachedDashboardRepository) setInCache(ctx context.Context, cacheKey string, stats *domain.Estatisticas) {
	payload, err := json.Marshal(stats)
	if err != nil {
		log.Printf("Failed to marshal stats for cache: %v", err)
		return
	}

	if err := r.redisClient.SetKey(ctx, cacheKey, string(payload)); err != nil {
		log.Printf("Failed to set stats cache for key %s: %v", cacheKey, err)
	}
}
