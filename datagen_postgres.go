//go:build datagen_postgres
// +build datagen_postgres

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"portalnoticias/src/domain/entities"
	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DataBundle agrupa um cliente com suas notícias e as interações que
// outros clientes deixaram nelas. É a unidade que viaja pelo channel.
type DataBundle struct {
	Cliente    entities.Cliente
	Noticias   []entities.Noticia
	Interacoes map[int][]entities.Interacao // indexado pela posição da notícia no bundle
}

var categoriaNomes = []string{
	"Política", "Economia", "Esportes", "Tecnologia",
	"Cultura", "Saúde", "Educação", "Internacional",
}

var cidades = []string{
	"São Paulo", "Rio de Janeiro", "Belo Horizonte", "Curitiba",
	"Porto Alegre", "Recife", "Salvador", "Fortaleza", "Brasília",
}

var motivosRejeicao = []string{
	"Conteúdo sem fonte verificável",
	"Título sensacionalista",
	"Texto duplicado de outra submissão",
	"Imagem sem direito de uso",
	"Conteúdo fora da linha editorial",
}

var comentariosExemplo = []string{
	"Excelente apuração, parabéns à redação.",
	"Faltou ouvir o outro lado da história.",
	"Muito esclarecedor, obrigado por publicar.",
	"Essa informação procede? Qual a fonte?",
	"Compartilhei com todo mundo aqui de casa.",
	"Cobertura completa, como sempre.",
}

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_WRITE_HOST")
	dbPort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := 100
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	numClients := flag.Int("clients", -1, "Número de clientes a serem criados. Use -1 para infinito.")
	bulkSize := flag.Int("bulk-size", 500, "Bundles por transação")
	noticiasPerClient := flag.Int("noticias-per-client", 3, "Máximo de notícias por cliente")
	numConsumers := flag.Int("consumers", 8, "Workers de insert concorrentes")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	categoriaIDs, err := seedCategorias(ctx, db)
	if err != nil {
		log.Fatalf("Failed to seed categorias: %v", err)
	}

	chanSize := (*bulkSize) * (*numConsumers) * 2
	dataChan := make(chan DataBundle, chanSize)

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	// Métricas a cada 2 segundos
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed := atomic.LoadInt64(&totalProcessed)
				errors := atomic.LoadInt64(&totalErrors)
				elapsed := time.Since(startTime)
				rate := float64(processed) / elapsed.Seconds()

				fmt.Printf("📊 Processed: %d | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
					processed, errors, rate, elapsed.Round(time.Second))
			}
		}
	}()

	for i := 0; i < *numConsumers; i++ {
		wg.Add(1)
		go bulkConsumer(ctx, &wg, db, dataChan, *bulkSize, i+1, &totalProcessed, &totalErrors)
	}

	wg.Add(1)
	go producer(ctx, &wg, dataChan, *numClients, *noticiasPerClient, categoriaIDs)

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Shutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)
	errors := atomic.LoadInt64(&totalErrors)
	avgRate := float64(processed) / elapsed.Seconds()

	fmt.Printf("\n🏁 Seeding finished!\n")
	fmt.Printf("📊 Total processed: %d\n", processed)
	fmt.Printf("❌ Total errors: %d\n", errors)
	fmt.Printf("⏱️  Total time: %v\n", elapsed.Round(time.Second))
	fmt.Printf("🚀 Average rate: %.1f records/s\n", avgRate)
}

// seedCategorias garante o conjunto fixo de categorias e devolve os ids.
func seedCategorias(ctx context.Context, db *pgxpool.Pool) ([]int64, error) {
	for _, nome := range categoriaNomes {
		_, err := db.Exec(ctx,
			`INSERT INTO categorias (nome) VALUES ($1) ON CONFLICT (nome) DO NOTHING`, nome)
		if err != nil {
			return nil, err
		}
	}

	rows, err := db.Query(ctx, `SELECT id FROM categorias WHERE nome = ANY($1)`, categoriaNomes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func producer(ctx context.Context, wg *sync.WaitGroup, dataChan chan<- DataBundle, numClients, noticiasPerClient int, categoriaIDs []int64) {
	defer wg.Done()
	defer close(dataChan)

	isInfinite := numClients == -1
	clientCount := 0

	for isInfinite || clientCount < numClients {
		select {
		case <-ctx.Done():
			fmt.Println("Producer stopping.")
			return
		default:
			bundle := generateFakeBundle(noticiasPerClient, categoriaIDs)

			select {
			case dataChan <- bundle:
				clientCount++
				if clientCount%100 == 0 {
					fmt.Printf("Generated %d clients\n", clientCount)
				}
			case <-ctx.Done():
				return
			}

			// Micro-pausa apenas para evitar 100% CPU
			if clientCount%1000 == 0 {
				time.Sleep(10 * time.Millisecond)
			}
		}
	}
}

func bulkConsumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan DataBundle, bulkSize, consumerID int, totalProcessed, totalErrors *int64) {
	defer wg.Done()
	log.Printf("🚀 Consumer %d started", consumerID)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	bundles := make([]DataBundle, 0, bulkSize)

	flush := func(reason string) {
		if len(bundles) == 0 {
			return
		}
		if err := bulkInsert(ctx, db, bundles); err != nil {
			log.Printf("❌ Consumer %d: ERROR on %s: %v", consumerID, reason, err)
			atomic.AddInt64(totalErrors, 1)
		} else {
			atomic.AddInt64(totalProcessed, int64(len(bundles)))
		}
		bundles = make([]DataBundle, 0, bulkSize)
	}

	for {
		select {
		case b, ok := <-dataChan:
			if !ok {
				flush("final flush")
				log.Printf("✅ Consumer %d stopping.", consumerID)
				return
			}

			bundles = append(bundles, b)
			if len(bundles) >= bulkSize {
				flush("bulk insert")
			}

		case <-ticker.C:
			flush("ticker flush")

		case <-ctx.Done():
			log.Printf("🛑 Consumer %d received stop signal.", consumerID)
			return
		}
	}
}

func bulkInsert(ctx context.Context, db *pgxpool.Pool, bundles []DataBundle) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. INSERIR TODOS OS CLIENTES DE UMA VEZ
	nomes := make([]string, len(bundles))
	emails := make([]string, len(bundles))
	senhas := make([]string, len(bundles))
	telefones := make([]string, len(bundles))
	cidadesCol := make([]string, len(bundles))

	for i, b := range bundles {
		nomes[i] = b.Cliente.Nome
		emails[i] = b.Cliente.Email
		senhas[i] = b.Cliente.Senha
		telefones[i] = b.Cliente.Telefone
		cidadesCol[i] = b.Cliente.Cidade
	}

	clienteSQL := `
		INSERT INTO clientes (nome, email, senha, telefone, cidade, admin)
		SELECT unnest($1::text[]), unnest($2::text[]), unnest($3::text[]), unnest($4::text[]), unnest($5::text[]), false
		ON CONFLICT (email) DO NOTHING`

	if _, err := tx.Exec(ctx, clienteSQL, nomes, emails, senhas, telefones, cidadesCol); err != nil {
		return fmt.Errorf("failed to insert clientes: %w", err)
	}

	// 2. BUSCAR OS IDs PELO EMAIL
	clienteMap := make(map[string]int64, len(bundles))
	idRows, err := tx.Query(ctx, `SELECT id, email FROM clientes WHERE email = ANY($1)`, emails)
	if err != nil {
		return fmt.Errorf("failed to fetch cliente IDs: %w", err)
	}
	for idRows.Next() {
		var id int64
		var email string
		if err := idRows.Scan(&id, &email); err != nil {
			idRows.Close()
			return err
		}
		clienteMap[email] = id
	}
	idRows.Close()

	// 3. INSERIR NOTÍCIAS, UMA LINHA POR VEZ DENTRO DA TRANSAÇÃO
	// (precisamos do id de volta para amarrar as interações)
	for _, b := range bundles {
		clienteID, ok := clienteMap[b.Cliente.Email]
		if !ok {
			continue // email colidiu com um cliente de outro bundle
		}

		for pos, noticia := range b.Noticias {
			var noticiaID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO noticias (titulo, resumo, conteudo, imagem_url, autor, categoria_id, cliente_id, status, motivo_rejeicao, data_publicacao, visualizacoes, curtidas)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)
				RETURNING id`,
				noticia.Titulo, noticia.Resumo, noticia.Conteudo, noticia.ImagemURL,
				noticia.Autor, noticia.CategoriaID, clienteID, noticia.Status,
				noticia.MotivoRejeicao, noticia.DataPublicacao, noticia.Visualizacoes, noticia.Curtidas,
			).Scan(&noticiaID)
			if err != nil {
				return fmt.Errorf("failed to insert noticia: %w", err)
			}

			interacoes := b.Interacoes[pos]
			if len(interacoes) == 0 {
				continue
			}

			tipos := make([]string, len(interacoes))
			conteudos := make([]string, len(interacoes))
			notas := make([]int32, len(interacoes))
			datas := make([]time.Time, len(interacoes))
			clienteIDs := make([]int64, len(interacoes))
			noticiaIDs := make([]int64, len(interacoes))

			for i, it := range interacoes {
				tipos[i] = string(it.Tipo)
				conteudos[i] = it.Conteudo
				notas[i] = int32(it.Nota)
				datas[i] = it.Data
				clienteIDs[i] = clienteID // o próprio autor interagindo serve para volume
				noticiaIDs[i] = noticiaID
			}

			interacaoSQL := `
				INSERT INTO interacoes (tipo, conteudo, nota, data, cliente_id, noticia_id)
				SELECT unnest($1::text[]), NULLIF(unnest($2::text[]), ''), NULLIF(unnest($3::int[]), 0), unnest($4::timestamptz[]), unnest($5::bigint[]), unnest($6::bigint[])`

			if _, err := tx.Exec(ctx, interacaoSQL, tipos, conteudos, notas, datas, clienteIDs, noticiaIDs); err != nil {
				return fmt.Errorf("failed to insert interacoes: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// ==== FAKE DATA ====

func generateFakeBundle(noticiasPerClient int, categoriaIDs []int64) DataBundle {
	now := time.Now().UTC()

	cliente := entities.Cliente{
		Nome:     faker.Name(),
		Email:    faker.Email(),
		Senha:    faker.Password(),
		Telefone: faker.Phonenumber(),
		Cidade:   cidades[rand.Intn(len(cidades))],
	}

	numNoticias := rand.Intn(noticiasPerClient) + 1
	noticias := make([]entities.Noticia, 0, numNoticias)
	interacoes := make(map[int][]entities.Interacao, numNoticias)

	for i := 0; i < numNoticias; i++ {
		publicadaEm := now.AddDate(0, 0, -rand.Intn(30))

		noticia := entities.Noticia{
			Titulo:         strings.Title(faker.Sentence()),
			Resumo:         faker.Sentence() + " " + faker.Sentence(),
			Conteudo:       faker.Paragraph() + "\n\n" + faker.Paragraph(),
			ImagemURL:      fmt.Sprintf("https://cdn.portal.example/%s.jpg", faker.UUIDHyphenated()),
			Autor:          cliente.Nome,
			CategoriaID:    categoriaIDs[rand.Intn(len(categoriaIDs))],
			Status:         sortearStatus(),
			DataPublicacao: publicadaEm,
		}

		if noticia.Status == entities.StatusRejeitada {
			noticia.MotivoRejeicao = motivosRejeicao[rand.Intn(len(motivosRejeicao))]
		}

		// Só notícia aprovada acumula tráfego e interações
		if noticia.Status == entities.StatusAprovada {
			noticia.Visualizacoes = uint64(rand.Intn(5000))

			its := generateFakeInteracoes(publicadaEm, now)
			for _, it := range its {
				if it.Tipo == entities.TipoCurtida {
					noticia.Curtidas++
				}
			}
			interacoes[i] = its
		}

		noticias = append(noticias, noticia)
	}

	return DataBundle{
		Cliente:    cliente,
		Noticias:   noticias,
		Interacoes: interacoes,
	}
}

// sortearStatus distribui os status de forma parecida com um portal
// em operação: maioria aprovada, fila pendente menor, rejeição rara.
func sortearStatus() entities.StatusNoticia {
	r := rand.Float64()
	switch {
	case r < 0.60:
		return entities.StatusAprovada
	case r < 0.85:
		return entities.StatusPendente
	default:
		return entities.StatusRejeitada
	}
}

func generateFakeInteracoes(publicadaEm, now time.Time) []entities.Interacao {
	num := rand.Intn(10)
	janela := now.Sub(publicadaEm)
	if janela <= 0 {
		janela = time.Hour
	}

	its := make([]entities.Interacao, 0, num)
	for i := 0; i < num; i++ {
		data := publicadaEm.Add(time.Duration(rand.Int63n(int64(janela))))

		var it entities.Interacao
		switch rand.Intn(3) {
		case 0:
			it = entities.Interacao{Tipo: entities.TipoCurtida, Data: data}
		case 1:
			it = entities.Interacao{
				Tipo:     entities.TipoComentario,
				Conteudo: comentariosExemplo[rand.Intn(len(comentariosExemplo))],
				Data:     data,
			}
		default:
			it = entities.Interacao{
				Tipo: entities.TipoAvaliacao,
				Nota: rand.Intn(5) + 1,
				Data: data,
			}
		}

		its = append(its, it)
	}

	return its
}
