package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"portalnoticias/src/repositories"
	"portalnoticias/src/services/dashboard"
	"portalnoticias/src/services/interaction"
	"portalnoticias/src/services/moderation"
)

// Server representa o servidor HTTP da API do portal
type Server struct {
	logger             *slog.Logger
	server             *http.Server
	mux                *http.ServeMux
	port               int
	moderationService  *moderation.ModerationService
	interactionService *interaction.InteractionService
	dashboardService   *dashboard.DashboardService
	clienteRepository  *repositories.ClienteRepository
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	moderationService *moderation.ModerationService,
	interactionService *interaction.InteractionService,
	dashboardService *dashboard.DashboardService,
	clienteRepository *repositories.ClienteRepository,
) *Server {
	server := &Server{
		mux:                http.NewServeMux(),
		port:               port,
		logger:             logger,
		moderationService:  moderationService,
		interactionService: interactionService,
		dashboardService:   dashboardService,
		clienteRepository:  clienteRepository,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.mux.HandleFunc("POST /clientes", server.CriarCliente)
	server.mux.HandleFunc("GET /clientes/{id}", server.BuscarCliente)

	server.mux.HandleFunc("GET /categorias", server.ListarCategorias)

	server.mux.HandleFunc("GET /noticias", server.ListarNoticias)
	server.mux.HandleFunc("POST /noticias", server.SubmeterNoticia)
	server.mux.HandleFunc("GET /noticias/pendentes", server.ListarPendentes)
	server.mux.HandleFunc("GET /noticias/pesquisa/{termo}", server.PesquisarNoticias)
	server.mux.HandleFunc("GET /noticias/minhas/{clienteId}", server.ListarMinhasNoticias)
	server.mux.HandleFunc("GET /noticias/{id}", server.BuscarNoticia)
	server.mux.HandleFunc("DELETE /noticias/{id}", server.ExcluirNoticia)
	server.mux.HandleFunc("PATCH /noticias/{id}/aprovar", server.AprovarNoticia)
	server.mux.HandleFunc("PATCH /noticias/{id}/rejeitar", server.RejeitarNoticia)

	server.mux.HandleFunc("POST /interacoes", server.CriarInteracao)
	server.mux.HandleFunc("PATCH /interacoes/{id}/resposta", server.ResponderInteracao)
	server.mux.HandleFunc("GET /interacoes/cliente/{clienteId}", server.ListarInteracoesDoCliente)

	server.mux.HandleFunc("GET /dashboard/stats", server.EstatisticasDashboard)
	server.mux.HandleFunc("GET /dashboard/eventos", server.EventosDashboard)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
