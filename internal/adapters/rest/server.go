package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	analysis_handlers *AnalysisHandler,
	report_handlers *ReportHandler,
	auth_handlers *AuthHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/simpai", func(r chi.Router) {
			r.Post("/analyze-property", analysis_handlers.AnalyzeProperty)
			r.Post("/analyze-file", analysis_handlers.AnalyzeFile)
			r.Get("/gethistories", analysis_handlers.GetHistories)
			r.Get("/gethistory", analysis_handlers.GetHistory)
			r.Get("/get-homeDetails", analysis_handlers.GetHomeDetails)

			r.Post("/get-report", report_handlers.GetReport)
			r.Get("/download-report", report_handlers.DownloadReport)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", auth_handlers.Signup)
			r.Post("/signin", auth_handlers.Signin)
			r.Get("/verify", auth_handlers.VerifyEmail)
			r.Post("/reset-password", auth_handlers.ResetPassword)
			r.Put("/reset-password", auth_handlers.ResetPasswordWithToken)
		})
	})

	// Выдача временных PDF-файлов отчетов
	r.Get("/temp-pdfs/{fileName}", report_handlers.ServeArtifact)

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
