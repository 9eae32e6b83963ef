package http

import (
	_ "github.com/DRSN-tech/search-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC, httpCfg *cfg.HTTPConfig) {
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   httpCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8000/swagger/doc.json"), // ссылка на JSON
	))

	handler := NewSearchHandler(searchUC, r.logger)
	registerSearchRoutes(r.router, handler)
}

func registerSearchRoutes(router chi.Router, handler *SearchHandler) {
	router.Get("/", handler.getProduct)
	router.Post("/products-by-brand", handler.productsByBrand)
	router.Post("/search", handler.search)
	router.Post("/preference", handler.preference)
}
