package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/evida/coach-api/docs"
	"github.com/evida/coach-api/internal/api/handler"
	"github.com/evida/coach-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	chatHandler     *handler.ChatHandler
	personaHandler  *handler.PersonaHandler
	uploadHandler   *handler.UploadHandler
	feedbackHandler *handler.FeedbackHandler
	corsOrigins     []string
}

func NewRouter(
	chatHandler *handler.ChatHandler,
	personaHandler *handler.PersonaHandler,
	uploadHandler *handler.UploadHandler,
	feedbackHandler *handler.FeedbackHandler,
	corsOrigins []string,
) *Router {
	return &Router{
		chatHandler:     chatHandler,
		personaHandler:  personaHandler,
		uploadHandler:   uploadHandler,
		feedbackHandler: feedbackHandler,
		corsOrigins:     corsOrigins,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Personas
	r.Get("/personas", rt.personaHandler.ListPersonas)
	r.Get("/persona/{personaId}/data", rt.personaHandler.GetPersonaData)

	// Uploads
	r.Post("/upload", rt.uploadHandler.Upload)

	// Chat
	r.Post("/chat", rt.chatHandler.Chat)
	r.Post("/chat/feedback", rt.feedbackHandler.Feedback)

	return r
}
