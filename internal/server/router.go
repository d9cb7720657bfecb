package server

import (
	"net/http"

	"sms-tagger/internal/database"
	"sms-tagger/internal/handlers"
	"sms-tagger/internal/services"

	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the API routes on a chi router
func NewRouter(db *database.DB, express *services.ExpressService) http.Handler {
	healthHandler := handlers.NewHealthHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	expressHandler := handlers.NewExpressHandler(express)
	ruleHandler := handlers.NewRuleHandler(db)

	r := chi.NewRouter()
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)

		r.Post("/classify", messageHandler.Classify)
		r.Post("/score", expressHandler.Score)

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", messageHandler.GetMessages)
			r.Post("/import", messageHandler.ImportMessages)
			r.Get("/{id}", messageHandler.GetMessageByID)
			r.Delete("/{id}", messageHandler.DeleteMessage)
		})

		r.Route("/express", func(r chi.Router) {
			r.Get("/", expressHandler.GetRecords)
			r.Get("/grouped", expressHandler.GetGrouped)
			r.Post("/refresh", expressHandler.Refresh)
			r.Post("/{code}/pick", expressHandler.MarkPicked)
			r.Delete("/{code}/pick", expressHandler.UnmarkPicked)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", ruleHandler.GetRules)
			r.Post("/", ruleHandler.CreateRule)
			r.Post("/test", ruleHandler.TestRules)
			r.Get("/{id}", ruleHandler.GetRuleByID)
			r.Put("/{id}", ruleHandler.UpdateRule)
			r.Delete("/{id}", ruleHandler.DeleteRule)
			r.Post("/{id}/enable", ruleHandler.SetEnabled(true))
			r.Post("/{id}/disable", ruleHandler.SetEnabled(false))
		})
	})

	return r
}
