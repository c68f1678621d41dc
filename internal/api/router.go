package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"hookalert/internal/api/handlers"
	"hookalert/internal/api/middleware"
)

type Dependencies struct {
	WebhookHandler *handlers.WebhookHandler
	StatusHandler  *handlers.StatusHandler
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	// Inbound webhook endpoint, unauthenticated by design.
	router.POST("/webhook", chain(deps.WebhookHandler.Receive, middleware.RequestLog))

	// Monitoring
	router.GET("/api/v1/status", chain(deps.StatusHandler.Show, middleware.RequestLog))
	router.GET("/healthz", wrap(deps.StatusHandler.Healthz))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handler(w, r)
	}
}
