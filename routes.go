package main

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"wedding-planner/handlers"
	"wedding-planner/utilities"
)

func NewRouter(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	// Aplicar o middleware de logging global em todas as rotas
	r.Use(handlers.LoggingMiddleware)

	r.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// --- Calendário ---
	r.HandleFunc("/calendar/events", handlers.AuthMiddleware(handlers.CalendarEventsHandler)).Methods("GET")

	// --- To-dos ---
	r.HandleFunc("/todos", handlers.AuthMiddleware(handlers.CreateTodoHandler)).Methods("POST")
	r.HandleFunc("/todos", handlers.AuthMiddleware(handlers.ListTodosHandler)).Methods("GET")
	r.HandleFunc("/todos/{id}", handlers.AuthMiddleware(handlers.GetTodoHandler)).Methods("GET")
	r.HandleFunc("/todos/{id}", handlers.AuthMiddleware(handlers.UpdateTodoHandler)).Methods("PUT")
	r.HandleFunc("/todos/{id}", handlers.AuthMiddleware(handlers.DeleteTodoHandler)).Methods("DELETE")
	r.HandleFunc("/todos/{id}/toggle", handlers.AuthMiddleware(handlers.ToggleTodoHandler)).Methods("POST")
	r.HandleFunc("/todos/{id}/move", handlers.AuthMiddleware(handlers.MoveTodoHandler)).Methods("POST")
	r.HandleFunc("/todos/{id}/reorder", handlers.AuthMiddleware(handlers.ReorderTodoHandler)).Methods("POST")

	// --- Listas ---
	r.HandleFunc("/lists", handlers.AuthMiddleware(handlers.CreateListHandler)).Methods("POST")
	r.HandleFunc("/lists", handlers.AuthMiddleware(handlers.ListListsHandler)).Methods("GET")
	r.HandleFunc("/lists/{id}", handlers.AuthMiddleware(handlers.RenameListHandler)).Methods("PUT")
	r.HandleFunc("/lists/{id}", handlers.AuthMiddleware(handlers.DeleteListHandler)).Methods("DELETE")

	// --- Gmail ---
	r.HandleFunc("/gmail/send", handlers.AuthMiddleware(handlers.SendEmailHandler)).Methods("POST")
	r.HandleFunc("/gmail/quota", handlers.AuthMiddleware(handlers.EmailQuotaHandler)).Methods("GET")
	r.HandleFunc("/gmail/draft", handlers.AuthMiddleware(handlers.DraftVendorEmailHandler)).Methods("POST")

	// --- Configurações ---
	r.HandleFunc("/settings/notifications", handlers.AuthMiddleware(handlers.GetNotificationSettingsHandler)).Methods("GET")
	r.HandleFunc("/settings/notifications", handlers.AuthMiddleware(handlers.UpdateNotificationSettingsHandler)).Methods("PUT")

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization", "X-Request-ID"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	exposed := gorillahandlers.ExposedHeaders([]string{"X-Request-ID"})

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	}
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", allowedOrigins)

	return gorillahandlers.CORS(headers, methods, exposed, gorillahandlers.AllowedOrigins(allowedOrigins))(r)
}
