package handlers

import (
	"context"
	"time"

	"wedding-planner/calendar"
	"wedding-planner/gmail"
	"wedding-planner/models"
	"wedding-planner/quota"
	"wedding-planner/utilities"
)

// TodoRepository é implementado por firebase.Store
type TodoRepository interface {
	CreateTodo(ctx context.Context, uid string, item models.TodoItem) (models.TodoItem, error)
	GetTodo(ctx context.Context, uid, id string) (models.TodoItem, error)
	ListTodos(ctx context.Context, uid, listID string) ([]models.TodoItem, error)
	NextOrder(ctx context.Context, uid, listID string) (int, error)
	UpdateTodo(ctx context.Context, uid string, item models.TodoItem) error
	DeleteTodo(ctx context.Context, uid, id string) error
	SaveOrder(ctx context.Context, uid string, items []models.TodoItem) error

	CreateList(ctx context.Context, uid string, list models.TodoList) (models.TodoList, error)
	GetList(ctx context.Context, uid, id string) (models.TodoList, error)
	ListLists(ctx context.Context, uid string) ([]models.TodoList, error)
	RenameList(ctx context.Context, uid, id, name string) error
	DeleteList(ctx context.Context, uid, id string) (int, error)
}

type SettingsRepository interface {
	GetNotificationPreferences(ctx context.Context, uid string) (models.NotificationPreferences, bool, error)
	SaveNotificationPreferences(ctx context.Context, uid string, prefs models.NotificationPreferences) error
}

type TokenVerifier interface {
	VerifyUserToken(ctx context.Context, token string) (string, error)
}

type QuotaService interface {
	Reserve(ctx context.Context, uid string) (quota.Reservation, error)
	Release(ctx context.Context, r quota.Reservation) error
	Usage(ctx context.Context, uid string) (models.QuotaUsage, error)
}

// GmailTransports cria o cliente do Gmail autorizado para o usuário
type GmailTransports interface {
	TransportFor(ctx context.Context, uid string) (gmail.Transport, error)
}

type EmailDrafter interface {
	Draft(ctx context.Context, req models.VendorEmailRequest) (*models.VendorEmailDraft, error)
}

type HistoryLogger interface {
	LogEmailSend(ctx context.Context, uid string, entry models.EmailHistoryEntry)
}

var (
	verifier     TokenVerifier
	todoRepo     TodoRepository
	settingsRepo SettingsRepository
	quotaSvc     QuotaService
	transports   GmailTransports
	drafter      EmailDrafter
	history      HistoryLogger

	palette   = calendar.DefaultPalette()
	now       = time.Now
	newSender = gmail.NewSender
)

// InitAuth define quem verifica os tokens do Firebase
func InitAuth(v TokenVerifier) {
	utilities.LogInfo("Inicializando verificação de tokens")
	verifier = v
}

func InitStores(todos TodoRepository, settings SettingsRepository) {
	todoRepo = todos
	settingsRepo = settings
}

// InitGmail configura o envio de e-mails. h pode ser nil quando não há histórico.
func InitGmail(q QuotaService, t GmailTransports, h HistoryLogger) {
	quotaSvc = q
	transports = t
	history = h
}

// InitDrafter com d nil deixa POST /gmail/draft respondendo 503
func InitDrafter(d EmailDrafter) {
	drafter = d
}

func InitPalette(p calendar.Palette) {
	palette = p
}
