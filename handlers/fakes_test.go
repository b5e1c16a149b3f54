package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"wedding-planner/calendar"
	"wedding-planner/firebase"
	"wedding-planner/gmail"
	"wedding-planner/models"
	"wedding-planner/quota"
)

const testUID = "user-1"

var fixedNow = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

type memTodos struct {
	mu     sync.Mutex
	seq    int
	todos  map[string]models.TodoItem
	lists  map[string]models.TodoList
	orders int // chamadas a SaveOrder
}

func newMemTodos() *memTodos {
	return &memTodos{todos: map[string]models.TodoItem{}, lists: map[string]models.TodoList{}}
}

func (m *memTodos) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memTodos) CreateTodo(ctx context.Context, uid string, item models.TodoItem) (models.TodoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID("t")
	m.todos[item.ID] = item
	return item, nil
}

func (m *memTodos) GetTodo(ctx context.Context, uid, id string) (models.TodoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.todos[id]
	if !ok {
		return models.TodoItem{}, firebase.ErrNotFound
	}
	return it, nil
}

func (m *memTodos) ListTodos(ctx context.Context, uid, listID string) ([]models.TodoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.TodoItem{}
	for _, it := range m.todos {
		if listID == "" || it.ListID == listID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ListID != out[j].ListID {
			return out[i].ListID < out[j].ListID
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

func (m *memTodos) NextOrder(ctx context.Context, uid, listID string) (int, error) {
	items, _ := m.ListTodos(ctx, uid, listID)
	next := 0
	for _, it := range items {
		if it.Order >= next {
			next = it.Order + 1
		}
	}
	return next, nil
}

func (m *memTodos) UpdateTodo(ctx context.Context, uid string, item models.TodoItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.todos[item.ID] = item
	return nil
}

func (m *memTodos) DeleteTodo(ctx context.Context, uid, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.todos[id]; !ok {
		return firebase.ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

func (m *memTodos) SaveOrder(ctx context.Context, uid string, items []models.TodoItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders++
	for _, it := range items {
		stored := m.todos[it.ID]
		stored.Order = it.Order
		m.todos[it.ID] = stored
	}
	return nil
}

func (m *memTodos) CreateList(ctx context.Context, uid string, list models.TodoList) (models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list.ID = m.nextID("l")
	m.lists[list.ID] = list
	return list, nil
}

func (m *memTodos) GetList(ctx context.Context, uid, id string) (models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return models.TodoList{}, firebase.ErrNotFound
	}
	return l, nil
}

func (m *memTodos) ListLists(ctx context.Context, uid string) ([]models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.TodoList{}
	for _, l := range m.lists {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memTodos) RenameList(ctx context.Context, uid, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return firebase.ErrNotFound
	}
	l.Name = name
	m.lists[id] = l
	return nil
}

func (m *memTodos) DeleteList(ctx context.Context, uid, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[id]; !ok {
		return 0, firebase.ErrNotFound
	}
	n := 0
	for tid, it := range m.todos {
		if it.ListID == id {
			delete(m.todos, tid)
			n++
		}
	}
	delete(m.lists, id)
	return n, nil
}

type memSettings struct {
	prefs *models.NotificationPreferences
}

func (m *memSettings) GetNotificationPreferences(ctx context.Context, uid string) (models.NotificationPreferences, bool, error) {
	if m.prefs == nil {
		return models.NotificationPreferences{}, false, nil
	}
	return *m.prefs, true, nil
}

func (m *memSettings) SaveNotificationPreferences(ctx context.Context, uid string, prefs models.NotificationPreferences) error {
	m.prefs = &prefs
	return nil
}

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyUserToken(ctx context.Context, token string) (string, error) {
	uid, ok := f[token]
	if !ok {
		return "", fmt.Errorf("token desconhecido")
	}
	return uid, nil
}

type fakeQuota struct {
	limit    int
	sent     int
	released int
}

func (q *fakeQuota) Reserve(ctx context.Context, uid string) (quota.Reservation, error) {
	if q.sent >= q.limit {
		return quota.Reservation{}, quota.ErrQuotaExceeded
	}
	q.sent++
	return quota.Reservation{UserUID: uid, Day: "2026-10-17", Sent: q.sent}, nil
}

func (q *fakeQuota) Release(ctx context.Context, r quota.Reservation) error {
	q.sent--
	q.released++
	return nil
}

func (q *fakeQuota) Usage(ctx context.Context, uid string) (models.QuotaUsage, error) {
	return models.QuotaUsage{Day: "2026-10-17", Sent: q.sent, Limit: q.limit, Remaining: q.limit - q.sent}, nil
}

// scriptedTransport devolve os erros em ordem e depois sucesso
type scriptedTransport struct {
	errs  []error
	calls int
	raw   string
}

func (s *scriptedTransport) Send(ctx context.Context, raw string) (*models.GmailResult, error) {
	s.calls++
	s.raw = raw
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return &models.GmailResult{ID: "msg-1", ThreadID: "thread-1", LabelIDs: []string{"SENT"}}, nil
}

type fakeTransports struct {
	transport gmail.Transport
	err       error
}

func (f fakeTransports) TransportFor(ctx context.Context, uid string) (gmail.Transport, error) {
	return f.transport, f.err
}

type recordedHistory struct {
	entries []models.EmailHistoryEntry
}

func (h *recordedHistory) LogEmailSend(ctx context.Context, uid string, entry models.EmailHistoryEntry) {
	h.entries = append(h.entries, entry)
}

type fakeDrafter struct{}

func (fakeDrafter) Draft(ctx context.Context, req models.VendorEmailRequest) (*models.VendorEmailDraft, error) {
	return &models.VendorEmailDraft{Subject: "Hello " + req.VendorName, Body: "Body"}, nil
}

// setup reinicia as dependências do pacote com fakes e devolve o repositório em memória
func setup(t *testing.T) *memTodos {
	t.Helper()
	repo := newMemTodos()

	InitAuth(fakeVerifier{"good-token": testUID})
	InitStores(repo, &memSettings{})
	InitGmail(&fakeQuota{limit: 100}, fakeTransports{transport: &scriptedTransport{}}, nil)
	InitDrafter(nil)
	InitPalette(calendar.DefaultPalette())
	now = func() time.Time { return fixedNow }
	newSender = func(tr gmail.Transport) *gmail.Sender {
		s := gmail.NewSender(tr)
		s.BaseDelay = time.Millisecond
		return s
	}

	t.Cleanup(func() {
		now = time.Now
		newSender = gmail.NewSender
	})
	return repo
}

// do executa o handler como usuário autenticado, com as variáveis de rota informadas
func do(h http.HandlerFunc, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Authorization", "Bearer good-token")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	AuthMiddleware(h).ServeHTTP(rec, req)
	return rec
}
