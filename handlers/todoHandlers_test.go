package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/models"
)

func createList(t *testing.T, name string) models.TodoList {
	t.Helper()
	rec := do(CreateListHandler, http.MethodPost, "/lists", `{"name":"`+name+`"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var l models.TodoList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	return l
}

func createTodo(t *testing.T, listID, name string) models.TodoItem {
	t.Helper()
	rec := do(CreateTodoHandler, http.MethodPost, "/todos", `{"name":"`+name+`","listId":"`+listID+`"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var it models.TodoItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &it))
	return it
}

func TestCreateTodo(t *testing.T) {
	setup(t)
	list := createList(t, "Venue")

	first := createTodo(t, list.ID, "Visit venues")
	second := createTodo(t, list.ID, "Sign contract")

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, models.DefaultCategory, first.Category)
	assert.Equal(t, fixedNow, first.CreatedAt.UTC())
}

func TestCreateTodoValidation(t *testing.T) {
	setup(t)
	list := createList(t, "Venue")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing name", `{"name":"  ","listId":"` + list.ID + `"}`, http.StatusBadRequest},
		{"missing list", `{"name":"x"}`, http.StatusBadRequest},
		{"end before start", `{"name":"x","listId":"` + list.ID + `","startDate":"2026-11-05T00:00:00Z","endDate":"2026-11-01T00:00:00Z"}`, http.StatusBadRequest},
		{"unknown list", `{"name":"x","listId":"nope"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(CreateTodoHandler, http.MethodPost, "/todos", tt.body, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetUpdateDeleteTodo(t *testing.T) {
	repo := setup(t)
	list := createList(t, "Catering")
	it := createTodo(t, list.ID, "Tasting")

	rec := do(GetTodoHandler, http.MethodGet, "/todos/"+it.ID, "", map[string]string{"id": it.ID})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(UpdateTodoHandler, http.MethodPut, "/todos/"+it.ID,
		`{"name":"Menu tasting","category":"Catering","deadline":"2026-11-01T18:00:00Z"}`, map[string]string{"id": it.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stored := repo.todos[it.ID]
	assert.Equal(t, "Menu tasting", stored.Name)
	assert.Equal(t, "Catering", stored.Category)
	require.NotNil(t, stored.Deadline)

	rec = do(UpdateTodoHandler, http.MethodPut, "/todos/"+it.ID, `{"clearDeadline":true}`, map[string]string{"id": it.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, repo.todos[it.ID].Deadline)

	rec = do(UpdateTodoHandler, http.MethodPut, "/todos/"+it.ID, `{"name":""}`, map[string]string{"id": it.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(DeleteTodoHandler, http.MethodDelete, "/todos/"+it.ID, "", map[string]string{"id": it.ID})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(GetTodoHandler, http.MethodGet, "/todos/"+it.ID, "", map[string]string{"id": it.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleTodo(t *testing.T) {
	repo := setup(t)
	list := createList(t, "Attire")
	it := createTodo(t, list.ID, "Dress fitting")

	rec := do(ToggleTodoHandler, http.MethodPost, "/todos/"+it.ID+"/toggle", "", map[string]string{"id": it.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.todos[it.ID].Completed)

	do(ToggleTodoHandler, http.MethodPost, "/todos/"+it.ID+"/toggle", "", map[string]string{"id": it.ID})
	assert.False(t, repo.todos[it.ID].Completed)
}

func TestMoveTodoAppendsAndRenumbersSource(t *testing.T) {
	repo := setup(t)
	a := createList(t, "A")
	b := createList(t, "B")
	a0 := createTodo(t, a.ID, "a0")
	a1 := createTodo(t, a.ID, "a1")
	a2 := createTodo(t, a.ID, "a2")
	createTodo(t, b.ID, "b0")

	rec := do(MoveTodoHandler, http.MethodPost, "/todos/"+a0.ID+"/move", `{"listId":"`+b.ID+`"}`, map[string]string{"id": a0.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	moved := repo.todos[a0.ID]
	assert.Equal(t, b.ID, moved.ListID)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, 0, repo.todos[a1.ID].Order)
	assert.Equal(t, 1, repo.todos[a2.ID].Order)

	rec = do(MoveTodoHandler, http.MethodPost, "/todos/"+a1.ID+"/move", `{"listId":"missing"}`, map[string]string{"id": a1.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(MoveTodoHandler, http.MethodPost, "/todos/"+a1.ID+"/move", `{}`, map[string]string{"id": a1.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderTodo(t *testing.T) {
	repo := setup(t)
	list := createList(t, "Guests")
	var ids []string
	for _, n := range []string{"a", "b", "c", "d"} {
		ids = append(ids, createTodo(t, list.ID, n).ID)
	}

	rec := do(ReorderTodoHandler, http.MethodPost, "/todos/"+ids[0]+"/reorder", `{"toIndex":2}`, map[string]string{"id": ids[0]})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got []models.TodoItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	names := []string{}
	for i, it := range got {
		names = append(names, it.Name)
		assert.Equal(t, i, it.Order)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, names)
	assert.Equal(t, 2, repo.todos[ids[0]].Order)
	assert.Equal(t, 1, repo.orders)

	// índice fora do intervalo vai para o fim
	rec = do(ReorderTodoHandler, http.MethodPost, "/todos/"+ids[1]+"/reorder", `{"toIndex":99}`, map[string]string{"id": ids[1]})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, repo.todos[ids[1]].Order)

	rec = do(ReorderTodoHandler, http.MethodPost, "/todos/"+ids[1]+"/reorder", `{}`, map[string]string{"id": ids[1]})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListsCRUDAndCascade(t *testing.T) {
	repo := setup(t)
	a := createList(t, "Flowers")
	b := createList(t, "Music")
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)

	createTodo(t, a.ID, "Bouquet")
	createTodo(t, a.ID, "Centerpieces")
	keep := createTodo(t, b.ID, "DJ")

	rec := do(RenameListHandler, http.MethodPut, "/lists/"+a.ID, `{"name":"Florals"}`, map[string]string{"id": a.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Florals", repo.lists[a.ID].Name)

	rec = do(RenameListHandler, http.MethodPut, "/lists/"+a.ID, `{"name":" "}`, map[string]string{"id": a.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(DeleteListHandler, http.MethodDelete, "/lists/"+a.ID, "", map[string]string{"id": a.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deletedTodos":2}`, rec.Body.String())
	assert.Len(t, repo.todos, 1)
	assert.Contains(t, repo.todos, keep.ID)

	rec = do(ListListsHandler, http.MethodGet, "/lists", "", nil)
	var lists []models.TodoList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lists))
	assert.Len(t, lists, 1)

	rec = do(DeleteListHandler, http.MethodDelete, "/lists/"+a.ID, "", map[string]string{"id": a.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTodosFiltersByList(t *testing.T) {
	setup(t)
	a := createList(t, "A")
	b := createList(t, "B")
	createTodo(t, a.ID, "one")
	createTodo(t, b.ID, "two")

	rec := do(ListTodosHandler, http.MethodGet, "/todos?listId="+a.ID, "", nil)
	var items []models.TodoItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Name)

	rec = do(ListTodosHandler, http.MethodGet, "/todos", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}
