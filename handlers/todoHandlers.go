package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wedding-planner/firebase"
	"wedding-planner/models"
	"wedding-planner/utilities"
)

// respondStoreError traduz erros do repositório em respostas HTTP
func respondStoreError(w http.ResponseWriter, err error, context, notFoundMsg string) {
	if errors.Is(err, firebase.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	utilities.LogError(err, context)
	writeError(w, http.StatusInternalServerError, "Erro interno ao acessar os dados")
}

// CreateTodoHandler cria um item no fim da lista informada
func CreateTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	ctx := r.Context()

	var input models.CreateTodoInput
	if err := decodeJSON(r, &input); err != nil {
		utilities.LogError(err, "CreateTodoHandler: Erro ao decodificar JSON")
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := todoRepo.GetList(ctx, uid, input.ListID); err != nil {
		respondStoreError(w, err, "CreateTodoHandler: Erro ao buscar lista", "Lista não encontrada")
		return
	}

	order, err := todoRepo.NextOrder(ctx, uid, input.ListID)
	if err != nil {
		respondStoreError(w, err, "CreateTodoHandler: Erro ao calcular posição", "Lista não encontrada")
		return
	}

	item, err := todoRepo.CreateTodo(ctx, uid, models.NewTodoItem(input, order, now()))
	if err != nil {
		respondStoreError(w, err, "CreateTodoHandler: Erro ao salvar todo", "Lista não encontrada")
		return
	}

	utilities.LogInfo("Todo criado: %s (ID: %s) para usuário %s", item.Name, item.ID, uid)
	writeJSON(w, http.StatusCreated, item)
}

// ListTodosHandler lista os itens; ?listId= restringe a uma lista
func ListTodosHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	listID := strings.TrimSpace(r.URL.Query().Get("listId"))

	items, err := todoRepo.ListTodos(r.Context(), uid, listID)
	if err != nil {
		respondStoreError(w, err, "ListTodosHandler: Erro ao listar todos", "Lista não encontrada")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func GetTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]

	item, err := todoRepo.GetTodo(r.Context(), uid, id)
	if err != nil {
		respondStoreError(w, err, "GetTodoHandler: Erro ao buscar todo", "Todo não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateTodoHandler aplica uma atualização parcial
func UpdateTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var input models.UpdateTodoInput
	if err := decodeJSON(r, &input); err != nil {
		utilities.LogError(err, "UpdateTodoHandler: Erro ao decodificar JSON")
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	item, err := todoRepo.GetTodo(ctx, uid, id)
	if err != nil {
		respondStoreError(w, err, "UpdateTodoHandler: Erro ao buscar todo", "Todo não encontrado")
		return
	}
	if err := input.Apply(&item, now()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := todoRepo.UpdateTodo(ctx, uid, item); err != nil {
		respondStoreError(w, err, "UpdateTodoHandler: Erro ao salvar todo", "Todo não encontrado")
		return
	}

	utilities.LogDebug("Todo %s atualizado para usuário %s", id, uid)
	writeJSON(w, http.StatusOK, item)
}

func ToggleTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	item, err := todoRepo.GetTodo(ctx, uid, id)
	if err != nil {
		respondStoreError(w, err, "ToggleTodoHandler: Erro ao buscar todo", "Todo não encontrado")
		return
	}
	item.Completed = !item.Completed
	item.UpdatedAt = now()
	if err := todoRepo.UpdateTodo(ctx, uid, item); err != nil {
		respondStoreError(w, err, "ToggleTodoHandler: Erro ao salvar todo", "Todo não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// MoveTodoHandler move o item para outra lista, no fim dela
func MoveTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var input struct {
		ListID string `json:"listId"`
	}
	if err := decodeJSON(r, &input); err != nil || strings.TrimSpace(input.ListID) == "" {
		writeError(w, http.StatusBadRequest, models.ErrTodoListRequired.Error())
		return
	}

	item, err := todoRepo.GetTodo(ctx, uid, id)
	if err != nil {
		respondStoreError(w, err, "MoveTodoHandler: Erro ao buscar todo", "Todo não encontrado")
		return
	}
	if item.ListID == input.ListID {
		writeJSON(w, http.StatusOK, item)
		return
	}
	if _, err := todoRepo.GetList(ctx, uid, input.ListID); err != nil {
		respondStoreError(w, err, "MoveTodoHandler: Erro ao buscar lista de destino", "Lista não encontrada")
		return
	}

	order, err := todoRepo.NextOrder(ctx, uid, input.ListID)
	if err != nil {
		respondStoreError(w, err, "MoveTodoHandler: Erro ao calcular posição", "Lista não encontrada")
		return
	}
	from := item.ListID
	item.ListID = input.ListID
	item.Order = order
	item.UpdatedAt = now()
	if err := todoRepo.UpdateTodo(ctx, uid, item); err != nil {
		respondStoreError(w, err, "MoveTodoHandler: Erro ao salvar todo", "Todo não encontrado")
		return
	}

	// renumera a lista de origem para não deixar buracos
	remaining, err := todoRepo.ListTodos(ctx, uid, from)
	if err == nil {
		for i := range remaining {
			remaining[i].Order = i
		}
		err = todoRepo.SaveOrder(ctx, uid, remaining)
	}
	if err != nil {
		utilities.LogError(err, fmt.Sprintf("MoveTodoHandler: Erro ao renumerar lista %s", from))
	}

	utilities.LogInfo("Todo %s movido de %s para %s", id, from, input.ListID)
	writeJSON(w, http.StatusOK, item)
}

// ReorderTodoHandler move o item para a posição toIndex dentro da própria lista.
// A última escrita vence.
func ReorderTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var input struct {
		ToIndex *int `json:"toIndex"`
	}
	if err := decodeJSON(r, &input); err != nil || input.ToIndex == nil {
		writeError(w, http.StatusBadRequest, "toIndex é obrigatório")
		return
	}

	item, err := todoRepo.GetTodo(ctx, uid, id)
	if err != nil {
		respondStoreError(w, err, "ReorderTodoHandler: Erro ao buscar todo", "Todo não encontrado")
		return
	}
	items, err := todoRepo.ListTodos(ctx, uid, item.ListID)
	if err != nil {
		respondStoreError(w, err, "ReorderTodoHandler: Erro ao listar todos", "Lista não encontrada")
		return
	}

	from := models.IndexOf(items, id)
	if from < 0 {
		writeError(w, http.StatusNotFound, "Todo não encontrado")
		return
	}
	items = models.MoveItem(items, from, *input.ToIndex)
	if err := todoRepo.SaveOrder(ctx, uid, items); err != nil {
		respondStoreError(w, err, "ReorderTodoHandler: Erro ao salvar ordem", "Todo não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func DeleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]

	if err := todoRepo.DeleteTodo(r.Context(), uid, id); err != nil {
		respondStoreError(w, err, "DeleteTodoHandler: Erro ao deletar todo", "Todo não encontrado")
		return
	}
	utilities.LogInfo("Todo %s deletado para usuário %s", id, uid)
	w.WriteHeader(http.StatusNoContent)
}
