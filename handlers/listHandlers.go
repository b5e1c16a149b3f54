package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wedding-planner/models"
	"wedding-planner/utilities"
)

type listInput struct {
	Name string `json:"name"`
}

func CreateListHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	ctx := r.Context()

	var input listInput
	if err := decodeJSON(r, &input); err != nil {
		utilities.LogError(err, "CreateListHandler: Erro ao decodificar JSON")
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, models.ErrListNameRequired.Error())
		return
	}

	existing, err := todoRepo.ListLists(ctx, uid)
	if err != nil {
		respondStoreError(w, err, "CreateListHandler: Erro ao listar listas", "Lista não encontrada")
		return
	}
	order := 0
	for _, l := range existing {
		if l.Order >= order {
			order = l.Order + 1
		}
	}

	list, err := todoRepo.CreateList(ctx, uid, models.TodoList{Name: name, Order: order, CreatedAt: now()})
	if err != nil {
		respondStoreError(w, err, "CreateListHandler: Erro ao criar lista", "Lista não encontrada")
		return
	}
	utilities.LogInfo("Lista criada: %s (ID: %s) para usuário %s", list.Name, list.ID, uid)
	writeJSON(w, http.StatusCreated, list)
}

func ListListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := todoRepo.ListLists(r.Context(), UserUID(r.Context()))
	if err != nil {
		respondStoreError(w, err, "ListListsHandler: Erro ao listar listas", "Lista não encontrada")
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func RenameListHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]

	var input listInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, models.ErrListNameRequired.Error())
		return
	}

	if err := todoRepo.RenameList(r.Context(), uid, id, name); err != nil {
		respondStoreError(w, err, "RenameListHandler: Erro ao renomear lista", "Lista não encontrada")
		return
	}
	list, err := todoRepo.GetList(r.Context(), uid, id)
	if err != nil {
		respondStoreError(w, err, "RenameListHandler: Erro ao buscar lista", "Lista não encontrada")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DeleteListHandler apaga a lista junto com os itens dela
func DeleteListHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	id := mux.Vars(r)["id"]

	deleted, err := todoRepo.DeleteList(r.Context(), uid, id)
	if err != nil {
		respondStoreError(w, err, "DeleteListHandler: Erro ao deletar lista", "Lista não encontrada")
		return
	}
	utilities.LogInfo("Lista %s deletada com %d itens para usuário %s", id, deleted, uid)
	writeJSON(w, http.StatusOK, map[string]int{"deletedTodos": deleted})
}
