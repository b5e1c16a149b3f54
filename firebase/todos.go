package firebase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"wedding-planner/models"
	"wedding-planner/utilities"
)

const (
	todosCollection = "todos"
	listsCollection = "todoLists"
)

func (s *Store) todos(uid string) *firestore.CollectionRef {
	return s.userDoc(uid).Collection(todosCollection)
}

func (s *Store) lists(uid string) *firestore.CollectionRef {
	return s.userDoc(uid).Collection(listsCollection)
}

func (s *Store) CreateTodo(ctx context.Context, uid string, item models.TodoItem) (models.TodoItem, error) {
	ref := s.todos(uid).NewDoc()
	if _, err := ref.Create(ctx, item); err != nil {
		return models.TodoItem{}, fmt.Errorf("erro ao criar todo para %s: %w", uid, err)
	}
	item.ID = ref.ID
	return item, nil
}

func (s *Store) GetTodo(ctx context.Context, uid, id string) (models.TodoItem, error) {
	doc, err := s.todos(uid).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.TodoItem{}, ErrNotFound
		}
		return models.TodoItem{}, fmt.Errorf("erro ao buscar todo %s: %w", id, err)
	}
	var item models.TodoItem
	if err := doc.DataTo(&item); err != nil {
		return models.TodoItem{}, fmt.Errorf("erro ao converter todo %s: %w", id, err)
	}
	item.ID = doc.Ref.ID
	return item, nil
}

// ListTodos lista os itens do usuário ordenados por Order. listID vazio traz todos.
// A ordenação é feita aqui para não exigir índice composto no Firestore.
func (s *Store) ListTodos(ctx context.Context, uid, listID string) ([]models.TodoItem, error) {
	q := s.todos(uid).Query
	if listID != "" {
		q = q.Where("listId", "==", listID)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	items := []models.TodoItem{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao listar todos de %s: %w", uid, err)
		}
		var item models.TodoItem
		if err := doc.DataTo(&item); err != nil {
			// um documento malformado não deve derrubar a lista inteira
			utilities.LogInfo("ListTodos: ignorando todo malformado %s: %v", doc.Ref.Path, err)
			continue
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ListID != items[j].ListID {
			return items[i].ListID < items[j].ListID
		}
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// NextOrder devolve a posição para um item adicionado ao fim da lista
func (s *Store) NextOrder(ctx context.Context, uid, listID string) (int, error) {
	items, err := s.ListTodos(ctx, uid, listID)
	if err != nil {
		return 0, err
	}
	next := 0
	for _, it := range items {
		if it.Order >= next {
			next = it.Order + 1
		}
	}
	return next, nil
}

// UpdateTodo grava o item inteiro; quem chama já aplicou as alterações
func (s *Store) UpdateTodo(ctx context.Context, uid string, item models.TodoItem) error {
	if _, err := s.todos(uid).Doc(item.ID).Set(ctx, item); err != nil {
		return fmt.Errorf("erro ao atualizar todo %s: %w", item.ID, err)
	}
	return nil
}

func (s *Store) DeleteTodo(ctx context.Context, uid, id string) error {
	ref := s.todos(uid).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("erro ao buscar todo %s: %w", id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("erro ao deletar todo %s: %w", id, err)
	}
	return nil
}

// SaveOrder grava o campo order de cada item em lotes. Não há resolução de
// conflito: a última escrita vence.
func (s *Store) SaveOrder(ctx context.Context, uid string, items []models.TodoItem) error {
	now := time.Now()
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := s.client.Batch()
		for _, it := range items[start:end] {
			batch.Update(s.todos(uid).Doc(it.ID), []firestore.Update{
				{Path: "order", Value: it.Order},
				{Path: "updatedAt", Value: now},
			})
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("erro ao salvar ordem dos todos de %s: %w", uid, err)
		}
	}
	return nil
}

func (s *Store) CreateList(ctx context.Context, uid string, list models.TodoList) (models.TodoList, error) {
	ref := s.lists(uid).NewDoc()
	if _, err := ref.Create(ctx, list); err != nil {
		return models.TodoList{}, fmt.Errorf("erro ao criar lista para %s: %w", uid, err)
	}
	list.ID = ref.ID
	return list, nil
}

func (s *Store) GetList(ctx context.Context, uid, id string) (models.TodoList, error) {
	doc, err := s.lists(uid).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.TodoList{}, ErrNotFound
		}
		return models.TodoList{}, fmt.Errorf("erro ao buscar lista %s: %w", id, err)
	}
	var list models.TodoList
	if err := doc.DataTo(&list); err != nil {
		return models.TodoList{}, fmt.Errorf("erro ao converter lista %s: %w", id, err)
	}
	list.ID = doc.Ref.ID
	return list, nil
}

func (s *Store) ListLists(ctx context.Context, uid string) ([]models.TodoList, error) {
	iter := s.lists(uid).OrderBy("order", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	lists := []models.TodoList{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao listar listas de %s: %w", uid, err)
		}
		var list models.TodoList
		if err := doc.DataTo(&list); err != nil {
			utilities.LogInfo("ListLists: ignorando lista malformada %s: %v", doc.Ref.Path, err)
			continue
		}
		list.ID = doc.Ref.ID
		lists = append(lists, list)
	}
	return lists, nil
}

func (s *Store) RenameList(ctx context.Context, uid, id, name string) error {
	_, err := s.lists(uid).Doc(id).Update(ctx, []firestore.Update{{Path: "name", Value: name}})
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("erro ao renomear lista %s: %w", id, err)
	}
	return nil
}

// DeleteList apaga a lista e todos os itens que pertencem a ela. Devolve quantos itens foram apagados.
func (s *Store) DeleteList(ctx context.Context, uid, id string) (int, error) {
	ref := s.lists(uid).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("erro ao buscar lista %s: %w", id, err)
	}

	deleted, err := deleteQueryInBatches(ctx, s.client, s.todos(uid).Where("listId", "==", id))
	if err != nil {
		return deleted, fmt.Errorf("erro ao deletar itens da lista %s: %w", id, err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return deleted, fmt.Errorf("erro ao deletar lista %s: %w", id, err)
	}
	return deleted, nil
}
