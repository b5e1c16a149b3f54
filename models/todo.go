package models

import (
	"errors"
	"strings"
	"time"
)

// DefaultCategory é usada quando o item não tem categoria
const DefaultCategory = "Uncategorized"

// TodoItem representa um item de to-do salvo no Firestore em users/{uid}/todos/{id}.
type TodoItem struct {
	ID         string     `json:"id" firestore:"-"`
	Name       string     `json:"name" firestore:"name"`
	Deadline   *time.Time `json:"deadline,omitempty" firestore:"deadline,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	Completed  bool       `json:"completed" firestore:"completed"`
	Category   string     `json:"category" firestore:"category"`
	AssignedTo string     `json:"assignedTo,omitempty" firestore:"assignedTo,omitempty"`
	ListID     string     `json:"listId" firestore:"listId"`
	Order      int        `json:"order" firestore:"order"`
	Note       string     `json:"note,omitempty" firestore:"note,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// TodoList agrupa itens; users/{uid}/todoLists/{id}
type TodoList struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Order     int       `json:"order" firestore:"order"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

type CreateTodoInput struct {
	Name       string     `json:"name"`
	Deadline   *time.Time `json:"deadline"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	Category   string     `json:"category"`
	AssignedTo string     `json:"assignedTo"`
	ListID     string     `json:"listId"`
	Note       string     `json:"note"`
}

// UpdateTodoInput usa ponteiros para indicar quais campos atualizar.
// As flags Clear* removem as datas, já que um ponteiro nulo significa "não mexer".
type UpdateTodoInput struct {
	Name           *string    `json:"name"`
	Deadline       *time.Time `json:"deadline"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	ClearDeadline  bool       `json:"clearDeadline"`
	ClearStartDate bool       `json:"clearStartDate"`
	ClearEndDate   bool       `json:"clearEndDate"`
	Completed      *bool      `json:"completed"`
	Category       *string    `json:"category"`
	AssignedTo     *string    `json:"assignedTo"`
	Note           *string    `json:"note"`
}

var (
	ErrTodoNameRequired = errors.New("todo name is required")
	ErrTodoListRequired = errors.New("listId is required")
	ErrTodoDateRange    = errors.New("endDate must not be before startDate")
	ErrListNameRequired = errors.New("list name is required")
)

// Validate normaliza e valida a entrada de criação.
func (in *CreateTodoInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return ErrTodoNameRequired
	}
	if strings.TrimSpace(in.ListID) == "" {
		return ErrTodoListRequired
	}
	return validateRange(in.StartDate, in.EndDate)
}

// NewTodoItem monta o item a partir da entrada já validada.
func NewTodoItem(in CreateTodoInput, order int, now time.Time) TodoItem {
	category := in.Category
	if category == "" {
		category = DefaultCategory
	}
	return TodoItem{
		Name:       in.Name,
		Deadline:   in.Deadline,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Category:   category,
		AssignedTo: in.AssignedTo,
		ListID:     in.ListID,
		Order:      order,
		Note:       in.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Apply aplica as alterações parciais ao item e valida o resultado.
func (in UpdateTodoInput) Apply(item *TodoItem, now time.Time) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ErrTodoNameRequired
		}
		item.Name = name
	}
	if in.ClearDeadline {
		item.Deadline = nil
	} else if in.Deadline != nil {
		item.Deadline = in.Deadline
	}
	if in.ClearStartDate {
		item.StartDate = nil
	} else if in.StartDate != nil {
		item.StartDate = in.StartDate
	}
	if in.ClearEndDate {
		item.EndDate = nil
	} else if in.EndDate != nil {
		item.EndDate = in.EndDate
	}
	if in.Completed != nil {
		item.Completed = *in.Completed
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
		if item.Category == "" {
			item.Category = DefaultCategory
		}
	}
	if in.AssignedTo != nil {
		item.AssignedTo = *in.AssignedTo
	}
	if in.Note != nil {
		item.Note = *in.Note
	}
	if err := validateRange(item.StartDate, item.EndDate); err != nil {
		return err
	}
	item.UpdatedAt = now
	return nil
}

func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrTodoDateRange
	}
	return nil
}

// MoveItem move o item da posição from para to e renumera Order de 0 a n-1.
// Índices fora do intervalo são ajustados para as pontas.
func MoveItem(items []TodoItem, from, to int) []TodoItem {
	if len(items) == 0 || from < 0 || from >= len(items) {
		return items
	}
	if to < 0 {
		to = 0
	}
	if to >= len(items) {
		to = len(items) - 1
	}

	out := make([]TodoItem, 0, len(items))
	moved := items[from]
	for i, it := range items {
		if i != from {
			out = append(out, it)
		}
	}
	out = append(out[:to], append([]TodoItem{moved}, out[to:]...)...)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// IndexOf retorna a posição do item com o id informado, ou -1.
func IndexOf(items []TodoItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
