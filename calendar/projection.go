// Package calendar transforma itens de to-do em eventos de calendário,
// filtra pela janela visível (dia, semana, mês, ano) e limita a quantidade
// de eventos entregues ao frontend.
package calendar

import (
	"sort"
	"time"

	"wedding-planner/models"
)

const (
	// Itens sem data aparecem hoje das 9h às 10h
	DefaultStartHour = 9
	DefaultDuration  = time.Hour

	// Itens só com prazo viram um evento de uma hora começando no prazo
	DeadlineDuration = time.Hour

	MobileLimit  = 50
	DesktopLimit = 100
)

// Event é a representação de um item de to-do no calendário.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	AllDay     bool      `json:"allDay"`
	Color      string    `json:"color"`
	Category   string    `json:"category"`
	Completed  bool      `json:"completed"`
	ListID     string    `json:"listId"`
	AssignedTo string    `json:"assignedTo,omitempty"`
}

// Project mapeia um item para um evento. A regra depende de quais campos existem:
//   - startDate: evento de dia inteiro de startOfDay(startDate) até o fim do dia de endDate (ou do próprio startDate);
//   - só deadline: evento com horário, [deadline, deadline+1h);
//   - nenhum: evento com horário hoje das 9h às 10h.
//
// Campos ausentes recebem valores padrão, nunca geram erro.
func Project(item models.TodoItem, now time.Time, loc *time.Location, palette Palette) Event {
	if loc == nil {
		loc = time.Local
	}

	ev := Event{
		ID:         item.ID,
		Title:      item.Name,
		Category:   item.Category,
		Completed:  item.Completed,
		ListID:     item.ListID,
		AssignedTo: item.AssignedTo,
		Color:      palette.ColorFor(item.Category),
	}
	if ev.Category == "" {
		ev.Category = models.DefaultCategory
	}

	switch {
	case item.StartDate != nil:
		start := startOfDay(item.StartDate.In(loc))
		last := start
		if item.EndDate != nil {
			if end := startOfDay(item.EndDate.In(loc)); end.After(start) {
				last = end
			}
		}
		ev.Start = start
		ev.End = last.AddDate(0, 0, 1)
		ev.AllDay = true
	case item.Deadline != nil:
		ev.Start = item.Deadline.In(loc)
		ev.End = ev.Start.Add(DeadlineDuration)
	default:
		today := now.In(loc)
		ev.Start = time.Date(today.Year(), today.Month(), today.Day(), DefaultStartHour, 0, 0, 0, loc)
		ev.End = ev.Start.Add(DefaultDuration)
	}
	return ev
}

// ProjectAll projeta todos os itens. Os concluídos só ficam de fora quando includeCompleted é falso.
func ProjectAll(items []models.TodoItem, now time.Time, loc *time.Location, palette Palette, includeCompleted bool) []Event {
	events := make([]Event, 0, len(items))
	for _, item := range items {
		if item.Completed && !includeCompleted {
			continue
		}
		events = append(events, Project(item, now, loc, palette))
	}
	return events
}

// Filter mantém os eventos que cruzam a janela (intersecção, não contenção).
func Filter(events []Event, w Window) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if w.Intersects(ev.Start, ev.End) {
			out = append(out, ev)
		}
	}
	return out
}

// SortEvents ordena por início, depois título e id, para que o corte seja estável.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}

// Device identifica o tipo de cliente que vai renderizar o calendário
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

func ParseDevice(s string) Device {
	if Device(s) == DeviceMobile {
		return DeviceMobile
	}
	return DeviceDesktop
}

func (d Device) Limit() int {
	if d == DeviceMobile {
		return MobileLimit
	}
	return DesktopLimit
}

// Result é o que o endpoint de calendário devolve
type Result struct {
	View      View    `json:"view"`
	Window    Window  `json:"window"`
	Events    []Event `json:"events"`
	Total     int     `json:"total"`
	Truncated bool    `json:"truncated"`
}

// Render filtra pela janela, ordena e aplica o limite do dispositivo.
func Render(events []Event, view View, w Window, device Device) Result {
	visible := Filter(events, w)
	SortEvents(visible)

	res := Result{View: view, Window: w, Total: len(visible)}
	if limit := device.Limit(); len(visible) > limit {
		visible = visible[:limit]
		res.Truncated = true
	}
	res.Events = visible
	return res
}
