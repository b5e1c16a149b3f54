package calendar

import (
	"fmt"
	"strings"
	"time"
)

type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewAgenda View = "agenda"
)

// ParseView aceita os nomes das visões; vazio vira month.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewMonth, nil
	case ViewDay, ViewWeek, ViewMonth, ViewYear, ViewAgenda:
		return v, nil
	default:
		return "", fmt.Errorf("visão inválida: %q", s)
	}
}

// Window é um intervalo semiaberto [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Intersects(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

// WindowFor calcula a janela visível da visão ao redor de anchor. A semana começa no domingo;
// agenda usa a mesma janela do mês.
func WindowFor(view View, anchor time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	day := startOfDay(anchor.In(loc))

	switch view {
	case ViewDay:
		return Window{Start: day, End: day.AddDate(0, 0, 1)}
	case ViewWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return Window{Start: start, End: start.AddDate(0, 0, 7)}
	case ViewYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
