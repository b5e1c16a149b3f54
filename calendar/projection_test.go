package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/models"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestProjectDeadlineOnlyIsTimedAtDeadline(t *testing.T) {
	loc := time.UTC
	deadline := time.Date(2026, 10, 20, 15, 30, 0, 0, loc)
	item := models.TodoItem{ID: "a", Name: "Book florist", Deadline: &deadline, Category: "Flowers"}

	ev := Project(item, time.Date(2026, 10, 17, 8, 0, 0, 0, loc), loc, DefaultPalette())

	assert.False(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(deadline))
	assert.True(t, ev.End.Equal(deadline.Add(time.Hour)))
	assert.Equal(t, "#6AA84F", ev.Color)
	assert.Equal(t, "Book florist", ev.Title)
}

func TestProjectUndatedDefaultsToNineToday(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	now := time.Date(2026, 10, 17, 22, 45, 0, 0, loc)

	ev := Project(models.TodoItem{ID: "b", Name: "Think about vows"}, now, loc, DefaultPalette())

	assert.False(t, ev.AllDay)
	assert.Equal(t, time.Date(2026, 10, 17, 9, 0, 0, 0, loc), ev.Start)
	assert.Equal(t, time.Date(2026, 10, 17, 10, 0, 0, 0, loc), ev.End)
	assert.Equal(t, models.DefaultCategory, ev.Category)
}

func TestProjectStartDateIsAllDay(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 11, 3, 14, 0, 0, 0, loc)
	end := time.Date(2026, 11, 5, 9, 0, 0, 0, loc)
	deadline := time.Date(2026, 11, 1, 9, 0, 0, 0, loc)

	ev := Project(models.TodoItem{ID: "c", Name: "Tasting", StartDate: &start, EndDate: &end, Deadline: &deadline}, start, loc, DefaultPalette())

	assert.True(t, ev.AllDay)
	assert.Equal(t, time.Date(2026, 11, 3, 0, 0, 0, 0, loc), ev.Start)
	assert.Equal(t, time.Date(2026, 11, 6, 0, 0, 0, 0, loc), ev.End)
}

func TestProjectStartDateWithEndBeforeStartCoversOneDay(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 11, 3, 0, 0, 0, 0, loc)
	end := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)

	ev := Project(models.TodoItem{StartDate: &start, EndDate: &end}, start, loc, DefaultPalette())

	assert.Equal(t, start, ev.Start)
	assert.Equal(t, start.AddDate(0, 0, 1), ev.End)
}

func TestProjectAllSkipsCompleted(t *testing.T) {
	items := []models.TodoItem{
		{ID: "1", Name: "open"},
		{ID: "2", Name: "done", Completed: true},
	}
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	assert.Len(t, ProjectAll(items, now, time.UTC, DefaultPalette(), false), 1)
	assert.Len(t, ProjectAll(items, now, time.UTC, DefaultPalette(), true), 2)
}

func TestWindowFor(t *testing.T) {
	loc := time.UTC
	// sábado
	anchor := time.Date(2026, 10, 17, 13, 0, 0, 0, loc)

	tests := []struct {
		view       View
		start, end time.Time
	}{
		{ViewDay, time.Date(2026, 10, 17, 0, 0, 0, 0, loc), time.Date(2026, 10, 18, 0, 0, 0, 0, loc)},
		{ViewWeek, time.Date(2026, 10, 11, 0, 0, 0, 0, loc), time.Date(2026, 10, 18, 0, 0, 0, 0, loc)},
		{ViewMonth, time.Date(2026, 10, 1, 0, 0, 0, 0, loc), time.Date(2026, 11, 1, 0, 0, 0, 0, loc)},
		{ViewAgenda, time.Date(2026, 10, 1, 0, 0, 0, 0, loc), time.Date(2026, 11, 1, 0, 0, 0, 0, loc)},
		{ViewYear, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), time.Date(2027, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			w := WindowFor(tt.view, anchor, loc)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
		})
	}
}

func TestParseView(t *testing.T) {
	v, err := ParseView("")
	require.NoError(t, err)
	assert.Equal(t, ViewMonth, v)

	v, err = ParseView(" Week ")
	require.NoError(t, err)
	assert.Equal(t, ViewWeek, v)

	_, err = ParseView("decade")
	assert.Error(t, err)
}

func TestFilterKeepsEventsOverlappingWindowEdges(t *testing.T) {
	loc := time.UTC
	w := WindowFor(ViewDay, time.Date(2026, 10, 17, 0, 0, 0, 0, loc), loc)

	events := []Event{
		{ID: "before", Start: w.Start.Add(-2 * time.Hour), End: w.Start.Add(-time.Hour)},
		{ID: "touching-start", Start: w.Start.Add(-time.Hour), End: w.Start},
		{ID: "overlap-start", Start: w.Start.Add(-time.Hour), End: w.Start.Add(time.Hour)},
		{ID: "inside", Start: w.Start.Add(5 * time.Hour), End: w.Start.Add(6 * time.Hour)},
		{ID: "overlap-end", Start: w.End.Add(-time.Hour), End: w.End.Add(time.Hour)},
		{ID: "at-end", Start: w.End, End: w.End.Add(time.Hour)},
	}

	got := Filter(events, w)
	ids := make([]string, 0, len(got))
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"overlap-start", "inside", "overlap-end"}, ids)
}

func TestRenderCapsByDevice(t *testing.T) {
	loc := time.UTC
	w := WindowFor(ViewYear, time.Date(2026, 6, 1, 0, 0, 0, 0, loc), loc)

	events := make([]Event, 0, 150)
	for i := 149; i >= 0; i-- {
		start := w.Start.Add(time.Duration(i) * time.Hour)
		events = append(events, Event{ID: fmt.Sprintf("e%03d", i), Start: start, End: start.Add(time.Hour)})
	}

	mobile := Render(events, ViewYear, w, ParseDevice("mobile"))
	assert.Len(t, mobile.Events, MobileLimit)
	assert.Equal(t, 150, mobile.Total)
	assert.True(t, mobile.Truncated)
	assert.Equal(t, "e000", mobile.Events[0].ID)
	assert.Equal(t, "e049", mobile.Events[MobileLimit-1].ID)

	desktop := Render(events, ViewYear, w, ParseDevice(""))
	assert.Len(t, desktop.Events, DesktopLimit)
	assert.True(t, desktop.Truncated)

	small := Render(events[:10], ViewYear, w, DeviceDesktop)
	assert.Len(t, small.Events, 10)
	assert.False(t, small.Truncated)
}

func TestPaletteColorFor(t *testing.T) {
	p := DefaultPalette()

	assert.Equal(t, "#8E7CC3", p.ColorFor("Venue"))
	assert.Equal(t, "#8E7CC3", p.ColorFor("  venue "))
	assert.Equal(t, defaultColor, p.ColorFor(""))

	first := p.ColorFor("Honeymoon planning")
	assert.Equal(t, first, p.ColorFor("honeymoon planning"))
	assert.Contains(t, p.Fallback, first)

	merged := p.Merge(Palette{Categories: map[string]string{"Venue": "#000000"}})
	assert.Equal(t, "#000000", merged.ColorFor("venue"))
	assert.Equal(t, "#E69138", merged.ColorFor("catering"))

	assert.Equal(t, defaultColor, Palette{}.ColorFor("anything"))
}
