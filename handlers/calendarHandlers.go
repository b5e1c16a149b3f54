package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wedding-planner/calendar"
	"wedding-planner/utilities"
)

// CalendarEventsHandler projeta os todos do usuário como eventos de calendário.
// Query: view, date (YYYY-MM-DD ou RFC3339), tz, device, listId, includeCompleted.
func CalendarEventsHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	q := r.URL.Query()

	view, err := calendar.ParseView(q.Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc := time.UTC
	if tz := q.Get("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("fuso horário inválido: %s", tz))
			return
		}
	}

	current := now().In(loc)
	anchor := current
	if raw := q.Get("date"); raw != "" {
		anchor, err = parseAnchor(raw, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("data inválida: %s", raw))
			return
		}
	}

	// concluídos aparecem por padrão; includeCompleted=false esconde
	includeCompleted := true
	if raw := q.Get("includeCompleted"); raw != "" {
		includeCompleted, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "includeCompleted deve ser true ou false")
			return
		}
	}

	items, err := todoRepo.ListTodos(r.Context(), uid, strings.TrimSpace(q.Get("listId")))
	if err != nil {
		respondStoreError(w, err, "CalendarEventsHandler: Erro ao listar todos", "Lista não encontrada")
		return
	}

	events := calendar.ProjectAll(items, current, loc, palette, includeCompleted)
	window := calendar.WindowFor(view, anchor, loc)
	res := calendar.Render(events, view, window, deviceFor(r))

	utilities.LogDebug("Calendário %s para %s: %d eventos na janela, truncado=%v", view, uid, res.Total, res.Truncated)
	writeJSON(w, http.StatusOK, res)
}

func parseAnchor(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// deviceFor usa ?device= e, sem ele, o User-Agent
func deviceFor(r *http.Request) calendar.Device {
	if d := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("device"))); d != "" {
		return calendar.ParseDevice(d)
	}
	if strings.Contains(r.UserAgent(), "Mobi") {
		return calendar.DeviceMobile
	}
	return calendar.DeviceDesktop
}
