package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/grupo-nexus/planner/internal/api/respond"
	"github.com/grupo-nexus/planner/internal/calendar"
	"github.com/grupo-nexus/planner/internal/directory"
	"github.com/grupo-nexus/planner/internal/filter"
	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/services"
)

// denseCellLimit is how many posts a desktop cell renders before collapsing
// the rest behind a counter. The response always carries the full set.
const denseCellLimit = 3

// CalendarHandler renders the month grid with bucketed posts.
type CalendarHandler struct {
	posts *services.PostService
	dir   *directory.Directory
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(posts *services.PostService, dir *directory.Directory) *CalendarHandler {
	return &CalendarHandler{posts: posts, dir: dir}
}

// CalendarCell is one grid slot with its posts.
type CalendarCell struct {
	Date     calendar.Date  `json:"date"`
	InMonth  bool           `json:"inMonth"`
	IsToday  bool           `json:"isToday"`
	Posts    []CalendarPost `json:"posts"`
	Overflow int            `json:"overflow"`
}

// CalendarPost decorates a post with its resolved display identities.
type CalendarPost struct {
	model.Post
	DisplayIdentities []model.Identity `json:"displayIdentities"`
}

// GetMonth handles GET /api/calendar/{year}/{month}?owners=a,b
func (h *CalendarHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respond.WriteBadRequest(w, "invalid year")
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		respond.WriteBadRequest(w, "invalid month")
		return
	}

	all, err := h.posts.ListPosts(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}

	posts := make([]model.Post, 0, len(all))
	for _, p := range all {
		posts = append(posts, *p)
	}

	selection := parseOwnerSelection(r.URL.Query().Get("owners"))
	visible := filter.ApplyOwnerFilter(posts, selection)

	cells := make([]CalendarCell, 0, calendar.GridSize)
	for _, day := range calendar.BuildMonthGrid(year, month) {
		matched := calendar.PostsOnDate(visible, day.Date)
		cell := CalendarCell{
			Date:    day.Date,
			InMonth: day.InMonth,
			IsToday: calendar.IsToday(day.Date),
			Posts:   make([]CalendarPost, 0, len(matched)),
		}
		for _, p := range matched {
			cell.Posts = append(cell.Posts, CalendarPost{
				Post:              p,
				DisplayIdentities: h.dir.ResolveDisplayIdentities(p),
			})
		}
		if n := len(cell.Posts) - denseCellLimit; n > 0 {
			cell.Overflow = n
		}
		cells = append(cells, cell)
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": month,
		"cells": cells,
	})
}

func parseOwnerSelection(raw string) *filter.Selection {
	if raw == "" {
		return filter.NewSelection()
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return filter.SelectionOf(ids...)
}
