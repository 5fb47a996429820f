package services

import (
	"context"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
)

// Summary is a placeholder analytics rollup: raw counts per status and
// channel over the current post set.
type Summary struct {
	TotalPosts int                   `json:"totalPosts"`
	ByStatus   map[model.Status]int  `json:"byStatus"`
	ByChannel  map[model.Channel]int `json:"byChannel"`
}

// AnalyticsService computes the summary. No history, no aggregation
// windows; just counts over what is stored.
type AnalyticsService struct {
	store store.Store
}

func NewAnalyticsService(s store.Store) *AnalyticsService { return &AnalyticsService{store: s} }

func (s *AnalyticsService) Summarize(ctx context.Context) (*Summary, error) {
	posts, err := s.store.Posts().List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		TotalPosts: len(posts),
		ByStatus:   make(map[model.Status]int),
		ByChannel:  make(map[model.Channel]int),
	}
	for _, p := range posts {
		sum.ByStatus[p.Status]++
		sum.ByChannel[p.Channel]++
	}
	return sum, nil
}
