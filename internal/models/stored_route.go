package models

import "time"

// RouteSummary is the listing view of a persisted route.
type RouteSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	DungeonIndex int       `json:"dungeonIndex"`
	DungeonName  string    `json:"dungeonName"`
	Title        string    `json:"title,omitempty"`
	PullCount    int       `json:"pullCount"`
	TotalCount   int       `json:"totalCount"`
}

// StoredRoute is a persisted decode result together with its source string.
type StoredRoute struct {
	RouteSummary
	Input  string        `json:"input"`
	Result *DecodeResult `json:"result"`
}

// NewRouteSummary builds the summary of a decode result.
func NewRouteSummary(id string, createdAt time.Time, result *DecodeResult) RouteSummary {
	s := RouteSummary{ID: id, CreatedAt: createdAt}
	if result.Route != nil {
		s.Title = result.Route.Title
	}
	if r := result.Resolved; r != nil {
		s.DungeonIndex = r.DungeonIndex
		s.DungeonName = r.DungeonName
		s.PullCount = len(r.Pulls)
		s.TotalCount = r.TotalCount
	}
	return s
}
