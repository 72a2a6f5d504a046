package sprints

import "time"

// Sprint is a time-boxed iteration belonging to exactly one project. It has
// no access rules of its own; every visibility and management decision is
// the owning project's decision.
type Sprint struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	ProjectID int64      `json:"projectId"`
}
