// ABOUTME: Read-only aggregation over sessions: month KPIs, calendar markers,
// ABOUTME: day listings, and duration rollups. No caching, no mutation.
package insights

import (
	"sort"

	"github.com/harperreed/fitlog/internal/models"
)

// Reader is the slice of the repository the engine needs.
type Reader interface {
	SessionsByMonth(monthKey string) ([]*models.Session, error)
	SessionsByDate(dateISO string) ([]*models.Session, error)
}

// Engine derives calendar and summary views from raw session records.
// Every call re-reads current state; results are idempotent for unchanged
// data.
type Engine struct {
	r Reader
}

// NewEngine creates an aggregation engine over the given reader.
func NewEngine(r Reader) *Engine {
	return &Engine{r: r}
}

// MonthSummary holds the per-month KPI counts.
type MonthSummary struct {
	MonthKey     string
	Total        int
	CountsByType map[models.SessionType]int
}

// DurationRollup holds per-type minute sums for one month.
type DurationRollup struct {
	MonthKey      string
	MinutesByType map[models.SessionType]int
}

// MonthSummary counts the month's sessions partitioned by type.
func (e *Engine) MonthSummary(monthKey string) (*MonthSummary, error) {
	sessions, err := e.r.SessionsByMonth(monthKey)
	if err != nil {
		return nil, err
	}
	summary := Summarize(sessions)
	summary.MonthKey = monthKey
	return summary, nil
}

// CalendarMarkers maps each day of the month to the set of session types
// present on it. Two gym sessions on one day still yield a single gym
// marker.
func (e *Engine) CalendarMarkers(monthKey string) (map[string][]models.SessionType, error) {
	sessions, err := e.r.SessionsByMonth(monthKey)
	if err != nil {
		return nil, err
	}
	return Markers(sessions), nil
}

// DaySessions returns the sessions on one date, newest first (id
// descending).
func (e *Engine) DaySessions(dateISO string) ([]*models.Session, error) {
	sessions, err := e.r.SessionsByDate(dateISO)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(sessions)
	return sessions, nil
}

// MonthlyDurationRollup sums durationMin per session type for chart input.
func (e *Engine) MonthlyDurationRollup(monthKey string) (*DurationRollup, error) {
	sessions, err := e.r.SessionsByMonth(monthKey)
	if err != nil {
		return nil, err
	}
	rollup := Rollup(sessions)
	rollup.MonthKey = monthKey
	return rollup, nil
}

// Summarize counts sessions by type.
func Summarize(sessions []*models.Session) *MonthSummary {
	summary := &MonthSummary{CountsByType: make(map[models.SessionType]int, len(models.AllSessionTypes))}
	for _, t := range models.AllSessionTypes {
		summary.CountsByType[t] = 0
	}
	for _, s := range sessions {
		summary.Total++
		summary.CountsByType[s.Type]++
	}
	return summary
}

// Markers builds the dateISO -> type-set mapping with set semantics. Types
// within a day are reported in the fixed gym, basketball, other order.
func Markers(sessions []*models.Session) map[string][]models.SessionType {
	seen := make(map[string]map[models.SessionType]bool)
	for _, s := range sessions {
		day := seen[s.DateISO]
		if day == nil {
			day = make(map[models.SessionType]bool, 3)
			seen[s.DateISO] = day
		}
		day[s.Type] = true
	}

	markers := make(map[string][]models.SessionType, len(seen))
	for iso, day := range seen {
		for _, t := range models.AllSessionTypes {
			if day[t] {
				markers[iso] = append(markers[iso], t)
			}
		}
	}
	return markers
}

// Rollup sums durationMin by session type.
func Rollup(sessions []*models.Session) *DurationRollup {
	rollup := &DurationRollup{MinutesByType: make(map[models.SessionType]int, len(models.AllSessionTypes))}
	for _, t := range models.AllSessionTypes {
		rollup.MinutesByType[t] = 0
	}
	for _, s := range sessions {
		rollup.MinutesByType[s.Type] += s.DurationMin
	}
	return rollup
}

// SortNewestFirst orders sessions by id descending in place.
func SortNewestFirst(sessions []*models.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID > sessions[j].ID
	})
}
