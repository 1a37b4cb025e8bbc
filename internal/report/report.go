// Package report aggregates event durations per project and task.
package report

import (
	"sort"
	"strings"
	"time"

	"plantrack/internal/event"
)

// TaskTotal holds the aggregated duration for a single task.
type TaskTotal struct {
	Task   string
	Total  time.Duration
	Events []event.Event // sorted by start time
}

// Variance compares the total logged time against a target.
type Variance struct {
	Target  time.Duration
	Diff    time.Duration // positive means overrun, negative underrun
	Percent float64       // diff relative to target; 0 when target is 0
}

// Report holds the aggregated durations for one project in one month.
type Report struct {
	Project  string
	Year     int
	Month    time.Month
	Tasks    []TaskTotal // sorted by task name
	Total    time.Duration
	Booked   time.Duration
	Planned  time.Duration
	Variance *Variance // nil unless a target was given
}

// Empty returns true if no events matched the report filter.
func (r Report) Empty() bool {
	return len(r.Tasks) == 0
}

// Aggregate filters events to those whose summary starts with "project:"
// and whose start falls in the given year and month resolved in loc, then
// groups them by task and sums durations. targetHours, when non-nil, adds
// an overrun/underrun variance in fractional hours.
func Aggregate(events []event.Event, project string, year int, month time.Month, loc *time.Location, targetHours *float64) Report {
	r := Report{Project: project, Year: year, Month: month}
	prefix := project + ":"

	byTask := make(map[string][]event.Event)
	for _, e := range events {
		local := e.Start.In(loc)
		if !strings.HasPrefix(e.Summary, prefix) || local.Year() != year || local.Month() != month {
			continue
		}
		duration := e.Duration()
		r.Total += duration
		if e.Booked {
			r.Booked += duration
		} else {
			r.Planned += duration
		}
		byTask[e.Task()] = append(byTask[e.Task()], e)
	}

	for task, taskEvents := range byTask {
		event.SortByStart(taskEvents)
		var total time.Duration
		for _, e := range taskEvents {
			total += e.Duration()
		}
		r.Tasks = append(r.Tasks, TaskTotal{Task: task, Total: total, Events: taskEvents})
	}
	sort.Slice(r.Tasks, func(i, j int) bool { return r.Tasks[i].Task < r.Tasks[j].Task })

	if targetHours != nil {
		target := time.Duration(int64(*targetHours*60)) * time.Minute
		diff := r.Total - target
		percent := 0.0
		if target != 0 {
			percent = diff.Minutes() / target.Minutes() * 100
		}
		r.Variance = &Variance{Target: target, Diff: diff, Percent: percent}
	}

	return r
}
