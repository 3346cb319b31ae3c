// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"math"
	"sort"

	"github.com/record-hub/student-record-hub/internal/domain/shared"
	"github.com/record-hub/student-record-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATISTICS QUERY
// Computes the five aggregate views over the full record snapshot: per-course
// averages, per-course participation, per-semester distribution, status
// distribution, and the per-semester average trend.
//
// The computation is a pure function of the snapshot: no caching, every call
// re-derives results from the current store state.
// ══════════════════════════════════════════════════════════════════════════════

// unknownSemester is the bucket label for records without a semester.
const unknownSemester = "Unknown"

// CourseAverage is the mean score of one course's records.
type CourseAverage struct {
	Course string  `json:"course"`
	Avg    float64 `json:"avg"`
}

// CourseParticipation is the record count of one course.
type CourseParticipation struct {
	Course string `json:"course"`
	Count  int    `json:"count"`
}

// SemesterCount is the record count of one semester.
type SemesterCount struct {
	Semester string `json:"semester"`
	Count    int    `json:"count"`
}

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SemesterAverage is the mean score of one semester's records.
type SemesterAverage struct {
	Semester string  `json:"semester"`
	Avg      float64 `json:"avg"`
}

// GetStatisticsResult contains all five aggregate views.
type GetStatisticsResult struct {
	ScoresByCourse       []CourseAverage       `json:"scoresByCourse"`
	CourseParticipation  []CourseParticipation `json:"courseParticipation"`
	SemesterDistribution []SemesterCount       `json:"semesterDistribution"`
	StatusDist           []StatusCount         `json:"statusDist"`
	AvgTrend             []SemesterAverage     `json:"avgTrend"`
}

// GetStatisticsHandler computes aggregate statistics over the record store.
type GetStatisticsHandler struct {
	records student.Repository
}

// NewGetStatisticsHandler creates a new handler.
func NewGetStatisticsHandler(records student.Repository) *GetStatisticsHandler {
	return &GetStatisticsHandler{records: records}
}

// Handle reads the current snapshot and aggregates it. A snapshot read
// failure is surfaced as a store error; the aggregation itself cannot fail.
func (h *GetStatisticsHandler) Handle(ctx context.Context) (*GetStatisticsResult, error) {
	snapshot, err := h.records.List(ctx)
	if err != nil {
		return nil, shared.WrapError("statistics", "Handle", shared.ErrStore, "read record snapshot", err)
	}

	return Aggregate(snapshot), nil
}

// Aggregate computes the five views from a snapshot. Pure and deterministic:
// safe to call concurrently and from tests without a store.
func Aggregate(records []student.Record) *GetStatisticsResult {
	return &GetStatisticsResult{
		ScoresByCourse:       scoresByCourse(records),
		CourseParticipation:  courseParticipation(records),
		SemesterDistribution: semesterDistribution(records),
		StatusDist:           statusDistribution(records),
		AvgTrend:             averageTrend(records),
	}
}

// courseGroup accumulates one course's running sum and count.
type courseGroup struct {
	course string
	total  float64
	count  int
}

// groupByCourse groups records by course in first-occurrence order.
func groupByCourse(records []student.Record) []*courseGroup {
	index := make(map[string]*courseGroup)
	var groups []*courseGroup

	for _, rec := range records {
		g, ok := index[rec.Course]
		if !ok {
			g = &courseGroup{course: rec.Course}
			index[rec.Course] = g
			groups = append(groups, g)
		}
		g.total += rec.Score
		g.count++
	}

	return groups
}

// scoresByCourse computes the mean score per course. Division by zero cannot
// occur: groups exist only for courses with at least one record.
func scoresByCourse(records []student.Record) []CourseAverage {
	groups := groupByCourse(records)

	result := make([]CourseAverage, 0, len(groups))
	for _, g := range groups {
		result = append(result, CourseAverage{
			Course: g.course,
			Avg:    round1(g.total / float64(g.count)),
		})
	}
	return result
}

// courseParticipation counts records per course, same ordering as the
// course averages.
func courseParticipation(records []student.Record) []CourseParticipation {
	groups := groupByCourse(records)

	result := make([]CourseParticipation, 0, len(groups))
	for _, g := range groups {
		result = append(result, CourseParticipation{Course: g.course, Count: g.count})
	}
	return result
}

// semesterLabel resolves the grouping key for a record's semester.
// Records without a semester are grouped under "Unknown".
func semesterLabel(rec student.Record) string {
	if rec.Semester == "" {
		return unknownSemester
	}
	return rec.Semester
}

// semesterGroup accumulates one semester's running sum and count.
type semesterGroup struct {
	semester string
	total    float64
	count    int
}

// groupBySemester groups records by semester in first-occurrence order.
func groupBySemester(records []student.Record) []*semesterGroup {
	index := make(map[string]*semesterGroup)
	var groups []*semesterGroup

	for _, rec := range records {
		label := semesterLabel(rec)
		g, ok := index[label]
		if !ok {
			g = &semesterGroup{semester: label}
			index[label] = g
			groups = append(groups, g)
		}
		g.total += rec.Score
		g.count++
	}

	return groups
}

// semesterDistribution counts records per semester.
func semesterDistribution(records []student.Record) []SemesterCount {
	groups := groupBySemester(records)

	result := make([]SemesterCount, 0, len(groups))
	for _, g := range groups {
		result = append(result, SemesterCount{Semester: g.semester, Count: g.count})
	}
	return result
}

// averageTrend computes the mean score per semester, sorted ascending by the
// raw semester label. The sort is lexicographic, not chronological: labels
// like "Fall 2024" and "Spring 2025" do not sort in calendar order.
func averageTrend(records []student.Record) []SemesterAverage {
	groups := groupBySemester(records)

	result := make([]SemesterAverage, 0, len(groups))
	for _, g := range groups {
		result = append(result, SemesterAverage{
			Semester: g.semester,
			Avg:      round1(g.total / float64(g.count)),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Semester < result[j].Semester
	})
	return result
}

// statusDistribution counts exact Active and Inactive matches in two
// independent scans. Records with any other status value land in neither
// bucket; no error is raised for them.
func statusDistribution(records []student.Record) []StatusCount {
	return []StatusCount{
		{Name: string(student.StatusActive), Value: countStatus(records, student.StatusActive)},
		{Name: string(student.StatusInactive), Value: countStatus(records, student.StatusInactive)},
	}
}

func countStatus(records []student.Record, status student.Status) int {
	n := 0
	for _, rec := range records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// round1 rounds to one fractional digit. Cosmetic display rounding; the
// rounded value is not meant as input for further computation.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
