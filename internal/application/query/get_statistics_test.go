package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/record-hub/student-record-hub/internal/domain/shared"
	"github.com/record-hub/student-record-hub/internal/domain/student"
)

func sampleRecords() []student.Record {
	return []student.Record{
		{ID: 1, Name: "Ruhan", Course: "Vue 3 Lab", Score: 95, Semester: "Spring 2025", Status: student.StatusActive},
		{ID: 2, Name: "Rejuan", Course: "Frontend Interaction", Score: 90, Semester: "Fall 2024", Status: student.StatusActive},
		{ID: 3, Name: "Ahmed", Course: "Backend Basics", Score: 85, Semester: "Spring 2025", Status: student.StatusInactive},
		{ID: 4, Name: "Zhang", Course: "Vue 3 Lab", Score: 55, Semester: "Spring 2025", Status: student.StatusInactive},
		{ID: 5, Name: "Farhan", Course: "LAB4", Score: 74, Semester: "Spring 2025", Status: student.StatusActive},
	}
}

func TestAggregate_CourseAverages(t *testing.T) {
	result := Aggregate(sampleRecords())

	// First-occurrence order, not alphabetical
	require.Len(t, result.ScoresByCourse, 4)
	assert.Equal(t, "Vue 3 Lab", result.ScoresByCourse[0].Course)
	assert.Equal(t, "Frontend Interaction", result.ScoresByCourse[1].Course)
	assert.Equal(t, "Backend Basics", result.ScoresByCourse[2].Course)
	assert.Equal(t, "LAB4", result.ScoresByCourse[3].Course)

	// (95+55)/2 = 75.0
	assert.Equal(t, 75.0, result.ScoresByCourse[0].Avg)
	// Single-record course: avg equals the record's score
	assert.Equal(t, 90.0, result.ScoresByCourse[1].Avg)
}

func TestAggregate_CourseAverageRounding(t *testing.T) {
	records := []student.Record{
		{ID: 1, Course: "Go", Score: 70, Semester: "Spring 2025", Status: student.StatusActive},
		{ID: 2, Course: "Go", Score: 71, Semester: "Spring 2025", Status: student.StatusActive},
		{ID: 3, Course: "Go", Score: 73, Semester: "Spring 2025", Status: student.StatusActive},
	}

	result := Aggregate(records)

	// (70+71+73)/3 = 71.333... rounds to 71.3
	require.Len(t, result.ScoresByCourse, 1)
	assert.Equal(t, 71.3, result.ScoresByCourse[0].Avg)
}

func TestAggregate_ParticipationSumEqualsTotal(t *testing.T) {
	records := sampleRecords()
	result := Aggregate(records)

	total := 0
	for _, p := range result.CourseParticipation {
		total += p.Count
	}
	assert.Equal(t, len(records), total)

	// Same ordering as the averages view
	require.Len(t, result.CourseParticipation, len(result.ScoresByCourse))
	for i := range result.CourseParticipation {
		assert.Equal(t, result.ScoresByCourse[i].Course, result.CourseParticipation[i].Course)
	}
}

func TestAggregate_SemesterDistribution(t *testing.T) {
	result := Aggregate(sampleRecords())

	require.Len(t, result.SemesterDistribution, 2)
	assert.Equal(t, "Spring 2025", result.SemesterDistribution[0].Semester)
	assert.Equal(t, 4, result.SemesterDistribution[0].Count)
	assert.Equal(t, "Fall 2024", result.SemesterDistribution[1].Semester)
	assert.Equal(t, 1, result.SemesterDistribution[1].Count)
}

func TestAggregate_MissingSemesterGroupsAsUnknown(t *testing.T) {
	records := []student.Record{
		{ID: 1, Course: "Go", Score: 80, Semester: "", Status: student.StatusActive},
		{ID: 2, Course: "Go", Score: 60, Semester: "", Status: student.StatusActive},
		{ID: 3, Course: "Go", Score: 90, Semester: "Spring 2025", Status: student.StatusActive},
	}

	result := Aggregate(records)

	require.Len(t, result.SemesterDistribution, 2)
	assert.Equal(t, "Unknown", result.SemesterDistribution[0].Semester)
	assert.Equal(t, 2, result.SemesterDistribution[0].Count)
}

func TestAggregate_StatusDistribution(t *testing.T) {
	result := Aggregate(sampleRecords())

	require.Len(t, result.StatusDist, 2)
	assert.Equal(t, "Active", result.StatusDist[0].Name)
	assert.Equal(t, 3, result.StatusDist[0].Value)
	assert.Equal(t, "Inactive", result.StatusDist[1].Name)
	assert.Equal(t, 2, result.StatusDist[1].Value)
}

func TestAggregate_ThirdStatusCountedInNeitherBucket(t *testing.T) {
	records := []student.Record{
		{ID: 1, Course: "Go", Score: 80, Semester: "Spring 2025", Status: student.StatusActive},
		{ID: 2, Course: "Go", Score: 60, Semester: "Spring 2025", Status: student.Status("Suspended")},
	}

	result := Aggregate(records)

	assert.Equal(t, 1, result.StatusDist[0].Value)
	assert.Equal(t, 0, result.StatusDist[1].Value)
	assert.Less(t, result.StatusDist[0].Value+result.StatusDist[1].Value, len(records))
}

func TestAggregate_AvgTrendSortedLexicographically(t *testing.T) {
	records := []student.Record{
		{ID: 1, Course: "Go", Score: 80, Semester: "Spring 2024", Status: student.StatusActive},
		{ID: 2, Course: "Go", Score: 70, Semester: "Fall 2024", Status: student.StatusActive},
		{ID: 3, Course: "Go", Score: 90, Semester: "Summer 2025", Status: student.StatusActive},
	}

	result := Aggregate(records)

	// "Fall 2024" sorts before "Spring 2024" even though it comes later in
	// the calendar.
	require.Len(t, result.AvgTrend, 3)
	assert.Equal(t, "Fall 2024", result.AvgTrend[0].Semester)
	assert.Equal(t, "Spring 2024", result.AvgTrend[1].Semester)
	assert.Equal(t, "Summer 2025", result.AvgTrend[2].Semester)
}

func TestAggregate_AvgTrendAverages(t *testing.T) {
	records := []student.Record{
		{ID: 1, Course: "Go", Score: 81, Semester: "Spring 2025", Status: student.StatusActive},
		{ID: 2, Course: "Rust", Score: 60, Semester: "Spring 2025", Status: student.StatusActive},
	}

	result := Aggregate(records)

	require.Len(t, result.AvgTrend, 1)
	assert.Equal(t, 70.5, result.AvgTrend[0].Avg)
}

func TestAggregate_EmptySnapshot(t *testing.T) {
	result := Aggregate(nil)

	assert.Empty(t, result.ScoresByCourse)
	assert.Empty(t, result.CourseParticipation)
	assert.Empty(t, result.SemesterDistribution)
	assert.Empty(t, result.AvgTrend)

	// Status buckets are always present, just zero
	require.Len(t, result.StatusDist, 2)
	assert.Equal(t, 0, result.StatusDist[0].Value)
	assert.Equal(t, 0, result.StatusDist[1].Value)
}

// failingRepository always fails the snapshot read.
type failingRepository struct {
	student.Repository
}

func (f *failingRepository) List(ctx context.Context) ([]student.Record, error) {
	return nil, errors.New("connection refused")
}

func TestGetStatisticsHandler_StoreFailure(t *testing.T) {
	handler := NewGetStatisticsHandler(&failingRepository{})

	result, err := handler.Handle(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, shared.IsStore(err))
}
