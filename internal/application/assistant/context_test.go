package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/record-hub/student-record-hub/internal/domain/student"
)

func TestContextBuilder_Build(t *testing.T) {
	builder := NewContextBuilder("")

	records := []student.Record{
		{ID: 1, Name: "Ruhan", Course: "Vue 3 Lab", Score: 95, Semester: "Spring 2025", Status: student.StatusActive},
		{ID: 2, Name: "Ahmed", Course: "Backend Basics", Score: 85, Semester: "Spring 2025", Status: student.StatusInactive},
	}

	out := builder.Build(records)

	assert.Contains(t, out, "- Total students: 2")
	assert.Contains(t, out, "- Active students: 1")
	assert.Contains(t, out, "- Average score: 90.0")
	assert.Contains(t, out, "- Courses: Vue 3 Lab, Backend Basics")
	assert.Contains(t, out, "1: Ruhan | Vue 3 Lab | Spring 2025 | 95 | Active")
	assert.Contains(t, out, "2: Ahmed | Backend Basics | Spring 2025 | 85 | Inactive")
}

func TestContextBuilder_EmptySnapshot(t *testing.T) {
	builder := NewContextBuilder("")

	out := builder.Build(nil)

	// Literal 0, never a division error
	assert.Contains(t, out, "- Total students: 0")
	assert.Contains(t, out, "- Average score: 0\n")
	assert.NotContains(t, out, "NaN")
}

func TestContextBuilder_CoursesInInsertionOrder(t *testing.T) {
	builder := NewContextBuilder("")

	records := []student.Record{
		{ID: 1, Name: "A", Course: "Zulu", Score: 10, Semester: "S", Status: student.StatusActive},
		{ID: 2, Name: "B", Course: "Alpha", Score: 20, Semester: "S", Status: student.StatusActive},
		{ID: 3, Name: "C", Course: "Zulu", Score: 30, Semester: "S", Status: student.StatusActive},
	}

	out := builder.Build(records)

	assert.Contains(t, out, "- Courses: Zulu, Alpha")
}

func TestContextBuilder_CustomReference(t *testing.T) {
	builder := NewContextBuilder("Custom lab reference block.")

	out := builder.Build(nil)

	assert.Contains(t, out, "Custom lab reference block.")
}

func TestContextBuilder_Deterministic(t *testing.T) {
	builder := NewContextBuilder("")
	records := []student.Record{
		{ID: 1, Name: "Ruhan", Course: "Vue 3 Lab", Score: 95, Semester: "Spring 2025", Status: student.StatusActive},
	}

	assert.Equal(t, builder.Build(records), builder.Build(records))
}
