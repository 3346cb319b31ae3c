// Package assistant implements the conversational assistant: dataset context
// assembly and the proxy that forwards questions to the completion provider.
package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/record-hub/student-record-hub/internal/domain/student"
)

// ContextFallback is returned in place of dataset context when the record
// snapshot cannot be read. The assistant proceeds in degraded mode with this
// text instead of failing the whole request.
const ContextFallback = "The student record data could not be loaded. " +
	"Answer general questions, and tell the user that live record data is currently unavailable."

// defaultReference is the static block of domain and lab descriptions
// injected into every prompt alongside live data. It is constant reference
// text, not derived from the dataset.
const defaultReference = `About this system:
This is the student record hub for the web development lab track. It tracks
enrollment records across courses and semesters. Each record carries a score
(0-100) and a status (Active or Inactive).

Lab reference:
- Vue 3 Lab: component-based frontend development with the Vue 3 framework.
- Frontend Interaction: event handling, forms, and client-side state.
- Backend Basics: HTTP services, routing, and persistence fundamentals.
- Data Visualization: charting aggregate statistics from the record set.
- LAB4: the integrated project combining frontend and backend work.`

// ContextBuilder produces the bounded natural-language summary of the record
// snapshot that is embedded verbatim into the assistant's system prompt.
// Output is deterministic for a given snapshot.
type ContextBuilder struct {
	reference string
}

// NewContextBuilder creates a builder. An empty reference selects the
// built-in lab description block.
func NewContextBuilder(reference string) *ContextBuilder {
	if reference == "" {
		reference = defaultReference
	}
	return &ContextBuilder{reference: reference}
}

// Build renders the dataset context: system-wide statistics, the static
// reference block, and one line per record. It never fails; an empty
// snapshot produces a valid summary with average score 0.
func (b *ContextBuilder) Build(records []student.Record) string {
	var sb strings.Builder

	active := 0
	total := 0.0
	var courses []string
	seen := make(map[string]bool)

	for _, rec := range records {
		total += rec.Score
		if rec.Status == student.StatusActive {
			active++
		}
		if !seen[rec.Course] {
			seen[rec.Course] = true
			courses = append(courses, rec.Course)
		}
	}

	// Literal 0 for the empty snapshot, never a division by zero.
	avg := "0"
	if len(records) > 0 {
		avg = strconv.FormatFloat(round1(total/float64(len(records))), 'f', 1, 64)
	}

	sb.WriteString("System statistics:\n")
	fmt.Fprintf(&sb, "- Total students: %d\n", len(records))
	fmt.Fprintf(&sb, "- Active students: %d\n", active)
	fmt.Fprintf(&sb, "- Average score: %s\n", avg)
	fmt.Fprintf(&sb, "- Courses: %s\n", strings.Join(courses, ", "))

	sb.WriteString("\n")
	sb.WriteString(b.reference)
	sb.WriteString("\n\nStudent records:\n")

	for _, rec := range records {
		fmt.Fprintf(&sb, "%d: %s | %s | %s | %s | %s\n",
			rec.ID,
			rec.Name,
			rec.Course,
			rec.Semester,
			strconv.FormatFloat(rec.Score, 'f', -1, 64),
			rec.Status,
		)
	}

	return sb.String()
}
