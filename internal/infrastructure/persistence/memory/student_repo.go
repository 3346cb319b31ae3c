// Package memory implements an in-memory record store. It backs the service
// when no database is configured (the non-persistent variant) and serves as
// the deterministic fake for application-layer tests.
package memory

import (
	"context"
	"sync"

	"github.com/record-hub/student-record-hub/internal/domain/shared"
	"github.com/record-hub/student-record-hub/internal/domain/student"
)

// StudentRepository is an ordered in-memory record store. Safe for
// concurrent use. IDs are assigned from a monotonic counter so deleted IDs
// are never reused.
type StudentRepository struct {
	mu      sync.RWMutex
	records []student.Record
	nextID  int
}

// NewStudentRepository creates an empty store.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{nextID: 1}
}

// NewSeededStudentRepository creates a store preloaded with the initial
// dataset.
func NewSeededStudentRepository() *StudentRepository {
	repo := NewStudentRepository()
	for _, rec := range seedRecords {
		rec.ID = repo.nextID
		repo.nextID++
		repo.records = append(repo.records, rec)
	}
	return repo
}

// List returns a snapshot copy of all records in insertion order.
func (r *StudentRepository) List(ctx context.Context) ([]student.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]student.Record, len(r.records))
	copy(snapshot, r.records)
	return snapshot, nil
}

// Get returns the record with the given ID.
func (r *StudentRepository) Get(ctx context.Context, id int) (*student.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			found := rec
			return &found, nil
		}
	}
	return nil, shared.ErrStudentNotFound
}

// Create inserts a record with a store-assigned ID.
func (r *StudentRepository) Create(ctx context.Context, rec student.Record) (*student.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	r.records = append(r.records, rec)

	created := rec
	return &created, nil
}

// Update applies a partial patch to an existing record.
func (r *StudentRepository) Update(ctx context.Context, id int, patch student.UpdatePatch) (*student.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			patch.Apply(&r.records[i])
			updated := r.records[i]
			return &updated, nil
		}
	}
	return nil, shared.ErrStudentNotFound
}

// Delete removes the record with the given ID. Deleting an absent record is
// a no-op.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// seedRecords is the initial dataset of the non-persistent variant.
var seedRecords = []student.Record{
	{Name: "Ruhan", Course: "Vue 3 Lab", Score: 95, Semester: "Spring 2025", Status: student.StatusActive},
	{Name: "Rejuan", Course: "Frontend Interaction", Score: 90, Semester: "Fall 2024", Status: student.StatusActive},
	{Name: "Ahmed", Course: "Backend Basics", Score: 85, Semester: "Spring 2025", Status: student.StatusInactive},
	{Name: "Zhang", Course: "Computer", Score: 55, Semester: "Spring 2025", Status: student.StatusInactive},
	{Name: "Farhan", Course: "LAB4", Score: 74, Semester: "Spring 2025", Status: student.StatusActive},
	{Name: "Ming", Course: "Mongo", Score: 69, Semester: "Summer 2025", Status: student.StatusActive},
	{Name: "Yu", Course: "SQL", Score: 56, Semester: "Summer 2025", Status: student.StatusActive},
}
