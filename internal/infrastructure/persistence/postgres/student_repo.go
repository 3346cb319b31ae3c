package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/record-hub/student-record-hub/internal/domain/shared"
	"github.com/record-hub/student-record-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository for PostgreSQL.
// Rows are returned in id order so aggregation results stay stable across
// requests.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

// List returns all records ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]student.Record, error) {
	query := `
		SELECT id, name, course, score, semester, status
		FROM students
		ORDER BY id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, shared.WrapError("student", "List", shared.ErrStore, "failed to query students", err)
	}
	defer rows.Close()

	var records []student.Record
	for rows.Next() {
		var rec student.Record
		var status string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Course, &rec.Score, &rec.Semester, &status); err != nil {
			return nil, shared.WrapError("student", "List", shared.ErrStore, "failed to scan student row", err)
		}
		rec.Status = student.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("student", "List", shared.ErrStore, "failed to read student rows", err)
	}

	return records, nil
}

// Get returns the record with the given ID.
func (r *StudentRepository) Get(ctx context.Context, id int) (*student.Record, error) {
	query := `
		SELECT id, name, course, score, semester, status
		FROM students
		WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	rec, err := scanRecord(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStudentNotFound
		}
		return nil, shared.WrapError("student", "Get", shared.ErrStore, "failed to get student", err)
	}

	return rec, nil
}

// Create inserts a record and returns it with the database-assigned ID.
func (r *StudentRepository) Create(ctx context.Context, rec student.Record) (*student.Record, error) {
	query := `
		INSERT INTO students (name, course, score, semester, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query,
		rec.Name,
		rec.Course,
		rec.Score,
		rec.Semester,
		string(rec.Status),
	).Scan(&rec.ID)
	if err != nil {
		return nil, shared.WrapError("student", "Create", shared.ErrStore, "failed to create student", err)
	}

	return &rec, nil
}

// Update applies a partial patch to an existing record. The read and write
// run in one transaction so concurrent patches do not clobber each other.
func (r *StudentRepository) Update(ctx context.Context, id int, patch student.UpdatePatch) (*student.Record, error) {
	var updated *student.Record

	err := r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			SELECT id, name, course, score, semester, status
			FROM students
			WHERE id = $1
			FOR UPDATE
		`, id)

		rec, err := scanRecord(row)
		if err != nil {
			if IsNoRows(err) {
				return shared.ErrStudentNotFound
			}
			return fmt.Errorf("failed to read student: %w", err)
		}

		patch.Apply(rec)

		_, err = tx.Exec(ctx, `
			UPDATE students SET
				name = $1,
				course = $2,
				score = $3,
				semester = $4,
				status = $5,
				updated_at = $6
			WHERE id = $7
		`,
			rec.Name,
			rec.Course,
			rec.Score,
			rec.Semester,
			string(rec.Status),
			time.Now().UTC(),
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update student: %w", err)
		}

		updated = rec
		return nil
	})
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, err
		}
		return nil, shared.WrapError("student", "Update", shared.ErrStore, "failed to update student", err)
	}

	return updated, nil
}

// Delete removes the record with the given ID. Deleting an absent record is
// a no-op.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.conn.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return shared.WrapError("student", "Delete", shared.ErrStore, "failed to delete student", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*student.Record, error) {
	var rec student.Record
	var status string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Course, &rec.Score, &rec.Semester, &status); err != nil {
		return nil, err
	}
	rec.Status = student.Status(status)
	return &rec, nil
}
