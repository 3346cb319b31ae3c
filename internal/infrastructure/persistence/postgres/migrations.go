package postgres

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetMigrations returns all embedded migrations, including the demo dataset.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_students",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "seed_students",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
	}
}

// SchemaMigrations returns the schema migrations without the seed data.
// Used when seeding is disabled via configuration.
func SchemaMigrations() []Migration {
	return GetMigrations()[:1]
}

// ─────────────────────────────────────────────────────────────────────────────
// Migration 001: students table
// ─────────────────────────────────────────────────────────────────────────────

const migration001Up = `
CREATE TABLE IF NOT EXISTS students (
	id SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	course VARCHAR(100) NOT NULL,
	score DOUBLE PRECISION NOT NULL DEFAULT 0,
	semester VARCHAR(50) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'Active',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	CONSTRAINT students_status_check CHECK (status IN ('Active', 'Inactive')),
	CONSTRAINT students_score_check CHECK (score >= 0 AND score <= 100)
);

CREATE INDEX IF NOT EXISTS idx_students_course ON students (course);
CREATE INDEX IF NOT EXISTS idx_students_semester ON students (semester);
`

const migration001Down = `
DROP TABLE IF EXISTS students;
`

// ─────────────────────────────────────────────────────────────────────────────
// Migration 002: demo dataset
// ─────────────────────────────────────────────────────────────────────────────

const migration002Up = `
INSERT INTO students (name, course, score, semester, status) VALUES
	('Ruhan', 'Vue 3 Lab', 95, 'Spring 2025', 'Active'),
	('Rejuan', 'Frontend Interaction', 90, 'Fall 2024', 'Active'),
	('Ahmed', 'Backend Basics', 85, 'Spring 2025', 'Inactive'),
	('Alice Chen', 'Vue 3 Lab', 88, 'Spring 2025', 'Active'),
	('Bob Li', 'Frontend Interaction', 76, 'Spring 2025', 'Active'),
	('Carlos Wang', 'Backend Basics', 82, 'Fall 2024', 'Inactive'),
	('Diana Zhang', 'Data Visualization', 91, 'Spring 2024', 'Active'),
	('Eric Wu', 'Data Visualization', 73, 'Fall 2024', 'Active'),
	('Fatima Noor', 'Algorithms', 89, 'Spring 2024', 'Active'),
	('George Sun', 'Algorithms', 67, 'Fall 2024', 'Inactive'),
	('Hannah Park', 'Database Systems', 92, 'Spring 2025', 'Active'),
	('Ivan Lee', 'Database Systems', 78, 'Fall 2024', 'Active'),
	('Jenny Kim', 'UI Design', 94, 'Spring 2024', 'Active'),
	('Kevin Gu', 'UI Design', 81, 'Fall 2025', 'Inactive'),
	('Lily Zhao', 'Networks', 87, 'Spring 2025', 'Active'),
	('Mario Rossi', 'Networks', 72, 'Fall 2024', 'Active'),
	('Nadia Ali', 'Cloud Computing', 90, 'Spring 2025', 'Active'),
	('Oscar Liu', 'Cloud Computing', 84, 'Fall 2025', 'Active'),
	('Priya Singh', 'Vue 3 Lab', 79, 'Fall 2024', 'Inactive'),
	('Qi Zhang', 'Frontend Interaction', 93, 'Spring 2024', 'Active'),
	('Raj Patel', 'Backend Basics', 88, 'Fall 2025', 'Active'),
	('Sara Müller', 'Data Visualization', 82, 'Spring 2025', 'Inactive'),
	('Tom Brown', 'Algorithms', 75, 'Spring 2024', 'Active'),
	('Uma Devi', 'Database Systems', 97, 'Fall 2024', 'Active'),
	('Victor Chan', 'UI Design', 69, 'Spring 2025', 'Inactive'),
	('Wang Wei', 'Networks', 83, 'Fall 2024', 'Active'),
	('Xiao Ming', 'Vue 3 Lab', 91, 'Spring 2024', 'Active'),
	('Yuki Tanaka', 'Frontend Interaction', 88, 'Fall 2025', 'Inactive'),
	('Zara Khan', 'Backend Basics', 80, 'Spring 2024', 'Active'),
	('Ben Davis', 'Cloud Computing', 71, 'Fall 2024', 'Active'),
	('Chen Hao', 'Data Visualization', 86, 'Spring 2025', 'Active'),
	('David Lee', 'Algorithms', 92, 'Fall 2025', 'Active'),
	('Elena Petro', 'Database Systems', 77, 'Spring 2024', 'Inactive'),
	('Feng Yu', 'UI Design', 90, 'Fall 2024', 'Active'),
	('Grace Liu', 'Networks', 85, 'Spring 2025', 'Active'),
	('Henry Zhao', 'Vue 3 Lab', 68, 'Fall 2025', 'Inactive'),
	('Isabella Wu', 'Frontend Interaction', 96, 'Spring 2025', 'Active'),
	('Jack Ma', 'Backend Basics', 74, 'Fall 2024', 'Active'),
	('Katrin Koch', 'Cloud Computing', 88, 'Spring 2024', 'Inactive'),
	('Leo Martin', 'Data Visualization', 81, 'Fall 2025', 'Active');
`

const migration002Down = `
DELETE FROM students;
`
