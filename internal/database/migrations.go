package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS groups (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) UNIQUE NOT NULL,
		description TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		full_name VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'teacher',
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		group_id UUID REFERENCES groups(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		full_name VARCHAR(255) NOT NULL,
		class_name VARCHAR(20) NOT NULL,
		group_id UUID REFERENCES groups(id) ON DELETE SET NULL,
		subjects TEXT[] NOT NULL DEFAULT '{}',
		average NUMERIC(4,2) NOT NULL DEFAULT 0,
		attendance_pct INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		day_of_week SMALLINT NOT NULL,
		slot SMALLINT NOT NULL,
		subject VARCHAR(100) NOT NULL,
		class_name VARCHAR(20) NOT NULL,
		teacher_name VARCHAR(255) NOT NULL,
		room VARCHAR(50),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(day_of_week, slot, class_name)
	)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		subject VARCHAR(100) NOT NULL,
		class_name VARCHAR(20) NOT NULL,
		exam_date DATE NOT NULL,
		start_time VARCHAR(5) NOT NULL DEFAULT '09:00',
		duration_min INTEGER NOT NULL DEFAULT 60,
		kind VARCHAR(20) NOT NULL DEFAULT 'exam',
		teacher_name VARCHAR(255) NOT NULL,
		description TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		record_date DATE NOT NULL,
		present BOOLEAN NOT NULL DEFAULT TRUE,
		grade SMALLINT,
		recorded_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(student_id, record_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_group_id ON profiles(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_profile_id ON refresh_tokens(profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_students_group_id ON students(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_students_class_name ON students(class_name)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_exam_date ON exams(exam_date)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_records_record_date ON attendance_records(record_date)`,

	// Reference data: groups are read-only from the application's
	// perspective, so seed them here.
	`INSERT INTO groups (name, description) VALUES
		('North Campus', 'Students and staff of the north campus'),
		('South Campus', 'Students and staff of the south campus'),
		('Evening Program', 'Late-afternoon and evening track')
	ON CONFLICT (name) DO NOTHING`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
