package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture profile's hash.
const TestPassword = "test-password-123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateProfile creates a test profile. Defaults mirror a fresh sign-up:
// role teacher, unapproved, no group.
func (f *Fixtures) CreateProfile(t *testing.T, opts ...ProfileOption) *models.Profile {
	t.Helper()
	f.counter++

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	fullName := fmt.Sprintf("Test User %d", f.counter)
	profile := &models.Profile{
		Email:        fmt.Sprintf("user%d@example.com", f.counter),
		FullName:     &fullName,
		PasswordHash: string(hash),
		Role:         roles.Teacher,
		IsApproved:   false,
	}

	for _, opt := range opts {
		opt(profile)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, full_name, password_hash, role, is_approved, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, full_name, password_hash, role, is_approved, group_id, created_at, updated_at
	`, profile.Email, profile.FullName, profile.PasswordHash, profile.Role, profile.IsApproved, profile.GroupID).Scan(
		&profile.ID, &profile.Email, &profile.FullName, &profile.PasswordHash,
		&profile.Role, &profile.IsApproved, &profile.GroupID, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return profile
}

// ProfileOption configures a test profile
type ProfileOption func(*models.Profile)

// WithEmail sets the profile's email
func WithEmail(email string) ProfileOption {
	return func(p *models.Profile) {
		p.Email = email
	}
}

// WithRole sets the profile's role
func WithRole(role string) ProfileOption {
	return func(p *models.Profile) {
		p.Role = role
	}
}

// WithApproved marks the profile approved
func WithApproved() ProfileOption {
	return func(p *models.Profile) {
		p.IsApproved = true
	}
}

// WithGroup assigns the profile to a group
func WithGroup(groupID uuid.UUID) ProfileOption {
	return func(p *models.Profile) {
		p.GroupID = &groupID
	}
}

// FirstGroup returns one of the seeded groups.
func (f *Fixtures) FirstGroup(t *testing.T) *models.Group {
	t.Helper()
	ctx := context.Background()

	var g models.Group
	err := f.db.Pool.QueryRow(ctx, `
		SELECT id, name, description FROM groups ORDER BY name LIMIT 1
	`).Scan(&g.ID, &g.Name, &g.Description)
	if err != nil {
		t.Fatalf("failed to load seeded group: %v", err)
	}
	return &g
}

// CreateStudent creates a test student
func (f *Fixtures) CreateStudent(t *testing.T, opts ...StudentOption) *models.Student {
	t.Helper()
	f.counter++

	student := &models.Student{
		FullName:  fmt.Sprintf("Student %d", f.counter),
		ClassName: "10A",
		Subjects:  []string{"Math"},
	}

	for _, opt := range opts {
		opt(student)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO students (full_name, class_name, group_id, subjects)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, class_name, group_id, subjects, average, attendance_pct, created_at, updated_at
	`, student.FullName, student.ClassName, student.GroupID, student.Subjects).Scan(
		&student.ID, &student.FullName, &student.ClassName, &student.GroupID, &student.Subjects,
		&student.Average, &student.AttendancePct, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	return student
}

// StudentOption configures a test student
type StudentOption func(*models.Student)

// WithClass sets the student's class
func WithClass(className string) StudentOption {
	return func(s *models.Student) {
		s.ClassName = className
	}
}

// WithStudentGroup assigns the student to a group
func WithStudentGroup(groupID uuid.UUID) StudentOption {
	return func(s *models.Student) {
		s.GroupID = &groupID
	}
}
