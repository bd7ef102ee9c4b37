package handlers

import (
	"context"
	"time"

	"github.com/avivgl/schoolhub-api/internal/hub"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/google/uuid"
)

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	Create(ctx context.Context, email, passwordHash string, fullName *string) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Profile, error)
	SetRole(ctx context.Context, id uuid.UUID, role string, groupID *uuid.UUID) (*models.Profile, error)
	UpdateName(ctx context.Context, id uuid.UUID, fullName string) (*models.Profile, error)
}

// GroupServiceInterface defines the methods used by handlers from GroupService
type GroupServiceInterface interface {
	List(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, profileID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, role string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// StudentServiceInterface defines the methods used by handlers from StudentService
type StudentServiceInterface interface {
	List(ctx context.Context, groupID *uuid.UUID, search string) ([]models.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	Create(ctx context.Context, fullName, className string, groupID *uuid.UUID, subjects []string) (*models.Student, error)
	Update(ctx context.Context, id uuid.UUID, fullName, className string, groupID *uuid.UUID, subjects []string) (*models.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScheduleServiceInterface defines the methods used by handlers from ScheduleService
type ScheduleServiceInterface interface {
	List(ctx context.Context, className string) ([]models.ScheduleEntry, error)
	Create(ctx context.Context, entry models.ScheduleEntry) (*models.ScheduleEntry, error)
	Update(ctx context.Context, id uuid.UUID, entry models.ScheduleEntry) (*models.ScheduleEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExamServiceInterface defines the methods used by handlers from ExamService
type ExamServiceInterface interface {
	ListByMonth(ctx context.Context, year int, month time.Month) ([]models.Exam, error)
	Create(ctx context.Context, exam models.Exam) (*models.Exam, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceServiceInterface defines the methods used by handlers from AttendanceService
type AttendanceServiceInterface interface {
	ListByDate(ctx context.Context, date time.Time, className string, groupID *uuid.UUID) ([]models.AttendanceRecord, error)
	Upsert(ctx context.Context, studentID uuid.UUID, date time.Time, present bool, grade *int, recordedBy uuid.UUID) (*models.AttendanceRecord, error)
}

// HubInterface defines the methods used by handlers from the Hub
type HubInterface interface {
	Register(client *hub.Client)
	Unregister(client *hub.Client)
	SubscribeTable(clientID, table string)
	UnsubscribeTable(clientID, table string)
	BroadcastProfileChange(op string, profileID, changedBy uuid.UUID)
	BroadcastToUser(userID uuid.UUID, eventType string, payload any)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendApprovalNotice(to, roleLabel string) error
}
