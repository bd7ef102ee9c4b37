package testutil

import (
	"context"
	"time"

	"github.com/avivgl/schoolhub-api/internal/hub"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileService mocks the ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Create(ctx context.Context, email, passwordHash string, fullName *string) (*models.Profile, error) {
	args := m.Called(ctx, email, passwordHash, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) List(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Profile, error) {
	args := m.Called(ctx, id, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) SetRole(ctx context.Context, id uuid.UUID, role string, groupID *uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id, role, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateName(ctx context.Context, id uuid.UUID, fullName string) (*models.Profile, error) {
	args := m.Called(ctx, id, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockGroupService mocks the GroupService
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) List(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupService) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, profileID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email, role string) (*services.TokenPair, error) {
	args := m.Called(userID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockStudentService mocks the StudentService
type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) List(ctx context.Context, groupID *uuid.UUID, search string) ([]models.Student, error) {
	args := m.Called(ctx, groupID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStudentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) Create(ctx context.Context, fullName, className string, groupID *uuid.UUID, subjects []string) (*models.Student, error) {
	args := m.Called(ctx, fullName, className, groupID, subjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) Update(ctx context.Context, id uuid.UUID, fullName, className string, groupID *uuid.UUID, subjects []string) (*models.Student, error) {
	args := m.Called(ctx, id, fullName, className, groupID, subjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockScheduleService mocks the ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) List(ctx context.Context, className string) ([]models.ScheduleEntry, error) {
	args := m.Called(ctx, className)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleService) Create(ctx context.Context, entry models.ScheduleEntry) (*models.ScheduleEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleService) Update(ctx context.Context, id uuid.UUID, entry models.ScheduleEntry) (*models.ScheduleEntry, error) {
	args := m.Called(ctx, id, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExamService mocks the ExamService
type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) ListByMonth(ctx context.Context, year int, month time.Month) ([]models.Exam, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exam), args.Error(1)
}

func (m *MockExamService) Create(ctx context.Context, exam models.Exam) (*models.Exam, error) {
	args := m.Called(ctx, exam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttendanceService mocks the AttendanceService
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) ListByDate(ctx context.Context, date time.Time, className string, groupID *uuid.UUID) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, date, className, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceService) Upsert(ctx context.Context, studentID uuid.UUID, date time.Time, present bool, grade *int, recordedBy uuid.UUID) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, studentID, date, present, grade, recordedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

// MockHub mocks the change-feed hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) SubscribeTable(clientID, table string) {
	m.Called(clientID, table)
}

func (m *MockHub) UnsubscribeTable(clientID, table string) {
	m.Called(clientID, table)
}

func (m *MockHub) BroadcastProfileChange(op string, profileID, changedBy uuid.UUID) {
	m.Called(op, profileID, changedBy)
}

func (m *MockHub) BroadcastToUser(userID uuid.UUID, eventType string, payload any) {
	m.Called(userID, eventType, payload)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendApprovalNotice(to, roleLabel string) error {
	args := m.Called(to, roleLabel)
	return args.Error(0)
}
