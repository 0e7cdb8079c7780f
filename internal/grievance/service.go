// Package grievance implements the grievance record store: user accounts,
// the two-track survey status state machine, complaints, and the admin
// dashboard aggregates.
package grievance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/grievance/internal/models"
	"github.com/campushub/grievance/internal/survey"
	"github.com/campushub/grievance/pkg/repository"
)

// Service is the sole arbiter of status transitions over the three
// collections. It owns no state beyond the repositories it was built with.
type Service struct {
	users      repository.UserRepo
	surveys    repository.SurveyRepo
	complaints repository.ComplaintRepo
	stats      repository.StatsRepo
	validator  *survey.Validator
	logger     *slog.Logger

	// legacyPlaintext reproduces the original app's clear-text password
	// storage and recovery-by-display. Off by default; see config.
	legacyPlaintext bool
}

type Option func(*Service)

// WithLegacyPlaintextPasswords enables clear-text password storage and the
// recovery endpoint, for faithful ports of the original behavior only.
func WithLegacyPlaintextPasswords() Option {
	return func(s *Service) { s.legacyPlaintext = true }
}

func NewService(users repository.UserRepo, surveys repository.SurveyRepo, complaints repository.ComplaintRepo, stats repository.StatsRepo, validator *survey.Validator, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	s := &Service{
		users:      users,
		surveys:    surveys,
		complaints: complaints,
		stats:      stats,
		validator:  validator,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

const passwordSymbols = "!@#$%^&*()_+"

// validPassword enforces the signup password policy: at least 8 characters,
// at least one letter, one digit and one symbol, drawn only from those
// character classes.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}

	var letter, digit, symbol bool
	for _, c := range pw {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			letter = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, c):
			symbol = true
		default:
			return false
		}
	}

	return letter && digit && symbol
}

// Register creates a student account. The users table carries a unique
// constraint on email, so the pre-insert lookup is a courtesy check only; a
// concurrent duplicate insert still surfaces as ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, name, email, password string) (int64, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if !validPassword(password) {
		return 0, fmt.Errorf("%w: password must be at least 8 characters and contain a letter, a digit and a symbol (%s)", ErrValidation, passwordSymbols)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return 0, ErrDuplicateEmail
	}

	stored := password
	if !s.legacyPlaintext {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return 0, fmt.Errorf("hash password: %w", err)
		}
		stored = string(hash)
	}

	id, err := s.users.CreateUser(ctx, &models.User{Name: name, Email: email, Password: stored, Role: models.RoleStudent})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	return id, nil
}

// Authenticate returns the matching user or ErrAuthFailure. Admins go through
// the same path as students; the caller reads the role off the result.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return nil, ErrAuthFailure
	}

	if s.legacyPlaintext {
		if u.Password != password {
			return nil, ErrAuthFailure
		}
	} else if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrAuthFailure
	}

	return u, nil
}

// RecoverPassword returns the stored clear-text password. Only available in
// legacy plaintext mode; hashed passwords cannot be recovered.
func (s *Service) RecoverPassword(ctx context.Context, email string) (string, error) {
	if !s.legacyPlaintext {
		return "", ErrRecoveryUnavailable
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return "", ErrNotFound
	}

	return u.Password, nil
}

// RemoveUser deletes the user along with their survey-status row and
// complaints in one transaction.
func (s *Service) RemoveUser(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	return s.users.DeleteUserCascade(ctx, email)
}

// SubmitCollegeSurvey records a college survey submission for the student.
// The survey row is created lazily with the hostel track left pending; a
// second submission once the track is Submitted or Approved reports
// ErrAlreadySubmitted without touching the row.
func (s *Service) SubmitCollegeSurvey(ctx context.Context, name, email string, responses json.RawMessage) error {
	return s.submit(ctx, survey.TrackCollege, name, email, responses)
}

// SubmitHostelSurvey is the hostel-track counterpart of SubmitCollegeSurvey.
// Both tracks use the same resubmission rule.
func (s *Service) SubmitHostelSurvey(ctx context.Context, name, email string, responses json.RawMessage) error {
	return s.submit(ctx, survey.TrackHostel, name, email, responses)
}

func (s *Service) submit(ctx context.Context, track survey.Track, name, email string, responses json.RawMessage) error {
	if name == "" || email == "" {
		return fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if s.validator != nil {
		if err := s.validator.Validate(ctx, responses); err != nil {
			return fmt.Errorf("%w: %s", ErrValidation, err)
		}
	}

	row, err := s.surveys.GetSurveyByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup survey status: %w", err)
	}

	if row == nil {
		ns := &models.SurveyStatus{
			Name:          name,
			Email:         email,
			CollegeStatus: models.SurveyPending,
			HostelStatus:  models.SurveyPending,
		}
		if track == survey.TrackCollege {
			ns.CollegeStatus = models.SurveySubmitted
		} else {
			ns.HostelStatus = models.SurveySubmitted
		}

		if _, err := s.surveys.CreateSurvey(ctx, ns); err != nil {
			return fmt.Errorf("create survey status: %w", err)
		}
		return nil
	}

	current := row.CollegeStatus
	if track == survey.TrackHostel {
		current = row.HostelStatus
	}
	if current == models.SurveySubmitted || current == models.SurveyApproved {
		return ErrAlreadySubmitted
	}

	if track == survey.TrackCollege {
		err = s.surveys.SetCollegeStatus(ctx, email, models.SurveySubmitted)
	} else {
		err = s.surveys.SetHostelStatus(ctx, email, models.SurveySubmitted)
	}
	if err != nil {
		return fmt.Errorf("update survey status: %w", err)
	}

	return nil
}

// SurveyStatusFor returns the student's survey row, or a pending placeholder
// row when nothing was submitted yet.
func (s *Service) SurveyStatusFor(ctx context.Context, email string) (*models.SurveyStatus, error) {
	row, err := s.surveys.GetSurveyByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup survey status: %w", err)
	}
	if row == nil {
		return &models.SurveyStatus{
			Email:         email,
			CollegeStatus: models.SurveyPending,
			HostelStatus:  models.SurveyPending,
		}, nil
	}

	return row, nil
}

// ApproveSurvey marks both tracks Approved for the given survey row,
// regardless of their prior values.
func (s *Service) ApproveSurvey(ctx context.Context, id int64) error {
	ok, err := s.surveys.ApproveBoth(ctx, id)
	if err != nil {
		return fmt.Errorf("approve survey: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// ListAwaitingApproval returns rows where both tracks are Submitted. Rows with
// only one track submitted never enter the approval queue.
func (s *Service) ListAwaitingApproval(ctx context.Context) ([]models.SurveyStatus, error) {
	return s.surveys.ListByStatus(ctx, models.SurveySubmitted, models.SurveySubmitted)
}

// ListApproved returns rows where both tracks are Approved.
func (s *Service) ListApproved(ctx context.Context) ([]models.SurveyStatus, error) {
	return s.surveys.ListByStatus(ctx, models.SurveyApproved, models.SurveyApproved)
}

// SubmitComplaint always inserts a new pending complaint. No deduplication.
func (s *Service) SubmitComplaint(ctx context.Context, name, email, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if name == "" || email == "" || text == "" {
		return 0, fmt.Errorf("%w: name, email and complaint text are required", ErrValidation)
	}

	id, err := s.complaints.CreateComplaint(ctx, &models.Complaint{Name: name, Email: email, Text: text, Status: models.ComplaintPending})
	if err != nil {
		return 0, fmt.Errorf("create complaint: %w", err)
	}

	return id, nil
}

// CloseComplaint marks the complaint solved. A missing id is logged and
// swallowed; repeated closes are harmless.
func (s *Service) CloseComplaint(ctx context.Context, id int64) error {
	ok, err := s.complaints.CloseComplaint(ctx, id)
	if err != nil {
		return fmt.Errorf("close complaint: %w", err)
	}
	if !ok {
		s.logger.Warn("close complaint: no such id", slog.Int64("id", id))
	}

	return nil
}

// ListPendingComplaints returns all complaints still awaiting resolution.
func (s *Service) ListPendingComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.complaints.ListByComplaintStatus(ctx, models.ComplaintPending)
}

// DashboardCounts gathers the admin dashboard counters. Each counter is an
// independent query; a failing counter degrades to zero with a log line
// rather than failing the whole dashboard.
func (s *Service) DashboardCounts(ctx context.Context) models.DashboardCounts {
	var c models.DashboardCounts
	c.Students = s.countOrZero(ctx, "students", s.stats.CountStudents)
	c.CollegeSurveyed = s.countOrZero(ctx, "college_surveyed", s.stats.CountCollegeSurveyed)
	c.HostelSurveyed = s.countOrZero(ctx, "hostel_surveyed", s.stats.CountHostelSurveyed)
	c.PendingApproval = s.countOrZero(ctx, "pending_approval", s.stats.CountPendingApproval)
	c.Approved = s.countOrZero(ctx, "approved", s.stats.CountApproved)
	c.PendingComplaints = s.countOrZero(ctx, "pending_complaints", s.stats.CountPendingComplaints)

	return c
}

func (s *Service) countOrZero(ctx context.Context, name string, fn func(context.Context) (int64, error)) int64 {
	n, err := fn(ctx)
	if err != nil {
		s.logger.Warn("dashboard count failed", slog.String("counter", name), slog.Any("err", err))
		return 0
	}
	return n
}

// StudentOverview returns the joined per-student projection for the admin
// student list.
func (s *Service) StudentOverview(ctx context.Context) ([]models.StudentOverview, error) {
	return s.stats.ListStudentOverview(ctx)
}

// SeedAdmin upserts the configured admin account so the admin signs in
// through the same path as everyone else. Idempotent by email.
func (s *Service) SeedAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password are required", ErrValidation)
	}

	stored := password
	if !s.legacyPlaintext {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		stored = string(hash)
	}

	if _, err := s.users.UpsertUser(ctx, &models.User{Name: name, Email: email, Password: stored, Role: models.RoleAdmin}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
