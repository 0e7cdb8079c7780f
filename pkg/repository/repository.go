package repository

import (
	"context"

	"github.com/campushub/grievance/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertUser(ctx context.Context, u *models.User) (int64, error)
	// DeleteUserCascade removes the user plus their survey-status row and
	// complaints in one transaction.
	DeleteUserCascade(ctx context.Context, email string) error
}

type SurveyRepo interface {
	GetSurveyByEmail(ctx context.Context, email string) (*models.SurveyStatus, error)
	CreateSurvey(ctx context.Context, s *models.SurveyStatus) (int64, error)
	SetCollegeStatus(ctx context.Context, email, status string) error
	SetHostelStatus(ctx context.Context, email, status string) error
	// ApproveBoth sets both tracks to Approved for the given row id and
	// reports whether a row was updated.
	ApproveBoth(ctx context.Context, id int64) (bool, error)
	ListByStatus(ctx context.Context, college, hostel string) ([]models.SurveyStatus, error)
}

type ComplaintRepo interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) (int64, error)
	GetComplaint(ctx context.Context, id int64) (*models.Complaint, error)
	// CloseComplaint marks the complaint solved and reports whether a row
	// was updated.
	CloseComplaint(ctx context.Context, id int64) (bool, error)
	ListByComplaintStatus(ctx context.Context, status string) ([]models.Complaint, error)
}

type StatsRepo interface {
	CountStudents(ctx context.Context) (int64, error)
	CountCollegeSurveyed(ctx context.Context) (int64, error)
	CountHostelSurveyed(ctx context.Context) (int64, error)
	CountPendingApproval(ctx context.Context) (int64, error)
	CountApproved(ctx context.Context) (int64, error)
	CountPendingComplaints(ctx context.Context) (int64, error)
	ListStudentOverview(ctx context.Context) ([]models.StudentOverview, error)
}
