// Package mock provides in-memory repository fakes for handler and service
// tests.
package mock

import (
	"context"

	"github.com/campushub/grievance/internal/models"
)

type Mocks struct {
	Users      *UserRepo
	Surveys    *SurveyRepo
	Complaints *ComplaintRepo
	Stats      *StatsRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:      &UserRepo{},
		Surveys:    &SurveyRepo{},
		Complaints: &ComplaintRepo{},
		Stats:      &StatsRepo{},
	}
}

type UserRepo struct {
	Stored    *models.User
	CreateErr error
	LookupErr error
	nextID    int64
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	m.Stored = &models.User{ID: m.nextID, Name: u.Name, Email: u.Email, Password: u.Password, Role: u.Role}
	return m.nextID, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) UpsertUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if m.Stored == nil || m.Stored.Email != u.Email {
		m.nextID++
		u.ID = m.nextID
	} else {
		u.ID = m.Stored.ID
	}
	m.Stored = u
	return u.ID, nil
}

func (m *UserRepo) DeleteUserCascade(ctx context.Context, email string) error {
	if m.Stored != nil && m.Stored.Email == email {
		m.Stored = nil
	}
	return nil
}

type SurveyRepo struct {
	Stored    *models.SurveyStatus
	GetErr    error
	CreateErr error
	UpdateErr error
	nextID    int64
}

func (m *SurveyRepo) GetSurveyByEmail(ctx context.Context, email string) (*models.SurveyStatus, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *SurveyRepo) CreateSurvey(ctx context.Context, s *models.SurveyStatus) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	s.ID = m.nextID
	m.Stored = s
	return s.ID, nil
}

func (m *SurveyRepo) SetCollegeStatus(ctx context.Context, email, status string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.Stored != nil && m.Stored.Email == email {
		m.Stored.CollegeStatus = status
	}
	return nil
}

func (m *SurveyRepo) SetHostelStatus(ctx context.Context, email, status string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.Stored != nil && m.Stored.Email == email {
		m.Stored.HostelStatus = status
	}
	return nil
}

func (m *SurveyRepo) ApproveBoth(ctx context.Context, id int64) (bool, error) {
	if m.UpdateErr != nil {
		return false, m.UpdateErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored.CollegeStatus = models.SurveyApproved
		m.Stored.HostelStatus = models.SurveyApproved
		return true, nil
	}
	return false, nil
}

func (m *SurveyRepo) ListByStatus(ctx context.Context, college, hostel string) ([]models.SurveyStatus, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Stored != nil && m.Stored.CollegeStatus == college && m.Stored.HostelStatus == hostel {
		return []models.SurveyStatus{*m.Stored}, nil
	}
	return nil, nil
}

type ComplaintRepo struct {
	Stored    []models.Complaint
	CreateErr error
	UpdateErr error
	nextID    int64
}

func (m *ComplaintRepo) CreateComplaint(ctx context.Context, c *models.Complaint) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	c.ID = m.nextID
	m.Stored = append(m.Stored, *c)
	return c.ID, nil
}

func (m *ComplaintRepo) GetComplaint(ctx context.Context, id int64) (*models.Complaint, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			return &m.Stored[i], nil
		}
	}
	return nil, nil
}

func (m *ComplaintRepo) CloseComplaint(ctx context.Context, id int64) (bool, error) {
	if m.UpdateErr != nil {
		return false, m.UpdateErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Status = models.ComplaintSolved
			return true, nil
		}
	}
	return false, nil
}

func (m *ComplaintRepo) ListByComplaintStatus(ctx context.Context, status string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range m.Stored {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

type StatsRepo struct {
	Counts   models.DashboardCounts
	Overview []models.StudentOverview
	CountErr error
	ListErr  error
}

func (m *StatsRepo) CountStudents(ctx context.Context) (int64, error) {
	return m.Counts.Students, m.CountErr
}

func (m *StatsRepo) CountCollegeSurveyed(ctx context.Context) (int64, error) {
	return m.Counts.CollegeSurveyed, m.CountErr
}

func (m *StatsRepo) CountHostelSurveyed(ctx context.Context) (int64, error) {
	return m.Counts.HostelSurveyed, m.CountErr
}

func (m *StatsRepo) CountPendingApproval(ctx context.Context) (int64, error) {
	return m.Counts.PendingApproval, m.CountErr
}

func (m *StatsRepo) CountApproved(ctx context.Context) (int64, error) {
	return m.Counts.Approved, m.CountErr
}

func (m *StatsRepo) CountPendingComplaints(ctx context.Context) (int64, error) {
	return m.Counts.PendingComplaints, m.CountErr
}

func (m *StatsRepo) ListStudentOverview(ctx context.Context) ([]models.StudentOverview, error) {
	return m.Overview, m.ListErr
}
