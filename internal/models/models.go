package models

// Status values for the two survey tracks. Approved is terminal.
const (
	SurveyPending   = "pending"
	SurveySubmitted = "Submitted"
	SurveyApproved  = "Approved"
)

// Status values for complaints.
const (
	ComplaintPending = "pending"
	ComplaintSolved  = "solved"
)

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name" validate:"required"`
	Email    string `json:"email" db:"email" validate:"required,email"`
	Password string `json:"-" db:"password"`
	Role     string `json:"role" db:"role"`
	Created  int64  `json:"created" db:"created"`
}

// SurveyStatus tracks the two survey dimensions for one student. At most one
// row exists per email; name and email are copied from the user at the time of
// the first submission.
type SurveyStatus struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Email         string `json:"email" db:"email"`
	CollegeStatus string `json:"college_status" db:"college_status"`
	HostelStatus  string `json:"hostel_status" db:"hostel_status"`
	Updated       int64  `json:"updated" db:"updated"`
}

type Complaint struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Text    string `json:"text" db:"complaint"`
	Status  string `json:"status" db:"status"`
	Created int64  `json:"created" db:"created"`
}

// StudentOverview is the admin student-list projection: users left-joined with
// their survey row and latest complaint. Missing joined rows surface as the
// placeholder values below rather than empty strings.
type StudentOverview struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CollegeStatus   string `json:"college_status"`
	HostelStatus    string `json:"hostel_status"`
	LatestComplaint string `json:"latest_complaint,omitempty"`
	ComplaintStatus string `json:"complaint_status,omitempty"`
}

// StatusNotSubmitted is projected into StudentOverview when the student has no
// survey row yet.
const StatusNotSubmitted = "Not Submitted"

// DashboardCounts holds the admin dashboard counters. Each is computed by an
// independent query with no shared snapshot, so the set may be transiently
// inconsistent under concurrent writes.
type DashboardCounts struct {
	Students          int64 `json:"students"`
	CollegeSurveyed   int64 `json:"college_surveyed"`
	HostelSurveyed    int64 `json:"hostel_surveyed"`
	PendingApproval   int64 `json:"pending_approval"`
	Approved          int64 `json:"approved"`
	PendingComplaints int64 `json:"pending_complaints"`
}
