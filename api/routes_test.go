package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/campushub/grievance/api"
	"github.com/campushub/grievance/internal/config"
	dbpkg "github.com/campushub/grievance/internal/db"
	"github.com/campushub/grievance/internal/grievance"
	"github.com/campushub/grievance/internal/models"
	"github.com/campushub/grievance/internal/repository/sqlite"
	"github.com/campushub/grievance/internal/survey"
)

// TestFullFlow drives the wired router end to end: signup, sign in, submit
// both surveys, admin approval, complaint close.
func TestFullFlow(t *testing.T) {
	ctx := context.Background()

	d, err := dbpkg.New(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, email TEXT NOT NULL UNIQUE, password TEXT NOT NULL, role TEXT NOT NULL DEFAULT 'student', created INTEGER NOT NULL);`,
		`CREATE TABLE IF NOT EXISTS survey_status (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, email TEXT NOT NULL UNIQUE, college_status TEXT NOT NULL DEFAULT 'pending', hostel_status TEXT NOT NULL DEFAULT 'pending', updated INTEGER NOT NULL);`,
		`CREATE TABLE IF NOT EXISTS complaints (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, email TEXT NOT NULL, complaint TEXT NOT NULL, status TEXT NOT NULL DEFAULT 'pending', created INTEGER NOT NULL);`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(ctx, s); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}

	validator, err := survey.NewValidator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	repo := sqlite.New(d, nil)
	svc := grievance.NewService(repo, repo, repo, repo, validator, nil)
	if err := svc.SeedAdmin(ctx, "Admin", "admin@college.local", "Secret99!"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := &config.Config{JWTSecret: "testsecret", TokenDuration: time.Hour}
	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "now", svc))
	client := srv.Client()

	postJSON := func(path, token string, body any) *http.Response {
		t.Helper()
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewBuffer(b))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		return resp
	}

	getJSON := func(path, token string, out any) int {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer resp.Body.Close()
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				t.Fatalf("decode %s: %v", path, err)
			}
		}
		return resp.StatusCode
	}

	decodeAuth := func(resp *http.Response) (token string) {
		t.Helper()
		defer resp.Body.Close()
		var ar struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
			t.Fatalf("decode auth: %v", err)
		}
		return ar.Token
	}

	// signup + signin
	resp := postJSON("/v1/auth/signup", "", map[string]string{"name": "Asha", "email": "asha@x.com", "password": "Abc123!@"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON("/v1/auth/signin", "", map[string]string{"email": "asha@x.com", "password": "Abc123!@"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin status = %d", resp.StatusCode)
	}
	studentToken := decodeAuth(resp)

	resp = postJSON("/v1/auth/signin", "", map[string]string{"email": "admin@college.local", "password": "Secret99!"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin signin status = %d", resp.StatusCode)
	}
	adminToken := decodeAuth(resp)

	// students cannot reach admin routes
	if code := getJSON("/v1/admin/dashboard", studentToken, nil); code != http.StatusForbidden {
		t.Fatalf("student on admin route = %d", code)
	}

	// submit both surveys
	answers := make([]string, len(survey.CollegeQuestions)-1)
	for i := range answers {
		answers[i] = "Good"
	}
	payload := map[string]any{"responses": survey.Response{Answers: answers}}

	resp = postJSON("/v1/surveys/college", studentToken, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("college submit status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON("/v1/surveys/hostel", studentToken, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("hostel submit status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// the row is now in the approval queue
	var queue struct {
		Items []models.SurveyStatus `json:"items"`
	}
	if code := getJSON("/v1/admin/approvals", adminToken, &queue); code != http.StatusOK {
		t.Fatalf("approvals status = %d", code)
	}
	if len(queue.Items) != 1 || queue.Items[0].Email != "asha@x.com" {
		t.Fatalf("unexpected queue: %#v", queue.Items)
	}

	resp = postJSON(fmt.Sprintf("/v1/admin/approvals/%d", queue.Items[0].ID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	var status models.SurveyStatus
	if code := getJSON("/v1/surveys/status", studentToken, &status); code != http.StatusOK {
		t.Fatalf("survey status = %d", code)
	}
	if status.CollegeStatus != models.SurveyApproved || status.HostelStatus != models.SurveyApproved {
		t.Fatalf("expected both approved: %#v", status)
	}

	// complaint round trip
	resp = postJSON("/v1/complaints", studentToken, map[string]string{"text": "broken fan"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("complaint status = %d", resp.StatusCode)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode complaint: %v", err)
	}
	resp.Body.Close()

	var counts models.DashboardCounts
	if code := getJSON("/v1/admin/dashboard", adminToken, &counts); code != http.StatusOK {
		t.Fatalf("dashboard status = %d", code)
	}
	if counts.Students != 1 || counts.Approved != 1 || counts.PendingComplaints != 1 {
		t.Fatalf("unexpected counts: %#v", counts)
	}

	resp = postJSON(fmt.Sprintf("/v1/admin/complaints/%d/close", created.ID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("close complaint status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	if code := getJSON("/v1/admin/dashboard", adminToken, &counts); code != http.StatusOK {
		t.Fatalf("dashboard status = %d", code)
	}
	if counts.PendingComplaints != 0 {
		t.Fatalf("pending complaints = %d after close", counts.PendingComplaints)
	}

	srv.CloseClientConnections()
	srv.Close()
	if err := d.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
