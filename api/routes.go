package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campushub/grievance/internal/config"
	"github.com/campushub/grievance/internal/grievance"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, svc *grievance.Service) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(MetricsMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(svc, cfg.JWTSecret, cfg.TokenDuration)
	surveysHandler := NewSurveysHandler(svc)
	complaintsHandler := NewComplaintsHandler(svc)
	adminHandler := NewAdminHandler(svc)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/auth/recover", authHandler.Recover).Methods("POST")

	// API v1 protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Survey endpoints
	apiV1.HandleFunc("/surveys/questions/{track}", surveysHandler.Questions).Methods("GET")
	apiV1.HandleFunc("/surveys/college", surveysHandler.SubmitCollege).Methods("POST")
	apiV1.HandleFunc("/surveys/hostel", surveysHandler.SubmitHostel).Methods("POST")
	apiV1.HandleFunc("/surveys/status", surveysHandler.Status).Methods("GET")

	// Complaint endpoints
	apiV1.HandleFunc("/complaints", complaintsHandler.Submit).Methods("POST")

	// Admin endpoints
	adminV1 := apiV1.PathPrefix("/admin").Subrouter()
	adminV1.Use(AdminOnlyMiddleware)
	adminV1.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	adminV1.HandleFunc("/students", adminHandler.ListStudents).Methods("GET")
	adminV1.HandleFunc("/students/{email}", adminHandler.RemoveStudent).Methods("DELETE")
	adminV1.HandleFunc("/approvals", adminHandler.ListAwaitingApproval).Methods("GET")
	adminV1.HandleFunc("/approvals/{id}", adminHandler.Approve).Methods("POST")
	adminV1.HandleFunc("/approved", adminHandler.ListApproved).Methods("GET")
	adminV1.HandleFunc("/complaints", adminHandler.ListPendingComplaints).Methods("GET")
	adminV1.HandleFunc("/complaints/{id}/close", adminHandler.CloseComplaint).Methods("POST")

	return r
}
