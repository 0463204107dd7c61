// Package httpapi exposes the attendance system over a JSON REST API.
package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/attendify/attendify/internal/capture"
	preferencesRepo "github.com/attendify/attendify/internal/repositories/preferences"
	"github.com/attendify/attendify/internal/services/attendance"
	"github.com/attendify/attendify/internal/services/reporting"
	"github.com/attendify/attendify/internal/services/roster"
)

// Config holds configuration for the HTTP handler
type Config struct {
	// Service dependencies
	AttendanceService attendance.Service
	ReportingService  reporting.Service
	RosterService     roster.Service

	// Repository dependencies
	PreferencesRepo preferencesRepo.Repository

	// FaceMatcher resolves uploaded frames to enrolled identities.
	// Nil disables face check-in.
	FaceMatcher capture.Matcher

	// JWTSecret signs and verifies bearer tokens
	JWTSecret string
}

// Handler wires the services to their routes
type Handler struct {
	attendanceService attendance.Service
	reportingService  reporting.Service
	rosterService     roster.Service
	preferencesRepo   preferencesRepo.Repository
	faceMatcher       capture.Matcher
	jwtSecret         []byte
	metrics           *metrics
}

// NewHandler creates a new HTTP handler
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.AttendanceService == nil {
		return nil, errors.New("attendance service cannot be nil")
	}

	if cfg.ReportingService == nil {
		return nil, errors.New("reporting service cannot be nil")
	}

	if cfg.RosterService == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	if cfg.PreferencesRepo == nil {
		return nil, errors.New("preferences repository cannot be nil")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	return &Handler{
		attendanceService: cfg.AttendanceService,
		reportingService:  cfg.ReportingService,
		rosterService:     cfg.RosterService,
		preferencesRepo:   cfg.PreferencesRepo,
		faceMatcher:       cfg.FaceMatcher,
		jwtSecret:         []byte(cfg.JWTSecret),
		metrics:           newMetrics(),
	}, nil
}

// Register attaches all routes to the engine
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/metrics", h.metricsHandler())

	r.POST("/api/login", h.login)

	api := r.Group("/api", h.authRequired())
	{
		api.GET("/classes", h.listClasses)
		api.POST("/classes", h.requireRole(roleFaculty, roleAdmin), h.saveClass)
		api.GET("/classes/:id", h.getClass)
		api.DELETE("/classes/:id", h.requireRole(roleAdmin), h.deleteClass)
		api.POST("/classes/import", h.requireRole(roleAdmin), h.importClassesCSV)

		api.POST("/classes/:id/sessions", h.requireRole(roleFaculty, roleAdmin), h.startSession)
		api.GET("/classes/:id/sessions/active", h.getActiveSession)
		api.GET("/classes/:id/sessions/active/qr", h.getActiveSessionQR)
		api.POST("/sessions/:id/end", h.requireRole(roleFaculty, roleAdmin), h.endSession)
		api.POST("/checkins", h.checkIn)
		api.POST("/checkins/face", h.requireRole(roleFaculty, roleAdmin), h.faceCheckIn)

		api.GET("/records", h.listRecords)
		api.GET("/records/export", h.exportRecords)
		api.GET("/reports/classes", h.classSummaries)
		api.GET("/reports/classes/export", h.exportClassSummaries)
		api.GET("/reports/students", h.studentSummaries)
		api.GET("/reports/students/export", h.exportStudentSummaries)

		api.GET("/students", h.listStudents)
		api.POST("/students", h.requireRole(roleAdmin), h.saveStudent)
		api.GET("/students/:id", h.getStudent)
		api.DELETE("/students/:id", h.requireRole(roleAdmin), h.deleteStudent)
		api.POST("/students/import", h.requireRole(roleAdmin), h.importStudentsCSV)

		api.GET("/faculty", h.listFaculty)
		api.POST("/faculty", h.requireRole(roleAdmin), h.saveFaculty)
		api.DELETE("/faculty/:id", h.requireRole(roleAdmin), h.deleteFaculty)
		api.POST("/faculty/import", h.requireRole(roleAdmin), h.importFacultyCSV)

		api.GET("/preferences", h.getPreferences)
		api.PUT("/preferences", h.savePreferences)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
