package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendify/attendify/internal/capture"
	"github.com/attendify/attendify/internal/common/clock"
	"github.com/attendify/attendify/internal/common/uuid"
	"github.com/attendify/attendify/internal/models"
	preferencesRepo "github.com/attendify/attendify/internal/repositories/preferences"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	sessionRepo "github.com/attendify/attendify/internal/repositories/session"
	"github.com/attendify/attendify/internal/services/attendance"
	"github.com/attendify/attendify/internal/services/reporting"
	rosterService "github.com/attendify/attendify/internal/services/roster"
)

const testJWTSecret = "handler-test-secret"

type handlerSuite struct {
	suite.Suite

	mr     *miniredis.Miniredis
	engine *gin.Engine
	roster rosterRepo.Repository
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	records, err := recordRepo.NewRedis(&recordRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	rosterStore, err := rosterRepo.NewRedis(&rosterRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	prefs, err := preferencesRepo.NewRedis(&preferencesRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	s.roster = rosterStore

	attendanceService, err := attendance.New(&attendance.Config{
		SessionRepo:   sessions,
		RecordRepo:    records,
		RosterRepo:    rosterStore,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	reportingService, err := reporting.New(&reporting.Config{
		RecordRepo: records,
		RosterRepo: rosterStore,
	})
	s.Require().NoError(err)

	rosterSvc, err := rosterService.New(&rosterService.Config{
		RosterRepo:    rosterStore,
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	matcher, err := capture.NewSimulatedMatcher(&capture.SimulatedMatcherConfig{StudentID: "stu-3"})
	s.Require().NoError(err)

	handler, err := NewHandler(&Config{
		AttendanceService: attendanceService,
		ReportingService:  reportingService,
		RosterService:     rosterSvc,
		PreferencesRepo:   prefs,
		FaceMatcher:       matcher,
		JWTSecret:         testJWTSecret,
	})
	s.Require().NoError(err)

	s.engine = gin.New()
	handler.Register(s.engine)

	s.seedRoster()
}

func (s *handlerSuite) TearDownTest() {
	s.mr.Close()
}

func (s *handlerSuite) seedRoster() {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	s.Require().NoError(err)

	_, err = s.roster.SaveClass(ctx, &rosterRepo.SaveClassInput{Class: &models.Class{
		ID:        "CS101",
		Name:      "Intro to Computer Science",
		Subject:   "Computer Science",
		FacultyID: "fac-2",
		StudentIDs: []string{
			"stu-3",
		},
	}})
	s.Require().NoError(err)

	_, err = s.roster.SaveFaculty(ctx, &rosterRepo.SaveFacultyInput{Faculty: &models.Faculty{
		User: models.User{
			ID:           "fac-2",
			Email:        "faculty@example.edu",
			Name:         "Dr. Sarah Johnson",
			Role:         models.RoleFaculty,
			PasswordHash: string(hash),
		},
		FacultyID:       "F2019-042",
		AssignedClasses: []string{"CS101"},
	}})
	s.Require().NoError(err)

	_, err = s.roster.SaveStudent(ctx, &rosterRepo.SaveStudentInput{Student: &models.Student{
		User: models.User{
			ID:           "stu-3",
			Email:        "student@example.edu",
			Name:         "Alice Johnson",
			Role:         models.RoleStudent,
			PasswordHash: string(hash),
		},
		StudentID: "S2026-003",
		ClassIDs:  []string{"CS101"},
	}})
	s.Require().NoError(err)
}

func (s *handlerSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) loginAs(email string) string {
	w := s.request(http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *handlerSuite) TestLoginRejectsBadPassword() {
	w := s.request(http.MethodPost, "/api/login", "", map[string]string{
		"email":    "faculty@example.edu",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *handlerSuite) TestRoutesRequireToken() {
	w := s.request(http.MethodGet, "/api/classes", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *handlerSuite) TestStudentCannotStartSession() {
	token := s.loginAs("student@example.edu")

	w := s.request(http.MethodPost, "/api/classes/CS101/sessions", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *handlerSuite) TestSessionLifecycleOverHTTP() {
	faculty := s.loginAs("faculty@example.edu")
	student := s.loginAs("student@example.edu")

	// Start a session
	w := s.request(http.MethodPost, "/api/classes/CS101/sessions", faculty, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var session struct {
		ID      string `json:"id"`
		Payload string `json:"payload"`
		Active  bool   `json:"active"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &session))
	s.True(session.Active)
	s.NotEmpty(session.Payload)

	// Starting again conflicts
	w = s.request(http.MethodPost, "/api/classes/CS101/sessions", faculty, nil)
	s.Equal(http.StatusConflict, w.Code)

	// The QR endpoint serves a PNG of the payload
	w = s.request(http.MethodGet, "/api/classes/CS101/sessions/active/qr", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))

	// The student checks in with the scanned payload
	w = s.request(http.MethodPost, "/api/checkins", student, map[string]string{
		"payload": session.Payload,
		"method":  "qr",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var checkIn struct {
		Record struct {
			Status string `json:"status"`
		} `json:"record"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &checkIn))
	s.Equal("present", checkIn.Record.Status)

	// A second scan is rejected
	w = s.request(http.MethodPost, "/api/checkins", student, map[string]string{
		"payload": session.Payload,
		"method":  "qr",
	})
	s.Equal(http.StatusConflict, w.Code)

	// End the session
	w = s.request(http.MethodPost, "/api/sessions/"+session.ID+"/end", faculty, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// The active-session lookup now misses
	w = s.request(http.MethodGet, "/api/classes/CS101/sessions/active", student, nil)
	s.Equal(http.StatusNotFound, w.Code)

	// The ledger shows the record with display fields joined in
	w = s.request(http.MethodGet, "/api/records?classId=CS101", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var records struct {
		Records []struct {
			StudentName string `json:"studentName"`
			Status      string `json:"status"`
		} `json:"records"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &records))
	s.Require().Len(records.Records, 1)
	s.Equal("Alice Johnson", records.Records[0].StudentName)
}

func (s *handlerSuite) TestCheckInWithStalePayload() {
	student := s.loginAs("student@example.edu")

	payload, err := attendance.EncodePayload(&attendance.CheckInPayload{
		SessionID: "sess-gone",
		ClassID:   "CS101",
		Timestamp: 1756720800000,
	})
	s.Require().NoError(err)

	w := s.request(http.MethodPost, "/api/checkins", student, map[string]string{
		"payload": payload,
		"method":  "qr",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *handlerSuite) TestRecordsExportDownload() {
	student := s.loginAs("student@example.edu")

	w := s.request(http.MethodGet, "/api/records/export?format=pdf", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Disposition"), "attendance-records.pdf")
	s.Equal("%PDF", w.Body.String()[:4])

	w = s.request(http.MethodGet, "/api/records/export", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Disposition"), "attendance-records.xlsx")
}

func (s *handlerSuite) TestPreferencesRoundTrip() {
	student := s.loginAs("student@example.edu")

	// Defaults before anything is saved
	w := s.request(http.MethodGet, "/api/preferences", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var prefs preferencesJSON
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &prefs))
	s.False(prefs.DarkMode)
	s.Equal("blue", prefs.Theme)

	w = s.request(http.MethodPut, "/api/preferences", student, preferencesJSON{
		DarkMode: true,
		Theme:    "purple",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/preferences", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &prefs))
	s.True(prefs.DarkMode)
	s.Equal("purple", prefs.Theme)
}

func (s *handlerSuite) TestPreferencesRejectUnknownTheme() {
	student := s.loginAs("student@example.edu")

	w := s.request(http.MethodPut, "/api/preferences", student, preferencesJSON{Theme: "plaid"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestStudentRosterGatedToAdmin() {
	student := s.loginAs("student@example.edu")

	w := s.request(http.MethodPost, "/api/students", student, map[string]string{"name": "Eve"})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *handlerSuite) TestStudentsCSVImport() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	s.Require().NoError(err)

	_, err = s.roster.SaveAdmin(ctx, &rosterRepo.SaveAdminInput{Admin: &models.User{
		ID:           "adm-1",
		Email:        "admin@example.edu",
		Name:         "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}})
	s.Require().NoError(err)

	admin := s.loginAs("admin@example.edu")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "students.csv")
	s.Require().NoError(err)
	_, err = part.Write([]byte(strings.Join([]string{
		"Name,Email,Student ID,Classes",
		"Carol Wu,carol@example.edu,S2026-010,CS101",
		",missing@example.edu,S2026-011,CS101",
	}, "\n")))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/students/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Students []struct {
			Name string `json:"name"`
		} `json:"students"`
		Dropped int `json:"dropped"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Students, 1)
	s.Equal("Carol Wu", resp.Students[0].Name)
	s.Equal(1, resp.Dropped)
}

func (s *handlerSuite) TestFaceCheckIn() {
	faculty := s.loginAs("faculty@example.edu")

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))

	// No active session yet
	w := s.request(http.MethodPost, "/api/checkins/face", faculty, map[string]string{
		"classId": "CS101",
		"image":   image,
	})
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodPost, "/api/classes/CS101/sessions", faculty, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodPost, "/api/checkins/face", faculty, map[string]string{
		"classId": "CS101",
		"image":   image,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Record struct {
			StudentID string `json:"studentId"`
			Method    string `json:"method"`
		} `json:"record"`
		Confidence float64 `json:"confidence"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("stu-3", resp.Record.StudentID)
	s.Equal("face", resp.Record.Method)
	s.Greater(resp.Confidence, 0.9)
}

func (s *handlerSuite) TestFaceCheckInGatedToStaff() {
	student := s.loginAs("student@example.edu")

	w := s.request(http.MethodPost, "/api/checkins/face", student, map[string]string{
		"classId": "CS101",
		"image":   base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")),
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *handlerSuite) TestMetricsExposed() {
	w := s.request(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "attendify_sessions_started_total")
}

func (s *handlerSuite) TestHealth() {
	w := s.request(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "ok")
}

func (s *handlerSuite) TestActiveSessionMissing() {
	student := s.loginAs("student@example.edu")

	w := s.request(http.MethodGet, fmt.Sprintf("/api/classes/%s/sessions/active", "CS101"), student, nil)
	s.Equal(http.StatusNotFound, w.Code)
}
