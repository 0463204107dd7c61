package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	clockMocks "github.com/attendify/attendify/internal/common/clock/mocks"
	uuidMocks "github.com/attendify/attendify/internal/common/uuid/mocks"
	"github.com/attendify/attendify/internal/models"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	sessionRepo "github.com/attendify/attendify/internal/repositories/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AttendanceServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID

	mr       *miniredis.Miniredis
	client   *redis.Client
	sessions sessionRepo.Repository
	records  recordRepo.Repository
	roster   rosterRepo.Repository

	svc Service
	ctx context.Context

	// now and nextID drive the clock and UUID mocks
	now    time.Time
	nextID int
}

func (s *AttendanceServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.now = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	s.nextID = 0

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()

	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.nextID++
		return fmt.Sprintf("id-%d", s.nextID)
	}).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.sessions, err = sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.records, err = recordRepo.NewRedis(&recordRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.roster, err = rosterRepo.NewRedis(&rosterRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.seedRoster()

	svc, err := New(&Config{
		GracePeriod:   5 * time.Minute,
		SessionRepo:   s.sessions,
		RecordRepo:    s.records,
		RosterRepo:    s.roster,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *AttendanceServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (s *AttendanceServiceTestSuite) seedRoster() {
	_, err := s.roster.SaveClass(s.ctx, &rosterRepo.SaveClassInput{
		Class: &models.Class{
			ID:         "CS101",
			Name:       "Introduction to Computer Science",
			Subject:    "CS",
			FacultyID:  "fac-2",
			StudentIDs: []string{"stu-3", "stu-4"},
		},
	})
	s.Require().NoError(err)

	_, err = s.roster.SaveClass(s.ctx, &rosterRepo.SaveClassInput{
		Class: &models.Class{
			ID:         "CS201",
			Name:       "Data Structures",
			Subject:    "CS",
			FacultyID:  "fac-2",
			StudentIDs: []string{"stu-3"},
		},
	})
	s.Require().NoError(err)
}

func (s *AttendanceServiceTestSuite) startSession() *models.Session {
	out, err := s.svc.StartSession(s.ctx, &StartSessionInput{
		ClassID:   "CS101",
		FacultyID: "fac-2",
		ActorRole: models.RoleFaculty,
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *AttendanceServiceTestSuite) TestStartSession() {
	session := s.startSession()

	s.True(session.Active)
	s.Equal("CS101", session.ClassID)
	s.Equal("fac-2", session.FacultyID)
	s.Equal("2025-09-01", session.Date)
	s.Require().NotEmpty(session.Payload)

	payload, err := DecodePayload(session.Payload)
	s.Require().NoError(err)
	s.Equal(session.ID, payload.SessionID)
	s.Equal("CS101", payload.ClassID)
	s.Equal(s.now.UnixMilli(), payload.Timestamp)

	active, err := s.svc.GetActiveSession(s.ctx, &GetActiveSessionInput{ClassID: "CS101"})
	s.Require().NoError(err)
	s.Require().NotNil(active.Session)
	s.Equal(session.ID, active.Session.ID)
}

func (s *AttendanceServiceTestSuite) TestStartSessionRejectsSecondActive() {
	s.startSession()

	_, err := s.svc.StartSession(s.ctx, &StartSessionInput{
		ClassID:   "CS101",
		FacultyID: "fac-2",
		ActorRole: models.RoleFaculty,
	})
	s.Require().ErrorIs(err, ErrSessionAlreadyActive)
}

func (s *AttendanceServiceTestSuite) TestStartSessionFacultyGate() {
	_, err := s.svc.StartSession(s.ctx, &StartSessionInput{
		ClassID:   "CS101",
		FacultyID: "fac-9",
		ActorRole: models.RoleFaculty,
	})
	s.Require().ErrorIs(err, ErrNotClassFaculty)

	// Admins may start sessions for any class
	out, err := s.svc.StartSession(s.ctx, &StartSessionInput{
		ClassID:   "CS101",
		FacultyID: "adm-1",
		ActorRole: models.RoleAdmin,
	})
	s.Require().NoError(err)
	s.True(out.Session.Active)
}

func (s *AttendanceServiceTestSuite) TestCheckInPresent() {
	session := s.startSession()

	// Two minutes in, still inside the grace period
	s.now = s.now.Add(2 * time.Minute)

	out, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().NoError(err)
	s.Equal(models.StatusPresent, out.Record.Status)
	s.Equal(models.MethodQR, out.Record.Method)
	s.Equal("stu-3", out.Record.StudentID)
	s.Equal(session.ID, out.Record.SessionID)
	s.Equal("CS101", out.Record.ClassID)
	s.Equal(s.now.Unix(), out.Record.MarkedAt.Unix())
	s.Contains(out.Session.Attendees, "stu-3")
}

func (s *AttendanceServiceTestSuite) TestCheckInLateAfterGracePeriod() {
	session := s.startSession()

	s.now = s.now.Add(6 * time.Minute)

	out, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodFace,
	})
	s.Require().NoError(err)
	s.Equal(models.StatusLate, out.Record.Status)
}

func (s *AttendanceServiceTestSuite) TestCheckInNotEnrolled() {
	session := s.startSession()

	_, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-9",
		Method:    models.MethodQR,
	})
	s.Require().ErrorIs(err, ErrNotEnrolled)

	// Ledger unchanged
	list, err := s.records.ListRecords(s.ctx, &recordRepo.ListRecordsInput{})
	s.Require().NoError(err)
	s.Empty(list.Records)
}

func (s *AttendanceServiceTestSuite) TestCheckInAfterEndSessionFails() {
	session := s.startSession()

	_, err := s.svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().NoError(err)

	_, err = s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-4",
		Method:    models.MethodQR,
	})
	s.Require().ErrorIs(err, ErrSessionNotActive)
}

func (s *AttendanceServiceTestSuite) TestCheckInDuplicateRejected() {
	session := s.startSession()

	_, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().NoError(err)

	_, err = s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().ErrorIs(err, ErrAlreadyCheckedIn)

	// Only one record persists for the pair
	list, err := s.records.ListRecords(s.ctx, &recordRepo.ListRecordsInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 1)
	s.Equal("stu-3", list.Records[0].StudentID)
}

func (s *AttendanceServiceTestSuite) TestCheckInInvalidPayload() {
	s.startSession()

	_, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   "not json",
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().ErrorIs(err, ErrInvalidPayload)

	_, err = s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   `{"sessionId":"ghost","classId":"CS101","timestamp":1}`,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().ErrorIs(err, ErrSessionNotActive)
}

func (s *AttendanceServiceTestSuite) TestCheckInPayloadClassMismatch() {
	session := s.startSession()

	forged, err := EncodePayload(&CheckInPayload{
		SessionID: session.ID,
		ClassID:   "CS201",
		Timestamp: s.now.UnixMilli(),
	})
	s.Require().NoError(err)

	_, err = s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   forged,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().ErrorIs(err, ErrInvalidPayload)
}

func (s *AttendanceServiceTestSuite) TestCheckInUnknownMethod() {
	session := s.startSession()

	_, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    "telepathy",
	})
	s.Require().ErrorIs(err, ErrInvalidMethod)
}

func (s *AttendanceServiceTestSuite) TestEndSessionSynthesizesAbsences() {
	session := s.startSession()

	_, err := s.svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().NoError(err)

	s.now = s.now.Add(50 * time.Minute)
	out, err := s.svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.False(out.Session.Active)
	s.Equal(s.now.Unix(), out.Session.EndTime.Unix())

	s.Require().Len(out.AbsentRecords, 1)
	absent := out.AbsentRecords[0]
	s.Equal("stu-4", absent.StudentID)
	s.Equal(models.StatusAbsent, absent.Status)
	s.True(absent.MarkedAt.IsZero())

	// Ledger is complete: one record per enrolled student
	list, err := s.records.ListRecords(s.ctx, &recordRepo.ListRecordsInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 2)

	// The class slot frees up for the next session
	active, err := s.svc.GetActiveSession(s.ctx, &GetActiveSessionInput{ClassID: "CS101"})
	s.Require().NoError(err)
	s.Nil(active.Session)
}

func (s *AttendanceServiceTestSuite) TestEndSessionTwiceFails() {
	session := s.startSession()

	_, err := s.svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().NoError(err)

	_, err = s.svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().ErrorIs(err, ErrSessionNotActive)
}

// flakyRecordRepo fails a configured number of CreateRecord calls
// before delegating, standing in for a transient store outage
type flakyRecordRepo struct {
	recordRepo.Repository
	failures int
}

func (f *flakyRecordRepo) CreateRecord(ctx context.Context, input *recordRepo.CreateRecordInput) (*recordRepo.CreateRecordOutput, error) {
	if f.failures > 0 {
		f.failures--
		return nil, fmt.Errorf("transient store error")
	}
	return f.Repository.CreateRecord(ctx, input)
}

func (s *AttendanceServiceTestSuite) newServiceWithRecords(records recordRepo.Repository) Service {
	svc, err := New(&Config{
		GracePeriod:   5 * time.Minute,
		SessionRepo:   s.sessions,
		RecordRepo:    records,
		RosterRepo:    s.roster,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *AttendanceServiceTestSuite) TestCheckInRetriesAfterRecordWriteFailure() {
	svc := s.newServiceWithRecords(&flakyRecordRepo{Repository: s.records, failures: 1})
	session := s.startSession()

	_, err := svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().Error(err)
	s.Require().NotErrorIs(err, ErrAlreadyCheckedIn)

	// The failed attempt must not hold the attendee slot
	out, err := svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().NoError(err)
	s.Equal(models.StatusPresent, out.Record.Status)

	list, err := s.records.ListRecords(s.ctx, &recordRepo.ListRecordsInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 1)
	s.Equal("stu-3", list.Records[0].StudentID)
}

func (s *AttendanceServiceTestSuite) TestCheckInFailureDoesNotMarkAbsentAtSessionEnd() {
	svc := s.newServiceWithRecords(&flakyRecordRepo{Repository: s.records, failures: 1})
	session := s.startSession()

	_, err := svc.CheckIn(s.ctx, &CheckInInput{
		Payload:   session.Payload,
		StudentID: "stu-3",
		Method:    models.MethodQR,
	})
	s.Require().Error(err)

	// Ending without a successful check-in must mark both students
	// absent; the failed attempt may not leave stu-3 recordless
	out, err := svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Require().Len(out.AbsentRecords, 2)

	list, err := s.records.ListRecords(s.ctx, &recordRepo.ListRecordsInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 2)
	for _, rec := range list.Records {
		s.Equal(models.StatusAbsent, rec.Status)
	}
}

func (s *AttendanceServiceTestSuite) TestEndSessionRetriesAfterRecordWriteFailure() {
	svc := s.newServiceWithRecords(&flakyRecordRepo{Repository: s.records, failures: 1})
	session := s.startSession()

	_, err := svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().Error(err)

	// The session must stay active so the reconciliation can run again
	active, err := svc.GetActiveSession(s.ctx, &GetActiveSessionInput{ClassID: "CS101"})
	s.Require().NoError(err)
	s.Require().NotNil(active.Session)
	s.True(active.Session.Active)

	out, err := svc.EndSession(s.ctx, &EndSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.False(out.Session.Active)
	s.Require().Len(out.AbsentRecords, 2)

	// The ledger ends complete: one absent record per enrolled student
	list, err := s.records.ListRecords(s.ctx, &recordRepo.ListRecordsInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 2)
}

func (s *AttendanceServiceTestSuite) TestAttendeesStayWithinRoster() {
	session := s.startSession()

	for _, studentID := range []string{"stu-3", "stu-4", "stu-9"} {
		s.svc.CheckIn(s.ctx, &CheckInInput{
			Payload:   session.Payload,
			StudentID: studentID,
			Method:    models.MethodQR,
		})
	}

	got, err := s.sessions.GetSession(s.ctx, &sessionRepo.GetSessionInput{
		SessionID: session.ID,
	})
	s.Require().NoError(err)

	class, err := s.roster.GetClass(s.ctx, &rosterRepo.GetClassInput{ClassID: "CS101"})
	s.Require().NoError(err)

	for _, attendee := range got.Session.Attendees {
		s.True(class.Class.HasStudent(attendee))
	}
}
