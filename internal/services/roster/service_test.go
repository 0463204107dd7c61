package roster

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	uuidMocks "github.com/attendify/attendify/internal/common/uuid/mocks"
	"github.com/attendify/attendify/internal/models"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RosterServiceTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockUUID *uuidMocks.MockUUID

	mr     *miniredis.Miniredis
	client *redis.Client
	repo   rosterRepo.Repository

	svc Service
	ctx context.Context

	nextID int
}

func (s *RosterServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()
	s.nextID = 0

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

	s.repo, err = rosterRepo.NewRedis(&rosterRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	svc, err := New(&Config{
		RosterRepo:    s.repo,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *RosterServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestRosterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RosterServiceTestSuite))
}

func (s *RosterServiceTestSuite) TestSaveClassMintsID() {
	out, err := s.svc.SaveClass(s.ctx, &SaveClassInput{
		Class: &models.Class{Name: "Calculus I", Subject: "Math"},
	})
	s.Require().NoError(err)
	s.Equal("id-1", out.Class.ID)

	got, err := s.svc.GetClass(s.ctx, &GetClassInput{ClassID: "id-1"})
	s.Require().NoError(err)
	s.Equal("Calculus I", got.Class.Name)
}

func (s *RosterServiceTestSuite) TestSaveStudentHashesPassword() {
	out, err := s.svc.SaveStudent(s.ctx, &SaveStudentInput{
		Student: &models.Student{
			User: models.User{Name: "Jane Doe", Email: "jane@attendify.com"},
		},
		Password: "s3cret",
	})
	s.Require().NoError(err)
	s.NotEmpty(out.Student.PasswordHash)
	s.NotEqual("s3cret", out.Student.PasswordHash)
	s.Equal(models.RoleStudent, out.Student.Role)

	auth, err := s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "jane@attendify.com",
		Password: "s3cret",
	})
	s.Require().NoError(err)
	s.Equal(out.Student.ID, auth.User.ID)

	_, err = s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "jane@attendify.com",
		Password: "wrong",
	})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *RosterServiceTestSuite) TestAuthenticateUnknownEmail() {
	_, err := s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "ghost@attendify.com",
		Password: "anything",
	})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *RosterServiceTestSuite) TestImportStudentsCSV() {
	// Headers are matched case-insensitively with spaces stripped
	csvData := strings.Join([]string{
		"Name,Email,Student ID,Class IDs",
		"Jane Doe,jane@attendify.com,2025-0042,\"CS101,CS201\"",
		",missing@attendify.com,2025-0043,CS101",
		"Omar Haddad,omar@attendify.com,2025-0044,",
	}, "\n")

	out, err := s.svc.ImportStudentsCSV(s.ctx, &ImportCSVInput{
		Reader: strings.NewReader(csvData),
	})
	s.Require().NoError(err)
	s.Equal(1, out.Dropped)
	s.Require().Len(out.Students, 2)

	jane := out.Students[0]
	s.Equal("Jane Doe", jane.Name)
	s.Equal("2025-0042", jane.StudentID)
	s.Equal([]string{"CS101", "CS201"}, jane.ClassIDs)

	omar := out.Students[1]
	s.Equal("Omar Haddad", omar.Name)
	s.Empty(omar.ClassIDs)

	list, err := s.svc.ListStudents(s.ctx, &ListStudentsInput{})
	s.Require().NoError(err)
	s.Len(list.Students, 2)
}

func (s *RosterServiceTestSuite) TestImportStudentsCSVFallsBackToIDColumn() {
	csvData := "name,id\nJane Doe,2025-0042\n"

	out, err := s.svc.ImportStudentsCSV(s.ctx, &ImportCSVInput{
		Reader: strings.NewReader(csvData),
	})
	s.Require().NoError(err)
	s.Require().Len(out.Students, 1)
	s.Equal("2025-0042", out.Students[0].StudentID)
}

func (s *RosterServiceTestSuite) TestImportClassesCSV() {
	csvData := strings.Join([]string{
		"ID,Name,Subject,Faculty ID,Student IDs,Room",
		"CS101,Intro to CS,CS,fac-2,\"stu-3,stu-4\",A-204",
		"CS102,,CS,fac-2,,B-101",
	}, "\n")

	out, err := s.svc.ImportClassesCSV(s.ctx, &ImportCSVInput{
		Reader: strings.NewReader(csvData),
	})
	s.Require().NoError(err)
	s.Equal(1, out.Dropped)
	s.Require().Len(out.Classes, 1)
	s.Equal("CS101", out.Classes[0].ID)
	s.Equal([]string{"stu-3", "stu-4"}, out.Classes[0].StudentIDs)
	s.Equal("A-204", out.Classes[0].Room)
}

func (s *RosterServiceTestSuite) TestImportFacultyCSV() {
	csvData := strings.Join([]string{
		"Name,Email,Faculty ID,Department,Assigned Classes",
		"Dr. Smith,smith@attendify.com,F-017,Computer Science,\"CS101,CS201\"",
	}, "\n")

	out, err := s.svc.ImportFacultyCSV(s.ctx, &ImportCSVInput{
		Reader: strings.NewReader(csvData),
	})
	s.Require().NoError(err)
	s.Require().Len(out.Faculty, 1)
	s.Equal("Dr. Smith", out.Faculty[0].Name)
	s.Equal("Computer Science", out.Faculty[0].Department)
	s.Equal([]string{"CS101", "CS201"}, out.Faculty[0].AssignedClasses)
}

func (s *RosterServiceTestSuite) TestDeleteStudent() {
	saved, err := s.svc.SaveStudent(s.ctx, &SaveStudentInput{
		Student: &models.Student{User: models.User{Name: "Jane Doe"}},
	})
	s.Require().NoError(err)

	_, err = s.svc.DeleteStudent(s.ctx, &DeleteStudentInput{StudentID: saved.Student.ID})
	s.Require().NoError(err)

	_, err = s.svc.GetStudent(s.ctx, &GetStudentInput{StudentID: saved.Student.ID})
	s.Require().ErrorIs(err, rosterRepo.ErrStudentNotFound)
}

func (s *RosterServiceTestSuite) TestDeletedStudentCannotAuthenticate() {
	saved, err := s.svc.SaveStudent(s.ctx, &SaveStudentInput{
		Student: &models.Student{
			User: models.User{Name: "Jane Doe", Email: "jane@attendify.com"},
		},
		Password: "s3cret",
	})
	s.Require().NoError(err)

	_, err = s.svc.DeleteStudent(s.ctx, &DeleteStudentInput{StudentID: saved.Student.ID})
	s.Require().NoError(err)

	// The credential mapping must go with the student
	_, err = s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "jane@attendify.com",
		Password: "s3cret",
	})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *RosterServiceTestSuite) TestDeletedFacultyCannotAuthenticate() {
	saved, err := s.svc.SaveFaculty(s.ctx, &SaveFacultyInput{
		Faculty: &models.Faculty{
			User: models.User{Name: "Dr. Smith", Email: "smith@attendify.com"},
		},
		Password: "s3cret",
	})
	s.Require().NoError(err)

	_, err = s.svc.DeleteFaculty(s.ctx, &DeleteFacultyInput{FacultyID: saved.Faculty.ID})
	s.Require().NoError(err)

	_, err = s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "smith@attendify.com",
		Password: "s3cret",
	})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *RosterServiceTestSuite) TestEmailChangeInvalidatesOldEmail() {
	saved, err := s.svc.SaveStudent(s.ctx, &SaveStudentInput{
		Student: &models.Student{
			User: models.User{Name: "Jane Doe", Email: "jane@attendify.com"},
		},
		Password: "s3cret",
	})
	s.Require().NoError(err)

	saved.Student.Email = "jane.doe@attendify.com"
	_, err = s.svc.SaveStudent(s.ctx, &SaveStudentInput{
		Student:  saved.Student,
		Password: "s3cret",
	})
	s.Require().NoError(err)

	// Only the current email may log in
	auth, err := s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "jane.doe@attendify.com",
		Password: "s3cret",
	})
	s.Require().NoError(err)
	s.Equal(saved.Student.ID, auth.User.ID)

	_, err = s.svc.Authenticate(s.ctx, &AuthenticateInput{
		Email:    "jane@attendify.com",
		Password: "s3cret",
	})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}
