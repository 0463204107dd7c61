package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendify/attendify/internal/models"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
)

// service implements the Service interface
type service struct {
	recordRepo recordRepo.Repository
	rosterRepo rosterRepo.Repository
}

// New creates a new reporting service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RecordRepo == nil {
		return nil, errors.New("record repository cannot be nil")
	}

	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}

	return &service{
		recordRepo: cfg.RecordRepo,
		rosterRepo: cfg.RosterRepo,
	}, nil
}

// Matches reports whether a record satisfies the filter, given lookup
// maps for roster names. It is the whole of the filter semantics.
func (f Filter) Matches(rec *models.AttendanceRecord, students map[string]*models.Student, classes map[string]*models.Class) bool {
	if f.Date != "" && rec.Date != f.Date {
		return false
	}

	if f.ClassID != "" && rec.ClassID != f.ClassID {
		return false
	}

	if f.Status != "" && rec.Status != f.Status {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		matched := false
		if student, ok := students[rec.StudentID]; ok {
			matched = strings.Contains(strings.ToLower(student.Name), needle)
		}
		if !matched {
			if class, ok := classes[rec.ClassID]; ok {
				matched = strings.Contains(strings.ToLower(class.Name), needle)
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// ListRecords returns filtered ledger entries in insertion order
func (s *service) ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	records, students, classes, err := s.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*RecordView, 0, len(records))
	for _, rec := range records {
		if !input.Filter.Matches(rec, students, classes) {
			continue
		}

		view := &RecordView{
			Record:      rec,
			StudentName: "Unknown",
			ClassName:   "Unknown",
		}
		if student, ok := students[rec.StudentID]; ok {
			view.StudentName = student.Name
			view.StudentNumber = student.StudentID
		}
		if class, ok := classes[rec.ClassID]; ok {
			view.ClassName = class.Name
		}
		views = append(views, view)
	}

	return &ListRecordsOutput{Records: views}, nil
}

// ClassSummaries aggregates the ledger per class
func (s *service) ClassSummaries(ctx context.Context, input *ClassSummariesInput) (*ClassSummariesOutput, error) {
	classesOutput, err := s.rosterRepo.ListClasses(ctx, &rosterRepo.ListClassesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	rows := make([]*ClassSummaryRow, 0, len(classesOutput.Classes))
	for _, class := range classesOutput.Classes {
		recordsOutput, err := s.recordRepo.GetRecordsForClass(ctx, &recordRepo.GetRecordsForClassInput{
			ClassID: class.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get records for class %s: %w", class.ID, err)
		}

		row := &ClassSummaryRow{
			ClassID:   class.ID,
			ClassName: class.Name,
			Subject:   class.Subject,
		}

		sessions := make(map[string]struct{})
		for _, rec := range recordsOutput.Records {
			sessions[rec.SessionID] = struct{}{}
			switch rec.Status {
			case models.StatusPresent:
				row.PresentCount++
			case models.StatusAbsent:
				row.AbsentCount++
			case models.StatusLate:
				row.LateCount++
			}
		}
		row.TotalSessions = len(sessions)

		possible := row.TotalSessions * len(class.StudentIDs)
		if possible > 0 {
			row.AttendanceRate = float64(row.PresentCount) / float64(possible) * 100
		}

		rows = append(rows, row)
	}

	return &ClassSummariesOutput{Rows: rows}, nil
}

// StudentSummaries aggregates the ledger per student
func (s *service) StudentSummaries(ctx context.Context, input *StudentSummariesInput) (*StudentSummariesOutput, error) {
	studentsOutput, err := s.rosterRepo.ListStudents(ctx, &rosterRepo.ListStudentsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	rows := make([]*StudentSummaryRow, 0, len(studentsOutput.Students))
	for _, student := range studentsOutput.Students {
		recordsOutput, err := s.recordRepo.GetRecordsForStudent(ctx, &recordRepo.GetRecordsForStudentInput{
			StudentID: student.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get records for student %s: %w", student.ID, err)
		}

		row := &StudentSummaryRow{
			StudentID:     student.ID,
			StudentName:   student.Name,
			StudentNumber: student.StudentID,
			TotalSessions: len(recordsOutput.Records),
		}

		for _, rec := range recordsOutput.Records {
			switch rec.Status {
			case models.StatusPresent:
				row.PresentCount++
			case models.StatusAbsent:
				row.AbsentCount++
			case models.StatusLate:
				row.LateCount++
			}
		}

		if row.TotalSessions > 0 {
			row.AttendanceRate = float64(row.PresentCount) / float64(row.TotalSessions) * 100
		}

		rows = append(rows, row)
	}

	return &StudentSummariesOutput{Rows: rows}, nil
}

// loadLedger fetches the full ledger and roster lookup maps
func (s *service) loadLedger(ctx context.Context) ([]*models.AttendanceRecord, map[string]*models.Student, map[string]*models.Class, error) {
	recordsOutput, err := s.recordRepo.ListRecords(ctx, &recordRepo.ListRecordsInput{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list records: %w", err)
	}

	studentsOutput, err := s.rosterRepo.ListStudents(ctx, &rosterRepo.ListStudentsInput{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list students: %w", err)
	}

	classesOutput, err := s.rosterRepo.ListClasses(ctx, &rosterRepo.ListClassesInput{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list classes: %w", err)
	}

	students := make(map[string]*models.Student, len(studentsOutput.Students))
	for _, student := range studentsOutput.Students {
		students[student.ID] = student
	}

	classes := make(map[string]*models.Class, len(classesOutput.Classes))
	for _, class := range classesOutput.Classes {
		classes[class.ID] = class
	}

	return recordsOutput.Records, students, classes, nil
}
