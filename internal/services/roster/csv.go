package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/attendify/attendify/internal/models"
)

// csvRow maps normalized header names to cell values for one data row
type csvRow map[string]string

// normalizeHeader lowercases a header and strips spaces, so "Student ID",
// "student id", and "studentid" all name the same field
func normalizeHeader(h string) string {
	return strings.ToLower(strings.ReplaceAll(h, " ", ""))
}

// parseCSV reads a header row plus data rows and maps cells
// positionally onto normalized header names. Short rows are padded
// with empty values.
func parseCSV(input *ImportCSVInput) ([]csvRow, error) {
	if input == nil || input.Reader == nil {
		return nil, errors.New("csv reader is required")
	}

	r := csv.NewReader(input.Reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	lines, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	if len(lines) == 0 {
		return nil, nil
	}

	headers := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]csvRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := make(csvRow, len(headers))
		for i, header := range headers {
			if i < len(line) {
				row[header] = strings.TrimSpace(line[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// splitList parses a comma-separated cell into trimmed values
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}

	parts := strings.Split(cell, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// ImportStudentsCSV bulk-creates students. Rows without a name are
// dropped per the import contract.
func (s *service) ImportStudentsCSV(ctx context.Context, input *ImportCSVInput) (*ImportStudentsCSVOutput, error) {
	rows, err := parseCSV(input)
	if err != nil {
		return nil, err
	}

	out := &ImportStudentsCSVOutput{}
	for _, row := range rows {
		if row["name"] == "" {
			out.Dropped++
			continue
		}

		studentNumber := row["studentid"]
		if studentNumber == "" {
			studentNumber = row["id"]
		}

		student := &models.Student{
			User: models.User{
				ID:    s.uuidGen.NewUUID(),
				Email: row["email"],
				Name:  row["name"],
				Role:  models.RoleStudent,
			},
			StudentID: studentNumber,
			ClassIDs:  splitList(row["classids"]),
		}

		saved, err := s.SaveStudent(ctx, &SaveStudentInput{Student: student})
		if err != nil {
			return nil, fmt.Errorf("failed to import student %q: %w", student.Name, err)
		}
		out.Students = append(out.Students, saved.Student)
	}

	return out, nil
}

// ImportClassesCSV bulk-creates classes
func (s *service) ImportClassesCSV(ctx context.Context, input *ImportCSVInput) (*ImportClassesCSVOutput, error) {
	rows, err := parseCSV(input)
	if err != nil {
		return nil, err
	}

	out := &ImportClassesCSVOutput{}
	for _, row := range rows {
		if row["name"] == "" {
			out.Dropped++
			continue
		}

		class := &models.Class{
			ID:         row["id"],
			Name:       row["name"],
			Subject:    row["subject"],
			FacultyID:  row["facultyid"],
			StudentIDs: splitList(row["studentids"]),
			Schedule:   row["schedule"],
			Room:       row["room"],
			Semester:   row["semester"],
		}

		saved, err := s.SaveClass(ctx, &SaveClassInput{Class: class})
		if err != nil {
			return nil, fmt.Errorf("failed to import class %q: %w", class.Name, err)
		}
		out.Classes = append(out.Classes, saved.Class)
	}

	return out, nil
}

// ImportFacultyCSV bulk-creates faculty members
func (s *service) ImportFacultyCSV(ctx context.Context, input *ImportCSVInput) (*ImportFacultyCSVOutput, error) {
	rows, err := parseCSV(input)
	if err != nil {
		return nil, err
	}

	out := &ImportFacultyCSVOutput{}
	for _, row := range rows {
		if row["name"] == "" {
			out.Dropped++
			continue
		}

		faculty := &models.Faculty{
			User: models.User{
				ID:    s.uuidGen.NewUUID(),
				Email: row["email"],
				Name:  row["name"],
				Role:  models.RoleFaculty,
			},
			FacultyID:       row["facultyid"],
			AssignedClasses: splitList(row["assignedclasses"]),
			Department:      row["department"],
		}

		saved, err := s.SaveFaculty(ctx, &SaveFacultyInput{Faculty: faculty})
		if err != nil {
			return nil, fmt.Errorf("failed to import faculty %q: %w", faculty.Name, err)
		}
		out.Faculty = append(out.Faculty, saved.Faculty)
	}

	return out, nil
}
