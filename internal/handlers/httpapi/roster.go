package httpapi

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendify/attendify/internal/models"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	"github.com/attendify/attendify/internal/services/roster"
)

func (h *Handler) listClasses(c *gin.Context) {
	output, err := h.rosterService.ListClasses(c.Request.Context(), &roster.ListClassesInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list classes"})
		return
	}

	classes := make([]classJSON, 0, len(output.Classes))
	for _, class := range output.Classes {
		classes = append(classes, toClassJSON(class))
	}

	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *Handler) saveClass(c *gin.Context) {
	var req classJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class body"})
		return
	}

	output, err := h.rosterService.SaveClass(c.Request.Context(), &roster.SaveClassInput{
		Class: fromClassJSON(req),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save class"})
		return
	}

	c.JSON(http.StatusOK, toClassJSON(output.Class))
}

func (h *Handler) getClass(c *gin.Context) {
	output, err := h.rosterService.GetClass(c.Request.Context(), &roster.GetClassInput{
		ClassID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get class"})
		return
	}

	c.JSON(http.StatusOK, toClassJSON(output.Class))
}

func (h *Handler) deleteClass(c *gin.Context) {
	if _, err := h.rosterService.DeleteClass(c.Request.Context(), &roster.DeleteClassInput{
		ClassID: c.Param("id"),
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete class"})
		return
	}

	c.Status(http.StatusNoContent)
}

type saveStudentRequest struct {
	studentJSON
	Password string `json:"password"`
}

func (h *Handler) listStudents(c *gin.Context) {
	output, err := h.rosterService.ListStudents(c.Request.Context(), &roster.ListStudentsInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
		return
	}

	students := make([]studentJSON, 0, len(output.Students))
	for _, student := range output.Students {
		students = append(students, toStudentJSON(student))
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *Handler) saveStudent(c *gin.Context) {
	var req saveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student body"})
		return
	}

	output, err := h.rosterService.SaveStudent(c.Request.Context(), &roster.SaveStudentInput{
		Student: &models.Student{
			User: models.User{
				ID:           req.ID,
				Email:        req.Email,
				Name:         req.Name,
				Role:         models.RoleStudent,
				ProfileImage: req.ProfileImage,
			},
			StudentID: req.StudentID,
			ClassIDs:  req.ClassIDs,
		},
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save student"})
		return
	}

	c.JSON(http.StatusOK, toStudentJSON(output.Student))
}

func (h *Handler) getStudent(c *gin.Context) {
	output, err := h.rosterService.GetStudent(c.Request.Context(), &roster.GetStudentInput{
		StudentID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get student"})
		return
	}

	c.JSON(http.StatusOK, toStudentJSON(output.Student))
}

func (h *Handler) deleteStudent(c *gin.Context) {
	if _, err := h.rosterService.DeleteStudent(c.Request.Context(), &roster.DeleteStudentInput{
		StudentID: c.Param("id"),
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete student"})
		return
	}

	c.Status(http.StatusNoContent)
}

type saveFacultyRequest struct {
	facultyJSON
	Password string `json:"password"`
}

func (h *Handler) listFaculty(c *gin.Context) {
	output, err := h.rosterService.ListFaculty(c.Request.Context(), &roster.ListFacultyInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list faculty"})
		return
	}

	faculty := make([]facultyJSON, 0, len(output.Faculty))
	for _, member := range output.Faculty {
		faculty = append(faculty, toFacultyJSON(member))
	}

	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

func (h *Handler) saveFaculty(c *gin.Context) {
	var req saveFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid faculty body"})
		return
	}

	output, err := h.rosterService.SaveFaculty(c.Request.Context(), &roster.SaveFacultyInput{
		Faculty: &models.Faculty{
			User: models.User{
				ID:           req.ID,
				Email:        req.Email,
				Name:         req.Name,
				Role:         models.RoleFaculty,
				ProfileImage: req.ProfileImage,
			},
			FacultyID:       req.FacultyID,
			AssignedClasses: req.AssignedClasses,
			Department:      req.Department,
		},
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save faculty"})
		return
	}

	c.JSON(http.StatusOK, toFacultyJSON(output.Faculty))
}

func (h *Handler) deleteFaculty(c *gin.Context) {
	if _, err := h.rosterService.DeleteFaculty(c.Request.Context(), &roster.DeleteFacultyInput{
		FacultyID: c.Param("id"),
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrFacultyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "faculty member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete faculty"})
		return
	}

	c.Status(http.StatusNoContent)
}

// importStudentsCSV accepts a multipart upload under the "file" field
func (h *Handler) importStudentsCSV(c *gin.Context) {
	reader, ok := csvUpload(c)
	if !ok {
		return
	}
	defer reader.Close()

	output, err := h.rosterService.ImportStudentsCSV(c.Request.Context(), &roster.ImportCSVInput{Reader: reader})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to import CSV"})
		return
	}

	students := make([]studentJSON, 0, len(output.Students))
	for _, student := range output.Students {
		students = append(students, toStudentJSON(student))
	}

	c.JSON(http.StatusOK, gin.H{"students": students, "dropped": output.Dropped})
}

func (h *Handler) importClassesCSV(c *gin.Context) {
	reader, ok := csvUpload(c)
	if !ok {
		return
	}
	defer reader.Close()

	output, err := h.rosterService.ImportClassesCSV(c.Request.Context(), &roster.ImportCSVInput{Reader: reader})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to import CSV"})
		return
	}

	classes := make([]classJSON, 0, len(output.Classes))
	for _, class := range output.Classes {
		classes = append(classes, toClassJSON(class))
	}

	c.JSON(http.StatusOK, gin.H{"classes": classes, "dropped": output.Dropped})
}

func (h *Handler) importFacultyCSV(c *gin.Context) {
	reader, ok := csvUpload(c)
	if !ok {
		return
	}
	defer reader.Close()

	output, err := h.rosterService.ImportFacultyCSV(c.Request.Context(), &roster.ImportCSVInput{Reader: reader})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to import CSV"})
		return
	}

	faculty := make([]facultyJSON, 0, len(output.Faculty))
	for _, member := range output.Faculty {
		faculty = append(faculty, toFacultyJSON(member))
	}

	c.JSON(http.StatusOK, gin.H{"faculty": faculty, "dropped": output.Dropped})
}

func csvUpload(c *gin.Context) (multipart.File, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a CSV file upload is required"})
		return nil, false
	}

	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return nil, false
	}

	return reader, true
}
