package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendify/attendify/internal/models"
	"github.com/attendify/attendify/internal/qr"
	"github.com/attendify/attendify/internal/services/attendance"
)

func (h *Handler) startSession(c *gin.Context) {
	output, err := h.attendanceService.StartSession(c.Request.Context(), &attendance.StartSessionInput{
		ClassID:   c.Param("id"),
		FacultyID: c.GetString(ctxUserID),
		ActorRole: models.Role(c.GetString(ctxRole)),
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrSessionAlreadyActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, attendance.ErrNotClassFaculty):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		}
		return
	}

	h.metrics.sessionsStarted.Inc()
	c.JSON(http.StatusCreated, toSessionJSON(output.Session))
}

func (h *Handler) endSession(c *gin.Context) {
	output, err := h.attendanceService.EndSession(c.Request.Context(), &attendance.EndSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotActive) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
		return
	}

	absent := make([]recordJSON, 0, len(output.AbsentRecords))
	for _, record := range output.AbsentRecords {
		absent = append(absent, toRecordJSON(record))
	}

	h.metrics.sessionsEnded.Inc()
	c.JSON(http.StatusOK, gin.H{
		"session":       toSessionJSON(output.Session),
		"absentRecords": absent,
	})
}

func (h *Handler) getActiveSession(c *gin.Context) {
	output, err := h.attendanceService.GetActiveSession(c.Request.Context(), &attendance.GetActiveSessionInput{
		ClassID: c.Param("id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up session"})
		return
	}

	if output.Session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
		return
	}

	c.JSON(http.StatusOK, toSessionJSON(output.Session))
}

// getActiveSessionQR renders the active session's check-in payload as
// a PNG the dashboard can display for scanning
func (h *Handler) getActiveSessionQR(c *gin.Context) {
	output, err := h.attendanceService.GetActiveSession(c.Request.Context(), &attendance.GetActiveSessionInput{
		ClassID: c.Param("id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up session"})
		return
	}

	if output.Session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
		return
	}

	png, err := qr.RenderPNG(output.Session.Payload, qr.DefaultSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

type checkInRequest struct {
	Payload   string `json:"payload" binding:"required"`
	Method    string `json:"method" binding:"required"`
	StudentID string `json:"studentId"`
}

func (h *Handler) checkIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload and method are required"})
		return
	}

	// Students check themselves in; faculty and admins may mark on a
	// student's behalf
	studentID := c.GetString(ctxUserID)
	if req.StudentID != "" && c.GetString(ctxRole) != roleStudent {
		studentID = req.StudentID
	}

	output, err := h.attendanceService.CheckIn(c.Request.Context(), &attendance.CheckInInput{
		Payload:   req.Payload,
		StudentID: studentID,
		Method:    models.CheckInMethod(req.Method),
	})
	if err != nil {
		h.writeCheckInError(c, err)
		return
	}

	h.metrics.checkIns.WithLabelValues(string(output.Record.Method), string(output.Record.Status)).Inc()
	c.JSON(http.StatusCreated, gin.H{
		"record":  toRecordJSON(output.Record),
		"session": toSessionJSON(output.Session),
	})
}

func (h *Handler) writeCheckInError(c *gin.Context, err error) {
	h.metrics.checkInFailures.WithLabelValues(checkInFailureReason(err)).Inc()

	switch {
	case errors.Is(err, attendance.ErrInvalidPayload), errors.Is(err, attendance.ErrInvalidMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, attendance.ErrSessionNotActive), errors.Is(err, attendance.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, attendance.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "check-in failed"})
	}
}

func checkInFailureReason(err error) string {
	switch {
	case errors.Is(err, attendance.ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, attendance.ErrInvalidMethod):
		return "invalid_method"
	case errors.Is(err, attendance.ErrSessionNotActive):
		return "session_not_active"
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		return "already_checked_in"
	case errors.Is(err, attendance.ErrNotEnrolled):
		return "not_enrolled"
	}
	return "internal"
}
