package httpapi

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendify/attendify/internal/capture"
	"github.com/attendify/attendify/internal/models"
	"github.com/attendify/attendify/internal/services/attendance"
)

type faceCheckInRequest struct {
	ClassID string `json:"classId" binding:"required"`
	Image   string `json:"image" binding:"required"`
}

// faceCheckIn resolves an uploaded camera frame to an enrolled student
// and marks them against the class's active session
func (h *Handler) faceCheckIn(c *gin.Context) {
	if h.faceMatcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "face check-in is not configured"})
		return
	}

	var req faceCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "classId and image are required"})
		return
	}

	frame, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64-encoded"})
		return
	}

	source, err := capture.NewStaticSource(frame)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image cannot be empty"})
		return
	}

	match, err := h.faceMatcher.Match(c.Request.Context(), source)
	if err != nil {
		if errors.Is(err, capture.ErrNoMatch) {
			h.metrics.checkInFailures.WithLabelValues("no_face_match").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "no enrolled identity matched"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "face recognition failed"})
		return
	}

	active, err := h.attendanceService.GetActiveSession(c.Request.Context(), &attendance.GetActiveSessionInput{
		ClassID: req.ClassID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up session"})
		return
	}

	if active.Session == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "class has no active session"})
		return
	}

	output, err := h.attendanceService.CheckIn(c.Request.Context(), &attendance.CheckInInput{
		Payload:   active.Session.Payload,
		StudentID: match.StudentID,
		Method:    models.MethodFace,
	})
	if err != nil {
		h.writeCheckInError(c, err)
		return
	}

	h.metrics.checkIns.WithLabelValues(string(output.Record.Method), string(output.Record.Status)).Inc()
	c.JSON(http.StatusCreated, gin.H{
		"record":     toRecordJSON(output.Record),
		"session":    toSessionJSON(output.Session),
		"confidence": match.Confidence,
	})
}
