package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendify/attendify/internal/export"
	"github.com/attendify/attendify/internal/models"
	"github.com/attendify/attendify/internal/services/reporting"
)

func recordFilter(c *gin.Context) reporting.Filter {
	return reporting.Filter{
		Date:    c.Query("date"),
		ClassID: c.Query("classId"),
		Status:  models.AttendanceStatus(c.Query("status")),
		Search:  c.Query("search"),
	}
}

func (h *Handler) listRecords(c *gin.Context) {
	output, err := h.reportingService.ListRecords(c.Request.Context(), &reporting.ListRecordsInput{
		Filter: recordFilter(c),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}

	records := make([]recordJSON, 0, len(output.Records))
	for _, view := range output.Records {
		records = append(records, toRecordViewJSON(view))
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// exportRecords streams the filtered ledger as a downloadable file,
// Excel by default or PDF with ?format=pdf
func (h *Handler) exportRecords(c *gin.Context) {
	output, err := h.reportingService.ListRecords(c.Request.Context(), &reporting.ListRecordsInput{
		Filter: recordFilter(c),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}

	switch c.DefaultQuery("format", "excel") {
	case "excel":
		data, err := export.RecordsExcel(output.Records)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
			return
		}
		serveDownload(c, "attendance-records.xlsx", excelContentType, data)
	case "pdf":
		data, err := export.RecordsPDF("Attendance Report", output.Records)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
			return
		}
		serveDownload(c, "attendance-records.pdf", "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export format"})
	}
}

func (h *Handler) classSummaries(c *gin.Context) {
	output, err := h.reportingService.ClassSummaries(c.Request.Context(), &reporting.ClassSummariesInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summaries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": output.Rows})
}

func (h *Handler) exportClassSummaries(c *gin.Context) {
	output, err := h.reportingService.ClassSummaries(c.Request.Context(), &reporting.ClassSummariesInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summaries"})
		return
	}

	data, err := export.ClassSummariesExcel(output.Rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	serveDownload(c, "class-summaries.xlsx", excelContentType, data)
}

func (h *Handler) studentSummaries(c *gin.Context) {
	output, err := h.reportingService.StudentSummaries(c.Request.Context(), &reporting.StudentSummariesInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summaries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": output.Rows})
}

func (h *Handler) exportStudentSummaries(c *gin.Context) {
	output, err := h.reportingService.StudentSummaries(c.Request.Context(), &reporting.StudentSummariesInput{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summaries"})
		return
	}

	data, err := export.StudentSummariesExcel(output.Rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	serveDownload(c, "student-summaries.xlsx", excelContentType, data)
}

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func serveDownload(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
