package handler

import (
	"net/http"

	"github.com/campusdesk/studentdir/internal/response"
	"github.com/campusdesk/studentdir/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles roster export endpoints.
type ExportHandler struct {
	studentService *service.StudentService
	exportService  *service.ExportService
	log            zerolog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(
	studentService *service.StudentService,
	exportService *service.ExportService,
	log zerolog.Logger,
) *ExportHandler {
	return &ExportHandler{
		studentService: studentService,
		exportService:  exportService,
		log:            log.With().Str("component", "export_handler").Logger(),
	}
}

// ExportStudents godoc
// GET /api/v1/admin/students/export
// Streams the full roster as an .xlsx workbook.
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	students := h.studentService.All()

	workbook, err := h.exportService.BuildRoster(students)
	if err != nil {
		h.log.Error().Err(err).Msg("Roster build failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Status(http.StatusOK)

	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already out; nothing left to do but log.
		h.log.Error().Err(err).Msg("Roster stream failed")
	}
}
