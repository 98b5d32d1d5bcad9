package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campusdesk/studentdir/internal/config"
	"github.com/campusdesk/studentdir/internal/model"
	"github.com/campusdesk/studentdir/internal/repository"
	"github.com/campusdesk/studentdir/internal/response"
	"github.com/campusdesk/studentdir/internal/service"
	"github.com/campusdesk/studentdir/internal/validator"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles the student directory endpoints.
type StudentHandler struct {
	studentService *service.StudentService
	cfg            *config.Config
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, cfg *config.Config) *StudentHandler {
	return &StudentHandler{studentService: studentService, cfg: cfg}
}

// Index godoc
// GET /
// Welcome payload, kept from the original demo API.
func (h *StudentHandler) Index(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"name": "First Data"})
}

// GetStudent godoc
// GET /api/v1/students/:id
// Returns a single student. A miss here is a hard failure (404), unlike the
// soft error payloads of the mutating endpoints.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	// LOOKUP_ID_MAX is a boundary knob, not a directory rule.
	if h.cfg.LookupIDMax > 0 && id > h.cfg.LookupIDMax {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, err := h.studentService.GetByID(id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// ListStudents godoc
// GET /api/v1/students[?name=...]
// With a name query parameter: exact-match search; a miss is a normal 200
// carrying found:false (never an error), and an empty name still scans.
// Without one: paginated listing ordered by id.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	if name, present := c.GetQuery("name"); present {
		student, found := h.studentService.GetByName(name)
		if !found {
			response.Success(c, http.StatusOK, gin.H{"found": false, "student": nil})
			return
		}
		response.Success(c, http.StatusOK, gin.H{"found": true, "student": student})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	students, pagination := h.studentService.List(page, perPage)

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// CreateStudent godoc
// POST /api/v1/admin/students/:id
// Creates a student under the caller-assigned id. An existing id is a soft
// conflict: HTTP 200 with an error-shaped body, directory unchanged.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(id, req)
	if err != nil {
		if errors.Is(err, repository.ErrStudentExists) {
			response.Fail(c, http.StatusOK, response.ErrStudentExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PATCH /api/v1/admin/students/:id
// Partially updates a student; omitted fields keep their prior values.
// A missing id is a soft failure: HTTP 200 with an error-shaped body.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var patch model.StudentPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			response.Fail(c, http.StatusOK, response.ErrStudentMissing)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/admin/students/:id
// Deletes a student. A missing id is a soft failure, same style as update.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.studentService.Delete(id); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			response.Fail(c, http.StatusOK, response.ErrStudentMissing)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// parseID reads the :id path parameter. Ids must be positive integers;
// anything else is rejected at the boundary before touching the directory.
func (h *StudentHandler) parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
