package service

import (
	"github.com/campusdesk/studentdir/internal/model"
	"github.com/campusdesk/studentdir/internal/repository"
	"github.com/campusdesk/studentdir/internal/response"
)

// AuditSink receives directory mutation notifications. Satisfied by
// worker.AuditWorker; may be nil when auditing is not wired (tests).
type AuditSink interface {
	Publish(action string, studentID int)
}

// StudentService handles student directory business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
	audit       AuditSink
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, audit AuditSink) *StudentService {
	return &StudentService{studentRepo: studentRepo, audit: audit}
}

// GetByID retrieves a student by id. Absence is a hard failure
// (repository.ErrStudentNotFound).
func (s *StudentService) GetByID(id int) (model.Student, error) {
	return s.studentRepo.GetByID(id)
}

// GetByName retrieves the first student whose name matches exactly.
// A miss is reported through the bool, never as an error.
func (s *StudentService) GetByName(name string) (model.Student, bool) {
	return s.studentRepo.GetByName(name)
}

// List retrieves students ordered by id with pagination.
func (s *StudentService) List(page, perPage int) ([]model.Student, *response.Pagination) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	students, total := s.studentRepo.List(limit, offset)

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return students, pagination
}

// All retrieves every student ordered by id (roster export).
func (s *StudentService) All() []model.Student {
	return s.studentRepo.All()
}

// Create registers a new student under the caller-assigned id.
func (s *StudentService) Create(id int, req model.CreateStudentRequest) (model.Student, error) {
	student, err := s.studentRepo.Create(id, model.Student{
		Name: req.Name,
		Age:  req.Age,
		Year: req.Year,
	})
	if err != nil {
		return model.Student{}, err
	}

	s.publish("create", id)
	return student, nil
}

// Update applies a partial patch to an existing student. Fields omitted
// from the patch keep their prior values.
func (s *StudentService) Update(id int, patch model.StudentPatch) (model.Student, error) {
	student, err := s.studentRepo.Update(id, patch)
	if err != nil {
		return model.Student{}, err
	}

	s.publish("update", id)
	return student, nil
}

// Delete removes a student by id.
func (s *StudentService) Delete(id int) error {
	if err := s.studentRepo.Delete(id); err != nil {
		return err
	}

	s.publish("delete", id)
	return nil
}

// SeedDemoData inserts the demo records into an empty slot of the
// directory. Existing ids are left untouched.
func (s *StudentService) SeedDemoData() {
	demo := []model.Student{
		{ID: 1, Name: "anurag adarsh", Age: 20, Year: "year 26"},
		{ID: 2, Name: "mohit", Age: 22, Year: "year 26"},
	}
	for _, st := range demo {
		// Ignore conflicts; seeding never overwrites.
		_, _ = s.studentRepo.Create(st.ID, st)
	}
}

func (s *StudentService) publish(action string, studentID int) {
	if s.audit != nil {
		s.audit.Publish(action, studentID)
	}
}
