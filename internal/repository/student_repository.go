package repository

import (
	"errors"
	"sort"
	"sync"

	"github.com/campusdesk/studentdir/internal/model"
)

// Sentinel errors for directory operations.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("student already exists")
)

// StudentRepository is the in-memory student directory. It owns the mapping
// from id to record for the lifetime of the process; every key equals the
// ID field of its record. All access goes through the mutex so concurrent
// handlers never observe a half-applied mutation.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[int]model.Student
}

// NewStudentRepository creates an empty student directory.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[int]model.Student),
	}
}

// Create inserts a new record under the caller-assigned id.
// Returns ErrStudentExists and leaves the directory unchanged if the id is
// already taken.
func (r *StudentRepository) Create(id int, student model.Student) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.students[id]; exists {
		return model.Student{}, ErrStudentExists
	}

	student.ID = id
	r.students[id] = student
	return student, nil
}

// GetByID returns the record stored under id, or ErrStudentNotFound.
func (r *StudentRepository) GetByID(id int) (model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, exists := r.students[id]
	if !exists {
		return model.Student{}, ErrStudentNotFound
	}
	return student, nil
}

// GetByName scans the directory for the first record whose name exactly
// equals name. A miss is reported through the bool, never as an error —
// an empty name still performs the scan and simply never matches.
func (r *StudentRepository) GetByName(name string) (model.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, student := range r.students {
		if student.Name == name {
			return student, true
		}
	}
	return model.Student{}, false
}

// Update applies a partial patch to the record under id. Nil patch fields
// keep their prior values. Returns ErrStudentNotFound if the id is absent.
func (r *StudentRepository) Update(id int, patch model.StudentPatch) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, exists := r.students[id]
	if !exists {
		return model.Student{}, ErrStudentNotFound
	}

	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Age != nil {
		student.Age = *patch.Age
	}
	if patch.Year != nil {
		student.Year = *patch.Year
	}

	r.students[id] = student
	return student, nil
}

// Delete removes the record under id. Returns ErrStudentNotFound if absent.
func (r *StudentRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.students[id]; !exists {
		return ErrStudentNotFound
	}

	delete(r.students, id)
	return nil
}

// List returns a page of records ordered by id, plus the total count.
func (r *StudentRepository) List(limit, offset int) ([]model.Student, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.Student, 0, len(r.students))
	for _, student := range r.students {
		all = append(all, student)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	if offset >= total {
		return []model.Student{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total
}

// All returns every record ordered by id.
func (r *StudentRepository) All() []model.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.Student, 0, len(r.students))
	for _, student := range r.students {
		all = append(all, student)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Count returns the number of records in the directory.
func (r *StudentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}
