package model

// Student represents a single directory record. IDs are assigned by the
// caller at creation time, never generated internally.
type Student struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Year string `json:"year"`
}

// CreateStudentRequest is the payload for registering a new student.
// The id comes from the URL path, not the body.
type CreateStudentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Age  int    `json:"age" binding:"required,gt=0"`
	Year string `json:"year" binding:"required,min=1,max=50"`
}

// StudentPatch is the payload for partially updating a student. Each field
// is a pointer so that "absent" and "zero value" stay distinguishable;
// nil means "do not change".
type StudentPatch struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
	Age  *int    `json:"age" binding:"omitempty,gt=0"`
	Year *string `json:"year" binding:"omitempty,min=1,max=50"`
}

// LoginRequest is the payload for admin authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after a successful admin login.
type LoginResponse struct {
	Token string `json:"token"`
}
