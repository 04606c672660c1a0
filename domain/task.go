package domain

import "time"

// Task represents a user-owned to-do item. OwnerID is assigned from the
// authenticated session at creation and never changes afterwards.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Name        *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Completed == nil
}

// Apply copies the provided fields onto the task.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
