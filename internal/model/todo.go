package model

import "time"

// Todo is the domain model for a todo entry.
// ID and Completed are owned by the store; everything else comes from the user.
type Todo struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
}

// Draft is what a form (or `tada add`) hands to the store.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
}

// Patch carries the fields an edit supplies. Nil means "leave as is".
type Patch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Completed == nil
}

// Apply merges p into t. The id is never touched.
func (p Patch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Overdue is true for open todos whose due date has passed.
func (t Todo) Overdue(now time.Time) bool {
	return !t.Completed && !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
