package model

import "fmt"

// Record is the serialized form of a Todo. Dates travel as strings and are
// converted explicitly in both directions.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	DueDate     string `json:"dueDate" yaml:"due_date"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

func ToRecord(t Todo) Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     FormatDate(t.DueDate),
		Completed:   t.Completed,
	}
}

func FromRecord(r Record) (Todo, error) {
	due, err := ParseDate(r.DueDate)
	if err != nil {
		return Todo{}, fmt.Errorf("todo %s: %w", r.ID, err)
	}
	return Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Completed:   r.Completed,
	}, nil
}

func ToRecords(todos []Todo) []Record {
	out := make([]Record, 0, len(todos))
	for _, t := range todos {
		out = append(out, ToRecord(t))
	}
	return out
}
