package cli

import (
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

const minPrefix = 4

// resolve finds the todo a user refers to: a 1-based index as printed by
// `tada ls`, a full id, or an unambiguous id prefix.
func resolve(todos []model.Todo, ref string) (int, model.Todo, error) {
	ref = strings.TrimSpace(ref)
	n, numErr := strconv.Atoi(ref)
	if numErr == nil && n >= 1 && n <= len(todos) {
		return n - 1, todos[n-1], nil
	}

	for i, td := range todos {
		if td.ID == ref {
			return i, td, nil
		}
	}

	if len(ref) >= minPrefix {
		match := -1
		for i, td := range todos {
			if strings.HasPrefix(td.ID, ref) {
				if match >= 0 {
					return 0, model.Todo{}, usagef("ambiguous id prefix %q, use more characters", ref)
				}
				match = i
			}
		}
		if match >= 0 {
			return match, todos[match], nil
		}
	}

	if numErr == nil {
		return 0, model.Todo{}, usagef("index out of range: have %d, got %d (run `tada ls` to see valid indexes)", len(todos), n)
	}
	return 0, model.Todo{}, usagef("no todo matches %q", ref)
}
