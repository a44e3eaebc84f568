package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

const snapshotVersion = 1

type snapshot struct {
	Version int            `json:"version"`
	Todos   []model.Record `json:"todos"`
}

// persistEnvelope is the {"state":{...},"version":0} wrapper written by the
// mobile app's persistence middleware. Accepted on read only.
type persistEnvelope struct {
	State   *snapshot `json:"state"`
	Version int       `json:"version"`
}

// EncodeSnapshot serializes the collection into the slot format.
func EncodeSnapshot(todos []model.Todo) ([]byte, error) {
	b, err := json.Marshal(snapshot{Version: snapshotVersion, Todos: model.ToRecords(todos)})
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a slot value. Records with an empty or repeated id
// (first one wins) or an unreadable date are dropped; the number dropped is
// returned alongside.
func DecodeSnapshot(b []byte) ([]model.Todo, int, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, 0, errors.New("empty snapshot")
	}
	if b[0] != '{' {
		return nil, 0, errors.New("snapshot is not a JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}

	var snap snapshot
	if _, wrapped := raw["state"]; wrapped {
		var env persistEnvelope
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, 0, fmt.Errorf("json unmarshal envelope: %w", err)
		}
		if env.State == nil {
			return nil, 0, errors.New("envelope has no state")
		}
		snap = *env.State
	} else {
		if _, ok := raw["todos"]; !ok {
			return nil, 0, errors.New("snapshot has no todos field")
		}
		if err := json.Unmarshal(b, &snap); err != nil {
			return nil, 0, fmt.Errorf("json unmarshal: %w", err)
		}
	}
	if snap.Version > snapshotVersion {
		return nil, 0, fmt.Errorf("snapshot version %d is newer than %d", snap.Version, snapshotVersion)
	}

	todos := make([]model.Todo, 0, len(snap.Todos))
	seen := make(map[string]struct{}, len(snap.Todos))
	dropped := 0
	for _, r := range snap.Todos {
		if r.ID == "" {
			dropped++
			continue
		}
		if _, dup := seen[r.ID]; dup {
			dropped++
			continue
		}
		t, err := model.FromRecord(r)
		if err != nil {
			dropped++
			continue
		}
		seen[r.ID] = struct{}{}
		todos = append(todos, t)
	}
	return todos, dropped, nil
}
