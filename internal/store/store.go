// Package store holds the authoritative todo list and keeps a serialized
// copy of it in a KV slot.
//
// Mutations update memory first and then hand a snapshot to a background
// writer. The hand-off never blocks: if the writer is busy, a newer snapshot
// replaces the one still waiting. Write failures are logged and dropped.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
)

// TodoStore is what the UI layers depend on.
type TodoStore interface {
	Todos() []model.Todo
	Get(id string) (model.Todo, bool)
	Add(d model.Draft) model.Todo
	Remove(id string) bool
	Toggle(id string) bool
	Edit(id string, p model.Patch) bool
}

var _ TodoStore = (*Store)(nil)

// Option tunes a Store at Open time.
type Option func(*Store)

// WithKey overrides the slot key (DefaultKey otherwise).
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

// WithLogger sets the logger used for load fallbacks and write failures.
func WithLogger(l *log.Logger) Option { return func(s *Store) { s.log = l } }

// WithIDFunc replaces the id generator. Ids must be unique.
func WithIDFunc(f func() string) Option { return func(s *Store) { s.newID = f } }

type pendingWrite struct {
	seq  uint64
	data []byte
}

type Store struct {
	kv    KV
	key   string
	log   *log.Logger
	newID func() string

	mu     sync.RWMutex
	todos  []model.Todo
	seq    uint64 // snapshots issued
	closed bool

	pending chan pendingWrite
	done    chan struct{}

	fmu     sync.Mutex
	written uint64        // highest seq the writer has attempted
	notify  chan struct{} // closed and replaced after each attempt
}

// Open reads the slot once and starts the writer. It never fails because of
// what is (or isn't) in the slot: anything unreadable yields an empty list.
func Open(ctx context.Context, kv KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     DefaultKey,
		newID:   func() string { return uuid.NewString() },
		pending: make(chan pendingWrite, 1),
		done:    make(chan struct{}),
		notify:  make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.todos = s.load(ctx)
	go s.writer()
	return s
}

func (s *Store) load(ctx context.Context) []model.Todo {
	b, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug("no saved todos, starting empty", "key", s.key)
		} else {
			s.log.Warn("read saved todos failed, starting empty", "key", s.key, "err", err)
		}
		return []model.Todo{}
	}
	todos, dropped, err := DecodeSnapshot(b)
	if err != nil {
		s.log.Warn("saved todos unreadable, starting empty", "key", s.key, "err", err)
		return []model.Todo{}
	}
	if dropped > 0 {
		s.log.Warn("dropped unreadable saved todos", "key", s.key, "dropped", dropped)
	}
	s.log.Debug("loaded todos", "key", s.key, "count", len(todos))
	return todos
}

// Todos returns a copy of the list in insertion order.
func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.todos)
}

func (s *Store) Get(id string) (model.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.todos[i], true
	}
	return model.Todo{}, false
}

// Add appends a new todo with a fresh id and Completed=false.
func (s *Store) Add(d model.Draft) model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := model.Todo{
		ID:          s.uniqueID(),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
	}
	s.todos = append(s.todos, t)
	s.persistLocked()
	return t
}

// Remove deletes the todo with the given id. Unknown ids are a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	s.persistLocked()
	return true
}

// Toggle flips Completed. Unknown ids are a no-op.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.persistLocked()
	return true
}

// Edit merges p into the todo. The id is kept whatever p says.
func (s *Store) Edit(id string, p model.Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.todos[i] = p.Apply(s.todos[i])
	s.persistLocked()
	return true
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}

// uniqueID asks the generator until it returns an id not in use.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// persistLocked queues a snapshot of the current list. Caller holds s.mu,
// so it is the only producer and the second send below cannot block.
func (s *Store) persistLocked() {
	if s.closed {
		s.log.Debug("store closed, change kept in memory only")
		return
	}
	b, err := EncodeSnapshot(s.todos)
	if err != nil {
		s.log.Warn("encode todos failed", "err", err)
		return
	}
	s.seq++
	w := pendingWrite{seq: s.seq, data: b}
	select {
	case s.pending <- w:
	default:
		select {
		case <-s.pending:
		default:
		}
		s.pending <- w
	}
}

func (s *Store) writer() {
	defer close(s.done)
	for w := range s.pending {
		if err := s.kv.Set(context.Background(), s.key, w.data); err != nil {
			s.log.Warn("save todos failed", "key", s.key, "err", err)
		}
		s.fmu.Lock()
		s.written = w.seq
		close(s.notify)
		s.notify = make(chan struct{})
		s.fmu.Unlock()
	}
}

// Flush waits until every change made so far has been handed to the KV.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	target := s.seq
	s.mu.RUnlock()
	for {
		s.fmu.Lock()
		if s.written >= target {
			s.fmu.Unlock()
			return nil
		}
		ch := s.notify
		s.fmu.Unlock()
		select {
		case <-ch:
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close flushes outstanding writes and stops the writer. The list stays
// readable and mutable afterwards, but nothing more is persisted.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.pending)
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
