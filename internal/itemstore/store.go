// Package itemstore holds the ordered task list in memory and writes the
// whole list back to storage after every mutation.
package itemstore

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// minPrefixLen is the shortest ID prefix Resolve accepts.
const minPrefixLen = 4

var _ types.TaskStore = (*Store)(nil)

// Store is the task list backed by a types.Storage key.
type Store struct {
	mu     sync.Mutex
	st     types.Storage
	key    string
	tasks  []types.Task
	logger *slog.Logger
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key holding the list.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithIDFunc replaces the ID generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open loads the list from st. A missing or malformed value yields an empty
// list; only storage I/O failures are returned.
func Open(st types.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		st:     st,
		key:    types.DefaultStorageKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:  generateUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := types.ValidateKey(s.key); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// generateUUID generates a new UUID v7 for task IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func (s *Store) load() error {
	raw, ok, err := s.st.GetItem(s.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok {
		s.logger.Debug("no stored task list", "key", s.key)
		return nil
	}

	tasks, err := decode(raw)
	if err != nil {
		s.logger.Debug("treating stored task list as empty", "key", s.key, "err", err)
		return nil
	}

	// Records written without IDs get one now and are saved straight away
	// so the IDs survive the next load.
	migrated := 0
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = s.newID()
			migrated++
		}
		if !tasks[i].Category.IsRecord() {
			s.logger.Debug("stored task has non-record category",
				"id", tasks[i].ID, "category", tasks[i].Category)
		}
	}
	s.tasks = tasks
	if migrated > 0 {
		s.logger.Debug("assigned IDs to stored tasks", "count", migrated)
		if err := s.persist(tasks); err != nil {
			return err
		}
	}
	return nil
}

// decode parses the persisted JSON array.
func decode(raw string) ([]types.Task, error) {
	var tasks []types.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorageParse, err)
	}
	return tasks, nil
}

// persist writes next as the full list. The caller holds s.mu and swaps
// s.tasks only after persist succeeds.
func (s *Store) persist(next []types.Task) error {
	if next == nil {
		next = []types.Task{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := s.st.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}

// commit persists next and makes it the current list.
func (s *Store) commit(next []types.Task) error {
	if err := s.persist(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// Add appends a new task unless item is blank or an identical
// (item, category) pair exists.
func (s *Store) Add(item string, category types.Category) (types.Task, error) {
	if strings.TrimSpace(item) == "" {
		return types.Task{}, types.ErrEmptyInput
	}
	if !category.IsRecord() {
		return types.Task{}, types.ErrInvalidCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	task := types.Task{Item: item, Category: category}
	for _, t := range s.tasks {
		if t.SameContent(task) {
			return types.Task{}, types.ErrDuplicate
		}
	}
	task.ID = s.newID()

	next := append(slices.Clone(s.tasks), task)
	if err := s.commit(next); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

// UpdateAt replaces the item and category of the task at pos. Duplicates
// are allowed; the ID is kept. category must be a record category unless
// it is the one the task already has, so records stored under "All" by
// older versions stay editable.
func (s *Store) UpdateAt(pos int, item string, category types.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.tasks) {
		return types.ErrInvalidPosition
	}
	return s.replace(pos, item, category)
}

// Update is UpdateAt addressed by ID.
func (s *Store) Update(id, item string, category types.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.indexOf(id)
	if pos < 0 {
		return types.ErrNotFound
	}
	return s.replace(pos, item, category)
}

// replace rewrites the task at pos. The caller holds s.mu.
func (s *Store) replace(pos int, item string, category types.Category) error {
	if !category.IsRecord() && category != s.tasks[pos].Category {
		return types.ErrInvalidCategory
	}
	next := slices.Clone(s.tasks)
	next[pos].Item = item
	next[pos].Category = category
	return s.commit(next)
}

// DeleteAt removes the task at pos.
func (s *Store) DeleteAt(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.tasks) {
		return types.ErrInvalidPosition
	}
	return s.commit(slices.Delete(slices.Clone(s.tasks), pos, pos+1))
}

// Delete removes the task with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.indexOf(id)
	if pos < 0 {
		return types.ErrNotFound
	}
	return s.commit(slices.Delete(slices.Clone(s.tasks), pos, pos+1))
}

// Clear removes every task and the storage key itself.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.st.RemoveItem(s.key); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	s.tasks = nil
	return nil
}

// List yields the tasks passing filter. Each range takes a fresh snapshot,
// so the sequence is restartable and never observes a half-applied change.
func (s *Store) List(filter types.Category) iter.Seq[types.Task] {
	return func(yield func(types.Task) bool) {
		for _, t := range s.Entries(filter) {
			if !yield(t) {
				return
			}
		}
	}
}

// Entries yields (position, task) pairs for the tasks passing filter.
func (s *Store) Entries(filter types.Category) iter.Seq2[int, types.Task] {
	return func(yield func(int, types.Task) bool) {
		for i, t := range s.snapshot() {
			if !filter.Matches(t.Category) {
				continue
			}
			if !yield(i, t) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the full list.
func (s *Store) Snapshot() []types.Task {
	return s.snapshot()
}

func (s *Store) snapshot() []types.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.indexOf(id)
	if pos < 0 {
		return types.Task{}, types.ErrNotFound
	}
	return s.tasks[pos], nil
}

// At returns the task at pos.
func (s *Store) At(pos int) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.tasks) {
		return types.Task{}, types.ErrInvalidPosition
	}
	return s.tasks[pos], nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Resolve maps a user reference to a position. ref may be a full ID, a
// unique ID prefix of at least four characters, or a decimal position.
// ID matches take precedence over positions.
func (s *Store) Resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, types.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos := s.indexOf(ref); pos >= 0 {
		return pos, nil
	}
	if len(ref) >= minPrefixLen {
		match := -1
		for i, t := range s.tasks {
			if !strings.HasPrefix(t.ID, ref) {
				continue
			}
			if match >= 0 {
				return -1, types.ErrAmbiguousRef
			}
			match = i
		}
		if match >= 0 {
			return match, nil
		}
	}
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 0 || pos >= len(s.tasks) {
			return -1, types.ErrInvalidPosition
		}
		return pos, nil
	}
	return -1, types.ErrNotFound
}

// indexOf returns the position of id or -1. The caller holds s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t types.Task) bool { return t.ID == id })
}
