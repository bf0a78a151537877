package itemstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tasklist/internal/storage"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// seqIDs returns an ID generator yielding id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// setupStore opens a store on a fresh memory backend.
func setupStore(t *testing.T) (*Store, *storage.MemoryBackend) {
	t.Helper()
	mem := storage.NewMemoryBackend()
	s, err := Open(mem, WithIDFunc(seqIDs()))
	require.NoError(t, err)
	return s, mem
}

// stored decodes what the backend currently holds under the default key.
func stored(t *testing.T, st types.Storage) []types.Task {
	t.Helper()
	raw, ok, err := st.GetItem(types.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, ok, "task list should be persisted")
	var tasks []types.Task
	require.NoError(t, json.Unmarshal([]byte(raw), &tasks))
	return tasks
}

// pairs reduces tasks to item/category strings for compact assertions.
func pairs(tasks []types.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Item + "/" + string(t.Category)
	}
	return out
}

func TestStore_AddDuplicateAddDelete(t *testing.T) {
	s, mem := setupStore(t)
	assert.Equal(t, 0, s.Len())

	_, err := s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk/Groceries"}, pairs(s.Snapshot()))

	_, err = s.Add("Milk", types.CategoryGroceries)
	assert.ErrorIs(t, err, types.ErrDuplicate)
	assert.Equal(t, []string{"Milk/Groceries"}, pairs(s.Snapshot()))

	_, err = s.Add("Books", types.CategoryCollege)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk/Groceries", "Books/College"}, pairs(s.Snapshot()))

	require.NoError(t, s.DeleteAt(0))
	assert.Equal(t, []string{"Books/College"}, pairs(s.Snapshot()))
	assert.Equal(t, []string{"Books/College"}, pairs(stored(t, mem)))
}

func TestStore_Add(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		category types.Category
		wantErr  error
		wantLen  int
	}{
		{name: "new item is appended", item: "Rent", category: types.CategoryPayments, wantLen: 2},
		{name: "same text other category is allowed", item: "Milk", category: types.CategoryCollege, wantLen: 2},
		{name: "exact duplicate is rejected", item: "Milk", category: types.CategoryGroceries, wantErr: types.ErrDuplicate, wantLen: 1},
		{name: "All is not a record category", item: "Eggs", category: types.CategoryAll, wantErr: types.ErrInvalidCategory, wantLen: 1},
		{name: "unknown category is rejected", item: "Eggs", category: "Chores", wantErr: types.ErrInvalidCategory, wantLen: 1},
		{name: "empty item is rejected", item: "", category: types.CategoryGroceries, wantErr: types.ErrEmptyInput, wantLen: 1},
		{name: "whitespace item is rejected", item: " \t ", category: types.CategoryGroceries, wantErr: types.ErrEmptyInput, wantLen: 1},
		{name: "comparison is case sensitive", item: "milk", category: types.CategoryGroceries, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := setupStore(t)
			_, err := s.Add("Milk", types.CategoryGroceries)
			require.NoError(t, err)

			got, err := s.Add(tt.item, tt.category)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got.ID)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "id-2", got.ID)
				assert.Equal(t, tt.item, got.Item)
				assert.Equal(t, tt.category, got.Category)
			}
			assert.Equal(t, tt.wantLen, s.Len())
			assert.Len(t, stored(t, mem), tt.wantLen, "persisted list matches memory")
		})
	}
}

func TestStore_UpdateAtAllowsDuplicates(t *testing.T) {
	s, mem := setupStore(t)
	_, err := s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)
	_, err = s.Add("Bread", types.CategoryGroceries)
	require.NoError(t, err)

	require.NoError(t, s.UpdateAt(1, "Milk", types.CategoryGroceries))
	assert.Equal(t, []string{"Milk/Groceries", "Milk/Groceries"}, pairs(s.Snapshot()))
	assert.Equal(t, []string{"Milk/Groceries", "Milk/Groceries"}, pairs(stored(t, mem)))

	got, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "id-2", got.ID, "update keeps the ID")
}

func TestStore_UpdateErrors(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)

	assert.ErrorIs(t, s.UpdateAt(1, "x", types.CategoryCollege), types.ErrInvalidPosition)
	assert.ErrorIs(t, s.UpdateAt(-1, "x", types.CategoryCollege), types.ErrInvalidPosition)
	assert.ErrorIs(t, s.UpdateAt(0, "x", types.CategoryAll), types.ErrInvalidCategory)
	assert.ErrorIs(t, s.Update("missing", "x", types.CategoryCollege), types.ErrNotFound)
	assert.ErrorIs(t, s.Update("id-1", "x", types.CategoryAll), types.ErrInvalidCategory)

	require.NoError(t, s.Update("id-1", "Oat milk", types.CategoryGroceries))
	got, err := s.Get("id-1")
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", got.Item)
}

func TestStore_UpdateLegacyAllRecord(t *testing.T) {
	mem := storage.NewMemoryBackend()
	require.NoError(t, mem.SetItem(types.DefaultStorageKey, `[{"item":"Milk","category":"All"}]`))
	s, err := Open(mem, WithIDFunc(seqIDs()))
	require.NoError(t, err)

	require.NoError(t, s.UpdateAt(0, "Oat milk", types.CategoryAll), "existing category is kept")
	assert.Equal(t, []string{"Oat milk/All"}, pairs(stored(t, mem)))

	require.NoError(t, s.Update("id-1", "Soy milk", types.CategoryAll))
	assert.Equal(t, []string{"Soy milk/All"}, pairs(stored(t, mem)))

	assert.ErrorIs(t, s.Update("id-1", "x", "Chores"), types.ErrInvalidCategory)

	require.NoError(t, s.Update("id-1", "Soy milk", types.CategoryGroceries))
	assert.ErrorIs(t, s.Update("id-1", "x", types.CategoryAll), types.ErrInvalidCategory,
		"a record category cannot be changed back to All")
	assert.Equal(t, []string{"Soy milk/Groceries"}, pairs(stored(t, mem)))
}

func TestStore_DeleteShiftsPositions(t *testing.T) {
	s, mem := setupStore(t)
	for _, item := range []string{"a", "b", "c", "d"} {
		_, err := s.Add(item, types.CategoryCollege)
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteAt(1))
	assert.Equal(t, []string{"a/College", "c/College", "d/College"}, pairs(s.Snapshot()))

	got, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "c", got.Item, "record after the deleted one moved down")

	require.NoError(t, s.Delete("id-4"))
	assert.Equal(t, []string{"a/College", "c/College"}, pairs(stored(t, mem)))

	assert.ErrorIs(t, s.DeleteAt(5), types.ErrInvalidPosition)
	assert.ErrorIs(t, s.Delete("id-4"), types.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	s, _ := setupStore(t)
	for _, tk := range []types.Task{
		{Item: "Milk", Category: types.CategoryGroceries},
		{Item: "Books", Category: types.CategoryCollege},
		{Item: "Rent", Category: types.CategoryPayments},
		{Item: "Eggs", Category: types.CategoryGroceries},
	} {
		_, err := s.Add(tk.Item, tk.Category)
		require.NoError(t, err)
	}

	tests := []struct {
		filter types.Category
		want   []string
	}{
		{filter: types.CategoryAll, want: []string{"Milk/Groceries", "Books/College", "Rent/Payments", "Eggs/Groceries"}},
		{filter: types.CategoryGroceries, want: []string{"Milk/Groceries", "Eggs/Groceries"}},
		{filter: types.CategoryPayments, want: []string{"Rent/Payments"}},
		{filter: "Chores", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			seq := s.List(tt.filter)
			first := pairs(slices.Collect(seq))
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, pairs(slices.Collect(seq)), "sequence is restartable")
		})
	}
}

func TestStore_EntriesReportFullListPositions(t *testing.T) {
	s, _ := setupStore(t)
	for _, tk := range []types.Task{
		{Item: "Milk", Category: types.CategoryGroceries},
		{Item: "Books", Category: types.CategoryCollege},
		{Item: "Eggs", Category: types.CategoryGroceries},
	} {
		_, err := s.Add(tk.Item, tk.Category)
		require.NoError(t, err)
	}

	var positions []int
	for pos := range s.Entries(types.CategoryGroceries) {
		positions = append(positions, pos)
	}
	assert.Equal(t, []int{0, 2}, positions)
}

func TestStore_ListStopsEarly(t *testing.T) {
	s, _ := setupStore(t)
	for _, item := range []string{"a", "b", "c"} {
		_, err := s.Add(item, types.CategoryCollege)
		require.NoError(t, err)
	}
	var seen []string
	for tk := range s.List(types.CategoryAll) {
		seen = append(seen, tk.Item)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestOpen_Load(t *testing.T) {
	tests := []struct {
		name    string
		raw     *string
		want    []string
		wantIDs []string
	}{
		{name: "missing key yields empty list", raw: nil, want: []string{}},
		{name: "malformed JSON yields empty list", raw: ptr("{not json"), want: []string{}},
		{name: "wrong shape yields empty list", raw: ptr(`{"item":"Milk"}`), want: []string{}},
		{name: "null yields empty list", raw: ptr("null"), want: []string{}},
		{
			name:    "records with IDs load as stored",
			raw:     ptr(`[{"id":"a","item":"Milk","category":"Groceries"},{"id":"b","item":"Books","category":"College"}]`),
			want:    []string{"Milk/Groceries", "Books/College"},
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "legacy records without IDs get new IDs",
			raw:     ptr(`[{"item":"Milk","category":"Groceries"},{"id":"keep","item":"Rent","category":"Payments"}]`),
			want:    []string{"Milk/Groceries", "Rent/Payments"},
			wantIDs: []string{"id-1", "keep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemoryBackend()
			if tt.raw != nil {
				require.NoError(t, mem.SetItem(types.DefaultStorageKey, *tt.raw))
			}
			s, err := Open(mem, WithIDFunc(seqIDs()))
			require.NoError(t, err)

			got := s.Snapshot()
			assert.Equal(t, tt.want, pairs(got))
			if tt.wantIDs != nil {
				ids := make([]string, len(got))
				for i, tk := range got {
					ids[i] = tk.ID
				}
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestOpen_MigratedIDsArePersisted(t *testing.T) {
	mem := storage.NewMemoryBackend()
	require.NoError(t, mem.SetItem(types.DefaultStorageKey, `[{"item":"Milk","category":"Groceries"}]`))

	_, err := Open(mem, WithIDFunc(seqIDs()))
	require.NoError(t, err)

	tasks := stored(t, mem)
	require.Len(t, tasks, 1)
	assert.Equal(t, "id-1", tasks[0].ID)
}

func TestOpen_MalformedDataIsNotOverwrittenUntilMutation(t *testing.T) {
	mem := storage.NewMemoryBackend()
	require.NoError(t, mem.SetItem(types.DefaultStorageKey, "garbage"))

	s, err := Open(mem)
	require.NoError(t, err)

	raw, _, err := mem.GetItem(types.DefaultStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "garbage", raw)

	_, err = s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)
	assert.Len(t, stored(t, mem), 1)
}

func TestOpen_CustomKey(t *testing.T) {
	mem := storage.NewMemoryBackend()
	s, err := Open(mem, WithKey("shopping"))
	require.NoError(t, err)
	_, err = s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)

	_, ok, err := mem.GetItem("shopping")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = mem.GetItem(types.DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Open(mem, WithKey("a/b"))
	assert.ErrorIs(t, err, types.ErrInvalidKey)
}

// failingStorage fails SetItem on demand.
type failingStorage struct {
	*storage.MemoryBackend
	failSet bool
	failGet bool
}

var errBoom = errors.New("disk full")

func (f *failingStorage) SetItem(key, value string) error {
	if f.failSet {
		return errBoom
	}
	return f.MemoryBackend.SetItem(key, value)
}

func (f *failingStorage) GetItem(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errBoom
	}
	return f.MemoryBackend.GetItem(key)
}

func TestStore_PersistFailureLeavesListUnchanged(t *testing.T) {
	fs := &failingStorage{MemoryBackend: storage.NewMemoryBackend()}
	s, err := Open(fs, WithIDFunc(seqIDs()))
	require.NoError(t, err)
	_, err = s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)

	fs.failSet = true
	_, err = s.Add("Eggs", types.CategoryGroceries)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, s.UpdateAt(0, "Oat milk", types.CategoryGroceries), errBoom)
	assert.ErrorIs(t, s.DeleteAt(0), errBoom)

	assert.Equal(t, []string{"Milk/Groceries"}, pairs(s.Snapshot()))
}

func TestOpen_StorageErrorIsReturned(t *testing.T) {
	fs := &failingStorage{MemoryBackend: storage.NewMemoryBackend(), failGet: true}
	_, err := Open(fs)
	assert.ErrorIs(t, err, errBoom)
}

func TestStore_Clear(t *testing.T) {
	s, mem := setupStore(t)
	_, err := s.Add("Milk", types.CategoryGroceries)
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	_, ok, err := mem.GetItem(types.DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Resolve(t *testing.T) {
	mem := storage.NewMemoryBackend()
	ids := []string{"0190aaaa-1111", "0190aaab-2222", "0190bbbb-3333"}
	n := 0
	s, err := Open(mem, WithIDFunc(func() string { id := ids[n]; n++; return id }))
	require.NoError(t, err)
	for _, item := range []string{"a", "b", "c"} {
		_, err := s.Add(item, types.CategoryCollege)
		require.NoError(t, err)
	}

	tests := []struct {
		ref     string
		want    int
		wantErr error
	}{
		{ref: "0190bbbb-3333", want: 2},
		{ref: "0190b", want: 2},
		{ref: "0190aaab", want: 1},
		{ref: "0190aaa", wantErr: types.ErrAmbiguousRef},
		{ref: "1", want: 1},
		{ref: " 0 ", want: 0},
		{ref: "3", wantErr: types.ErrInvalidPosition},
		{ref: "019", wantErr: types.ErrInvalidPosition},
		{ref: "zzzz", wantErr: types.ErrNotFound},
		{ref: "", wantErr: types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateUUID(t *testing.T) {
	a, b := generateUUID(), generateUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func ptr(s string) *string { return &s }
