package contacts

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	values  map[string]string
	writes  int
	readErr error
	saveErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) GetValue(key string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) SetValue(key, value string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.writes++
	m.values[key] = value
	return nil
}

func TestStore_AddAddRemove(t *testing.T) {
	kv := newMemoryKV()
	s := Open(kv)

	require.NoError(t, s.Add("A", "1"))
	require.NoError(t, s.Add("B", "2"))
	require.NoError(t, s.Remove(0))

	assert.Equal(t, []Contact{{Name: "B", Number: "2"}}, s.List())
	assert.Equal(t, 3, kv.writes, "every mutation writes a snapshot")
	assert.JSONEq(t, `[{"name":"B","number":"2"}]`, kv.values[StorageKey])
}

func TestStore_LoadsPersistedList(t *testing.T) {
	kv := newMemoryKV()
	kv.values[StorageKey] = `[{"name":"Mom","number":"555-0103"},{"name":"Mom","number":"555-0103"}]`

	s := Open(kv)

	// duplicates are allowed, identity is positional
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "Mom", s.List()[1].Name)
	assert.Zero(t, kv.writes, "loading does not write")
}

func TestStore_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		kv   *memoryKV
	}{
		{name: "missing record", kv: newMemoryKV()},
		{name: "malformed json", kv: &memoryKV{values: map[string]string{StorageKey: "{not json"}}},
		{name: "wrong shape", kv: &memoryKV{values: map[string]string{StorageKey: `{"name":"x"}`}}},
		{name: "read failure", kv: &memoryKV{values: map[string]string{}, readErr: errors.New("disk gone")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Open(tt.kv)
			assert.Empty(t, s.List())
		})
	}
}

func TestStore_RemoveOutOfRange(t *testing.T) {
	kv := newMemoryKV()
	s := Open(kv)
	require.NoError(t, s.Add("A", "1"))

	for _, idx := range []int{-1, 1, 5} {
		err := s.Remove(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, kv.writes)
}

func TestStore_RemoveLastWritesEmptyArray(t *testing.T) {
	kv := newMemoryKV()
	s := Open(kv)
	require.NoError(t, s.Add("A", "1"))
	require.NoError(t, s.Remove(0))

	assert.Equal(t, "[]", kv.values[StorageKey])
}

func TestStore_ListIsACopy(t *testing.T) {
	s := Open(newMemoryKV())
	require.NoError(t, s.Add("A", "1"))

	list := s.List()
	list[0].Name = "changed"

	assert.Equal(t, "A", s.List()[0].Name)
}

func TestStore_SaveFailureIsReported(t *testing.T) {
	kv := newMemoryKV()
	kv.saveErr = errors.New("read-only")
	s := Open(kv)

	err := s.Add("A", "1")
	assert.Error(t, err)
	assert.Zero(t, s.Len(), "failed add leaves the list alone")

	kv.saveErr = nil
	require.NoError(t, s.Add("B", "2"))
	assert.JSONEq(t, `[{"name":"B","number":"2"}]`, kv.values[StorageKey])
}

func TestStore_RemoveSaveFailureKeepsContact(t *testing.T) {
	kv := newMemoryKV()
	s := Open(kv)
	require.NoError(t, s.Add("A", "1"))
	require.NoError(t, s.Add("B", "2"))

	kv.saveErr = errors.New("read-only")
	assert.Error(t, s.Remove(0))
	assert.Equal(t, []Contact{{Name: "A", Number: "1"}, {Name: "B", Number: "2"}}, s.List())

	kv.saveErr = nil
	require.NoError(t, s.Remove(1))
	assert.JSONEq(t, `[{"name":"A","number":"1"}]`, kv.values[StorageKey])
}

func TestContact_Initial(t *testing.T) {
	assert.Equal(t, "S", Contact{Name: "sarah"}.Initial())
	assert.Equal(t, "É", Contact{Name: "élodie"}.Initial())
	assert.Equal(t, "?", Contact{}.Initial())
}
