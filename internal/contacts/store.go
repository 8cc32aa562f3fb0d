// Package contacts holds the ordered, persisted list of callable contacts.
package contacts

import (
	"encoding/json"
	"unicode"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// StorageKey is the record the whole list is persisted under.
const StorageKey = "savedContacts"

// ErrIndexOutOfRange is returned by Remove for a position past the end of the list.
var ErrIndexOutOfRange = errors.New("contact index out of range")

// Contact is a name and a phone number. Identity is the list position.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Initial returns the upper-cased first letter of the name, for avatars.
func (c Contact) Initial() string {
	for _, r := range c.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// KV is the persistence record store. db.DB satisfies it.
type KV interface {
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error
}

// Store is the single owner of the contact list. It is read once at
// construction and written back wholesale on every mutation.
type Store struct {
	kv       KV
	contacts []Contact
}

// Open loads the list from kv. Missing or malformed data yields an empty list.
func Open(kv KV) *Store {
	s := &Store{kv: kv}

	raw, ok, err := kv.GetValue(StorageKey)
	switch {
	case err != nil:
		zlog.Warn().Err(err).Msg("Loading contacts failed, starting empty")
	case !ok || raw == "":
	default:
		var loaded []Contact
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			zlog.Warn().Err(err).Msg("Stored contacts are malformed, starting empty")
		} else {
			s.contacts = loaded
		}
	}

	return s
}

// Add appends a contact. Callers validate that both fields are non-empty.
// The list is only changed once the new snapshot has been saved.
func (s *Store) Add(name, number string) error {
	next := make([]Contact, len(s.contacts), len(s.contacts)+1)
	copy(next, s.contacts)
	next = append(next, Contact{Name: name, Number: number})
	return s.commit(next)
}

// Remove deletes the contact at index, shifting later entries down.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.contacts) {
		return errors.Wrapf(ErrIndexOutOfRange, "removing %d of %d", index, len(s.contacts))
	}
	next := make([]Contact, 0, len(s.contacts)-1)
	next = append(next, s.contacts[:index]...)
	next = append(next, s.contacts[index+1:]...)
	return s.commit(next)
}

// List returns a copy of the current ordered list.
func (s *Store) List() []Contact {
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}

// commit saves next and makes it the current list. On failure the current
// list is left as it was.
func (s *Store) commit(next []Contact) error {
	data, err := json.Marshal(next)
	if err != nil {
		return errors.Wrap(err, "encoding contacts")
	}
	if err := s.kv.SetValue(StorageKey, string(data)); err != nil {
		return errors.Wrap(err, "saving contacts")
	}
	s.contacts = next
	return nil
}
