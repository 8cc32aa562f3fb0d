package db

import (
	"github.com/cockroachdb/errors"
	"github.com/pdxmph/callsim/internal/contacts"
)

// fixtureContacts are the sample entries seeded by CreateFixturesDatabase
var fixtureContacts = []contacts.Contact{
	{Name: "Sarah Chen", Number: "555-0101"},
	{Name: "Marcus Williams", Number: "555-0102"},
	{Name: "Mom", Number: "555-0103"},
	{Name: "Alex Thompson", Number: "555-0104"},
	{Name: "Jennifer Rodriguez", Number: "555-0105"},
	{Name: "David Kim", Number: "555-0106"},
	{Name: "Lisa Park", Number: "555-0107"},
	{Name: "Dr. Anderson", Number: "555-0110"},
	{Name: "Tom's Auto Shop", Number: "555-0111"},
}

// CreateFixturesDatabase creates a test database with realistic sample data
func CreateFixturesDatabase(dbPath string) error {
	if err := Initialize(dbPath); err != nil {
		return errors.Wrap(err, "initializing fixtures database")
	}

	database, err := Open(dbPath)
	if err != nil {
		return errors.Wrap(err, "opening fixtures database")
	}
	defer database.Close()

	store := contacts.Open(database)
	for _, c := range fixtureContacts {
		if err := store.Add(c.Name, c.Number); err != nil {
			return errors.Wrapf(err, "adding fixture contact %s", c.Name)
		}
	}

	if err := database.SetValue(KeyPhoneStyle, "iphone"); err != nil {
		return errors.Wrap(err, "setting fixture phone style")
	}

	return nil
}
