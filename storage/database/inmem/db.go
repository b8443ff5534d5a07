// Package inmemdb keeps every table in process memory behind a single lock.
// It enforces the same constraints as the Postgres schema so both engines fail alike.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/identity"
)

type DB struct {
	mutex sync.RWMutex
	seq   map[string]int

	admins   map[int]*identity.Admin
	teachers map[int]*identity.Teacher
	students map[int]*identity.Student

	courses     map[int]*academics.Course
	contracts   map[int]*academics.Contract
	enrollments map[int]*academics.Enrollment
	tests       map[int]*academics.Test
	grades      map[int]*academics.Grade
}

func Open() *DB {
	return &DB{
		seq:         make(map[string]int),
		admins:      make(map[int]*identity.Admin),
		teachers:    make(map[int]*identity.Teacher),
		students:    make(map[int]*identity.Student),
		courses:     make(map[int]*academics.Course),
		contracts:   make(map[int]*academics.Contract),
		enrollments: make(map[int]*academics.Enrollment),
		tests:       make(map[int]*academics.Test),
		grades:      make(map[int]*academics.Grade),
	}
}

// nextID must be called with the write lock held.
func (db *DB) nextID(table string) int {
	db.seq[table]++
	return db.seq[table]
}

func notNull(table, column string, valid bool) error {
	if !valid {
		return core.NewConstraintError(table+"_"+column+"_not_null", "null value in column \""+column+"\"")
	}
	return nil
}

func foreignKey(table, column string, id null.Int, exists func(int) bool) error {
	if err := notNull(table, column, id.Valid); err != nil {
		return err
	}
	if !exists(id.Int) {
		return core.NewConstraintError(table+"_"+column+"_fkey", "referenced row is not present")
	}
	return nil
}

func restrict(table, referrer string, referenced bool) error {
	if referenced {
		return core.NewConstraintError(referrer+"_"+table+"_fkey", "row is still referenced from table \""+referrer+"\"")
	}
	return nil
}

func uniqueEmail(table, email string, taken bool) error {
	if taken {
		return core.NewConstraintError(table+"_email_key", "email \""+email+"\" already exists")
	}
	return nil
}

// idSet turns an ID filter into a lookup; a nil result means no restriction.
func idSet(ids []int) map[int]bool {
	if ids == nil {
		return nil
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func matches(set map[int]bool, id int) bool {
	return set == nil || set[id]
}

func sortByID[T any](rows []T, id func(T) int) []T {
	sort.Slice(rows, func(i, j int) bool { return id(rows[i]) < id(rows[j]) })
	return rows
}
