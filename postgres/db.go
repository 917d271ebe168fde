package postgres

import (
	"errors"
	"fmt"
	"math"

	"github.com/portageworks/portage"
	"gorm.io/gorm"
)

// A DB wraps a *gorm.DB with a chainable query API
// translating gorm and PostgreSQL errors into portage sentinels.
//
// Each chainer returns a new *DB, so a *DB handle can be shared
// across goroutines and queries built up independently.
type DB struct {
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// Debug prints the current query to the logger.
func (db *DB) Debug() *DB { return &DB{db.db.Debug()} }

// ***************************************************************************
// CHAINER METHODS
//
// These methods build up a query without executing it.
// Each returns a new *DB so partial queries can be reused.
// ***************************************************************************

// Limit caps the number of records the query returns.
func (db *DB) Limit(n int) *DB { return &DB{db.db.Limit(n)} }

// Model sets the database table according to the passed in struct.
func (db *DB) Model(value any) *DB { return &DB{db.db.Model(value)} }

// Not excludes records matching the condition.
func (db *DB) Not(query any, args ...any) *DB { return &DB{db.db.Not(query, args...)} }

// Offset skips the first n records of the query.
func (db *DB) Offset(n int) *DB { return &DB{db.db.Offset(n)} }

// Order sorts the records by the provided clause.
func (db *DB) Order(value any) *DB { return &DB{db.db.Order(value)} }

// Preload eagerly loads the named association.
func (db *DB) Preload(query string, args ...any) *DB { return &DB{db.db.Preload(query, args...)} }

// Table sets the database table by name.
func (db *DB) Table(name string) *DB { return &DB{db.db.Table(name)} }

// Where filters records by the condition.
func (db *DB) Where(query any, args ...any) *DB { return &DB{db.db.Where(query, args...)} }

// ***************************************************************************
// FINISHER METHODS
//
// These methods close out the current query, executing it.
// Errors from gorm or PostgreSQL itself come back as portage sentinels.
// ***************************************************************************

// Count returns the number of records matching the current query.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %s", portage.ErrUnexpected, err)
	}

	return count, nil
}

// Create inserts value into the database,
// updating value with data yielding from that insertion.
// Value is almost always a pointer to a struct mapping to a database table.
//
// If value violates a unique constraint defined by the database, ErrExists returns.
// If value violates a not-null constraint, ErrNotValid returns.
func (db *DB) Create(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return translate(db.db.Create(value).Error)
}

// Delete removes the records matching the current query.
func (db *DB) Delete(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return translate(db.db.Delete(value).Error)
}

// Find retrieves all records matching the current query into dest,
// a pointer to a slice.
func (db *DB) Find(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return translate(db.db.Find(dest).Error)
}

// First retrieves the first record matching the current query into dest.
//
// If no record matches, ErrNotExist returns.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return translate(db.db.First(dest).Error)
}

// Paged retrieves the page of records matching the current query into models,
// a pointer to a slice, wrapping them in PagedData.
//
// Page numbering begins at 1.
func (db *DB) Paged(models any, page, perPage int64) (PagedData, error) {
	if db.db.Error != nil {
		return PagedData{}, db.db.Error
	}

	if page < 1 || perPage < 1 {
		return PagedData{}, fmt.Errorf("%w: page and perPage must be positive", portage.ErrNotValid)
	}

	var total int64
	if err := db.db.Session(&gorm.Session{}).Model(models).Count(&total).Error; err != nil {
		return PagedData{}, translate(err)
	}

	offset := int((page - 1) * perPage)
	if err := db.db.Offset(offset).Limit(int(perPage)).Find(models).Error; err != nil {
		return PagedData{}, translate(err)
	}

	return PagedData{
		Items:      models,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: int64(math.Ceil(float64(total) / float64(perPage))),
	}, nil
}

// Pluck retrieves a single column from the current query into dest.
func (db *DB) Pluck(column string, dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return translate(db.db.Pluck(column, dest).Error)
}

// Update applies the changes in values to the records matching the current query.
//
// If no record matches, ErrNotExist returns.
func (db *DB) Update(values map[string]any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Updates(values)
	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		return portage.ErrNotExist
	}

	return nil
}

// translate maps gorm and PostgreSQL errors onto portage sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		return portage.ErrNotExist

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", portage.ErrExists, err)

	case errConstraintViolation.MatchString(err.Error()), errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", portage.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: %s", portage.ErrUnexpected, err)
	}
}
