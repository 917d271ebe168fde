package portage

import (
	"database/sql"
	"fmt"
	"reflect"
	"time"
)

// A Modelable is a record backed by a database table.
type Modelable interface {
	Exists() bool
}

// A Model is the essential data points for primary ID-based records,
// indicating when a record was created, last updated and soft deleted.
type Model struct {
	ID        uint        `db:"id" json:"id"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
	DeletedAt DeletedTime `db:"deleted_at" json:"deletedAt"`
}

func (m Model) Exists() bool { return !m.CreatedAt.IsZero() }

// DeletedTime is a nullable timestamp marking a record as soft deleted.
type DeletedTime struct {
	sql.NullTime
}

// IsDeleted asserts whether the record is soft deleted.
func (dt DeletedTime) IsDeleted() bool { return dt.Valid }

// AssignAttrs copies attrs onto the fields of dest, a pointer to a struct,
// matching keys against each field's "db" tag.
//
// A key naming no declared field returns ErrNotValid;
// records only accept the columns they declare.
// A value whose type does not match the field's returns ErrNotValid as well.
func AssignAttrs(dest any, attrs map[string]any) error {
	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Pointer || destVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: dest must be a pointer to a struct", ErrNotValid)
	}

	destVal = destVal.Elem()
	fields := make(map[string]reflect.Value)
	for _, field := range reflect.VisibleFields(destVal.Type()) {
		tag, ok := field.Tag.Lookup("db")
		if !ok || !field.IsExported() {
			continue
		}

		fields[tag] = destVal.FieldByIndex(field.Index)
	}

	for key, val := range attrs {
		field, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: no declared column %q on %T", ErrNotValid, key, dest)
		}

		valVal := reflect.ValueOf(val)
		if !valVal.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("%w: cannot assign %T to column %q", ErrNotValid, val, key)
		}

		field.Set(valVal)
	}

	return nil
}
