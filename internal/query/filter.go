package query

import (
	"fmt"

	"gorm.io/gorm"
)

// Filter is one predicate in a conjunction. The set of variants is closed:
// Equals, Range, and Contains. Handlers and services compose filters; only
// this package knows how they translate to the underlying store.
type Filter interface {
	apply(db *gorm.DB) *gorm.DB
}

type equalsFilter struct {
	column string
	value  interface{}
}

func (f equalsFilter) apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s = ?", f.column), f.value)
}

// Equals matches rows whose column equals value.
func Equals(column string, value interface{}) Filter {
	return equalsFilter{column: column, value: value}
}

type rangeFilter struct {
	column   string
	min, max interface{}
}

func (f rangeFilter) apply(db *gorm.DB) *gorm.DB {
	if f.min != nil {
		db = db.Where(fmt.Sprintf("%s >= ?", f.column), f.min)
	}
	if f.max != nil {
		db = db.Where(fmt.Sprintf("%s <= ?", f.column), f.max)
	}
	return db
}

// Range matches rows whose column falls within [min, max]. Either bound may
// be nil for a half-open range.
func Range(column string, min, max interface{}) Filter {
	return rangeFilter{column: column, min: min, max: max}
}

type containsFilter struct {
	column string
	value  string
}

func (f containsFilter) apply(db *gorm.DB) *gorm.DB {
	cond := fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", f.column)
	return db.Where(cond, f.value)
}

// Contains matches rows whose JSON-array column contains value. Columns
// written through GORM's json serializer store arrays in this shape.
func Contains(column, value string) Filter {
	return containsFilter{column: column, value: value}
}

// Apply combines filters with AND semantics onto a GORM query.
func Apply(db *gorm.DB, filters ...Filter) *gorm.DB {
	for _, f := range filters {
		db = f.apply(db)
	}
	return db
}
