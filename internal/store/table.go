// Package store is the typed data client every resource goes through.
// A Table[T] issues filtered/ordered reads, inserts and id-scoped
// updates/deletes against the table backing T.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when an id-scoped call matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidColumn is returned for column names that are not plain identifiers.
	ErrInvalidColumn = errors.New("invalid column name")
)

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

const (
	opEq = "="
	opIn = "IN"
)

// Filter is a single equality-style condition.
type Filter struct {
	Column string
	Op     string
	Value  interface{}
}

// Eq matches rows whose column equals value.
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Op: opEq, Value: value}
}

// In matches rows whose column is one of values.
func In(column string, values interface{}) Filter {
	return Filter{Column: column, Op: opIn, Value: values}
}

// Order sorts by a single column.
type Order struct {
	Column string
	Desc   bool
}

// Asc sorts ascending.
func Asc(column string) Order { return Order{Column: column} }

// Desc sorts descending.
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query describes a read.
type Query struct {
	Filters []Filter
	Order   []Order
	Columns []string
	Limit   int
}

// Table is a typed handle on the table backing T.
type Table[T any] struct {
	db   *gorm.DB
	name string
}

// NewTable binds T to gdb.
func NewTable[T any](gdb *gorm.DB) *Table[T] {
	name := fmt.Sprintf("%T", *new(T))
	stmt := &gorm.Statement{DB: gdb}
	if err := stmt.Parse(new(T)); err == nil && stmt.Schema != nil {
		name = stmt.Schema.Table
	}
	return &Table[T]{db: gdb, name: name}
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

// Select returns every row matching q.
func (t *Table[T]) Select(ctx context.Context, q Query) ([]T, error) {
	tx, err := t.apply(t.db.WithContext(ctx).Model(new(T)), q)
	if err != nil {
		return nil, err
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	return rows, nil
}

// Count returns the number of rows matching q's filters.
func (t *Table[T]) Count(ctx context.Context, q Query) (int64, error) {
	tx, err := t.apply(t.db.WithContext(ctx).Model(new(T)), Query{Filters: q.Filters})
	if err != nil {
		return 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return total, nil
}

// Get loads a row by id.
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", t.name, err)
	}
	return &row, nil
}

// Insert creates record; the generated id is written back into it.
func (t *Table[T]) Insert(ctx context.Context, record *T) error {
	if err := t.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

// Update writes fields to the row with the given id as one statement.
func (t *Table[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	for column := range fields {
		if !columnPattern.MatchString(column) {
			return fmt.Errorf("%w: %q", ErrInvalidColumn, column)
		}
	}

	res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", t.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row with the given id. Deletion is permanent.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", t.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[T]) apply(tx *gorm.DB, q Query) (*gorm.DB, error) {
	if len(q.Columns) > 0 {
		for _, column := range q.Columns {
			if !columnPattern.MatchString(column) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, column)
			}
		}
		tx = tx.Select(q.Columns)
	}

	for _, filter := range q.Filters {
		if !columnPattern.MatchString(filter.Column) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, filter.Column)
		}
		column := clause.Column{Name: filter.Column}
		switch filter.Op {
		case opIn:
			tx = tx.Where(clause.Expr{SQL: "? IN ?", Vars: []interface{}{column, filter.Value}})
		default:
			tx = tx.Where(clause.Eq{Column: column, Value: filter.Value})
		}
	}

	for _, order := range q.Order {
		if !columnPattern.MatchString(order.Column) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, order.Column)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc})
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}
