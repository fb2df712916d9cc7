package service

import (
	"context"

	"github.com/agencysite/internal/store"
	"gorm.io/gorm"
)

// Resource bundles the verbs every admin manager shares: list in a stable
// order, load, delete and single-column updates. Resource-specific services
// embed it and add their own create/update validation.
type Resource[T any] struct {
	table *store.Table[T]
	order []store.Order
}

// NewResource binds a resource to its table with the given list order.
func NewResource[T any](gdb *gorm.DB, order ...store.Order) Resource[T] {
	return Resource[T]{table: store.NewTable[T](gdb), order: order}
}

// All returns every row, hidden ones included.
func (r Resource[T]) All(ctx context.Context) ([]T, error) {
	return r.find(ctx)
}

// Get loads a single row.
func (r Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	row, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return row, nil
}

// Delete permanently removes a row.
func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return translate(r.table.Delete(ctx, id))
}

// Count returns the number of rows matching filters.
func (r Resource[T]) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	return r.table.Count(ctx, store.Query{Filters: filters})
}

func (r Resource[T]) find(ctx context.Context, filters ...store.Filter) ([]T, error) {
	rows, err := r.table.Select(ctx, store.Query{Filters: filters, Order: r.order})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r Resource[T]) insert(ctx context.Context, record *T) error {
	return r.table.Insert(ctx, record)
}

// update 写入字段后重新读取，返回写入后的完整记录
func (r Resource[T]) update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	if err := r.table.Update(ctx, id, fields); err != nil {
		return nil, translate(err)
	}
	return r.Get(ctx, id)
}

func (r Resource[T]) setField(ctx context.Context, id, column string, value interface{}) error {
	return translate(r.table.Update(ctx, id, map[string]interface{}{column: value}))
}
