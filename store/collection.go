package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOptions narrows a List call. Order is a column name, prefixed with "-"
// for descending order. A zero Limit returns every matching record.
type ListOptions struct {
	Order   string
	Limit   int
	Filters map[string]any
}

// Collection is the CRUD capability the application consumes per entity type.
type Collection[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id uint) (T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

var columnName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ParseOrder turns "-created_at" into a descending order on created_at.
func ParseOrder(raw string) (clause.OrderByColumn, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return clause.OrderByColumn{}, false, nil
	}
	desc := strings.HasPrefix(raw, "-")
	name := strings.TrimPrefix(raw, "-")
	if !columnName.MatchString(name) {
		return clause.OrderByColumn{}, false, fmt.Errorf("invalid order column %q", name)
	}
	return clause.OrderByColumn{Column: clause.Column{Name: name}, Desc: desc}, true, nil
}

// GormCollection stores records of T in the table gorm derives for T.
type GormCollection[T any] struct {
	DB *gorm.DB
}

func NewGormCollection[T any](db *gorm.DB) *GormCollection[T] {
	return &GormCollection[T]{DB: db}
}

func (c *GormCollection[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	q := c.DB.WithContext(ctx).Model(new(T))

	order, ok, err := ParseOrder(opts.Order)
	if err != nil {
		return nil, err
	}
	if ok {
		q = q.Order(order)
	}
	for col, val := range opts.Filters {
		if !columnName.MatchString(col) {
			return nil, fmt.Errorf("invalid filter column %q", col)
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: val})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	out := []T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (c *GormCollection[T]) Get(ctx context.Context, id uint) (T, error) {
	var record T
	if err := c.DB.WithContext(ctx).First(&record, id).Error; err != nil {
		return record, classify(err)
	}
	return record, nil
}

func (c *GormCollection[T]) Create(ctx context.Context, record *T) error {
	return classify(c.DB.WithContext(ctx).Create(record).Error)
}

func (c *GormCollection[T]) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		_, err := c.Get(ctx, id)
		return err
	}
	res := c.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *GormCollection[T]) Delete(ctx context.Context, id uint) error {
	res := c.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
