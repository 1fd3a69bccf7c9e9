package repository

import (
	"context"

	"github.com/smallbiznis/coopbilling/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is the generic persistence surface shared by every record type.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, id int64, values any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context, query *T) (int64, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
