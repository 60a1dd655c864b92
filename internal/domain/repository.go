package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrRowMapping marks a result row that cannot be mapped onto a Product:
	// a missing column or a NULL in a non-nullable column.
	ErrRowMapping = errors.New("product row mapping failed")
)

// ProductRepository defines the contract for product storage.
//
// GetByID returns a nil product and a nil error when no row has the id.
// Update and Delete report the number of affected rows; zero is not an error.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int32) (*Product, error)
	Insert(ctx context.Context, product *Product) (int32, error)
	Update(ctx context.Context, product *Product) (int64, error)
	Delete(ctx context.Context, id int32) (int64, error)
}
