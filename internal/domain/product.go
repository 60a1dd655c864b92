package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductName   = errors.New("product name is required")
	ErrInvalidProductNumber = errors.New("product number is required")
	ErrInvalidProductPrice  = errors.New("product cost and list price must not be negative")
	ErrProductIDMismatch    = errors.New("product id in path does not match product id in body")
)

// Product represents a row of SalesLT.Product.
// Nullable columns are pointers (or a nil slice for ThumbNailPhoto); nil means
// the column holds NULL.
type Product struct {
	ProductID              int32
	Name                   string
	ProductNumber          string
	Color                  *string
	StandardCost           decimal.Decimal
	ListPrice              decimal.Decimal
	Size                   *string
	Weight                 *decimal.Decimal
	ProductCategoryID      *int32
	ProductModelID         *int32
	SellStartDate          time.Time
	SellEndDate            *time.Time
	DiscontinuedDate       *time.Time
	ThumbNailPhoto         []byte
	ThumbnailPhotoFileName *string
	RowGuid                uuid.UUID
	ModifiedDate           time.Time
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.ProductNumber == "" {
		return ErrInvalidProductNumber
	}
	if p.StandardCost.IsNegative() || p.ListPrice.IsNegative() {
		return ErrInvalidProductPrice
	}
	return nil
}

// FillDefaults assigns a RowGuid and ModifiedDate when the caller left them unset.
func (p *Product) FillDefaults(now time.Time) {
	if p.RowGuid == uuid.Nil {
		p.RowGuid = uuid.New()
	}
	if p.ModifiedDate.IsZero() {
		p.ModifiedDate = now
	}
}
