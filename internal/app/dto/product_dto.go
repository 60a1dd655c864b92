package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body accepted by create and update
type ProductRequest struct {
	ProductID              int32            `json:"productID"`
	Name                   string           `json:"name"`
	ProductNumber          string           `json:"productNumber"`
	Color                  *string          `json:"color"`
	StandardCost           decimal.Decimal  `json:"standardCost"`
	ListPrice              decimal.Decimal  `json:"listPrice"`
	Size                   *string          `json:"size"`
	Weight                 *decimal.Decimal `json:"weight"`
	ProductCategoryID      *int32           `json:"productCategoryID"`
	ProductModelID         *int32           `json:"productModelID"`
	SellStartDate          time.Time        `json:"sellStartDate"`
	SellEndDate            *time.Time       `json:"sellEndDate"`
	DiscontinuedDate       *time.Time       `json:"discontinuedDate"`
	ThumbNailPhoto         []byte           `json:"thumbNailPhoto"`
	ThumbnailPhotoFileName *string          `json:"thumbnailPhotoFileName"`
	RowGuid                uuid.UUID        `json:"rowGuid"`
	ModifiedDate           time.Time        `json:"modifiedDate"`
}

// ProductResponse represents the product response. Absent columns are
// serialized as null.
type ProductResponse struct {
	ProductID              int32            `json:"productID"`
	Name                   string           `json:"name"`
	ProductNumber          string           `json:"productNumber"`
	Color                  *string          `json:"color"`
	StandardCost           decimal.Decimal  `json:"standardCost"`
	ListPrice              decimal.Decimal  `json:"listPrice"`
	Size                   *string          `json:"size"`
	Weight                 *decimal.Decimal `json:"weight"`
	ProductCategoryID      *int32           `json:"productCategoryID"`
	ProductModelID         *int32           `json:"productModelID"`
	SellStartDate          time.Time        `json:"sellStartDate"`
	SellEndDate            *time.Time       `json:"sellEndDate"`
	DiscontinuedDate       *time.Time       `json:"discontinuedDate"`
	ThumbNailPhoto         []byte           `json:"thumbNailPhoto"`
	ThumbnailPhotoFileName *string          `json:"thumbnailPhotoFileName"`
	RowGuid                uuid.UUID        `json:"rowGuid"`
	ModifiedDate           time.Time        `json:"modifiedDate"`
}

// ToDomain converts the request into a domain Product
func (r *ProductRequest) ToDomain() *domain.Product {
	return &domain.Product{
		ProductID:              r.ProductID,
		Name:                   r.Name,
		ProductNumber:          r.ProductNumber,
		Color:                  r.Color,
		StandardCost:           r.StandardCost,
		ListPrice:              r.ListPrice,
		Size:                   r.Size,
		Weight:                 r.Weight,
		ProductCategoryID:      r.ProductCategoryID,
		ProductModelID:         r.ProductModelID,
		SellStartDate:          r.SellStartDate,
		SellEndDate:            r.SellEndDate,
		DiscontinuedDate:       r.DiscontinuedDate,
		ThumbNailPhoto:         r.ThumbNailPhoto,
		ThumbnailPhotoFileName: r.ThumbnailPhotoFileName,
		RowGuid:                r.RowGuid,
		ModifiedDate:           r.ModifiedDate,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ProductID:              p.ProductID,
		Name:                   p.Name,
		ProductNumber:          p.ProductNumber,
		Color:                  p.Color,
		StandardCost:           p.StandardCost,
		ListPrice:              p.ListPrice,
		Size:                   p.Size,
		Weight:                 p.Weight,
		ProductCategoryID:      p.ProductCategoryID,
		ProductModelID:         p.ProductModelID,
		SellStartDate:          p.SellStartDate,
		SellEndDate:            p.SellEndDate,
		DiscontinuedDate:       p.DiscontinuedDate,
		ThumbNailPhoto:         p.ThumbNailPhoto,
		ThumbnailPhotoFileName: p.ThumbnailPhotoFileName,
		RowGuid:                p.RowGuid,
		ModifiedDate:           p.ModifiedDate,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
