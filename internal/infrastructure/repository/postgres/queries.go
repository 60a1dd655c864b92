package postgres

import (
	"time"

	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/database"
)

// Column names of SalesLT.Product.
const (
	colProductID              = "ProductID"
	colName                   = "Name"
	colProductNumber          = "ProductNumber"
	colColor                  = "Color"
	colStandardCost           = "StandardCost"
	colListPrice              = "ListPrice"
	colSize                   = "Size"
	colWeight                 = "Weight"
	colProductCategoryID      = "ProductCategoryID"
	colProductModelID         = "ProductModelID"
	colSellStartDate          = "SellStartDate"
	colSellEndDate            = "SellEndDate"
	colDiscontinuedDate       = "DiscontinuedDate"
	colThumbNailPhoto         = "ThumbNailPhoto"
	colThumbnailPhotoFileName = "ThumbnailPhotoFileName"
	colRowGuid                = "RowGuid"
	colModifiedDate           = "ModifiedDate"
)

const (
	selectAllProductsSQL = `
		SELECT "ProductID", "Name", "ProductNumber", "Color", "StandardCost", "ListPrice",
			"Size", "Weight", "ProductCategoryID", "ProductModelID", "SellStartDate",
			"SellEndDate", "DiscontinuedDate", "ThumbNailPhoto", "ThumbnailPhotoFileName",
			"RowGuid", "ModifiedDate"
		FROM "SalesLT"."Product"`

	selectProductByIDSQL = selectAllProductsSQL + `
		WHERE "ProductID" = @ProductID`

	insertProductSQL = `
		INSERT INTO "SalesLT"."Product" (
			"ProductID", "Name", "ProductNumber", "Color", "StandardCost", "ListPrice",
			"Size", "Weight", "ProductCategoryID", "ProductModelID", "SellStartDate",
			"SellEndDate", "DiscontinuedDate", "ThumbNailPhoto", "ThumbnailPhotoFileName",
			"RowGuid", "ModifiedDate"
		) VALUES (
			@ProductID, @Name, @ProductNumber, @Color, @StandardCost, @ListPrice,
			@Size, @Weight, @ProductCategoryID, @ProductModelID, @SellStartDate,
			@SellEndDate, @DiscontinuedDate, @ThumbNailPhoto, @ThumbnailPhotoFileName,
			@RowGuid, @ModifiedDate
		)`

	updateProductSQL = `
		UPDATE "SalesLT"."Product"
		SET "Name" = @Name,
			"ProductNumber" = @ProductNumber,
			"Color" = @Color,
			"StandardCost" = @StandardCost,
			"ListPrice" = @ListPrice,
			"Size" = @Size,
			"Weight" = @Weight,
			"ProductCategoryID" = @ProductCategoryID,
			"ProductModelID" = @ProductModelID,
			"SellStartDate" = @SellStartDate,
			"SellEndDate" = @SellEndDate,
			"DiscontinuedDate" = @DiscontinuedDate,
			"ThumbNailPhoto" = @ThumbNailPhoto,
			"ThumbnailPhotoFileName" = @ThumbnailPhotoFileName,
			"RowGuid" = @RowGuid,
			"ModifiedDate" = @ModifiedDate
		WHERE "ProductID" = @ProductID`

	deleteProductSQL = `
		DELETE FROM "SalesLT"."Product"
		WHERE "ProductID" = @ProductID`
)

// productArgs binds every column of p. Nil pointers and a nil photo bind as NULL.
// The date columns are timestamp without time zone, so times are bound in UTC
// to keep the instant across a round trip.
func productArgs(p *domain.Product) database.NamedArgs {
	return database.NamedArgs{
		"ProductID":              p.ProductID,
		"Name":                   p.Name,
		"ProductNumber":          p.ProductNumber,
		"Color":                  p.Color,
		"StandardCost":           p.StandardCost,
		"ListPrice":              p.ListPrice,
		"Size":                   p.Size,
		"Weight":                 p.Weight,
		"ProductCategoryID":      p.ProductCategoryID,
		"ProductModelID":         p.ProductModelID,
		"SellStartDate":          p.SellStartDate.UTC(),
		"SellEndDate":            utcPtr(p.SellEndDate),
		"DiscontinuedDate":       utcPtr(p.DiscontinuedDate),
		"ThumbNailPhoto":         p.ThumbNailPhoto,
		"ThumbnailPhotoFileName": p.ThumbnailPhotoFileName,
		"RowGuid":                p.RowGuid,
		"ModifiedDate":           p.ModifiedDate.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func idArgs(id int32) database.NamedArgs {
	return database.NamedArgs{"ProductID": id}
}
