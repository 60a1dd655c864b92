package postgres

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/database"
)

// productColumns lists every column a Product row must carry.
var productColumns = []string{
	colProductID,
	colName,
	colProductNumber,
	colColor,
	colStandardCost,
	colListPrice,
	colSize,
	colWeight,
	colProductCategoryID,
	colProductModelID,
	colSellStartDate,
	colSellEndDate,
	colDiscontinuedDate,
	colThumbNailPhoto,
	colThumbnailPhotoFileName,
	colRowGuid,
	colModifiedDate,
}

// columnIndex resolves the position of every product column in the result set.
func columnIndex(columns []string) (map[string]int, error) {
	positions := make(map[string]int, len(columns))
	for i, name := range columns {
		positions[name] = i
	}

	for _, name := range productColumns {
		if _, ok := positions[name]; !ok {
			return nil, fmt.Errorf("%w: column %q missing from result set", domain.ErrRowMapping, name)
		}
	}
	return positions, nil
}

// productRow holds the scan destinations for one row. RowGuid goes through an
// intermediate pointer because uuid.UUID accepts NULL as the zero UUID; the
// nil check in toProduct() turns that into a mapping failure instead.
type productRow struct {
	product domain.Product
	rowGuid *uuid.UUID
}

// scanTargets returns scan destinations ordered like the result set.
// Nullable columns scan into pointer-to-pointer so NULL leaves the field nil;
// non-nullable columns scan into plain values so NULL fails the scan.
// Columns the product does not know about get a nil destination and are skipped.
func (row *productRow) scanTargets(positions map[string]int, width int) []any {
	p := &row.product
	byName := map[string]any{
		colProductID:              &p.ProductID,
		colName:                   &p.Name,
		colProductNumber:          &p.ProductNumber,
		colColor:                  &p.Color,
		colStandardCost:           &p.StandardCost,
		colListPrice:              &p.ListPrice,
		colSize:                   &p.Size,
		colWeight:                 &p.Weight,
		colProductCategoryID:      &p.ProductCategoryID,
		colProductModelID:         &p.ProductModelID,
		colSellStartDate:          &p.SellStartDate,
		colSellEndDate:            &p.SellEndDate,
		colDiscontinuedDate:       &p.DiscontinuedDate,
		colThumbNailPhoto:         &p.ThumbNailPhoto,
		colThumbnailPhotoFileName: &p.ThumbnailPhotoFileName,
		colRowGuid:                &row.rowGuid,
		colModifiedDate:           &p.ModifiedDate,
	}

	dest := make([]any, width)
	for name, target := range byName {
		dest[positions[name]] = target
	}
	return dest
}

// toProduct finishes the mapping once the row has been scanned.
func (row *productRow) toProduct() (*domain.Product, error) {
	if row.rowGuid == nil {
		return nil, fmt.Errorf("%w: column %q is NULL", domain.ErrRowMapping, colRowGuid)
	}
	p := row.product
	p.RowGuid = *row.rowGuid
	return &p, nil
}

// scanProducts maps rows onto products lazily, one row per step. The sequence
// can be ranged over once; the caller still owns closing rows.
func scanProducts(rows database.Rows) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		columns := rows.Columns()
		positions, err := columnIndex(columns)
		if err != nil {
			yield(nil, err)
			return
		}

		for rows.Next() {
			var row productRow
			if err := rows.Scan(row.scanTargets(positions, len(columns))...); err != nil {
				yield(nil, fmt.Errorf("%w: %w", domain.ErrRowMapping, err))
				return
			}
			p, err := row.toProduct()
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}
