package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validProduct() *Product {
	return &Product{
		ProductID:     9001,
		Name:          "Test Widget",
		ProductNumber: "TW-0001",
		StandardCost:  decimal.RequireFromString("10.00"),
		ListPrice:     decimal.RequireFromString("19.99"),
		SellStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr error
	}{
		{name: "valid", mutate: func(p *Product) {}},
		{name: "missing name", mutate: func(p *Product) { p.Name = "" }, wantErr: ErrInvalidProductName},
		{name: "missing number", mutate: func(p *Product) { p.ProductNumber = "" }, wantErr: ErrInvalidProductNumber},
		{name: "negative cost", mutate: func(p *Product) { p.StandardCost = decimal.NewFromInt(-1) }, wantErr: ErrInvalidProductPrice},
		{name: "negative list price", mutate: func(p *Product) { p.ListPrice = decimal.NewFromInt(-1) }, wantErr: ErrInvalidProductPrice},
		{name: "zero prices allowed", mutate: func(p *Product) {
			p.StandardCost = decimal.Zero
			p.ListPrice = decimal.Zero
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			assert.ErrorIs(t, p.Validate(), tt.wantErr)
		})
	}
}

func TestProduct_FillDefaults(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	p := validProduct()
	p.FillDefaults(now)
	assert.NotEqual(t, uuid.Nil, p.RowGuid)
	assert.Equal(t, now, p.ModifiedDate)

	guid := uuid.New()
	modified := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	p = validProduct()
	p.RowGuid = guid
	p.ModifiedDate = modified
	p.FillDefaults(now)
	assert.Equal(t, guid, p.RowGuid)
	assert.Equal(t, modified, p.ModifiedDate)
}
