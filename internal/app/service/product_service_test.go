package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/adventureworks-api/internal/app/dto"
	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var fixedNow = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*domain.Product)
	return products, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *mockRepository) Insert(ctx context.Context, product *domain.Product) (int32, error) {
	args := m.Called(ctx, product)
	return int32(args.Int(0)), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, product *domain.Product) (int64, error) {
	args := m.Called(ctx, product)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int32) (int64, error) {
	args := m.Called(ctx, id)
	return int64(args.Int(0)), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo domain.ProductRepository) *ProductService {
	s := NewProductService(repo,
		tracenoop.NewTracerProvider().Tracer("test"),
		metricnoop.NewMeterProvider().Meter("test"),
		discardLogger(),
	)
	s.now = func() time.Time { return fixedNow }
	return s
}

func newMemoryService() *ProductService {
	return newService(memory.NewProductRepository(tracenoop.NewTracerProvider().Tracer("test"), discardLogger()))
}

func widgetRequest(id int32) *dto.ProductRequest {
	return &dto.ProductRequest{
		ProductID:     id,
		Name:          "Test Widget",
		ProductNumber: "TW-0001",
		StandardCost:  decimal.RequireFromString("10.00"),
		ListPrice:     decimal.RequireFromString("19.99"),
		SellStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProductService_CreateFillsDefaults(t *testing.T) {
	s := newMemoryService()
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, widgetRequest(9001))
	require.NoError(t, err)
	assert.Equal(t, int32(9001), created.ProductID)
	assert.NotEqual(t, uuid.Nil, created.RowGuid)
	assert.Equal(t, fixedNow, created.ModifiedDate)

	got, err := s.GetProductByID(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProductService_CreateRejectsInvalid(t *testing.T) {
	repo := &mockRepository{}
	s := newService(repo)

	req := widgetRequest(1)
	req.Name = ""

	_, err := s.CreateProduct(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidProductName)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProductService_GetMissing(t *testing.T) {
	s := newMemoryService()

	_, err := s.GetProductByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_UpdateChecksIDAndExistence(t *testing.T) {
	s := newMemoryService()
	ctx := context.Background()

	err := s.UpdateProduct(ctx, 1, widgetRequest(2))
	assert.ErrorIs(t, err, domain.ErrProductIDMismatch)

	err = s.UpdateProduct(ctx, 1, widgetRequest(1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_UpdateKeepsRowGuid(t *testing.T) {
	s := newMemoryService()
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, widgetRequest(9001))
	require.NoError(t, err)

	req := widgetRequest(9001)
	req.ListPrice = decimal.RequireFromString("24.99")
	require.NoError(t, s.UpdateProduct(ctx, 9001, req))

	got, err := s.GetProductByID(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, "24.99", got.ListPrice.StringFixed(2))
	assert.Equal(t, created.RowGuid, got.RowGuid)
}

func TestProductService_DeleteChecksExistence(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetByID", mock.Anything, int32(7)).Return(nil, nil).Once()
	s := newService(repo)

	err := s.DeleteProduct(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Product{ProductID: 7}, nil).Once()
	repo.On("Delete", mock.Anything, int32(7)).Return(1, nil).Once()
	s := newService(repo)

	require.NoError(t, s.DeleteProduct(context.Background(), 7))
	repo.AssertExpectations(t)
}

func TestProductService_RepositoryErrorsPropagate(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &mockRepository{}
	repo.On("ListAll", mock.Anything).Return(nil, dbErr)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, dbErr)
	repo.On("Insert", mock.Anything, mock.Anything).Return(0, dbErr)
	s := newService(repo)
	ctx := context.Background()

	_, err := s.ListProducts(ctx)
	assert.ErrorIs(t, err, dbErr)

	_, err = s.GetProductByID(ctx, 1)
	assert.ErrorIs(t, err, dbErr)

	_, err = s.CreateProduct(ctx, widgetRequest(1))
	assert.ErrorIs(t, err, dbErr)

	err = s.UpdateProduct(ctx, 1, widgetRequest(1))
	assert.ErrorIs(t, err, dbErr)

	err = s.DeleteProduct(ctx, 1)
	assert.ErrorIs(t, err, dbErr)
}

func TestProductService_RecordsOperationMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	repo := memory.NewProductRepository(tracenoop.NewTracerProvider().Tracer("test"), discardLogger())
	s := NewProductService(repo, tracenoop.NewTracerProvider().Tracer("test"), provider.Meter("test"), discardLogger())
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, widgetRequest(1))
	require.NoError(t, err)
	_, err = s.GetProductByID(ctx, 2)
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				key := m.Name
				if op, ok := dp.Attributes.Value(attribute.Key("operation")); ok {
					result, _ := dp.Attributes.Value(attribute.Key("result"))
					key += "/" + op.AsString() + "/" + result.AsString()
				}
				counts[key] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(1), counts["products.created.total"])
	assert.Equal(t, int64(1), counts["products.operations/create/success"])
	assert.Equal(t, int64(1), counts["products.operations/read/not_found"])
}
