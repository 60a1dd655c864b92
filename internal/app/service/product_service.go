package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/adventureworks-api/internal/app/dto"
	"github.com/mrops-br/adventureworks-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	now                   func() time.Time
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	// Initialize metrics
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		now:                   func() time.Time { return time.Now().UTC() },
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// ListProducts retrieves all products
func (s *ProductService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	s.logger.InfoContext(ctx, "Listing all products")

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		s.fail(ctx, span, "list", "Failed to list products", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id int32) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	s.logger.InfoContext(ctx, "Getting product by ID",
		slog.Int("product_id", int(id)),
	)

	product, err := s.findExisting(ctx, span, "read", id)
	if err != nil {
		return nil, err
	}

	s.record(ctx, "read", "success")

	s.logger.InfoContext(ctx, "Product retrieved successfully",
		slog.Int("product_id", int(id)),
	)

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// CreateProduct validates and stores a new product. RowGuid and ModifiedDate
// are filled in when the request leaves them empty.
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	span.SetAttributes(
		attribute.Int("product.id", int(req.ProductID)),
		attribute.String("product.name", req.Name),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.Int("product_id", int(req.ProductID)),
		slog.String("name", req.Name),
	)

	product := req.ToDomain()
	product.FillDefaults(s.now())

	if err := product.Validate(); err != nil {
		s.fail(ctx, span, "create", "Validation failed", err)
		return nil, err
	}

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.fail(ctx, span, "create", "Failed to store product", err)
		return nil, err
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.record(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.Int("product_id", int(id)),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// UpdateProduct replaces the product stored under id. The body must carry the
// same id, and the product must already exist.
func (s *ProductService) UpdateProduct(ctx context.Context, id int32, req *dto.ProductRequest) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	s.logger.InfoContext(ctx, "Updating product",
		slog.Int("product_id", int(id)),
	)

	if req.ProductID != id {
		s.fail(ctx, span, "update", "Product id mismatch", domain.ErrProductIDMismatch)
		return domain.ErrProductIDMismatch
	}

	product := req.ToDomain()
	if err := product.Validate(); err != nil {
		s.fail(ctx, span, "update", "Validation failed", err)
		return err
	}

	existing, err := s.findExisting(ctx, span, "update", id)
	if err != nil {
		return err
	}

	if product.RowGuid == uuid.Nil {
		product.RowGuid = existing.RowGuid
	}
	product.FillDefaults(s.now())

	affected, err := s.repo.Update(ctx, product)
	if err != nil {
		s.fail(ctx, span, "update", "Failed to update product", err)
		return err
	}

	s.record(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Product updated successfully",
		slog.Int("product_id", int(id)),
		slog.Int64("rows_affected", affected),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// DeleteProduct removes an existing product
func (s *ProductService) DeleteProduct(ctx context.Context, id int32) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	s.logger.InfoContext(ctx, "Deleting product",
		slog.Int("product_id", int(id)),
	)

	if _, err := s.findExisting(ctx, span, "delete", id); err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.fail(ctx, span, "delete", "Failed to delete product", err)
		return err
	}

	s.record(ctx, "delete", "success")

	s.logger.InfoContext(ctx, "Product deleted successfully",
		slog.Int("product_id", int(id)),
		slog.Int64("rows_affected", affected),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// findExisting reads the product and turns an absent row into ErrProductNotFound.
func (s *ProductService) findExisting(ctx context.Context, span trace.Span, operation string, id int32) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.fail(ctx, span, operation, "Failed to read product", err)
		return nil, err
	}

	if product == nil {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.Int("product_id", int(id)),
		)
		s.record(ctx, operation, "not_found")
		return nil, domain.ErrProductNotFound
	}

	return product, nil
}

func (s *ProductService) fail(ctx context.Context, span trace.Span, operation, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.ErrorContext(ctx, msg,
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	s.record(ctx, operation, "failure")
}

func (s *ProductService) record(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}
