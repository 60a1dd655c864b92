package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mrops-br/adventureworks-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ domain.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// It stores copies, so callers own every product they pass in or get back.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int32]*domain.Product
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[int32]*domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// Insert stores a new product under its ProductID
func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) (int32, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()

	span.SetAttributes(
		attribute.Int("product.id", int(product.ProductID)),
		attribute.String("product.name", product.Name),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ProductID]; exists {
		err := fmt.Errorf("insert product %d: duplicate key", product.ProductID)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Duplicate product id")
		return 0, err
	}

	r.products[product.ProductID] = clone(product)

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.Int("product_id", int(product.ProductID)),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return product.ProductID, nil
}

// GetByID retrieves a product by ID, or nil if it does not exist
func (r *ProductRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.GetByID")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		r.logger.DebugContext(ctx, "Product not found in repository",
			slog.Int("product_id", int(id)),
		)
		span.SetStatus(codes.Ok, "Product not found")
		return nil, nil
	}

	r.logger.DebugContext(ctx, "Product found in repository",
		slog.Int("product_id", int(id)),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product found")
	return clone(product), nil
}

// ListAll retrieves all products ordered by id
func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.ListAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, clone(product))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.InfoContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// Update replaces the stored product with the same ProductID
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(product.ProductID)))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ProductID]; !exists {
		span.SetStatus(codes.Ok, "No product to update")
		return 0, nil
	}

	r.products[product.ProductID] = clone(product)

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.Int("product_id", int(product.ProductID)),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return 1, nil
}

// Delete removes the product with the given ID
func (r *ProductRepository) Delete(ctx context.Context, id int32) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		span.SetStatus(codes.Ok, "No product to delete")
		return 0, nil
	}

	delete(r.products, id)

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.Int("product_id", int(id)),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return 1, nil
}

func clone(p *domain.Product) *domain.Product {
	c := *p
	c.Color = clonePtr(p.Color)
	c.Size = clonePtr(p.Size)
	c.Weight = clonePtr(p.Weight)
	c.ProductCategoryID = clonePtr(p.ProductCategoryID)
	c.ProductModelID = clonePtr(p.ProductModelID)
	c.SellEndDate = clonePtr(p.SellEndDate)
	c.DiscontinuedDate = clonePtr(p.DiscontinuedDate)
	c.ThumbnailPhotoFileName = clonePtr(p.ThumbnailPhotoFileName)
	if p.ThumbNailPhoto != nil {
		c.ThumbNailPhoto = append([]byte{}, p.ThumbNailPhoto...)
	}
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
