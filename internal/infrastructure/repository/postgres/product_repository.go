package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/database"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ domain.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is a SQL implementation of domain.ProductRepository.
// Every call takes its own handle from the provider and releases it before
// returning, so the repository is safe for concurrent use.
type ProductRepository struct {
	provider database.Provider
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new SQL product repository
func NewProductRepository(provider database.Provider, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		provider: provider,
		tracer:   tracer,
		logger:   logger,
	}
}

// ListAll returns every product in the table, in whatever order the store yields them.
func (r *ProductRepository) ListAll(ctx context.Context) (products []*domain.Product, err error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.ListAll")
	defer func() { endSpan(span, err) }()

	conn, err := r.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer conn.Close()

	rows, err := conn.Query(ctx, selectAllProductsSQL, nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products = make([]*domain.Product, 0)
	for p, err := range scanProducts(rows) {
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	r.logger.DebugContext(ctx, "Products read from database",
		slog.Int("count", len(products)),
	)

	return products, nil
}

// GetByID returns the product with the given id, or nil if there is none.
func (r *ProductRepository) GetByID(ctx context.Context, id int32) (product *domain.Product, err error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.GetByID")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	conn, err := r.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	defer conn.Close()

	rows, err := conn.Query(ctx, selectProductByIDSQL, idArgs(id))
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	defer rows.Close()

	for p, err := range scanProducts(rows) {
		if err != nil {
			return nil, fmt.Errorf("get product %d: %w", id, err)
		}
		product = p
		break
	}

	span.SetAttributes(attribute.Bool("product.found", product != nil))
	r.logger.DebugContext(ctx, "Product lookup in database",
		slog.Int("product_id", int(id)),
		slog.Bool("found", product != nil),
	)

	return product, nil
}

// Insert writes one row and returns the id carried by product. The id is not
// read back from the store.
func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) (id int32, err error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Insert")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.Int("product.id", int(product.ProductID)),
		attribute.String("product.number", product.ProductNumber),
	)

	affected, err := r.exec(ctx, insertProductSQL, productArgs(product))
	if err != nil {
		return 0, fmt.Errorf("insert product %d: %w", product.ProductID, err)
	}

	r.logger.DebugContext(ctx, "Product inserted into database",
		slog.Int("product_id", int(product.ProductID)),
		slog.Int64("rows_affected", affected),
	)

	return product.ProductID, nil
}

// Update overwrites every column of the row keyed by product.ProductID and
// returns the number of rows changed (0 or 1).
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (affected int64, err error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int("product.id", int(product.ProductID)))

	affected, err = r.exec(ctx, updateProductSQL, productArgs(product))
	if err != nil {
		return 0, fmt.Errorf("update product %d: %w", product.ProductID, err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	r.logger.DebugContext(ctx, "Product updated in database",
		slog.Int("product_id", int(product.ProductID)),
		slog.Int64("rows_affected", affected),
	)

	return affected, nil
}

// Delete removes the row with the given id and returns the number of rows removed (0 or 1).
func (r *ProductRepository) Delete(ctx context.Context, id int32) (affected int64, err error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int("product.id", int(id)))

	affected, err = r.exec(ctx, deleteProductSQL, idArgs(id))
	if err != nil {
		return 0, fmt.Errorf("delete product %d: %w", id, err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	r.logger.DebugContext(ctx, "Product deleted from database",
		slog.Int("product_id", int(id)),
		slog.Int64("rows_affected", affected),
	)

	return affected, nil
}

// open takes a fresh handle and opens it unless it already is. On failure the
// handle is closed before returning.
func (r *ProductRepository) open(ctx context.Context) (database.Conn, error) {
	conn := r.provider.Connection()
	if conn.IsOpen() {
		return conn, nil
	}

	if err := conn.Open(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func (r *ProductRepository) exec(ctx context.Context, sql string, args database.NamedArgs) (int64, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	return conn.Exec(ctx, sql, args)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
