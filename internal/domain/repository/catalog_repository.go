package repository

import (
	"context"

	"shopeasy/internal/domain/entity"
)

type CatalogRepository interface {
	// Create ingests a product into the catalog, assigning an id when
	// the product has none.
	Create(ctx context.Context, product *entity.Product) error

	GetByID(ctx context.Context, id string) (*entity.Product, error)

	List(ctx context.Context) ([]*entity.Product, error)

	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
}
