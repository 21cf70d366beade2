package service

import (
	"context"

	"stitchfront/internal/domain"
	"stitchfront/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// expandProducts resolves category and supplier references to {id, name}
// sub-objects in one batch per collection. A dangling reference keeps its id
// with an empty name rather than failing the page.
func expandProducts(
	ctx context.Context,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	products []domain.Product,
) ([]domain.ProductView, error) {
	catIDs := distinctIDs(products, func(p domain.Product) primitive.ObjectID { return p.CategoryID })
	supIDs := distinctIDs(products, func(p domain.Product) primitive.ObjectID { return p.SupplierID })

	cats, err := categories.ListByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	sups, err := suppliers.ListByIDs(ctx, supIDs)
	if err != nil {
		return nil, err
	}

	catName := make(map[primitive.ObjectID]string, len(cats))
	for _, c := range cats {
		catName[c.ID] = c.Name
	}
	supName := make(map[primitive.ObjectID]string, len(sups))
	for _, s := range sups {
		supName[s.ID] = s.Name
	}

	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, domain.ProductView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    domain.Reference{ID: p.CategoryID, Name: catName[p.CategoryID]},
			Supplier:    domain.Reference{ID: p.SupplierID, Name: supName[p.SupplierID]},
			Stock:       p.Stock,
			ImageURL:    p.ImageURL,
			Thumbnail1:  p.Thumbnail1,
			Thumbnail2:  p.Thumbnail2,
			Thumbnail3:  p.Thumbnail3,
			Thumbnail4:  p.Thumbnail4,
			Sizes:       p.Sizes,
			CreatedAt:   p.CreatedAt,
		})
	}

	return views, nil
}

func distinctIDs(products []domain.Product, pick func(domain.Product) primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(products))
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		id := pick(p)
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
