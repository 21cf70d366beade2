// Package search builds catalog store predicates from filter parameters.
//
// Each filter is expressed as a typed Clause; And composes the active clauses
// into a single query document. Filters that fail to resolve (an unknown
// category or supplier name) simply contribute no clause, so a typo loosens
// the search instead of emptying it.
package search

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clause is one matching condition on the product collection.
type Clause interface {
	pred() bson.E
}

// TextMatch matches the full-text index on name/description, or membership
// in the set of categories whose name contains the term.
type TextMatch struct {
	Term        string
	CategoryIDs []primitive.ObjectID
}

func (c TextMatch) pred() bson.E {
	ids := c.CategoryIDs
	if ids == nil {
		ids = []primitive.ObjectID{}
	}
	return bson.E{Key: "$or", Value: bson.A{
		bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: c.Term}}}},
		bson.D{{Key: "categoryId", Value: bson.D{{Key: "$in", Value: ids}}}},
	}}
}

// TextContains is the looser text predicate used by the facet pass: a
// case-insensitive substring match on name or description.
type TextContains struct {
	Term string
}

func (c TextContains) pred() bson.E {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(c.Term), Options: "i"}
	return bson.E{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: re}},
		bson.D{{Key: "description", Value: re}},
	}}
}

// CategoryEq constrains products to a resolved category.
type CategoryEq struct {
	ID primitive.ObjectID
}

func (c CategoryEq) pred() bson.E {
	return bson.E{Key: "categoryId", Value: c.ID}
}

// SupplierEq constrains products to a resolved supplier.
type SupplierEq struct {
	ID primitive.ObjectID
}

func (c SupplierEq) pred() bson.E {
	return bson.E{Key: "supplierId", Value: c.ID}
}

// PriceRange bounds price inclusively; either bound may be nil.
type PriceRange struct {
	Min *float64
	Max *float64
}

func (c PriceRange) pred() bson.E {
	bounds := bson.D{}
	if c.Min != nil {
		bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Min})
	}
	if c.Max != nil {
		bounds = append(bounds, bson.E{Key: "$lte", Value: *c.Max})
	}
	return bson.E{Key: "price", Value: bounds}
}

// SizeEq matches any entry of the product's size list, case-normalized to
// upper case.
type SizeEq struct {
	Label string
}

func (c SizeEq) pred() bson.E {
	return bson.E{Key: "sizes.size", Value: upper(c.Label)}
}

// StockFloor requires aggregate stock greater than zero. Every search
// carries it; out-of-stock products never appear in results.
type StockFloor struct{}

func (StockFloor) pred() bson.E {
	return bson.E{Key: "stock", Value: bson.D{{Key: "$gt", Value: 0}}}
}

// And combines clauses into a single query document. Top-level keys are
// implicitly conjoined by the store.
func And(clauses ...Clause) bson.D {
	filter := bson.D{}
	for _, c := range clauses {
		filter = append(filter, c.pred())
	}
	return filter
}

// AnchoredName builds the case-insensitive exact-match pattern used to
// resolve category and supplier names.
func AnchoredName(name string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
}

// NameContains builds the case-insensitive substring pattern used to collect
// category ids for a free-text term.
func NameContains(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
