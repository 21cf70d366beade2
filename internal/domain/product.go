package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductSize is one entry of a product's size list. Its stock counts
// inventory for that size only; it is not kept in sync with the product's
// aggregate Stock field.
type ProductSize struct {
	Size  string `json:"size" bson:"size"`
	Stock int    `json:"stock" bson:"stock"`
}

// Product represents a product in the catalog
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	CategoryID  primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	SupplierID  primitive.ObjectID `json:"supplierId" bson:"supplierId"`
	Stock       int                `json:"stock" bson:"stock"`
	ImageURL    string             `json:"img_url" bson:"img_url"`
	Thumbnail1  string             `json:"thumbnail_img_1,omitempty" bson:"thumbnail_img_1,omitempty"`
	Thumbnail2  string             `json:"thumbnail_img_2,omitempty" bson:"thumbnail_img_2,omitempty"`
	Thumbnail3  string             `json:"thumbnail_img_3,omitempty" bson:"thumbnail_img_3,omitempty"`
	Thumbnail4  string             `json:"thumbnail_img_4,omitempty" bson:"thumbnail_img_4,omitempty"`
	Sizes       []ProductSize      `json:"sizes" bson:"sizes"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// DefaultSizes is the size list applied when a product is created without one.
func DefaultSizes() []ProductSize {
	labels := []string{"XS", "S", "M", "L", "XL"}
	sizes := make([]ProductSize, 0, len(labels))
	for _, label := range labels {
		sizes = append(sizes, ProductSize{Size: label, Stock: 20})
	}
	return sizes
}

// Reference is a category or supplier expanded to its name-bearing form,
// as embedded in search results and product views.
type Reference struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

// ProductView is a product with its category and supplier references
// expanded to {id, name} sub-objects.
type ProductView struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Category    Reference          `json:"categoryId"`
	Supplier    Reference          `json:"supplierId"`
	Stock       int                `json:"stock"`
	ImageURL    string             `json:"img_url"`
	Thumbnail1  string             `json:"thumbnail_img_1,omitempty"`
	Thumbnail2  string             `json:"thumbnail_img_2,omitempty"`
	Thumbnail3  string             `json:"thumbnail_img_3,omitempty"`
	Thumbnail4  string             `json:"thumbnail_img_4,omitempty"`
	Sizes       []ProductSize      `json:"sizes"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Category represents a product category
type Category struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Supplier represents a product supplier
type Supplier struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"supplier_img,omitempty" bson:"supplier_img,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
