package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stitchfront/internal/domain"
	"stitchfront/internal/middleware"
	"stitchfront/internal/repository"
	"stitchfront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	maxUploadBytes = 10 << 20
	featuredLimit  = 8

	imageFolder = "stitchfront/products"
)

// thumbnailFields are the multipart field names for the gallery images, in
// slot order.
var thumbnailFields = [4]string{"thumbnail_1", "thumbnail_2", "thumbnail_3", "thumbnail_4"}

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	productService service.ProductService
	imageService   service.ImageService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler. imageService may be nil;
// uploads are then rejected with 503.
func NewProductHandler(productService service.ProductService, imageService service.ImageService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Reads are public, mutations
// require an authenticated admin.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/featured", h.Featured)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireAdmin(h.logger))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.productService.List(r.Context(), service.ListParams{
		Page:  page,
		Limit: limit,
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	})
	if err != nil {
		h.logger.Error("List products failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Data:    result.Products,
		Pagination: Pagination{
			CurrentPage:   result.Page,
			TotalPages:    result.TotalPages,
			TotalProducts: result.Total,
			HasNext:       result.Page < result.TotalPages,
			HasPrev:       result.Page > 1,
			Limit:         result.Limit,
		},
		Message: "Products retrieved successfully",
	})
}

// Featured handles GET /api/products/featured. The newest arrivals stand in
// for a curated list.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	result, err := h.productService.List(r.Context(), service.ListParams{
		Page:  1,
		Limit: featuredLimit,
		Sort:  "created_at",
		Order: "desc",
	})
	if err != nil {
		h.logger.Error("Featured products failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get featured products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result.Products,
		Message: "Featured products retrieved successfully",
	})
}

// GetByID handles GET /api/products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Get product failed", zap.Error(err), zap.String("product_id", id.Hex()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// Create handles POST /api/products. The payload is a multipart form: scalar
// fields plus an optional main image and up to four thumbnails.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	if err := h.productService.Create(r.Context(), product); err != nil {
		h.logger.Error("Create product failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.Hex()), zap.String("name", product.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    product,
		Message: "Product created successfully",
	})
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}
	product.ID = id

	if err := h.productService.Update(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Update product failed", zap.Error(err), zap.String("product_id", id.Hex()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
		Message: "Product updated successfully",
	})
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Delete product failed", zap.Error(err), zap.String("product_id", id.Hex()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// decodeProductForm parses a product mutation form and uploads any attached
// images. Returns false after writing an error response.
func (h *ProductHandler) decodeProductForm(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}

	name := r.FormValue("name")
	if name == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid price")
		return nil, false
	}

	stock := 0
	if raw := r.FormValue("stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid stock")
			return nil, false
		}
	}

	product := &domain.Product{
		Name:        name,
		Description: r.FormValue("description"),
		Price:       price,
		Stock:       stock,
	}

	if raw := r.FormValue("categoryId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid categoryId")
			return nil, false
		}
		product.CategoryID = id
	}

	if raw := r.FormValue("supplierId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplierId")
			return nil, false
		}
		product.SupplierID = id
	}

	if raw := r.FormValue("sizes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &product.Sizes); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid sizes")
			return nil, false
		}
	}

	if !h.attachImages(w, r, product) {
		return nil, false
	}

	return product, true
}

// attachImages uploads the main image and thumbnail slots present in the
// form. Returns false after writing an error response.
func (h *ProductHandler) attachImages(w http.ResponseWriter, r *http.Request, product *domain.Product) bool {
	slots := []*string{&product.Thumbnail1, &product.Thumbnail2, &product.Thumbnail3, &product.Thumbnail4}

	upload := func(field string, dst *string) bool {
		file, _, err := r.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return true
			}
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
			return false
		}
		defer file.Close()

		if h.imageService == nil {
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "image uploads are not configured")
			return false
		}

		url, err := h.imageService.UploadImage(r.Context(), file, imageFolder)
		if err != nil {
			h.logger.Error("Image upload failed", zap.Error(err), zap.String("field", field))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to upload image")
			return false
		}

		*dst = url
		return true
	}

	if !upload("image", &product.ImageURL) {
		return false
	}
	for i, field := range thumbnailFields {
		if !upload(field, slots[i]) {
			return false
		}
	}

	return true
}
