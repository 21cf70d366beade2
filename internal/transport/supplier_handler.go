package transport

import (
	"errors"
	"net/http"

	"stitchfront/internal/domain"
	"stitchfront/internal/middleware"
	"stitchfront/internal/repository"
	"stitchfront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const supplierImageFolder = "stitchfront/suppliers"

// SupplierHandler handles HTTP requests for suppliers
type SupplierHandler struct {
	supplierService service.SupplierService
	imageService    service.ImageService
	logger          *zap.Logger
}

// NewSupplierHandler creates a new SupplierHandler. imageService may be nil;
// uploads are then rejected with 503.
func NewSupplierHandler(supplierService service.SupplierService, imageService service.ImageService, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		imageService:    imageService,
		logger:          logger,
	}
}

// RegisterRoutes registers all supplier routes. Reads are public, mutations
// require an authenticated admin.
func (h *SupplierHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/suppliers", func(r chi.Router) {
		r.Get("/", h.List)
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

// List handles GET /api/suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierService.List(r.Context())
	if err != nil {
		h.logger.Error("List suppliers failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list suppliers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    suppliers,
	})
}

// GetByID handles GET /api/suppliers/{id}
func (h *SupplierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	supplier, err := h.supplierService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}

		h.logger.Error("Get supplier failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    supplier,
	})
}

// Create handles POST /api/suppliers. The payload is a multipart form with
// name, description and an optional image.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	supplier, ok := h.decodeSupplierForm(w, r)
	if !ok {
		return
	}

	if err := h.supplierService.Create(r.Context(), supplier); err != nil {
		h.logger.Error("Create supplier failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create supplier")
		return
	}

	h.logger.Info("Supplier created", zap.String("supplier_id", supplier.ID.Hex()), zap.String("name", supplier.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    supplier,
		Message: "Supplier created successfully",
	})
}

// Update handles PUT /api/suppliers/{id}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	supplier, ok := h.decodeSupplierForm(w, r)
	if !ok {
		return
	}
	supplier.ID = id

	if err := h.supplierService.Update(r.Context(), supplier); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}

		h.logger.Error("Update supplier failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    supplier,
		Message: "Supplier updated successfully",
	})
}

// Delete handles DELETE /api/suppliers/{id}
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	if err := h.supplierService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}

		h.logger.Error("Delete supplier failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete supplier")
		return
	}

	h.logger.Info("Supplier deleted", zap.String("supplier_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier deleted successfully",
	})
}

func (h *SupplierHandler) decodeSupplierForm(w http.ResponseWriter, r *http.Request) (*domain.Supplier, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}

	name := r.FormValue("name")
	if name == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}

	supplier := &domain.Supplier{
		Name:        name,
		Description: r.FormValue("description"),
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return supplier, true
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return nil, false
	}
	defer file.Close()

	if h.imageService == nil {
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "image uploads are not configured")
		return nil, false
	}

	url, err := h.imageService.UploadImage(r.Context(), file, supplierImageFolder)
	if err != nil {
		h.logger.Error("Image upload failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to upload image")
		return nil, false
	}
	supplier.ImageURL = url

	return supplier, true
}
