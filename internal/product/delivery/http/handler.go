package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/internal/product/usecase/command"
	"github.com/tair/retail-dashboard/internal/product/usecase/query"
	"github.com/tair/retail-dashboard/pkg/httpapi"
)

// maxImportSize bounds an uploaded CSV
var maxImportSize int64 = 10 << 20

// ProductHandler handles HTTP requests for the catalog using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler  *command.CreateProductHandler
	updateHandler  *command.UpdateProductHandler
	deleteHandler  *command.DeleteProductHandler
	replaceHandler *command.ReplaceCatalogHandler
	importHandler  *command.ImportCatalogHandler

	// Query handlers
	listHandler       *query.ListProductsHandler
	getHandler        *query.GetProductHandler
	categoriesHandler *query.ListCategoriesHandler
	dashboardHandler  *query.GetDashboardHandler
	exportHandler     *query.ExportCatalogHandler
	pullHandler       *query.PullCatalogHandler

	metrics *httpapi.Metrics
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	replaceHandler *command.ReplaceCatalogHandler,
	importHandler *command.ImportCatalogHandler,
	listHandler *query.ListProductsHandler,
	getHandler *query.GetProductHandler,
	categoriesHandler *query.ListCategoriesHandler,
	dashboardHandler *query.GetDashboardHandler,
	exportHandler *query.ExportCatalogHandler,
	pullHandler *query.PullCatalogHandler,
	metrics *httpapi.Metrics,
) *ProductHandler {
	return &ProductHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		replaceHandler:    replaceHandler,
		importHandler:     importHandler,
		listHandler:       listHandler,
		getHandler:        getHandler,
		categoriesHandler: categoriesHandler,
		dashboardHandler:  dashboardHandler,
		exportHandler:     exportHandler,
		pullHandler:       pullHandler,
		metrics:           metrics,
	}
}

// RegisterRoutes mounts the catalog routes. Role checks happen in the use
// cases, so every route only needs the session middleware in front.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics

	router.HandleFunc("/api/products", m.Wrap("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/categories", m.Wrap("/api/products/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/products/{id}", m.Wrap("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/dashboard", m.Wrap("/api/dashboard", h.GetDashboard)).Methods("GET")

	router.HandleFunc("/api/products", m.Wrap("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", m.Wrap("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", m.Wrap("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")

	router.HandleFunc("/api/catalog/push", m.Wrap("/api/catalog/push", h.PushCatalog)).Methods("POST")
	router.HandleFunc("/api/catalog/pull", m.Wrap("/api/catalog/pull", h.PullCatalog)).Methods("POST")
	router.HandleFunc("/api/catalog/import", m.Wrap("/api/catalog/import", h.ImportCatalog)).Methods("POST")
	router.HandleFunc("/api/catalog/export", m.Wrap("/api/catalog/export", h.ExportCatalog)).Methods("GET")
}

type productRequest struct {
	Name        string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	SalesVolume int     `json:"sales_volume"`
	Stock       int     `json:"stock"`
	Discount    int     `json:"discount"`
}

func (req productRequest) draft() domain.Draft {
	return domain.Draft{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Rating:      req.Rating,
		SalesVolume: req.SalesVolume,
		Stock:       req.Stock,
		Discount:    req.Discount,
	}
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	product, err := h.createHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()),
		command.CreateProductCommand{Product: req.draft()})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()), command.UpdateProductCommand{
		ID:      mux.Vars(r)["id"],
		Product: req.draft(),
	})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteProductCommand{ID: mux.Vars(r)["id"]}
	if err := h.deleteHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()), cmd); err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "Product deleted successfully", nil)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	products, err := h.listHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()), query.ListProductsQuery{Filter: filter})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()),
		query.GetProductQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "", product)
}

// ListCategories handles GET /api/products/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()))
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "", categories)
}

// GetDashboard handles GET /api/dashboard
func (h *ProductHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()))
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "", dashboard)
}

// PushCatalog handles POST /api/catalog/push
func (h *ProductHandler) PushCatalog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Products []domain.Product `json:"products"`
	}
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	rows, err := h.replaceHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()),
		command.ReplaceCatalogCommand{Rows: req.Products})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "Catalog pushed to store", map[string]interface{}{
		"rows": len(rows),
	})
}

// PullCatalog handles POST /api/catalog/pull
func (h *ProductHandler) PullCatalog(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pullHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()))
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "Catalog pulled from store", map[string]interface{}{
		"products": rows,
		"total":    len(rows),
	})
}

// ImportCatalog handles POST /api/catalog/import. The CSV is read from the
// "file" form field of a multipart upload or from the raw body.
func (h *ProductHandler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			if tooLarge(err) {
				importTooLarge(w)
				return
			}
			httpapi.BadRequest(w, "file field required")
			return
		}
		defer file.Close()
		src = file
	}

	rows, err := h.importHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()), command.ImportCatalogCommand{CSV: src})
	if err != nil {
		if tooLarge(err) {
			importTooLarge(w)
			return
		}
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "Catalog imported", map[string]interface{}{
		"rows": len(rows),
	})
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func importTooLarge(w http.ResponseWriter) {
	httpapi.RespondJSON(w, http.StatusRequestEntityTooLarge, httpapi.Response{
		Success: false,
		Error:   "upload exceeds " + strconv.FormatInt(maxImportSize, 10) + " bytes",
	})
}

// ExportCatalog handles GET /api/catalog/export
func (h *ProductHandler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := h.exportHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()), &buf); err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func parseFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	filter := domain.Filter{
		Name:     strings.TrimSpace(q.Get("name")),
		Category: q.Get("category"),
	}

	for key, dst := range map[string]**float64{
		"min_price":  &filter.MinPrice,
		"max_price":  &filter.MaxPrice,
		"min_rating": &filter.MinRating,
	} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, &paramError{name: key}
		}
		*dst = &v
	}
	return filter, nil
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " parameter"
}
