package http

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a catalog row; the id is generated and derived fields are computed (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_name=string,category=string,price=number,rating=number,sales_volume=int,stock=int,discount=int} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,fields=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List products
// @Description List the catalog, optionally filtered
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param name query string false "Case-insensitive name substring"
// @Param category query string false "Category, or All"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_rating query number false "Minimum rating"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID, e.g. Product_7"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// ListCategories godoc
// @Summary List categories
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/products/categories [get]
func (h *ProductHandler) ListCategoriesDoc() {}

// GetDashboard godoc
// @Summary Catalog dashboard
// @Description Totals, revenue by category and the top products by revenue
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/dashboard [get]
func (h *ProductHandler) GetDashboardDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Replace every editable field of a product (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{product_name=string,category=string,price=number,rating=number,sales_volume=int,stock=int,discount=int} true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,fields=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProductDoc() {}

// PushCatalog godoc
// @Summary Push catalog
// @Description Replace the stored catalog with the given rows (Admin only)
// @Tags Sync
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{products=array} true "Rows"
// @Success 200 {object} object{success=bool,message=string,data=object{rows=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/catalog/push [post]
func (h *ProductHandler) PushCatalogDoc() {}

// PullCatalog godoc
// @Summary Pull catalog
// @Description Reload this instance's catalog copy from the store (Admin only)
// @Tags Sync
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object{products=array,total=int}}
// @Router /api/catalog/pull [post]
func (h *ProductHandler) PullCatalogDoc() {}

// ImportCatalog godoc
// @Summary Import catalog CSV
// @Tags Sync
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} object{success=bool,message=string,data=object{rows=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/catalog/import [post]
func (h *ProductHandler) ImportCatalogDoc() {}

// ExportCatalog godoc
// @Summary Export catalog CSV
// @Tags Sync
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {string} string "CSV"
// @Router /api/catalog/export [get]
func (h *ProductHandler) ExportCatalogDoc() {}
