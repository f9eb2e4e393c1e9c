package http

// Checkout godoc
// @Summary Check out a cart
// @Description Buy every item in the cart; stock is taken and one order is recorded per product
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{items=[]object{product_id=string,quantity=int}} true "Cart"
// @Success 201 {object} object{success=bool,message=string,data=object{orders=array,count=int,total_quantity=int,total_amount=number}}
// @Failure 400 {object} object{success=bool,error=string,fields=object}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/orders [post]
func (h *OrderHandler) CheckoutDoc() {}

// MyOrders godoc
// @Summary My orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{orders=array,count=int,total_quantity=int,total_amount=number}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/orders/my [get]
func (h *OrderHandler) MyOrdersDoc() {}

// ListOrders godoc
// @Summary List all orders
// @Description Every order with totals (Admin only)
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{orders=array,count=int,total_quantity=int,total_amount=number}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}
