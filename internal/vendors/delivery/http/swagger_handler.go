package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for DistriOps
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a vendor
// @Description Create a vendor account
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string,full_name=string,phone=string,zone=string} true "Vendor data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /auth/register [post]
func (h *VendorHandler) RegisterDoc() {}

// Login godoc
// @Summary Vendor login
// @Description Authenticate a vendor and issue a token
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,data=object{token=string,vendor=object}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /auth/login [post]
func (h *VendorHandler) LoginDoc() {}

// CreateActivity godoc
// @Summary Open a vendor activity
// @Description Record an activity; a stock replenishment linked to an order distributes the assigned quantity across its items
// @Tags Activities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{vendor_id=int,type=string,zone=string,order_id=int,variant_id=int,quantity=int} true "Activity data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/activities [post]
func (h *VendorHandler) CreateActivityDoc() {}

// CreateSale godoc
// @Summary Record a sale
// @Description Debit an activity's remaining quantity and record the sale
// @Tags Sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{activity_id=int,quantity=int,unit_price=number} true "Sale data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/sales [post]
func (h *VendorHandler) CreateSaleDoc() {}

// VendorStats godoc
// @Summary Vendor statistics
// @Description Assignment and sales totals for one vendor
// @Tags Vendors
// @Security BearerAuth
// @Produce json
// @Param id path int true "Vendor ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/vendors/{id}/stats [get]
func (h *VendorHandler) VendorStatsDoc() {}
