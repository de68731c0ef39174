package handler

import (
	"github.com/gin-gonic/gin"
	appshipping "github.com/marketplace/backend/internal/application/shipping"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

// CompanyHandler serves shipping company registration and verification
type CompanyHandler struct {
	BaseHandler
	companyService *appshipping.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *appshipping.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Routes implements router.RouteRegistrar
func (h *CompanyHandler) Routes() []router.Route {
	return []router.Route{
		{Endpoint: api.RegisterCompany, Handler: h.Register},
		{Endpoint: api.GetCompany, Handler: h.Get},
		{Endpoint: api.ListCompanies, Handler: h.List},
		{Endpoint: api.ChangeCompanyStatus, Handler: h.ChangeStatus},
	}
}

// Register godoc
// @Summary      Register the caller's shipping company
// @Tags         shipping-companies
// @Accept       json
// @Produce      json
// @Param        request body appshipping.RegisterCompanyInput true "Company"
// @Success      201 {object} dto.Response{data=appshipping.CompanyResponse}
// @Router       /shipping-companies [post]
func (h *CompanyHandler) Register(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var input appshipping.RegisterCompanyInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.companyService.Register(c.Request.Context(), session, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @Summary      Shipping company profile
// @Tags         shipping-companies
// @Produce      json
// @Param        companyId path string true "Company ID"
// @Success      200 {object} dto.Response{data=appshipping.CompanyResponse}
// @Router       /shipping-companies/{companyId} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	companyID, ok := h.pathUUID(c, api.ParamCompanyID)
	if !ok {
		return
	}

	resp, err := h.companyService.Get(c.Request.Context(), session, companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @Summary      All shipping companies
// @Tags         admin
// @Produce      json
// @Param        search   query string false "Name"
// @Param        status   query string false "Verification status"
// @Param        page     query int    false "Page"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} dto.Response{data=dto.Page[appshipping.CompanyResponse]}
// @Router       /admin/shipping-companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var filter appshipping.CompanyListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	companies, total, err := h.companyService.List(c.Request.Context(), session, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defaults := shared.DefaultFilter()
	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = defaults.Page
	}
	if pageSize == 0 {
		pageSize = defaults.PageSize
	}
	h.Success(c, dto.NewPage(companies, total, page, pageSize))
}

// ChangeStatus godoc
// @Summary      Verify, reject or suspend a shipping company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        companyId path string true "Company ID"
// @Param        request body appshipping.ChangeCompanyStatusInput true "Decision"
// @Success      200 {object} dto.Response{data=appshipping.CompanyResponse}
// @Router       /admin/shipping-companies/{companyId}/status [put]
func (h *CompanyHandler) ChangeStatus(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	companyID, ok := h.pathUUID(c, api.ParamCompanyID)
	if !ok {
		return
	}
	var input appshipping.ChangeCompanyStatusInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.companyService.ChangeStatus(c.Request.Context(), session, companyID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
