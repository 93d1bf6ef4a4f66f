package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/api/metrics"
	"github.com/catalogo/service-catalog/internal/api/middleware"
	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

// ServiceHandler handles HTTP requests for the service catalog.
type ServiceHandler struct {
	catalog ports.CatalogService
}

func NewServiceHandler(catalog ports.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List returns the services visible to the caller. Admins only see their
// own; everybody else, anonymous callers included, sees the whole catalog.
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewerListResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	viewer := middleware.UserFrom(c)

	svcs, err := h.catalog.List(c.Request().Context(), viewer)
	if err != nil {
		return err
	}

	resp := viewerListResponse{serviceListResponse: listResponse(svcs)}
	if viewer != nil {
		owner := viewer.AsOwner()
		resp.User = &owner
	}
	return c.JSON(http.StatusOK, resp)
}

// ListPublic returns the full catalog without authentication.
//
// @Summary      List all services (public)
// @Tags         services
// @Produce      json
// @Success      200  {object}  serviceListResponse
// @Router       /api/services/publicos [get]
func (h *ServiceHandler) ListPublic(c echo.Context) error {
	svcs, err := h.catalog.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse(svcs))
}

// Create adds a service owned by the caller.
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service"
// @Success      201   {object}  serviceResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return &domain.Error{Kind: domain.ErrValidation, Message: "invalid payload"}
	}
	p, err := price(req.Price)
	if err != nil {
		return err
	}

	svc, err := h.catalog.Create(c.Request().Context(), actor, ports.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       p,
	})
	if err != nil {
		return err
	}

	metrics.ServiceMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, serviceResponse{
		Mensaje: "service created successfully",
		Service: svc,
	})
}

// Update applies a partial update.
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Service ID"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  serviceResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := middleware.ServiceID(c)
	if err != nil {
		return err
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return &domain.Error{Kind: domain.ErrValidation, Message: "invalid payload"}
	}
	p, err := price(req.Price)
	if err != nil {
		return err
	}

	svc, err := h.catalog.Update(c.Request().Context(), actor, id, ports.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       p,
	})
	if err != nil {
		return err
	}

	metrics.ServiceMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, serviceResponse{
		Mensaje: "service updated successfully",
		Service: svc,
	})
}

// Delete permanently removes a service.
//
// @Summary      Delete a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Service ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := middleware.ServiceID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.ServiceMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Mensaje: "service deleted successfully"})
}

func listResponse(svcs []*domain.Service) serviceListResponse {
	if svcs == nil {
		svcs = []*domain.Service{}
	}
	return serviceListResponse{
		Mensaje: "services retrieved successfully",
		Total:   len(svcs),
		Datos:   svcs,
	}
}
