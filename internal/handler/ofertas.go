package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/middleware"
	"github.com/Omar25092001/Backend-Ofertas/internal/service"
)

type OfertasHandler struct{ svc service.OfertaService }

func NewOfertasHandler(svc service.OfertaService) *OfertasHandler {
	return &OfertasHandler{svc: svc}
}

// bindQuery normalizes the raw query string. Binding never fails on unknown
// or malformed values: numeric fields that do not parse keep their defaults.
func bindOfertaQuery(c *gin.Context) dto.OfertaQuery {
	var filter dto.OfertaFilter
	_ = c.ShouldBindQuery(&filter)
	return filter.ToQuery()
}

func (h *OfertasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), bindOfertaQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), bindOfertaQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) ListarPorProducto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorProducto(c.Request.Context(), id, bindOfertaQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) ListarPorSupermercado(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorSupermercado(c.Request.Context(), id, bindOfertaQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) Crear(c *gin.Context) {
	var req dto.CrearOfertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OfertasHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarOfertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) Invalidar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Invalidar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OfertasHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OfertasHandler) Reportar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReportarOfertaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Reportar(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OfertasHandler) MarcarFavorito(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.MarcarFavorito(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfertasHandler) QuitarFavorito(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.QuitarFavorito(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
