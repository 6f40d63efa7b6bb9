package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formdeck/formdeck/internal/model"
	"github.com/formdeck/formdeck/internal/pkg/response"
	"github.com/formdeck/formdeck/internal/service"
)

type SchemaHandler struct {
	schemas *service.SchemaService
}

func NewSchemaHandler(schemas *service.SchemaService) *SchemaHandler {
	return &SchemaHandler{schemas: schemas}
}

func (h *SchemaHandler) List(c *gin.Context) {
	schemas, err := h.schemas.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schemas)
}

func (h *SchemaHandler) Get(c *gin.Context) {
	schema, err := h.schemas.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if schema == nil {
		response.Error(c, http.StatusNotFound, "not_found", "app schema not found")
		return
	}
	response.JSON(c, http.StatusOK, schema)
}

func (h *SchemaHandler) Create(c *gin.Context) {
	var req model.AppSchema
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	schema, err := h.schemas.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, schema)
}

func (h *SchemaHandler) Update(c *gin.Context) {
	var req model.AppSchema
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.ID != c.Param("id") {
		response.Error(c, http.StatusBadRequest, "invalid", "id in path and body do not match")
		return
	}
	schema, err := h.schemas.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schema)
}

func (h *SchemaHandler) Delete(c *gin.Context) {
	if err := h.schemas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
