package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formdeck/formdeck/internal/model"
	"github.com/formdeck/formdeck/internal/pkg/response"
	"github.com/formdeck/formdeck/internal/service"
)

type FAQHandler struct {
	faqs *service.FAQService
}

func NewFAQHandler(faqs *service.FAQService) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

func (h *FAQHandler) List(c *gin.Context) {
	faqs, err := h.faqs.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faqs)
}

func (h *FAQHandler) Get(c *gin.Context) {
	faq, err := h.faqs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faq)
}

func (h *FAQHandler) Create(c *gin.Context) {
	var req model.FAQ
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	faq, err := h.faqs.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, faq)
}

func (h *FAQHandler) Update(c *gin.Context) {
	var req model.FAQ
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.ID != c.Param("id") {
		response.Error(c, http.StatusBadRequest, "invalid", "id in path and body do not match")
		return
	}
	faq, err := h.faqs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faq)
}

func (h *FAQHandler) Delete(c *gin.Context) {
	if err := h.faqs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
