package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
	"github.com/formdeck/formdeck/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	switch {
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "not_found", err.Error())
	case appErr.IsConflict(err):
		response.Error(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid", err.Error())
	case appErr.IsDataCorruption(err):
		response.Error(c, http.StatusInternalServerError, "data_corruption", "collection data is corrupt")
	default:
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
