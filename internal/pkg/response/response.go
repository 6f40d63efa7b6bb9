package response

import "github.com/gin-gonic/gin"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func NoContent(c *gin.Context) {
	c.Status(204)
}

func Error(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, errorBody{Code: code, Message: message})
}
