package handler

import "github.com/gin-gonic/gin"

type RouterDeps struct {
	Schemas *SchemaHandler
	FAQs    *FAQHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/app-schemas", deps.Schemas.List)
	api.GET("/app-schemas/:id", deps.Schemas.Get)
	api.POST("/app-schemas", deps.Schemas.Create)
	api.PUT("/app-schemas/:id", deps.Schemas.Update)
	api.DELETE("/app-schemas/:id", deps.Schemas.Delete)

	api.GET("/faqs", deps.FAQs.List)
	api.GET("/faqs/:id", deps.FAQs.Get)
	api.POST("/faqs", deps.FAQs.Create)
	api.PUT("/faqs/:id", deps.FAQs.Update)
	api.DELETE("/faqs/:id", deps.FAQs.Delete)
}
