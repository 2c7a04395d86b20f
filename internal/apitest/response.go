package apitest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-console/internal/model"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error writes the backend's error shape: {"detail": "..."}.
func Error(c *gin.Context, httpStatus int, detail string) {
	c.AbortWithStatusJSON(httpStatus, model.ErrorBody{Detail: detail})
}
