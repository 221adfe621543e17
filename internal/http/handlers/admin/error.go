package admin

import (
	handlershared "github.com/tienda-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseIDParam(c, "id")
}
