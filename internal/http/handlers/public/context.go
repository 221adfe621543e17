package public

import (
	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getCaller(c *gin.Context) service.Caller {
	return handlershared.GetCaller(c)
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseIDParam(c, "id")
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}
