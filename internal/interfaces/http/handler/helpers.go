package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// parseIndexParam parses the :index path parameter as a non-negative int.
// The bool reports whether the handler should continue.
func (h *BaseHandler) parseIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.BadRequest(c, "Invalid index parameter")
		return 0, false
	}
	return index, true
}

// toDecimal converts a float64 request field to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
