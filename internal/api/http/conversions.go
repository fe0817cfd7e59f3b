package http

import (
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// ListConversions returns the catalog, optionally filtered by ?quantity=
func (h *Handlers) ListConversions(c *gin.Context) {
	entries := conversion.Catalog()

	if q := c.Query("quantity"); q != "" {
		entries = conversion.ByQuantity(conversion.Quantity(q))
		if len(entries) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown quantity: " + q})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"conversions": entries,
		"count":       len(entries),
		"quantities":  conversion.Quantities(),
	})
}

// Convert evaluates one conversion: GET /conversions/:id?value=x
// The conversion's own parameter name (?kg=1) is accepted as well.
func (h *Handlers) Convert(c *gin.Context) {
	conv, ok := h.lookup(c)
	if !ok {
		return
	}

	raw, present := c.GetQuery("value")
	if !present {
		raw, present = c.GetQuery(conv.Param)
	}
	if !present {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value query parameter required"})
		return
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a number"})
		return
	}

	h.execute(c, conv.ToolID(), map[string]interface{}{"value": value}, nil)
}

// BatchConvert applies one conversion to many values
func (h *Handlers) BatchConvert(c *gin.Context) {
	conv, ok := h.lookup(c)
	if !ok {
		return
	}

	var req types.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	values := make([]interface{}, len(req.Values))
	for i, v := range req.Values {
		values[i] = v
	}

	h.execute(c, conversion.ToolBatch, map[string]interface{}{
		"conversion": conv.ID,
		"values":     values,
	}, nil)
}

func (h *Handlers) lookup(c *gin.Context) (conversion.Conversion, bool) {
	id := c.Param("id")
	conv, ok := conversion.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown conversion: " + id})
		return conversion.Conversion{}, false
	}
	return conv, true
}
