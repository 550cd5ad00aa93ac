package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/kishansingy/ielts-backend-sub000/internal/evaluation"
	"github.com/kishansingy/ielts-backend-sub000/internal/services"
	"github.com/kishansingy/ielts-backend-sub000/internal/utils"
)

type ReferenceHandler struct {
	BaseHandler
	referenceService services.ReferenceService
	tables           *evaluation.ReferenceTables
}

// NewReferenceHandler serves the tables the running evaluator was built with
func NewReferenceHandler(referenceService services.ReferenceService, tables *evaluation.ReferenceTables, logger utils.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		BaseHandler:      NewBaseHandler(logger),
		referenceService: referenceService,
		tables:           tables,
	}
}

// ExportReferenceTables downloads the active reference tables
// @Summary Export reference tables
// @Tags reference
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reference-tables/export [get]
func (h *ReferenceHandler) ExportReferenceTables(c *gin.Context) {
	data, err := h.referenceService.Export(c.Request.Context(), h.tables)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendWorkbook(c, "reference-tables.xlsx", data)
}
