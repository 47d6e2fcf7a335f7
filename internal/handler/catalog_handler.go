package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baokaotong/baokao-backend/internal/response"
	"github.com/baokaotong/baokao-backend/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetHierarchy returns the full category→subject→major tree.
func (h *CatalogHandler) GetHierarchy(c *gin.Context) {
	tree, err := h.catalogService.Hierarchy(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, tree)
}

// Search matches major names against the q query parameter.
func (h *CatalogHandler) Search(c *gin.Context) {
	results, err := h.catalogService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, results)
}
