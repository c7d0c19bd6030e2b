package http

import (
	"net/http"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type CatalogResponseDTO struct {
	Packages []domain.Package `json:"packages"`
	Addons   []domain.Addon   `json:"addons"`
}

// GET /api/v1/packages
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CatalogResponseDTO{
		Packages: domain.Packages,
		Addons:   domain.Addons,
	})
}
