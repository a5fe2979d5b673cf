package restapi

import (
	"net/http"

	"masonry_tracker/internal/app/port"

	"github.com/gin-gonic/gin"
)

// NetworkHandler exposes the tracked network definition.
type NetworkHandler struct {
	networks port.NetworkDefinitionProvider
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(np port.NetworkDefinitionProvider) *NetworkHandler {
	return &NetworkHandler{networks: np}
}

// ListNetworksHandler returns every active network definition.
func (h *NetworkHandler) ListNetworksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"networks": h.networks.GetAllNetworkDefinitions()})
}

// GetNetworkHandler returns one active network by identifier.
func (h *NetworkHandler) GetNetworkHandler(c *gin.Context) {
	def, ok := h.networks.GetNetworkDefinitionByName(c.Param("identifier"))
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "network " + c.Param("identifier") + " is not tracked"})
		return
	}
	c.JSON(http.StatusOK, def)
}
