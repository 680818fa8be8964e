package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listStatuses(c *gin.Context) {
	statuses, err := h.catalogs.Statuses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]gin.H, len(statuses))
	for i, s := range statuses {
		resp[i] = gin.H{"id": s.ID, "name": s.Name, "color": s.Color}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listClientTypes(c *gin.Context) {
	types, err := h.catalogs.ClientTypes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]gin.H, len(types))
	for i, t := range types {
		resp[i] = gin.H{"id": t.ID, "name": t.Name, "description": t.Description}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listProjectTypes(c *gin.Context) {
	types, err := h.catalogs.ProjectTypes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]gin.H, len(types))
	for i, t := range types {
		resp[i] = gin.H{"id": t.ID, "name": t.Name}
	}
	c.JSON(http.StatusOK, resp)
}
