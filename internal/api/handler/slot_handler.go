package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/service"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/response"
)

// SlotHandler slot inventory, sync and rollover endpoints.
type SlotHandler struct {
	slots    service.SlotInventoryService
	sync     service.SlotSyncService
	rollover service.RolloverService
}

// List GET /api/v1/slots
func (h *SlotHandler) List(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	resp, err := h.slots.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get GET /api/v1/slots/:id
func (h *SlotHandler) Get(c *gin.Context) {
	resp, err := h.slots.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Sync POST /api/v1/slots/sync
// The apply phase is continue-on-error; per-item failures come back in the
// result body with a 200.
func (h *SlotHandler) Sync(c *gin.Context) {
	var req dto.SlotSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	resp, err := h.sync.Run(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Rollover POST /api/v1/slots/rollover
func (h *SlotHandler) Rollover(c *gin.Context) {
	resp, err := h.rollover.PerformRollover(c.Request.Context(), time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Block POST /api/v1/slots/block
func (h *SlotHandler) Block(c *gin.Context) {
	var req dto.BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	resp, err := h.slots.Block(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

// Unblock POST /api/v1/slots/:id/unblock
func (h *SlotHandler) Unblock(c *gin.Context) {
	resp, err := h.slots.Unblock(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Lock POST /api/v1/slots/:id/lock
func (h *SlotHandler) Lock(c *gin.Context) {
	resp, err := h.slots.SetLock(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Unlock POST /api/v1/slots/:id/unlock
func (h *SlotHandler) Unlock(c *gin.Context) {
	resp, err := h.slots.SetLock(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}
