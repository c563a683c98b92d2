package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/scanner"
)

// ProtocolsHandler handles IR protocol selection and scanning
type ProtocolsHandler struct {
	dispatcher *remote.Dispatcher
	scanner    *scanner.Scanner
	save       scanner.SaveFunc
}

// NewProtocolsHandler creates a new protocols handler. save persists and
// applies a chosen protocol; the scanner uses the same function on confirm.
func NewProtocolsHandler(dispatcher *remote.Dispatcher, s *scanner.Scanner, save scanner.SaveFunc) *ProtocolsHandler {
	return &ProtocolsHandler{dispatcher: dispatcher, scanner: s, save: save}
}

// ListProtocols handles GET /protocols
// @Summary      List IR protocols
// @Description  Returns the protocol catalogue in scan order and the protocol in use
// @Tags         protocols
// @Produce      json
// @Success      200  {object}  types.ProtocolsResponse
// @Router       /protocols [get]
func (h *ProtocolsHandler) ListProtocols(c *gin.Context) {
	c.JSON(http.StatusOK, types.ProtocolsResponse{
		Protocols: scanner.Protocols(),
		Current:   h.dispatcher.Protocol(),
	})
}

// GetProtocol handles GET /protocol
// @Summary      Get the IR protocol
// @Tags         protocols
// @Produce      json
// @Success      200  {object}  types.ProtocolResponse
// @Router       /protocol [get]
func (h *ProtocolsHandler) GetProtocol(c *gin.Context) {
	c.JSON(http.StatusOK, types.ProtocolResponse{Protocol: h.dispatcher.Protocol()})
}

// SetProtocol handles PUT /protocol
// @Summary      Set the IR protocol
// @Description  Stores the protocol sent with every key press that carries no override
// @Tags         protocols
// @Accept       json
// @Produce      json
// @Param        request  body      types.SetProtocolRequest  true  "Protocol identifier"
// @Success      200      {object}  types.ProtocolResponse
// @Failure      400      {object}  types.ErrorResponse  "Unknown protocol"
// @Failure      500      {object}  types.ErrorResponse  "Database error"
// @Router       /protocol [put]
func (h *ProtocolsHandler) SetProtocol(c *gin.Context) {
	var req types.SetProtocolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if _, ok := scanner.FindProtocol(req.Protocol); !ok {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "unknown_protocol",
			Message: fmt.Sprintf("Unknown protocol %q", req.Protocol),
		})
		return
	}

	if err := h.save(c.Request.Context(), req.Protocol); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.ProtocolResponse{Protocol: h.dispatcher.Protocol()})
}

// ScanStatus handles GET /protocols/scan
// @Summary      Get scan progress
// @Tags         protocols
// @Produce      json
// @Success      200  {object}  types.ScanResponse
// @Router       /protocols/scan [get]
func (h *ProtocolsHandler) ScanStatus(c *gin.Context) {
	c.JSON(http.StatusOK, types.ScanResponse{Scan: h.scanner.Status()})
}

// StartScan handles POST /protocols/scan/start
// @Summary      Start a protocol scan
// @Description  Sends POWER with each catalogue protocol in turn until one is confirmed or the catalogue ends
// @Tags         protocols
// @Produce      json
// @Success      202  {object}  types.ScanResponse
// @Router       /protocols/scan/start [post]
func (h *ProtocolsHandler) StartScan(c *gin.Context) {
	c.JSON(http.StatusAccepted, types.ScanResponse{Scan: h.scanner.Start()})
}

// StopScan handles POST /protocols/scan/stop
// @Summary      Stop the protocol scan
// @Tags         protocols
// @Produce      json
// @Success      200  {object}  types.ScanResponse
// @Router       /protocols/scan/stop [post]
func (h *ProtocolsHandler) StopScan(c *gin.Context) {
	c.JSON(http.StatusOK, types.ScanResponse{Scan: h.scanner.Stop()})
}

// ConfirmScan handles POST /protocols/scan/confirm
// @Summary      Confirm a protocol
// @Description  Stops the scan and stores the protocol that made the TV react
// @Tags         protocols
// @Accept       json
// @Produce      json
// @Param        request  body      types.ConfirmScanRequest  true  "Protocol identifier"
// @Success      200      {object}  types.ScanResponse
// @Failure      400      {object}  types.ErrorResponse  "Unknown protocol"
// @Failure      500      {object}  types.ErrorResponse  "Database error"
// @Router       /protocols/scan/confirm [post]
func (h *ProtocolsHandler) ConfirmScan(c *gin.Context) {
	var req types.ConfirmScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	status, err := h.scanner.Confirm(c.Request.Context(), req.Protocol)
	if err != nil {
		if errors.Is(err, scanner.ErrUnknownProtocol) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "unknown_protocol",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.ScanResponse{Scan: status})
}

// ListBrands handles GET /protocols/brands
// @Summary      Search manual codes
// @Description  Returns manufacturer remote codes, filtered by brand name
// @Tags         protocols
// @Produce      json
// @Param        q    query     string  false  "Brand filter"
// @Success      200  {object}  types.BrandsResponse
// @Router       /protocols/brands [get]
func (h *ProtocolsHandler) ListBrands(c *gin.Context) {
	brands := scanner.Brands(c.Query("q"))
	c.JSON(http.StatusOK, types.BrandsResponse{Brands: brands, Count: len(brands)})
}
