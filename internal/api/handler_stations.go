package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StationResponse represents the API response for a single station.
type StationResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	TotalEquipment int64  `json:"totalEquipment"`
}

// ListStations handles the GET /api/stations request.
func (h *Handler) ListStations(c *gin.Context) {
	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	summaries, err := h.registry.StationSummaries(ctx)
	if err != nil {
		failErr(c, err)
		return
	}

	responses := make([]StationResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, StationResponse{
			ID:             s.Station.ID,
			Name:           s.Station.Name,
			Location:       s.Station.Location,
			TotalEquipment: s.EquipmentCount,
		})
	}
	respond(c, http.StatusOK, gin.H{"stations": responses})
}

// equipmentStatusResponse is the flattened structure for the equipment
// browse response.
type equipmentStatusResponse struct {
	ID          int64  `json:"id"`
	StockNum    int64  `json:"stockNum"`
	TypeName    string `json:"typeName"`
	Description string `json:"description"`
	PicURL      string `json:"picUrl,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

// ListStationEquipment handles the GET /api/stations/{station_id}/equipment
// request. Availability comes from the ledger at request time; the response
// may be cached briefly by middleware, but nothing here is consulted when a
// rental is opened.
func (h *Handler) ListStationEquipment(c *gin.Context) {
	stationID, err := strconv.ParseInt(c.Param("station_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "invalid station id")
		return
	}

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	eqs, err := h.registry.ListAt(ctx, stationID)
	if err != nil {
		failErr(c, err)
		return
	}

	ids := make([]int64, len(eqs))
	for i, eq := range eqs {
		ids[i] = eq.ID
	}
	rented, err := h.ledger.OpenEquipment(ctx, ids)
	if err != nil {
		failErr(c, err)
		return
	}

	responses := make([]equipmentStatusResponse, 0, len(eqs))
	for _, eq := range eqs {
		responses = append(responses, equipmentStatusResponse{
			ID:          eq.ID,
			StockNum:    eq.StockNum,
			TypeName:    eq.Type.Name,
			Description: eq.Type.Description,
			PicURL:      eq.Type.PicURL,
			IsAvailable: !rented[eq.ID],
		})
	}
	respond(c, http.StatusOK, gin.H{"equipment": responses})
}
