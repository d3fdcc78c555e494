package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/neowatch/internal/errors"
	"github.com/stwalsh4118/neowatch/internal/filters"
	"github.com/stwalsh4118/neowatch/internal/models"
	"github.com/stwalsh4118/neowatch/internal/services"
)

// queryDateLayout is the date format accepted by the query endpoints.
const queryDateLayout = "2006-01-02"

// NeoHandler handles NEO and close-approach HTTP requests.
type NeoHandler struct {
	service services.NeoService
}

// NewNeoHandler creates a new NeoHandler instance.
func NewNeoHandler(service services.NeoService) *NeoHandler {
	return &NeoHandler{
		service: service,
	}
}

// ByNameRequest represents the query parameters for the name lookup endpoint.
type ByNameRequest struct {
	Name string `form:"name" binding:"required"`
}

// ApproachesRequest represents the query parameters for the approaches
// endpoint. All bounds are optional and combined with logical AND.
type ApproachesRequest struct {
	Date        string   `form:"date" binding:"omitempty,datetime=2006-01-02"`
	StartDate   string   `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string   `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	MinDistance *float64 `form:"min_distance" binding:"omitempty,gte=0"`
	MaxDistance *float64 `form:"max_distance" binding:"omitempty,gte=0"`
	MinVelocity *float64 `form:"min_velocity" binding:"omitempty,gte=0"`
	MaxVelocity *float64 `form:"max_velocity" binding:"omitempty,gte=0"`
	MinDiameter *float64 `form:"min_diameter" binding:"omitempty,gte=0"`
	MaxDiameter *float64 `form:"max_diameter" binding:"omitempty,gte=0"`
	Hazardous   *bool    `form:"hazardous"`
	Limit       int      `form:"limit" binding:"omitempty,gte=0"`
}

// NeoData represents an NEO in API responses. Unknown diameters are null.
type NeoData struct {
	Designation          string   `json:"designation"`
	Name                 string   `json:"name"`
	DiameterKm           *float64 `json:"diameter_km"`
	PotentiallyHazardous bool     `json:"potentially_hazardous"`
	ApproachCount        int      `json:"approach_count"`
}

// ApproachData represents a close approach in API responses. Unknown
// distances and velocities are null.
type ApproachData struct {
	DatetimeUTC string   `json:"datetime_utc"`
	DistanceAU  *float64 `json:"distance_au"`
	VelocityKmS *float64 `json:"velocity_km_s"`
	Neo         string   `json:"neo"`
}

// NeoResponse represents the response for the NEO lookup endpoints.
type NeoResponse struct {
	Neo        NeoData        `json:"neo"`
	Approaches []ApproachData `json:"approaches"`
}

// ApproachesResponse represents the response for the approaches endpoint.
type ApproachesResponse struct {
	Approaches []ApproachData `json:"approaches"`
	Count      int            `json:"count"`
}

// ByDesignation handles GET /api/v1/neos/:designation.
// It retrieves a single NEO and its close approaches by primary designation.
func (h *NeoHandler) ByDesignation(c *gin.Context) {
	designation := c.Param("designation")

	neo, err := h.service.LookupByDesignation(c.Request.Context(), designation)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapNeoToResponse(neo))
}

// ByName handles GET /api/v1/neos?name=...
// It retrieves a single NEO and its close approaches by IAU name.
func (h *NeoHandler) ByName(c *gin.Context) {
	var req ByNameRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	neo, err := h.service.LookupByName(c.Request.Context(), req.Name)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapNeoToResponse(neo))
}

// Approaches handles GET /api/v1/approaches.
// It retrieves the close approaches matching all given filter parameters,
// in original ingestion order.
func (h *NeoHandler) Approaches(c *gin.Context) {
	var req ApproachesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	criteria := filters.Criteria{
		MinDistance: req.MinDistance,
		MaxDistance: req.MaxDistance,
		MinVelocity: req.MinVelocity,
		MaxVelocity: req.MaxVelocity,
		MinDiameter: req.MinDiameter,
		MaxDiameter: req.MaxDiameter,
		Hazardous:   req.Hazardous,
	}
	criteria.Date = parseQueryDate(req.Date)
	criteria.StartDate = parseQueryDate(req.StartDate)
	criteria.EndDate = parseQueryDate(req.EndDate)

	approaches, err := h.service.QueryApproaches(c.Request.Context(), criteria, req.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCriteria) || errors.Is(err, services.ErrInvalidLimit) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to query close approaches", err)
		return
	}

	out := make([]ApproachData, 0, len(approaches))
	for _, ca := range approaches {
		out = append(out, mapApproachToDTO(ca))
	}

	c.JSON(http.StatusOK, ApproachesResponse{
		Approaches: out,
		Count:      len(out),
	})
}

// respondLookupError maps service lookup errors onto API error responses.
func (h *NeoHandler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCriteria):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrNEONotFound):
		apierrors.NotFound(c, "No near-Earth object matches this lookup")
	default:
		apierrors.InternalServerError(c, "Failed to look up near-Earth object", err)
	}
}

// parseQueryDate converts an optional, already-validated query date into a
// timestamp. The binding layer guarantees the layout, so parse failures
// cannot occur for bound input.
func parseQueryDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(queryDateLayout, raw, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func mapNeoToResponse(neo *models.NearEarthObject) NeoResponse {
	approaches := make([]ApproachData, 0, len(neo.Approaches))
	for _, ca := range neo.Approaches {
		approaches = append(approaches, mapApproachToDTO(ca))
	}

	designation := "None"
	if neo.Designation != nil {
		designation = *neo.Designation
	}

	return NeoResponse{
		Neo: NeoData{
			Designation:          designation,
			Name:                 neo.Fullname(),
			DiameterKm:           nanToNil(neo.Diameter),
			PotentiallyHazardous: neo.Hazardous,
			ApproachCount:        len(neo.Approaches),
		},
		Approaches: approaches,
	}
}

func mapApproachToDTO(ca *models.CloseApproach) ApproachData {
	return ApproachData{
		DatetimeUTC: ca.TimeStr(),
		DistanceAU:  nanToNil(ca.Distance),
		VelocityKmS: nanToNil(ca.Velocity),
		Neo:         ca.FullName(),
	}
}

func nanToNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
