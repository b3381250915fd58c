package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/geolocation"
	"github.com/mrlokans/mushaf/internal/shalat"
)

const dateLayout = "2006-01-02"

type ShalatController struct {
	directory CityDirectory
	schedules ScheduleSource
	selection CitySelection
	detector  CityDetector
	ipLocator geolocation.Locator
	now       func() time.Time
}

// NewShalatController wires the prayer schedule endpoints. ipLocator may be
// nil, in which case IP based detection answers as if permission was denied.
func NewShalatController(directory CityDirectory, schedules ScheduleSource, selection CitySelection, detector CityDetector, ipLocator geolocation.Locator) *ShalatController {
	return &ShalatController{
		directory: directory,
		schedules: schedules,
		selection: selection,
		detector:  detector,
		ipLocator: ipLocator,
		now:       time.Now,
	}
}

// ListCities searches the city list. The popular cities are returned while
// the full list is unavailable.
// GET /api/shalat/cities?q=
func (sc *ShalatController) ListCities(c *gin.Context) {
	_, err := sc.directory.Cities(c.Request.Context())
	cities := sc.directory.Search(c.Query("q"))

	c.JSON(http.StatusOK, gin.H{
		"cities":   cities,
		"complete": err == nil,
	})
}

// SelectedCityResponse is the selected city plus whether a location
// request is still running.
type SelectedCityResponse struct {
	shalat.City
	Detecting bool `json:"detecting"`
}

// GetSelectedCity handles GET /api/shalat/city
func (sc *ShalatController) GetSelectedCity(c *gin.Context) {
	resp := SelectedCityResponse{City: sc.selection.Get()}
	if sc.detector != nil {
		resp.Detecting = sc.detector.Detecting()
	}
	c.JSON(http.StatusOK, resp)
}

// SelectCityRequest picks a city by ID. Lokasi is looked up when omitted.
type SelectCityRequest struct {
	ID     string `json:"id" binding:"required"`
	Lokasi string `json:"lokasi"`
}

// SelectCity handles PUT /api/shalat/city
func (sc *ShalatController) SelectCity(c *gin.Context) {
	var req SelectCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid city: "+err.Error())
		return
	}

	city := shalat.City{ID: strings.TrimSpace(req.ID), Lokasi: strings.TrimSpace(req.Lokasi)}
	if city.Lokasi == "" {
		found, ok := sc.lookupCity(c, city.ID)
		if !ok {
			return
		}
		city = found
	}

	sc.selection.Set(city)
	c.JSON(http.StatusOK, city)
}

// LocateRequest carries the browser's geolocation result, or asks for an IP
// based lookup with source "ip".
type LocateRequest struct {
	Source    string   `json:"source"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ErrorCode int      `json:"errorCode"`
	Message   string   `json:"message"`
}

func (r LocateRequest) locator(ip geolocation.Locator) geolocation.Locator {
	if r.Source == "ip" {
		if ip == nil {
			return geolocation.ReportedPosition{ErrorCode: geolocation.CodePermissionDenied, Message: "IP lookup disabled"}
		}
		return ip
	}

	pos := geolocation.ReportedPosition{ErrorCode: r.ErrorCode, Message: r.Message}
	if r.Latitude != nil && r.Longitude != nil {
		pos.Coordinate = &geolocation.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	return pos
}

// Locate selects the city nearest to the reported position.
// POST /api/shalat/locate
func (sc *ShalatController) Locate(c *gin.Context) {
	var req LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid location: "+err.Error())
		return
	}

	match, err := sc.detector.Detect(c.Request.Context(), req.locator(sc.ipLocator))
	if err != nil {
		respondLocateError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func respondLocateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geolocation.ErrRequestInFlight):
		respondError(c, http.StatusConflict, "in_flight", err.Error())
	case errors.Is(err, geolocation.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, geolocation.ErrPositionUnavailable):
		respondError(c, http.StatusUnprocessableEntity, "position_unavailable", err.Error())
	case errors.Is(err, geolocation.ErrTimeout):
		respondError(c, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.Is(err, geolocation.ErrNoMatch):
		respondError(c, http.StatusNotFound, "no_match", err.Error())
	default:
		respondUpstreamError(c, err, "locate city")
	}
}

// GetSchedule returns the prayer times of a city for a day. Defaults to the
// selected city and today.
// GET /api/shalat/schedule?city=&date=YYYY-MM-DD
func (sc *ShalatController) GetSchedule(c *gin.Context) {
	cityID := c.Query("city")
	if cityID == "" {
		cityID = sc.selection.Get().ID
	}

	day := sc.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	schedule, err := sc.schedules.GetDailySchedule(c.Request.Context(), cityID, day.Year(), int(day.Month()), day.Day())
	if err != nil {
		respondUpstreamError(c, err, "get schedule")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (sc *ShalatController) lookupCity(c *gin.Context, id string) (shalat.City, bool) {
	if city, ok := shalat.FindCity(shalat.PopularCities, id); ok {
		return city, true
	}

	cities, err := sc.directory.Cities(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "list cities")
		return shalat.City{}, false
	}
	city, ok := shalat.FindCity(cities, id)
	if !ok {
		respondNotFound(c, "city")
		return shalat.City{}, false
	}
	return city, true
}
