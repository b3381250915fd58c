package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/history"
)

type HistoryController struct {
	store HistoryStore
}

func NewHistoryController(store HistoryStore) *HistoryController {
	return &HistoryController{store: store}
}

// ListHistory returns recently read surahs, most recent first.
// GET /api/history
func (hc *HistoryController) ListHistory(c *gin.Context) {
	items := hc.store.List()
	c.JSON(http.StatusOK, gin.H{"history": items, "total": len(items)})
}

// LatestHistory returns the last read surah.
// GET /api/history/latest
func (hc *HistoryController) LatestHistory(c *gin.Context) {
	item, ok := hc.store.Latest()
	if !ok {
		respondNotFound(c, "reading history")
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddVisit records that a surah was opened.
// POST /api/history
func (hc *HistoryController) AddVisit(c *gin.Context) {
	var req history.Visit
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid visit: "+err.Error())
		return
	}
	if req.AyatNumber != nil && *req.AyatNumber < 1 {
		respondBadRequest(c, "invalid visit: ayatNumber must be positive")
		return
	}

	hc.store.AddVisit(req)
	respondCreated(c, gin.H{"message": "visit recorded"})
}

// ClearHistory empties the reading history.
// DELETE /api/history
func (hc *HistoryController) ClearHistory(c *gin.Context) {
	hc.store.Clear()
	respondSuccess(c, "history cleared")
}
