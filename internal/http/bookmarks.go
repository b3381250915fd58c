package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/bookmarks"
)

type BookmarksController struct {
	store BookmarkStore
}

func NewBookmarksController(store BookmarkStore) *BookmarksController {
	return &BookmarksController{store: store}
}

// ListBookmarks returns all bookmarks, most recent first.
// GET /api/bookmarks?surah=
func (bc *BookmarksController) ListBookmarks(c *gin.Context) {
	surah, filtered, ok := parseOptionalIntQuery(c, "surah")
	if !ok {
		return
	}

	list := bc.store.List()
	if filtered {
		list = bc.store.ForSurah(surah)
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": list, "total": len(list)})
}

// AddBookmark bookmarks an ayat. Adding an existing bookmark is a no-op.
// POST /api/bookmarks
func (bc *BookmarksController) AddBookmark(c *gin.Context) {
	var req bookmarks.NewBookmark
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid bookmark: "+err.Error())
		return
	}

	if !bc.store.Add(req) {
		c.JSON(http.StatusOK, gin.H{"message": "already bookmarked", "bookmarked": true})
		return
	}
	respondCreated(c, gin.H{"message": "bookmark added", "bookmarked": true})
}

// ToggleBookmark adds the bookmark if absent and removes it otherwise.
// POST /api/bookmarks/toggle
func (bc *BookmarksController) ToggleBookmark(c *gin.Context) {
	var req bookmarks.NewBookmark
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid bookmark: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bc.store.Toggle(req)})
}

// GetBookmark reports whether an ayat is bookmarked.
// GET /api/bookmarks/:surah/:ayat
func (bc *BookmarksController) GetBookmark(c *gin.Context) {
	surah, ayat, ok := parseAyatRef(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"surahNumber": surah,
		"ayatNumber":  ayat,
		"bookmarked":  bc.store.IsBookmarked(surah, ayat),
	})
}

// RemoveBookmark deletes a bookmark.
// DELETE /api/bookmarks/:surah/:ayat
func (bc *BookmarksController) RemoveBookmark(c *gin.Context) {
	surah, ayat, ok := parseAyatRef(c)
	if !ok {
		return
	}

	if !bc.store.Remove(surah, ayat) {
		respondNotFound(c, "bookmark")
		return
	}
	respondSuccess(c, "bookmark removed")
}

func parseAyatRef(c *gin.Context) (surah, ayat int, ok bool) {
	if surah, ok = parseIntParam(c, "surah"); !ok {
		return 0, 0, false
	}
	if ayat, ok = parseIntParam(c, "ayat"); !ok {
		return 0, 0, false
	}
	return surah, ayat, true
}
