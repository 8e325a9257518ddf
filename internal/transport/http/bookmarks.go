package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

// BookmarkToggler is the minimal interface for the bookmark endpoints.
type BookmarkToggler interface {
	Toggle(ctx context.Context, userID, bookID int64) (bool, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookmarkedBook, error)
	Remove(ctx context.Context, bookmarkID, userID int64) error
}

// HandleToggleBookmark serves POST /bookmarks/toggle.
func HandleToggleBookmark(svc BookmarkToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req toggleBookmarkRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		added, err := svc.Toggle(r.Context(), req.UserID, req.BookID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		msg := "Bookmark removed."
		if added {
			msg = "Bookmarked successfully!"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toggleBookmarkResponse{
			Added:   added,
			Message: msg,
		})
	}
}

// HandleListBookmarks serves GET /bookmarks?user_id=.
func HandleListBookmarks(svc BookmarkToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			writeError(w, http.StatusBadRequest, codeValidation, domain.ErrInvalidID.Error())
			return
		}

		bookmarks, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]bookmarkResponse, 0, len(bookmarks))
		for _, b := range bookmarks {
			resp = append(resp, bookmarkResponse{
				BookmarkID: b.BookmarkID,
				BookID:     b.BookID,
				Title:      b.Title,
				Author:     b.Author,
				Genre:      b.Genre,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleBookmarkByID serves DELETE /bookmarks/{id}?user_id=. The user_id
// scope keeps users from deleting each other's bookmarks.
func HandleBookmarkByID(svc BookmarkToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarkID, ok := parseBookmarkPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			writeError(w, http.StatusBadRequest, codeValidation, domain.ErrInvalidID.Error())
			return
		}

		if err := svc.Remove(r.Context(), bookmarkID, userID); err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageResponse{Message: "Bookmark removed."})
	}
}

func parseBookmarkPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "bookmarks" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type toggleBookmarkRequest struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
}

type toggleBookmarkResponse struct {
	Added   bool   `json:"added"`
	Message string `json:"message"`
}

type bookmarkResponse struct {
	BookmarkID int64  `json:"bookmark_id"`
	BookID     int64  `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Genre      string `json:"genre"`
}
