package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvilela/sociable/internal/service"
	"github.com/mvilela/sociable/internal/storage"
	"github.com/mvilela/sociable/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	receiver    *storage.Receiver
}

func NewPostHandler(postService *service.PostService, receiver *storage.Receiver) *PostHandler {
	return &PostHandler{
		postService: postService,
		receiver:    receiver,
	}
}

// Create stores a new post from a multipart form with a description field
// and an optional picture file, then responds with the recomputed feed.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	page := r.PathValue("page")

	var description, filename string

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		var input struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeErrors(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		description = input.Description
	case strings.HasPrefix(contentType, "multipart/form-data"):
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeErrors(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		description = r.FormValue("description")

		if headers := r.MultipartForm.File["picture"]; len(headers) > 0 {
			name, err := saveImage(h.receiver, headers[0], storage.PostImages)
			if err != nil {
				if errors.Is(err, storage.ErrUnsupportedImage) {
					writeErrors(w, http.StatusBadRequest, "Error processing the image", "File must be a PNG or JPEG image")
					return
				}
				log.Printf("ERROR saving post image: %v", err)
				writeErrors(w, http.StatusInternalServerError, "Something went wrong")
				return
			}
			filename = name
		}
	default:
		description = r.FormValue("description")
	}

	posts, err := h.postService.Create(r.Context(), callerID, description, filename, page)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeErrors(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR create post: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, posts)
}

// Feed returns a single user's posts when the path carries a valid user id,
// otherwise the caller's own-plus-friends feed.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	userID := r.PathValue("userId")

	posts, err := h.postService.Feed(r.Context(), userID, callerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeErrors(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR list posts: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	postID, err := primitive.ObjectIDFromHex(r.PathValue("postId"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.postService.ToggleLike(r.Context(), postID, callerID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeErrors(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("ERROR toggle like: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, post)
}
