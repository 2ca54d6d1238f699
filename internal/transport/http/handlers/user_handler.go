package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvilela/sociable/internal/service"
	"github.com/mvilela/sociable/internal/storage"
	"github.com/mvilela/sociable/internal/transport/http/middleware"
	"github.com/mvilela/sociable/pkg/validator"
)

// maxUploadBytes caps multipart request bodies at 30 MB.
const maxUploadBytes = 30 << 20

type UserHandler struct {
	userService *service.UserService
	receiver    *storage.Receiver
}

func NewUserHandler(userService *service.UserService, receiver *storage.Receiver) *UserHandler {
	return &UserHandler{
		userService: userService,
		receiver:    receiver,
	}
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	targetID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.Show(r.Context(), targetID, callerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeErrors(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR show user: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	targetID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	friends, err := h.userService.ListFriends(r.Context(), targetID, callerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeErrors(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR list friends: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, friends)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())

	input, ok := h.decodeUpdateInput(w, r)
	if !ok {
		return
	}

	if errs := validateUpdateGroup(input); errs != nil && errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Update(r.Context(), callerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeErrors(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrNoFields):
			writeErrors(w, http.StatusBadRequest, "No fields provided for update")
		case errors.Is(err, service.ErrEmailTaken):
			writeErrors(w, http.StatusConflict, "Email address is already in use")
		default:
			log.Printf("ERROR update user: %v", err)
			writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ToggleFriend(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	friendID, err := primitive.ObjectIDFromHex(r.PathValue("friendId"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.ToggleFriend(r.Context(), callerID, friendID); err != nil {
		switch {
		case errors.Is(err, service.ErrCannotFriendSelf):
			writeErrors(w, http.StatusBadRequest, "Cannot add yourself as a friend")
		case errors.Is(err, service.ErrUserNotFound):
			writeErrors(w, http.StatusNotFound, "Users not found")
		case errors.Is(err, service.ErrFriendLimit):
			writeErrors(w, http.StatusForbidden, "Maximum number of friends reached")
		default:
			log.Printf("ERROR toggle friend: %v", err)
			writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeUpdateInput accepts either a JSON body or a multipart form with
// optional picturePath/coverPath image files. Uploaded files are stored
// before the service runs; their generated names replace the raw values.
func (h *UserHandler) decodeUpdateInput(w http.ResponseWriter, r *http.Request) (service.UpdateInput, bool) {
	var input service.UpdateInput

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeErrors(w, http.StatusBadRequest, "Invalid request body")
			return input, false
		}
		return input, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid multipart form")
		return input, false
	}

	input.FirstName = r.FormValue("firstName")
	input.LastName = r.FormValue("lastName")
	input.Email = r.FormValue("email")
	input.Password = r.FormValue("password")
	input.Location = r.FormValue("location")
	input.Occupation = r.FormValue("occupation")
	input.Twitter = r.FormValue("twitter")
	input.Linkedin = r.FormValue("linkedin")

	picture, ok := h.saveUpload(w, r, "picturePath")
	if !ok {
		return input, false
	}
	cover, ok := h.saveUpload(w, r, "coverPath")
	if !ok {
		return input, false
	}
	input.PicturePath = picture
	input.CoverPath = cover

	return input, true
}

// saveUpload stores the first file of the named form field, if present.
func (h *UserHandler) saveUpload(w http.ResponseWriter, r *http.Request, field string) (string, bool) {
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return "", true
	}

	name, err := saveImage(h.receiver, headers[0], storage.UserImages)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			writeErrors(w, http.StatusBadRequest, "Error processing the image", "File must be a PNG or JPEG image")
			return "", false
		}
		log.Printf("ERROR saving upload: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return "", false
	}
	return name, true
}

func saveImage(receiver *storage.Receiver, header *multipart.FileHeader, subdir string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	return receiver.Save(header.Filename, file, subdir)
}

// validateUpdateGroup validates whichever update group will win under the
// first-match precedence the service applies.
func validateUpdateGroup(input service.UpdateInput) validator.ValidationErrors {
	switch {
	case input.FirstName != "" && input.LastName != "" && input.Location != "" && input.Occupation != "":
		return validator.ValidateProfileUpdate(
			input.FirstName, input.LastName, input.Location,
			input.Occupation, input.Twitter, input.Linkedin,
		)
	case input.Email != "":
		return validator.ValidateEmailUpdate(input.Email)
	case input.Password != "":
		return validator.ValidatePasswordUpdate(input.Password)
	}
	return nil
}
