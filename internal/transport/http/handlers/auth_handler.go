package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/mvilela/sociable/internal/service"
	"github.com/mvilela/sociable/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateRegister(
		input.FirstName, input.LastName, input.Email,
		input.Password, input.Location, input.Occupation,
	); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeErrors(w, http.StatusConflict, "Email address is already in use")
			return
		}
		log.Printf("ERROR register: %v", err)
		writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeErrors(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrUnknownEmail):
			writeErrors(w, http.StatusBadRequest, "Invalid email or user does not exist")
		case errors.Is(err, service.ErrWrongPassword):
			writeErrors(w, http.StatusBadRequest, "Invalid password")
		default:
			log.Printf("ERROR login: %v", err)
			writeErrors(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeErrors emits the wire error shape: {"errors": ["message", ...]}.
func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, map[string][]string{"errors": messages})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(errs))
	for _, field := range fields {
		messages = append(messages, errs[field])
	}
	writeErrors(w, http.StatusBadRequest, messages...)
}
