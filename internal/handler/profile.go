package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileStore defines the database methods needed by the profile handler.
// Satisfied by *database.Queries.
type ProfileStore interface {
	GetStaff(ctx context.Context, id uuid.UUID) (database.Staff, error)
}

// ProfileHandler serves the authenticated staff member's own record.
type ProfileHandler struct {
	store ProfileStore
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(store ProfileStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// RegisterRoutes registers profile endpoints on the given Chi router.
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/profile", h.Profile)
}

type staffResponse struct {
	ID           uuid.UUID `json:"id"`
	StaffCode    string    `json:"staff_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MobileNumber string    `json:"mobile_number"`
	PhotoLink    string    `json:"photo_link"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile handles GET /auth/profile. The password hash is never returned.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	staffID := middleware.StaffIDFromContext(r.Context())
	if staffID == uuid.Nil {
		writeError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	staff, err := h.store.GetStaff(r.Context(), staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "staff not found")
			return
		}
		slog.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, staffResponse{
		ID:           staff.ID,
		StaffCode:    staff.StaffCode,
		FirstName:    staff.FirstName,
		LastName:     staff.LastName,
		MobileNumber: staff.MobileNumber,
		PhotoLink:    staff.PhotoLink,
		Username:     staff.Username,
		CreatedAt:    staff.CreatedAt,
	})
}
