package handlers

import (
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	cleanerID, err := pathInt(r, "cleaner_id")
	if err != nil {
		http.Error(w, "Invalid cleaner ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.AddFavorite(r.Context(), callerID(r), callerRole(r), cleanerID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	cleanerID, err := pathInt(r, "cleaner_id")
	if err != nil {
		http.Error(w, "Invalid cleaner ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.RemoveFavorite(r.Context(), callerID(r), cleanerID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	cleanerID, err := pathInt(r, "cleaner_id")
	if err != nil {
		http.Error(w, "Invalid cleaner ID", http.StatusBadRequest)
		return
	}
	fav, err := h.Service.IsFavorite(r.Context(), callerID(r), cleanerID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": fav})
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.Service.ListFavorites(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}
