package handlers

import (
	"art-route-service/internal/api/dto"
	"art-route-service/internal/ports"
	"net/http"
	"strings"
)

// CatalogHandler exposes read-only catalog endpoints.
type CatalogHandler struct {
	Repo ports.CandidateRepository
}

// ListArtPieces returns the catalog, optionally filtered by repeated
// artist_id query parameters.
func (h *CatalogHandler) ListArtPieces(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var artistIDs []string
	for _, id := range r.URL.Query()["artist_id"] {
		if id = strings.TrimSpace(id); id != "" {
			artistIDs = append(artistIDs, id)
		}
	}

	candidates, err := h.Repo.FetchCandidates(r.Context(), ports.CandidateFilter{ArtistIDs: artistIDs})
	if err != nil {
		writeAppError(w, r, "list art pieces", err)
		return
	}

	res := dto.ListArtPiecesResponse{
		ArtPieces: make([]dto.ArtPieceResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		res.ArtPieces = append(res.ArtPieces, dto.ArtPieceResponse{
			ID:       c.ID,
			Name:     c.Name,
			ArtistID: c.ArtistID,
			Lat:      c.Point.Lat,
			Lng:      c.Point.Lng,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CatalogHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	artists, err := h.Repo.ListArtists(r.Context())
	if err != nil {
		writeAppError(w, r, "list artists", err)
		return
	}

	res := dto.ListArtistsResponse{Artists: make([]dto.ArtistResponse, 0, len(artists))}
	for _, a := range artists {
		res.Artists = append(res.Artists, dto.ArtistResponse{ID: a.ID, Name: a.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}
