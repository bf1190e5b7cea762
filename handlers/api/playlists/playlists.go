package playlists

import (
	"encoding/json"
	"errors"
	"net/http"

	"sandtable-catalog/catalog"
	"sandtable-catalog/core"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

const cacheForever = "public, max-age=31536000"

type createRequest struct {
	Playlist core.Entry `json:"playlist"`
}

// HandleCreate handles POST /playlists. Playlists have no binary
// payloads; the entry goes straight through the index merge.
func HandleCreate(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		uuid, err := svc.CreateEntry(r.Context(), core.KindPlaylist, req.Playlist)
		if err != nil {
			logrus.WithError(err).Error("Failed to create playlist")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "failed to create playlist"})
			return
		}

		render.JSON(w, r, map[string]string{"uuid": uuid})
	}
}

// HandleList handles GET /playlists.
func HandleList(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListEntries(r.Context(), core.KindPlaylist)
		if err != nil {
			logrus.WithError(err).Error("Failed to list playlists")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "playlist collection unavailable"})
			return
		}
		if entries == nil {
			entries = []core.Entry{}
		}
		render.JSON(w, r, entries)
	}
}

// HandleGet handles GET /playlists/{uuid}.
func HandleGet(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uuid := chi.URLParam(r, "uuid")
		entry, err := svc.GetEntry(r.Context(), core.KindPlaylist, uuid)
		if err != nil {
			if errors.Is(err, core.ErrEntryNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"error": "playlist not found"})
				return
			}
			logrus.WithError(err).WithField("uuid", uuid).Error("Failed to get playlist")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "playlist collection unavailable"})
			return
		}

		w.Header().Set("Cache-Control", cacheForever)
		render.JSON(w, r, entry)
	}
}
