package patterns

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"sandtable-catalog/catalog"
	"sandtable-catalog/core"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// Entries and payloads are immutable once written, so single-item reads
// are cacheable essentially forever.
const cacheForever = "public, max-age=31536000"

type createRequest struct {
	Pattern     core.Entry `json:"pattern"`
	PatternData string     `json:"patternData"`
	ThumbData   string     `json:"thumbData"`
}

// HandleCreate handles POST /patterns: persist the data blob and the
// base64-encoded thumbnail, then merge the entry into the pattern index.
func HandleCreate(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		uuid, err := svc.CreatePattern(r.Context(), req.Pattern, []byte(req.PatternData), req.ThumbData)
		if err != nil {
			logrus.WithError(err).Error("Failed to create pattern")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "failed to create pattern"})
			return
		}

		render.JSON(w, r, map[string]string{"uuid": uuid})
	}
}

// HandleList handles GET /patterns.
func HandleList(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListEntries(r.Context(), core.KindPattern)
		if err != nil {
			logrus.WithError(err).Error("Failed to list patterns")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "pattern collection unavailable"})
			return
		}
		if entries == nil {
			entries = []core.Entry{}
		}
		render.JSON(w, r, entries)
	}
}

// HandleGet handles GET /patterns/{uuid}.
func HandleGet(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uuid := chi.URLParam(r, "uuid")
		entry, err := svc.GetEntry(r.Context(), core.KindPattern, uuid)
		if err != nil {
			if errors.Is(err, core.ErrEntryNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"error": "pattern not found"})
				return
			}
			logrus.WithError(err).WithField("uuid", uuid).Error("Failed to get pattern")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "pattern collection unavailable"})
			return
		}

		w.Header().Set("Cache-Control", cacheForever)
		render.JSON(w, r, entry)
	}
}

// HandleGetData handles GET /patterns/{uuid}/data: the raw blob,
// text-decoded.
func HandleGetData(svc *catalog.Service) http.HandlerFunc {
	return servePayload(svc.GetPatternData, "text/plain; charset=utf-8")
}

// HandleGetThumbnail handles GET /patterns/{uuid}/thumb.png.
func HandleGetThumbnail(svc *catalog.Service) http.HandlerFunc {
	return servePayload(svc.GetThumbnail, "image/png")
}

func servePayload(fetch func(ctx context.Context, id string) ([]byte, error), contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uuid := chi.URLParam(r, "uuid")
		data, err := fetch(r.Context(), uuid)
		if err != nil {
			if errors.Is(err, core.ErrEntryNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"error": "pattern not found"})
				return
			}
			logrus.WithError(err).WithField("uuid", uuid).Error("Failed to get pattern payload")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "failed to get pattern payload"})
			return
		}

		w.Header().Set("Cache-Control", cacheForever)
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}
