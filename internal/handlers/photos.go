package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nutrisnap/internal/ai"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/storage"
)

const maxPhotoUploadSize = 10 << 20

type analyzeResponse struct {
	Foods    []ai.IdentifiedFood `json:"foods"`
	PhotoURL string              `json:"photo_url,omitempty"`
	Draft    *draftResponse      `json:"draft,omitempty"`
}

// AnalyzePhoto identifies the foods on an uploaded meal photo. With
// estimate=true every identified food is added to the draft at its
// estimated portion.
func AnalyzePhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if analyzer == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "photo analysis is not configured")
		return
	}

	image, mime, err := readPhotoUpload(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	foods, err := analyzer.IdentifyFoods(ctx, image, mime)
	if err != nil {
		respondError(w, r, err)
		return
	}
	applog.Debug(ctx, "photo analyzed", "foods", len(foods))

	if activity != nil {
		if _, err := activity.PhotoAnalyzed(ctx, userID); err != nil {
			applog.Error(ctx, "failed to record photo activity", "error", err)
		}
	}

	resp := analyzeResponse{Foods: foods}
	if photoStore != nil {
		key := storage.PhotoKey(userID, now(), mime)
		url, err := photoStore.Put(ctx, key, bytes.NewReader(image), mime)
		if err != nil {
			applog.Error(ctx, "failed to archive meal photo", "key", key, "error", err)
		} else {
			resp.PhotoURL = url
			if sessionManager != nil {
				sessionManager.Put(ctx, sessionPhotoURLKey, url)
			}
		}
	}

	if r.FormValue("estimate") == "true" {
		draft, err := loadDraft(ctx)
		if err != nil {
			respondError(w, r, err)
			return
		}
		for _, food := range foods {
			record, err := analyzer.EstimateNutrition(ctx, food.Food, food.EstimatedGrams)
			if err != nil {
				respondError(w, r, err)
				return
			}
			draft.Add(record)
		}
		if err := saveDraft(ctx, draft); err != nil {
			respondError(w, r, err)
			return
		}
		view := newDraftResponse(draft)
		resp.Draft = &view
	}

	writeJSON(w, http.StatusOK, resp)
}

func readPhotoUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadSize+(1<<20))
	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", errUploadTooLarge
		}
		return nil, "", fmt.Errorf("%w: %w", errInvalidRequest, err)
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return nil, "", fmt.Errorf("%w: photo is required", errInvalidRequest)
	}
	defer file.Close()

	data, err := readAllLimited(file, maxPhotoUploadSize)
	if err != nil {
		return nil, "", err
	}

	mime := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return data, mime, nil
}

