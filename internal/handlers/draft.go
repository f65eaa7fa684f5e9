package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"

	"nutrisnap/internal/foodsearch"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/meal"
	"nutrisnap/internal/meals"
	"nutrisnap/internal/nutrition"
	"nutrisnap/models"
)

const maxLabelUploadSize = 5 << 20

type draftResponse struct {
	Items  []meal.Item                `json:"items"`
	Totals *nutrition.AggregatedMeal `json:"totals,omitempty"`
}

// itemRequest carries a food for the draft. Without calories the nutrition
// is estimated for the given amount.
type itemRequest struct {
	Food     string            `json:"food"`
	Amount   *float64          `json:"amount"`
	Calories *float64          `json:"calories"`
	Protein  *float64          `json:"protein"`
	Carbs    *float64          `json:"carbs"`
	Fat      *float64          `json:"fat"`
	Fibre    *float64          `json:"fibre"`
	Water    *float64          `json:"water"`
	Micros   map[string]string `json:"micros"`
}

func (req itemRequest) hasNutrients() bool {
	return req.Calories != nil || req.Protein != nil || req.Carbs != nil || req.Fat != nil ||
		req.Fibre != nil || req.Water != nil || req.Micros != nil
}

// validate rejects nutrient values below zero.
func (req itemRequest) validate() error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"calories", req.Calories},
		{"protein", req.Protein},
		{"carbs", req.Carbs},
		{"fat", req.Fat},
		{"fibre", req.Fibre},
		{"water", req.Water},
	}
	for _, field := range fields {
		if field.value == nil {
			continue
		}
		if v := *field.value; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must not be negative", errInvalidRequest, field.name)
		}
	}
	return nil
}

// applyTo overrides the fields of record that req sets.
func (req itemRequest) applyTo(record nutrition.Record) nutrition.Record {
	if name := strings.TrimSpace(req.Food); name != "" {
		record.Food = name
	}
	if req.Amount != nil {
		record.AmountGrams = nutrition.ClampAmount(*req.Amount)
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat(&record.Calories, req.Calories)
	setFloat(&record.Macros.Protein, req.Protein)
	setFloat(&record.Macros.Carbs, req.Carbs)
	setFloat(&record.Macros.Fat, req.Fat)
	if req.Fibre != nil {
		record.Macros.Fibre = nutrition.Float(*req.Fibre)
	}
	if req.Water != nil {
		record.Macros.Water = nutrition.Float(*req.Water)
	}
	if req.Micros != nil {
		record.Micros = req.Micros
	}
	return record
}

type logRequest struct {
	Date string `json:"date"`
}

// DraftResource serves the meal being composed in the session.
func DraftResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	segments := splitPath(r.URL.Path, "/api/draft")
	switch {
	case len(segments) == 0:
		switch r.Method {
		case http.MethodGet:
			withDraft(w, r, false, func(*meal.Draft) (int, any, error) { return http.StatusOK, nil, nil })
		case http.MethodDelete:
			withDraft(w, r, true, func(d *meal.Draft) (int, any, error) {
				d.Reset()
				return http.StatusOK, nil, nil
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(segments) == 1 && segments[0] == "log":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		logDraft(w, r, userID)
	case len(segments) == 1 && segments[0] == "items":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		addDraftItem(w, r)
	case len(segments) == 2 && segments[0] == "items" && segments[1] == "label":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		addLabelItem(w, r)
	case len(segments) == 2 && segments[0] == "items":
		switch r.Method {
		case http.MethodPatch:
			updateDraftItem(w, r, segments[1])
		case http.MethodDelete:
			withDraft(w, r, true, func(d *meal.Draft) (int, any, error) {
				return http.StatusOK, nil, d.Remove(segments[1])
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(segments) == 3 && segments[0] == "items" && segments[2] == "correct":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		correctDraftItem(w, r, segments[1])
	default:
		http.NotFound(w, r)
	}
}

// withDraft loads the session draft, runs fn and, when save is set and fn
// succeeded, stores the draft again. A nil payload answers with the draft.
func withDraft(w http.ResponseWriter, r *http.Request, save bool, fn func(*meal.Draft) (int, any, error)) {
	draft, err := loadDraft(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	status, payload, err := fn(draft)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if save {
		if err := saveDraft(r.Context(), draft); err != nil {
			respondError(w, r, err)
			return
		}
	}

	if payload == nil {
		payload = newDraftResponse(draft)
	}
	writeJSON(w, status, payload)
}

func newDraftResponse(d *meal.Draft) draftResponse {
	resp := draftResponse{Items: d.Items}
	if resp.Items == nil {
		resp.Items = []meal.Item{}
	}
	if aggregated, err := d.Aggregate(); err == nil {
		resp.Totals = &aggregated
	}
	return resp
}

func loadDraft(ctx context.Context) (*meal.Draft, error) {
	if sessionManager == nil {
		return nil, errSessionUnavailable
	}
	draft, err := meal.Decode(sessionManager.GetBytes(ctx, sessionDraftKey))
	if err != nil {
		applog.Error(ctx, "discarding unreadable draft", "error", err)
		return &meal.Draft{}, nil
	}
	return draft, nil
}

func saveDraft(ctx context.Context, d *meal.Draft) error {
	if sessionManager == nil {
		return errSessionUnavailable
	}
	if d.Len() == 0 {
		sessionManager.Remove(ctx, sessionDraftKey)
		return nil
	}
	data, err := d.Encode()
	if err != nil {
		return err
	}
	sessionManager.Put(ctx, sessionDraftKey, data)
	return nil
}

func addDraftItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	food := strings.TrimSpace(req.Food)
	if food == "" {
		writeJSONError(w, http.StatusBadRequest, "food is required")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	amount := nutrition.DefaultAmountGrams
	if req.Amount != nil {
		amount = nutrition.ClampAmount(*req.Amount)
	}

	var base nutrition.Record
	if req.hasNutrients() {
		base = req.applyTo(nutrition.Record{Food: food, AmountGrams: amount})
	} else {
		if analyzer == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "nutrition estimation is not configured; provide calories and macros")
			return
		}
		estimated, err := analyzer.EstimateNutrition(r.Context(), food, amount)
		if err != nil {
			respondError(w, r, err)
			return
		}
		base = estimated
	}

	withDraft(w, r, true, func(d *meal.Draft) (int, any, error) {
		item := d.Add(base)
		applog.Debug(r.Context(), "draft item added", "item", item.ID, "food", item.Base.Food)
		return http.StatusCreated, nil, nil
	})
}

// updateDraftItem replaces an item's values when nutrients are edited by
// hand. Otherwise a new amount rescales the item from its base record and a
// new name is applied to both records.
func updateDraftItem(w http.ResponseWriter, r *http.Request, id string) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.Food)
	withDraft(w, r, true, func(d *meal.Draft) (int, any, error) {
		item, ok := d.Get(id)
		if !ok {
			return 0, nil, meal.ErrItemNotFound
		}
		if req.hasNutrients() {
			_, err := d.Edit(id, req.applyTo(item.Current.Clone()))
			return http.StatusOK, nil, err
		}
		if req.Amount == nil && name == "" {
			return 0, nil, fmt.Errorf("%w: nothing to update", errInvalidRequest)
		}
		if req.Amount != nil {
			if _, err := d.SetAmount(id, *req.Amount); err != nil {
				return 0, nil, err
			}
		}
		_, err := d.Rename(id, name)
		return http.StatusOK, nil, err
	})
}

func correctDraftItem(w http.ResponseWriter, r *http.Request, id string) {
	var food foodsearch.Food
	if err := decodeJSON(w, r, &food); err != nil {
		respondError(w, r, err)
		return
	}
	if strings.TrimSpace(food.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "food_name is required")
		return
	}

	withDraft(w, r, true, func(d *meal.Draft) (int, any, error) {
		item, err := d.Correct(id, food.Record())
		if err == nil {
			applog.Debug(r.Context(), "draft item corrected", "item", id, "food", item.Base.Food)
		}
		return http.StatusOK, nil, err
	})
}

// addLabelItem reads a nutrition label from a PDF or text upload, or from a
// JSON body, and adds it to the draft.
func addLabelItem(w http.ResponseWriter, r *http.Request) {
	food, text, amount, err := readLabel(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if food == "" {
		writeJSONError(w, http.StatusBadRequest, "food is required")
		return
	}
	if strings.TrimSpace(text) == "" {
		writeJSONError(w, http.StatusBadRequest, "label text is required")
		return
	}

	base := labelExtractor.Extract(text).Record(food)
	withDraft(w, r, true, func(d *meal.Draft) (int, any, error) {
		item := d.Add(base)
		if amount != nutrition.DefaultAmountGrams {
			if _, err := d.SetAmount(item.ID, amount); err != nil {
				return 0, nil, err
			}
		}
		return http.StatusCreated, nil, nil
	})
}

func readLabel(w http.ResponseWriter, r *http.Request) (food, text string, amount float64, err error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxLabelUploadSize+(1<<20))
		if err := r.ParseMultipartForm(maxLabelUploadSize); err != nil {
			return "", "", 0, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		food = strings.TrimSpace(r.FormValue("food"))
		amount = nutrition.ParseAmount(r.FormValue("amount"))
		text = r.FormValue("text")

		file, header, err := r.FormFile("label")
		if errors.Is(err, http.ErrMissingFile) {
			return food, text, amount, nil
		}
		if err != nil {
			return "", "", 0, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		defer file.Close()

		data, err := readAllLimited(file, maxLabelUploadSize)
		if err != nil {
			return "", "", 0, err
		}
		mime := header.Header.Get("Content-Type")
		if strings.Contains(strings.ToLower(mime), "pdf") || strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			text, err = extractTextFromPDF(data)
			if err != nil {
				return "", "", 0, fmt.Errorf("%w: unreadable pdf: %v", errInvalidRequest, err)
			}
		} else {
			text = string(data)
		}
		return food, text, amount, nil
	}

	var req struct {
		Food   string   `json:"food"`
		Text   string   `json:"text"`
		Amount *float64 `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return "", "", 0, err
	}
	amount = nutrition.DefaultAmountGrams
	if req.Amount != nil {
		amount = nutrition.ClampAmount(*req.Amount)
	}
	return strings.TrimSpace(req.Food), req.Text, amount, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// logDraft stores the aggregated draft as one meal and clears the draft.
func logDraft(w http.ResponseWriter, r *http.Request, userID string) {
	if !requireDatabase(w, r) {
		return
	}

	var req logRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, err)
		return
	}
	day, err := parseDay(req.Date)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	draft, err := loadDraft(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	aggregated, err := draft.Aggregate()
	if err != nil {
		respondError(w, r, err)
		return
	}

	record := models.NewMeal(userID, day, aggregated)
	record.PhotoURL = sessionManager.GetString(ctx, sessionPhotoURLKey)
	if err := meals.Create(ctx, database, &record); err != nil {
		respondError(w, r, err)
		return
	}
	applog.Info(ctx, "meal logged", "meal", record.ID, "items", aggregated.ItemCount, "calories", aggregated.Calories)

	draft.Reset()
	if err := saveDraft(ctx, draft); err != nil {
		respondError(w, r, err)
		return
	}
	sessionManager.Remove(ctx, sessionPhotoURLKey)

	if activity != nil {
		if _, err := activity.MealLogged(ctx, userID); err != nil {
			applog.Error(ctx, "failed to record meal activity", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, record)
}
