package handlers

import (
	"fmt"
	"net/http"
	"strings"

	applog "nutrisnap/internal/log"
	"nutrisnap/internal/meals"
	"nutrisnap/internal/nutrition"
	"nutrisnap/models"
)

const defaultHistoryDays = 30

type mealUpdateRequest struct {
	FoodDescription *string           `json:"food_description"`
	Date            *string           `json:"date"`
	Amount          *float64          `json:"amount"`
	Calories        *float64          `json:"calories"`
	Protein         *float64          `json:"protein"`
	Carbs           *float64          `json:"carbs"`
	Fat             *float64          `json:"fat"`
	Fibre           *float64          `json:"fibre"`
	Water           *float64          `json:"water"`
	Micros          map[string]string `json:"micros"`
}

func (req mealUpdateRequest) item() itemRequest {
	out := itemRequest{
		Amount:   req.Amount,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fibre:    req.Fibre,
		Water:    req.Water,
		Micros:   req.Micros,
	}
	if req.FoodDescription != nil {
		out.Food = *req.FoodDescription
	}
	return out
}

// MealsResource lists, edits and deletes logged meals of the current user.
func MealsResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	segments := splitPath(r.URL.Path, "/api/meals")
	switch len(segments) {
	case 0:
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		listMeals(w, r, userID)
	case 1:
		switch r.Method {
		case http.MethodGet:
			meal, err := meals.Get(r.Context(), database, userID, segments[0])
			if err != nil {
				respondError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, meal)
		case http.MethodPut:
			updateMeal(w, r, userID, segments[0])
		case http.MethodDelete:
			if err := meals.Delete(r.Context(), database, userID, segments[0]); err != nil {
				respondError(w, r, err)
				return
			}
			applog.Debug(r.Context(), "meal deleted", "meal", segments[0])
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		http.NotFound(w, r)
	}
}

func listMeals(w http.ResponseWriter, r *http.Request, userID string) {
	query := r.URL.Query()
	from, to, err := mealRange(query.Get("date"), query.Get("from"), query.Get("to"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	results, err := meals.Between(r.Context(), database, userID, from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if results == nil {
		results = []models.Meal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"from": from, "to": to, "meals": results})
}

// mealRange resolves the listing window. A single date wins over from/to;
// without either the last thirty days are listed.
func mealRange(date, from, to string) (string, string, error) {
	if strings.TrimSpace(date) != "" {
		day, err := parseDay(date)
		if err != nil {
			return "", "", err
		}
		value := day.Format(models.DateLayout)
		return value, value, nil
	}

	end, err := parseDay(to)
	if err != nil {
		return "", "", err
	}
	start := end.AddDate(0, 0, -(defaultHistoryDays - 1))
	if strings.TrimSpace(from) != "" {
		start, err = parseDay(from)
		if err != nil {
			return "", "", err
		}
	}
	return start.Format(models.DateLayout), end.Format(models.DateLayout), nil
}

// updateMeal rescales a logged meal from its stored values when only the
// amount changes; explicit nutrient values replace the stored ones.
func updateMeal(w http.ResponseWriter, r *http.Request, userID, id string) {
	var req mealUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if req.FoodDescription != nil && strings.TrimSpace(*req.FoodDescription) == "" {
		respondError(w, r, fmt.Errorf("%w: food_description must not be empty", errInvalidRequest))
		return
	}

	ctx := r.Context()
	stored, err := meals.Get(ctx, database, userID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if req.Date != nil {
		day, err := parseDay(*req.Date)
		if err != nil {
			respondError(w, r, err)
			return
		}
		stored.Date = day.Format(models.DateLayout)
	}

	item := req.item()
	if err := item.validate(); err != nil {
		respondError(w, r, err)
		return
	}
	record := stored.Record()
	if req.Amount != nil && !item.hasNutrients() {
		record, err = nutrition.Scale(record, nutrition.ClampAmount(*req.Amount))
		if err != nil {
			respondError(w, r, err)
			return
		}
		item.Amount = nil
	}
	stored.Apply(item.applyTo(record))

	if err := meals.Save(ctx, database, &stored); err != nil {
		respondError(w, r, err)
		return
	}
	applog.Debug(ctx, "meal updated", "meal", stored.ID)
	writeJSON(w, http.StatusOK, stored)
}
