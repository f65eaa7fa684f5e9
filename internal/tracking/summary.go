// Package tracking turns logged meals into daily and weekly figures and
// compares them with the goals a user set.
package tracking

import (
	"math"
	"sort"
	"time"

	"nutrisnap/models"
)

// WeekDays is the length of the weekly window.
const WeekDays = 7

// Totals are summed nutrients of one or more meals.
type Totals struct {
	Calories float64           `json:"calories"`
	Protein  float64           `json:"protein"`
	Carbs    float64           `json:"carbs"`
	Fat      float64           `json:"fat"`
	Fibre    float64           `json:"fibre"`
	Water    float64           `json:"water"`
	Meals    int               `json:"meals"`
	Micros   map[string]string `json:"micros,omitempty"`
}

// Day are the totals of one calendar day.
type Day struct {
	Date string `json:"date"`
	Totals
}

func (t *Totals) add(meal models.Meal) {
	t.Calories += meal.Calories
	t.Protein += meal.Protein
	t.Carbs += meal.Carbs
	t.Fat += meal.Fat
	if meal.Fibre != nil {
		t.Fibre += *meal.Fibre
	}
	if meal.Water != nil {
		t.Water += *meal.Water
	}
	t.Meals++
	// Later meals overwrite earlier micronutrient strings.
	for name, value := range meal.MicroValues() {
		if t.Micros == nil {
			t.Micros = map[string]string{}
		}
		t.Micros[name] = value
	}
}

func (t Totals) rounded() Totals {
	t.Calories = math.Round(t.Calories)
	t.Protein = round1(t.Protein)
	t.Carbs = round1(t.Carbs)
	t.Fat = round1(t.Fat)
	t.Fibre = round1(t.Fibre)
	t.Water = round1(t.Water)
	return t
}

// Daily sums the meals filed under date.
func Daily(date string, meals []models.Meal) Day {
	day := Day{Date: date}
	for _, meal := range meals {
		if meal.Date == date {
			day.add(meal)
		}
	}
	day.Totals = day.Totals.rounded()
	return day
}

// Weekly groups meals of the seven days ending on end. Days without meals
// are omitted; the newest day comes first.
func Weekly(end time.Time, meals []models.Meal) []Day {
	from := WeekStart(end).Format(models.DateLayout)
	to := end.Format(models.DateLayout)

	grouped := map[string]*Day{}
	for _, meal := range meals {
		if meal.Date < from || meal.Date > to {
			continue
		}
		day, ok := grouped[meal.Date]
		if !ok {
			day = &Day{Date: meal.Date}
			grouped[meal.Date] = day
		}
		day.add(meal)
	}

	days := make([]Day, 0, len(grouped))
	for _, day := range grouped {
		day.Totals = day.Totals.rounded()
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// WeekStart returns the first day of the weekly window ending on end.
func WeekStart(end time.Time) time.Time {
	return end.AddDate(0, 0, -(WeekDays - 1))
}

// Averages returns the mean daily totals over days. Micros are not averaged.
func Averages(days []Day) (Totals, bool) {
	if len(days) == 0 {
		return Totals{}, false
	}
	var sum Totals
	for _, day := range days {
		sum.Calories += day.Calories
		sum.Protein += day.Protein
		sum.Carbs += day.Carbs
		sum.Fat += day.Fat
		sum.Fibre += day.Fibre
		sum.Water += day.Water
		sum.Meals += day.Meals
	}
	n := float64(len(days))
	return Totals{
		Calories: sum.Calories / n,
		Protein:  sum.Protein / n,
		Carbs:    sum.Carbs / n,
		Fat:      sum.Fat / n,
		Fibre:    sum.Fibre / n,
		Water:    sum.Water / n,
		Meals:    sum.Meals,
	}.rounded(), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
