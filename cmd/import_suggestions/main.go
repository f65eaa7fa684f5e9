package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"nutrisnap/internal/config"
	"nutrisnap/internal/db"
	"nutrisnap/internal/meals"
	"nutrisnap/models"
)

var (
	numberPattern  = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	listSeparators = regexp.MustCompile(`[;|]`)
)

var requiredColumns = []string{"name", "calories", "protein", "carbs", "fat"}

func main() {
	csvPath := "meal_suggestions.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}
	defer file.Close()

	records, err := readCSV(file)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	created, updated, err := importSuggestions(ctx, database, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d meal suggestions (%d new, %d updated) from %s\n",
		created+updated, created, updated, filepath.Base(csvPath))
	return nil
}

func importSuggestions(ctx context.Context, database *gorm.DB, records []map[string]string) (created, updated int, err error) {
	for idx, record := range records {
		suggestion, err := buildSuggestion(record)
		if err != nil {
			return created, updated, fmt.Errorf("record %d: %w", idx+1, err)
		}
		isNew, err := meals.UpsertSuggestion(ctx, database, &suggestion)
		if err != nil {
			return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, suggestion.Name, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	for idx, key := range rows[0] {
		header[idx] = strings.ToLower(strings.TrimSpace(key))
	}
	for _, column := range requiredColumns {
		if !containsColumn(header, column) {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func containsColumn(header []string, column string) bool {
	for _, key := range header {
		if key == column {
			return true
		}
	}
	return false
}

func buildSuggestion(row map[string]string) (models.MealSuggestion, error) {
	name := strings.Join(strings.Fields(row["name"]), " ")
	if name == "" {
		return models.MealSuggestion{}, errors.New("name must not be empty")
	}

	suggestion := models.MealSuggestion{
		Name:        name,
		Calories:    parseFirstNumber(row["calories"]),
		Protein:     parseFirstNumber(row["protein"]),
		Carbs:       parseFirstNumber(row["carbs"]),
		Fat:         parseFirstNumber(row["fat"]),
		Ingredients: models.JoinList(listSeparators.Split(row["ingredients"], -1)),
		Tags:        models.JoinList(listSeparators.Split(strings.ToLower(row["tags"]), -1)),
	}
	if suggestion.Calories <= 0 {
		return models.MealSuggestion{}, fmt.Errorf("%s: calories must be positive", name)
	}
	for _, value := range []float64{suggestion.Protein, suggestion.Carbs, suggestion.Fat} {
		if value < 0 {
			return models.MealSuggestion{}, fmt.Errorf("%s: macros must not be negative", name)
		}
	}
	return suggestion, nil
}

func parseFirstNumber(value string) float64 {
	match := numberPattern.FindString(strings.TrimSpace(value))
	if match == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}
