package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// RosterJSON - структура файла со списком сотрудников
type RosterJSON struct {
	Year      int           `json:"year"`
	Employees []EmployeeRow `json:"employees"`
}

type EmployeeRow struct {
	Name  string `json:"name"`
	Shift string `json:"shift"`
}

// ParseRosterJSON - читает файл и возвращает сотрудников без пустых строк
func ParseRosterJSON(filePath string) ([]EmployeeRow, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	return ParseRoster(data)
}

// ParseRoster - разбирает JSON со списком сотрудников
func ParseRoster(data []byte) ([]EmployeeRow, error) {
	var rosterJSON RosterJSON
	if err := json.Unmarshal(data, &rosterJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	rows := []EmployeeRow{}
	seen := map[string]bool{}

	for i, e := range rosterJSON.Employees {
		name := strings.Join(strings.Fields(e.Name), " ")
		shift := strings.TrimSpace(e.Shift)

		if name == "" {
			continue
		}
		if shift == "" {
			return nil, fmt.Errorf("employee %d (%s) has no shift", i+1, name)
		}

		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("employee %s is listed twice", name)
		}
		seen[key] = true

		rows = append(rows, EmployeeRow{Name: name, Shift: shift})
	}

	return rows, nil
}

// CountByShift - количество сотрудников по сменам
func CountByShift(rows []EmployeeRow) map[string]int {
	counts := map[string]int{}
	for _, r := range rows {
		counts[strings.ToLower(r.Shift)]++
	}
	return counts
}

// Summary - строка со статистикой по сменам
func Summary(rows []EmployeeRow) string {
	counts := CountByShift(rows)

	shifts := make([]string, 0, len(counts))
	for shift := range counts {
		shifts = append(shifts, shift)
	}
	sort.Strings(shifts)

	parts := make([]string, 0, len(shifts))
	for _, shift := range shifts {
		parts = append(parts, fmt.Sprintf("%s: %d", shift, counts[shift]))
	}
	return fmt.Sprintf("Всего сотрудников: %d (%s)", len(rows), strings.Join(parts, ", "))
}
