package google

import (
	"fmt"
	"strconv"
	"strings"

	"igreja/internal/core"
)

// entryRow lays an entry out in the column order of sheets.Header. Amounts
// are written as plain decimals so USER_ENTERED stores them as numbers.
func entryRow(e core.FinancialEntry) []any {
	return []any{e.ID, e.Date, string(e.Kind), e.Category, e.Amount.String(), e.Notes}
}

// parseEntryRow reverses entryRow. Rows without a numeric id, such as the
// header, are rejected.
func parseEntryRow(row []any) (core.FinancialEntry, error) {
	if len(row) == 0 {
		return core.FinancialEntry{}, fmt.Errorf("empty row")
	}
	id, ok := cellID(row[0])
	if !ok {
		return core.FinancialEntry{}, fmt.Errorf("row id %v is not a number", row[0])
	}
	return core.FinancialEntry{
		ID:       id,
		Date:     cellString(row, 1),
		Kind:     core.EntryKind(cellString(row, 2)),
		Category: cellString(row, 3),
		Amount:   cellMoney(row, 4),
		Notes:    cellString(row, 5),
	}, nil
}

// findRow returns the zero-based row index whose first cell is id.
func findRow(values [][]any, id int64) (int, bool) {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if got, ok := cellID(row[0]); ok && got == id {
			return i, true
		}
	}
	return 0, false
}

func cellID(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		if x != float64(int64(x)) || x <= 0 {
			return 0, false
		}
		return int64(x), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func cellString(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func cellMoney(row []any, idx int) core.Money {
	if idx >= len(row) {
		return core.Money{}
	}
	if f, ok := row[idx].(float64); ok {
		return core.MoneyFromFloat(f)
	}
	return core.ParseAmount(cellString(row, idx))
}
