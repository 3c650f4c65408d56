package view

import "strings"

// NameColumn is the selection table column searched by the filter.
const NameColumn = 1

// AllChecked reports whether every member is checked. An empty set counts
// as all checked.
func AllChecked(members []bool) bool {
	for _, m := range members {
		if !m {
			return false
		}
	}
	return true
}

// FilterRows returns the visibility of each row: a row is visible when the
// text in column contains filter, ignoring case. Rows too short to have the
// column are hidden unless the filter is empty.
func FilterRows(filter string, rows [][]string, column int) []bool {
	needle := strings.ToLower(filter)
	out := make([]bool, len(rows))
	for i, r := range rows {
		if needle == "" {
			out[i] = true
			continue
		}
		if column < 0 || column >= len(r) {
			continue
		}
		out[i] = strings.Contains(strings.ToLower(r[column]), needle)
	}
	return out
}
