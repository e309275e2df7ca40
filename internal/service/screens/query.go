package screens

import (
	"net/url"
	"strconv"
	"strings"
)

// All is the "no filter" option value used by every select.
const All = "all"

// Query carries the filter inputs of a screen. Empty and All both mean
// "no filter". Screens ignore the fields they do not use.
type Query struct {
	Search  string
	Role    string
	Status  string
	Grade   string
	Subject string
	Group   string
	Child   string
	Period  string
	Type    string
	Date    string
	Student string
	Tab     string
	// Month is 1-12; 0 means every month.
	Month int
}

// ParseQuery reads a Query from URL values.
func ParseQuery(v url.Values) Query {
	q := Query{
		Search:  strings.TrimSpace(v.Get("q")),
		Role:    v.Get("role"),
		Status:  v.Get("status"),
		Grade:   v.Get("grade"),
		Subject: v.Get("subject"),
		Group:   v.Get("group"),
		Child:   v.Get("child"),
		Period:  v.Get("period"),
		Type:    v.Get("type"),
		Date:    v.Get("date"),
		Student: v.Get("student"),
		Tab:     v.Get("tab"),
	}
	if m, err := strconv.Atoi(v.Get("month")); err == nil && m >= 1 && m <= 12 {
		q.Month = m
	}
	return q
}

// matches reports whether filter accepts value.
func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// containsFold is a case-insensitive substring test over any of fields. An
// empty needle matches everything.
func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
