package screens

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

const dateLayout = "2006-01-02"

// Tally counts attendance outcomes.
type Tally struct {
	Present int
	Late    int
	Absent  int
	Total   int
	// Rate is the share of present records in percent, one decimal.
	Rate float64
}

func tallyAttendance(records []school.Attendance, emptyRate float64) Tally {
	var t Tally
	for _, r := range records {
		switch r.Status {
		case school.AttendancePresent:
			t.Present++
		case school.AttendanceLate:
			t.Late++
		case school.AttendanceAbsent:
			t.Absent++
		}
	}
	t.Total = len(records)
	t.Rate = emptyRate
	if t.Total > 0 {
		t.Rate = round1(float64(t.Present) / float64(t.Total) * 100)
	}
	return t
}

// SubjectAverage is the mean grade of one subject.
type SubjectAverage struct {
	Subject string
	Average float64
	Count   int
}

func averageGrade(grades []school.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.Grade
	}
	return round1(sum / float64(len(grades)))
}

// subjectAverages returns one row per subject. When subjects is nil the
// subjects present in grades are used, sorted.
func subjectAverages(grades []school.Grade, subjects []string) []SubjectAverage {
	by := make(map[string][]school.Grade)
	for _, g := range grades {
		by[g.Subject] = append(by[g.Subject], g)
	}
	if subjects == nil {
		for subject := range by {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
	}
	out := make([]SubjectAverage, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, SubjectAverage{
			Subject: subject,
			Average: averageGrade(by[subject]),
			Count:   len(by[subject]),
		})
	}
	return out
}

func filterGrades(grades []school.Grade, keep func(school.Grade) bool) []school.Grade {
	out := make([]school.Grade, 0, len(grades))
	for _, g := range grades {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func countKind(grades []school.Grade, kind school.GradeKind) int {
	n := 0
	for _, g := range grades {
		if g.Type == kind {
			n++
		}
	}
	return n
}

// recentGrades returns up to n grades, newest first.
func recentGrades(grades []school.Grade, n int) []school.Grade {
	out := slices.Clone(grades)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ActivityCounts summarizes activities by lifecycle state.
type ActivityCounts struct {
	Total     int
	Active    int
	Completed int
	// Overdue counts active activities whose due date has passed.
	Overdue int
}

func countActivities(activities []school.Activity, today string) ActivityCounts {
	c := ActivityCounts{Total: len(activities)}
	for _, a := range activities {
		switch a.Status {
		case school.ActivityActive:
			c.Active++
			if isPastDue(a.DueDate, today) {
				c.Overdue++
			}
		case school.ActivityCompleted:
			c.Completed++
		}
	}
	return c
}

func isPastDue(due, today string) bool {
	d, err := time.Parse(dateLayout, dateOnly(due))
	if err != nil {
		return false
	}
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return false
	}
	return d.Before(t)
}

// dateOnly trims a timestamp to its YYYY-MM-DD prefix.
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func activitiesWithStatus(activities []school.Activity, status school.ActivityStatus) []school.Activity {
	out := make([]school.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// MoneyTotals sums payments by status.
type MoneyTotals struct {
	Total   float64
	Paid    float64
	Pending float64
	Overdue float64
	// PaidRate is Paid over Total in percent, one decimal.
	PaidRate float64
}

func sumPayments(payments []school.Payment) MoneyTotals {
	var m MoneyTotals
	for _, p := range payments {
		m.Total += p.Amount
		switch p.Status {
		case school.PaymentPaid:
			m.Paid += p.Amount
		case school.PaymentPending:
			m.Pending += p.Amount
		case school.PaymentOverdue:
			m.Overdue += p.Amount
		}
	}
	if m.Total > 0 {
		m.PaidRate = round1(m.Paid / m.Total * 100)
	}
	return m
}

func unreadTo(messages []school.Message, id string) int {
	n := 0
	for _, m := range messages {
		if m.ToID == id && m.Status == school.MessageUnread {
			n++
		}
	}
	return n
}

// studentsOf returns the students enrolled in any of groups, in directory order.
func studentsOf(users []school.User, groups []school.Group) []school.User {
	out := make([]school.User, 0)
	for _, u := range users {
		if u.Role != school.RoleStudent {
			continue
		}
		if slices.ContainsFunc(groups, func(g school.Group) bool { return g.HasStudent(u.ID) }) {
			out = append(out, u)
		}
	}
	return out
}

func groupsTaughtBy(groups []school.Group, teacherID string) []school.Group {
	out := make([]school.Group, 0)
	for _, g := range groups {
		if g.TeacherID == teacherID {
			out = append(out, g)
		}
	}
	return out
}

// childrenOf returns the users listed in parent.Children, in directory order.
func childrenOf(users []school.User, parent school.User) []school.User {
	out := make([]school.User, 0, len(parent.Children))
	for _, u := range users {
		if parent.HasChild(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
