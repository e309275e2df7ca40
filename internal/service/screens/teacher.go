package screens

import (
	"context"
	"sort"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// StudentAverage is one student's mean over a set of grades.
type StudentAverage struct {
	Student school.User
	Average float64
	Count   int
}

// TeacherGrades is the teacher's grade book.
type TeacherGrades struct {
	Query        Query
	Grades       []school.Grade
	Subjects     []string
	Groups       []school.Group
	SubjectStats []SubjectAverage
	Students     []StudentAverage
}

func (s *Service) teacherGrades(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGroups|needGrades)
	if err != nil {
		return nil, err
	}
	groups := groupsTaughtBy(c.groups, me.ID)
	students := studentsOf(c.users, groups)
	names := make(map[string]string, len(c.users))
	for _, u := range c.users {
		names[u.ID] = u.Name
	}
	mine := filterGrades(c.grades, func(g school.Grade) bool { return g.TeacherID == me.ID })

	var selected *school.Group
	for i := range groups {
		if groups[i].ID == q.Group {
			selected = &groups[i]
		}
	}
	filtered := filterGrades(mine, func(g school.Grade) bool {
		if !containsFold(q.Search, names[g.StudentID], g.Description) {
			return false
		}
		if !matches(q.Subject, g.Subject) {
			return false
		}
		if q.Group != "" && q.Group != All {
			return selected != nil && selected.HasStudent(g.StudentID)
		}
		return true
	})

	subjects := me.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	perStudent := make([]StudentAverage, 0, len(students))
	for _, st := range students {
		gs := filterGrades(mine, func(g school.Grade) bool { return g.StudentID == st.ID })
		perStudent = append(perStudent, StudentAverage{Student: st, Average: averageGrade(gs), Count: len(gs)})
	}

	return TeacherGrades{
		Query:        q,
		Grades:       filtered,
		Subjects:     subjects,
		Groups:       groups,
		SubjectStats: subjectAverages(mine, subjects),
		Students:     perStudent,
	}, nil
}

// TeacherActivities lists the teacher's activities.
type TeacherActivities struct {
	Query      Query
	Activities []school.Activity
	Counts     ActivityCounts
	Groups     []school.Group
	Subjects   []string
	Today      string
}

func (s *Service) teacherActivities(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needGroups|needActivities)
	if err != nil {
		return nil, err
	}
	today := s.today()
	var mine []school.Activity
	for _, a := range c.activities {
		if a.TeacherID == me.ID {
			mine = append(mine, a)
		}
	}
	filtered := make([]school.Activity, 0, len(mine))
	for _, a := range mine {
		if containsFold(q.Search, a.Title, a.Description) &&
			matches(q.Status, string(a.Status)) &&
			matches(q.Subject, a.Subject) {
			filtered = append(filtered, a)
		}
	}
	return TeacherActivities{
		Query:      q,
		Activities: filtered,
		Counts:     countActivities(mine, today),
		Groups:     groupsTaughtBy(c.groups, me.ID),
		Subjects:   me.Subjects,
		Today:      today,
	}, nil
}

// RosterRow is one student on the attendance sheet for the selected date.
type RosterRow struct {
	Student school.User
	// Record is nil when attendance has not been taken.
	Record *school.Attendance
}

// TeacherAttendance is the teacher's attendance sheet.
type TeacherAttendance struct {
	Query   Query
	Groups  []school.Group
	Group   *school.Group
	Date    string
	Roster  []RosterRow
	Today   Tally
	Overall Tally
	// History is the selected student's record, newest first.
	History        []school.Attendance
	HistoryStudent *school.User
}

func (s *Service) teacherAttendance(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGroups|needAttendance)
	if err != nil {
		return nil, err
	}
	today := s.today()
	date := q.Date
	if date == "" {
		date = today
	}
	groups := groupsTaughtBy(c.groups, me.ID)
	m := TeacherAttendance{Query: q, Groups: groups, Date: date}

	var mine, todays []school.Attendance
	for _, a := range c.attendance {
		if a.TeacherID != me.ID {
			continue
		}
		mine = append(mine, a)
		if dateOnly(a.Date) == today {
			todays = append(todays, a)
		}
	}
	m.Today = tallyAttendance(todays, 0)
	m.Overall = tallyAttendance(mine, 0)

	for i := range groups {
		if groups[i].ID == q.Group {
			m.Group = &groups[i]
		}
	}
	if m.Group != nil {
		for _, st := range studentsOf(c.users, []school.Group{*m.Group}) {
			row := RosterRow{Student: st}
			for i := range c.attendance {
				a := c.attendance[i]
				if a.StudentID == st.ID && dateOnly(a.Date) == date {
					row.Record = &a
					break
				}
			}
			m.Roster = append(m.Roster, row)
		}
	}

	if q.Student != "" {
		taught := studentsOf(c.users, groups)
		for i := range taught {
			if taught[i].ID == q.Student {
				m.HistoryStudent = &taught[i]
			}
		}
		if m.HistoryStudent != nil {
			for _, a := range c.attendance {
				if a.StudentID == q.Student {
					m.History = append(m.History, a)
				}
			}
			sort.SliceStable(m.History, func(i, j int) bool { return m.History[i].Date > m.History[j].Date })
		}
	}
	return m, nil
}
