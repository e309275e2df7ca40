package screens

import (
	"context"
	"time"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// ChildGrades is one child's grade summary.
type ChildGrades struct {
	Child         school.User
	Average       float64
	Count         int
	ProveYourself int
	Projects      int
}

// ChildrenGrades shows the grades of a parent's children.
type ChildrenGrades struct {
	Query    Query
	Children []ChildGrades
	Grades   []school.Grade
	Subjects []SubjectAverage
}

func (s *Service) childrenGrades(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGrades)
	if err != nil {
		return nil, err
	}
	children := childrenOf(c.users, me)
	all := filterGrades(c.grades, func(g school.Grade) bool { return me.HasChild(g.StudentID) })

	m := ChildrenGrades{Query: q, Children: make([]ChildGrades, 0, len(children))}
	for _, child := range children {
		gs := filterGrades(all, func(g school.Grade) bool { return g.StudentID == child.ID })
		m.Children = append(m.Children, ChildGrades{
			Child:         child,
			Average:       averageGrade(gs),
			Count:         len(gs),
			ProveYourself: countKind(gs, school.GradeProveYourself),
			Projects:      countKind(gs, school.GradeProject),
		})
	}
	m.Grades = filterGrades(all, func(g school.Grade) bool {
		return matches(q.Child, g.StudentID) && matches(q.Subject, g.Subject) && matches(q.Period, g.Period)
	})
	m.Subjects = subjectAverages(all, nil)
	return m, nil
}

// ChildAttendance is one child's attendance over the selected records.
type ChildAttendance struct {
	Child school.User
	Tally Tally
}

// ChildrenAttendance shows the attendance of a parent's children.
type ChildrenAttendance struct {
	Query    Query
	Children []ChildAttendance
	Records  []school.Attendance
	Overall  Tally
}

func (s *Service) childrenAttendance(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needAttendance)
	if err != nil {
		return nil, err
	}
	children := childrenOf(c.users, me)

	records := make([]school.Attendance, 0)
	for _, a := range c.attendance {
		if !me.HasChild(a.StudentID) || !matches(q.Child, a.StudentID) {
			continue
		}
		if q.Month != 0 && monthOf(a.Date) != q.Month {
			continue
		}
		records = append(records, a)
	}

	m := ChildrenAttendance{Query: q, Records: records, Overall: tallyAttendance(records, 0)}
	for _, child := range children {
		var mine []school.Attendance
		for _, a := range records {
			if a.StudentID == child.ID {
				mine = append(mine, a)
			}
		}
		m.Children = append(m.Children, ChildAttendance{Child: child, Tally: tallyAttendance(mine, 0)})
	}
	return m, nil
}

func monthOf(date string) int {
	t, err := time.Parse(dateLayout, dateOnly(date))
	if err != nil {
		return 0
	}
	return int(t.Month())
}

// ChildPayments is one child's billing subtotal.
type ChildPayments struct {
	Child  school.User
	Totals MoneyTotals
}

// ParentFinances is a parent's billing panel.
type ParentFinances struct {
	Query    Query
	Payments []school.Payment
	Totals   MoneyTotals
	Children []ChildPayments
}

func (s *Service) parentFinances(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needPayments)
	if err != nil {
		return nil, err
	}
	var mine []school.Payment
	for _, p := range c.payments {
		if p.ParentID == me.ID {
			mine = append(mine, p)
		}
	}
	m := ParentFinances{Query: q, Payments: make([]school.Payment, 0, len(mine)), Totals: sumPayments(mine)}
	for _, p := range mine {
		if matches(q.Status, string(p.Status)) && matches(q.Child, p.StudentID) {
			m.Payments = append(m.Payments, p)
		}
	}
	for _, child := range childrenOf(c.users, me) {
		var theirs []school.Payment
		for _, p := range mine {
			if p.StudentID == child.ID {
				theirs = append(theirs, p)
			}
		}
		m.Children = append(m.Children, ChildPayments{Child: child, Totals: sumPayments(theirs)})
	}
	return m, nil
}
