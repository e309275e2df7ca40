package screens

import (
	"context"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// SubjectBreakdown is a student's per-subject summary.
type SubjectBreakdown struct {
	SubjectAverage
	ProveYourselfAverage float64
	ProjectsAverage      float64
}

// StudentGrades is a student's own grade report.
type StudentGrades struct {
	Query         Query
	Grades        []school.Grade
	Average       float64
	ProveYourself int
	Subjects      []SubjectBreakdown
}

func (s *Service) studentGrades(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needGrades)
	if err != nil {
		return nil, err
	}
	mine := filterGrades(c.grades, func(g school.Grade) bool { return g.StudentID == me.ID })
	m := StudentGrades{
		Query:         q,
		Average:       averageGrade(mine),
		ProveYourself: countKind(mine, school.GradeProveYourself),
		Grades: filterGrades(mine, func(g school.Grade) bool {
			return matches(q.Subject, g.Subject) && matches(q.Period, g.Period) && matches(q.Type, string(g.Type))
		}),
	}
	for _, sa := range subjectAverages(mine, nil) {
		inSubject := filterGrades(mine, func(g school.Grade) bool { return g.Subject == sa.Subject })
		m.Subjects = append(m.Subjects, SubjectBreakdown{
			SubjectAverage:       sa,
			ProveYourselfAverage: averageGrade(filterGrades(inSubject, func(g school.Grade) bool { return g.Type == school.GradeProveYourself })),
			ProjectsAverage:      averageGrade(filterGrades(inSubject, func(g school.Grade) bool { return g.Type == school.GradeProject })),
		})
	}
	return m, nil
}

// StudentActivities lists activities assigned to a student.
type StudentActivities struct {
	Query      Query
	Activities []school.Activity
	Counts     ActivityCounts
	Today      string
}

func (s *Service) studentActivities(ctx context.Context, me school.User, q Query) (any, error) {
	c, err := s.fetch(ctx, needActivities)
	if err != nil {
		return nil, err
	}
	today := s.today()
	var assigned []school.Activity
	for _, a := range c.activities {
		if a.AssignedTo(me.ID) {
			assigned = append(assigned, a)
		}
	}
	filtered := make([]school.Activity, 0, len(assigned))
	for _, a := range assigned {
		if matches(q.Status, string(a.Status)) && matches(q.Subject, a.Subject) && matches(q.Type, a.Type) {
			filtered = append(filtered, a)
		}
	}
	return StudentActivities{
		Query:      q,
		Activities: filtered,
		Counts:     countActivities(assigned, today),
		Today:      today,
	}, nil
}
