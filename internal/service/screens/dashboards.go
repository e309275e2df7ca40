package screens

import (
	"context"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

// AdminDashboard is the school-wide overview.
type AdminDashboard struct {
	Students       int
	Teachers       int
	Parents        int
	Attendance     school.AttendanceStats
	Finance        school.FinancialSummary
	UnreadMessages int
	QuickActions   []viewrouter.QuickAction
}

func (s *Service) adminDashboard(ctx context.Context, _ school.User, _ Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needAttendance|needPayments|needMessages)
	if err != nil {
		return nil, err
	}
	unread := 0
	for _, m := range c.messages {
		if m.Status == school.MessageUnread {
			unread++
		}
	}
	return AdminDashboard{
		Students:       len(school.FilterByRole(c.users, school.RoleStudent)),
		Teachers:       len(school.FilterByRole(c.users, school.RoleTeacher)),
		Parents:        len(school.FilterByRole(c.users, school.RoleParent)),
		Attendance:     c.stats,
		Finance:        c.summary,
		UnreadMessages: unread,
		QuickActions:   viewrouter.QuickActionsFor(school.RoleAdmin),
	}, nil
}

// TeacherDashboard is a teacher's overview of their own groups and work.
type TeacherDashboard struct {
	Groups           []school.Group
	StudentCount     int
	ActiveActivities []school.Activity
	GradesToday      int
	SubjectAverages  []SubjectAverage
	TodayAttendance  []school.Attendance
	QuickActions     []viewrouter.QuickAction
}

func (s *Service) teacherDashboard(ctx context.Context, me school.User, _ Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGroups|needGrades|needAttendance|needActivities)
	if err != nil {
		return nil, err
	}
	today := s.today()
	groups := groupsTaughtBy(c.groups, me.ID)
	grades := filterGrades(c.grades, func(g school.Grade) bool { return g.TeacherID == me.ID })

	var mine []school.Activity
	for _, a := range c.activities {
		if a.TeacherID == me.ID {
			mine = append(mine, a)
		}
	}
	var todays []school.Attendance
	for _, a := range c.attendance {
		if a.TeacherID == me.ID && dateOnly(a.Date) == today {
			todays = append(todays, a)
		}
	}
	gradedToday := 0
	for _, g := range grades {
		if dateOnly(g.Date) == today {
			gradedToday++
		}
	}

	subjects := me.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return TeacherDashboard{
		Groups:           groups,
		StudentCount:     len(studentsOf(c.users, groups)),
		ActiveActivities: activitiesWithStatus(mine, school.ActivityActive),
		GradesToday:      gradedToday,
		SubjectAverages:  subjectAverages(grades, subjects),
		TodayAttendance:  todays,
		QuickActions:     viewrouter.QuickActionsFor(school.RoleTeacher),
	}, nil
}

// ChildSummary is one child's card on the parent dashboard.
type ChildSummary struct {
	Child            school.User
	AverageGrade     float64
	AttendanceRate   float64
	GradeCount       int
	ActiveActivities int
}

// ParentDashboard is a parent's overview of their children.
type ParentDashboard struct {
	Children         []ChildSummary
	RecentGrades     []school.Grade
	PaidTotal        float64
	PendingTotal     float64
	PendingPayments  []school.Payment
	ActiveActivities []school.Activity
	Messages         []school.Message
	UnreadMessages   int
	QuickActions     []viewrouter.QuickAction
}

func (s *Service) parentDashboard(ctx context.Context, me school.User, _ Query) (any, error) {
	c, err := s.fetch(ctx, needUsers|needGrades|needAttendance|needActivities|needPayments|needMessages)
	if err != nil {
		return nil, err
	}
	children := childrenOf(c.users, me)
	childGrades := filterGrades(c.grades, func(g school.Grade) bool { return me.HasChild(g.StudentID) })

	var childActivities []school.Activity
	for _, a := range c.activities {
		for _, id := range a.StudentsAssigned {
			if me.HasChild(id) {
				childActivities = append(childActivities, a)
				break
			}
		}
	}

	cards := make([]ChildSummary, 0, len(children))
	for _, child := range children {
		grades := filterGrades(childGrades, func(g school.Grade) bool { return g.StudentID == child.ID })
		var records []school.Attendance
		for _, a := range c.attendance {
			if a.StudentID == child.ID {
				records = append(records, a)
			}
		}
		active := 0
		for _, a := range childActivities {
			if a.Status == school.ActivityActive && a.AssignedTo(child.ID) {
				active++
			}
		}
		cards = append(cards, ChildSummary{
			Child:            child,
			AverageGrade:     averageGrade(grades),
			AttendanceRate:   tallyAttendance(records, 100).Rate,
			GradeCount:       len(grades),
			ActiveActivities: active,
		})
	}

	var mine, pending []school.Payment
	for _, p := range c.payments {
		if p.ParentID != me.ID {
			continue
		}
		mine = append(mine, p)
		if p.Status == school.PaymentPending {
			pending = append(pending, p)
		}
	}
	totals := sumPayments(mine)

	var messages []school.Message
	for _, m := range c.messages {
		if m.Involves(me.ID) {
			messages = append(messages, m)
		}
	}

	return ParentDashboard{
		Children:         cards,
		RecentGrades:     recentGrades(childGrades, 5),
		PaidTotal:        totals.Paid,
		PendingTotal:     totals.Pending,
		PendingPayments:  pending,
		ActiveActivities: activitiesWithStatus(childActivities, school.ActivityActive),
		Messages:         messages,
		UnreadMessages:   unreadTo(messages, me.ID),
		QuickActions:     viewrouter.QuickActionsFor(school.RoleParent),
	}, nil
}

// StudentDashboard is a student's own overview.
type StudentDashboard struct {
	AverageGrade        float64
	Attendance          Tally
	ActiveActivities    []school.Activity
	CompletedActivities []school.Activity
	ProveYourself       int
	SubjectAverages     []SubjectAverage
	RecentGrades        []school.Grade
	UnreadMessages      int
	QuickActions        []viewrouter.QuickAction
}

func (s *Service) studentDashboard(ctx context.Context, me school.User, _ Query) (any, error) {
	c, err := s.fetch(ctx, needGrades|needAttendance|needActivities|needMessages)
	if err != nil {
		return nil, err
	}
	grades := filterGrades(c.grades, func(g school.Grade) bool { return g.StudentID == me.ID })

	var records []school.Attendance
	for _, a := range c.attendance {
		if a.StudentID == me.ID {
			records = append(records, a)
		}
	}
	var assigned []school.Activity
	for _, a := range c.activities {
		if a.AssignedTo(me.ID) {
			assigned = append(assigned, a)
		}
	}

	return StudentDashboard{
		AverageGrade:        averageGrade(grades),
		Attendance:          tallyAttendance(records, 100),
		ActiveActivities:    activitiesWithStatus(assigned, school.ActivityActive),
		CompletedActivities: activitiesWithStatus(assigned, school.ActivityCompleted),
		ProveYourself:       countKind(grades, school.GradeProveYourself),
		SubjectAverages:     subjectAverages(grades, nil),
		RecentGrades:        recentGrades(grades, 5),
		UnreadMessages:      unreadTo(c.messages, me.ID),
		QuickActions:        viewrouter.QuickActionsFor(school.RoleStudent),
	}, nil
}
