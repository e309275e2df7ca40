package screens

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/mocks"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

type fakeData struct {
	users      []school.User
	groups     []school.Group
	grades     []school.Grade
	attendance []school.Attendance
	stats      school.AttendanceStats
	activities []school.Activity
	payments   []school.Payment
	summary    school.FinancialSummary
	messages   []school.Message
}

func (f *fakeData) FetchAllUsers(context.Context) ([]school.User, error) { return f.users, nil }
func (f *fakeData) Groups(context.Context) ([]school.Group, error)       { return f.groups, nil }
func (f *fakeData) Grades(context.Context) ([]school.Grade, error)       { return f.grades, nil }
func (f *fakeData) Attendance(context.Context) ([]school.Attendance, school.AttendanceStats, error) {
	return f.attendance, f.stats, nil
}
func (f *fakeData) Activities(context.Context) ([]school.Activity, error) { return f.activities, nil }
func (f *fakeData) Payments(context.Context) ([]school.Payment, school.FinancialSummary, error) {
	return f.payments, f.summary, nil
}
func (f *fakeData) Messages(context.Context) ([]school.Message, error) { return f.messages, nil }
func (f *fakeData) SchoolConfig(context.Context) (school.Config, error) {
	return school.Config{}, nil
}

var (
	admin   = school.User{ID: "1", Name: "Carlos Mendoza", Email: "carlos.mendoza@mundoworld.edu", Role: school.RoleAdmin}
	teacher = school.User{ID: "2", Name: "María García", Email: "maria.garcia@mundoworld.edu", Role: school.RoleTeacher, Subjects: []string{"Matemáticas", "Física"}}
	parent  = school.User{ID: "3", Name: "Ana Rodríguez", Email: "ana.rodriguez@email.com", Role: school.RoleParent, Children: []string{"4"}}
	pablo   = school.User{ID: "4", Name: "Pablo Rodríguez", Email: "pablo.rodriguez@mundoworld.edu", Role: school.RoleStudent, ParentID: "3"}
	lucia   = school.User{ID: "5", Name: "Lucía Torres", Email: "lucia.torres@mundoworld.edu", Role: school.RoleStudent, Status: school.StatusInactive}
	other   = school.User{ID: "6", Name: "Jorge Ruiz", Email: "jorge.ruiz@mundoworld.edu", Role: school.RoleTeacher}
)

func sampleData() *fakeData {
	return &fakeData{
		users: []school.User{admin, teacher, parent, pablo, lucia, other},
		groups: []school.Group{
			{ID: "g1", Name: "9° Grado A", Grade: "9°", TeacherID: "2", TeacherName: "María García", Students: []string{"4"}},
			{ID: "g2", Name: "10° Grado B", Grade: "10°", TeacherID: "6", TeacherName: "Jorge Ruiz", Students: []string{}},
		},
		grades: []school.Grade{
			{ID: "gr1", StudentID: "4", Subject: "Matemáticas", TeacherID: "2", Grade: 95, Type: school.GradeProveYourself, Description: "Álgebra", Date: "2025-06-07", Period: "P3"},
			{ID: "gr2", StudentID: "4", Subject: "Física", TeacherID: "2", Grade: 75, Type: school.GradeProject, Description: "Cinemática", Date: "2025-06-01", Period: "P3"},
			{ID: "gr3", StudentID: "5", Subject: "Historia", TeacherID: "6", Grade: 60, Type: school.GradeEssay, Description: "Ensayo", Date: "2025-05-20", Period: "P2"},
			{ID: "gr4", StudentID: "5", Subject: "Historia", TeacherID: "6", Grade: 85, Type: school.GradeActivity, Description: "Mapa", Date: "2025-05-21", Period: "P2"},
		},
		attendance: []school.Attendance{
			{ID: "a1", StudentID: "4", Date: "2025-06-07", Status: school.AttendancePresent, TeacherID: "2"},
			{ID: "a2", StudentID: "4", Date: "2025-06-06", Status: school.AttendanceLate, TeacherID: "2"},
			{ID: "a3", StudentID: "5", Date: "2025-06-07", Status: school.AttendanceAbsent, TeacherID: "6"},
			{ID: "a4", StudentID: "4", Date: "2025-05-30", Status: school.AttendancePresent, TeacherID: "2"},
		},
		stats: school.AttendanceStats{TotalStudents: 2, PresentToday: 1, AttendanceRate: 50},
		activities: []school.Activity{
			{ID: "ac1", Title: "Ecuaciones", Description: "Resolver sistema", Subject: "Matemáticas", TeacherID: "2", DueDate: "2025-06-01", Status: school.ActivityActive, StudentsAssigned: []string{"4"}},
			{ID: "ac2", Title: "Informe", Description: "Laboratorio de péndulo", Subject: "Física", TeacherID: "2", DueDate: "2025-06-20", Status: school.ActivityActive, StudentsAssigned: []string{"4", "5"}},
			{ID: "ac3", Title: "Lectura", Description: "Capítulo 3", Subject: "Historia", TeacherID: "6", DueDate: "2025-05-01", Status: school.ActivityCompleted, StudentsAssigned: []string{"5"}},
		},
		payments: []school.Payment{
			{ID: "p1", StudentID: "4", ParentID: "3", Amount: 300, Status: school.PaymentPaid},
			{ID: "p2", StudentID: "4", ParentID: "3", Amount: 150, Status: school.PaymentPending},
			{ID: "p3", StudentID: "5", ParentID: "9", Amount: 50, Status: school.PaymentOverdue},
		},
		summary: school.FinancialSummary{Collected: 300, Pending: 150},
		messages: []school.Message{
			{ID: "m1", FromID: "2", FromName: "María García", ToID: "3", Subject: "Reunión", Content: "Viernes", Status: school.MessageUnread},
			{ID: "m2", FromID: "3", FromName: "Ana Rodríguez", ToID: "2", Subject: "Re: Reunión", Content: "Confirmado", Status: school.MessageRead},
			{ID: "m3", FromID: "1", FromName: "Carlos Mendoza", ToID: "4", Subject: "Bienvenida", Content: "Hola", Status: school.MessageUnread},
		},
	}
}

func newTestService(t *testing.T, data *fakeData) *Service {
	t.Helper()
	svc, err := NewService(ServiceOptions{
		Data:   data,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func build[T any](t *testing.T, svc *Service, me school.User, section string, q Query) T {
	t.Helper()
	page, err := svc.Build(context.Background(), me, viewrouter.Resolve(me.Role, section), q)
	require.NoError(t, err)
	model, ok := page.Model.(T)
	require.True(t, ok, "model is %T", page.Model)
	return model
}

func TestNewService_RequiresData(t *testing.T) {
	_, err := NewService(ServiceOptions{})
	require.Error(t, err)
}

func TestBuild_Placeholder(t *testing.T) {
	svc := newTestService(t, sampleData())
	page, err := svc.Build(context.Background(), admin, viewrouter.Resolve(school.RoleAdmin, "settings"), Query{})
	require.NoError(t, err)
	assert.True(t, page.Placeholder)
	assert.Nil(t, page.Model)
}

func TestBuild_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	data := mocks.NewMockSchoolData(ctrl)
	data.EXPECT().FetchAllUsers(gomock.Any()).Return(nil, errors.New("boom")).AnyTimes()
	data.EXPECT().Messages(gomock.Any()).Return(nil, nil).AnyTimes()

	svc, err := NewService(ServiceOptions{Data: data, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	_, err = svc.Build(context.Background(), admin, viewrouter.Resolve(school.RoleAdmin, "messages"), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load users")
}

func TestAdminDashboard(t *testing.T) {
	svc := newTestService(t, sampleData())
	m := build[AdminDashboard](t, svc, admin, "dashboard", Query{})

	assert.Equal(t, 2, m.Students)
	assert.Equal(t, 2, m.Teachers)
	assert.Equal(t, 1, m.Parents)
	assert.Equal(t, 2, m.UnreadMessages)
	assert.Equal(t, 1, m.Attendance.PresentToday)
	assert.Equal(t, 150.0, m.Finance.Pending)
	assert.Len(t, m.QuickActions, 6)
}

func TestTeacherDashboard(t *testing.T) {
	svc := newTestService(t, sampleData())
	m := build[TeacherDashboard](t, svc, teacher, "dashboard", Query{})

	require.Len(t, m.Groups, 1)
	assert.Equal(t, "g1", m.Groups[0].ID)
	assert.Equal(t, 1, m.StudentCount)
	assert.Len(t, m.ActiveActivities, 2)
	assert.Equal(t, 1, m.GradesToday)
	require.Len(t, m.TodayAttendance, 1)
	assert.Equal(t, "a1", m.TodayAttendance[0].ID)
	assert.Equal(t, []SubjectAverage{
		{Subject: "Matemáticas", Average: 95, Count: 1},
		{Subject: "Física", Average: 75, Count: 1},
	}, m.SubjectAverages)
}

func TestParentDashboard(t *testing.T) {
	svc := newTestService(t, sampleData())
	m := build[ParentDashboard](t, svc, parent, "dashboard", Query{})

	require.Len(t, m.Children, 1)
	child := m.Children[0]
	assert.Equal(t, "4", child.Child.ID)
	assert.Equal(t, 85.0, child.AverageGrade)
	assert.InDelta(t, 66.7, child.AttendanceRate, 0.01)
	assert.Equal(t, 2, child.GradeCount)
	assert.Equal(t, 2, child.ActiveActivities)

	assert.Equal(t, 300.0, m.PaidTotal)
	assert.Equal(t, 150.0, m.PendingTotal)
	assert.Len(t, m.PendingPayments, 1)
	assert.Len(t, m.Messages, 2)
	assert.Equal(t, 1, m.UnreadMessages)
	assert.Equal(t, "gr1", m.RecentGrades[0].ID, "newest grade first")
}

func TestParentDashboard_ChildWithoutRecords(t *testing.T) {
	data := sampleData()
	data.attendance = nil
	data.grades = nil
	svc := newTestService(t, data)

	m := build[ParentDashboard](t, svc, parent, "dashboard", Query{})
	require.Len(t, m.Children, 1)
	assert.Equal(t, 0.0, m.Children[0].AverageGrade)
	assert.Equal(t, 100.0, m.Children[0].AttendanceRate)
}

func TestStudentDashboard(t *testing.T) {
	svc := newTestService(t, sampleData())
	m := build[StudentDashboard](t, svc, pablo, "dashboard", Query{})

	assert.Equal(t, 85.0, m.AverageGrade)
	assert.Equal(t, 3, m.Attendance.Total)
	assert.Len(t, m.ActiveActivities, 2)
	assert.Empty(t, m.CompletedActivities)
	assert.Equal(t, 1, m.ProveYourself)
	assert.Equal(t, 1, m.UnreadMessages)
}

func TestUserManagement_Filters(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{name: "no filter", q: Query{}, want: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "search name", q: Query{Search: "rodríguez"}, want: []string{"3", "4"}},
		{name: "search email", q: Query{Search: "EMAIL.COM"}, want: []string{"3"}},
		{name: "role", q: Query{Role: "student"}, want: []string{"4", "5"}},
		{name: "role all", q: Query{Role: All}, want: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "inactive", q: Query{Status: "inactive"}, want: []string{"5"}},
		{name: "active students", q: Query{Role: "student", Status: "active"}, want: []string{"4"}},
	}
	svc := newTestService(t, sampleData())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build[UserManagement](t, svc, admin, "users", tt.q)
			ids := make([]string, 0, len(m.Users))
			for _, u := range m.Users {
				ids = append(ids, u.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, 6, m.Total)
			assert.Equal(t, 1, m.Inactive)
		})
	}
}

func TestGroupManagement(t *testing.T) {
	svc := newTestService(t, sampleData())

	m := build[GroupManagement](t, svc, admin, "groups", Query{Search: "jorge"})
	require.Len(t, m.Groups, 1)
	assert.Equal(t, "g2", m.Groups[0].Group.ID)
	assert.Equal(t, []string{"10°", "9°"}, m.GradeLevels)
	assert.Equal(t, 1, m.AssignedStudents)
	require.Len(t, m.Unassigned, 1)
	assert.Equal(t, "5", m.Unassigned[0].ID)

	m = build[GroupManagement](t, svc, admin, "groups", Query{Grade: "9°"})
	require.Len(t, m.Groups, 1)
	require.Len(t, m.Groups[0].Students, 1)
	assert.Equal(t, "Pablo Rodríguez", m.Groups[0].Students[0].Name)
}

func TestStatistics(t *testing.T) {
	svc := newTestService(t, sampleData())
	m := build[Statistics](t, svc, admin, "statistics", Query{})

	assert.Equal(t, 6, m.Users.Total)
	assert.Equal(t, 1, m.Users.Admins)
	assert.Equal(t, GradeBands{Total: 4, Average: 78.8, Excellent: 1, Good: 1, Satisfactory: 1, NeedsImprovement: 1}, m.Grades)
	assert.Equal(t, 50.0, m.Attendance.Rate)
	assert.Equal(t, 60.0, m.Finance.PaidRate)
	assert.Equal(t, ActivityCounts{Total: 3, Active: 2, Completed: 1, Overdue: 1}, m.Activities)
	assert.Equal(t, 2, m.Messages.Unread)
	assert.Equal(t, 1, m.Messages.Read)
}

func TestMessaging(t *testing.T) {
	svc := newTestService(t, sampleData())

	inbox := build[Messaging](t, svc, teacher, "messages", Query{})
	assert.Equal(t, TabInbox, inbox.Tab)
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, "m2", inbox.Messages[0].ID)
	assert.Equal(t, 1, inbox.Sent)

	sent := build[Messaging](t, svc, teacher, "messages", Query{Tab: TabSent})
	require.Len(t, sent.Messages, 1)
	assert.Equal(t, "m1", sent.Messages[0].ID)

	none := build[Messaging](t, svc, teacher, "messages", Query{Search: "nada"})
	assert.Empty(t, none.Messages)

	parentInbox := build[Messaging](t, svc, parent, "messages", Query{})
	assert.Equal(t, 1, parentInbox.Unread)
}

func TestRecipients(t *testing.T) {
	users := sampleData().users
	ids := func(us []school.User) []string {
		out := make([]string, 0, len(us))
		for _, u := range us {
			out = append(out, u.ID)
		}
		return out
	}
	assert.Equal(t, []string{"2", "3", "4", "5", "6"}, ids(Recipients(users, admin)))
	assert.Equal(t, []string{"1", "3", "4", "5"}, ids(Recipients(users, teacher)))
	assert.Equal(t, []string{"1", "2", "6"}, ids(Recipients(users, parent)))
	assert.Equal(t, []string{"1", "2", "6"}, ids(Recipients(users, pablo)))
	assert.Empty(t, Recipients(users, school.User{ID: "x", Role: "janitor"}))
}

func TestTeacherGrades_Filters(t *testing.T) {
	svc := newTestService(t, sampleData())

	all := build[TeacherGrades](t, svc, teacher, "grades", Query{})
	assert.Len(t, all.Grades, 2)
	require.Len(t, all.Students, 1)
	assert.Equal(t, 85.0, all.Students[0].Average)

	bySubject := build[TeacherGrades](t, svc, teacher, "grades", Query{Subject: "Física"})
	require.Len(t, bySubject.Grades, 1)
	assert.Equal(t, "gr2", bySubject.Grades[0].ID)

	byStudentName := build[TeacherGrades](t, svc, teacher, "grades", Query{Search: "pablo"})
	assert.Len(t, byStudentName.Grades, 2)

	byGroup := build[TeacherGrades](t, svc, teacher, "grades", Query{Group: "g1"})
	assert.Len(t, byGroup.Grades, 2)

	foreignGroup := build[TeacherGrades](t, svc, teacher, "grades", Query{Group: "g2"})
	assert.Empty(t, foreignGroup.Grades)
}

func TestTeacherActivities(t *testing.T) {
	svc := newTestService(t, sampleData())

	m := build[TeacherActivities](t, svc, teacher, "activities", Query{Search: "péndulo"})
	require.Len(t, m.Activities, 1)
	assert.Equal(t, "ac2", m.Activities[0].ID)
	assert.Equal(t, ActivityCounts{Total: 2, Active: 2, Overdue: 1}, m.Counts)

	m = build[TeacherActivities](t, svc, teacher, "activities", Query{Status: "completed"})
	assert.Empty(t, m.Activities)
}

func TestTeacherAttendance(t *testing.T) {
	svc := newTestService(t, sampleData())

	m := build[TeacherAttendance](t, svc, teacher, "attendance", Query{Group: "g1", Student: "4"})
	assert.Equal(t, "2025-06-07", m.Date)
	require.NotNil(t, m.Group)
	require.Len(t, m.Roster, 1)
	require.NotNil(t, m.Roster[0].Record)
	assert.Equal(t, "a1", m.Roster[0].Record.ID)
	assert.Equal(t, Tally{Present: 1, Total: 1, Rate: 100}, m.Today)
	assert.Equal(t, 3, m.Overall.Total)
	require.Len(t, m.History, 3)
	assert.Equal(t, "2025-06-07", m.History[0].Date)

	m = build[TeacherAttendance](t, svc, teacher, "attendance", Query{Group: "g1", Date: "2025-01-01", Student: "5"})
	require.Len(t, m.Roster, 1)
	assert.Nil(t, m.Roster[0].Record)
	assert.Nil(t, m.HistoryStudent, "students outside the teacher's groups have no history")
}

func TestChildrenScreens(t *testing.T) {
	svc := newTestService(t, sampleData())

	grades := build[ChildrenGrades](t, svc, parent, "grades", Query{Subject: "Matemáticas"})
	require.Len(t, grades.Grades, 1)
	require.Len(t, grades.Children, 1)
	assert.Equal(t, 1, grades.Children[0].ProveYourself)
	assert.Equal(t, 1, grades.Children[0].Projects)

	att := build[ChildrenAttendance](t, svc, parent, "attendance", Query{Month: 6})
	assert.Len(t, att.Records, 2)
	assert.Equal(t, 50.0, att.Overall.Rate)

	fin := build[ParentFinances](t, svc, parent, "finances", Query{Status: "pending"})
	require.Len(t, fin.Payments, 1)
	assert.Equal(t, MoneyTotals{Total: 450, Paid: 300, Pending: 150, PaidRate: 66.7}, fin.Totals)
	require.Len(t, fin.Children, 1)
	assert.Equal(t, 450.0, fin.Children[0].Totals.Total)
}

func TestStudentScreens(t *testing.T) {
	svc := newTestService(t, sampleData())

	grades := build[StudentGrades](t, svc, pablo, "grades", Query{Type: string(school.GradeProject)})
	require.Len(t, grades.Grades, 1)
	assert.Equal(t, 85.0, grades.Average)
	require.Len(t, grades.Subjects, 2)
	assert.Equal(t, "Física", grades.Subjects[0].Subject)
	assert.Equal(t, 75.0, grades.Subjects[0].ProjectsAverage)

	acts := build[StudentActivities](t, svc, pablo, "activities", Query{Subject: "Física"})
	require.Len(t, acts.Activities, 1)
	assert.Equal(t, ActivityCounts{Total: 2, Active: 2, Overdue: 1}, acts.Counts)
}

func TestParseQuery(t *testing.T) {
	v := url.Values{}
	v.Set("q", "  garcía ")
	v.Set("role", "teacher")
	v.Set("month", "13")
	q := ParseQuery(v)
	assert.Equal(t, "garcía", q.Search)
	assert.Equal(t, "teacher", q.Role)
	assert.Zero(t, q.Month)

	v.Set("month", "6")
	assert.Equal(t, 6, ParseQuery(v).Month)
}
