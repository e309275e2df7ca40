package school

import "slices"

// Group is an academic class group.
type Group struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Grade         string   `json:"grade"`
	Section       string   `json:"section"`
	TeacherID     string   `json:"teacher_id"`
	TeacherName   string   `json:"teacher_name"`
	Students      []string `json:"students"`
	Subjects      []string `json:"subjects"`
	TotalStudents int      `json:"total_students"`
	Classroom     string   `json:"classroom"`
	Schedule      string   `json:"schedule"`
	AcademicYear  string   `json:"academic_year"`
}

// HasStudent reports whether the student id is enrolled in the group.
func (g Group) HasStudent(id string) bool { return slices.Contains(g.Students, id) }

// GradeKind is the evaluation type of a grade.
type GradeKind string

const (
	GradeProveYourself GradeKind = "Prove Yourself"
	GradeActivity      GradeKind = "Actividad"
	GradeProject       GradeKind = "Proyecto"
	GradeEssay         GradeKind = "Ensayo"
)

// Grade is a single evaluation result.
type Grade struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Subject     string    `json:"subject"`
	TeacherID   string    `json:"teacher_id"`
	Grade       float64   `json:"grade"`
	MaxGrade    float64   `json:"max_grade"`
	Type        GradeKind `json:"type"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Period      string    `json:"period"`
}

// AttendanceStatus is the outcome of an attendance check.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance is one attendance record.
type Attendance struct {
	ID            string           `json:"id"`
	StudentID     string           `json:"student_id"`
	StudentName   string           `json:"student_name"`
	Date          string           `json:"date"`
	Status        AttendanceStatus `json:"status"`
	ArrivalTime   string           `json:"arrival_time,omitempty"`
	DepartureTime string           `json:"departure_time,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	Justified     bool             `json:"justified,omitempty"`
	Subject       string           `json:"subject,omitempty"`
	TeacherID     string           `json:"teacher_id,omitempty"`
}

// AttendanceStats is the precomputed daily summary shipped with the attendance collection.
type AttendanceStats struct {
	TotalStudents  int     `json:"total_students"`
	PresentToday   int     `json:"present_today"`
	AbsentToday    int     `json:"absent_today"`
	LateToday      int     `json:"late_today"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// ActivityStatus is the lifecycle state of an activity.
type ActivityStatus string

const (
	ActivityActive    ActivityStatus = "active"
	ActivityCompleted ActivityStatus = "completed"
	ActivityOverdue   ActivityStatus = "overdue"
)

// Activity is an assignment handed to a set of students.
type Activity struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Subject          string         `json:"subject"`
	TeacherID        string         `json:"teacher_id"`
	TeacherName      string         `json:"teacher_name"`
	Group            string         `json:"group"`
	Type             string         `json:"type"`
	DueDate          string         `json:"due_date"`
	AssignedDate     string         `json:"assigned_date"`
	Status           ActivityStatus `json:"status"`
	MaxPoints        int            `json:"max_points"`
	StudentsAssigned []string       `json:"students_assigned"`
	Materials        []string       `json:"materials"`
}

// AssignedTo reports whether the student id is assigned the activity.
func (a Activity) AssignedTo(id string) bool { return slices.Contains(a.StudentsAssigned, id) }

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// Payment is a fee charged to a parent for a student.
type Payment struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"student_id"`
	StudentName   string        `json:"student_name"`
	ParentID      string        `json:"parent_id"`
	ParentName    string        `json:"parent_name"`
	Concept       string        `json:"concept"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	DueDate       string        `json:"due_date"`
	PaidDate      *string       `json:"paid_date"`
	Status        PaymentStatus `json:"status"`
	PaymentMethod *string       `json:"payment_method"`
	AcademicYear  string        `json:"academic_year"`
}

// FinancialSummary is the precomputed school-wide billing summary.
type FinancialSummary struct {
	TotalExpected  float64 `json:"total_expected"`
	Collected      float64 `json:"collected"`
	Pending        float64 `json:"pending"`
	Overdue        float64 `json:"overdue"`
	CollectionRate float64 `json:"collection_rate"`
}

// MessageStatus is the delivery state of a message.
type MessageStatus string

const (
	MessageSent   MessageStatus = "sent"
	MessageRead   MessageStatus = "read"
	MessageUnread MessageStatus = "unread"
)

// Message is an internal portal message.
type Message struct {
	ID       string        `json:"id"`
	FromID   string        `json:"from_id"`
	FromName string        `json:"from_name"`
	FromRole Role          `json:"from_role"`
	ToID     string        `json:"to_id"`
	ToName   string        `json:"to_name"`
	ToRole   Role          `json:"to_role"`
	Subject  string        `json:"subject"`
	Content  string        `json:"content"`
	Date     string        `json:"date"`
	Status   MessageStatus `json:"status"`
	Priority string        `json:"priority"`
	ThreadID string        `json:"thread_id"`
}

// Involves reports whether the user id sent or received the message.
func (m Message) Involves(id string) bool { return m.FromID == id || m.ToID == id }

// AcademicPeriod is one term of the academic year.
type AcademicPeriod struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SchoolInfo is the institutional profile.
type SchoolInfo struct {
	Name          string `json:"name"`
	Slogan        string `json:"slogan"`
	Logo          string `json:"logo"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	AcademicYear  string `json:"academic_year"`
	CurrentPeriod string `json:"current_period"`
	Director      string `json:"director"`
	ViceDirector  string `json:"vice_director"`
	Founded       string `json:"founded"`
	StudentsCount int    `json:"students_count"`
	TeachersCount int    `json:"teachers_count"`
	StaffCount    int    `json:"staff_count"`
}

// Config is the school configuration document.
type Config struct {
	School          SchoolInfo       `json:"school"`
	AcademicPeriods []AcademicPeriod `json:"academic_periods"`
	Subjects        []string         `json:"subjects"`
	GradeLevels     []string         `json:"grade_levels"`
}
