package screens

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// need selects the collections a screen reads.
type need uint16

const (
	needUsers need = 1 << iota
	needGroups
	needGrades
	needAttendance
	needActivities
	needPayments
	needMessages
)

// collections holds one build's fetched data.
type collections struct {
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

// fetch loads the selected collections concurrently. The first failure
// cancels the remaining fetches.
func (s *Service) fetch(ctx context.Context, n need) (*collections, error) {
	c := &collections{}
	g, ctx := errgroup.WithContext(ctx)

	if n&needUsers != 0 {
		g.Go(func() (err error) {
			c.users, err = s.data.FetchAllUsers(ctx)
			return wrapFetch("users", err)
		})
	}
	if n&needGroups != 0 {
		g.Go(func() (err error) {
			c.groups, err = s.data.Groups(ctx)
			return wrapFetch("groups", err)
		})
	}
	if n&needGrades != 0 {
		g.Go(func() (err error) {
			c.grades, err = s.data.Grades(ctx)
			return wrapFetch("grades", err)
		})
	}
	if n&needAttendance != 0 {
		g.Go(func() (err error) {
			c.attendance, c.stats, err = s.data.Attendance(ctx)
			return wrapFetch("attendance", err)
		})
	}
	if n&needActivities != 0 {
		g.Go(func() (err error) {
			c.activities, err = s.data.Activities(ctx)
			return wrapFetch("activities", err)
		})
	}
	if n&needPayments != 0 {
		g.Go(func() (err error) {
			c.payments, c.summary, err = s.data.Payments(ctx)
			return wrapFetch("payments", err)
		})
	}
	if n&needMessages != 0 {
		g.Go(func() (err error) {
			c.messages, err = s.data.Messages(ctx)
			return wrapFetch("messages", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

func wrapFetch(collection string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", collection, err)
}
