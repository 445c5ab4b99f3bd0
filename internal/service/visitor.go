package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/utils"
)

// maxPassCodeAttempts bounds how many fresh codes Register tries
// before giving up with ErrCodeSpaceExhausted.
const maxPassCodeAttempts = 25

// VisitorService manages the visitor record lifecycle and guarantees
// pass-code uniqueness. All operations are single-row writes; no
// multi-step rollback is needed.
type VisitorService struct {
	Visitors *repository.VisitorRepo

	// newPassCode generates candidate gate codes. Tests swap it out
	// to force collisions.
	newPassCode func() (string, error)
}

func NewVisitorService(visitors *repository.VisitorRepo) *VisitorService {
	if visitors == nil {
		panic("nil repository passed to NewVisitorService")
	}
	return &VisitorService{Visitors: visitors, newPassCode: utils.NewPassCode}
}

// RegisterInput carries the fields accepted when registering a
// visitor. byStaff controls the initial status: staff-registered
// visitors are pre-approved, resident-registered ones await a
// decision.
type RegisterInput struct {
	HostID     uint64
	Name       string
	Phone      *string
	Purpose    *string
	Category   string
	ExpectedAt time.Time
	ByStaff    bool
}

var visitorCategories = map[string]bool{
	model.VisitorGuest:       true,
	model.VisitorDelivery:    true,
	model.VisitorHomeService: true,
	model.VisitorDailyHelp:   true,
	model.VisitorWorker:      true,
	model.VisitorOther:       true,
}

// Register creates a visitor with a freshly generated pass code.
// Code generation is retried while the insert collides with an
// existing code; after maxPassCodeAttempts collisions the operation
// fails with ErrCodeSpaceExhausted.
func (s *VisitorService) Register(ctx context.Context, in RegisterInput) (model.Visitor, error) {
	var zero model.Visitor
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return zero, fmt.Errorf("%w: name is required", errInvalidArgument)
	}
	in.Category = strings.ToUpper(strings.TrimSpace(in.Category))
	if in.Category == "" {
		in.Category = model.VisitorOther
	}
	if !visitorCategories[in.Category] {
		return zero, fmt.Errorf("%w: unknown category %q", errInvalidArgument, in.Category)
	}
	if in.ExpectedAt.IsZero() {
		in.ExpectedAt = time.Now().UTC()
	}

	status := model.VisitorPending
	if in.ByStaff {
		status = model.VisitorApproved
	}

	for attempt := 0; attempt < maxPassCodeAttempts; attempt++ {
		code, err := s.newPassCode()
		if err != nil {
			return zero, err
		}
		v := model.Visitor{
			HostID:     in.HostID,
			Name:       in.Name,
			Phone:      in.Phone,
			Purpose:    in.Purpose,
			Category:   in.Category,
			Status:     status,
			PassCode:   code,
			ExpectedAt: in.ExpectedAt,
		}
		err = s.Visitors.Create(ctx, &v)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, repository.ErrPassCodeExists) {
			return zero, err
		}
	}
	return zero, ErrCodeSpaceExhausted
}

// Decide records a staff approval or denial. The overwrite is
// deliberately permissive: deciding an already-decided visitor simply
// replaces the status.
func (s *VisitorService) Decide(ctx context.Context, visitorID uint64, approve bool) (model.Visitor, error) {
	status := model.VisitorDenied
	if approve {
		status = model.VisitorApproved
	}
	if err := s.Visitors.UpdateStatus(ctx, visitorID, status); err != nil {
		return model.Visitor{}, err
	}
	return s.Visitors.GetByID(ctx, visitorID)
}

// CheckIn transitions the visitor to CHECKED_IN regardless of prior
// status.
func (s *VisitorService) CheckIn(ctx context.Context, visitorID uint64) (model.Visitor, error) {
	if err := s.Visitors.UpdateStatus(ctx, visitorID, model.VisitorCheckedIn); err != nil {
		return model.Visitor{}, err
	}
	return s.Visitors.GetByID(ctx, visitorID)
}

// CheckOut transitions the visitor to CHECKED_OUT and stamps the exit
// time. The stamp is written once; repeating the call keeps the
// original exit time.
func (s *VisitorService) CheckOut(ctx context.Context, visitorID uint64) (model.Visitor, error) {
	if err := s.Visitors.CheckOut(ctx, visitorID, time.Now().UTC()); err != nil {
		return model.Visitor{}, err
	}
	return s.Visitors.GetByID(ctx, visitorID)
}

// Stats aggregates gate activity over a local midnight-to-midnight
// "today" window plus a rolling 30-day window ending tonight.
func (s *VisitorService) Stats(ctx context.Context, now time.Time) (model.VisitorStats, error) {
	dayStart, dayEnd := DayBounds(now)
	monthStart := dayEnd.AddDate(0, 0, -30)
	return s.Visitors.Stats(ctx, dayStart, dayEnd, monthStart)
}

// DayBounds returns the local midnight at the start of t's day and
// the midnight after it.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
