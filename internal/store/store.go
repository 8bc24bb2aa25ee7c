// Package store holds the process-wide maintenance state: teams, equipment
// and requests. Every mutation goes through the lifecycle engine and is
// announced on the event dispatcher once it has been fully applied.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/events"
	"github.com/fieldworks/maintenance-hub/internal/lifecycle"
	"github.com/fieldworks/maintenance-hub/internal/views"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

// Options configures a Store. Zero values get sensible defaults.
type Options struct {
	Engine     *lifecycle.Engine
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
	NewID      IDFunc
}

// Store owns the three entity collections.
//
// Event handlers must pass the context they receive to any store call. A
// handler that mutates the store with a fresh context blocks on the write
// lock held by the publishing mutation and deadlocks instead of getting
// REENTRANT_MUTATION.
type Store struct {
	// writeMu serialises mutations together with their notifications so
	// observers see changes in the order they were applied.
	writeMu sync.Mutex
	mu      sync.RWMutex

	teams     []domain.Team
	equipment []domain.Equipment
	requests  []domain.Request
	issued    map[string]struct{}

	engine     *lifecycle.Engine
	dispatcher events.Dispatcher
	logger     *zap.Logger
	clock      func() time.Time
	newID      IDFunc
}

// New builds a store populated from seed.
func New(opts Options, seed Seed) *Store {
	s := &Store{
		engine:     opts.Engine,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
		clock:      opts.Clock,
		newID:      opts.NewID,
		issued:     make(map[string]struct{}),
	}
	if s.engine == nil {
		s.engine = lifecycle.NewEngine(true)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = RandomID
	}

	for _, team := range seed.Teams {
		s.teams = append(s.teams, team.Clone())
	}
	s.equipment = append([]domain.Equipment(nil), seed.Equipment...)
	s.requests = append([]domain.Request(nil), seed.Requests...)
	for _, item := range s.equipment {
		s.issued[item.ID] = struct{}{}
	}
	for _, req := range s.requests {
		s.issued[req.ID] = struct{}{}
	}
	return s
}

// Strict reports whether the store enforces transitions and references.
func (s *Store) Strict() bool {
	return s.engine.Strict()
}

// Now returns the store clock reading.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Teams returns a copy of the team collection.
func (s *Store) Teams() []domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTeams(s.teams)
}

// Equipment returns a copy of the equipment collection.
func (s *Store) Equipment() []domain.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Equipment(nil), s.equipment...)
}

// Requests returns a copy of the request collection.
func (s *Store) Requests() []domain.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Request(nil), s.requests...)
}

// Snapshot returns a consistent copy of all three collections.
func (s *Store) Snapshot() views.Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return views.Collections{
		Teams:     cloneTeams(s.teams),
		Equipment: append([]domain.Equipment(nil), s.equipment...),
		Requests:  append([]domain.Request(nil), s.requests...),
	}
}

// FindEquipment looks up one asset by id.
func (s *Store) FindEquipment(id string) (domain.Equipment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FindEquipment(s.equipment, id)
}

// FindRequest looks up one request by id.
func (s *Store) FindRequest(id string) (domain.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FindRequest(s.requests, id)
}

// AddEquipment assigns a fresh id and appends the asset.
func (s *Store) AddEquipment(ctx context.Context, input domain.EquipmentInput) (domain.Equipment, error) {
	if events.InDispatch(ctx) {
		return domain.Equipment{}, apperrors.NewReentrantMutation()
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	item, err := s.addEquipment(input)
	if err != nil {
		s.logRejected("add_equipment", err)
		return domain.Equipment{}, err
	}
	s.logger.Debug("equipment added", zap.String("equipment_id", item.ID), zap.String("serial_number", item.SerialNumber))
	s.publish(ctx, events.Event{
		Type:     events.EventEquipmentAdded,
		EntityID: item.ID,
		Payload: events.EquipmentAddedPayload{
			Name:              item.Name,
			SerialNumber:      item.SerialNumber,
			Department:        item.Department,
			MaintenanceTeamID: item.MaintenanceTeamID,
		},
	})
	return item, nil
}

func (s *Store) addEquipment(input domain.EquipmentInput) (domain.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Status == "" {
		input.Status = domain.EquipmentStatusActive
	}
	if !input.Status.Valid() {
		return domain.Equipment{}, apperrors.NewValidationError("unknown equipment status", map[string]any{"status": input.Status})
	}
	if s.engine.Strict() {
		team, ok := domain.FindTeam(s.teams, input.MaintenanceTeamID)
		if !ok {
			return domain.Equipment{}, apperrors.NewDanglingReference("maintenanceTeamId", input.MaintenanceTeamID)
		}
		if _, ok := team.Technician(input.DefaultTechnicianID); !ok {
			return domain.Equipment{}, apperrors.NewDanglingReference("defaultTechnicianId", input.DefaultTechnicianID)
		}
	}

	item := domain.Equipment{
		ID:                  s.issue(equipmentIDPrefix),
		Name:                strings.TrimSpace(input.Name),
		SerialNumber:        strings.TrimSpace(input.SerialNumber),
		PurchaseDate:        input.PurchaseDate,
		WarrantyUntil:       input.WarrantyUntil,
		Location:            strings.TrimSpace(input.Location),
		Department:          strings.TrimSpace(input.Department),
		AssignedEmployee:    input.AssignedEmployee,
		MaintenanceTeamID:   input.MaintenanceTeamID,
		DefaultTechnicianID: input.DefaultTechnicianID,
		Status:              input.Status,
		Category:            strings.TrimSpace(input.Category),
	}
	s.equipment = append(s.equipment, item)
	return item, nil
}

// AddRequest assigns a fresh id and appends the request with status New,
// whatever status the caller supplied. Missing team and technician are
// taken from the equipment defaults.
func (s *Store) AddRequest(ctx context.Context, input domain.RequestInput) (domain.Request, error) {
	if events.InDispatch(ctx) {
		return domain.Request{}, apperrors.NewReentrantMutation()
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	req, err := s.addRequest(input)
	if err != nil {
		s.logRejected("add_request", err)
		return domain.Request{}, err
	}
	s.logger.Debug("request created", zap.String("request_id", req.ID), zap.String("equipment_id", req.EquipmentID))
	s.publish(ctx, events.Event{
		Type:     events.EventRequestCreated,
		EntityID: req.ID,
		Payload: events.RequestCreatedPayload{
			EquipmentID:   req.EquipmentID,
			TeamID:        req.TeamID,
			TechnicianID:  req.TechnicianID,
			Type:          req.Type,
			Priority:      req.Priority,
			ScheduledDate: req.ScheduledDate,
			Subject:       req.Subject,
		},
	})
	return req, nil
}

func (s *Store) addRequest(input domain.RequestInput) (domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, hasEquipment := domain.FindEquipment(s.equipment, input.EquipmentID)
	if hasEquipment {
		if input.TeamID == "" {
			input.TeamID = item.MaintenanceTeamID
		}
		if input.TechnicianID == "" {
			input.TechnicianID = item.DefaultTechnicianID
		}
	}
	if input.Type == "" {
		input.Type = domain.RequestTypeCorrective
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if input.ScheduledDate == "" {
		input.ScheduledDate = s.clock().Format(views.DateLayout)
	}

	if s.engine.Strict() {
		if !input.Type.Valid() {
			return domain.Request{}, apperrors.NewValidationError("unknown request type", map[string]any{"type": input.Type})
		}
		if !input.Priority.Valid() {
			return domain.Request{}, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
		}
		if input.DurationHours <= 0 {
			return domain.Request{}, apperrors.NewValidationError("duration must be positive", map[string]any{"duration": input.DurationHours})
		}
		if !hasEquipment {
			return domain.Request{}, apperrors.NewDanglingReference("equipmentId", input.EquipmentID)
		}
		if item.Status == domain.EquipmentStatusScrapped {
			return domain.Request{}, apperrors.NewConflict("equipment is scrapped", map[string]any{"equipment_id": item.ID})
		}
		team, ok := domain.FindTeam(s.teams, input.TeamID)
		if !ok {
			return domain.Request{}, apperrors.NewDanglingReference("teamId", input.TeamID)
		}
		if _, ok := team.Technician(input.TechnicianID); !ok {
			return domain.Request{}, apperrors.NewDanglingReference("technicianId", input.TechnicianID)
		}
	}

	req := domain.Request{
		ID:            s.issue(requestIDPrefix),
		Subject:       strings.TrimSpace(input.Subject),
		EquipmentID:   input.EquipmentID,
		TeamID:        input.TeamID,
		TechnicianID:  input.TechnicianID,
		Type:          input.Type,
		ScheduledDate: input.ScheduledDate,
		DurationHours: input.DurationHours,
		Status:        domain.RequestStatusNew,
		Priority:      input.Priority,
		Notes:         input.Notes,
	}
	s.requests = append(s.requests, req)
	return req, nil
}

// ChangeRequestStatus moves a request to status through the lifecycle
// engine. A Scrap transition scraps the request's equipment in the same
// step. In permissive mode an unknown id is a silent no-op.
func (s *Store) ChangeRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.Request, error) {
	if events.InDispatch(ctx) {
		return domain.Request{}, apperrors.NewReentrantMutation()
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	req, out, found, err := s.changeRequestStatus(id, status)
	if err != nil {
		s.logRejected("change_request_status", err, zap.String("request_id", id))
		return domain.Request{}, err
	}
	if !found {
		s.logger.Debug("status change for unknown request ignored", zap.String("request_id", id))
		return domain.Request{}, nil
	}
	if !out.Changed && len(out.Effects) == 0 {
		return req, nil
	}

	cascaded := make([]string, 0, len(out.Effects))
	for _, effect := range out.Effects {
		cascaded = append(cascaded, effect.EquipmentID)
	}
	s.logger.Debug("request status changed",
		zap.String("request_id", req.ID),
		zap.String("old_status", string(out.From)),
		zap.String("new_status", string(out.To)),
		zap.Strings("cascaded", cascaded))

	batch := []events.Event{{
		Type:     events.EventRequestStatusChanged,
		EntityID: req.ID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: out.From,
			NewStatus: out.To,
			Cascaded:  cascaded,
		},
	}}
	for _, effect := range out.Effects {
		batch = append(batch, events.Event{
			Type:     events.EventEquipmentStatusChanged,
			EntityID: effect.EquipmentID,
			Payload: events.EquipmentStatusChangedPayload{
				OldStatus: effect.From,
				NewStatus: effect.To,
				Cause:     req.ID,
			},
		})
	}
	s.publish(ctx, batch...)
	return req, nil
}

func (s *Store) changeRequestStatus(id string, status domain.RequestStatus) (domain.Request, lifecycle.Outcome, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.requestIndex(id)
	if idx < 0 {
		if s.engine.Strict() {
			return domain.Request{}, lifecycle.Outcome{}, false, apperrors.NewNotFound("request", map[string]any{"request_id": id})
		}
		return domain.Request{}, lifecycle.Outcome{}, false, nil
	}

	// Work on a copy so a rejected change never touches the collection.
	req := s.requests[idx]
	out, err := s.engine.Apply(&req, status, lockedTarget{s})
	if err != nil {
		return domain.Request{}, lifecycle.Outcome{}, true, err
	}
	s.requests[idx] = req
	return req, out, true, nil
}

// SetEquipmentStatus updates an asset's status directly. In permissive
// mode an unknown id is a silent no-op.
func (s *Store) SetEquipmentStatus(ctx context.Context, id string, status domain.EquipmentStatus) (domain.Equipment, error) {
	if events.InDispatch(ctx) {
		return domain.Equipment{}, apperrors.NewReentrantMutation()
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	item, previous, found, err := s.setEquipmentStatus(id, status)
	if err != nil {
		s.logRejected("set_equipment_status", err, zap.String("equipment_id", id))
		return domain.Equipment{}, err
	}
	if !found {
		s.logger.Debug("status change for unknown equipment ignored", zap.String("equipment_id", id))
		return domain.Equipment{}, nil
	}
	if previous == item.Status {
		return item, nil
	}
	s.logger.Debug("equipment status changed",
		zap.String("equipment_id", item.ID),
		zap.String("old_status", string(previous)),
		zap.String("new_status", string(item.Status)))
	s.publish(ctx, events.Event{
		Type:     events.EventEquipmentStatusChanged,
		EntityID: item.ID,
		Payload: events.EquipmentStatusChangedPayload{
			OldStatus: previous,
			NewStatus: item.Status,
		},
	})
	return item, nil
}

func (s *Store) setEquipmentStatus(id string, status domain.EquipmentStatus) (domain.Equipment, domain.EquipmentStatus, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.equipmentIndex(id)
	if idx < 0 {
		if s.engine.Strict() {
			return domain.Equipment{}, "", false, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": id})
		}
		return domain.Equipment{}, "", false, nil
	}
	if err := s.engine.CheckEquipment(s.equipment[idx], status); err != nil {
		return domain.Equipment{}, "", true, err
	}
	previous := s.equipment[idx].Status
	s.equipment[idx].Status = status
	return s.equipment[idx], previous, true, nil
}

func (s *Store) requestIndex(id string) int {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) equipmentIndex(id string) int {
	for i := range s.equipment {
		if s.equipment[i].ID == id {
			return i
		}
	}
	return -1
}

// lockedTarget exposes equipment writes to cascades while mu is held.
type lockedTarget struct {
	s *Store
}

func (t lockedTarget) SetEquipmentStatus(id string, status domain.EquipmentStatus) (domain.EquipmentStatus, bool) {
	idx := t.s.equipmentIndex(id)
	if idx < 0 {
		return "", false
	}
	previous := t.s.equipment[idx].Status
	t.s.equipment[idx].Status = status
	return previous, true
}

func (s *Store) publish(ctx context.Context, batch ...events.Event) {
	if s.dispatcher == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, event := range batch {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = s.clock()
		}
		_ = s.dispatcher.Publish(ctx, event)
	}
}

func (s *Store) logRejected(op string, err error, fields ...zap.Field) {
	domainErr := apperrors.ToDomainError(err)
	fields = append(fields, zap.String("op", op), zap.String("code", domainErr.Code), zap.Error(err))
	s.logger.Warn("mutation rejected", fields...)
}

func cloneTeams(teams []domain.Team) []domain.Team {
	out := make([]domain.Team, 0, len(teams))
	for _, team := range teams {
		out = append(out, team.Clone())
	}
	return out
}
