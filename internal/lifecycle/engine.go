// Package lifecycle owns the request status machine and the cross-entity
// cascades that fire when a request reaches a given status.
package lifecycle

import (
	"github.com/fieldworks/maintenance-hub/internal/domain"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

var allowedTransitions = map[domain.RequestStatus][]domain.RequestStatus{
	domain.RequestStatusNew:        {domain.RequestStatusInProgress, domain.RequestStatusScrap},
	domain.RequestStatusInProgress: {domain.RequestStatusRepaired, domain.RequestStatusScrap},
	domain.RequestStatusRepaired:   {},
	domain.RequestStatusScrap:      {},
}

var allowedEquipmentTransitions = map[domain.EquipmentStatus][]domain.EquipmentStatus{
	domain.EquipmentStatusActive:   {domain.EquipmentStatusScrapped},
	domain.EquipmentStatusScrapped: {},
}

// Target is the slice of store state a cascade may mutate. It is only ever
// handed out while the store holds its write lock.
type Target interface {
	// SetEquipmentStatus updates an asset and returns its previous status.
	// found is false when the id is unknown.
	SetEquipmentStatus(id string, status domain.EquipmentStatus) (previous domain.EquipmentStatus, found bool)
}

// Effect records one secondary mutation performed by a cascade.
type Effect struct {
	Rule        string
	EquipmentID string
	From        domain.EquipmentStatus
	To          domain.EquipmentStatus
}

// CascadeRule fires Apply whenever a request is moved to Trigger.
type CascadeRule struct {
	Name    string
	Trigger domain.RequestStatus
	Apply   func(req domain.Request, target Target) []Effect
}

// ScrapEquipmentRule marks the request's equipment as scrapped. The cascade
// is one-way: nothing ever flips the equipment back.
var ScrapEquipmentRule = CascadeRule{
	Name:    "scrap_equipment",
	Trigger: domain.RequestStatusScrap,
	Apply: func(req domain.Request, target Target) []Effect {
		previous, found := target.SetEquipmentStatus(req.EquipmentID, domain.EquipmentStatusScrapped)
		if !found || previous == domain.EquipmentStatusScrapped {
			return nil
		}
		return []Effect{{
			Rule:        "scrap_equipment",
			EquipmentID: req.EquipmentID,
			From:        previous,
			To:          domain.EquipmentStatusScrapped,
		}}
	},
}

// Outcome describes an applied status change.
type Outcome struct {
	From    domain.RequestStatus
	To      domain.RequestStatus
	Changed bool
	Effects []Effect
}

// Engine validates status changes and runs cascades.
type Engine struct {
	strict   bool
	cascades []CascadeRule
}

// Option customizes an Engine.
type Option func(*Engine)

// WithCascade appends a cascade rule after the defaults.
func WithCascade(rule CascadeRule) Option {
	return func(e *Engine) {
		e.cascades = append(e.cascades, rule)
	}
}

// NewEngine builds an engine. In strict mode every change is checked against
// the transition table; otherwise any known status may be set on any request.
func NewEngine(strict bool, opts ...Option) *Engine {
	e := &Engine{
		strict:   strict,
		cascades: []CascadeRule{ScrapEquipmentRule},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether the engine enforces the transition tables.
func (e *Engine) Strict() bool {
	return e.strict
}

// CanTransition reports whether the table allows from -> to.
func CanTransition(from, to domain.RequestStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from the given one.
func NextStatuses(from domain.RequestStatus) []domain.RequestStatus {
	return append([]domain.RequestStatus(nil), allowedTransitions[from]...)
}

// Terminal reports whether no transition leaves s.
func Terminal(s domain.RequestStatus) bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// Actions lists the status changes a board offers for a request in from.
// Terminal and unknown statuses offer none.
func Actions(from domain.RequestStatus) []domain.RequestStatus {
	if Terminal(from) || !from.Valid() {
		return []domain.RequestStatus{}
	}
	return NextStatuses(from)
}

// Check validates a request status change without applying it. Setting the
// current status again is always accepted.
func (e *Engine) Check(req domain.Request, to domain.RequestStatus) error {
	if !to.Valid() {
		return apperrors.NewValidationError("unknown request status", map[string]any{"status": to})
	}
	if !e.strict || req.Status == to {
		return nil
	}
	if !CanTransition(req.Status, to) {
		return apperrors.NewInvalidTransition(string(req.Status), string(to), map[string]any{"request_id": req.ID})
	}
	return nil
}

// CheckEquipment validates a direct equipment status change.
func (e *Engine) CheckEquipment(item domain.Equipment, to domain.EquipmentStatus) error {
	if !to.Valid() {
		return apperrors.NewValidationError("unknown equipment status", map[string]any{"status": to})
	}
	if !e.strict || item.Status == to {
		return nil
	}
	for _, candidate := range allowedEquipmentTransitions[item.Status] {
		if candidate == to {
			return nil
		}
	}
	return apperrors.NewInvalidTransition(string(item.Status), string(to), map[string]any{"equipment_id": item.ID})
}

// Apply checks the change, writes the new status into req and runs every
// cascade triggered by it. Cascades are idempotent, so re-applying the
// current status re-asserts their effects without producing new ones.
func (e *Engine) Apply(req *domain.Request, to domain.RequestStatus, target Target) (Outcome, error) {
	if err := e.Check(*req, to); err != nil {
		return Outcome{}, err
	}
	out := Outcome{From: req.Status, To: to, Changed: req.Status != to}
	req.Status = to
	for _, rule := range e.cascades {
		if rule.Trigger != to {
			continue
		}
		out.Effects = append(out.Effects, rule.Apply(*req, target)...)
	}
	return out, nil
}
