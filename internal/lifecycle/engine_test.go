package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/maintenance-hub/internal/domain"
	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

type fakeTarget struct {
	equipment map[string]domain.EquipmentStatus
	calls     int
}

func (f *fakeTarget) SetEquipmentStatus(id string, status domain.EquipmentStatus) (domain.EquipmentStatus, bool) {
	f.calls++
	prev, ok := f.equipment[id]
	if !ok {
		return "", false
	}
	f.equipment[id] = status
	return prev, true
}

func newTarget() *fakeTarget {
	return &fakeTarget{equipment: map[string]domain.EquipmentStatus{"e1": domain.EquipmentStatusActive}}
}

func TestStrictTransitionTable(t *testing.T) {
	cases := []struct {
		from, to domain.RequestStatus
		ok       bool
	}{
		{domain.RequestStatusNew, domain.RequestStatusInProgress, true},
		{domain.RequestStatusNew, domain.RequestStatusScrap, true},
		{domain.RequestStatusNew, domain.RequestStatusRepaired, false},
		{domain.RequestStatusInProgress, domain.RequestStatusRepaired, true},
		{domain.RequestStatusInProgress, domain.RequestStatusScrap, true},
		{domain.RequestStatusInProgress, domain.RequestStatusNew, false},
		{domain.RequestStatusRepaired, domain.RequestStatusNew, false},
		{domain.RequestStatusRepaired, domain.RequestStatusScrap, false},
		{domain.RequestStatusScrap, domain.RequestStatusInProgress, false},
	}
	engine := NewEngine(true)
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			err := engine.Check(domain.Request{ID: "r1", Status: tc.from}, tc.to)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, Terminal(domain.RequestStatusRepaired))
	assert.True(t, Terminal(domain.RequestStatusScrap))
	assert.False(t, Terminal(domain.RequestStatusNew))
	assert.Equal(t, []domain.RequestStatus{domain.RequestStatusRepaired, domain.RequestStatusScrap}, NextStatuses(domain.RequestStatusInProgress))
}

func TestActions(t *testing.T) {
	assert.Equal(t, []domain.RequestStatus{domain.RequestStatusInProgress, domain.RequestStatusScrap}, Actions(domain.RequestStatusNew))
	assert.Equal(t, []domain.RequestStatus{domain.RequestStatusRepaired, domain.RequestStatusScrap}, Actions(domain.RequestStatusInProgress))
	assert.Equal(t, []domain.RequestStatus{}, Actions(domain.RequestStatusScrap))
	assert.Equal(t, []domain.RequestStatus{}, Actions(domain.RequestStatus("Lost")))
}

func TestPermissiveAllowsAnyKnownStatus(t *testing.T) {
	engine := NewEngine(false)
	req := domain.Request{ID: "r1", EquipmentID: "e1", Status: domain.RequestStatusRepaired}

	out, err := engine.Apply(&req, domain.RequestStatusNew, newTarget())
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, domain.RequestStatusNew, req.Status)

	err = engine.Check(req, domain.RequestStatus("Archived"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestApplyScrapCascades(t *testing.T) {
	engine := NewEngine(true)
	target := newTarget()
	req := domain.Request{ID: "r1", EquipmentID: "e1", Status: domain.RequestStatusInProgress}

	out, err := engine.Apply(&req, domain.RequestStatusScrap, target)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusScrap, req.Status)
	assert.Equal(t, domain.EquipmentStatusScrapped, target.equipment["e1"])
	require.Len(t, out.Effects, 1)
	assert.Equal(t, "e1", out.Effects[0].EquipmentID)
	assert.Equal(t, domain.EquipmentStatusActive, out.Effects[0].From)

	again, err := engine.Apply(&req, domain.RequestStatusScrap, target)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Empty(t, again.Effects)
	assert.Equal(t, domain.EquipmentStatusScrapped, target.equipment["e1"])
}

func TestApplyRejectedLeavesRequestUntouched(t *testing.T) {
	engine := NewEngine(true)
	target := newTarget()
	req := domain.Request{ID: "r1", EquipmentID: "e1", Status: domain.RequestStatusRepaired}

	_, err := engine.Apply(&req, domain.RequestStatusScrap, target)
	require.Error(t, err)
	assert.Equal(t, domain.RequestStatusRepaired, req.Status)
	assert.Zero(t, target.calls)
}

func TestApplyNonScrapHasNoSideEffect(t *testing.T) {
	engine := NewEngine(true)
	target := newTarget()
	req := domain.Request{ID: "r1", EquipmentID: "e1", Status: domain.RequestStatusNew}

	out, err := engine.Apply(&req, domain.RequestStatusInProgress, target)
	require.NoError(t, err)
	assert.Empty(t, out.Effects)
	assert.Zero(t, target.calls)
}

func TestScrapWithStaleEquipmentIsIgnored(t *testing.T) {
	engine := NewEngine(true)
	req := domain.Request{ID: "r1", EquipmentID: "gone", Status: domain.RequestStatusNew}

	out, err := engine.Apply(&req, domain.RequestStatusScrap, newTarget())
	require.NoError(t, err)
	assert.Empty(t, out.Effects)
	assert.Equal(t, domain.RequestStatusScrap, req.Status)
}

func TestCustomCascade(t *testing.T) {
	var fired []string
	engine := NewEngine(true, WithCascade(CascadeRule{
		Name:    "note_repair",
		Trigger: domain.RequestStatusRepaired,
		Apply: func(req domain.Request, _ Target) []Effect {
			fired = append(fired, req.ID)
			return nil
		},
	}))
	req := domain.Request{ID: "r9", Status: domain.RequestStatusInProgress}

	_, err := engine.Apply(&req, domain.RequestStatusRepaired, newTarget())
	require.NoError(t, err)
	assert.Equal(t, []string{"r9"}, fired)
}

func TestEquipmentCannotBeUnscrappedInStrictMode(t *testing.T) {
	item := domain.Equipment{ID: "e1", Status: domain.EquipmentStatusScrapped}

	err := NewEngine(true).CheckEquipment(item, domain.EquipmentStatusActive)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))

	assert.NoError(t, NewEngine(false).CheckEquipment(item, domain.EquipmentStatusActive))
}
