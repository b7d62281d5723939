package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

type clientListerStub struct {
	clientIDs []string
}

func (s clientListerStub) ListClientIDsWithActivePatterns(ctx context.Context) ([]string, error) {
	return s.clientIDs, nil
}

func TestMaintenanceServiceSweepTopsUpSchedules(t *testing.T) {
	generator := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), IsActive: true},
	})

	settings := &settingsRepoStub{items: map[string]*models.SchedulingSettings{
		"client-1": {ClientID: "client-1", WeeksAhead: 2},
	}}
	maintenance := NewMaintenanceService(
		clientListerStub{clientIDs: []string{"client-1"}},
		settings,
		generator.service,
		MaintenanceConfig{Interval: time.Hour, Workers: 1, DefaultWeeksAhead: 8},
		zap.NewNop(),
	)
	maintenance.now = func() time.Time { return day("2024-06-15") }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	maintenance.Start(ctx)
	defer maintenance.Stop()

	maintenance.Sweep(ctx)

	// Two weeks ahead from June 15 covers June 15 through June 29 inclusive.
	want := daysBetweenInclusive(day("2024-06-15"), day("2024-06-29"))
	require.Eventually(t, func() bool {
		return generator.shifts.count() == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMaintenanceServiceFallsBackToDefaultWindow(t *testing.T) {
	generator := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), IsActive: true},
	})

	maintenance := NewMaintenanceService(
		clientListerStub{clientIDs: []string{"client-1"}},
		&settingsRepoStub{},
		generator.service,
		MaintenanceConfig{Interval: time.Hour, Workers: 1, DefaultWeeksAhead: 1},
		zap.NewNop(),
	)
	maintenance.now = func() time.Time { return day("2024-06-15") }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	maintenance.Start(ctx)
	defer maintenance.Stop()

	maintenance.Sweep(ctx)

	want := daysBetweenInclusive(day("2024-06-15"), day("2024-06-22"))
	require.Eventually(t, func() bool {
		return generator.shifts.count() == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMaintenanceServiceSweepBeforeStart(t *testing.T) {
	maintenance := NewMaintenanceService(
		clientListerStub{clientIDs: []string{"client-1"}},
		&settingsRepoStub{},
		newGeneratorFixture(t, nil).service,
		MaintenanceConfig{Interval: time.Hour, Workers: 1, DefaultWeeksAhead: 8},
		zap.NewNop(),
	)

	// Enqueue failures are logged, not fatal.
	assert.NotPanics(t, func() { maintenance.Sweep(context.Background()) })
}
