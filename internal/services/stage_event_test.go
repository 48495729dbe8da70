package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solar-crm/internal/entities"
	"solar-crm/internal/workflow"
)

func sptr(s string) *string { return &s }

func TestTimeline_StatusTransition(t *testing.T) {
	eventRepo := &fakeEventRepo{created: []entities.StageEvent{
		{
			ID:             2,
			InstallationID: 42,
			StageKey:       workflow.StageCommercialProposal,
			OldStatus:      sptr("sent"),
			NewStatus:      sptr("approved"),
			ActorName:      "Ігор Мельник",
			CreatedAt:      time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:             1,
			InstallationID: 42,
			StageKey:       workflow.StageCommercialProposal,
			NewStatus:      sptr("sent"),
			ActorName:      "Ігор Мельник",
			CreatedAt:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewStageEventService(eventRepo, &fakeEmployeeRepo{}, zap.NewNop())

	timeline, err := svc.Timeline(context.Background(), 42, workflow.StageCommercialProposal)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	require.NotNil(t, timeline[0].StatusChange)
	assert.Equal(t, "sent", timeline[0].StatusChange.Old)
	assert.Equal(t, "approved", timeline[0].StatusChange.New)
	assert.Equal(t, "Відправлено", timeline[0].StatusChange.OldLabel)
	assert.Equal(t, "Погоджено", timeline[0].StatusChange.NewLabel)
	assert.Nil(t, timeline[0].ResponsibleChange)

	// Первое событие: статуса "до" не было, метка - прочерк.
	require.NotNil(t, timeline[1].StatusChange)
	assert.Equal(t, "—", timeline[1].StatusChange.OldLabel)
	assert.Equal(t, "Відправлено", timeline[1].StatusChange.NewLabel)
}

// Переход не рендерится, когда значения различаются только регистром
// или пробелами.
func TestTimeline_NormalizedEqualityHidesTransition(t *testing.T) {
	eventRepo := &fakeEventRepo{created: []entities.StageEvent{
		{
			ID:        1,
			StageKey:  workflow.StageContract,
			OldStatus: sptr("Signed "),
			NewStatus: sptr("signed"),
			Comment:   sptr("Додано скан"),
		},
	}}
	svc := NewStageEventService(eventRepo, &fakeEmployeeRepo{}, zap.NewNop())

	timeline, err := svc.Timeline(context.Background(), 42, workflow.StageContract)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Nil(t, timeline[0].StatusChange)
	require.NotNil(t, timeline[0].Comment)
	assert.Equal(t, "Додано скан", *timeline[0].Comment)
}

// Смена ответственного: имена резолвятся по справочнику сотрудников,
// удалённый сотрудник показывается прочерком.
func TestTimeline_ResponsibleTransition(t *testing.T) {
	eventRepo := &fakeEventRepo{created: []entities.StageEvent{
		{
			ID:               1,
			StageKey:         workflow.StageInstallation,
			OldResponsibleID: uptr(7),
			NewResponsibleID: uptr(404),
		},
	}}
	employeeRepo := &fakeEmployeeRepo{byID: map[uint64]*entities.Employee{
		7: {ID: 7, FullName: "Тарас Шевчук"},
	}}
	svc := NewStageEventService(eventRepo, employeeRepo, zap.NewNop())

	timeline, err := svc.Timeline(context.Background(), 42, workflow.StageInstallation)
	require.NoError(t, err)
	require.Len(t, timeline, 1)

	change := timeline[0].ResponsibleChange
	require.NotNil(t, change)
	assert.Equal(t, "employee:7", change.Old)
	assert.Equal(t, "employee:404", change.New)
	assert.Equal(t, "Тарас Шевчук", change.OldLabel)
	assert.Equal(t, "—", change.NewLabel)
}

// Фотографии события объединяются со своими file_id по позиции.
func TestTimeline_PhotosPairedWithFileIDs(t *testing.T) {
	eventRepo := &fakeEventRepo{created: []entities.StageEvent{
		{
			ID:           1,
			StageKey:     workflow.StageSiteSurvey,
			NewStatus:    sptr("done"),
			Photos:       []string{"https://drive/view/1", "https://drive/view/2"},
			PhotoFileIDs: []string{"file-1"},
		},
	}}
	svc := NewStageEventService(eventRepo, &fakeEmployeeRepo{}, zap.NewNop())

	timeline, err := svc.Timeline(context.Background(), 42, workflow.StageSiteSurvey)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	require.Len(t, timeline[0].Photos, 2)
	assert.Equal(t, "file-1", timeline[0].Photos[0].FileID)
	assert.Empty(t, timeline[0].Photos[1].FileID, "лишняя ссылка без file_id не теряется")
}
