package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageLabel_UnknownKeyReturnsRawKey(t *testing.T) {
	assert.Equal(t, "Комерційна пропозиція", StageLabel(StageCommercialProposal))
	assert.Equal(t, "custom_stage_42", StageLabel("custom_stage_42"))
	assert.Equal(t, "", StageLabel(""))
}

func TestStageGroupOf_UnknownKeyFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, GroupProposal, StageGroupOf(StageCommercialProposal))
	assert.Equal(t, GroupWorks, StageGroupOf(StageInstallation))
	assert.Equal(t, GroupGeneric, StageGroupOf("something_else"))
}

func TestIsCompletedForStage(t *testing.T) {
	// Завершающий набор группы proposal
	assert.True(t, IsCompletedForStage(StageCommercialProposal, "approved"))
	assert.True(t, IsCompletedForStage(StageCommercialProposal, "rejected"))
	assert.False(t, IsCompletedForStage(StageCommercialProposal, "waiting"))
	assert.False(t, IsCompletedForStage(StageCommercialProposal, "sent"))

	// "done" не входит в словарь proposal, но это легаси-синоним завершения
	assert.True(t, IsCompletedForStage(StageCommercialProposal, "done"))

	// Группа works
	assert.True(t, IsCompletedForStage(StageInstallation, "done"))
	assert.False(t, IsCompletedForStage(StageInstallation, "scheduled"))
}

func TestIsCompletedForStage_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.True(t, IsCompletedForStage(StageInstallation, " Виконано "))
	assert.True(t, IsCompletedForStage(StageInstallation, "виконано"))
	assert.True(t, IsCompletedForStage(StageInstallation, "DONE"))
	assert.True(t, IsCompletedForStage(StageCommercialProposal, "  APPROVED"))
}

func TestIsCompletedForStage_UnknownStageUsesGenericSet(t *testing.T) {
	assert.True(t, IsCompletedForStage("mystery_stage", "done"))
	assert.False(t, IsCompletedForStage("mystery_stage", "approved"))
}

func TestStatusOptionsForStage_KnownCurrentStatusNotDuplicated(t *testing.T) {
	options := StatusOptionsForStage(StageCommercialProposal, "sent")
	require.Len(t, options, 5)
	assert.Equal(t, "waiting", options[0].Value)
}

func TestStatusOptionsForStage_UnknownCurrentStatusInjectedFirst(t *testing.T) {
	options := StatusOptionsForStage(StageCommercialProposal, "узгоджується з ОСР")
	require.Len(t, options, 6)
	assert.Equal(t, "узгоджується з ОСР", options[0].Value)
	assert.Equal(t, "узгоджується з ОСР", options[0].Label)
	assert.NotEmpty(t, options[0].Color)
	assert.Equal(t, "waiting", options[1].Value)
}

func TestStatusOptionsForStage_EmptyCurrentStatus(t *testing.T) {
	options := StatusOptionsForStage(StageTechProject, "")
	require.Len(t, options, 5)
	assert.Equal(t, "waiting", options[0].Value)
}

func TestResolveStatusMeta(t *testing.T) {
	meta := ResolveStatusMeta(StageInstallation, "Done")
	assert.Equal(t, "Виконано", meta.Label)

	unknown := ResolveStatusMeta(StageInstallation, "чекаємо на інвертор")
	assert.Equal(t, "чекаємо на інвертор", unknown.Label)
	assert.Equal(t, "#6b7280", unknown.Color)
}

func TestStatusOptions_ReturnsCopy(t *testing.T) {
	options := StatusOptions(GroupWorks)
	options[0].Label = "зіпсовано"
	assert.Equal(t, "Очікує", StatusOptions(GroupWorks)[0].Label)
}

func TestStageOrderIndex(t *testing.T) {
	assert.Less(t, StageOrderIndex(StageCommercialProposal), StageOrderIndex(StageInstallation))
	assert.Equal(t, len(PreferredStageOrder()), StageOrderIndex("unknown_stage"))
}
