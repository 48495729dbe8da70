package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
	"solar-crm/internal/workflow"
	"solar-crm/pkg/docstore"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/types"
)

// --- Подменные зависимости. Каждая фиксирует вызовы, чтобы тесты могли
// проверять не только результат, но и порядок побочных эффектов. ---

type fakeStageRepo struct {
	records      map[string]*entities.StageRecord
	activeRows   []repositories.ActiveStageRow
	callErr      error
	calledParams *repositories.UpdateStageParams
	upsertCalls  int
}

func stageRepoKey(installationID uint64, stageKey string) string {
	return fmt.Sprintf("%d:%s", installationID, stageKey)
}

func (f *fakeStageRepo) FindByPair(ctx context.Context, installationID uint64, stageKey string) (*entities.StageRecord, error) {
	if rec, ok := f.records[stageRepoKey(installationID, stageKey)]; ok {
		return rec, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStageRepo) ListByInstallation(ctx context.Context, installationID uint64) ([]entities.StageRecord, error) {
	out := make([]entities.StageRecord, 0, len(f.records))
	for _, rec := range f.records {
		if rec.InstallationID == installationID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStageRepo) ListActiveByResponsible(ctx context.Context, employeeID uint64) ([]repositories.ActiveStageRow, error) {
	return f.activeRows, nil
}

func (f *fakeStageRepo) UpsertInTx(ctx context.Context, tx pgx.Tx, installationID uint64, stageKey, status string, responsibleID *uint64) (*entities.StageRecord, error) {
	f.upsertCalls++
	rec := &entities.StageRecord{
		ID:             1,
		InstallationID: installationID,
		StageKey:       stageKey,
		Status:         status,
		ResponsibleID:  responsibleID,
		UpdatedAt:      time.Now(),
	}
	if f.records == nil {
		f.records = map[string]*entities.StageRecord{}
	}
	f.records[stageRepoKey(installationID, stageKey)] = rec
	return rec, nil
}

func (f *fakeStageRepo) CallUpdateWorkflowStage(ctx context.Context, params repositories.UpdateStageParams) (uint64, error) {
	if f.callErr != nil {
		return 0, f.callErr
	}
	f.calledParams = &params
	return 42, nil
}

type fakeEventRepo struct {
	created []entities.StageEvent
}

func (f *fakeEventRepo) CreateInTx(ctx context.Context, tx pgx.Tx, event entities.StageEvent) (uint64, error) {
	f.created = append(f.created, event)
	return uint64(len(f.created)), nil
}

func (f *fakeEventRepo) FindByPair(ctx context.Context, installationID uint64, stageKey string) ([]entities.StageEvent, error) {
	return f.created, nil
}

type fakeInstallationRepo struct {
	existing         map[uint64]*entities.Installation
	currentStageSets []string
}

func (f *fakeInstallationRepo) GetInstallations(ctx context.Context, filter types.Filter) ([]entities.Installation, uint64, error) {
	return nil, 0, nil
}

func (f *fakeInstallationRepo) FindInstallation(ctx context.Context, id uint64) (*entities.Installation, error) {
	if inst, ok := f.existing[id]; ok {
		return inst, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeInstallationRepo) CreateInstallation(ctx context.Context, payload dto.CreateInstallationDTO) (uint64, error) {
	return 0, nil
}

func (f *fakeInstallationRepo) UpdateInstallation(ctx context.Context, id uint64, payload dto.UpdateInstallationDTO) error {
	return nil
}

func (f *fakeInstallationRepo) SetCurrentStageInTx(ctx context.Context, tx pgx.Tx, id uint64, stageKey string) error {
	f.currentStageSets = append(f.currentStageSets, stageKey)
	return nil
}

func (f *fakeInstallationRepo) DeleteInstallation(ctx context.Context, id uint64) error {
	return nil
}

type fakeEmployeeRepo struct {
	byID map[uint64]*entities.Employee
}

func (f *fakeEmployeeRepo) GetEmployees(ctx context.Context, limit, offset uint64, search string) ([]dto.EmployeeResponseDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) FindEmployeeByID(ctx context.Context, id uint64) (*entities.Employee, error) {
	if emp, ok := f.byID[id]; ok {
		return emp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployeeRepo) FindEmployeeByEmail(ctx context.Context, email string) (*entities.Employee, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployeeRepo) CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO, passwordHash string) (uint64, error) {
	return 0, nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO, passwordHash *string) error {
	return nil
}

func (f *fakeEmployeeRepo) DeleteEmployee(ctx context.Context, id uint64) error {
	return nil
}

type fakeCacheRepo struct {
	store   map[string]string
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string]string{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if val, ok := f.store[key]; ok {
		return val, nil
	}
	return "", apperrors.ErrNotFound
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.store[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) { return 1, nil }

func (f *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

type fakeTxManager struct {
	runs int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.runs++
	return fn(nil)
}

type fakeUploader struct {
	uploaded []docstore.FilePart
	result   []docstore.UploadedFile
	err      error
}

func (f *fakeUploader) WorkflowUpload(ctx context.Context, files []docstore.FilePart, objectNumber uint64, docType, stageKey string) ([]docstore.UploadedFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded = append(f.uploaded, files...)
	return f.result, nil
}

type fakeNotifier struct {
	notified []uint64
}

func (f *fakeNotifier) SendToEmployee(employeeID uint64, payload interface{}, messageType string) error {
	f.notified = append(f.notified, employeeID)
	return nil
}

type workflowFixture struct {
	stageRepo        *fakeStageRepo
	eventRepo        *fakeEventRepo
	installationRepo *fakeInstallationRepo
	employeeRepo     *fakeEmployeeRepo
	cacheRepo        *fakeCacheRepo
	txManager        *fakeTxManager
	uploader         *fakeUploader
	notifier         *fakeNotifier
	svc              WorkflowServiceInterface
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	fx := &workflowFixture{
		stageRepo: &fakeStageRepo{records: map[string]*entities.StageRecord{}},
		eventRepo: &fakeEventRepo{},
		installationRepo: &fakeInstallationRepo{existing: map[uint64]*entities.Installation{
			42: {ID: 42, Name: "СЕС Гатне 10 кВт"},
		}},
		employeeRepo: &fakeEmployeeRepo{byID: map[uint64]*entities.Employee{
			7: {ID: 7, FullName: "Ігор Мельник", Email: "manager@solar-crm.ua"},
		}},
		cacheRepo: newFakeCacheRepo(),
		txManager: &fakeTxManager{},
		uploader:  &fakeUploader{},
		notifier:  &fakeNotifier{},
	}
	fx.svc = NewWorkflowService(
		fx.stageRepo, fx.eventRepo, fx.installationRepo, fx.employeeRepo,
		fx.cacheRepo, fx.txManager, fx.uploader, fx.notifier, zap.NewNop(),
	)
	return fx
}

func managerSession() *types.Session {
	return &types.Session{EmployeeID: 7, Email: "manager@solar-crm.ua", Role: entities.RoleManager}
}

func uptr(v uint64) *uint64 { return &v }

// Правка без статуса, комментария, файлов и ответственного отклоняется
// сервером, даже если клиент её прислал.
func TestQuickUpdate_NoChangesRejected(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageCommercialProposal)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageCommercialProposal,
		Status:         "waiting",
	}

	_, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageCommercialProposal,
		dto.QuickUpdateDTO{NewStatus: "  Waiting "}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoChanges)
	assert.Nil(t, fx.stageRepo.calledParams, "БД не должна трогаться при отсутствии изменений")
}

// Несуществующий объект - ошибка до любой записи: этап создаётся неявно,
// объект - никогда.
func TestQuickUpdate_UnknownInstallation(t *testing.T) {
	fx := newWorkflowFixture(t)

	_, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 999, workflow.StageContract,
		dto.QuickUpdateDTO{NewStatus: "signed"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Падение загрузки файлов отменяет правку целиком: ни записи этапа,
// ни события журнала, ни уведомлений.
func TestQuickUpdate_UploadFailureAborts(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.uploader.err = errors.New("хранилище недоступно")

	files := []docstore.FilePart{{Name: "act.pdf", Reader: strings.NewReader("pdf")}}
	_, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageInstallation,
		dto.QuickUpdateDTO{NewStatus: "done"}, files)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.Nil(t, fx.stageRepo.calledParams)
	assert.Empty(t, fx.eventRepo.created)
	assert.Empty(t, fx.notifier.notified)
}

// Основной путь: серверная функция доступна, файлы загружены, ссылки и
// идентификаторы попали в результат, имя актора взято из профиля.
func TestQuickUpdate_AtomicPath(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageCommercialProposal)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageCommercialProposal,
		Status:         "sent",
		ResponsibleID:  uptr(7),
	}
	fx.uploader.result = []docstore.UploadedFile{
		{WebViewLink: "https://drive/view/1", FileID: "file-1"},
		{WebViewLink: "https://drive/view/2", FileID: "file-2"},
	}

	files := []docstore.FilePart{
		{Name: "kp.pdf", Reader: strings.NewReader("a")},
		{Name: "kp_signed.pdf", Reader: strings.NewReader("b")},
	}
	result, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageCommercialProposal,
		dto.QuickUpdateDTO{NewStatus: "Approved", Comment: "Клієнт погодив"}, files)

	require.NoError(t, err)
	assert.True(t, result.Atomic)
	assert.Equal(t, "approved", result.NewStatus)
	assert.Equal(t, "Погоджено", result.StatusLabel)
	assert.True(t, result.Completed, "approved завершает этап группы proposal")
	assert.Equal(t, []string{"https://drive/view/1", "https://drive/view/2"}, result.Photos)
	assert.Equal(t, []string{"file-1", "file-2"}, result.PhotoFileIDs)

	require.NotNil(t, fx.stageRepo.calledParams)
	assert.Equal(t, "Ігор Мельник", fx.stageRepo.calledParams.ActorName)
	assert.NotEqual(t, uuid.Nil, fx.stageRepo.calledParams.BatchUID)
	require.NotNil(t, fx.stageRepo.calledParams.Comment)
	assert.Equal(t, "Клієнт погодив", *fx.stageRepo.calledParams.Comment)
}

// Запасной путь: серверная функция недоступна, правка уходит в транзакцию
// из upsert + событие журнала, результат помечен как неатомарный.
func TestQuickUpdate_FallbackTransaction(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.callErr = errors.New("function update_workflow_stage does not exist")

	result, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageProcurement,
		dto.QuickUpdateDTO{NewStatus: "ordered", SetAsGlobalStage: true}, nil)

	require.NoError(t, err)
	assert.False(t, result.Atomic)
	assert.Equal(t, 1, fx.txManager.runs)
	assert.Equal(t, 1, fx.stageRepo.upsertCalls)
	require.Len(t, fx.eventRepo.created, 1)
	event := fx.eventRepo.created[0]
	assert.Nil(t, event.OldStatus, "первая правка этапа не имеет прежнего статуса")
	require.NotNil(t, event.NewStatus)
	assert.Equal(t, "ordered", *event.NewStatus)
	assert.Equal(t, []string{workflow.StageProcurement}, fx.installationRepo.currentStageSets)
}

// Запасной путь при смене только статуса: прежний ответственный не
// теряется в журнале, переход "ответственный → —" не возникает.
func TestQuickUpdate_FallbackKeepsResponsibleInEvent(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.callErr = errors.New("function update_workflow_stage does not exist")
	fx.stageRepo.records[stageRepoKey(42, workflow.StageInstallation)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageInstallation,
		Status:         "scheduled",
		ResponsibleID:  uptr(7),
	}

	result, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageInstallation,
		dto.QuickUpdateDTO{NewStatus: "in_progress"}, nil)

	require.NoError(t, err)
	assert.False(t, result.Atomic)
	require.Len(t, fx.eventRepo.created, 1)
	event := fx.eventRepo.created[0]
	require.NotNil(t, event.OldResponsibleID)
	require.NotNil(t, event.NewResponsibleID, "ответственный не должен теряться на запасном пути")
	assert.Equal(t, uint64(7), *event.NewResponsibleID)
	assert.Equal(t, *event.OldResponsibleID, *event.NewResponsibleID,
		"смена только статуса не порождает переход ответственного")
}

// Завершение этапа выбрасывает запись из кешированного списка старого
// ответственного, не дожидаясь истечения TTL.
func TestQuickUpdate_CompletedDropsFromCache(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageContract)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageContract,
		Status:         "submitted",
		ResponsibleID:  uptr(7),
	}

	cached := []dto.ActiveStageDTO{
		{InstallationID: 42, StageKey: workflow.StageContract, Status: "submitted"},
		{InstallationID: 42, StageKey: workflow.StageProcurement, Status: "ordered"},
	}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	fx.cacheRepo.store["active_stages:7"] = string(raw)

	result, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageContract,
		dto.QuickUpdateDTO{NewStatus: "signed"}, nil)

	require.NoError(t, err)
	assert.True(t, result.Completed)

	var patched []dto.ActiveStageDTO
	require.NoError(t, json.Unmarshal([]byte(fx.cacheRepo.store["active_stages:7"]), &patched))
	require.Len(t, patched, 1)
	assert.Equal(t, workflow.StageProcurement, patched[0].StageKey)
}

// Смена статуса без завершения правит кешированную запись на месте.
func TestQuickUpdate_StatusPatchedInCache(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageInstallation)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageInstallation,
		Status:         "scheduled",
		ResponsibleID:  uptr(7),
	}

	cached := []dto.ActiveStageDTO{
		{InstallationID: 42, StageKey: workflow.StageInstallation, Status: "scheduled", StatusLabel: "Заплановано"},
	}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	fx.cacheRepo.store["active_stages:7"] = string(raw)

	_, err = fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageInstallation,
		dto.QuickUpdateDTO{NewStatus: "in_progress"}, nil)
	require.NoError(t, err)

	var patched []dto.ActiveStageDTO
	require.NoError(t, json.Unmarshal([]byte(fx.cacheRepo.store["active_stages:7"]), &patched))
	require.Len(t, patched, 1)
	assert.Equal(t, "in_progress", patched[0].Status)
	assert.Equal(t, "В роботі", patched[0].StatusLabel)
}

// Переназначение сбрасывает кеш нового ответственного и уведомляет обоих.
func TestQuickUpdate_ReassignNotifiesBoth(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageSiteSurvey)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageSiteSurvey,
		Status:         "waiting",
		ResponsibleID:  uptr(7),
	}
	fx.cacheRepo.store["active_stages:9"] = "[]"

	result, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageSiteSurvey,
		dto.QuickUpdateDTO{NewStatus: "waiting", ResponsibleID: uptr(9)}, nil)

	require.NoError(t, err)
	assert.True(t, result.Reassigned)
	assert.Contains(t, fx.cacheRepo.deleted, "active_stages:9")
	assert.ElementsMatch(t, []uint64{7, 9}, fx.notifier.notified)
}

// При совпадении старого и нового ответственного уведомление одно.
func TestQuickUpdate_NotificationDeduped(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageFirstContact)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageFirstContact,
		Status:         "waiting",
		ResponsibleID:  uptr(7),
	}

	_, err := fx.svc.QuickUpdate(context.Background(), managerSession(), 42, workflow.StageFirstContact,
		dto.QuickUpdateDTO{NewStatus: "in_progress"}, nil)

	require.NoError(t, err)
	assert.Equal(t, []uint64{7}, fx.notifier.notified)
}

// Список активных этапов: завершённые записи отфильтровываются до кеша,
// повторное чтение идёт из кеша без похода в БД.
func TestActiveStages_FiltersCompletedAndCaches(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.activeRows = []repositories.ActiveStageRow{
		{InstallationID: 42, InstallationName: "СЕС Гатне 10 кВт", ClientName: "Гатне Агро", StageKey: workflow.StageContract, Status: "submitted"},
		{InstallationID: 43, InstallationName: "СЕС Бровари", ClientName: "ОСББ Сонячне", StageKey: workflow.StageContract, Status: "signed"},
	}

	groups, err := fx.svc.ActiveStages(context.Background(), 7, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, workflow.StageContract, groups[0].StageKey)
	require.Len(t, groups[0].Records, 1, "подписанный договор завершает этап и в список не попадает")
	assert.Equal(t, uint64(42), groups[0].Records[0].InstallationID)

	// Вторая загрузка берёт данные из кеша: подмена строк БД не видна.
	fx.stageRepo.activeRows = nil
	groups, err = fx.svc.ActiveStages(context.Background(), 7, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
}

func TestFilterActiveStages(t *testing.T) {
	records := []dto.ActiveStageDTO{
		{InstallationID: 42, InstallationName: "СЕС Гатне 10 кВт", ClientName: "Гатне Агро", StageLabel: "Договір"},
		{InstallationID: 107, InstallationName: "СЕС Агросвіт 150 кВт", ClientName: "ТОВ Агросвіт", StageLabel: "Монтаж"},
	}

	testCases := []struct {
		name string
		term string
		want []uint64
	}{
		{name: "пустой запрос возвращает всё", term: "  ", want: []uint64{42, 107}},
		{name: "числовой запрос - точный номер объекта", term: "042", want: []uint64{42}},
		{name: "числовой запрос без совпадений", term: "8", want: []uint64{}},
		{name: "подстрока в названии объекта", term: "агросвіт", want: []uint64{107}},
		{name: "подстрока в названии этапа", term: "договір", want: []uint64{42}},
		{name: "без совпадений", term: "вітряк", want: []uint64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterActiveStages(records, tc.term)
			ids := make([]uint64, 0, len(got))
			for _, rec := range got {
				ids = append(ids, rec.InstallationID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

// Группировка: известные этапы в порядке воронки, неизвестные - после,
// по алфавиту названий.
func TestGroupActiveStages_Order(t *testing.T) {
	records := []dto.ActiveStageDTO{
		{InstallationID: 1, StageKey: workflow.StageInstallation},
		{InstallationID: 2, StageKey: workflow.StageFirstContact},
		{InstallationID: 3, StageKey: "custom_audit", StageLabel: "custom_audit"},
		{InstallationID: 4, StageKey: workflow.StageFirstContact},
		{InstallationID: 5, StageKey: "another_step", StageLabel: "another_step"},
	}

	groups := GroupActiveStages(records)

	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.StageKey)
	}
	assert.Equal(t, []string{workflow.StageFirstContact, workflow.StageInstallation, "another_step", "custom_audit"}, keys)
	assert.Len(t, groups[0].Records, 2)
}

// Доска этапов объекта: воронка целиком, нетронутые этапы со стартовым
// статусом, сохранённые - со своим.
func TestStageBoard(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageContract)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageContract,
		Status:         "Signed",
		ResponsibleID:  uptr(7),
		UpdatedAt:      time.Now(),
	}

	board, err := fx.svc.StageBoard(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, board, len(workflow.PreferredStageOrder()))

	byKey := make(map[string]int, len(board))
	for i, item := range board {
		byKey[item.StageKey] = i
	}

	contract := board[byKey[workflow.StageContract]]
	assert.Equal(t, "signed", contract.Status)
	assert.Equal(t, "Підписано", contract.StatusLabel)
	assert.True(t, contract.Completed)
	assert.NotEmpty(t, contract.UpdatedAt)

	untouched := board[byKey[workflow.StageProcurement]]
	assert.Equal(t, "waiting", untouched.Status)
	assert.False(t, untouched.Completed)
	assert.Empty(t, untouched.UpdatedAt)

	_, err = fx.svc.StageBoard(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Словарь статусов этапа: неизвестный текущий статус записи добавляется
// в начало списка, чтобы выпадающий список всегда показывал текущее значение.
func TestStatusOptionsForStage(t *testing.T) {
	fx := newWorkflowFixture(t)
	fx.stageRepo.records[stageRepoKey(42, workflow.StageContract)] = &entities.StageRecord{
		InstallationID: 42,
		StageKey:       workflow.StageContract,
		Status:         "на_перевірці",
	}

	opts, err := fx.svc.StatusOptionsForStage(context.Background(), 42, workflow.StageContract)
	require.NoError(t, err)
	assert.Equal(t, "Договір", opts.StageLabel)
	assert.Equal(t, string(workflow.GroupDocuments), opts.Group)
	require.NotEmpty(t, opts.Options)
	assert.Equal(t, "на_перевірці", opts.Options[0].Value, "текущий статус вне словаря идёт первым")

	// Этап без записи отдаёт обычный словарь группы.
	opts, err = fx.svc.StatusOptionsForStage(context.Background(), 42, workflow.StageProcurement)
	require.NoError(t, err)
	assert.Equal(t, "waiting", opts.Options[0].Value)
}
