// Пакет workflow - статический каталог этапов монтажа СЭС:
// ключ этапа -> название и группа статусов, по группе - словарь
// статусов и набор "завершающих" значений.
package workflow

// StageGroup - словарь статусов, к которому привязан этап.
// Несколько этапов могут разделять одну группу.
type StageGroup string

const (
	GroupProposal    StageGroup = "proposal"
	GroupDocuments   StageGroup = "documents"
	GroupProcurement StageGroup = "procurement"
	GroupWorks       StageGroup = "works"
	GroupGeneric     StageGroup = "generic"
)

// StatusOption - один выбираемый статус с метаданными для отображения.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type stageInfo struct {
	Label string
	Group StageGroup
}

// Фиксированный порядок этапов воронки. Этапы вне каталога дописываются
// после этих, по алфавиту названий.
var stageOrder = []string{
	StageFirstContact,
	StageSiteSurvey,
	StageCommercialProposal,
	StageContract,
	StageAdvancePayment,
	StageTechProject,
	StageGridApplication,
	StageProcurement,
	StageInstallation,
	StageGridConnection,
	StageCommissioning,
	StageGreenTariff,
	StageFinalPayment,
}

const (
	StageFirstContact       = "first_contact"
	StageSiteSurvey         = "site_survey"
	StageCommercialProposal = "commercial_proposal"
	StageContract           = "contract"
	StageAdvancePayment     = "advance_payment"
	StageTechProject        = "tech_project"
	StageGridApplication    = "grid_application"
	StageProcurement        = "procurement"
	StageInstallation       = "installation"
	StageGridConnection     = "grid_connection"
	StageCommissioning      = "commissioning"
	StageGreenTariff        = "green_tariff"
	StageFinalPayment       = "final_payment"
)

var stageCatalog = map[string]stageInfo{
	StageFirstContact:       {Label: "Перший контакт", Group: GroupGeneric},
	StageSiteSurvey:         {Label: "Виїзд на об'єкт", Group: GroupWorks},
	StageCommercialProposal: {Label: "Комерційна пропозиція", Group: GroupProposal},
	StageContract:           {Label: "Договір", Group: GroupDocuments},
	StageAdvancePayment:     {Label: "Авансовий платіж", Group: GroupProposal},
	StageTechProject:        {Label: "Технічний проєкт", Group: GroupDocuments},
	StageGridApplication:    {Label: "Заява на приєднання", Group: GroupDocuments},
	StageProcurement:        {Label: "Закупівля обладнання", Group: GroupProcurement},
	StageInstallation:       {Label: "Монтаж", Group: GroupWorks},
	StageGridConnection:     {Label: "Підключення до мережі", Group: GroupWorks},
	StageCommissioning:      {Label: "Пусконалагодження", Group: GroupWorks},
	StageGreenTariff:        {Label: "Зелений тариф", Group: GroupDocuments},
	StageFinalPayment:       {Label: "Фінальний розрахунок", Group: GroupProposal},
}

// Словари статусов по группам. Порядок - порядок в выпадающем списке.
var groupStatuses = map[StageGroup][]StatusOption{
	GroupProposal: {
		{Value: "waiting", Label: "Очікує", Color: "#9ca3af"},
		{Value: "preparing", Label: "Готується", Color: "#f59e0b"},
		{Value: "sent", Label: "Відправлено", Color: "#3b82f6"},
		{Value: "approved", Label: "Погоджено", Color: "#22c55e"},
		{Value: "rejected", Label: "Відхилено", Color: "#ef4444"},
	},
	GroupDocuments: {
		{Value: "waiting", Label: "Очікує", Color: "#9ca3af"},
		{Value: "in_progress", Label: "В роботі", Color: "#f59e0b"},
		{Value: "submitted", Label: "Подано", Color: "#3b82f6"},
		{Value: "signed", Label: "Підписано", Color: "#22c55e"},
		{Value: "rejected", Label: "Відхилено", Color: "#ef4444"},
	},
	GroupProcurement: {
		{Value: "waiting", Label: "Очікує", Color: "#9ca3af"},
		{Value: "ordered", Label: "Замовлено", Color: "#f59e0b"},
		{Value: "in_transit", Label: "В дорозі", Color: "#3b82f6"},
		{Value: "partially_delivered", Label: "Частково доставлено", Color: "#a855f7"},
		{Value: "delivered", Label: "Доставлено", Color: "#22c55e"},
	},
	GroupWorks: {
		{Value: "waiting", Label: "Очікує", Color: "#9ca3af"},
		{Value: "scheduled", Label: "Заплановано", Color: "#f59e0b"},
		{Value: "in_progress", Label: "В роботі", Color: "#3b82f6"},
		{Value: "postponed", Label: "Відкладено", Color: "#a855f7"},
		{Value: "done", Label: "Виконано", Color: "#22c55e"},
	},
	GroupGeneric: {
		{Value: "waiting", Label: "Очікує", Color: "#9ca3af"},
		{Value: "in_progress", Label: "В роботі", Color: "#3b82f6"},
		{Value: "done", Label: "Виконано", Color: "#22c55e"},
	},
}

// Завершающие статусы по группам: этап с таким статусом считается
// закрытым и не попадает в "мої активні етапи".
var groupCompletionSets = map[StageGroup]map[string]struct{}{
	GroupProposal:    {"approved": {}, "rejected": {}},
	GroupDocuments:   {"signed": {}, "rejected": {}},
	GroupProcurement: {"delivered": {}},
	GroupWorks:       {"done": {}},
	GroupGeneric:     {"done": {}},
}

const (
	fallbackColor = "#6b7280"
)

// StageLabel возвращает название этапа; неизвестный ключ возвращается как есть.
func StageLabel(stageKey string) string {
	if info, ok := stageCatalog[stageKey]; ok {
		return info.Label
	}
	return stageKey
}

// StageGroupOf возвращает группу статусов этапа, для неизвестных - generic.
func StageGroupOf(stageKey string) StageGroup {
	if info, ok := stageCatalog[stageKey]; ok {
		return info.Group
	}
	return GroupGeneric
}

// KnownStage сообщает, описан ли этап в каталоге.
func KnownStage(stageKey string) bool {
	_, ok := stageCatalog[stageKey]
	return ok
}

// StageOrderIndex - позиция этапа в воронке; для неизвестных len(stageOrder).
func StageOrderIndex(stageKey string) int {
	for i, key := range stageOrder {
		if key == stageKey {
			return i
		}
	}
	return len(stageOrder)
}

// PreferredStageOrder возвращает копию порядка этапов.
func PreferredStageOrder() []string {
	out := make([]string, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// StatusOptions возвращает копию словаря статусов группы.
func StatusOptions(group StageGroup) []StatusOption {
	src, ok := groupStatuses[group]
	if !ok {
		src = groupStatuses[GroupGeneric]
	}
	out := make([]StatusOption, len(src))
	copy(out, src)
	return out
}
