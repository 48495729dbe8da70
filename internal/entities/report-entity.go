package entities

import (
	"database/sql"
	"time"
)

// ReportFilter - параметры сводного отчёта по объектам.
type ReportFilter struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	ClientIDs      []uint64
	ResponsibleIDs []uint64
	Priorities     []string
	Page           int
	PerPage        int
}

// ReportItem - строка отчёта, собранная JOIN-ом по трём таблицам.
type ReportItem struct {
	InstallationID  uint64
	Name            string
	ClientName      sql.NullString
	Priority        string
	Status          string
	CurrentStage    sql.NullString
	CapacityKW      sql.NullFloat64
	TotalCost       sql.NullFloat64
	PaidAmount      sql.NullFloat64
	ResponsibleName sql.NullString
	CreatedAt       time.Time
}
