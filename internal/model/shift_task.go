package model

import "time"

// ShiftTask 班次生产任务表，对应 shift_tasks
// (party_number, party_data) 为自然键，数据库唯一约束 uq_shift_tasks_party 保证唯一
type ShiftTask struct {
	ID                 int        `gorm:"primaryKey;autoIncrement"                           json:"id"`
	ClosingStatus      bool       `gorm:"not null;default:false"                             json:"closing_status"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	ViewTaskToShift    string     `gorm:"type:varchar(255);not null"                         json:"view_task_to_shift"`
	WorkCenter         string     `gorm:"type:varchar(255);not null;default:''"              json:"work_center"`
	Line               string     `gorm:"type:varchar(255);not null"                         json:"line"`
	Shift              string     `gorm:"type:varchar(255);not null"                         json:"shift"`
	Team               string     `gorm:"type:varchar(255);not null"                         json:"team"`
	PartyNumber        int        `gorm:"not null;uniqueIndex:uq_shift_tasks_party,priority:1" json:"party_number"`
	PartyData          time.Time  `gorm:"type:date;not null;uniqueIndex:uq_shift_tasks_party,priority:2" json:"party_data"`
	Nomenclature       string     `gorm:"type:varchar(255);not null"                         json:"nomenclature"`
	CodeEKN            string     `gorm:"column:code_ekn;type:varchar(255);not null"         json:"code_ekn"`
	IDOfTheRC          string     `gorm:"column:id_of_the_rc;type:varchar(255);not null"     json:"id_of_the_rc"`
	DateTimeShiftStart time.Time  `gorm:"not null"                                           json:"date_time_shift_start"`
	DateTimeShiftEnd   time.Time  `gorm:"not null"                                           json:"date_time_shift_end"`

	// 关联
	Products []UniqueProductIdentifier `gorm:"foreignKey:ShiftTaskID" json:"products,omitempty"`
}

// TableName 指定表名
func (ShiftTask) TableName() string { return "shift_tasks" }

// UniqueProductIdentifier 产品唯一码表，对应 unique_product_identifiers
type UniqueProductIdentifier struct {
	ID                int        `gorm:"primaryKey;autoIncrement"               json:"id"`
	UniqueProductCode string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"unique_product_code"`
	ShiftTaskID       int        `gorm:"not null;index"                         json:"shift_task_id"`
	IsAggregated      bool       `gorm:"not null;default:false"                 json:"is_aggregated"`
	AggregatedAt      *time.Time `json:"aggregated_at,omitempty"`
}

// TableName 指定表名
func (UniqueProductIdentifier) TableName() string { return "unique_product_identifiers" }

// PartyDate 将批次日期归一为 UTC 零点，写入与查询使用同一表示
func PartyDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate 按年月日比较，忽略时区与时分秒
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
