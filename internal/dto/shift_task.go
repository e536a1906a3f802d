package dto

import "time"

// DateLayout 批次日期格式
const DateLayout = "2006-01-02"

// ── 班次任务 DTO ──

// UpsertShiftTaskRequest 创建或更新班次任务
// 以 (party_number, party_data) 定位已有记录，存在则整体覆盖，不存在则新建
type UpsertShiftTaskRequest struct {
	ClosingStatus      *bool      `json:"closing_status"        binding:"required"`
	ViewTaskToShift    string     `json:"view_task_to_shift"    binding:"required,max=255"`
	Line               string     `json:"line"                  binding:"required,max=255"`
	Shift              string     `json:"shift"                 binding:"required,max=255"`
	Team               string     `json:"team"                  binding:"required,max=255"`
	PartyNumber        int        `json:"party_number"          binding:"required"`
	PartyData          string     `json:"party_data"            binding:"required,datetime=2006-01-02"`
	Nomenclature       string     `json:"nomenclature"          binding:"required,max=255"`
	CodeEKN            string     `json:"code_ekn"              binding:"required,max=255"`
	IDOfTheRC          string     `json:"id_of_the_rc"          binding:"required,max=255"`
	DateTimeShiftStart *time.Time `json:"date_time_shift_start" binding:"required"`
	DateTimeShiftEnd   *time.Time `json:"date_time_shift_end"   binding:"required"`
}

// UpdateShiftTaskRequest 部分更新；未出现的字段保持不变，批次号与批次日期不可修改
type UpdateShiftTaskRequest struct {
	ClosingStatus      *bool      `json:"closing_status"`
	ViewTaskToShift    *string    `json:"view_task_to_shift"    binding:"omitempty,max=255"`
	WorkCenter         *string    `json:"work_center"           binding:"omitempty,max=255"`
	Line               *string    `json:"line"                  binding:"omitempty,max=255"`
	Shift              *string    `json:"shift"                 binding:"omitempty,max=255"`
	Team               *string    `json:"team"                  binding:"omitempty,max=255"`
	Nomenclature       *string    `json:"nomenclature"          binding:"omitempty,max=255"`
	CodeEKN            *string    `json:"code_ekn"              binding:"omitempty,max=255"`
	IDOfTheRC          *string    `json:"id_of_the_rc"          binding:"omitempty,max=255"`
	DateTimeShiftStart *time.Time `json:"date_time_shift_start"`
	DateTimeShiftEnd   *time.Time `json:"date_time_shift_end"`
}

// ShiftTaskKeyRequest 按自然键查询
type ShiftTaskKeyRequest struct {
	PartyNumber int    `form:"party_number" binding:"required"`
	PartyData   string `form:"party_data"   binding:"required,datetime=2006-01-02"`
}

// ShiftTaskFilterRequest 过滤查询参数，全部为精确匹配，未传的参数不参与过滤
type ShiftTaskFilterRequest struct {
	ClosingStatus      *bool      `form:"closing_status"`
	PartyNumber        *int       `form:"party_number"`
	PartyData          *string    `form:"party_data"            binding:"omitempty,datetime=2006-01-02"`
	Shift              *string    `form:"shift"`
	Team               *string    `form:"team"`
	Nomenclature       *string    `form:"nomenclature"`
	CodeEKN            *string    `form:"code_ekn"`
	IDOfTheRC          *string    `form:"id_of_the_rc"`
	DateTimeShiftStart *time.Time `form:"date_time_shift_start" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTimeShiftEnd   *time.Time `form:"date_time_shift_end"   time_format:"2006-01-02T15:04:05Z07:00"`
}

// ── 响应 ──

// ShiftTaskResponse 班次任务响应，字段名沿用 1С 对接约定
type ShiftTaskResponse struct {
	ID                 int     `json:"id"`
	ClosingStatus      bool    `json:"СтатусЗакрытия"`
	ClosedAt           *string `json:"ДатаВремяЗакрытия"`
	ViewTaskToShift    string  `json:"ПредставлениеЗаданияНаСмену"`
	WorkCenter         string  `json:"РабочийЦентр"`
	Line               string  `json:"Линия"`
	Shift              string  `json:"Смена"`
	Team               string  `json:"Бригада"`
	PartyNumber        int     `json:"НомерПартии"`
	PartyData          string  `json:"ДатаПартии"`
	Nomenclature       string  `json:"Номенклатура"`
	CodeEKN            string  `json:"КодЕКН"`
	IDOfTheRC          string  `json:"ИдентификаторРЦ"`
	DateTimeShiftStart string  `json:"ДатаВремяНачалаСмены"`
	DateTimeShiftEnd   string  `json:"ДатаВремяОкончанияСмены"`
}
