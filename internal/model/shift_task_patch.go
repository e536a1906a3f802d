package model

import (
	"time"

	"github.com/samber/mo"
)

// ShiftTaskPatch 部分更新：只有 IsPresent 的字段会被写入。
// party_number / party_data 是查找键，不在可变字段之列。
type ShiftTaskPatch struct {
	ClosingStatus      mo.Option[bool]
	ViewTaskToShift    mo.Option[string]
	WorkCenter         mo.Option[string]
	Line               mo.Option[string]
	Shift              mo.Option[string]
	Team               mo.Option[string]
	Nomenclature       mo.Option[string]
	CodeEKN            mo.Option[string]
	IDOfTheRC          mo.Option[string]
	DateTimeShiftStart mo.Option[time.Time]
	DateTimeShiftEnd   mo.Option[time.Time]
}

// IsEmpty 没有任何字段需要写入
func (p ShiftTaskPatch) IsEmpty() bool {
	return p.ClosingStatus.IsAbsent() &&
		p.ViewTaskToShift.IsAbsent() &&
		p.WorkCenter.IsAbsent() &&
		p.Line.IsAbsent() &&
		p.Shift.IsAbsent() &&
		p.Team.IsAbsent() &&
		p.Nomenclature.IsAbsent() &&
		p.CodeEKN.IsAbsent() &&
		p.IDOfTheRC.IsAbsent() &&
		p.DateTimeShiftStart.IsAbsent() &&
		p.DateTimeShiftEnd.IsAbsent()
}

// ApplyTo 把补丁写入 task。
// closing_status 只在状态翻转时改动 closed_at：false→true 记为 now，true→false 清空；
// 值不变时 closed_at 保持原样。closed_at 必须先于标志位计算。
func (p ShiftTaskPatch) ApplyTo(task *ShiftTask, now time.Time) {
	if closing, ok := p.ClosingStatus.Get(); ok {
		switch {
		case !task.ClosingStatus && closing:
			closedAt := now
			task.ClosedAt = &closedAt
		case task.ClosingStatus && !closing:
			task.ClosedAt = nil
		}
		task.ClosingStatus = closing
	}

	if v, ok := p.ViewTaskToShift.Get(); ok {
		task.ViewTaskToShift = v
	}
	if v, ok := p.WorkCenter.Get(); ok {
		task.WorkCenter = v
	}
	if v, ok := p.Line.Get(); ok {
		task.Line = v
	}
	if v, ok := p.Shift.Get(); ok {
		task.Shift = v
	}
	if v, ok := p.Team.Get(); ok {
		task.Team = v
	}
	if v, ok := p.Nomenclature.Get(); ok {
		task.Nomenclature = v
	}
	if v, ok := p.CodeEKN.Get(); ok {
		task.CodeEKN = v
	}
	if v, ok := p.IDOfTheRC.Get(); ok {
		task.IDOfTheRC = v
	}
	if v, ok := p.DateTimeShiftStart.Get(); ok {
		task.DateTimeShiftStart = v
	}
	if v, ok := p.DateTimeShiftEnd.Get(); ok {
		task.DateTimeShiftEnd = v
	}
}

// ShiftTaskInput create_or_update 的完整入参（12 个字段）
type ShiftTaskInput struct {
	ClosingStatus      bool
	ViewTaskToShift    string
	Line               string
	Shift              string
	Team               string
	PartyNumber        int
	PartyData          time.Time
	Nomenclature       string
	CodeEKN            string
	IDOfTheRC          string
	DateTimeShiftStart time.Time
	DateTimeShiftEnd   time.Time
}

// Patch 以入参构造整体替换补丁，不含自然键
func (in ShiftTaskInput) Patch() ShiftTaskPatch {
	return ShiftTaskPatch{
		ClosingStatus:      mo.Some(in.ClosingStatus),
		ViewTaskToShift:    mo.Some(in.ViewTaskToShift),
		Line:               mo.Some(in.Line),
		Shift:              mo.Some(in.Shift),
		Team:               mo.Some(in.Team),
		Nomenclature:       mo.Some(in.Nomenclature),
		CodeEKN:            mo.Some(in.CodeEKN),
		IDOfTheRC:          mo.Some(in.IDOfTheRC),
		DateTimeShiftStart: mo.Some(in.DateTimeShiftStart),
		DateTimeShiftEnd:   mo.Some(in.DateTimeShiftEnd),
	}
}

// NewShiftTask 构造待插入记录；初始即为关闭状态时同样记录 closed_at
func (in ShiftTaskInput) NewShiftTask(now time.Time) *ShiftTask {
	task := &ShiftTask{
		PartyNumber: in.PartyNumber,
		PartyData:   PartyDate(in.PartyData),
	}
	in.Patch().ApplyTo(task, now)
	return task
}
