package repository

import (
	"time"

	"github.com/samber/mo"

	"github.com/Victor-Smirnoff/product-release-control/internal/model"
)

// ShiftTaskFilter 多条件精确匹配；未设置的条件不参与过滤
type ShiftTaskFilter struct {
	ClosingStatus      mo.Option[bool]
	PartyNumber        mo.Option[int]
	PartyData          mo.Option[time.Time]
	Shift              mo.Option[string]
	Team               mo.Option[string]
	Nomenclature       mo.Option[string]
	CodeEKN            mo.Option[string]
	IDOfTheRC          mo.Option[string]
	DateTimeShiftStart mo.Option[time.Time]
	DateTimeShiftEnd   mo.Option[time.Time]
}

type shiftTaskPredicate func(task *model.ShiftTask) bool

// predicates 按固定顺序返回已设置条件的谓词
func (f ShiftTaskFilter) predicates() []shiftTaskPredicate {
	var ps []shiftTaskPredicate

	if v, ok := f.ClosingStatus.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.ClosingStatus == v })
	}
	if v, ok := f.PartyNumber.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.PartyNumber == v })
	}
	if v, ok := f.PartyData.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return model.SameDate(t.PartyData, v) })
	}
	if v, ok := f.Shift.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.Shift == v })
	}
	if v, ok := f.Team.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.Team == v })
	}
	if v, ok := f.Nomenclature.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.Nomenclature == v })
	}
	if v, ok := f.CodeEKN.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.CodeEKN == v })
	}
	if v, ok := f.IDOfTheRC.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.IDOfTheRC == v })
	}
	if v, ok := f.DateTimeShiftStart.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.DateTimeShiftStart.Equal(v) })
	}
	if v, ok := f.DateTimeShiftEnd.Get(); ok {
		ps = append(ps, func(t *model.ShiftTask) bool { return t.DateTimeShiftEnd.Equal(v) })
	}
	return ps
}

// Apply 逐个条件收窄，保持输入顺序。空过滤器原样返回。
func (f ShiftTaskFilter) Apply(tasks []model.ShiftTask) []model.ShiftTask {
	result := tasks
	for _, match := range f.predicates() {
		narrowed := make([]model.ShiftTask, 0, len(result))
		for i := range result {
			if match(&result[i]) {
				narrowed = append(narrowed, result[i])
			}
		}
		result = narrowed
	}
	return result
}
