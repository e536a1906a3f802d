package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/repository"
)

const calendarProductID = "-//product-release-control//shift tasks//RU"

// CalendarService 以 iCalendar 形式发布班次时间表
type CalendarService interface {
	// ShiftCalendar 每个班次任务生成一个 VEVENT，起止时间取班次开始与结束
	ShiftCalendar(ctx context.Context, req *dto.ShiftTaskFilterRequest) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) ShiftCalendar(ctx context.Context, req *dto.ShiftTaskFilterRequest) (string, error) {
	tasks, err := findFiltered(ctx, s.repo, req)
	if err != nil {
		logFailure(s.logger, "查询日历数据失败", err)
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	stamp := s.now().UTC()
	for i := range tasks {
		t := &tasks[i]
		evt := cal.AddEvent(fmt.Sprintf("shift-task-%d@product-release-control", t.ID))
		evt.SetDtStampTime(stamp)
		evt.SetStartAt(t.DateTimeShiftStart.UTC())
		evt.SetEndAt(t.DateTimeShiftEnd.UTC())
		evt.SetSummary(fmt.Sprintf("%s: %s, партия %d", t.Shift, t.Nomenclature, t.PartyNumber))
		evt.SetLocation(strings.TrimSpace(t.Line + " " + t.WorkCenter))
		evt.SetDescription(fmt.Sprintf("Бригада: %s\nКодЕКН: %s\nИдентификаторРЦ: %s\nСтатусЗакрытия: %t",
			t.Team, t.CodeEKN, t.IDOfTheRC, t.ClosingStatus))
		evt.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.Serialize(), nil
}
