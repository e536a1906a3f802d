package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// ExportShiftTasks
// ═══════════════════════════════════════════════════════════

func TestExportService_ExportShiftTasks(t *testing.T) {
	repo, tasks, _ := newMockRepository()
	closed := sampleTask(2, "B")
	closed.ClosingStatus = true
	closed.ClosedAt = &mockNow
	tasks.add(sampleTask(1, "A"))
	tasks.add(closed)
	tasks.add(sampleTask(3, "A"))

	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	svc.now = func() time.Time { return mockNow }

	buf, filename, err := svc.ExportShiftTasks(context.Background(), &dto.ShiftTaskFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, "shift_tasks_20240301_103000.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4, "表头 + 3 行")
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "НомерПартии", rows[0][8])
	assert.Equal(t, "1", rows[1][8])
	assert.Equal(t, "2024-03-01T10:30:00Z", rows[2][2])
	assert.Equal(t, "2024-01-01", rows[3][9])
}

func TestExportService_ExportShiftTasks_Filtered(t *testing.T) {
	repo, tasks, _ := newMockRepository()
	tasks.add(sampleTask(1, "A"))
	tasks.add(sampleTask(2, "B"))

	svc := NewExportService(repo, zap.NewNop())
	buf, _, err := svc.ExportShiftTasks(context.Background(), &dto.ShiftTaskFilterRequest{Shift: ptr("Z")})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "无匹配记录时只有表头")
}

func TestExportService_ExportShiftTasks_StoreFailure(t *testing.T) {
	repo, tasks, _ := newMockRepository()
	tasks.err = pkgerrors.StoreUnavailable(nil)

	svc := NewExportService(repo, zap.NewNop())
	_, _, err := svc.ExportShiftTasks(context.Background(), &dto.ShiftTaskFilterRequest{})
	requireCode(t, err, http.StatusInternalServerError)
}

// ═══════════════════════════════════════════════════════════
// ShiftCalendar
// ═══════════════════════════════════════════════════════════

func TestCalendarService_ShiftCalendar(t *testing.T) {
	repo, tasks, _ := newMockRepository()
	tasks.add(sampleTask(1, "A"))
	tasks.add(sampleTask(2, "B"))

	svc := NewCalendarService(repo, zap.NewNop()).(*calendarService)
	svc.now = func() time.Time { return mockNow }

	out, err := svc.ShiftCalendar(context.Background(), &dto.ShiftTaskFilterRequest{Shift: ptr("A")})
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	evt := events[0]
	assert.Equal(t, "shift-task-1@product-release-control", evt.Id())
	start, err := evt.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)))
	end, err := evt.GetEndAt()
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)))
	assert.Contains(t, evt.GetProperty(ics.ComponentPropertySummary).Value, "партия 1")
}

func TestCalendarService_ShiftCalendar_Empty(t *testing.T) {
	repo, _, _ := newMockRepository()

	out, err := NewCalendarService(repo, zap.NewNop()).ShiftCalendar(context.Background(), &dto.ShiftTaskFilterRequest{})
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
