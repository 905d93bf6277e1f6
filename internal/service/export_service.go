package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-planner/backend/config"
	"course-planner/backend/internal/model"
	"course-planner/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoCourses    = errors.New("课表中没有可导出的课程")
	ErrExportNoSchedules  = errors.New("暂无待审批的课表")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
//   - ExportICS：单个课表导出为 iCalendar，每门课按第一条上课安排生成每周重复事件
//   - ExportWorkbook：导师名下全部课表导出为 Excel，每门课一行
type ExportService interface {
	ExportICS(ctx context.Context, p *Principal, scheduleID string) ([]byte, string, error)
	ExportWorkbook(ctx context.Context, advisorID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportICS 导出课表为 iCalendar
// ═══════════════════════════════════════════════════════════

const sisDateLayout = "01/02/2006"

var icsWeekdays = map[string]struct {
	day   time.Weekday
	byDay string
}{
	"Mo": {time.Monday, "MO"},
	"Tu": {time.Tuesday, "TU"},
	"We": {time.Wednesday, "WE"},
	"Th": {time.Thursday, "TH"},
	"Fr": {time.Friday, "FR"},
	"Sa": {time.Saturday, "SA"},
	"Su": {time.Sunday, "SU"},
}

func (s *exportService) ExportICS(ctx context.Context, p *Principal, scheduleID string) ([]byte, string, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrScheduleNotFound
		}
		return nil, "", err
	}
	if !canView(p, schedule) {
		return nil, "", ErrScheduleAccessDenied
	}

	loc := s.cfg.Catalog.Location()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//course-planner//schedule export//EN")

	added := 0
	for i := range schedule.Courses {
		if s.addCourseEvent(cal, schedule.ScheduleID, &schedule.Courses[i], loc) {
			added++
		}
	}
	if added == 0 {
		return nil, "", ErrExportNoCourses
	}

	filename := fmt.Sprintf("%s.ics", schedule.Name)
	return []byte(cal.Serialize()), filename, nil
}

// addCourseEvent 缺少上课日、时间或起止日期的课程跳过
func (s *exportService) addCourseEvent(cal *ics.Calendar, scheduleID string, c *model.Course, loc *time.Location) bool {
	m, ok := c.FirstMeeting()
	if !ok {
		return false
	}

	var weekdays = make(map[time.Weekday]bool)
	var byDays []string
	for _, tok := range dayTokens(m.Days) {
		if wd, ok := icsWeekdays[tok]; ok && !weekdays[wd.day] {
			weekdays[wd.day] = true
			byDays = append(byDays, wd.byDay)
		}
	}
	if len(byDays) == 0 {
		return false
	}

	start, end, err := meetingSpan(m)
	if err != nil {
		return false
	}

	startDt, endDt := m.StartDt, m.EndDt
	if startDt == "" {
		startDt = c.StartDt
	}
	if endDt == "" {
		endDt = c.EndDt
	}
	firstDay, err1 := time.ParseInLocation(sisDateLayout, startDt, loc)
	lastDay, err2 := time.ParseInLocation(sisDateLayout, endDt, loc)
	if err1 != nil || err2 != nil {
		s.logger.Debug("课程缺少起止日期，跳过导出", zap.Int("class_nbr", c.ClassNbr))
		return false
	}

	// 从开课日起找到第一个上课日
	for i := 0; i < 7 && !weekdays[firstDay.Weekday()]; i++ {
		firstDay = firstDay.AddDate(0, 0, 1)
	}

	dtStart := time.Date(firstDay.Year(), firstDay.Month(), firstDay.Day(), start.Hour(), start.Minute(), 0, 0, loc)
	dtEnd := time.Date(firstDay.Year(), firstDay.Month(), firstDay.Day(), end.Hour(), end.Minute(), 0, 0, loc)
	until := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, loc).UTC()

	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{loc.String()}}

	event := cal.AddEvent(fmt.Sprintf("%s-%d@course-planner", scheduleID, c.ClassNbr))
	event.SetDtStampTime(time.Now())
	event.SetProperty(ics.ComponentPropertyDtStart, dtStart.Format("20060102T150405"), tzid)
	event.SetProperty(ics.ComponentPropertyDtEnd, dtEnd.Format("20060102T150405"), tzid)
	event.AddProperty(ics.ComponentPropertyRrule,
		fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", strings.Join(byDays, ","), until.Format("20060102T150405Z")))
	event.SetSummary(strings.TrimSpace(c.Label() + " " + c.Descr))
	if m.FacilityDescr != "" {
		event.SetLocation(m.FacilityDescr)
	}
	if m.Instructor != "" {
		event.SetDescription(m.Instructor)
	}
	return true
}

// ═══════════════════════════════════════════════════════════
// ExportWorkbook 导出导师名下课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "课表审批"
//   - 第 1 行为合并的标题 "课表审批 (导出日期)"，第 2 行为表头，数据从第 3 行开始
//   - 列：学生 | 课表 | 审批状态 | 课程 | 名称 | 学分 | 上课日 | 时间 | 教室
//   - 每门课一行；没有课程的课表占一行，课程列为 "-"

var workbookHeaders = []string{"学生", "课表", "审批状态", "课程", "名称", "学分", "上课日", "时间", "教室"}

func (s *exportService) ExportWorkbook(ctx context.Context, advisorID string) (*bytes.Buffer, string, error) {
	schedules, err := s.repo.Schedule.ListByApprover(ctx, advisorID)
	if err != nil {
		s.logger.Error("查询导师课表失败", zap.String("advisor_id", advisorID), zap.Error(err))
		return nil, "", err
	}
	if len(schedules) == 0 {
		return nil, "", ErrExportNoSchedules
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课表审批"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	widths := []float64{16, 20, 12, 14, 36, 6, 10, 20, 28}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("课表审批 (%s)", time.Now().Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", cell(colName(len(workbookHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range workbookHeaders {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(workbookHeaders)-1), row), headerStyle)

	// 数据行
	row = 3
	for i := range schedules {
		sched := &schedules[i]
		studentName := ""
		if sched.Student != nil {
			studentName = sched.Student.DisplayName()
		}
		prefix := []interface{}{studentName, sched.Name, sched.ApprovalStatus.Label()}

		if len(sched.Courses) == 0 {
			writeRow(f, sheetName, row, append(prefix, "-", "", "", "", "", ""))
			row++
			continue
		}
		for j := range sched.Courses {
			c := &sched.Courses[j]
			days, span, room := "", "", ""
			if m, ok := c.FirstMeeting(); ok {
				days = m.Days
				if m.StartTime != "" {
					span = m.StartTime + "-" + m.EndTime
				}
				room = m.FacilityDescr
			}
			writeRow(f, sheetName, row, append(prefix, c.Label(), c.Descr, c.Units, days, span, room))
			row++
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课表审批_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
