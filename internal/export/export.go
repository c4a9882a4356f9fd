package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yardroster/backend/internal/models"
	"github.com/yardroster/backend/internal/utils"
)

const colWidth = 30

// Filename is the download name for a roster exported on the given day,
// e.g. "Roster-2026-08-29.xlsx".
func Filename(now time.Time) string {
	return "Roster-" + now.Format("2006-01-02") + ".xlsx"
}

// CellFormatter renders one yard block into its timetable cell. Passing
// nil to Workbook or Write selects CellText.
type CellFormatter func(models.YardSchedule) string

// CellText is the default cell template: the yard name on the first line,
// then the comma-joined worker names or "None".
func CellText(yard models.YardSchedule) string {
	workers := "None"
	if len(yard.Workers) > 0 {
		workers = strings.Join(yard.Workers, ", ")
	}
	return yard.CarYardName + "\nWorkers: " + workers
}

// CellTextWithTimes extends CellText with the block's time span on its
// own line.
func CellTextWithTimes(yard models.YardSchedule) string {
	workers := "None"
	if len(yard.Workers) > 0 {
		workers = strings.Join(yard.Workers, ", ")
	}
	return yard.CarYardName + "\nTime: " + TimeRange(yard) + "\nWorkers: " + workers
}

// Workbook lays the roster out as a week grid: one column per working day,
// one row per yard slot. Days with fewer yards leave their lower cells
// blank. A roster with no yards at all still gets the header row.
func Workbook(days []models.DayRoster, now time.Time, cell CellFormatter) (*excelize.File, error) {
	if cell == nil {
		cell = CellText
	}
	sheet := strings.TrimSuffix(Filename(now), ".xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(models.DaysOfWeek))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, colWidth); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	for i, day := range models.DaysOfWeek {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, capitalizeDay(day)); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheet, 1, 30); err != nil {
		return nil, err
	}

	byDay := map[models.DayOfWeek][]models.YardSchedule{}
	maxYards := 0
	for _, d := range days {
		byDay[d.Day] = d.Yards
		if len(d.Yards) > maxYards {
			maxYards = len(d.Yards)
		}
	}

	for row := 0; row < maxYards; row++ {
		if err := f.SetRowHeight(sheet, row+2, 60); err != nil {
			return nil, err
		}
		for col, day := range models.DaysOfWeek {
			yards := byDay[day]
			if row >= len(yards) {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheet, ref, cell(yards[row])); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet, ref, ref, cellStyle); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// Write streams the roster workbook to w.
func Write(w io.Writer, days []models.DayRoster, now time.Time, cell CellFormatter) error {
	f, err := Workbook(days, now, cell)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// TimeRange formats a block's span for display, "05:30 - 09:00".
func TimeRange(yard models.YardSchedule) string {
	return utils.FormatClock(yard.StartTime) + " - " + utils.FormatClock(yard.FinishTime)
}

func capitalizeDay(day models.DayOfWeek) string {
	s := string(day)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
