package services

import (
	"context"
	"fmt"

	"cryptoportfolio/src/schemas"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

const (
	ValuationSheet = "Valuation"
	SnapshotsSheet = "Snapshots"
	totalRowLabel  = "TOTAL"
)

type ReportServiceI interface {
	ValuationDataFrame(valuation *schemas.PortfolioValuation) dataframe.DataFrame
	GenerateValuationXLSX(ctx context.Context, valuation *schemas.PortfolioValuation, snapshots []schemas.SnapshotResponse) (*excelize.File, error)
}

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// ValuationDataFrame lays a valuation out as one row per holding followed by a
// TOTAL row.
func (rs *ReportService) ValuationDataFrame(valuation *schemas.PortfolioValuation) dataframe.DataFrame {
	n := len(valuation.Holdings) + 1
	assets := make([]string, 0, n)
	quantities := make([]float64, 0, n)
	prices := make([]float64, 0, n)
	values := make([]float64, 0, n)

	for _, h := range valuation.Holdings {
		assets = append(assets, h.Asset)
		quantities = append(quantities, h.Quantity.InexactFloat64())
		prices = append(prices, h.Price)
		values = append(values, h.Value)
	}
	assets = append(assets, totalRowLabel)
	quantities = append(quantities, 0)
	prices = append(prices, 0)
	values = append(values, valuation.TotalValue)

	return dataframe.New(
		series.New(assets, series.String, "Asset"),
		series.New(quantities, series.Float, "Quantity"),
		series.New(prices, series.Float, "Price"),
		series.New(values, series.Float, "Value"),
	)
}

func (rs *ReportService) snapshotsDataFrame(snapshots []schemas.SnapshotResponse) dataframe.DataFrame {
	dates := make([]string, len(snapshots))
	totals := make([]float64, len(snapshots))
	for i, s := range snapshots {
		dates[i] = s.Date
		totals[i] = s.TotalValue
	}
	return dataframe.New(
		series.New(dates, series.String, "Date"),
		series.New(totals, series.Float, "TotalValue"),
	)
}

// GenerateValuationXLSX builds a workbook with the valuation breakdown and, when
// there are any, the recorded snapshots of the portfolio.
func (rs *ReportService) GenerateValuationXLSX(ctx context.Context, valuation *schemas.PortfolioValuation, snapshots []schemas.SnapshotResponse) (*excelize.File, error) {
	file, err := rs.convertDataframeToExcel(nil, rs.ValuationDataFrame(valuation), ValuationSheet)
	if err != nil {
		return nil, err
	}

	if len(snapshots) > 0 {
		file, err = rs.convertDataframeToExcel(file, rs.snapshotsDataFrame(snapshots), SnapshotsSheet)
		if err != nil {
			return nil, err
		}
	}

	if err := rs.applyStylesToAllSheets(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (rs *ReportService) convertDataframeToExcel(f *excelize.File, df dataframe.DataFrame, sheetName string) (*excelize.File, error) {
	if df.Err != nil {
		return nil, df.Err
	}

	if f == nil {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	for colIndex, name := range df.Names() {
		cell, err := excelize.CoordinatesToCellName(colIndex+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}

		col := df.Col(name)
		for rowIndex := 0; rowIndex < col.Len(); rowIndex++ {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, err
			}
			elem := col.Elem(rowIndex)
			if col.Type() == series.String {
				err = f.SetCellValue(sheetName, cell, elem.String())
			} else {
				err = f.SetCellValue(sheetName, cell, elem.Float())
				if err == nil {
					err = f.SetCellStyle(sheetName, cell, cell, numberStyle)
				}
			}
			if err != nil {
				return nil, fmt.Errorf("writing %s!%s: %w", sheetName, cell, err)
			}
		}
	}
	return f, nil
}

func (rs *ReportService) applyStylesToAllSheets(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	for _, sheetName := range f.GetSheetList() {
		cols, err := f.GetCols(sheetName)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			continue
		}

		lastHeader, err := excelize.CoordinatesToCellName(len(cols), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
			return err
		}

		lastCol, err := excelize.ColumnNumberToName(len(cols))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, "A", lastCol, 16); err != nil {
			return err
		}
	}
	return nil
}
