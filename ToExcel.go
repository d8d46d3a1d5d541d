package sppfile

import (
	"fmt"

	"github.com/15226124477/method"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	epochSheet   = "Epochs"
)

// ToExcelFile 导出运行统计到 xlsx
func (rs *RunSummary) ToExcelFile(xlsxPath string) error {
	xlsx := excelize.NewFile()
	defer func() {
		if err := xlsx.Close(); err != nil {
			log.Error(err)
		}
	}()

	if err := xlsx.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := rs.toSummarySheet(xlsx); err != nil {
		return err
	}
	if _, err := xlsx.NewSheet(epochSheet); err != nil {
		return err
	}
	if err := rs.toEpochSheet(xlsx); err != nil {
		return err
	}
	if err := xlsx.SaveAs(xlsxPath); err != nil {
		return fmt.Errorf("save %s: %w", xlsxPath, err)
	}
	log.Info("导出Excel:", xlsxPath)
	return nil
}

// toSummarySheet 汇总表, 两列 名称/值
func (rs *RunSummary) toSummarySheet(xlsx *excelize.File) error {
	rows := [][]interface{}{
		{"RunID", rs.RunID},
		{"Epochs", rs.EpochCount},
		{"Success", rs.SuccessCount},
		{"SuccessRate(%)", method.Decimal(rs.SuccessRate(), 1)},
		{"ValidPositions", len(rs.Points)},
	}
	if rs.HasStatistic() {
		rows = append(rows,
			[]interface{}{"MeanX(m)", method.Decimal(rs.Mean[0], 4)},
			[]interface{}{"MeanY(m)", method.Decimal(rs.Mean[1], 4)},
			[]interface{}{"MeanZ(m)", method.Decimal(rs.Mean[2], 4)},
			[]interface{}{"StdX(m)", method.Decimal(rs.Std[0], 4)},
			[]interface{}{"StdY(m)", method.Decimal(rs.Std[1], 4)},
			[]interface{}{"StdZ(m)", method.Decimal(rs.Std[2], 4)},
			[]interface{}{"Std3D(m)", method.Decimal(rs.Combined, 4)},
			[]interface{}{"MeanLat(deg)", method.Decimal(rs.MeanGeodetic[0]*R2D, 9)},
			[]interface{}{"MeanLon(deg)", method.Decimal(rs.MeanGeodetic[1]*R2D, 9)},
			[]interface{}{"MeanHeight(m)", method.Decimal(rs.MeanGeodetic[2], 4)},
		)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := xlsx.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// toEpochSheet 逐历元表
func (rs *RunSummary) toEpochSheet(xlsx *excelize.File) error {
	header := []interface{}{"Epoch", "GPST", "Obs", "ReturnCode", "Status", "NumSat", "OK", "Message"}
	if err := xlsx.SetSheetRow(epochSheet, "A1", &header); err != nil {
		return err
	}
	for i, rec := range rs.Epochs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			rec.Index,
			FormatTime(rec.Time, 3),
			rec.ObsCount,
			rec.ReturnCode,
			StatusName(rec.Status),
			rec.NumSat,
			rec.OK,
			rec.Message,
		}
		if err := xlsx.SetSheetRow(epochSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
