package sppfile

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
)

// ToChartFile 输出各历元相对均值的 ECEF 偏差曲线 (html)
func (rs *RunSummary) ToChartFile(htmlPath string) error {
	if !rs.HasStatistic() {
		log.Info("没有有效位置, 跳过绘图")
		return nil
	}
	xlist := make([]string, 0, len(rs.Points))
	series := [3][]opts.LineData{}
	for _, p := range rs.Points {
		xlist = append(xlist, FormatTime(p.GPST, 1))
		series[0] = append(series[0], opts.LineData{Value: p.CoordinateXYZ.X - rs.Mean[0]})
		series[1] = append(series[1], opts.LineData{Value: p.CoordinateXYZ.Y - rs.Mean[1]})
		series[2] = append(series[2], opts.LineData{Value: p.CoordinateXYZ.Z - rs.Mean[2]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "sppfile", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "ECEF deviation from mean (m)",
			Subtitle: fmt.Sprintf("run %s, %d positions, std3D %.3f m", rs.RunID, len(rs.Points), rs.Combined),
		}),
	)
	line.SetXAxis(xlist).
		AddSeries("dX", series[0]).
		AddSeries("dY", series[1]).
		AddSeries("dZ", series[2])

	file, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Error(err)
		}
	}(file)
	if err := line.Render(file); err != nil {
		return fmt.Errorf("render %s: %w", htmlPath, err)
	}
	log.Info("导出图表:", htmlPath)
	return nil
}
