package sppfile

import (
	"time"

	"github.com/15226124477/coord"
	"github.com/15226124477/method"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunSummary 整个运行期间的统计, 由调用方持有
type RunSummary struct {
	RunID        string
	EpochCount   int // 历元总数
	SuccessCount int // 成功解算历元数

	Points []PositionPoint // 有效位置, 容量为最大历元数
	Epochs []EpochRecord   // 各历元摘要

	capacity  int
	finalized bool

	Mean         [3]float64 // ECEF 均值
	Std          [3]float64 // ECEF 样本标准差
	MeanGeodetic [3]float64 // 均值大地坐标 rad rad m
	Combined     float64    // 三轴标准差平方和开方
}

// NewRunSummary 创建空统计, maxEpochs 为位置缓冲容量
func NewRunSummary(maxEpochs int) *RunSummary {
	if maxEpochs < 0 {
		maxEpochs = 0
	}
	return &RunSummary{
		RunID:    uuid.NewString(),
		Points:   make([]PositionPoint, 0, minInt(maxEpochs, 4096)),
		capacity: maxEpochs,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Capacity 位置缓冲容量
func (rs *RunSummary) Capacity() int {
	return rs.capacity
}

// CountEpoch 记录一个历元的处理结果, 达到上限后不再计数
func (rs *RunSummary) CountEpoch(rec EpochRecord) bool {
	if rs.EpochCount >= rs.capacity {
		return false
	}
	rs.EpochCount++
	if rec.OK {
		rs.SuccessCount++
	}
	rs.Epochs = append(rs.Epochs, rec)
	return true
}

// Record 添加一个有效位置, 无解或缓冲已满时丢弃
func (rs *RunSummary) Record(t time.Time, sol *Solution) bool {
	if sol.Status == StatusNone {
		return false
	}
	if len(rs.Points) >= rs.capacity {
		log.Warning("位置缓冲已满, 丢弃:", FormatTime(t, 3))
		return false
	}
	point := PositionPoint{
		GpstTime:   coord.GpstTime{GPST: t},
		Coordinate: coord.Coordinate{ConvertBefore: coord.XYZ, ConvertAfter: coord.XYZ},
		Sat:        coord.Sat{SatNum: sol.NumSat},
		Sol:        coord.Sol{SolValue: int(sol.Status), SolMode: coord.POS},
	}
	point.Coordinate.CoordinateXYZ.X = sol.Pos[0]
	point.Coordinate.CoordinateXYZ.Y = sol.Pos[1]
	point.Coordinate.CoordinateXYZ.Z = sol.Pos[2]
	rs.Points = append(rs.Points, point)
	return true
}

// Positions 有效位置 ECEF 列表
func (rs *RunSummary) Positions() [][3]float64 {
	out := make([][3]float64, 0, len(rs.Points))
	for _, p := range rs.Points {
		out = append(out, [3]float64{p.CoordinateXYZ.X, p.CoordinateXYZ.Y, p.CoordinateXYZ.Z})
	}
	return out
}

// SuccessRate 成功率(%), 无历元时为0
func (rs *RunSummary) SuccessRate() float64 {
	if rs.EpochCount == 0 {
		return 0
	}
	return 100 * float64(rs.SuccessCount) / float64(rs.EpochCount)
}

// HasStatistic 是否有可输出的均值/标准差
func (rs *RunSummary) HasStatistic() bool {
	return rs.finalized && len(rs.Points) > 0
}

// Finalize 计算均值 标准差 和大地坐标, 循环结束后调用一次
func (rs *RunSummary) Finalize() {
	if rs.finalized {
		return
	}
	rs.finalized = true
	n := len(rs.Points)
	if n == 0 {
		log.Info("没有有效位置, 不输出统计")
		return
	}

	axes := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	for _, pos := range rs.Positions() {
		for i := 0; i < 3; i++ {
			axes[i] = append(axes[i], pos[i])
		}
	}
	for i := 0; i < 3; i++ {
		rs.Mean[i] = method.Average(axes[i])
		if n > 1 {
			// 样本标准差, 分母 n-1
			rs.Std[i] = stat.StdDev(axes[i], nil)
		} else {
			rs.Std[i] = 0
		}
	}
	rs.MeanGeodetic = ECEFToGeodetic(rs.Mean)
	// 直接使用已算出的三轴标准差
	rs.Combined = floats.Norm(rs.Std[:], 2)
	log.Debug("有效位置数:", n, " 均值:", rs.Mean, " 标准差:", rs.Std)
}
