package sppfile

import (
	"time"

	"github.com/15226124477/coord"
)

const (
	CLight = 299792458.0 // 光速 m/s

	MaxTableSat = 20 // 卫星状态表默认最大行数
)

// SolutionStatus 解状态
type SolutionStatus int

const (
	StatusNone SolutionStatus = iota
	StatusFix
	StatusFloat
	StatusSBAS
	StatusDGPS
	StatusSingle
	StatusPPP
	StatusDeadReckoning
)

// Observation 单颗卫星的一条观测记录
type Observation struct {
	Time    time.Time // GPST
	Sat     int       // 卫星序号 1..MaxSat
	Code    float64   // 伪距 m
	Phase   float64   // 载波相位 cycle
	Doppler float64   // 多普勒 Hz
	SNR     float64   // 信噪比 dB-Hz
}

// Station 观测文件头中的测站信息
type Station struct {
	Name            string
	Marker          string
	ReceiverNumber  string
	ReceiverType    string
	ReceiverVersion string
	AntennaNumber   string
	AntennaType     string
	ApproxPos       [3]float64 // ECEF m, 未给出时为0
}

// Epoch 同一观测时刻的一组观测 (调用方切片的子区间)
type Epoch struct {
	Index int       // 历元序号, 从1开始
	Start time.Time // 锚定时间
	Obs   []Observation
}

// Solution 单历元定位结果
type Solution struct {
	Status SolutionStatus
	Pos    [3]float64 // ECEF m
	Qr     [6]float64 // XX YY ZZ XY YZ ZX
	Dtr    [4]float64 // 接收机钟差 s: GPS GLO GAL BDS
	NumSat int        // 有效卫星数
}

// SatelliteStatus 单颗卫星的解算诊断
type SatelliteStatus struct {
	Azimuth   float64 // rad
	Elevation float64 // rad
	ResidualP float64 // 伪距残差 m
	ResidualL float64 // 载波残差 m
	Valid     bool    // 本历元有观测并参与处理, 决定是否列入卫星表
	Used      bool    // 通过检验, 用于定位解
}

// SatelliteBuffer 按卫星序号索引, 下标0对应卫星1
type SatelliteBuffer [MaxSat]SatelliteStatus

// EpochScratch 每个历元复用的临时状态, 每次解算前必须显式清零
type EpochScratch struct {
	Sol     Solution
	Ssat    SatelliteBuffer
	Message string
}

// Reset 清空上一历元的残留数据
func (s *EpochScratch) Reset() {
	s.Sol = Solution{}
	s.Ssat = SatelliteBuffer{}
	s.Message = ""
}

// PositionPoint 被接受的单历元位置
type PositionPoint struct {
	coord.GpstTime   // 点时间
	coord.Coordinate // 点坐标
	coord.Sat        // 点卫星数
	coord.Sol        // 点解状态
}

// EpochRecord 每个历元的处理摘要, 供导出使用
type EpochRecord struct {
	Index      int
	Time       time.Time
	ObsCount   int
	ReturnCode int
	Status     SolutionStatus
	NumSat     int
	OK         bool
	Message    string
}
