package sppfile

import (
	"fmt"
	"io"
	"math"
	"strings"
)

var clockSystems = [4]string{"GPS", "GLONASS", "Galileo", "BeiDou"}

// StatusName 解状态名称
func StatusName(s SolutionStatus) string {
	switch s {
	case StatusNone:
		return "No Solution"
	case StatusFix:
		return "Fix"
	case StatusFloat:
		return "Float"
	case StatusSBAS:
		return "SBAS"
	case StatusDGPS:
		return "DGPS"
	case StatusSingle:
		return "Single"
	case StatusPPP:
		return "PPP"
	case StatusDeadReckoning:
		return "Dead Reckoning"
	default:
		return "Unknown"
	}
}

// Reporter 输出逐历元和汇总诊断文本
type Reporter struct {
	w            io.Writer
	maxTableSats int
	err          error // 第一次写入错误
}

// NewReporter 创建报告输出, maxTableSats 为卫星表最大行数
func NewReporter(w io.Writer, maxTableSats int) *Reporter {
	return &Reporter{w: w, maxTableSats: maxTableSats}
}

// Err 返回写入过程中的第一个错误
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// ValidSatellites 按序号升序返回前 max 颗有效卫星
func ValidSatellites(ssat *SatelliteBuffer, max int) []int {
	sats := make([]int, 0, max)
	for i := 0; i < MaxSat && len(sats) < max; i++ {
		if ssat[i].Valid {
			sats = append(sats, i+1)
		}
	}
	return sats
}

// StationReport 测站信息, 近似坐标同时给出大地坐标
func (r *Reporter) StationReport(st Station) {
	r.printf("\n----- Station Info -----\n")
	r.printf("  Marker name      : %s\n", st.Name)
	r.printf("  Marker number    : %s\n", st.Marker)
	r.printf("  Receiver         : %s %s (#%s)\n", st.ReceiverType, st.ReceiverVersion, st.ReceiverNumber)
	r.printf("  Antenna          : %s (#%s)\n", st.AntennaType, st.AntennaNumber)
	if st.ApproxPos == [3]float64{} {
		r.printf("  Approx position  : not available\n")
		return
	}
	r.printf("  Approx X/Y/Z (m) : %15.4f %15.4f %15.4f\n", st.ApproxPos[0], st.ApproxPos[1], st.ApproxPos[2])
	blh := ECEFToGeodetic(st.ApproxPos)
	lat, ns := hemisphere(blh[0], "N", "S")
	lon, ew := hemisphere(blh[1], "E", "W")
	r.printf("  Approx latitude  : %14.9f %s\n", lat, ns)
	r.printf("  Approx longitude : %14.9f %s\n", lon, ew)
	r.printf("  Approx height (m): %14.4f\n", blh[2])
}

// OptionsReport 处理开始前的系统和处理选项
func (r *Reporter) OptionsReport(opt ProcessingOptions, maxEpochs int) {
	names := make([]string, 0, len(sysOrder))
	for _, s := range sysOrder {
		names = append(names, s.name)
	}
	r.printf("\n----- Processing Options -----\n")
	r.printf("  Supported systems : %s\n", strings.Join(names, " "))
	r.printf("  Mode              : %s\n", opt.Mode)
	r.printf("  Nav systems       : %s\n", strings.Join(opt.NavSys, "+"))
	r.printf("  Frequencies       : %d\n", opt.Frequencies)
	r.printf("  Elevation mask    : %.1f deg\n", opt.ElevationMask*R2D)
	r.printf("  Ephemeris         : %s\n", opt.Ephemeris)
	r.printf("  Ionosphere        : %s\n", opt.Ionosphere)
	r.printf("  Troposphere       : %s\n", opt.Troposphere)
	r.printf("Processing up to %d epochs\n", maxEpochs)
}

// EpochReport 单历元报告
func (r *Reporter) EpochReport(ep Epoch, out Outcome) {
	r.printf("\n----- Epoch %d  %s -----\n", ep.Index, FormatTime(ep.Start, 3))
	r.printf("  Observations   : %d\n", len(ep.Obs))
	r.printf("  Return code    : %d\n", out.ReturnCode)
	if out.Message != "" {
		r.printf("  Message        : %s\n", out.Message)
	}
	if out.Failed {
		r.printf("  Positioning failed (status: %s)\n", StatusName(out.Sol.Status))
		return
	}

	sol := out.Sol
	r.printf("  Status         : %s\n", StatusName(sol.Status))
	r.printf("  Valid sats     : %d\n", sol.NumSat)
	r.printf("  ECEF X (m)     : %15.4f\n", sol.Pos[0])
	r.printf("  ECEF Y (m)     : %15.4f\n", sol.Pos[1])
	r.printf("  ECEF Z (m)     : %15.4f\n", sol.Pos[2])

	blh := ECEFToGeodetic(sol.Pos)
	lat, ns := hemisphere(blh[0], "N", "S")
	lon, ew := hemisphere(blh[1], "E", "W")
	r.printf("  Latitude       : %14.9f %s\n", lat, ns)
	r.printf("  Longitude      : %14.9f %s\n", lon, ew)
	r.printf("  Height (m)     : %14.4f\n", blh[2])

	q := sol.Qr
	r.printf("  Covariance (m2): XX=%.6f YY=%.6f ZZ=%.6f XY=%.6f YZ=%.6f ZX=%.6f\n",
		q[0], q[1], q[2], q[3], q[4], q[5])
	r.printf("  Std X/Y/Z (m)  : %.4f %.4f %.4f\n", math.Sqrt(q[0]), math.Sqrt(q[1]), math.Sqrt(q[2]))
	r.printf("  Std 3D (m)     : %.4f\n", math.Sqrt(q[0]+q[1]+q[2]))

	r.printf("  Clock bias     :\n")
	for i, name := range clockSystems {
		r.printf("    %-8s %16.9e s %14.3f m\n", name, sol.Dtr[i], sol.Dtr[i]*CLight)
	}

	sats := ValidSatellites(out.Ssat, r.maxTableSats)
	r.printf("  Satellites (%d shown)\n", len(sats))
	r.printf("    %-4s %-5s %8s %8s %10s %10s %5s\n", "SAT", "SYS", "AZ(deg)", "EL(deg)", "RES_P(m)", "RES_L(m)", "USED")
	for _, sat := range sats {
		st := out.Ssat[sat-1]
		used := "NO"
		if st.Used {
			used = "YES"
		}
		r.printf("    %-4s %-5s %8.2f %8.2f %10.4f %10.4f %5s\n",
			SatID(sat), ConstellationName(sat), st.Azimuth*R2D, st.Elevation*R2D, st.ResidualP, st.ResidualL, used)
	}
}

// SummaryReport 运行汇总报告
func (r *Reporter) SummaryReport(rs *RunSummary) {
	r.printf("\n========== Run Summary ==========\n")
	r.printf("  Epochs processed : %d\n", rs.EpochCount)
	r.printf("  Successful       : %d\n", rs.SuccessCount)
	r.printf("  Success rate     : %.1f%%\n", rs.SuccessRate())
	if !rs.HasStatistic() {
		return
	}
	r.printf("  Valid positions  : %d\n", len(rs.Points))
	r.printf("  Mean X/Y/Z (m)   : %15.4f %15.4f %15.4f\n", rs.Mean[0], rs.Mean[1], rs.Mean[2])
	r.printf("  Std X/Y/Z (m)    : %.4f %.4f %.4f\n", rs.Std[0], rs.Std[1], rs.Std[2])
	r.printf("  Std 3D (m)       : %.4f\n", rs.Combined)
	lat, ns := hemisphere(rs.MeanGeodetic[0], "N", "S")
	lon, ew := hemisphere(rs.MeanGeodetic[1], "E", "W")
	r.printf("  Mean latitude    : %14.9f %s\n", lat, ns)
	r.printf("  Mean longitude   : %14.9f %s\n", lon, ew)
	r.printf("  Mean height (m)  : %14.4f\n", rs.MeanGeodetic[2])
}
