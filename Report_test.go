package sppfile

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusName(t *testing.T) {
	tests := []struct {
		status SolutionStatus
		want   string
	}{
		{StatusNone, "No Solution"},
		{StatusFix, "Fix"},
		{StatusFloat, "Float"},
		{StatusSBAS, "SBAS"},
		{StatusDGPS, "DGPS"},
		{StatusSingle, "Single"},
		{StatusPPP, "PPP"},
		{StatusDeadReckoning, "Dead Reckoning"},
		{SolutionStatus(42), "Unknown"},
		{SolutionStatus(-1), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusName(tt.status))
	}
}

func successOutcome(scratch *EpochScratch) Outcome {
	return Outcome{ReturnCode: 1, Sol: &scratch.Sol, Ssat: &scratch.Ssat}
}

var satRow = regexp.MustCompile(`(?m)^    [GRECJS]\d{2} `)

func TestEpochReportLimitsSatelliteTable(t *testing.T) {
	var scratch EpochScratch
	scratch.Sol = Solution{Status: StatusSingle, Pos: [3]float64{-2148744, 4426641, 4044656}, NumSat: 35}
	// 35 颗有效卫星, 隔一个序号标记
	for i := 0; i < 35; i++ {
		scratch.Ssat[2*i+1].Valid = true
	}

	sats := ValidSatellites(&scratch.Ssat, MaxTableSat)
	require.Len(t, sats, 20)
	for i, sat := range sats {
		assert.Equal(t, 2*i+2, sat)
	}

	var buf bytes.Buffer
	r := NewReporter(&buf, MaxTableSat)
	r.EpochReport(Epoch{Index: 1, Start: t0, Obs: obsAt(0, 0)}, successOutcome(&scratch))
	require.NoError(t, r.Err())

	rows := satRow.FindAllString(buf.String(), -1)
	require.Len(t, rows, 20)
	assert.Equal(t, "    "+SatID(2)+" ", rows[0])
	assert.Equal(t, "    "+SatID(40)+" ", rows[19])
}

func TestEpochReportSuccessContents(t *testing.T) {
	var scratch EpochScratch
	pos := GeodeticToECEF([3]float64{-33.9 * D2R, -70.6 * D2R, 500})
	scratch.Sol = Solution{
		Status: StatusSingle,
		Pos:    pos,
		Qr:     [6]float64{4, 9, 16, 0.1, 0.2, 0.3},
		Dtr:    [4]float64{1e-3, 0, 0, 0},
		NumSat: 7,
	}
	scratch.Ssat[SatNo(SysGLO, 5)-1] = SatelliteStatus{Azimuth: 90 * D2R, Elevation: 45 * D2R, ResidualP: 1.5, Valid: true, Used: true}

	out := successOutcome(&scratch)
	out.Message = "large residual"
	var buf bytes.Buffer
	r := NewReporter(&buf, MaxTableSat)
	r.EpochReport(Epoch{Index: 3, Start: t0, Obs: obsAt(0)}, out)
	text := buf.String()

	assert.Contains(t, text, "Epoch 3  2024/01/15 00:00:00.000")
	assert.Contains(t, text, "Return code    : 1")
	assert.Contains(t, text, "Message        : large residual")
	assert.Contains(t, text, "Status         : Single")
	assert.Contains(t, text, "Valid sats     : 7")
	assert.Regexp(t, `Latitude\s+:\s+33\.9000000\d+ S`, text)
	assert.Regexp(t, `Longitude\s+:\s+70\.6000000\d+ W`, text)
	assert.Contains(t, text, "Std X/Y/Z (m)  : 2.0000 3.0000 4.0000")
	assert.Contains(t, text, "Std 3D (m)     : 5.3852")
	assert.Contains(t, text, "299792.458 m")
	assert.Regexp(t, `R05\s+GLO\s+90\.00\s+45\.00\s+1\.5000\s+0\.0000\s+YES`, text)
}

func TestEpochReportShowsRejectedSatellite(t *testing.T) {
	var scratch EpochScratch
	scratch.Sol = Solution{Status: StatusSingle, Pos: [3]float64{-2148744, 4426641, 4044656}, NumSat: 2}
	scratch.Ssat[0] = SatelliteStatus{Elevation: 60 * D2R, ResidualP: 0.8, Valid: true, Used: true}
	// 有观测但被解算器剔除
	scratch.Ssat[1] = SatelliteStatus{Elevation: 5 * D2R, ResidualP: 35.2, Valid: true}
	scratch.Ssat[2] = SatelliteStatus{Elevation: 40 * D2R, ResidualP: -1.1, Valid: true, Used: true}
	// 无观测, 不列入表
	scratch.Ssat[3] = SatelliteStatus{Used: true}

	var buf bytes.Buffer
	r := NewReporter(&buf, MaxTableSat)
	r.EpochReport(Epoch{Index: 1, Start: t0, Obs: obsAt(0, 0, 0)}, successOutcome(&scratch))
	require.NoError(t, r.Err())
	text := buf.String()

	assert.Len(t, satRow.FindAllString(text, -1), 3)
	assert.Regexp(t, `(?m)^    G01 .*YES$`, text)
	assert.Regexp(t, `(?m)^    G02 .*35\.2000\s+0\.0000\s+NO$`, text)
	assert.Regexp(t, `(?m)^    G03 .*YES$`, text)
	assert.NotContains(t, text, "G04")
}

func TestEpochReportFailure(t *testing.T) {
	var scratch EpochScratch
	out := Outcome{Failed: true, Message: "lack of satellites", Sol: &scratch.Sol, Ssat: &scratch.Ssat}

	var buf bytes.Buffer
	r := NewReporter(&buf, MaxTableSat)
	r.EpochReport(Epoch{Index: 2, Start: t0, Obs: obsAt(0, 0, 0)}, out)
	text := buf.String()

	assert.Contains(t, text, "Observations   : 3")
	assert.Contains(t, text, "Return code    : 0")
	assert.Contains(t, text, "Message        : lack of satellites")
	assert.Contains(t, text, "Positioning failed (status: No Solution)")
	assert.NotContains(t, text, "ECEF X")
}

func TestSummaryReportWithoutPositions(t *testing.T) {
	rs := NewRunSummary(5)
	rs.Finalize()

	var buf bytes.Buffer
	NewReporter(&buf, MaxTableSat).SummaryReport(rs)
	text := buf.String()

	assert.Contains(t, text, "Epochs processed : 0")
	assert.Contains(t, text, "Success rate     : 0.0%")
	assert.NotContains(t, text, "Mean X/Y/Z")
}

func TestSummaryReportWithPositions(t *testing.T) {
	rs := NewRunSummary(5)
	for _, ok := range []bool{true, false, true} {
		rs.CountEpoch(EpochRecord{OK: ok})
	}
	rs.Record(t0, singleSol(1000, 2000, 3000))
	rs.Record(t0, singleSol(1002, 1998, 3004))
	rs.Finalize()

	var buf bytes.Buffer
	NewReporter(&buf, MaxTableSat).SummaryReport(rs)
	text := buf.String()

	assert.Contains(t, text, "Success rate     : 66.7%")
	assert.Contains(t, text, "Std X/Y/Z (m)    : 1.4142 1.4142 2.8284")
	assert.Contains(t, text, "Std 3D (m)       : 3.4641")
	assert.Equal(t, 1, strings.Count(text, "Mean latitude"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestReporterKeepsFirstError(t *testing.T) {
	r := NewReporter(failWriter{}, MaxTableSat)
	r.SummaryReport(NewRunSummary(1))
	require.Error(t, r.Err())
	assert.Equal(t, "closed", r.Err().Error())
}

func TestStationReport(t *testing.T) {
	st := Station{
		Name:            "SANT",
		Marker:          "41705M003",
		ReceiverNumber:  "5228",
		ReceiverType:    "SEPT POLARX5",
		ReceiverVersion: "5.4.0",
		AntennaNumber:   "4311",
		AntennaType:     "AOAD/M_T        JPLA",
		ApproxPos:       GeodeticToECEF([3]float64{-33.15 * D2R, -70.66 * D2R, 723.0}),
	}

	var buf bytes.Buffer
	r := NewReporter(&buf, MaxTableSat)
	r.StationReport(st)
	require.NoError(t, r.Err())
	text := buf.String()

	assert.Contains(t, text, "Marker name      : SANT")
	assert.Contains(t, text, "Marker number    : 41705M003")
	assert.Contains(t, text, "Receiver         : SEPT POLARX5 5.4.0 (#5228)")
	assert.Contains(t, text, "Antenna          : AOAD/M_T        JPLA (#4311)")
	assert.Regexp(t, `Approx latitude\s+:\s+33\.1500000\d+ S`, text)
	assert.Regexp(t, `Approx longitude\s+:\s+70\.6600000\d+ W`, text)
	assert.Regexp(t, `Approx height \(m\):\s+723\.0000`, text)
}

func TestStationReportWithoutPosition(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, MaxTableSat).StationReport(Station{Name: "TEST"})
	assert.Contains(t, buf.String(), "Approx position  : not available")
	assert.NotContains(t, buf.String(), "Approx latitude")
}

func TestOptionsReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, MaxTableSat)
	r.OptionsReport(DefaultConfig().Options(), 3600)
	require.NoError(t, r.Err())
	text := buf.String()

	assert.Contains(t, text, "Supported systems : GPS GLO GAL QZS BDS SBAS")
	assert.Contains(t, text, "Mode              : single")
	assert.Contains(t, text, "Nav systems       : GPS+GLO+GAL+BDS")
	assert.Contains(t, text, "Elevation mask    : 10.0 deg")
	assert.Contains(t, text, "Ionosphere        : broadcast")
	assert.Contains(t, text, "Troposphere       : saastamoinen")
	assert.True(t, strings.HasSuffix(text, "Processing up to 3600 epochs\n"))
}
