package sppfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrNoSolver 未配置解算程序
var ErrNoSolver = errors.New("no solver command configured")

// ExecSolver 每个历元启动一次外部解算程序
//
// 标准输入写入 JSON 请求, 标准输出读取 JSON 应答。
type ExecSolver struct {
	Command string
	Args    []string
}

// NewExecSolver 由配置创建外部解算器
func NewExecSolver(cfg SolverConfig) (*ExecSolver, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, ErrNoSolver
	}
	return &ExecSolver{Command: cfg.Command, Args: cfg.Args}, nil
}

type execObs struct {
	Time    string  `json:"time"`
	Sat     string  `json:"sat"`
	Code    float64 `json:"P"`
	Phase   float64 `json:"L"`
	Doppler float64 `json:"D"`
	SNR     float64 `json:"snr"`
}

type execRequest struct {
	Nav     string            `json:"nav"`
	Options ProcessingOptions `json:"options"`
	Obs     []execObs         `json:"obs"`
}

type execSat struct {
	Sat       string  `json:"sat"`
	Azimuth   float64 `json:"az"`
	Elevation float64 `json:"el"`
	ResidualP float64 `json:"resp"`
	ResidualL float64 `json:"resc"`
	Valid     bool    `json:"vs"`
	Used      bool    `json:"vsat"`
}

type execReply struct {
	OK     bool       `json:"ok"`
	Status int        `json:"status"`
	Pos    [3]float64 `json:"pos"`
	Qr     [6]float64 `json:"qr"`
	Dtr    [4]float64 `json:"dtr"`
	NumSat int        `json:"ns"`
	Sats   []execSat  `json:"sats"`
	Msg    string     `json:"msg"`
}

// Solve 实现 Solver; 进程或应答错误视为本历元失败
func (s *ExecSolver) Solve(obs []Observation, nav *Navigation, opt ProcessingOptions, sol *Solution, ssat *SatelliteBuffer) (bool, string) {
	req := execRequest{Options: opt, Obs: make([]execObs, 0, len(obs))}
	if nav != nil {
		req.Nav = nav.Path
	}
	for _, ob := range obs {
		req.Obs = append(req.Obs, execObs{
			Time:    FormatTime(ob.Time, 7),
			Sat:     SatID(ob.Sat),
			Code:    ob.Code,
			Phase:   ob.Phase,
			Doppler: ob.Doppler,
			SNR:     ob.SNR,
		})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return false, fmt.Sprintf("solver request: %v", err)
	}

	cmd := exec.Command(s.Command, s.Args...)
	cmd.Stdin = bytes.NewReader(body)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		log.Warning("解算程序执行失败:", err, " ", strings.TrimSpace(stderr.String()))
		return false, fmt.Sprintf("solver: %v", err)
	}

	var reply execReply
	if err := json.Unmarshal(output, &reply); err != nil {
		log.Warning("解算程序应答格式错误:", err)
		return false, fmt.Sprintf("solver reply: %v", err)
	}

	sol.Status = SolutionStatus(reply.Status)
	sol.Pos = reply.Pos
	sol.Qr = reply.Qr
	sol.Dtr = reply.Dtr
	sol.NumSat = reply.NumSat
	for _, rs := range reply.Sats {
		sat := ParseSatID(rs.Sat)
		if sat == 0 {
			continue
		}
		ssat[sat-1] = SatelliteStatus{
			Azimuth:   rs.Azimuth,
			Elevation: rs.Elevation,
			ResidualP: rs.ResidualP,
			ResidualL: rs.ResidualL,
			Valid:     rs.Valid,
			Used:      rs.Used,
		}
	}
	return reply.OK, reply.Msg
}
