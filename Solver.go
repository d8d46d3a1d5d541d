package sppfile

// Solver 外部定位解算器
//
// Solve 填充 sol 和 ssat, 返回解算是否成功以及可选的诊断信息。
// 成功时也可能返回警告信息。
type Solver interface {
	Solve(obs []Observation, nav *Navigation, opt ProcessingOptions, sol *Solution, ssat *SatelliteBuffer) (ok bool, msg string)
}

// SolverFunc 函数适配器
type SolverFunc func(obs []Observation, nav *Navigation, opt ProcessingOptions, sol *Solution, ssat *SatelliteBuffer) (bool, string)

// Solve 调用 f
func (f SolverFunc) Solve(obs []Observation, nav *Navigation, opt ProcessingOptions, sol *Solution, ssat *SatelliteBuffer) (bool, string) {
	return f(obs, nav, opt, sol, ssat)
}

// Outcome 单历元解算结果分类
type Outcome struct {
	ReturnCode int  // 解算器原始返回值 1/0
	Failed     bool // 返回失败或解状态为 None
	Message    string
	Sol        *Solution
	Ssat       *SatelliteBuffer
}

// Invoke 对一个历元调用解算器, 不重试
func Invoke(solver Solver, ep Epoch, nav *Navigation, opt ProcessingOptions, scratch *EpochScratch) Outcome {
	scratch.Reset()

	ok, msg := solver.Solve(ep.Obs, nav, opt, &scratch.Sol, &scratch.Ssat)
	scratch.Message = msg

	out := Outcome{
		Message: msg,
		Sol:     &scratch.Sol,
		Ssat:    &scratch.Ssat,
	}
	if ok {
		out.ReturnCode = 1
	}
	out.Failed = !ok || scratch.Sol.Status == StatusNone
	return out
}
