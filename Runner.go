package sppfile

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNoObservations = errors.New("no observation data")
	ErrNoNavigation   = errors.New("no navigation data")
)

// Runner 逐历元调用解算器并汇总结果, 单线程
type Runner struct {
	cfg      Config
	solver   Solver
	reporter *Reporter
	metrics  *Metrics
}

// NewRunner 创建处理流程, 报告写入 out
func NewRunner(cfg Config, solver Solver, out io.Writer) *Runner {
	return &Runner{
		cfg:      cfg,
		solver:   solver,
		reporter: NewReporter(out, cfg.MaxTableSats),
		metrics:  NewMetrics(),
	}
}

// Metrics 本次运行的指标
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// ReportStation 输出观测文件的测站信息
func (r *Runner) ReportStation(st Station) {
	r.reporter.StationReport(st)
}

// Run 处理全部历元; 观测或星历为空时直接返回错误, 不处理任何历元
func (r *Runner) Run(obs []Observation, nav *Navigation) (*RunSummary, error) {
	summary := NewRunSummary(r.cfg.MaxEpochs)
	if len(obs) == 0 {
		return summary, ErrNoObservations
	}
	if nav.Count() == 0 {
		return summary, ErrNoNavigation
	}

	opt := r.cfg.Options()
	r.reporter.OptionsReport(opt, r.cfg.MaxEpochs)
	seg := NewSegmenter(obs, r.cfg.Tolerance(), r.cfg.MaxEpochs)
	var scratch EpochScratch
	for {
		ep, ok := seg.Next()
		if !ok {
			break
		}
		out := Invoke(r.solver, ep, nav, opt, &scratch)
		summary.CountEpoch(EpochRecord{
			Index:      ep.Index,
			Time:       ep.Start,
			ObsCount:   len(ep.Obs),
			ReturnCode: out.ReturnCode,
			Status:     out.Sol.Status,
			NumSat:     out.Sol.NumSat,
			OK:         !out.Failed,
			Message:    out.Message,
		})
		r.metrics.ObserveEpoch(len(ep.Obs), out)
		if out.Failed {
			log.Debug("历元解算失败:", ep.Index, " ", FormatTime(ep.Start, 3), " ", out.Message)
		} else {
			summary.Record(ep.Start, out.Sol)
		}
		r.reporter.EpochReport(ep, out)
	}
	log.Info("历元总数:", summary.EpochCount, " 成功:", summary.SuccessCount, " 观测使用:", seg.Consumed(), "/", len(obs))

	summary.Finalize()
	r.reporter.SummaryReport(summary)
	r.export(summary)
	if err := r.reporter.Err(); err != nil {
		return summary, fmt.Errorf("write report: %w", err)
	}
	return summary, nil
}

// export 附加输出, 失败只记录日志
func (r *Runner) export(summary *RunSummary) {
	if path := r.cfg.Export.Xlsx; path != "" {
		if err := summary.ToExcelFile(path); err != nil {
			log.Warning("导出Excel失败:", err)
		}
	}
	if path := r.cfg.Export.Chart; path != "" {
		if err := summary.ToChartFile(path); err != nil {
			log.Warning("导出图表失败:", err)
		}
	}
	if path := r.cfg.Export.Metrics; path != "" {
		if err := r.metrics.WriteTextfile(path); err != nil {
			log.Warning("导出指标失败:", err)
		}
	}
}
