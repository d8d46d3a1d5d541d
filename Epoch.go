package sppfile

import "time"

// Segmenter 将排序后的观测序列按时间容差切分为历元
//
// 历元内每条记录与历元首条记录(锚点)比较, 而不是与相邻记录比较:
// |t - t_anchor| < tolerance。
type Segmenter struct {
	obs       []Observation
	tolerance time.Duration
	maxEpochs int

	cursor int // 下一历元起点
	count  int // 已输出历元数
}

// NewSegmenter 创建历元切分器
func NewSegmenter(obs []Observation, tolerance time.Duration, maxEpochs int) *Segmenter {
	return &Segmenter{
		obs:       obs,
		tolerance: tolerance,
		maxEpochs: maxEpochs,
	}
}

// Next 返回下一个历元, 输入耗尽或达到历元上限时返回 false
func (s *Segmenter) Next() (Epoch, bool) {
	for s.cursor < len(s.obs) && s.count < s.maxEpochs {
		anchor := s.obs[s.cursor].Time
		n := 0
		for s.cursor+n < len(s.obs) {
			dt := s.obs[s.cursor+n].Time.Sub(anchor)
			if dt < 0 {
				dt = -dt
			}
			if dt >= s.tolerance {
				break
			}
			n++
		}
		if n == 0 {
			// 仅在容差非正时出现
			s.cursor++
			continue
		}
		s.count++
		ep := Epoch{
			Index: s.count,
			Start: anchor,
			Obs:   s.obs[s.cursor : s.cursor+n : s.cursor+n],
		}
		s.cursor += n
		return ep, true
	}
	return Epoch{}, false
}

// Consumed 已分配到历元中的记录数
func (s *Segmenter) Consumed() int {
	return s.cursor
}
