package sppfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/15226124477/method"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Ephemeris 一条广播星历, Values 按RINEX顺序存放 (af0 af1 af2 IODE ...)
type Ephemeris struct {
	Sat    int
	Toc    time.Time
	Values []float64
}

// Navigation 导航数据集
type Navigation struct {
	Path string
	Eph  []Ephemeris // GPS GAL QZS BDS
	Geph []Ephemeris // GLONASS
	Seph []Ephemeris // SBAS
}

// Count 星历总数
func (nav *Navigation) Count() int {
	if nav == nil {
		return 0
	}
	return len(nav.Eph) + len(nav.Geph) + len(nav.Seph)
}

// openText 打开文本文件, gbk 编码时转为utf-8
func openText(path, encoding string) (io.Reader, func() error, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	var r io.Reader = fi
	if encoding == "gbk" {
		r = transform.NewReader(fi, simplifiedchinese.GBK.NewDecoder())
	}
	return r, fi.Close, nil
}

// readLines 逐行读取, 去掉行尾换行
func readLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if len(line) > 0 {
			if fnErr := fn(strings.TrimRight(line, "\r\n")); fnErr != nil {
				return fnErr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

func headerLabel(line string) string {
	if len(line) <= 60 {
		return ""
	}
	return strings.TrimSpace(line[60:])
}

func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

// closeLogged 关闭文件, 错误只记录
func closeLogged(closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Error(err)
	}
}

// LoadObservation 加载RINEX 3 观测文件, 返回按时间排序的观测和文件头中的测站信息
func LoadObservation(path, encoding string) ([]Observation, Station, error) {
	log.Debug("加载观测文件:", path)
	r, closeFn, err := openText(path, encoding)
	if err != nil {
		return nil, Station{}, fmt.Errorf("open observation %s: %w", path, err)
	}
	defer closeLogged(closeFn)

	p := obsParser{types: make(map[byte][]string)}
	if err := readLines(r, p.line); err != nil {
		return nil, p.station, fmt.Errorf("read observation %s: %w", path, err)
	}
	SortObservation(p.obs)
	log.Info("测站:", p.station.Name, " 观测记录数:", len(p.obs), " 历元头数:", p.epochs)
	return p.obs, p.station, nil
}

type obsParser struct {
	inBody  bool
	types   map[byte][]string // 各系统观测类型
	lastSys byte
	station Station

	epochTime time.Time
	remain    int  // 当前历元剩余卫星行
	skip      bool // 事件记录, 跳过
	epochs    int

	obs []Observation
}

func (p *obsParser) line(line string) error {
	if !p.inBody {
		switch headerLabel(line) {
		case "SYS / # / OBS TYPES":
			if line[0] != ' ' {
				p.lastSys = line[0]
				p.types[p.lastSys] = nil
			}
			p.types[p.lastSys] = append(p.types[p.lastSys], strings.Fields(column(line, 7, 60))...)
		case "MARKER NAME":
			p.station.Name = strings.TrimSpace(column(line, 0, 60))
		case "MARKER NUMBER":
			p.station.Marker = strings.TrimSpace(column(line, 0, 20))
		case "REC # / TYPE / VERS":
			p.station.ReceiverNumber = strings.TrimSpace(column(line, 0, 20))
			p.station.ReceiverType = strings.TrimSpace(column(line, 20, 40))
			p.station.ReceiverVersion = strings.TrimSpace(column(line, 40, 60))
		case "ANT # / TYPE":
			p.station.AntennaNumber = strings.TrimSpace(column(line, 0, 20))
			p.station.AntennaType = strings.TrimSpace(column(line, 20, 40))
		case "APPROX POSITION XYZ":
			p.station.ApproxPos = parseApproxPos(line)
		case "END OF HEADER":
			p.inBody = true
		}
		return nil
	}
	if len(line) > 0 && line[0] == '>' {
		return p.epochLine(line)
	}
	if p.remain <= 0 {
		return nil
	}
	p.remain--
	if p.skip {
		return nil
	}
	p.satLine(line)
	return nil
}

func (p *obsParser) epochLine(line string) error {
	fields := strings.Fields(line[1:])
	if len(fields) < 8 {
		log.Warning("历元头格式错误:", line)
		p.remain = 0
		return nil
	}
	flag, _ := strconv.Atoi(fields[6])
	nsat, err := strconv.Atoi(fields[7])
	if err != nil {
		log.Warning("历元卫星数错误:", line)
		p.remain = 0
		return nil
	}
	p.remain = nsat
	p.skip = flag > 1
	if p.skip {
		return nil
	}
	t, err := parseEpochTime(fields[:6])
	if err != nil {
		log.Warning("历元时间错误:", line)
		p.skip = true
		return nil
	}
	p.epochTime = t
	p.epochs++
	return nil
}

func (p *obsParser) satLine(line string) {
	if len(line) < 3 {
		return
	}
	sat := ParseSatID(line[0:3])
	if sat == 0 {
		return
	}
	types := p.types[line[0]]
	ob := Observation{Time: p.epochTime, Sat: sat}
	var have [4]bool
	for i, typ := range types {
		idx := -1
		switch typ[0] {
		case 'C':
			idx = 0
		case 'L':
			idx = 1
		case 'D':
			idx = 2
		case 'S':
			idx = 3
		}
		if idx < 0 || have[idx] {
			continue
		}
		val := strings.TrimSpace(column(line, 3+16*i, 3+16*i+14))
		if val == "" {
			continue
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		have[idx] = true
		switch idx {
		case 0:
			ob.Code = v
		case 1:
			ob.Phase = v
		case 2:
			ob.Doppler = v
		case 3:
			ob.SNR = v
		}
	}
	// 无伪距无法参与单点定位
	if !have[0] {
		return
	}
	p.obs = append(p.obs, ob)
}

// parseEpochTime 年 月 日 时 分 秒(小数)
func parseEpochTime(fields []string) (time.Time, error) {
	if len(fields) < 6 {
		return time.Time{}, fmt.Errorf("epoch time needs 6 fields, got %d", len(fields))
	}
	var ymdhm [5]int
	for i := 0; i < 5; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, err
		}
		ymdhm[i] = v
	}
	if ymdhm[0] < 100 {
		ymdhm[0] += 2000
	}
	seconds, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return time.Time{}, err
	}
	microsecond := method.Decimal((seconds-math.Floor(seconds))*1e6, 0)
	return time.Date(ymdhm[0], time.Month(ymdhm[1]), ymdhm[2], ymdhm[3], ymdhm[4], int(seconds), int(1000*microsecond), time.UTC), nil
}

// parseApproxPos 3F14.4, 解析失败时返回零坐标
func parseApproxPos(line string) [3]float64 {
	var pos [3]float64
	for i := range pos {
		v, err := strconv.ParseFloat(strings.TrimSpace(column(line, 14*i, 14*i+14)), 64)
		if err != nil {
			log.Warning("测站近似坐标格式错误:", strings.TrimSpace(column(line, 0, 60)))
			return [3]float64{}
		}
		pos[i] = v
	}
	return pos
}

// SortObservation 按时间和卫星号排序
func SortObservation(obs []Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		if !obs[i].Time.Equal(obs[j].Time) {
			return obs[i].Time.Before(obs[j].Time)
		}
		return obs[i].Sat < obs[j].Sat
	})
}

// LoadNavigation 加载RINEX 3 导航文件, 去除重复星历
func LoadNavigation(path, encoding string) (*Navigation, error) {
	log.Debug("加载导航文件:", path)
	nav := &Navigation{Path: path}
	r, closeFn, err := openText(path, encoding)
	if err != nil {
		return nav, fmt.Errorf("open navigation %s: %w", path, err)
	}
	defer closeLogged(closeFn)

	p := navParser{nav: nav}
	if err := readLines(r, p.line); err != nil {
		return nav, fmt.Errorf("read navigation %s: %w", path, err)
	}
	p.flush()
	UniqueNavigation(nav)
	log.Info("星历数 GPS/GAL/QZS/BDS:", len(nav.Eph), " GLO:", len(nav.Geph), " SBAS:", len(nav.Seph))
	return nav, nil
}

type navParser struct {
	nav    *Navigation
	inBody bool

	cur    *Ephemeris
	sys    int
	remain int // 剩余续行
}

func (p *navParser) line(line string) error {
	if !p.inBody {
		if headerLabel(line) == "END OF HEADER" {
			p.inBody = true
		}
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if p.remain > 0 {
		p.remain--
		if p.cur != nil {
			for i := 0; i < 4; i++ {
				p.cur.Values = append(p.cur.Values, navValue(column(line, 4+19*i, 23+19*i)))
			}
		}
		if p.remain == 0 {
			p.flush()
		}
		return nil
	}

	// 新记录
	p.remain = 7
	switch line[0] {
	case 'R', 'S':
		p.remain = 3
	}
	sat := ParseSatID(column(line, 0, 3))
	if sat == 0 {
		p.cur = nil
		return nil
	}
	toc, err := parseEpochTime(strings.Fields(column(line, 4, 23)))
	if err != nil {
		log.Warning("星历时间错误:", line)
		p.cur = nil
		return nil
	}
	p.sys, _ = SatSys(sat)
	p.cur = &Ephemeris{Sat: sat, Toc: toc}
	for i := 0; i < 3; i++ {
		p.cur.Values = append(p.cur.Values, navValue(column(line, 23+19*i, 42+19*i)))
	}
	return nil
}

func (p *navParser) flush() {
	if p.cur == nil {
		return
	}
	switch p.sys {
	case SysGLO:
		p.nav.Geph = append(p.nav.Geph, *p.cur)
	case SysSBS:
		p.nav.Seph = append(p.nav.Seph, *p.cur)
	default:
		p.nav.Eph = append(p.nav.Eph, *p.cur)
	}
	p.cur = nil
}

// navValue 解析 Fortran D 指数格式
func navValue(s string) float64 {
	s = strings.TrimSpace(strings.NewReplacer("D", "E", "d", "e").Replace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// UniqueNavigation 排序并去除重复星历 (卫星, toc, IODE 相同)
func UniqueNavigation(nav *Navigation) {
	nav.Eph = uniqueEphemeris(nav.Eph)
	nav.Geph = uniqueEphemeris(nav.Geph)
	nav.Seph = uniqueEphemeris(nav.Seph)
}

func iode(e Ephemeris) float64 {
	if len(e.Values) > 3 {
		return e.Values[3]
	}
	return 0
}

func uniqueEphemeris(eph []Ephemeris) []Ephemeris {
	if len(eph) < 2 {
		return eph
	}
	sort.SliceStable(eph, func(i, j int) bool {
		if eph[i].Sat != eph[j].Sat {
			return eph[i].Sat < eph[j].Sat
		}
		if !eph[i].Toc.Equal(eph[j].Toc) {
			return eph[i].Toc.Before(eph[j].Toc)
		}
		return iode(eph[i]) < iode(eph[j])
	})
	out := eph[:1]
	for _, e := range eph[1:] {
		last := out[len(out)-1]
		if e.Sat == last.Sat && e.Toc.Equal(last.Toc) && iode(e) == iode(last) {
			continue
		}
		out = append(out, e)
	}
	return out
}
