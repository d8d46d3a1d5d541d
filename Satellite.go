package sppfile

import (
	"fmt"
	"strconv"
	"strings"
)

// 卫星系统
const (
	SysNone = iota
	SysGPS
	SysGLO
	SysGAL
	SysQZS
	SysBDS
	SysSBS
)

const (
	NSatGPS = 32
	NSatGLO = 27
	NSatGAL = 36
	NSatQZS = 10
	NSatBDS = 63
	NSatSBS = 39

	MinPrnQZS = 193
	MinPrnSBS = 120

	MaxSat = NSatGPS + NSatGLO + NSatGAL + NSatQZS + NSatBDS + NSatSBS
)

// 卫星序号空间按系统依次排列
var sysOrder = []struct {
	sys    int
	letter byte
	name   string
	nsat   int
	minPrn int
}{
	{SysGPS, 'G', "GPS", NSatGPS, 1},
	{SysGLO, 'R', "GLO", NSatGLO, 1},
	{SysGAL, 'E', "GAL", NSatGAL, 1},
	{SysQZS, 'J', "QZS", NSatQZS, MinPrnQZS},
	{SysBDS, 'C', "BDS", NSatBDS, 1},
	{SysSBS, 'S', "SBAS", NSatSBS, MinPrnSBS},
}

// SatNo 将系统号和PRN转换为卫星序号, 非法返回0
func SatNo(sys, prn int) int {
	base := 0
	for _, s := range sysOrder {
		if s.sys == sys {
			if prn < s.minPrn || prn >= s.minPrn+s.nsat {
				return 0
			}
			return base + prn - s.minPrn + 1
		}
		base += s.nsat
	}
	return 0
}

// SatSys 返回卫星序号所属系统和PRN
func SatSys(sat int) (int, int) {
	if sat <= 0 || sat > MaxSat {
		return SysNone, 0
	}
	n := sat
	for _, s := range sysOrder {
		if n <= s.nsat {
			return s.sys, n - 1 + s.minPrn
		}
		n -= s.nsat
	}
	return SysNone, 0
}

// SatID 卫星编号字符串, 如 G05 / J01 / S20
func SatID(sat int) string {
	sys, prn := SatSys(sat)
	for _, s := range sysOrder {
		if s.sys != sys {
			continue
		}
		switch sys {
		case SysQZS:
			prn -= MinPrnQZS - 1
		case SysSBS:
			prn -= 100
		}
		return fmt.Sprintf("%c%02d", s.letter, prn)
	}
	return fmt.Sprintf("%03d", sat)
}

// ParseSatID 解析RINEX卫星编号, 空格系统字母视为GPS
func ParseSatID(id string) int {
	if len(id) < 2 {
		return 0
	}
	letter := id[0]
	if letter == ' ' {
		letter = 'G'
	}
	num, err := strconv.Atoi(strings.TrimSpace(id[1:]))
	if err != nil {
		return 0
	}
	for _, s := range sysOrder {
		if s.letter != letter {
			continue
		}
		switch s.sys {
		case SysQZS:
			num += MinPrnQZS - 1
		case SysSBS:
			num += 100
		}
		return SatNo(s.sys, num)
	}
	return 0
}

// ConstellationName 卫星所属星座简称, 未知返回UNK
func ConstellationName(sat int) string {
	sys, _ := SatSys(sat)
	for _, s := range sysOrder {
		if s.sys == sys {
			return s.name
		}
	}
	return "UNK"
}
