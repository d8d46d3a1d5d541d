package sppfile

import (
	"math"
	"strings"
	"time"
)

// WGS-84 椭球参数
const (
	wgs84A  = 6378137.0
	wgs84F  = 1.0 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)

	R2D = 180.0 / math.Pi
	D2R = math.Pi / 180.0
)

// ECEFToGeodetic ECEF(m) 转大地坐标, 返回 纬度/经度(rad) 和 椭球高(m)
func ECEFToGeodetic(pos [3]float64) [3]float64 {
	x, y, z := pos[0], pos[1], pos[2]
	lon := math.Atan2(y, x)
	p := math.Sqrt(x*x + y*y)

	// Bowring 初值, 迭代收敛
	lat := math.Atan2(z, p*(1-wgs84E2))
	for i := 0; i < 5; i++ {
		sinLat := math.Sin(lat)
		n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
		lat = math.Atan2(z+wgs84E2*n*sinLat, p)
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	var h float64
	if math.Abs(cosLat) > 1e-10 {
		h = p/cosLat - n
	} else {
		h = math.Abs(z)/math.Abs(sinLat) - n*(1-wgs84E2)
	}
	return [3]float64{lat, lon, h}
}

// GeodeticToECEF 大地坐标(rad, m) 转 ECEF(m)
func GeodeticToECEF(blh [3]float64) [3]float64 {
	sinLat, cosLat := math.Sin(blh[0]), math.Cos(blh[0])
	sinLon, cosLon := math.Sin(blh[1]), math.Cos(blh[1])
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
	return [3]float64{
		(n + blh[2]) * cosLat * cosLon,
		(n + blh[2]) * cosLat * sinLon,
		(n*(1-wgs84E2) + blh[2]) * sinLat,
	}
}

// FormatTime 按指定小数位输出时间 2006/01/02 15:04:05.000
func FormatTime(t time.Time, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > 9 {
		decimals = 9
	}
	layout := "2006/01/02 15:04:05"
	if decimals > 0 {
		layout += "." + strings.Repeat("0", decimals)
	}
	return t.Round(time.Duration(math.Pow10(9 - decimals))).Format(layout)
}

// hemisphere 按符号返回半球字母和绝对值(度)
func hemisphere(rad float64, pos, neg string) (float64, string) {
	deg := rad * R2D
	if deg < 0 {
		return -deg, neg
	}
	return deg, pos
}
