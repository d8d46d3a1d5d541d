package sppfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatelliteIndexRoundTrip(t *testing.T) {
	for sat := 1; sat <= MaxSat; sat++ {
		id := SatID(sat)
		assert.Equal(t, sat, ParseSatID(id), id)
		sys, prn := SatSys(sat)
		assert.Equal(t, sat, SatNo(sys, prn), id)
	}
}

func TestSatelliteIDs(t *testing.T) {
	tests := []struct {
		id   string
		sys  int
		name string
	}{
		{"G01", SysGPS, "GPS"},
		{"G32", SysGPS, "GPS"},
		{"R24", SysGLO, "GLO"},
		{"E36", SysGAL, "GAL"},
		{"J01", SysQZS, "QZS"},
		{"C63", SysBDS, "BDS"},
		{"S20", SysSBS, "SBAS"},
		{" 7", SysGPS, "GPS"},
		{"G 7", SysGPS, "GPS"},
	}
	for _, tt := range tests {
		sat := ParseSatID(tt.id)
		if assert.NotZero(t, sat, tt.id) {
			sys, _ := SatSys(sat)
			assert.Equal(t, tt.sys, sys, tt.id)
			assert.Equal(t, tt.name, ConstellationName(sat), tt.id)
		}
	}
	_, prn := SatSys(ParseSatID("J01"))
	assert.Equal(t, 193, prn)
}

func TestSatelliteInvalid(t *testing.T) {
	assert.Zero(t, ParseSatID("G33"))
	assert.Zero(t, ParseSatID("I01"))
	assert.Zero(t, ParseSatID("X"))
	assert.Zero(t, SatNo(SysSBS, 119))
	assert.Equal(t, "UNK", ConstellationName(0))
	assert.Equal(t, "UNK", ConstellationName(MaxSat+1))
}
