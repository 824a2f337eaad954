package microdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoknoesis/rdf-extract/rdf"
)

func TestClassifyTemporal(t *testing.T) {
	tests := []struct {
		text string
		want rdf.IRI
		ok   bool
	}{
		{"05-01", rdf.XSDGMonthDay, true},
		{"2021-05", rdf.XSDGYearMonth, true},
		{"2021", rdf.XSDGYear, true},
		{"2021-05-01", rdf.XSDDate, true},
		{"12:30", rdf.XSDTime, true},
		{"12:30:15", rdf.XSDTime, true},
		{"12:30:15Z", rdf.XSDTime, true},
		{"12:30:15.250", rdf.XSDTime, true},
		{"2021-05-01T12:30", rdf.XSDDateTime, true},
		{"2021-05-01T12:30:15", rdf.XSDDateTime, true},
		{"2021-05-01T12:30:15.5Z", rdf.XSDDateTime, true},
		{"2021-05-01T12:30:00+02:00", rdf.XSDDateTime, true},
		{"2021-05-01T12:30-05:00", rdf.XSDDateTime, true},
		{"P3D", rdf.XSDDuration, true},
		{"P2W", rdf.XSDDuration, true},
		{"P1Y2M", rdf.XSDDuration, true},
		{"-P1Y", rdf.XSDDuration, true},
		{"PT5M", rdf.XSDDuration, true},
		{"PT1H30M", rdf.XSDDuration, true},
		{"P1Y2M3DT4H5M6.5S", rdf.XSDDuration, true},
		{"not a date", rdf.IRI{}, false},
		{"", rdf.IRI{}, false},
		{"P", rdf.IRI{}, false},
		{"PT", rdf.IRI{}, false},
		{"P1H", rdf.IRI{}, false},
		{"2021-13-01", rdf.IRI{}, false},
		{"25:00", rdf.IRI{}, false},
		{"2021-05-01+02:00", rdf.IRI{}, false},
		{"2021-05-01T12:30+25:00", rdf.IRI{}, false},
		{"2021-05-01 ", rdf.IRI{}, false},
	}
	for _, tt := range tests {
		got, ok := ClassifyTemporal(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}
