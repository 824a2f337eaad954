package microdata

import (
	"regexp"
	"strings"
	"time"

	"github.com/geoknoesis/rdf-extract/rdf"
)

type temporalFormat struct {
	datatype rdf.IRI
	layouts  []string
}

// temporalFormats is evaluated in order; the first matching layout decides
// the datatype. time.Parse rejects trailing input, so a shorter layout never
// claims a longer value.
var temporalFormats = []temporalFormat{
	{datatype: rdf.XSDGMonthDay, layouts: []string{"1-2"}},
	{datatype: rdf.XSDGYearMonth, layouts: []string{"2006-1"}},
	{datatype: rdf.XSDGYear, layouts: []string{"2006"}},
	{datatype: rdf.XSDDate, layouts: []string{"2006-1-2"}},
	{datatype: rdf.XSDTime, layouts: []string{"15:4", "15:4:5", "15:4:5Z"}},
	{datatype: rdf.XSDDateTime, layouts: dateTimeLayouts},
}

var dateTimeLayouts = []string{
	"2006-1-2T15:4",
	"2006-1-2T15:4:5",
	"2006-1-2T15:4Z",
	"2006-1-2T15:4:5Z",
}

var (
	durationWhole = []*regexp.Regexp{
		regexp.MustCompile(`^-?P\d+Y(\d+M)?(\d+D)?$`),
		regexp.MustCompile(`^-?P\d+M(\d+D)?$`),
		regexp.MustCompile(`^-?P\d+D$`),
		regexp.MustCompile(`^-?P\d+W$`),
	}
	durationDatePart = regexp.MustCompile(`^-?P(\d+Y)?(\d+M)?(\d+D)?$`)
	durationTimePart = []*regexp.Regexp{
		regexp.MustCompile(`^\d+H\d+M\d+(\.\d+)?S$`),
		regexp.MustCompile(`^\d+H$`),
		regexp.MustCompile(`^\d+M$`),
		regexp.MustCompile(`^\d+(\.\d+)?S$`),
		regexp.MustCompile(`^\d+H\d+M$`),
		regexp.MustCompile(`^\d+H\d+(\.\d+)?S$`),
		regexp.MustCompile(`^\d+M\d+(\.\d+)?S$`),
	}
)

// ClassifyTemporal reports the XML Schema datatype of a date, time, duration
// or dateTime lexical form. It returns false when no format matches.
func ClassifyTemporal(text string) (rdf.IRI, bool) {
	for _, f := range temporalFormats {
		if matchesLayout(text, f.layouts) {
			return f.datatype, true
		}
	}
	if isDuration(text) {
		return rdf.XSDDuration, true
	}
	if isZonedDateTime(text) {
		return rdf.XSDDateTime, true
	}
	return rdf.IRI{}, false
}

func matchesLayout(text string, layouts []string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, text); err == nil {
			return true
		}
	}
	return false
}

func isDuration(text string) bool {
	if !strings.Contains(text, "P") {
		return false
	}
	for _, re := range durationWhole {
		if re.MatchString(text) {
			return true
		}
	}

	parts := strings.Split(text, "T")
	if len(parts) != 2 || parts[1] == "" {
		return false
	}
	if !durationDatePart.MatchString(parts[0]) {
		return false
	}
	for _, re := range durationTimePart {
		if re.MatchString(parts[1]) {
			return true
		}
	}
	return false
}

// isZonedDateTime accepts a dateTime followed by a +hh:mm or -hh:mm offset.
func isZonedDateTime(text string) bool {
	if len(text) <= 6 {
		return false
	}
	prefix, zone := text[:len(text)-6], text[len(text)-6:]
	if zone[0] != '+' && zone[0] != '-' {
		return false
	}
	if _, err := time.Parse("15:04", zone[1:]); err != nil {
		return false
	}
	return matchesLayout(prefix, dateTimeLayouts)
}
