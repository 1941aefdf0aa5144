package report

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRange_ValidDates(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/report?startDate=2024-06-01&endDate=2024-06-30", nil)

	from, to := parseRange(req)

	assert.NotNil(t, from)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), *from)
	// end date is inclusive, so the exclusive bound is the next day
	assert.NotNil(t, to)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), *to)
}

func TestParseRange_InvalidDatesAreIgnored(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/report?startDate=not-a-date&endDate=30/06/2024", nil)

	from, to := parseRange(req)

	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestParseRange_MissingDatesLeaveRangeOpen(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/report", nil)

	from, to := parseRange(req)

	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestParseRange_PartialRange(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/report?startDate=2024-06-01&endDate=junk", nil)

	from, to := parseRange(req)

	assert.NotNil(t, from)
	assert.Nil(t, to)
}
