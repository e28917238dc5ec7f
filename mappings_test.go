package client_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	client "github.com/tazaqala/go-client"
)

func TestReportCategoryDecodesCodesAndNames(t *testing.T) {
	tests := []struct {
		raw  string
		want client.ReportCategory
	}{
		{`0`, client.CategoryOverflowingBin},
		{`3`, client.CategorySnowIce},
		{`6`, client.CategoryWaterPollution},
		{`99`, client.CategoryOther},
		{`"IllegalDump"`, client.CategoryIllegalDump},
		{`"SomethingNew"`, client.ReportCategory("SomethingNew")},
		{`42`, client.ReportCategory("42")},
	}

	for _, tc := range tests {
		var got client.ReportCategory
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &got), "raw %s", tc.raw)
		assert.Equal(t, tc.want, got, "raw %s", tc.raw)
	}

	var got client.ReportCategory
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &got))
}

func TestReportCategoryLabel(t *testing.T) {
	assert.Equal(t, "Overflowing bin", client.CategoryOverflowingBin.Label())
	assert.Equal(t, "Uncleared snow or ice", client.CategorySnowIce.Label())
	assert.Equal(t, "SomethingNew", client.ReportCategory("SomethingNew").Label())
	assert.Equal(t, "Category", client.ReportCategory("").Label())
}

func TestReportStatusDecodesCodesAndNames(t *testing.T) {
	tests := []struct {
		raw  string
		want client.ReportStatus
	}{
		{`0`, client.StatusNew},
		{`1`, client.StatusInProgress},
		{`5`, client.StatusClosed},
		{`"Rejected"`, client.StatusRejected},
		{`7`, client.ReportStatus("7")},
	}

	for _, tc := range tests {
		var got client.ReportStatus
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &got), "raw %s", tc.raw)
		assert.Equal(t, tc.want, got, "raw %s", tc.raw)
	}
}

func TestReportStatusLabel(t *testing.T) {
	assert.Equal(t, "In progress", client.StatusInProgress.Label())
	assert.Equal(t, "Under review", client.StatusUnderReview.Label())
	assert.Equal(t, "Archived", client.ReportStatus("Archived").Label())
	assert.Equal(t, "Status", client.ReportStatus("").Label())
}

func TestAllReportStatusesOrder(t *testing.T) {
	statuses := client.AllReportStatuses()
	require.Len(t, statuses, 6)
	assert.Equal(t, client.StatusNew, statuses[0])
	assert.Equal(t, client.StatusClosed, statuses[5])
}
