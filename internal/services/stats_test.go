package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatisticsEmpty(t *testing.T) {
	db := openTestDB(t)

	stats, err := GetStatistics(db)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalReports)
	assert.Equal(t, 0, stats.TotalDownloads)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalViews)
}

func TestGetStatistics(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := seedReport(t, db, "First", "", nil, base)
	second := seedReport(t, db, "Second", "", nil, base.Add(time.Minute))
	reader := seedProfile(t, db, "reader", RoleUser)
	seedProfile(t, db, "admin_user", RoleAdmin)

	for i := 0; i < 3; i++ {
		require.NoError(t, IncrementViewCount(db, first))
	}
	require.NoError(t, IncrementViewCount(db, second))
	require.NoError(t, LogDownload(db, first, &reader.ID))
	require.NoError(t, LogDownload(db, second, nil))

	stats, err := GetStatistics(db)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalReports)
	assert.Equal(t, 2, stats.TotalDownloads)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 4, stats.TotalViews)
}
