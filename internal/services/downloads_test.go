package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDownloadKeepsEveryEvent(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := seedReport(t, db, "Energy Outlook", "", nil, base)
	reader := seedProfile(t, db, "reader", RoleUser)

	require.NoError(t, LogDownload(db, id, &reader.ID))
	require.NoError(t, LogDownload(db, id, &reader.ID))
	require.NoError(t, LogDownload(db, id, nil))

	logs, total, err := ListReportDownloads(db, id, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, logs, 3)
}

func TestListUserDownloadsAttachesReportSnapshot(t *testing.T) {
	db := openTestDB(t)
	category := seedCategory(t, db, "Macro")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := seedReport(t, db, "Macro Monthly", "", &category.ID, base)
	reader := seedProfile(t, db, "reader", RoleUser)
	other := seedProfile(t, db, "someone_else", RoleUser)

	require.NoError(t, LogDownload(db, id, &reader.ID))
	require.NoError(t, LogDownload(db, id, &other.ID))
	require.NoError(t, LogDownload(db, id, nil))

	logs, total, err := ListUserDownloads(db, reader.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, reader.ID, *logs[0].UserID)
	require.NotNil(t, logs[0].Report)
	assert.Equal(t, "Macro Monthly", logs[0].Report.Title)
	require.NotNil(t, logs[0].Report.CategoryID)
	assert.Equal(t, category.ID, *logs[0].Report.CategoryID)
}

func TestListUserDownloadsPagination(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := seedReport(t, db, "Energy Outlook", "", nil, base)
	reader := seedProfile(t, db, "reader", RoleUser)
	for i := 0; i < 7; i++ {
		require.NoError(t, LogDownload(db, id, &reader.ID))
	}

	logs, total, err := ListUserDownloads(db, reader.ID, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, logs, 3)

	_, _, err = ListUserDownloads(db, reader.ID, -1, 3)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}
