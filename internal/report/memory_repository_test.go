package report_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleansky/cleansky/internal/report"
)

func seedReports(t *testing.T, repo *report.InMemoryRepository, n int) {
	t.Helper()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &report.Report{
			ID:        fmt.Sprintf("report-%02d", i),
			Text:      fmt.Sprintf("observation %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestInMemoryRepository_List_CursorWalk(t *testing.T) {
	repo := report.NewInMemoryRepository()
	seedReports(t, repo, 5)

	page1, err := repo.List(context.Background(), report.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "report-04", page1.Items[0].ID)
	assert.Equal(t, "report-03", page1.Items[1].ID)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := repo.List(context.Background(), report.ListOptions{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.Equal(t, "report-02", page2.Items[0].ID)
	assert.Equal(t, "report-01", page2.Items[1].ID)
	require.NotEmpty(t, page2.NextCursor)

	page3, err := repo.List(context.Background(), report.ListOptions{Limit: 2, Cursor: page2.NextCursor})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	assert.Equal(t, "report-00", page3.Items[0].ID)
	assert.Empty(t, page3.NextCursor, "final page has no cursor")
}

func TestInMemoryRepository_List_UnknownCursor(t *testing.T) {
	repo := report.NewInMemoryRepository()
	seedReports(t, repo, 3)

	result, err := repo.List(context.Background(), report.ListOptions{Limit: 2, Cursor: "no-such-id"})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Empty(t, result.NextCursor)
}

func TestInMemoryRepository_List_NoCursorWithinLimit(t *testing.T) {
	repo := report.NewInMemoryRepository()
	seedReports(t, repo, 2)

	result, err := repo.List(context.Background(), report.ListOptions{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Empty(t, result.NextCursor)
}
