package api

import (
	"testing"

	"academy/internal/academyapi"

	"github.com/stretchr/testify/require"
)

func historyEntries(n int) []academyapi.WalletHistory {
	entries := make([]academyapi.WalletHistory, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, academyapi.WalletHistory{Id: uint(i), Amount: float64(i)})
	}
	return entries
}

func TestPaginateHistoryFirstPage(t *testing.T) {
	paginated := paginateHistory(historyEntries(45), 1, 20)

	require.Equal(t, 45, paginated.Count)
	require.Len(t, paginated.Results, 20)
	require.Equal(t, uint(1), paginated.Results[0].Id)
	require.Equal(t, "/wallet/history/?page=2&size=20", paginated.Next)
	require.Empty(t, paginated.Previous)
}

func TestPaginateHistoryLastPartialPage(t *testing.T) {
	paginated := paginateHistory(historyEntries(45), 3, 20)

	require.Equal(t, 45, paginated.Count)
	require.Len(t, paginated.Results, 5)
	require.Equal(t, uint(41), paginated.Results[0].Id)
	require.Empty(t, paginated.Next)
	require.Equal(t, "/wallet/history/?page=2&size=20", paginated.Previous)
}

func TestPaginateHistoryPageBeyondEnd(t *testing.T) {
	paginated := paginateHistory(historyEntries(5), 4, 20)

	require.Zero(t, paginated.Count)
	require.Empty(t, paginated.Results)
	require.Empty(t, paginated.Next)
	require.Empty(t, paginated.Previous)
}

func TestPaginateHistoryEmpty(t *testing.T) {
	paginated := paginateHistory(nil, 1, 20)

	require.Zero(t, paginated.Count)
	require.Empty(t, paginated.Results)
}
