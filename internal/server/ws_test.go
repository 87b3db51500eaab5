package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStalePong(t *testing.T) {
	timeout := 9 * time.Second

	require.False(t, stalePong(time.Now(), timeout))
	require.False(t, stalePong(time.Now().Add(-3*time.Second), timeout))
	require.True(t, stalePong(time.Now().Add(-10*time.Second), timeout))
}
