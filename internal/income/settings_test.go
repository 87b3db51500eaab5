package income

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSettingsFromDb(t *testing.T) {
	db := newTestDb(t)
	createSettings(t, db, goldSettings())

	settings, err := GetSettings(db, nil, "Gold")
	require.NoError(t, err)
	require.Equal(t, float64(500), settings.ReferralCommission)
	require.Equal(t, float64(100), settings.LevelAmount(1))
	require.Equal(t, float64(5), settings.LevelAmount(12))
	require.Equal(t, float64(250), settings.SpilloverAmount(1))
	require.Equal(t, float64(150000), settings.RevShareAmount(8))
	require.Zero(t, settings.LevelAmount(13))
}

func TestGetSettingsMissingPackage(t *testing.T) {
	db := newTestDb(t)

	settings, err := GetSettings(db, nil, "Bronze")
	require.ErrorIs(t, err, ErrNoSettings)
	require.Nil(t, settings)
}

func TestInvalidateSettingsNilSafe(t *testing.T) {
	InvalidateSettings(nil, "Gold")
}
