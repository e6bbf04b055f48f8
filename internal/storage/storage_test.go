package storage

import (
	"context"
	"testing"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySource_LookupUser(t *testing.T) {
	source := NewMemorySource(
		domain.UserRecords{
			Profile:    &domain.UserProfile{UserID: "u-1"},
			PensionPot: &domain.PensionPot{CurrentValue: decimal.NewFromInt(1000)},
		},
		domain.UserRecords{PensionPot: &domain.PensionPot{CurrentValue: decimal.NewFromInt(5)}},
	)

	records, err := source.LookupUser(context.Background(), " u-1 ")
	require.NoError(t, err)
	require.NotNil(t, records.PensionPot)
	assert.True(t, records.PensionPot.CurrentValue.Equal(decimal.NewFromInt(1000)))

	records, err = source.LookupUser(context.Background(), "unknown")
	require.NoError(t, err, "unknown users fall back to defaults")
	assert.Equal(t, domain.UserRecords{}, records)
}

func TestMemorySource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemorySource().LookupUser(ctx, "u-1")
	assert.ErrorIs(t, err, context.Canceled)
}
