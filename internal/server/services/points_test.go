package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

func TestPoints_AwardAndGet(t *testing.T) {
	rm := repomanager.NewMemoryRepositoryManager()
	svc := NewPointsService(nil, rm)
	ctx := context.Background()

	require.NoError(t, rm.Accounts(nil).UpsertOnFirstContact(ctx, "u1", "Alice"))

	require.NoError(t, svc.Award(ctx, nil, "u1", common.UploadReward))
	require.NoError(t, svc.Award(ctx, nil, "u1", common.UploadReward))

	points, err := svc.GetPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), points)
}

func TestPoints_NegativeAwardRejected(t *testing.T) {
	rm := repomanager.NewMemoryRepositoryManager()
	svc := NewPointsService(nil, rm)

	err := svc.Award(context.Background(), nil, "u1", -5)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestPoints_UnknownAccountIsZero(t *testing.T) {
	rm := repomanager.NewMemoryRepositoryManager()
	svc := NewPointsService(nil, rm)

	points, err := svc.GetPoints(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(0), points)
}
