package storage_test

import (
	"context"
	"errors"
	"sentiment/pkg/domain"
	"sentiment/pkg/metrics"
	"sentiment/pkg/storage"
	"testing"

	mockstorage "sentiment/pkg/storage/mock"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWithMetrics_DelegatesAndObserves(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mockstorage.NewMockStorage(ctrl)
	s := storage.WithMetrics("test-delegate", inner)
	ctx := context.Background()

	want := []domain.Post{{ID: "1", Ticker: "GME"}}
	inner.EXPECT().Posts(gomock.Any()).Return(want, nil)
	inner.EXPECT().PostsByTicker(gomock.Any(), "GME").Return(want, nil)
	inner.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))
	inner.EXPECT().Close(gomock.Any()).Return(nil)

	got, err := s.Posts(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = s.PostsByTicker(ctx, "GME")
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.Error(t, s.Ping(ctx))
	require.NoError(t, s.Close(ctx))

	// one series per (operation, outcome) pair observed above
	for _, lv := range [][]string{
		{"test-delegate", "posts", "success"},
		{"test-delegate", "posts_by_ticker", "success"},
		{"test-delegate", "ping", "error"},
	} {
		var m dto.Metric
		h, ok := metrics.StorageQueryDuration.WithLabelValues(lv...).(prometheus.Metric)
		require.True(t, ok)
		require.NoError(t, h.Write(&m))
		require.Equal(t, uint64(1), m.GetHistogram().GetSampleCount(), "labels %v", lv)
	}
}

func TestWithMetrics_PropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mockstorage.NewMockStorage(ctrl)
	s := storage.WithMetrics("test-errors", inner)

	boom := errors.New("server selection timeout")
	inner.EXPECT().PostsByTicker(gomock.Any(), "AAPL").Return(nil, boom)

	_, err := s.PostsByTicker(context.Background(), "AAPL")
	require.ErrorIs(t, err, boom)
}
