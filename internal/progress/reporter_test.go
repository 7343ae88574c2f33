package progress

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"rcfetch/internal/mocks"
	"rcfetch/internal/rclone"
	"rcfetch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recorder is a Sink that keeps every event it sees
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) sink(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func countFinished(events []Event) (inFlight, finished int) {
	for _, ev := range events {
		if ev.Finished {
			finished++
		} else {
			inFlight++
		}
	}
	return inFlight, finished
}

var testRequest = rclone.CopyURLRequest{
	URL:    "https://example.com/movie.mkv",
	Fs:     "local",
	Remote: "/downloads/movie.mkv",
}

func TestNew(t *testing.T) {
	mockClient := mocks.NewMockRCloneClient(t)

	r := New(mockClient, nil)
	assert.Equal(t, DefaultInterval, r.interval)
	assert.Equal(t, mockClient, r.client)

	r = New(mockClient, nil, WithInterval(250*time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, r.interval)

	r = New(mockClient, nil, WithInterval(0))
	assert.Equal(t, DefaultInterval, r.interval)
}

func TestCopy_FinishesBeforeFirstTick(t *testing.T) {
	mockClient := mocks.NewMockRCloneClient(t)
	rec := &recorder{}

	stats := testutil.CreateTestStats()
	result := &rclone.CopyURLResult{Raw: []byte(`{}`)}

	mockClient.EXPECT().
		CopyURL(mock.Anything, testRequest).
		Return(result, nil).
		Once()

	// final snapshot only
	mockClient.EXPECT().
		Stats(mock.Anything).
		Return(stats).
		Once()

	r := New(mockClient, rec.sink, WithInterval(time.Hour))
	got, err := r.Copy(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Same(t, result, got)

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.True(t, events[0].Finished)
	assert.True(t, events[0].Success)
	assert.Empty(t, events[0].Error)
	assert.Same(t, stats, events[0].Stats)
}

func TestCopy_FailurePassesErrorThrough(t *testing.T) {
	mockClient := mocks.NewMockRCloneClient(t)
	rec := &recorder{}

	copyErr := &rclone.APIError{StatusCode: http.StatusInternalServerError, Body: []byte(`{"error":"busy"}`)}

	mockClient.EXPECT().
		CopyURL(mock.Anything, testRequest).
		Return(nil, copyErr).
		Once()

	mockClient.EXPECT().
		Stats(mock.Anything).
		Return(nil).
		Once()

	r := New(mockClient, rec.sink, WithInterval(time.Hour))
	got, err := r.Copy(context.Background(), testRequest)

	assert.Nil(t, got)
	require.Error(t, err)
	assert.Same(t, copyErr, err)

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.True(t, events[0].Finished)
	assert.False(t, events[0].Success)
	assert.Equal(t, err.Error(), events[0].Error)
	assert.Nil(t, events[0].Stats)
}

func TestCopy_SkipsFailedPolls(t *testing.T) {
	mockClient := mocks.NewMockRCloneClient(t)
	rec := &recorder{}

	mockClient.EXPECT().
		CopyURL(mock.Anything, testRequest).
		RunAndReturn(func(ctx context.Context, req rclone.CopyURLRequest) (*rclone.CopyURLResult, error) {
			time.Sleep(100 * time.Millisecond)
			return &rclone.CopyURLResult{}, nil
		}).
		Once()

	mockClient.EXPECT().
		Stats(mock.Anything).
		Return(nil)

	r := New(mockClient, rec.sink, WithInterval(5*time.Millisecond))
	_, err := r.Copy(context.Background(), testRequest)
	require.NoError(t, err)

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.True(t, events[0].Finished)
	assert.True(t, events[0].Success)
}

func TestCopy_NilSink(t *testing.T) {
	mockClient := mocks.NewMockRCloneClient(t)

	mockClient.EXPECT().
		CopyURL(mock.Anything, testRequest).
		RunAndReturn(func(ctx context.Context, req rclone.CopyURLRequest) (*rclone.CopyURLResult, error) {
			time.Sleep(30 * time.Millisecond)
			return nil, errors.New("boom")
		}).
		Once()

	mockClient.EXPECT().
		Stats(mock.Anything).
		Return(testutil.CreateTestStats())

	r := New(mockClient, nil, WithInterval(5*time.Millisecond))
	assert.NotPanics(t, func() {
		_, err := r.Copy(context.Background(), testRequest)
		assert.EqualError(t, err, "boom")
	})
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	mockClient := mocks.NewMockRCloneClient(t)
	mockClient.EXPECT().
		Stats(mock.Anything).
		Return(nil).
		Maybe()

	out := make(chan Event, 1)
	p := newPoller(context.Background(), mockClient, time.Millisecond, out)
	p.start()
	time.Sleep(10 * time.Millisecond)

	assert.NotPanics(t, func() {
		p.stop()
		p.stop()
	})
	assert.Error(t, p.ctx.Err())
}

func TestCopy_AgainstDaemon(t *testing.T) {
	daemon := testutil.NewDaemon(t)
	daemon.SetCopyResponse(http.StatusOK, `{"ok":true}`, 300*time.Millisecond)
	daemon.SetStats(testutil.CreateTestStats())

	client := rclone.NewClient(rclone.Credentials{Username: "u", Password: "p", BaseURL: daemon.URL()})
	rec := &recorder{}

	r := New(client, rec.sink, WithInterval(20*time.Millisecond))
	result, err := r.Copy(context.Background(), testRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, result.String())

	events := rec.snapshot()
	inFlight, finished := countFinished(events)
	assert.GreaterOrEqual(t, inFlight, 1)
	assert.Equal(t, 1, finished)

	last := events[len(events)-1]
	assert.True(t, last.Finished)
	assert.True(t, last.Success)
	require.NotNil(t, last.Stats)

	for _, ev := range events[:len(events)-1] {
		require.NotNil(t, ev.Stats)
		require.Len(t, ev.Stats.Transferring, 1)
		assert.Equal(t, int64(50), ev.Stats.Transferring[0].Bytes)
		assert.Equal(t, int64(200), ev.Stats.Transferring[0].Size)
	}

	// polling is over once Copy has returned
	statsCalls := daemon.Calls("core/stats")
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, rec.snapshot(), len(events))
	assert.Equal(t, statsCalls, daemon.Calls("core/stats"))

	require.Len(t, daemon.CopyRequests(), 1)
	assert.Equal(t, testRequest, daemon.CopyRequests()[0])
}

func TestCopy_AgainstDaemonFailure(t *testing.T) {
	daemon := testutil.NewDaemon(t)
	daemon.SetCopyResponse(http.StatusInternalServerError, `{"error":"busy"}`, 50*time.Millisecond)
	daemon.SetStats(testutil.CreateTestStats())

	client := rclone.NewClient(rclone.Credentials{BaseURL: daemon.URL()})
	rec := &recorder{}

	r := New(client, rec.sink, WithInterval(10*time.Millisecond))
	result, err := r.Copy(context.Background(), testRequest)
	require.Error(t, err)
	assert.Nil(t, result)

	var apiErr *rclone.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	events := rec.snapshot()
	_, finished := countFinished(events)
	assert.Equal(t, 1, finished)

	last := events[len(events)-1]
	assert.True(t, last.Finished)
	assert.False(t, last.Success)
	assert.Equal(t, err.Error(), last.Error)
}

func TestCopy_DaemonStatsDown(t *testing.T) {
	daemon := testutil.NewDaemon(t)
	daemon.SetCopyResponse(http.StatusOK, `{}`, 100*time.Millisecond)

	client := rclone.NewClient(rclone.Credentials{BaseURL: daemon.URL()})
	rec := &recorder{}

	r := New(client, rec.sink, WithInterval(10*time.Millisecond))
	_, err := r.Copy(context.Background(), testRequest)
	require.NoError(t, err)

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.True(t, events[0].Finished)
	assert.Nil(t, events[0].Stats)
	assert.Greater(t, daemon.Calls("core/stats"), 1)
}
