package summary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSummarizer - мок удаленного сервиса суммаризации
type mockSummarizer struct {
	calls         atomic.Int32
	summarizeFunc func(ctx context.Context, id string) (string, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, id string) (string, error) {
	m.calls.Add(1)
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, id)
	}
	return "summary of " + id, nil
}

func TestCache_Request_Success(t *testing.T) {
	remote := &mockSummarizer{}
	cache := NewCache(remote, nil)

	assert.Equal(t, NotRequested, cache.State("1").Status)

	st := cache.Request(context.Background(), "1")
	assert.Equal(t, State{Status: Ready, Text: "summary of 1"}, st)
	assert.Equal(t, st, cache.State("1"))
}

func TestCache_Request_TwiceCallsRemoteOnce(t *testing.T) {
	remote := &mockSummarizer{}
	cache := NewCache(remote, nil)

	cache.Request(context.Background(), "1")
	cache.Request(context.Background(), "1")

	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestCache_Request_WhilePendingIsNoOp(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	remote := &mockSummarizer{
		summarizeFunc: func(ctx context.Context, id string) (string, error) {
			close(started)
			<-release
			return "done", nil
		},
	}
	cache := NewCache(remote, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cache.Request(context.Background(), "7")
	}()

	<-started
	st := cache.Request(context.Background(), "7")
	assert.Equal(t, Pending, st.Status)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), remote.calls.Load())
	assert.Equal(t, Ready, cache.State("7").Status)
}

func TestCache_Request_FailureIsTerminal(t *testing.T) {
	remote := &mockSummarizer{
		summarizeFunc: func(ctx context.Context, id string) (string, error) {
			return "", errors.New("503 service unavailable")
		},
	}
	cache := NewCache(remote, nil)

	st := cache.Request(context.Background(), "3")
	require.Equal(t, Failed, st.Status)
	assert.Equal(t, FailedMessage, st.Text)

	// Повторный запрос не приводит к новому вызову
	remote.summarizeFunc = nil
	st = cache.Request(context.Background(), "3")
	assert.Equal(t, Failed, st.Status)
	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestCache_KeysAreIndependent(t *testing.T) {
	remote := &mockSummarizer{}
	cache := NewCache(remote, nil)

	cache.Request(context.Background(), "1")
	cache.Request(context.Background(), "2")

	assert.Equal(t, int32(2), remote.calls.Load())
	assert.Equal(t, "summary of 2", cache.State("2").Text)
}

func TestEligible(t *testing.T) {
	assert.False(t, Eligible(strings.Repeat("a", 20)))
	assert.True(t, Eligible(strings.Repeat("a", 21)))
	assert.False(t, Eligible(strings.Repeat("ж", 20)), "Expected guard to count characters, not bytes")
	assert.Equal(t, "pending", Pending.String())
}
