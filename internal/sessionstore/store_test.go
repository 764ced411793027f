package sessionstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/getmockd/xmlad/pkg/xmla/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = session.Caller{User: "alice", Addr: "10.0.0.1:5000"}

func TestStore_BeginAndCheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(time.Minute, WithClock(clock.NewMock()))

	mu := 1
	sess := s.BeginSession(ctx, session.BeginSession{MustUnderstand: &mu}, alice)
	require.NotNil(t, sess)
	_, err := uuid.Parse(sess.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, &mu, sess.MustUnderstand)
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.CheckSession(ctx, *sess, alice))
	assert.False(t, s.CheckSession(ctx, session.Session{SessionID: "unknown"}, alice))
	assert.False(t, s.CheckSession(ctx, *sess, session.Caller{User: "bob"}))
}

func TestStore_IDsAreUnique(t *testing.T) {
	t.Parallel()

	s := New(time.Minute)
	seen := make(map[string]bool)
	for range 100 {
		sess := s.BeginSession(context.Background(), session.BeginSession{}, alice)
		require.NotNil(t, sess)
		assert.False(t, seen[sess.SessionID])
		seen[sess.SessionID] = true
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mock := clock.NewMock()
	s := New(time.Minute, WithClock(mock))

	sess := s.BeginSession(ctx, session.BeginSession{}, alice)
	require.NotNil(t, sess)

	mock.Add(50 * time.Second)
	require.True(t, s.CheckSession(ctx, *sess, alice), "use extends the session")

	mock.Add(50 * time.Second)
	require.True(t, s.CheckSession(ctx, *sess, alice))

	mock.Add(61 * time.Second)
	assert.False(t, s.CheckSession(ctx, *sess, alice))
	assert.Equal(t, 0, s.Len())
}

func TestStore_NoTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mock := clock.NewMock()
	s := New(0, WithClock(mock))

	sess := s.BeginSession(ctx, session.BeginSession{}, alice)
	mock.Add(24 * time.Hour)
	assert.True(t, s.CheckSession(ctx, *sess, alice))
	assert.Equal(t, 0, s.Sweep())
}

func TestStore_EndSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(time.Minute)

	sess := s.BeginSession(ctx, session.BeginSession{}, alice)
	s.EndSession(ctx, session.EndSession{SessionID: sess.SessionID}, session.Caller{User: "bob"})
	assert.Equal(t, 1, s.Len(), "other users cannot end the session")

	s.EndSession(ctx, session.EndSession{SessionID: sess.SessionID}, alice)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.CheckSession(ctx, *sess, alice))

	assert.NotPanics(t, func() { s.EndSession(ctx, session.EndSession{SessionID: "gone"}, alice) })
}

func TestStore_MaxSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mock := clock.NewMock()
	s := New(time.Minute, WithClock(mock), WithMaxSessions(2))

	require.NotNil(t, s.BeginSession(ctx, session.BeginSession{}, alice))
	require.NotNil(t, s.BeginSession(ctx, session.BeginSession{}, alice))
	assert.Nil(t, s.BeginSession(ctx, session.BeginSession{}, alice))

	mock.Add(2 * time.Minute)
	assert.NotNil(t, s.BeginSession(ctx, session.BeginSession{}, alice), "expired sessions free their slots")
	assert.Equal(t, 1, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mock := clock.NewMock()
	s := New(time.Minute, WithClock(mock))

	old := s.BeginSession(ctx, session.BeginSession{}, alice)
	mock.Add(45 * time.Second)
	fresh := s.BeginSession(ctx, session.BeginSession{}, alice)
	mock.Add(30 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.False(t, s.CheckSession(ctx, *old, alice))
	assert.True(t, s.CheckSession(ctx, *fresh, alice))
}

func TestStore_Run(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	s := New(time.Minute, WithClock(mock))
	s.BeginSession(context.Background(), session.BeginSession{}, alice)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 30*time.Second)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		mock.Add(30 * time.Second)
		return s.Len() == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(time.Minute)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := s.BeginSession(ctx, session.BeginSession{}, alice)
			for range 10 {
				assert.True(t, s.CheckSession(ctx, *sess, alice))
			}
			s.EndSession(ctx, session.EndSession{SessionID: sess.SessionID}, alice)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}
