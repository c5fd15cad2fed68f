package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

func challenge(owner string, created time.Time) *entities.Challenge {
	return &entities.Challenge{ID: owner + "-" + created.String(), Owner: owner, CreatedAt: created}
}

func TestChallengeStorage_LatestWins(t *testing.T) {
	s := NewChallengeStorage()
	now := time.Now()

	first := challenge("alice", now)
	second := challenge("alice", now.Add(time.Second))
	s.Store(first)
	s.Store(second)

	got, ok := s.Get("alice")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, s.Len())

	s.Delete("alice")
	_, ok = s.Get("alice")
	assert.False(t, ok)
}

func TestChallengeStorage_PruneBefore(t *testing.T) {
	s := NewChallengeStorage()
	now := time.Now()

	s.Store(challenge("old", now.Add(-2*time.Hour)))
	s.Store(challenge("fresh", now))

	assert.Equal(t, 1, s.PruneBefore(now.Add(-time.Hour)))

	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("fresh")
	assert.True(t, ok)
}

func TestChallengeStorage_Concurrent(t *testing.T) {
	s := NewChallengeStorage()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Store(challenge("bob", now))
			s.Get("bob")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
