package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

// ChallengeStorage keeps the active memorisation challenge of every owner in
// memory. An owner has at most one challenge; storing a new one replaces it.
type ChallengeStorage struct {
	mu         sync.RWMutex
	challenges map[string]*entities.Challenge
}

// NewChallengeStorage creates a new ChallengeStorage.
func NewChallengeStorage() *ChallengeStorage {
	return &ChallengeStorage{
		challenges: make(map[string]*entities.Challenge),
	}
}

// Store saves c as the active challenge of its owner.
func (s *ChallengeStorage) Store(c *entities.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[c.Owner] = c
}

// Get returns the active challenge of owner.
func (s *ChallengeStorage) Get(owner string) (*entities.Challenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[owner]
	return c, ok
}

// Delete drops the active challenge of owner.
func (s *ChallengeStorage) Delete(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, owner)
}

// PruneBefore drops challenges created before t and returns how many went.
func (s *ChallengeStorage) PruneBefore(t time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for owner, c := range s.challenges {
		if c.CreatedAt.Before(t) {
			delete(s.challenges, owner)
			n++
		}
	}
	return n
}

// Len returns the number of active challenges.
func (s *ChallengeStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.challenges)
}
