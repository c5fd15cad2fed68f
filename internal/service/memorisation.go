package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
)

var (
	ErrSelectionRequired = errors.New("either a surah or a juz number is required")
	ErrNoAyahFound       = errors.New("no ayah found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrNoFollowingAyah   = errors.New("the ayah has no following ayah")
)

// Selection is the scope a memorisation challenge is drawn from. Exactly one
// of Surah and Juz is set.
type Selection struct {
	Surah int `json:"surah"`
	Juz   int `json:"juz"`
}

func (s Selection) validate() error {
	switch {
	case s.Surah != 0 && s.Juz != 0, s.Surah == 0 && s.Juz == 0:
		return ErrSelectionRequired
	case s.Surah != 0 && !quran.ValidSurah(s.Surah):
		return quran.ErrInvalidSurah
	case s.Juz != 0 && !quran.ValidJuz(s.Juz):
		return quran.ErrInvalidJuz
	}
	return nil
}

// MemorisationService draws random ayahs and checks recited continuations.
type MemorisationService struct {
	content   ContentProvider
	store     ChallengeStore
	validator *RecitationValidator
	prefs     *Preferences
	intN      func(n int) int
}

func NewMemorisationService(
	content ContentProvider,
	store ChallengeStore,
	validator *RecitationValidator,
	prefs *Preferences,
) *MemorisationService {
	return &MemorisationService{
		content:   content,
		store:     store,
		validator: validator,
		prefs:     prefs,
		intN:      rand.IntN,
	}
}

// ownerUser returns the account behind a challenge owner, uuid.Nil for guests.
func ownerUser(owner string) uuid.UUID {
	id, err := uuid.Parse(owner)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Start picks a random ayah from the selection and makes it the active
// challenge of owner, replacing any previous one.
func (s *MemorisationService) Start(ctx context.Context, owner string, sel Selection) (*entities.Challenge, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}

	userID := ownerUser(owner)
	edition := s.prefs.Edition(ctx, userID)

	ayahs, err := s.candidates(ctx, sel, edition)
	if err != nil {
		return nil, err
	}
	if len(ayahs) == 0 {
		return nil, ErrNoAyahFound
	}

	ayah := ayahs[s.intN(len(ayahs))]

	audio, err := s.content.GetAyahAudio(ctx, strconv.Itoa(ayah.Number), s.prefs.Reciter(ctx, userID))
	if err != nil {
		if errors.Is(err, quran.ErrAudioUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve challenge audio: %w", err)
	}

	var surahName string
	if ayah.Surah != nil {
		surahName = ayah.Surah.EnglishName
	}

	challenge := entities.NewChallenge(owner, ayah, surahName, audio)
	challenge.Edition = edition
	s.store.Store(challenge)

	return challenge, nil
}

// candidates loads the ayahs of the selection, each with its surah set.
func (s *MemorisationService) candidates(ctx context.Context, sel Selection, edition string) ([]entities.Ayah, error) {
	if sel.Surah != 0 {
		detail, err := s.content.GetSurah(ctx, sel.Surah, edition)
		if err != nil {
			return nil, fmt.Errorf("load surah for challenge: %w", err)
		}
		surah := detail.Surah
		ayahs := detail.Ayahs
		for i := range ayahs {
			ayahs[i].Surah = &surah
		}
		return ayahs, nil
	}

	juz, err := s.content.GetJuz(ctx, sel.Juz, edition)
	if err != nil {
		return nil, fmt.Errorf("load juz for challenge: %w", err)
	}
	return juz.Ayahs, nil
}

// Active returns the current challenge of owner.
func (s *MemorisationService) Active(owner string) (*entities.Challenge, bool) {
	return s.store.Get(owner)
}

// Check compares answer with the ayah following the challenge ayah. An empty
// challengeID checks the active challenge of owner.
func (s *MemorisationService) Check(
	ctx context.Context, owner, challengeID, answer string,
) (*entities.RecitationResult, error) {
	challenge, ok := s.store.Get(owner)
	if !ok || (challengeID != "" && challenge.ID != challengeID) {
		return nil, ErrChallengeNotFound
	}

	next, ok := quran.NextAyah(challenge.SurahNumber, challenge.AyahNumber, challenge.SurahAyahs)
	if !ok {
		return nil, ErrNoFollowingAyah
	}

	expected, err := s.content.GetAyah(ctx, next.Surah, next.Ayah, challenge.Edition)
	if err != nil {
		return nil, fmt.Errorf("load following ayah: %w", err)
	}

	correct, similarity := s.validator.Compare(answer, expected.Text)
	if correct {
		s.store.Delete(owner)
	}

	return &entities.RecitationResult{
		Correct:     correct,
		Similarity:  similarity,
		SurahNumber: next.Surah,
		AyahNumber:  next.Ayah,
		Expected:    expected.Text,
	}, nil
}
