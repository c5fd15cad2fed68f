package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/storage"
)

var errBoom = errors.New("boom")

// fakeContent serves a tiny Quran: surahs with a configurable ayah count,
// ayah text "s:a".
type fakeContent struct {
	mu         sync.Mutex
	surahs     []entities.Surah
	pages      map[int][]entities.Ayah
	audio      map[string]string
	listErr    error
	ayahErr    error
	calls      map[string]int
	lastEdAyah string
	editions   []string
}

func newFakeContent(counts ...int) *fakeContent {
	f := &fakeContent{
		pages: make(map[int][]entities.Ayah),
		audio: make(map[string]string),
		calls: make(map[string]int),
	}
	for i, c := range counts {
		n := i + 1
		f.surahs = append(f.surahs, entities.Surah{
			Number:        n,
			Name:          "سورة" + strconv.Itoa(n),
			EnglishName:   "Surah-" + strconv.Itoa(n),
			NumberOfAyahs: c,
		})
	}
	return f
}

func (f *fakeContent) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

// edition records the text edition a content call asked for.
func (f *fakeContent) edition(edition string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editions = append(f.editions, edition)
}

func (f *fakeContent) requestedEditions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.editions...)
}

func (f *fakeContent) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeContent) surah(n int) (entities.Surah, bool) {
	if n < 1 || n > len(f.surahs) {
		return entities.Surah{}, false
	}
	return f.surahs[n-1], true
}

func (f *fakeContent) global(surah, ayah int) int {
	g := 0
	for _, s := range f.surahs[:surah-1] {
		g += s.NumberOfAyahs
	}
	return g + ayah
}

func (f *fakeContent) ListSurahs(context.Context) ([]entities.Surah, error) {
	f.hit("ListSurahs")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entities.Surah(nil), f.surahs...), nil
}

func (f *fakeContent) GetSurah(_ context.Context, number int, edition string) (*entities.SurahDetail, error) {
	f.hit("GetSurah")
	f.edition(edition)
	s, ok := f.surah(number)
	if !ok {
		return nil, quran.ErrNotFound
	}
	detail := &entities.SurahDetail{Surah: s}
	for a := 1; a <= s.NumberOfAyahs; a++ {
		detail.Ayahs = append(detail.Ayahs, entities.Ayah{
			Number:        f.global(number, a),
			NumberInSurah: a,
			Text:          quran.AyahRef(number, a),
			Juz:           1,
		})
	}
	return detail, nil
}

func (f *fakeContent) GetAyah(_ context.Context, surah, ayah int, edition string) (*entities.Ayah, error) {
	f.hit("GetAyah")
	f.edition(edition)
	if f.ayahErr != nil {
		return nil, f.ayahErr
	}
	s, ok := f.surah(surah)
	if !ok || ayah > s.NumberOfAyahs {
		return nil, quran.ErrNotFound
	}
	return &entities.Ayah{
		Number:        f.global(surah, ayah),
		NumberInSurah: ayah,
		Text:          quran.AyahRef(surah, ayah),
		Surah:         &s,
	}, nil
}

func (f *fakeContent) GetAyahAudio(_ context.Context, ref string, reciter string) (string, error) {
	f.hit("GetAyahAudio")
	f.mu.Lock()
	f.lastEdAyah = reciter
	f.mu.Unlock()
	if url, ok := f.audio[ref]; ok {
		return url, nil
	}
	return "", quran.ErrAudioUnavailable
}

func (f *fakeContent) GetPage(_ context.Context, number int, _ string) (*entities.Page, error) {
	f.hit("GetPage")
	return &entities.Page{Number: number, Ayahs: f.pages[number]}, nil
}

func (f *fakeContent) GetJuz(_ context.Context, number int, edition string) (*entities.Juz, error) {
	f.hit("GetJuz")
	f.edition(edition)
	juz := &entities.Juz{Number: number}
	for _, s := range f.surahs {
		for a := 1; a <= s.NumberOfAyahs; a++ {
			juz.Ayahs = append(juz.Ayahs, entities.Ayah{
				Number:        f.global(s.Number, a),
				NumberInSurah: a,
				Text:          quran.AyahRef(s.Number, a),
				Surah:         &s,
			})
		}
	}
	return juz, nil
}

type ayahKey struct {
	user  uuid.UUID
	surah int
	ayah  int
}

type fakeNotes struct {
	mu     sync.Mutex
	notes  map[ayahKey]*entities.Note
	nextID int64
	err    error
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{notes: make(map[ayahKey]*entities.Note)}
}

func (f *fakeNotes) Get(_ context.Context, userID uuid.UUID, surah, ayah int) (*entities.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.notes[ayahKey{userID, surah, ayah}]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeNotes) Upsert(_ context.Context, note *entities.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	k := ayahKey{note.UserID, note.SurahNumber, note.AyahNumber}
	if existing, ok := f.notes[k]; ok {
		existing.Content = note.Content
		existing.UpdatedAt = note.UpdatedAt
		note.ID = existing.ID
		note.CreatedAt = existing.CreatedAt
		return nil
	}
	f.nextID++
	note.ID = f.nextID
	stored := *note
	f.notes[k] = &stored
	return nil
}

func (f *fakeNotes) Delete(_ context.Context, userID uuid.UUID, surah, ayah int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := ayahKey{userID, surah, ayah}
	if _, ok := f.notes[k]; !ok {
		return repository.ErrNoteNotFound
	}
	delete(f.notes, k)
	return nil
}

func (f *fakeNotes) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Note
	for k, n := range f.notes {
		if k.user == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeBookmarks struct {
	mu    sync.Mutex
	marks map[ayahKey]*entities.Bookmark
	order []ayahKey
}

func newFakeBookmarks() *fakeBookmarks {
	return &fakeBookmarks{marks: make(map[ayahKey]*entities.Bookmark)}
}

func (f *fakeBookmarks) Exists(_ context.Context, userID uuid.UUID, surah, ayah int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.marks[ayahKey{userID, surah, ayah}]
	return ok, nil
}

func (f *fakeBookmarks) Add(_ context.Context, b *entities.Bookmark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := ayahKey{b.UserID, b.SurahNumber, b.AyahNumber}
	if _, ok := f.marks[k]; !ok {
		f.marks[k] = b
		f.order = append(f.order, k)
	}
	return nil
}

func (f *fakeBookmarks) Remove(_ context.Context, userID uuid.UUID, surah, ayah int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := ayahKey{userID, surah, ayah}
	if _, ok := f.marks[k]; !ok {
		return false, nil
	}
	delete(f.marks, k)
	return true, nil
}

func (f *fakeBookmarks) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Bookmark
	for _, k := range f.order {
		if b, ok := f.marks[k]; ok && k.user == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSettings struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*entities.UserSettings
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: make(map[uuid.UUID]*entities.UserSettings)}
}

func (f *fakeSettings) Create(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.settings[userID]; !ok {
		f.settings[userID] = entities.NewUserSettings(userID)
	}
	return nil
}

func (f *fakeSettings) GetByUserID(_ context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettings) UpdateReciter(_ context.Context, userID uuid.UUID, reciter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return repository.ErrSettingsNotFound
	}
	s.Reciter = reciter
	return nil
}

func (f *fakeSettings) UpdateEdition(_ context.Context, userID uuid.UUID, edition string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return repository.ErrSettingsNotFound
	}
	s.Edition = edition
	return nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uuid.UUID]*entities.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return repository.ErrEmailAlreadyTaken
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) EnsureTelegramUser(_ context.Context, user *entities.User) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.TelegramID != nil && *u.TelegramID == *user.TelegramID {
			u.Username = user.Username
			cp := *u
			return &cp, nil
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) UpdateUsername(_ context.Context, id uuid.UUID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Username = username
	return nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = &hash
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*entities.Session)}
}

func (f *fakeSessions) Create(_ context.Context, s *entities.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (*entities.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for t, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, t)
		}
	}
	return nil
}

func (f *fakeSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for t, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, t)
			n++
		}
	}
	return n, nil
}

type fakeResets struct {
	mu     sync.Mutex
	resets map[string]*entities.PasswordReset
}

func newFakeResets() *fakeResets {
	return &fakeResets{resets: make(map[string]*entities.PasswordReset)}
}

func (f *fakeResets) Create(_ context.Context, r *entities.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets[r.Token] = r
	return nil
}

func (f *fakeResets) GetForUpdate(_ context.Context, token string) (*entities.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resets[token]
	if !ok {
		return nil, repository.ErrResetNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeResets) MarkUsed(_ context.Context, token string, usedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resets[token]
	if !ok || r.UsedAt != nil {
		return repository.ErrResetNotFound
	}
	r.UsedAt = &usedAt
	return nil
}

func (f *fakeResets) DeleteStale(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for t, r := range f.resets {
		if !r.Usable(now) {
			delete(f.resets, t)
			n++
		}
	}
	return n, nil
}

// fakeTx runs fn against the same in-memory store.
type fakeTx struct {
	store AccountStore
}

func (f fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context, store AccountStore) error) error {
	return fn(ctx, f.store)
}

type sentMail struct {
	email string
	link  string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.sent = append(m.sent, sentMail{email: email, link: link})
	return nil
}

func newChallengeStore() *storage.ChallengeStorage {
	return storage.NewChallengeStorage()
}

func defaultPrefs(settings SettingsRepository) *Preferences {
	return NewPreferences(settings, entities.DefaultEdition, "", nopLogger())
}

// userWithEdition stores settings for a new user with the given text edition.
func userWithEdition(t *testing.T, settings *fakeSettings, edition string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, settings.Create(ctx, userID))
	require.NoError(t, settings.UpdateEdition(ctx, userID, edition))
	return userID
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
