// Package quran is a client for the public alquran.cloud content API.
package quran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

const DefaultBaseURL = "https://api.alquran.cloud/v1"

var (
	ErrInvalidSurah     = errors.New("invalid surah number")
	ErrInvalidAyah      = errors.New("invalid ayah number")
	ErrInvalidPage      = errors.New("invalid page number")
	ErrInvalidJuz       = errors.New("invalid juz number")
	ErrInvalidEdition   = errors.New("invalid edition")
	ErrNotFound         = errors.New("content not found")
	ErrAudioUnavailable = errors.New("audio not available")
)

// APIError is returned when the content API answers with a non-200 code.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quran api: %d %s", e.Code, e.Status)
	}
	return fmt.Sprintf("quran api: %d %s: %s", e.Code, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// envelope is the wrapper every API response comes in.
type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Client handles communication with the content API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListSurahs returns metadata of all 114 surahs.
func (c *Client) ListSurahs(ctx context.Context) ([]entities.Surah, error) {
	var surahs []entities.Surah
	if err := c.get(ctx, "/surah", &surahs); err != nil {
		return nil, fmt.Errorf("list surahs: %w", err)
	}
	return surahs, nil
}

// GetSurah returns a surah with its ayahs in the given text edition.
// An empty edition selects the API default.
func (c *Client) GetSurah(ctx context.Context, number int, edition string) (*entities.SurahDetail, error) {
	if !ValidSurah(number) {
		return nil, ErrInvalidSurah
	}

	path, err := withEdition("/surah/"+strconv.Itoa(number), edition)
	if err != nil {
		return nil, err
	}

	var surah entities.SurahDetail
	if err := c.get(ctx, path, &surah); err != nil {
		return nil, fmt.Errorf("get surah %d: %w", number, err)
	}
	return &surah, nil
}

// GetAyah returns a single ayah, including its surah metadata.
func (c *Client) GetAyah(ctx context.Context, surah, ayah int, edition string) (*entities.Ayah, error) {
	if !ValidSurah(surah) {
		return nil, ErrInvalidSurah
	}
	if ayah < 1 {
		return nil, ErrInvalidAyah
	}

	path, err := withEdition("/ayah/"+AyahRef(surah, ayah), edition)
	if err != nil {
		return nil, err
	}

	var a entities.Ayah
	if err := c.get(ctx, path, &a); err != nil {
		return nil, fmt.Errorf("get ayah %s: %w", AyahRef(surah, ayah), err)
	}
	return &a, nil
}

// GetAyahAudio resolves the recitation URL of an ayah for a reciter edition.
// ref is either "surah:ayah" or the global ayah number.
func (c *Client) GetAyahAudio(ctx context.Context, ref string, reciter string) (string, error) {
	if ref == "" {
		return "", ErrInvalidAyah
	}
	if reciter == "" {
		reciter = entities.DefaultReciter
	}

	path, err := withEdition("/ayah/"+ref, reciter)
	if err != nil {
		return "", err
	}

	var a entities.Ayah
	if err := c.get(ctx, path, &a); err != nil {
		return "", fmt.Errorf("get audio %s: %w", ref, err)
	}
	if a.Audio == "" {
		return "", ErrAudioUnavailable
	}
	return a.Audio, nil
}

// GetPage returns the ayahs printed on a mushaf page.
func (c *Client) GetPage(ctx context.Context, number int, edition string) (*entities.Page, error) {
	if !ValidPage(number) {
		return nil, ErrInvalidPage
	}
	if edition == "" {
		edition = entities.DefaultEdition
	}

	path, err := withEdition("/page/"+strconv.Itoa(number), edition)
	if err != nil {
		return nil, err
	}

	var page entities.Page
	if err := c.get(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("get page %d: %w", number, err)
	}
	return &page, nil
}

// GetJuz returns the ayahs of a juz.
func (c *Client) GetJuz(ctx context.Context, number int, edition string) (*entities.Juz, error) {
	if !ValidJuz(number) {
		return nil, ErrInvalidJuz
	}

	path, err := withEdition("/juz/"+strconv.Itoa(number), edition)
	if err != nil {
		return nil, err
	}

	var juz entities.Juz
	if err := c.get(ctx, path, &juz); err != nil {
		return nil, fmt.Errorf("get juz %d: %w", number, err)
	}
	return &juz, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode envelope: %w", err)
	}

	if env.Code != http.StatusOK {
		apiErr := &APIError{Code: env.Code, Status: env.Status}
		var msg string
		if json.Unmarshal(env.Data, &msg) == nil {
			apiErr.Message = msg
		}
		return apiErr
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func withEdition(path, edition string) (string, error) {
	if edition == "" {
		return path, nil
	}
	if !ValidEdition(edition) {
		return "", ErrInvalidEdition
	}
	return path + "/" + edition, nil
}

// ValidEdition reports whether s looks like an edition identifier.
func ValidEdition(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}
