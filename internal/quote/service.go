package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultEndpoint = "https://api.api-ninjas.com/v1/quotes"
	cacheTTL        = 48 * time.Hour
)

type Quote struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date"`
}

// Service returns one quote per UTC day, fetching from the upstream API at
// most once and caching the result in redis.
type Service struct {
	redis    *redis.Client
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewService(redisClient *redis.Client, apiKey string, logger *slog.Logger) *Service {
	return &Service{
		redis:    redisClient,
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// WithEndpoint overrides the upstream URL, used in tests.
func (s *Service) WithEndpoint(endpoint string) *Service {
	s.endpoint = endpoint
	return s
}

func (s *Service) Today(ctx context.Context) (*Quote, error) {
	day := time.Now().UTC().Format("2006-01-02")
	key := "daily_quote:" + day

	if s.redis != nil {
		data, err := s.redis.Get(ctx, key).Bytes()
		if err == nil {
			var q Quote
			if err := json.Unmarshal(data, &q); err == nil {
				return &q, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("quote cache read failed", "error", err)
		}
	}

	q, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	q.Date = day

	if s.redis != nil {
		data, err := json.Marshal(q)
		if err == nil {
			if err := s.redis.Set(ctx, key, data, cacheTTL).Err(); err != nil {
				s.logger.Warn("quote cache write failed", "error", err)
			}
		}
	}

	return q, nil
}

func (s *Service) fetch(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote api returned %d: %s", resp.StatusCode, string(body))
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errors.New("quote api returned no quotes")
	}

	return &quotes[0], nil
}
