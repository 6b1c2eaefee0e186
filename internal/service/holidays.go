package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"toolrental-backend/internal/cache"
	"toolrental-backend/internal/config"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
)

type holidayService struct {
	years        *cache.Loader[int, []domain.Holiday]
	holidayCache *cache.HolidayCache
	client       *http.Client
	baseURL      string
	country      string
	allowed      map[string]bool
}

// providerHoliday is one record of the external provider's yearly listing
type providerHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
}

// NewHolidayService builds the tiered holiday resolver: in-process loader,
// distributed cache, then the external provider API. The provider's yearly
// list is filtered down to the configured name allow-list before caching.
func NewHolidayService(cfg config.HolidayAPIConfig, holidayCache *cache.HolidayCache, localTTL time.Duration) Holidays {
	allowed := make(map[string]bool, len(cfg.HolidayNames))
	for _, name := range cfg.HolidayNames {
		allowed[name] = true
	}

	s := &holidayService{
		holidayCache: holidayCache,
		client:       &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:      cfg.BaseURL,
		country:      cfg.CountryCode,
		allowed:      allowed,
	}
	s.years = cache.NewLoader(localTTL, s.loadYear)
	return s
}

func (s *holidayService) loadYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	holidays, err := s.holidayCache.Get(ctx, year)
	if err == nil {
		return holidays, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Distributed cache unavailable for holiday lookup", "year", year, "error", err)
	}

	holidays, err = s.fetchFromAPI(ctx, year)
	if err != nil {
		return nil, err
	}
	if storeErr := s.holidayCache.Store(ctx, year, holidays); storeErr != nil {
		logger.Warn("Failed to write holidays back to the distributed cache", "year", year, "error", storeErr)
	}
	return holidays, nil
}

func (s *holidayService) fetchFromAPI(ctx context.Context, year int) ([]domain.Holiday, error) {
	url := fmt.Sprintf("%s/%d/%s", s.baseURL, year, s.country)
	logger.ExternalServiceCall("holiday_api", "fetch", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("holiday_api", "fetch", err, "year", year)
		return nil, fmt.Errorf("failed to get the holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("failed to get the holidays for %d: status %d", year, resp.StatusCode)
		logger.ExternalServiceResult("holiday_api", "fetch", err, "year", year)
		return nil, err
	}

	var listing []providerHoliday
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		logger.ExternalServiceResult("holiday_api", "fetch", err, "year", year)
		return nil, fmt.Errorf("failed to decode the holidays for %d: %w", year, err)
	}

	holidays := make([]domain.Holiday, 0, len(listing))
	for _, h := range listing {
		if !s.allowed[h.LocalName] {
			continue
		}
		observed, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			logger.Warn("Skipping holiday with invalid date", "name", h.LocalName, "date", h.Date)
			continue
		}
		holidays = append(holidays, domain.Holiday{Name: h.LocalName, ObservedOn: observed})
	}
	logger.ExternalServiceResult("holiday_api", "fetch", nil, "year", year, "holidays", len(holidays))
	return holidays, nil
}

func (s *holidayService) HolidaysFor(ctx context.Context, year int) ([]domain.Holiday, error) {
	return s.years.Get(ctx, year)
}

// IsHoliday degrades to false when the year cannot be resolved at any
// tier; the agreement builder's day-count cross-check still guards against
// classifier inconsistency.
func (s *holidayService) IsHoliday(ctx context.Context, date time.Time) bool {
	holidays, err := s.years.Get(ctx, date.Year())
	if err != nil {
		logger.Warn("Failed to resolve holidays, treating date as non-holiday", "date", date.Format("2006-01-02"), "error", err)
		return false
	}
	for _, h := range holidays {
		if h.SameDate(date) {
			return true
		}
	}
	return false
}
