package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockprep-api/internal/dto"
	"github.com/noah-isme/mockprep-api/internal/models"
	"github.com/noah-isme/mockprep-api/internal/repository"
)

const improvementWindow = 30 * 24 * time.Hour

// InterviewStatsService aggregates interview history for dashboards and diagnostics.
type InterviewStatsService interface {
	GetStats(ctx context.Context, userID uint) (dto.InterviewStatsResponse, error)
	Diagnostics(ctx context.Context) (dto.ScoringDiagnosticsResponse, error)
	Invalidate(ctx context.Context, userID uint)
}

type interviewStatsService struct {
	sessions repository.InterviewSessionRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewInterviewStatsService builds the stats aggregator. cache may be nil.
func NewInterviewStatsService(sessions repository.InterviewSessionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) InterviewStatsService {
	return &interviewStatsService{
		sessions: sessions,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "interview_stats_service").Logger(),
		now:      time.Now,
	}
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("stats:user:%d", userID)
}

func (s *interviewStatsService) GetStats(ctx context.Context, userID uint) (dto.InterviewStatsResponse, error) {
	cacheKey := statsCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.InterviewStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Msg("stats cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
		}
	}

	sessions, _, err := s.sessions.List(ctx, repository.InterviewSessionFilter{UserID: &userID})
	if err != nil {
		return dto.InterviewStatsResponse{}, err
	}

	response := s.buildStats(sessions)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
			}
		}
	}

	return response, nil
}

func (s *interviewStatsService) Invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate stats cache")
	}
}

func (s *interviewStatsService) buildStats(sessions []models.InterviewSession) dto.InterviewStatsResponse {
	now := s.now()
	response := dto.InterviewStatsResponse{TotalSessions: len(sessions)}

	var performanceTotal float64
	var scored int
	var recent, previous []float64

	for _, session := range sessions {
		if session.Completed {
			response.CompletedSessions++
		}
		response.AnsweredQuestions += session.AnsweredCount()

		if session.Performance == nil {
			continue
		}
		performance := *session.Performance
		performanceTotal += performance
		scored++
		if performance > response.BestPerformance {
			response.BestPerformance = performance
		}

		age := now.Sub(session.CreatedAt)
		switch {
		case age <= improvementWindow:
			recent = append(recent, performance)
		case age <= 2*improvementWindow:
			previous = append(previous, performance)
		}
	}

	if response.TotalSessions > 0 {
		response.CompletionRate = round(float64(response.CompletedSessions)/float64(response.TotalSessions)*100, 1)
	}
	if scored > 0 {
		response.AveragePerformance = round(performanceTotal/float64(scored), 2)
	}
	response.BestPerformance = round(response.BestPerformance, 2)

	if len(recent) > 0 && len(previous) > 0 {
		response.MonthlyImprovement = round(mean(recent)-mean(previous), 2)
	}

	return response
}

func (s *interviewStatsService) Diagnostics(ctx context.Context) (dto.ScoringDiagnosticsResponse, error) {
	sessions, _, err := s.sessions.List(ctx, repository.InterviewSessionFilter{})
	if err != nil {
		return dto.ScoringDiagnosticsResponse{}, err
	}

	type bucket struct {
		count int
		total float64
	}
	type key struct {
		source  string
		matcher string
	}

	buckets := map[key]*bucket{}
	response := dto.ScoringDiagnosticsResponse{}
	for _, session := range sessions {
		for _, entry := range session.Entries {
			k := key{source: entry.ScoreSource, matcher: entry.ScoreMatcher}
			b, ok := buckets[k]
			if !ok {
				b = &bucket{}
				buckets[k] = b
			}
			b.count++
			b.total += entry.Score
			response.TotalAnswers++
		}
	}

	response.Sources = make([]dto.ScoreSourceCount, 0, len(buckets))
	for k, b := range buckets {
		response.Sources = append(response.Sources, dto.ScoreSourceCount{
			Source:       k.source,
			Matcher:      k.matcher,
			Count:        b.count,
			AverageScore: round(b.total/float64(b.count), 2),
		})
	}
	sort.Slice(response.Sources, func(i, j int) bool {
		if response.Sources[i].Count != response.Sources[j].Count {
			return response.Sources[i].Count > response.Sources[j].Count
		}
		if response.Sources[i].Source != response.Sources[j].Source {
			return response.Sources[i].Source < response.Sources[j].Source
		}
		return response.Sources[i].Matcher < response.Sources[j].Matcher
	})

	return response, nil
}

func mean(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
