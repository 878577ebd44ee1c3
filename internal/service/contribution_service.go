package service

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/cache"
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
)

type ActivityType string

const (
	ActivityEdit ActivityType = "edit"
	ActivityChat ActivityType = "chat"
	ActivityTask ActivityType = "task"
)

var ErrUnknownActivity = errors.New("unknown activity type")

// EditDelta carries the character counts of an edit activity. It is ignored
// for chat and task activities.
type EditDelta struct {
	CharsAdded   int `json:"chars_added"`
	CharsRemoved int `json:"chars_removed"`
}

type ContributionService struct {
	contribRepo  repository.ContributionRepositoryInterface
	contribCache *cache.ContributionCache
}

func NewContributionService(contribRepo repository.ContributionRepositoryInterface, contribCache *cache.ContributionCache) *ContributionService {
	return &ContributionService{
		contribRepo:  contribRepo,
		contribCache: contribCache,
	}
}

// TrackContribution records one activity event against a project member.
// It issues two independent upserts: the cumulative membership record and
// the per-day snapshot bucket. There is no transaction across the pair; a
// failure between them leaves one side stale, and storage errors propagate
// to the caller untouched.
//
// Only edit activity moves the cumulative edit/character counters. Chat and
// task activity touch last-active and their snapshot counters only.
func (s *ContributionService) TrackContribution(userID, projectID uint, activity ActivityType, delta *EditDelta) error {
	charsAdded, charsRemoved := 0, 0
	if delta != nil {
		// Negative deltas would silently corrupt the running totals.
		charsAdded = max0(delta.CharsAdded)
		charsRemoved = max0(delta.CharsRemoved)
	}

	edits, docsEdited, chatMessages, tasksCompleted := 0, 0, 0, 0
	switch activity {
	case ActivityEdit:
		edits = 1
		docsEdited = 1
	case ActivityChat:
		chatMessages = 1
		charsAdded, charsRemoved = 0, 0
	case ActivityTask:
		tasksCompleted = 1
		charsAdded, charsRemoved = 0, 0
	default:
		return ErrUnknownActivity
	}

	if err := s.contribRepo.ApplyMemberActivity(projectID, userID, edits, charsAdded, charsRemoved); err != nil {
		return err
	}

	day := startOfDay(time.Now())
	if err := s.contribRepo.ApplySnapshotActivity(projectID, userID, day, docsEdited, charsAdded, chatMessages, tasksCompleted); err != nil {
		return err
	}

	if err := s.contribCache.InvalidateBreakdown(projectID); err != nil {
		log.Printf("Failed to invalidate breakdown cache for project %d: %v", projectID, err)
	}
	return nil
}

// GetContributionBreakdown computes per-member attribution for a project.
// Percentages are rounded half-up independently per member and a project
// with no recorded edits yields 0% rows rather than a division by zero.
func (s *ContributionService) GetContributionBreakdown(projectID uint) ([]models.MemberContribution, error) {
	if cached, ok := s.contribCache.GetBreakdown(projectID); ok {
		return cached, nil
	}

	members, err := s.contribRepo.ListMembers(projectID)
	if err != nil {
		return nil, err
	}

	totalEdits, totalChars := 0, 0
	for _, m := range members {
		totalEdits += m.EditCount
		totalChars += m.CharsAdded
	}

	breakdown := make([]models.MemberContribution, 0, len(members))
	for _, m := range members {
		breakdown = append(breakdown, models.MemberContribution{
			User:                   m.User.ToResponse(),
			Role:                   m.Role,
			EditCount:              m.EditCount,
			CharsAdded:             m.CharsAdded,
			CharsRemoved:           m.CharsRemoved,
			LastActiveAt:           m.LastActiveAt,
			ContributionPercentage: percentage(m.EditCount, totalEdits),
			CharacterPercentage:    percentage(m.CharsAdded, totalChars),
		})
	}

	if err := s.contribCache.SetBreakdown(projectID, breakdown); err != nil {
		log.Printf("Failed to cache breakdown for project %d: %v", projectID, err)
	}
	return breakdown, nil
}

// GetContributionHistory returns one member's daily snapshots covering the
// last `days` calendar days, oldest first. days defaults to 7 when not
// positive; there is no upper bound.
func (s *ContributionService) GetContributionHistory(projectID, userID uint, days int) ([]models.ContributionSnapshot, error) {
	if days <= 0 {
		days = 7
	}
	since := startOfDay(time.Now()).AddDate(0, 0, -days)
	return s.contribRepo.ListSnapshotsSince(projectID, userID, since)
}

func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
