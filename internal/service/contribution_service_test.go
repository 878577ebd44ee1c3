package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
)

// MockContributionRepository is an in-memory stand-in for the contribution
// storage collaborator. It mirrors the real upsert semantics: missing rows
// are seeded from the event, existing rows are incremented.
type MockContributionRepository struct {
	members   map[[2]uint]*models.ProjectMember
	snapshots map[[2]uint]map[time.Time]*models.ContributionSnapshot
	order     [][2]uint
	failNext  error
	nextID    uint
}

func NewMockContributionRepository() *MockContributionRepository {
	return &MockContributionRepository{
		members:   make(map[[2]uint]*models.ProjectMember),
		snapshots: make(map[[2]uint]map[time.Time]*models.ContributionSnapshot),
		nextID:    1,
	}
}

func (m *MockContributionRepository) ApplyMemberActivity(projectID, userID uint, edits, charsAdded, charsRemoved int) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	key := [2]uint{projectID, userID}
	now := time.Now()
	member, ok := m.members[key]
	if !ok {
		member = &models.ProjectMember{
			ProjectID: projectID,
			UserID:    userID,
			Role:      models.ProjectRoleMember,
			JoinedAt:  now,
			User:      models.User{ID: userID},
		}
		m.members[key] = member
		m.order = append(m.order, key)
	}
	member.EditCount += edits
	member.CharsAdded += charsAdded
	member.CharsRemoved += charsRemoved
	member.LastActiveAt = &now
	return nil
}

func (m *MockContributionRepository) ApplySnapshotActivity(projectID, userID uint, day time.Time, docsEdited, charsAdded, chatMessages, tasksCompleted int) error {
	key := [2]uint{projectID, userID}
	if _, ok := m.snapshots[key]; !ok {
		m.snapshots[key] = make(map[time.Time]*models.ContributionSnapshot)
	}
	snap, ok := m.snapshots[key][day]
	if !ok {
		snap = &models.ContributionSnapshot{
			ID:        m.nextID,
			ProjectID: projectID,
			UserID:    userID,
			Day:       day,
		}
		m.nextID++
		m.snapshots[key][day] = snap
	}
	snap.DocumentsEdited += docsEdited
	snap.CharsAdded += charsAdded
	snap.ChatMessages += chatMessages
	snap.TasksCompleted += tasksCompleted
	return nil
}

func (m *MockContributionRepository) ListMembers(projectID uint) ([]models.ProjectMember, error) {
	var out []models.ProjectMember
	for _, key := range m.order {
		if key[0] == projectID {
			out = append(out, *m.members[key])
		}
	}
	return out, nil
}

func (m *MockContributionRepository) ListSnapshotsSince(projectID, userID uint, since time.Time) ([]models.ContributionSnapshot, error) {
	key := [2]uint{projectID, userID}
	var out []models.ContributionSnapshot
	for day, snap := range m.snapshots[key] {
		if !day.Before(since) {
			out = append(out, *snap)
		}
	}
	// ascending by day
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Day.Before(out[i].Day) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// seedMember installs a cumulative record directly, bypassing tracking.
func (m *MockContributionRepository) seedMember(projectID, userID uint, edits, charsAdded, charsRemoved int) {
	key := [2]uint{projectID, userID}
	m.members[key] = &models.ProjectMember{
		ProjectID:  projectID,
		UserID:     userID,
		Role:       models.ProjectRoleMember,
		EditCount:  edits,
		CharsAdded: charsAdded, CharsRemoved: charsRemoved,
		User: models.User{ID: userID},
	}
	m.order = append(m.order, key)
}

// member returns the cumulative record, or nil if tracking never created one.
func (m *MockContributionRepository) member(projectID, userID uint) *models.ProjectMember {
	return m.members[[2]uint{projectID, userID}]
}

// todaySnapshot returns the daily bucket tracking would have written today.
func (m *MockContributionRepository) todaySnapshot(projectID, userID uint) *models.ContributionSnapshot {
	return m.snapshots[[2]uint{projectID, userID}][startOfDay(time.Now())]
}

// seedSnapshot installs a daily bucket at an arbitrary day.
func (m *MockContributionRepository) seedSnapshot(projectID, userID uint, day time.Time, docsEdited int) {
	key := [2]uint{projectID, userID}
	if _, ok := m.snapshots[key]; !ok {
		m.snapshots[key] = make(map[time.Time]*models.ContributionSnapshot)
	}
	m.snapshots[key][day] = &models.ContributionSnapshot{
		ID: m.nextID, ProjectID: projectID, UserID: userID, Day: day, DocumentsEdited: docsEdited,
	}
	m.nextID++
}

func TestTrackContributionAccumulatesEdits(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	deltas := []EditDelta{
		{CharsAdded: 100, CharsRemoved: 20},
		{CharsAdded: 50, CharsRemoved: 0},
		{CharsAdded: 0, CharsRemoved: 30},
	}
	for i := range deltas {
		if err := svc.TrackContribution(1, 10, ActivityEdit, &deltas[i]); err != nil {
			t.Fatalf("TrackContribution: %v", err)
		}
	}

	member := repo.members[[2]uint{10, 1}]
	if member == nil {
		t.Fatal("cumulative record was not created")
	}
	if member.EditCount != 3 {
		t.Errorf("edit count = %d, want 3", member.EditCount)
	}
	if member.CharsAdded != 150 {
		t.Errorf("chars added = %d, want 150", member.CharsAdded)
	}
	if member.CharsRemoved != 50 {
		t.Errorf("chars removed = %d, want 50", member.CharsRemoved)
	}
	if member.Role != models.ProjectRoleMember {
		t.Errorf("lazily created record should default to member role, got %q", member.Role)
	}
	if member.LastActiveAt == nil {
		t.Error("last active was not set")
	}
}

func TestTrackContributionChatAndTaskLeaveEditCountersAlone(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	if err := svc.TrackContribution(1, 10, ActivityEdit, &EditDelta{CharsAdded: 40}); err != nil {
		t.Fatalf("TrackContribution: %v", err)
	}
	if err := svc.TrackContribution(1, 10, ActivityChat, nil); err != nil {
		t.Fatalf("TrackContribution: %v", err)
	}
	// A delta on a non-edit activity must be ignored, not counted.
	if err := svc.TrackContribution(1, 10, ActivityTask, &EditDelta{CharsAdded: 999}); err != nil {
		t.Fatalf("TrackContribution: %v", err)
	}

	member := repo.members[[2]uint{10, 1}]
	if member.EditCount != 1 || member.CharsAdded != 40 || member.CharsRemoved != 0 {
		t.Errorf("chat/task must not move edit counters: %+v", member)
	}

	snaps, _ := repo.ListSnapshotsSince(10, 1, time.Time{})
	if len(snaps) != 1 {
		t.Fatalf("expected one snapshot for today, got %d", len(snaps))
	}
	snap := snaps[0]
	if snap.ChatMessages != 1 {
		t.Errorf("chat messages = %d, want 1", snap.ChatMessages)
	}
	if snap.TasksCompleted != 1 {
		t.Errorf("tasks completed = %d, want 1", snap.TasksCompleted)
	}
	if snap.DocumentsEdited != 1 || snap.CharsAdded != 40 {
		t.Errorf("edit counters wrong in snapshot: %+v", snap)
	}
}

func TestTrackContributionClampsNegativeDeltas(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	if err := svc.TrackContribution(1, 10, ActivityEdit, &EditDelta{CharsAdded: -500, CharsRemoved: -3}); err != nil {
		t.Fatalf("TrackContribution: %v", err)
	}

	member := repo.members[[2]uint{10, 1}]
	if member.CharsAdded != 0 || member.CharsRemoved != 0 {
		t.Errorf("negative deltas must clamp to zero: %+v", member)
	}
	if member.EditCount != 1 {
		t.Errorf("edit count = %d, want 1", member.EditCount)
	}
}

func TestTrackContributionUnknownActivity(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	if err := svc.TrackContribution(1, 10, ActivityType("vibe"), nil); !errors.Is(err, ErrUnknownActivity) {
		t.Errorf("expected ErrUnknownActivity, got %v", err)
	}
	if len(repo.members) != 0 {
		t.Error("unknown activity must not write anything")
	}
}

func TestTrackContributionPropagatesStorageError(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	want := errors.New("connection refused")
	repo.failNext = want
	if err := svc.TrackContribution(1, 10, ActivityEdit, nil); !errors.Is(err, want) {
		t.Errorf("storage error should propagate unmodified, got %v", err)
	}
}

func TestSnapshotsAccumulateWithinADay(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	for i := 0; i < 2; i++ {
		if err := svc.TrackContribution(1, 10, ActivityEdit, &EditDelta{CharsAdded: 5}); err != nil {
			t.Fatalf("TrackContribution: %v", err)
		}
	}

	snaps, _ := repo.ListSnapshotsSince(10, 1, time.Time{})
	if len(snaps) != 1 {
		t.Fatalf("same-day events must share one snapshot row, got %d", len(snaps))
	}
	if snaps[0].CharsAdded != 10 || snaps[0].DocumentsEdited != 2 {
		t.Errorf("snapshot = %+v, want chars 10 / docs 2", snaps[0])
	}
}

func TestGetContributionBreakdownPercentages(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	repo.seedMember(10, 1, 10, 200, 0)
	repo.seedMember(10, 2, 30, 600, 0)
	repo.seedMember(10, 3, 0, 0, 0)

	breakdown, err := svc.GetContributionBreakdown(10)
	if err != nil {
		t.Fatalf("GetContributionBreakdown: %v", err)
	}
	if len(breakdown) != 3 {
		t.Fatalf("expected 3 members, got %d", len(breakdown))
	}

	wantPct := []int{25, 75, 0}
	for i, want := range wantPct {
		if breakdown[i].ContributionPercentage != want {
			t.Errorf("member %d contribution%% = %d, want %d", i, breakdown[i].ContributionPercentage, want)
		}
	}
	wantChar := []int{25, 75, 0}
	for i, want := range wantChar {
		if breakdown[i].CharacterPercentage != want {
			t.Errorf("member %d character%% = %d, want %d", i, breakdown[i].CharacterPercentage, want)
		}
	}
}

func TestGetContributionBreakdownZeroTotals(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	repo.seedMember(10, 1, 0, 0, 0)
	repo.seedMember(10, 2, 0, 0, 0)

	breakdown, err := svc.GetContributionBreakdown(10)
	if err != nil {
		t.Fatalf("GetContributionBreakdown: %v", err)
	}
	for _, b := range breakdown {
		if b.ContributionPercentage != 0 || b.CharacterPercentage != 0 {
			t.Errorf("zero totals must yield 0%%, got %+v", b)
		}
	}
}

func TestGetContributionBreakdownRoundsHalfUp(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	// 1/8 = 12.5% -> 13, 7/8 = 87.5% -> 88
	repo.seedMember(10, 1, 1, 1, 0)
	repo.seedMember(10, 2, 7, 7, 0)

	breakdown, err := svc.GetContributionBreakdown(10)
	if err != nil {
		t.Fatalf("GetContributionBreakdown: %v", err)
	}
	if breakdown[0].ContributionPercentage != 13 {
		t.Errorf("12.5%% should round to 13, got %d", breakdown[0].ContributionPercentage)
	}
	if breakdown[1].ContributionPercentage != 88 {
		t.Errorf("87.5%% should round to 88, got %d", breakdown[1].ContributionPercentage)
	}
}

func TestGetContributionHistoryWindow(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	today := startOfDay(time.Now())
	repo.seedSnapshot(10, 1, today.AddDate(0, 0, -10), 1) // outside the window
	repo.seedSnapshot(10, 1, today.AddDate(0, 0, -7), 2)  // boundary, included
	repo.seedSnapshot(10, 1, today.AddDate(0, 0, -3), 3)
	repo.seedSnapshot(10, 1, today, 4)

	history, err := svc.GetContributionHistory(10, 1, 7)
	if err != nil {
		t.Fatalf("GetContributionHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 snapshots in 7-day window, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Day.Before(history[i-1].Day) {
			t.Errorf("history not ascending by day: %v before %v", history[i].Day, history[i-1].Day)
		}
	}
	if history[0].DocumentsEdited != 2 {
		t.Errorf("boundary day should be included, got %+v", history[0])
	}
}

func TestGetContributionHistoryDefaultsToSevenDays(t *testing.T) {
	repo := NewMockContributionRepository()
	svc := NewContributionService(repo, nil)

	today := startOfDay(time.Now())
	repo.seedSnapshot(10, 1, today.AddDate(0, 0, -8), 1)
	repo.seedSnapshot(10, 1, today, 2)

	history, err := svc.GetContributionHistory(10, 1, 0)
	if err != nil {
		t.Fatalf("GetContributionHistory: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("days<=0 should default to 7, got %d snapshots", len(history))
	}
}
