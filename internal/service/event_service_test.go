package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/events"
	"github.com/spec-kit/campus-hub/internal/repository"
)

type fakeEventRepo struct {
	events map[string]*domain.Event
	rounds map[string]*domain.Round
	seq    int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[string]*domain.Event),
		rounds: make(map[string]*domain.Round),
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	f.seq++
	event.ID = fmt.Sprintf("event-%d", f.seq)
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	stored, ok := f.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (f *fakeEventRepo) List(_ context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		if filter.PublishedOnly && !e.Published {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventRepo) CreateRound(_ context.Context, round *domain.Round) error {
	f.seq++
	round.ID = fmt.Sprintf("round-%d", f.seq)
	round.CreatedAt = time.Now()
	round.UpdatedAt = round.CreatedAt
	stored := *round
	f.rounds[round.ID] = &stored
	return nil
}

func (f *fakeEventRepo) UpdateRound(_ context.Context, round *domain.Round) error {
	if _, ok := f.rounds[round.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *round
	f.rounds[round.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetRoundByID(_ context.Context, id string) (*domain.Round, error) {
	stored, ok := f.rounds[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (f *fakeEventRepo) ListRounds(_ context.Context, eventID string) ([]domain.Round, error) {
	out := make([]domain.Round, 0)
	for _, r := range f.rounds {
		if r.EventID == eventID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeScoreRepo struct {
	scores map[string]*domain.Score
	seq    int
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: make(map[string]*domain.Score)}
}

func scoreKey(roundID, participantID string) string {
	return roundID + "|" + participantID
}

func (f *fakeScoreRepo) Upsert(_ context.Context, score *domain.Score) error {
	key := scoreKey(score.RoundID, score.ParticipantID)
	if existing, ok := f.scores[key]; ok {
		existing.Points = score.Points
		existing.Remarks = score.Remarks
		existing.ScoredBy = score.ScoredBy
		existing.UpdatedAt = time.Now()
		*score = *existing
		return nil
	}
	f.seq++
	score.ID = fmt.Sprintf("score-%d", f.seq)
	score.CreatedAt = time.Now()
	score.UpdatedAt = score.CreatedAt
	stored := *score
	f.scores[key] = &stored
	return nil
}

func (f *fakeScoreRepo) GetByRoundAndParticipant(_ context.Context, roundID, participantID string) (*domain.Score, error) {
	stored, ok := f.scores[scoreKey(roundID, participantID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (f *fakeScoreRepo) ListByRound(_ context.Context, roundID string) ([]domain.Score, error) {
	out := make([]domain.Score, 0)
	for _, s := range f.scores {
		if s.RoundID == roundID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) Leaderboard(_ context.Context, _ string) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func newEventFixture(t *testing.T) (*EventService, *fakeEventRepo, *fakeScoreRepo, *fakeParticipantRepo, events.Dispatcher) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	scoreRepo := newFakeScoreRepo()
	participants := newFakeParticipantRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewEventService(EventDependencies{
		EventRepo:       eventRepo,
		ScoreRepo:       scoreRepo,
		ParticipantRepo: participants,
		Dispatcher:      dispatcher,
	})
	return svc, eventRepo, scoreRepo, participants, dispatcher
}

func TestPublishEventDispatchesOnce(t *testing.T) {
	svc, _, _, _, dispatcher := newEventFixture(t)

	var published int
	dispatcher.Subscribe(events.ActivityEventPublished, func(_ context.Context, _ events.Activity) error {
		published++
		return nil
	})

	event, err := svc.CreateEvent(context.Background(), "member-1", EventCreateInput{Title: "TechFest"})
	require.NoError(t, err)
	assert.False(t, event.Published)

	event, err = svc.PublishEvent(context.Background(), event.ID, "member-1")
	require.NoError(t, err)
	assert.True(t, event.Published)

	// Re-publishing is a no-op, not a second announcement.
	_, err = svc.PublishEvent(context.Background(), event.ID, "member-1")
	require.NoError(t, err)
	assert.Equal(t, 1, published)
}

func TestUnpublishedEventsHiddenFromParticipants(t *testing.T) {
	svc, _, _, _, _ := newEventFixture(t)

	event, err := svc.CreateEvent(context.Background(), "member-1", EventCreateInput{Title: "TechFest"})
	require.NoError(t, err)

	_, err = svc.GetEvent(context.Background(), event.ID, false)
	require.Error(t, err)

	got, err := svc.GetEvent(context.Background(), event.ID, true)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	// Retraction hides the event from participants again.
	_, err = svc.PublishEvent(context.Background(), event.ID, "member-1")
	require.NoError(t, err)
	_, err = svc.GetEvent(context.Background(), event.ID, false)
	require.NoError(t, err)

	_, err = svc.UnpublishEvent(context.Background(), event.ID)
	require.NoError(t, err)
	_, err = svc.GetEvent(context.Background(), event.ID, false)
	require.Error(t, err)
}

func TestSubmitScoreValidatesRange(t *testing.T) {
	svc, _, _, participants, _ := newEventFixture(t)
	p := seedParticipant(t, participants, "neo@example.com")

	event, err := svc.CreateEvent(context.Background(), "member-1", EventCreateInput{Title: "TechFest"})
	require.NoError(t, err)
	round, err := svc.CreateRound(context.Background(), event.ID, RoundInput{Name: "Prelims", MaxScore: 100})
	require.NoError(t, err)

	_, err = svc.SubmitScore(context.Background(), round.ID, "member-1", ScoreInput{ParticipantID: p.ID, Points: 101})
	require.Error(t, err)
	_, err = svc.SubmitScore(context.Background(), round.ID, "member-1", ScoreInput{ParticipantID: p.ID, Points: -1})
	require.Error(t, err)

	score, err := svc.SubmitScore(context.Background(), round.ID, "member-1", ScoreInput{ParticipantID: p.ID, Points: 80})
	require.NoError(t, err)
	assert.Equal(t, 80, score.Points)

	// Resubmission overwrites; last writer wins.
	score, err = svc.SubmitScore(context.Background(), round.ID, "member-1", ScoreInput{ParticipantID: p.ID, Points: 95})
	require.NoError(t, err)
	assert.Equal(t, 95, score.Points)

	scores, err := svc.ListRoundScores(context.Background(), round.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 95, scores[0].Points)
}

func TestSubmitScoreRejectsUnknownParticipant(t *testing.T) {
	svc, _, _, _, _ := newEventFixture(t)

	event, err := svc.CreateEvent(context.Background(), "member-1", EventCreateInput{Title: "TechFest"})
	require.NoError(t, err)
	round, err := svc.CreateRound(context.Background(), event.ID, RoundInput{Name: "Prelims", MaxScore: 100})
	require.NoError(t, err)

	_, err = svc.SubmitScore(context.Background(), round.ID, "member-1", ScoreInput{ParticipantID: "ghost", Points: 10})
	require.Error(t, err)
}
