package messaging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/social-api/internal/model"
	apperrors "github.com/careline/social-api/pkg/errors"
	"github.com/careline/social-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "messaging")

type fakeMessageRepo struct {
	messages []*model.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeMessageRepo) ListBetween(_ context.Context, a, b uuid.UUID) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range r.messages {
		if (m.FromProfileID == a && m.ToProfileID == b) || (m.FromProfileID == b && m.ToProfileID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

type pair struct{ from, to uuid.UUID }

type fakeNotificationRepo struct {
	markers map[pair]*model.MessageNotification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{markers: make(map[pair]*model.MessageNotification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *model.MessageNotification) error {
	key := pair{n.FromProfileID, n.ToProfileID}
	if _, ok := r.markers[key]; !ok {
		r.markers[key] = n
	}
	return nil
}

func (r *fakeNotificationRepo) Exists(_ context.Context, fromID, toID uuid.UUID) (bool, error) {
	_, ok := r.markers[pair{fromID, toID}]
	return ok, nil
}

func (r *fakeNotificationRepo) DeletePair(_ context.Context, fromID, toID uuid.UUID) error {
	delete(r.markers, pair{fromID, toID})
	return nil
}

func (r *fakeNotificationRepo) ListForRecipient(_ context.Context, toID uuid.UUID) ([]*model.MessageNotification, error) {
	var out []*model.MessageNotification
	for _, n := range r.markers {
		if n.ToProfileID == toID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*model.Profile, error) {
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) Update(_ context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) SearchByUsername(_ context.Context, _ string) ([]*model.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) ListByRole(_ context.Context, _ bool) ([]*model.Profile, error) {
	return nil, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) ListPending(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) MarkPublished(_ context.Context, _ uuid.UUID) error { return nil }
func (r *fakeOutboxRepo) MarkFailed(_ context.Context, _ uuid.UUID) error    { return nil }

func newTestService() (Service, *fakeNotificationRepo, *fakeOutboxRepo, uuid.UUID, uuid.UUID) {
	alice := &model.Profile{Base: model.Base{ID: uuid.New()}, Username: "alice"}
	bob := &model.Profile{Base: model.Base{ID: uuid.New()}, Username: "bob", IsDoctor: true}

	profileRepo := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{
		alice.ID: alice,
		bob.ID:   bob,
	}}
	notificationRepo := newFakeNotificationRepo()
	outboxRepo := &fakeOutboxRepo{}

	svc := NewService(&fakeMessageRepo{}, notificationRepo, profileRepo, outboxRepo, testMetrics)
	return svc, notificationRepo, outboxRepo, alice.ID, bob.ID
}

func TestSendCreatesSingleMarker(t *testing.T) {
	svc, notifications, _, alice, bob := newTestService()

	_, err := svc.Send(context.Background(), alice, bob, "hello")
	require.NoError(t, err)

	markers, err := notifications.ListForRecipient(context.Background(), bob)
	require.NoError(t, err)
	assert.Len(t, markers, 1)

	// A second unread message must not add a second marker.
	_, err = svc.Send(context.Background(), alice, bob, "are you there?")
	require.NoError(t, err)

	markers, err = notifications.ListForRecipient(context.Background(), bob)
	require.NoError(t, err)
	assert.Len(t, markers, 1)
}

func TestSendEmitsOutboxEvent(t *testing.T) {
	svc, _, outbox, alice, bob := newTestService()

	_, err := svc.Send(context.Background(), alice, bob, "hello")
	require.NoError(t, err)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventMessageSent, outbox.events[0].EventType)
}

func TestSendToUnknownProfileFails(t *testing.T) {
	svc, _, _, alice, _ := newTestService()

	_, err := svc.Send(context.Background(), alice, uuid.New(), "hello")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConversationClearsOnlyTheReadDirection(t *testing.T) {
	svc, notifications, _, alice, bob := newTestService()

	_, err := svc.Send(context.Background(), alice, bob, "hi bob")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), bob, alice, "hi alice")
	require.NoError(t, err)

	// Bob opens the thread with Alice: the alice→bob marker goes away,
	// the bob→alice marker must survive.
	conversation, err := svc.Conversation(context.Background(), bob, alice)
	require.NoError(t, err)
	assert.Len(t, conversation.Messages, 2)

	bobMarkers, _ := notifications.ListForRecipient(context.Background(), bob)
	assert.Empty(t, bobMarkers)

	aliceMarkers, _ := notifications.ListForRecipient(context.Background(), alice)
	assert.Len(t, aliceMarkers, 1)
}

func TestConversationIsChronologicalAndBidirectional(t *testing.T) {
	svc, _, _, alice, bob := newTestService()

	_, err := svc.Send(context.Background(), alice, bob, "first")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), bob, alice, "second")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), alice, bob, "third")
	require.NoError(t, err)

	conversation, err := svc.Conversation(context.Background(), alice, bob)
	require.NoError(t, err)
	require.Len(t, conversation.Messages, 3)
	assert.Equal(t, "first", conversation.Messages[0].Text)
	assert.Equal(t, "second", conversation.Messages[1].Text)
	assert.Equal(t, "third", conversation.Messages[2].Text)
}

func TestNotificationsListIsReadOnly(t *testing.T) {
	svc, notifications, _, alice, bob := newTestService()

	_, err := svc.Send(context.Background(), alice, bob, "hello")
	require.NoError(t, err)

	listed, err := svc.Notifications(context.Background(), bob)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// Listing must not clear anything.
	markers, _ := notifications.ListForRecipient(context.Background(), bob)
	assert.Len(t, markers, 1)
}
