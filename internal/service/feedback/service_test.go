package feedback

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

var testMetrics = metrics.NewMetrics("test", "feedback")

type fakeFeedbackRepo struct {
	feedbacks []*model.Feedback
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *model.Feedback) error {
	r.feedbacks = append(r.feedbacks, f)
	return nil
}

func (r *fakeFeedbackRepo) ListByEstimated(_ context.Context, estimatedID uuid.UUID) ([]*model.Feedback, error) {
	var out []*model.Feedback
	for _, f := range r.feedbacks {
		if f.EstimatedID == estimatedID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]*model.Feedback, error) {
	var out []*model.Feedback
	for _, f := range r.feedbacks {
		if f.AuthorID == authorID {
			out = append(out, f)
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

type fixture struct {
	svc     Service
	outbox  *fakeOutboxRepo
	doctor  *model.Profile
	patient *model.Profile
}

func newFixture() *fixture {
	doctor := &model.Profile{Base: model.Base{ID: uuid.New()}, Username: "drsmith", IsDoctor: true, DoctorType: "cardiologist"}
	patient := &model.Profile{Base: model.Base{ID: uuid.New()}, Username: "alice"}

	profileRepo := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{
		doctor.ID:  doctor,
		patient.ID: patient,
	}}
	outboxRepo := &fakeOutboxRepo{}

	return &fixture{
		svc:     NewService(&fakeFeedbackRepo{}, profileRepo, outboxRepo, testMetrics),
		outbox:  outboxRepo,
		doctor:  doctor,
		patient: patient,
	}
}

func TestSubmit(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), f.patient.ID, f.doctor.ID, &model.CreateFeedbackRequest{
		Text:   "very attentive",
		Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, f.patient.ID, created.AuthorID)
	assert.Equal(t, f.doctor.ID, created.EstimatedID)
	assert.Equal(t, "very attentive", created.Text)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, model.EventFeedbackCreated, f.outbox.events[0].EventType)
}

func TestSubmitUnknownTargetFails(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), f.patient.ID, uuid.New(), &model.CreateFeedbackRequest{Text: "hi"})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, f.outbox.events)
}

// A doctor page lists feedback about the doctor; a patient page lists
// feedback the patient has written.
func TestListForProfileVisibility(t *testing.T) {
	f := newFixture()

	otherDoctor := &model.Profile{Base: model.Base{ID: uuid.New()}, Username: "drjones", IsDoctor: true}
	require.NoError(t, f.svc.(*service).profileRepo.Create(context.Background(), otherDoctor))

	_, err := f.svc.Submit(context.Background(), f.patient.ID, f.doctor.ID, &model.CreateFeedbackRequest{Text: "about smith"})
	require.NoError(t, err)
	_, err = f.svc.Submit(context.Background(), f.patient.ID, otherDoctor.ID, &model.CreateFeedbackRequest{Text: "about jones"})
	require.NoError(t, err)

	aboutDoctor, err := f.svc.ListForProfile(context.Background(), f.doctor)
	require.NoError(t, err)
	require.Len(t, aboutDoctor, 1)
	assert.Equal(t, "about smith", aboutDoctor[0].Text)

	byPatient, err := f.svc.ListForProfile(context.Background(), f.patient)
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)
}
