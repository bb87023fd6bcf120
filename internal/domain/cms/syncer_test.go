package cms

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/webflow"
)

type fakeRemote struct {
	collectionID string
	findErr      error
	findCalls    int

	existing []string
	listErr  error

	createFails map[string]error
	created     []map[string]any

	publishErr error
	published  []webflow.PublishRequest
}

func (f *fakeRemote) FindCollectionID(context.Context, string, string) (string, error) {
	f.findCalls++
	if f.findErr != nil {
		return "", f.findErr
	}
	return f.collectionID, nil
}

func (f *fakeRemote) ListItems(context.Context, string) ([]webflow.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := make([]webflow.Item, 0, len(f.existing))
	for _, ref := range f.existing {
		items = append(items, webflow.Item{FieldData: map[string]any{FieldReferenceID: ref}})
	}
	return items, nil
}

func (f *fakeRemote) CreateItem(_ context.Context, _ string, fields map[string]any) (webflow.Item, error) {
	ref, _ := fields[FieldReferenceID].(string)
	if err := f.createFails[ref]; err != nil {
		return webflow.Item{}, err
	}
	f.created = append(f.created, fields)
	return webflow.Item{ID: "item-" + ref, FieldData: fields}, nil
}

func (f *fakeRemote) Publish(_ context.Context, _ string, req webflow.PublishRequest) error {
	f.published = append(f.published, req)
	return f.publishErr
}

func (f *fakeRemote) createdRefs() []string {
	refs := make([]string, 0, len(f.created))
	for _, fields := range f.created {
		refs = append(refs, fields[FieldReferenceID].(string))
	}
	return refs
}

type fakeStore struct {
	jobs []domain.Job
	err  error
}

func (s fakeStore) ListJobs(context.Context) ([]domain.Job, error) {
	return s.jobs, s.err
}

type fakeLocker struct {
	held     bool
	unlocked int
}

func (l *fakeLocker) TryLock() (bool, error) { return !l.held, nil }
func (l *fakeLocker) Unlock() error          { l.unlocked++; return nil }

func jobs(refs ...string) []domain.Job {
	out := make([]domain.Job, 0, len(refs))
	for _, ref := range refs {
		out = append(out, domain.Job{ID: uuid.New(), OfferID: ref, Title: "Job " + ref})
	}
	return out
}

func newSyncer(t *testing.T, remote *fakeRemote, store Store, settings Settings, opts ...SyncerOption) *Syncer {
	t.Helper()
	return newSyncerWithLogger(t, remote, store, settings, logging.Nop(), opts...)
}

func newSyncerWithLogger(t *testing.T, remote *fakeRemote, store Store, settings Settings, logger *logging.Logger, opts ...SyncerOption) *Syncer {
	t.Helper()
	if settings.SiteID == "" {
		settings.SiteID = "site-1"
	}
	resolver, err := NewCollectionResolver(remote, settings.SiteID, "", "c-jobs")
	require.NoError(t, err)
	s, err := NewSyncer(remote, store, resolver, settings, logger, opts...)
	require.NoError(t, err)
	return s
}

func TestSyncAllCreatesOnlyMissingJobs(t *testing.T) {
	remote := &fakeRemote{existing: []string{"A", "B"}}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A", "C")}, Settings{})

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"C"}, remote.createdRefs())
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 2, res.Existing)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, domain.ItemSkippedDuplicate, res.Outcomes[0].State)
	assert.Equal(t, domain.ItemCreated, res.Outcomes[1].State)
	assert.Equal(t, "item-C", res.Outcomes[1].RemoteID)
}

func TestSyncAllFailOpenAttemptsEveryJob(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	remote := &fakeRemote{existing: []string{"A"}, listErr: errors.New("502 bad gateway")}
	s := newSyncerWithLogger(t, remote, fakeStore{jobs: jobs("A", "B", "C")}, Settings{}, logging.FromZap(zap.New(core)))

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, remote.createdRefs())
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.Existing)
	assert.Contains(t, res.ExistingError, "502")
	assert.Equal(t, 1, logs.FilterMessage("failed to list existing items, treating collection as empty").Len())
	assert.Len(t, remote.published, 1)
}

func TestSyncAllFailClosedAborts(t *testing.T) {
	remote := &fakeRemote{listErr: errors.New("timeout")}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A")}, Settings{FailClosed: true})

	_, err := s.SyncAll(context.Background())
	require.Error(t, err)
	assert.Empty(t, remote.created)
	assert.Empty(t, remote.published)
}

func TestSyncAllIsolatesItemFailures(t *testing.T) {
	remote := &fakeRemote{createFails: map[string]error{"X": errors.New("validation error")}}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("X", "Y")}, Settings{})

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Y"}, remote.createdRefs())
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, domain.ItemFailed, res.Outcomes[0].State)
	assert.Contains(t, res.Outcomes[0].Error, "validation error")
	for _, o := range res.Outcomes {
		assert.True(t, o.State.Terminal())
	}
}

func TestSyncAllEndToEnd(t *testing.T) {
	remote := &fakeRemote{
		existing:    []string{"J2"},
		createFails: map[string]error{"J3": errors.New("rate limited")},
	}
	settings := Settings{DomainIDs: []string{"dom-1"}}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("J1", "J2", "J3")}, settings)

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	// two create attempts (one failing), one skip, one publish
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, remote.published, 1)
	assert.Equal(t, []string{"c-jobs"}, remote.published[0].Collections)
	assert.Equal(t, []string{"dom-1"}, remote.published[0].Domains)
	assert.True(t, res.Published)
}

func TestSyncAllPublishesWhenNothingNew(t *testing.T) {
	remote := &fakeRemote{existing: []string{"A"}}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A")}, Settings{})

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Len(t, remote.published, 1)
}

func TestSyncAllPublishFailureIsRecordedNotReturned(t *testing.T) {
	remote := &fakeRemote{publishErr: errors.New("forbidden")}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A")}, Settings{})

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Published)
	assert.Contains(t, res.PublishError, "forbidden")
	assert.Equal(t, 1, res.Created)
}

func TestSyncAllSkipsDuplicatesWithinBatch(t *testing.T) {
	remote := &fakeRemote{}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A", "A")}, Settings{})

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, remote.createdRefs())
	assert.Equal(t, 1, res.Skipped)
}

func TestSyncAllMissingReferenceFails(t *testing.T) {
	remote := &fakeRemote{}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("", "B")}, Settings{})

	res, err := s.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, remote.createdRefs())
	assert.Equal(t, 1, res.Failed)
}

func TestSyncAllCollectionNotFound(t *testing.T) {
	remote := &fakeRemote{findErr: webflow.ErrCollectionNotFound}
	resolver, err := NewCollectionResolver(remote, "site-1", "", "")
	require.NoError(t, err)
	s, err := NewSyncer(remote, fakeStore{jobs: jobs("A")}, resolver, Settings{SiteID: "site-1"}, nil)
	require.NoError(t, err)

	_, err = s.SyncAll(context.Background())
	require.ErrorIs(t, err, webflow.ErrCollectionNotFound)
	assert.Empty(t, remote.created)
	assert.Empty(t, remote.published)
}

func TestSyncAllResolvesCollectionOnce(t *testing.T) {
	remote := &fakeRemote{collectionID: "c-found"}
	resolver, err := NewCollectionResolver(remote, "site-1", "", "")
	require.NoError(t, err)
	s, err := NewSyncer(remote, fakeStore{jobs: jobs("A")}, resolver, Settings{SiteID: "site-1"}, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		res, err := s.SyncAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "c-found", res.CollectionID)
	}
	assert.Equal(t, 1, remote.findCalls)
}

func TestSyncAllStoreError(t *testing.T) {
	remote := &fakeRemote{}
	s := newSyncer(t, remote, fakeStore{err: errors.New("store down")}, Settings{})

	_, err := s.SyncAll(context.Background())
	require.Error(t, err)
	assert.Empty(t, remote.published)
}

func TestSyncAllRespectsRunLock(t *testing.T) {
	remote := &fakeRemote{}
	locker := &fakeLocker{held: true}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A")}, Settings{}, WithLocker(locker))

	_, err := s.SyncAll(context.Background())
	require.ErrorIs(t, err, ErrSyncInProgress)
	assert.Empty(t, remote.created)

	locker.held = false
	_, err = s.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, locker.unlocked)
}

func TestSyncAllStopsOnCancelledContext(t *testing.T) {
	remote := &fakeRemote{}
	s := newSyncer(t, remote, fakeStore{jobs: jobs("A", "B")}, Settings{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SyncAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, remote.created)
}

func TestNewSyncerValidates(t *testing.T) {
	remote := &fakeRemote{}
	resolver, err := NewCollectionResolver(remote, "site-1", "", "c")
	require.NoError(t, err)

	_, err = NewSyncer(nil, fakeStore{}, resolver, Settings{SiteID: "s"}, nil)
	require.Error(t, err)
	_, err = NewSyncer(remote, nil, resolver, Settings{SiteID: "s"}, nil)
	require.Error(t, err)
	_, err = NewSyncer(remote, fakeStore{}, nil, Settings{SiteID: "s"}, nil)
	require.Error(t, err)
	_, err = NewSyncer(remote, fakeStore{}, resolver, Settings{}, nil)
	require.Error(t, err)
}
