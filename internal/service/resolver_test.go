package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcard/internal/logger"
	"idcard/internal/model"
)

// blockingGetter holds every fetch until release is closed.
type blockingGetter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newBlockingGetter() *blockingGetter {
	return &blockingGetter{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *blockingGetter) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	g.calls.Add(1)
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &model.Template{ID: uuid.MustParse(id), Name: "Staff"}, nil
}

func TestResolver_FullSurvivesCancelledPeer(t *testing.T) {
	getter := newBlockingGetter()
	r := &Resolver{templates: getter, log: logger.Discard()}
	tid := uuid.New()

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	recA := &model.Record{ID: uuid.New(), TemplateID: tid}
	errA := make(chan error, 1)
	go func() { errA <- r.Full(ctxA, recA) }()
	<-getter.started

	recB := &model.Record{ID: uuid.New(), TemplateID: tid}
	errB := make(chan error, 1)
	go func() { errB <- r.Full(context.Background(), recB) }()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}
	assert.Nil(t, recA.Template)

	close(getter.release)
	select {
	case err := <-errB:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiting caller did not return")
	}
	require.NotNil(t, recB.Template)
	assert.Equal(t, "Staff", recB.Template.Name)
	assert.Equal(t, tid, recB.Template.ID)
}

func TestResolver_FullSharesOneFetch(t *testing.T) {
	getter := newBlockingGetter()
	r := &Resolver{templates: getter, log: logger.Discard()}
	tid := uuid.New()

	var wg sync.WaitGroup
	records := make([]*model.Record, 5)
	errs := make([]error, len(records))
	for i := range records {
		records[i] = &model.Record{ID: uuid.New(), TemplateID: tid}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.Full(context.Background(), records[i])
		}(i)
	}
	<-getter.started
	time.Sleep(20 * time.Millisecond)
	close(getter.release)
	wg.Wait()

	for i, rec := range records {
		require.NoError(t, errs[i])
		require.NotNil(t, rec.Template)
		assert.Equal(t, "Staff", rec.Template.Name)
	}
	assert.GreaterOrEqual(t, int(getter.calls.Load()), 1)
}
