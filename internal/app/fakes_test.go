package app_test

import (
	"context"
	"errors"
	"sync"

	"gastropath/internal/domain"
	"gastropath/internal/payload"
)

// ---- fakes ----

type fakePlaces struct {
	byID       map[string]map[string]any
	candidates []string
	details    map[string]any
	err        error

	mu    sync.Mutex
	calls []string
}

func (f *fakePlaces) record(c string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakePlaces) FindByIdentifier(ctx context.Context, id string, fields []string) (payload.Node, error) {
	f.record("id:" + id)
	if f.err != nil {
		return payload.Node{}, f.err
	}
	return payload.Wrap(toAny(f.byID[id])), nil
}

func (f *fakePlaces) FindCandidates(ctx context.Context, text string) ([]string, error) {
	f.record("find:" + text)
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func (f *fakePlaces) FetchDetails(ctx context.Context, id string, fields []string) (payload.Node, error) {
	f.record("details:" + id)
	if f.err != nil {
		return payload.Node{}, f.err
	}
	return payload.Wrap(toAny(f.details)), nil
}

func (f *fakePlaces) PhotoURL(ref string) string { return "https://photos.test/" + ref }

// toAny keeps a nil map as an absent node.
func toAny(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

type fakeImages struct {
	url string
	err error
	got []string
}

func (f *fakeImages) Upload(ctx context.Context, src string) (string, error) {
	f.got = append(f.got, src)
	return f.url, f.err
}

type fakeDirectory struct {
	matches []domain.Business
	err     error
}

func (f *fakeDirectory) Search(ctx context.Context, term, location string, limit int) ([]domain.Business, error) {
	return f.matches, f.err
}

type fakeStore struct {
	existing map[string][]string
	queryErr error
	create   error

	created []domain.EnrichedRecord
	covers  []*string
}

func (f *fakeStore) Query(ctx context.Context, name string) ([]string, error) {
	return f.existing[name], f.queryErr
}

func (f *fakeStore) Create(ctx context.Context, rec domain.EnrichedRecord, cover *string) error {
	if f.create != nil {
		return f.create
	}
	f.created = append(f.created, rec)
	f.covers = append(f.covers, cover)
	return nil
}

type fakeExpander struct {
	to  string
	err error
	got []string
}

func (f *fakeExpander) Expand(ctx context.Context, short string) (string, error) {
	f.got = append(f.got, short)
	return f.to, f.err
}

var errBoom = errors.New("boom")

func kindOf(err error) domain.ErrorKind { return domain.KindOf(err) }
