package controllers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	controllers "github.com/phillip/campaign-hub-go/controllers"
	models "github.com/phillip/campaign-hub-go/models"
	routes "github.com/phillip/campaign-hub-go/routes"
	store "github.com/phillip/campaign-hub-go/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errDB = errors.New("server selection error: context deadline exceeded")

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, store.ErrInvalidID
	}
	return oid, nil
}

// fakeCampaigns mirrors the mongo store semantics in memory.
type fakeCampaigns struct {
	mu       sync.Mutex
	docs     map[primitive.ObjectID]models.Campaign
	err      error
	countErr error
}

func newFakeCampaigns() *fakeCampaigns {
	return &fakeCampaigns{docs: map[primitive.ObjectID]models.Campaign{}}
}

func (f *fakeCampaigns) List(ctx context.Context) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Campaign{}
	for _, c := range f.docs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCampaigns) Get(ctx context.Context, id string) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, ok := f.docs[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCampaigns) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Campaign{}, f.err
	}
	c.ID = primitive.NewObjectID()
	f.docs[c.ID] = c
	return c, nil
}

func (f *fakeCampaigns) Update(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, ok := f.docs[oid]
	if !ok {
		return nil, nil
	}
	c = patch.Apply(c)
	f.docs[oid] = c
	return &c, nil
}

func (f *fakeCampaigns) Delete(ctx context.Context, id string) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, ok := f.docs[oid]
	if !ok {
		return nil, nil
	}
	delete(f.docs, oid)
	return &c, nil
}

func (f *fakeCampaigns) CountByImage(ctx context.Context, imageURL string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, c := range f.docs {
		if c.Image == imageURL {
			n++
		}
	}
	return n, nil
}

func (f *fakeCampaigns) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

type fakeUsers struct {
	mu   sync.Mutex
	docs []models.User
	err  error
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := append([]models.User{}, f.docs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.User{}, f.err
	}
	u.ID = primitive.NewObjectID()
	f.docs = append(f.docs, u)
	return u, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	for i, u := range f.docs {
		if u.ID == oid {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeImages struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeImages) Upload(ctx context.Context, file io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, string(b))
	return "https://res.cloudinary.com/demo/image/upload/v1/campaigns/pic.jpg", nil
}

func (f *fakeImages) Owns(imageURL string) bool {
	return strings.HasPrefix(imageURL, "https://res.cloudinary.com/demo/")
}

func (f *fakeImages) Delete(ctx context.Context, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, imageURL)
	return f.deleteErr
}

// fixture wires the router to in-memory stores and a clock that advances one
// second per read so creation order is observable.
type fixture struct {
	campaigns *fakeCampaigns
	users     *fakeUsers
	env       *controllers.Env
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var clockMu sync.Mutex

	f := &fixture{campaigns: newFakeCampaigns(), users: &fakeUsers{}}
	f.env = &controllers.Env{
		Campaigns: f.campaigns,
		Users:     f.users,
		Log:       zap.NewNop(),
		DBTimeout: time.Second,
		Now: func() time.Time {
			clockMu.Lock()
			defer clockMu.Unlock()
			clock = clock.Add(time.Second)
			return clock
		},
	}
	f.router = routes.NewRouter(f.env)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
