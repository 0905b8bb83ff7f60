package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/chatdigest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

const testPassword = "pondelok"

type fixture struct {
	server  *Server
	groupID string
}

func newFixture(t *testing.T, passwordHash string, opts Options) *fixture {
	t.Helper()

	summaries := memory.NewSummaryStore()
	summaries.Put("summary_llcchat.md", "## **Wyoming LLC**\nWe formed a wyoming llc and got an EIN from the IRS.")
	artifacts := memory.NewArtifactStore()
	extractor := services.NewExtractor(domain.DefaultCatalog(), services.DefaultExtractOptions())
	dates := services.NewDateFormatter(time.UTC)

	gen := services.NewGenerator(
		memory.NewMessageStore(domain.GroupStats{
			ID: "g1", Name: "LLC Chat", MessageCount: 12,
			FirstTimestamp: 1700000000000, LastTimestamp: 1700500000000,
		}),
		summaries, artifacts, nil, extractor, dates,
	)
	_, err := gen.Run(context.Background())
	require.NoError(t, err)

	srv, err := NewServer(&Ports{
		Groups:     services.NewGroupService(artifacts, extractor),
		Search:     services.NewSearchService(artifacts, nil),
		Topics:     services.NewTopicService(artifacts, extractor, dates),
		Highlights: services.NewHighlightService(memory.NewHighlightStore()),
		Auth:       services.NewAuthService(passwordHash, "test-secret", time.Hour),
	}, opts)
	require.NoError(t, err)

	return &fixture{server: srv, groupID: services.SafeID("g1")}
}

func (f *fixture) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := f.do(http.MethodPost, "/api/auth", `{"password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func gatedFixture(t *testing.T) *fixture {
	return newFixture(t, services.HashPassword(testPassword), Options{})
}

func TestNewServer_ValidatesPorts(t *testing.T) {
	_, err := NewServer(nil, Options{})
	assert.Error(t, err)

	_, err = NewServer(&Ports{}, Options{})
	assert.Error(t, err)
}

func TestHealth_Ungated(t *testing.T) {
	f := gatedFixture(t)
	rec := f.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestGate_RejectsWithoutSession(t *testing.T) {
	f := gatedFixture(t)

	for _, target := range []string{"/api/groups", "/api/search?q=llc", "/api/topics", "/api/highlights"} {
		rec := f.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestGate_RejectsForgedSession(t *testing.T) {
	f := gatedFixture(t)
	rec := f.do(http.MethodGet, "/api/groups", "", &http.Cookie{Name: SessionCookie, Value: "1:abc:deadbeef"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	f := gatedFixture(t)
	c := f.login(t)

	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(time.Hour/time.Second), c.MaxAge)
	assert.Len(t, strings.Split(c.Value, ":"), 3)

	rec := f.do(http.MethodGet, "/api/groups", "", c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LLC Chat")
}

func TestLogin_MissingPassword(t *testing.T) {
	f := gatedFixture(t)

	rec := f.do(http.MethodPost, "/api/auth", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password required")

	rec = f.do(http.MethodPost, "/api/auth", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_WrongPasswordIsDelayed(t *testing.T) {
	f := newFixture(t, services.HashPassword(testPassword), Options{FailDelay: 30 * time.Millisecond})

	start := time.Now()
	rec := f.do(http.MethodPost, "/api/auth", `{"password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password")
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_RateLimited(t *testing.T) {
	f := newFixture(t, services.HashPassword(testPassword), Options{
		LoginRate:  rate.Every(time.Hour),
		LoginBurst: 1,
	})

	first := f.do(http.MethodPost, "/api/auth", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := f.do(http.MethodPost, "/api/auth", `{"password":"`+testPassword+`"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestAuthStatus(t *testing.T) {
	f := gatedFixture(t)

	var status map[string]bool
	rec := f.do(http.MethodGet, "/api/auth", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status["authenticated"])

	c := f.login(t)
	rec = f.do(http.MethodGet, "/api/auth", "", c)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status["authenticated"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	f := gatedFixture(t)
	rec := f.do(http.MethodDelete, "/api/auth", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGateDisabled_AllowsEverything(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodGet, "/api/groups", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]bool
	rec = f.do(http.MethodGet, "/api/auth", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status["authenticated"])
}

func TestGroupDetail(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodGet, "/api/groups/"+f.groupID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Group    domain.Group         `json:"group"`
		Summary  string               `json:"summary"`
		Headings []domain.Heading     `json:"headings"`
		Topics   []domain.TopicResult `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "LLC Chat", detail.Group.Name)
	assert.Contains(t, detail.Summary, "wyoming llc")
	require.Len(t, detail.Headings, 1)
	assert.Equal(t, "wyoming-llc", detail.Headings[0].ID)
	require.NotEmpty(t, detail.Topics)
	assert.Equal(t, domain.TopicID("us-llc-taxes"), detail.Topics[0].Topic.ID)
}

func TestGroupDetail_Unknown(t *testing.T) {
	f := newFixture(t, "", Options{})
	rec := f.do(http.MethodGet, "/api/groups/ffff", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodGet, "/api/search?q=wyoming+ein", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Wyoming LLC", results[0].Title)
	assert.Equal(t, 12, results[0].Score)
	assert.Equal(t, []string{"wyoming", "ein"}, results[0].MatchedTerms)
}

func TestSearch_EmptyQueryAndFilters(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodGet, "/api/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/search?q=wyoming&group=other", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/search?q=wyoming&limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTopics(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodGet, "/api/topics?sort=recent", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var topics []domain.AggregatedTopic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topics))
	require.NotEmpty(t, topics)
	assert.Equal(t, domain.TopicID("us-llc-taxes"), topics[0].Topic.ID)

	rec = f.do(http.MethodGet, "/api/topics?sort=sideways", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHighlights_Lifecycle(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodPost, "/api/highlights",
		`{"groupId":"`+f.groupID+`","groupName":"LLC Chat","text":"We formed a wyoming llc"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var h domain.Highlight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.NotEmpty(t, h.ID)

	rec = f.do(http.MethodGet, "/api/highlights?groupId="+f.groupID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Highlight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, h.ID, list[0].ID)

	rec = f.do(http.MethodDelete, "/api/highlights/"+h.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodDelete, "/api/highlights/"+h.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHighlights_Invalid(t *testing.T) {
	f := newFixture(t, "", Options{})

	rec := f.do(http.MethodPost, "/api/highlights", `{"groupId":"`+f.groupID+`","text":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/highlights", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHighlights_Unavailable(t *testing.T) {
	f := newFixture(t, "", Options{})
	f.server.ports.Highlights = nil

	rec := f.do(http.MethodGet, "/api/highlights", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_StartStop(t *testing.T) {
	f := newFixture(t, "", Options{})
	require.NoError(t, f.server.Start("127.0.0.1:0"))
	defer f.server.Stop()

	resp, err := http.Get(f.server.URL() + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.server.Stop()
	f.server.Stop()
}
