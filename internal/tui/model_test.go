package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/recopanel/internal/domain"
	"github.com/kailas-cloud/recopanel/internal/domain/panel"
	"github.com/kailas-cloud/recopanel/internal/domain/query"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
	"github.com/kailas-cloud/recopanel/internal/usecase/recommend"
)

type fakeRecommender struct {
	mu    sync.Mutex
	items []recommendation.Item
	err   error
	calls []query.Payload
}

func (f *fakeRecommender) Recommend(_ context.Context, p query.Payload) ([]recommendation.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	return f.items, f.err
}

var testPage = Page{
	Title:       "SHL Assessment Recommender",
	Heading:     "Find the Perfect Assessment",
	Tagline:     "Enter a job description",
	Placeholder: "Paste a JD URL",
}

func newModel(t *testing.T, rec recommend.Recommender, opts ...Option) *Model {
	t.Helper()
	return New(context.Background(), recommend.New(rec, nil), testPage, opts...)
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// runFetch executes cmd and returns the resultMsg it produced, if any.
func runFetch(t *testing.T, cmd tea.Cmd) resultMsg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if res, ok := c().(resultMsg); ok {
				return res
			}
		}
		t.Fatal("batch carried no result")
	}
	res, ok := msg.(resultMsg)
	require.True(t, ok, "unexpected message %T", msg)
	return res
}

func TestSubmit_Success(t *testing.T) {
	rec := &fakeRecommender{items: []recommendation.Item{
		recommendation.New("Java Test", 0.87, "https://x/y"),
		recommendation.New("Python Test", 0.5, "https://x/z"),
	}}
	m := newModel(t, rec)

	typeText(m, "java developer")
	cmd := press(m, tea.KeyEnter)

	assert.Equal(t, panel.Loading, m.State().Condition())
	assert.Contains(t, m.View(), "Searching")

	m.Update(runFetch(t, cmd))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, query.Text, rec.calls[0].Kind())
	assert.Equal(t, "java developer", rec.calls[0].Query())

	assert.Equal(t, panel.Succeeded, m.State().Condition())
	view := m.View()
	assert.Contains(t, view, "2 results")
	assert.Contains(t, view, "Java Test")
	assert.Contains(t, view, "87%")
	assert.NotContains(t, view, panel.FailureMessage)
}

func TestSubmit_URLQuery(t *testing.T) {
	rec := &fakeRecommender{}
	m := newModel(t, rec)

	typeText(m, "https://jobs.example.com/42")
	m.Update(runFetch(t, press(m, tea.KeyEnter)))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, query.URL, rec.calls[0].Kind())
	assert.Equal(t, "https://jobs.example.com/42", rec.calls[0].URL())
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	rec := &fakeRecommender{}
	m := newModel(t, rec)

	typeText(m, "   ")
	cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.True(t, m.State().IsIdle())
	assert.Empty(t, rec.calls)
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	rec := &fakeRecommender{}
	m := newModel(t, rec)

	typeText(m, "java")
	first := press(m, tea.KeyEnter)
	require.NotNil(t, first)

	assert.Nil(t, press(m, tea.KeyEnter))
	assert.Equal(t, uint64(1), m.State().Seq())
}

func TestSubmit_FailureShowsBanner(t *testing.T) {
	rec := &fakeRecommender{err: domain.ErrCollaboratorUnavailable}
	m := newModel(t, rec)

	typeText(m, "java")
	m.Update(runFetch(t, press(m, tea.KeyEnter)))

	assert.Equal(t, panel.Failed, m.State().Condition())
	view := m.View()
	assert.Contains(t, view, panel.FailureMessage)
	assert.NotContains(t, view, "results")
}

func TestStaleResultDropped(t *testing.T) {
	rec := &fakeRecommender{}
	m := newModel(t, rec)

	typeText(m, "java")
	press(m, tea.KeyEnter)
	before := m.State()

	m.Update(resultMsg{Seq: before.Seq() + 5, Items: []recommendation.Item{recommendation.New("Old", 1, "")}})

	assert.Equal(t, panel.Loading, m.State().Condition())
	assert.Empty(t, m.State().Items())
}

func TestOpenSelectedRow(t *testing.T) {
	rec := &fakeRecommender{items: []recommendation.Item{
		recommendation.New("A", 0.9, "https://a"),
		recommendation.New("B", 0.8, "https://b"),
	}}
	var opened []string
	m := newModel(t, rec, WithOpener(func(url string) error {
		opened = append(opened, url)
		return nil
	}))

	typeText(m, "q")
	m.Update(runFetch(t, press(m, tea.KeyEnter)))

	press(m, tea.KeyTab)
	press(m, tea.KeyDown)
	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, []string{"https://b"}, opened)
	assert.Contains(t, m.View(), "Opened https://b")
}

func TestOpenFailureReported(t *testing.T) {
	rec := &fakeRecommender{items: []recommendation.Item{recommendation.New("A", 0.9, "https://a")}}
	m := newModel(t, rec, WithOpener(func(string) error { return errors.New("no browser") }))

	typeText(m, "q")
	m.Update(runFetch(t, press(m, tea.KeyEnter)))
	press(m, tea.KeyTab)
	m.Update(press(m, tea.KeyEnter)())

	assert.Contains(t, m.View(), "Could not open link")
}

func TestTabWithoutResultsKeepsInputFocus(t *testing.T) {
	m := newModel(t, &fakeRecommender{})

	press(m, tea.KeyTab)
	typeText(m, "abc")

	assert.Equal(t, "abc", m.State().Query())
}

func TestQuit(t *testing.T) {
	m := newModel(t, &fakeRecommender{})

	cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestOpenBrowser_NoLink(t *testing.T) {
	assert.ErrorIs(t, OpenBrowser("  "), errNoLink)
}

func TestOpenBrowser_RejectsNonHTTPLinks(t *testing.T) {
	for _, link := range []string{
		"file:///etc/passwd",
		"--new-window=x",
		`C:\Windows\System32\calc.exe`,
		"javascript:alert(1)",
		"/relative/path",
		"https://",
	} {
		assert.ErrorIs(t, OpenBrowser(link), errUnsafeLink, link)
	}
	assert.NoError(t, checkLink("https://www.shl.com/products/java-8"))
}

func TestOpenSelectedRow_UnsafeLinkNotOpened(t *testing.T) {
	for _, link := range []string{"file:///etc/passwd", "--new-window=x", `C:\Windows\System32\calc.exe`} {
		rec := &fakeRecommender{items: []recommendation.Item{recommendation.New("A", 0.9, link)}}
		called := false
		m := newModel(t, rec, WithOpener(func(string) error {
			called = true
			return nil
		}))

		typeText(m, "q")
		m.Update(runFetch(t, press(m, tea.KeyEnter)))
		press(m, tea.KeyTab)
		cmd := press(m, tea.KeyEnter)
		require.NotNil(t, cmd)
		m.Update(cmd())

		assert.False(t, called, "opener called for %q", link)
		assert.Contains(t, m.View(), "Could not open link")
	}
}

func TestColumnsFor(t *testing.T) {
	cols := columnsFor(100)
	require.Len(t, cols, 3)
	assert.Equal(t, scoreWidth, cols[1].Width)
	assert.Equal(t, 100-scoreWidth-8, cols[0].Width+cols[2].Width)

	narrow := columnsFor(10)
	assert.Equal(t, 20, narrow[0].Width+narrow[2].Width)
}
