package ui

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/movie-tui/config"
	"github.com/sebastiantruijens/movie-tui/rottentomatoes"
	"github.com/sebastiantruijens/movie-tui/search"
	"github.com/sebastiantruijens/movie-tui/tmdb"
)

type fakeSearcher struct {
	mu    sync.Mutex
	calls []search.Key
	pages map[search.Key]*tmdb.ResultPage
	err   error
}

func (f *fakeSearcher) SearchMovies(_ context.Context, query string, page int) (*tmdb.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := search.Key{Query: query, Page: page}
	f.calls = append(f.calls, k)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pages[k]; ok {
		return p, nil
	}
	return &tmdb.ResultPage{Page: page, Results: []tmdb.Movie{}}, nil
}

func (f *fakeSearcher) Calls() []search.Key {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]search.Key(nil), f.calls...)
}

type fakeScores struct {
	mu     sync.Mutex
	titles []string
}

func (f *fakeScores) Scores(_ context.Context, title, year string) (*rottentomatoes.Scores, error) {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.mu.Unlock()
	return &rottentomatoes.Scores{Title: title, Year: year, CriticScore: "90", AudienceScore: "80", Consensus: title + " consensus"}, nil
}

// batmanPages returns total pages of results for "batman", one movie each.
func batmanPages(total int) map[search.Key]*tmdb.ResultPage {
	pages := make(map[search.Key]*tmdb.ResultPage, total)
	for p := 1; p <= total; p++ {
		pages[search.Key{Query: "batman", Page: p}] = &tmdb.ResultPage{
			Page:       p,
			TotalPages: total,
			Results:    []tmdb.Movie{{ID: p * 100, Title: "Batman", ReleaseDate: "1989-06-23"}},
		}
	}
	return pages
}

func newTestModel(t *testing.T, searcher tmdb.Searcher, opts ...func(*Options)) Model {
	t.Helper()
	o := Options{
		Searcher: searcher,
		Config:   config.UIConfig{ToastDuration: time.Millisecond, PageRange: 5, PageMargin: 1},
		Logger:   zerolog.Nop(),
		OpenURL:  func(string) error { return nil },
	}
	for _, opt := range opts {
		opt(&o)
	}
	m, _ := update(t, NewModel(o), tea.WindowSizeMsg{Width: 120, Height: 60})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// collect runs cmd and returns the messages it yields, minus spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// settle feeds everything cmd produces back into the model until idle.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var next tea.Cmd
		m, next = update(t, m, msg)
		queue = append(queue, collect(next)...)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func submitQuery(t *testing.T, m Model, query string) (Model, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(query)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func searchResults(msgs []tea.Msg) []searchResultsMsg {
	var out []searchResultsMsg
	for _, msg := range msgs {
		if r, ok := msg.(searchResultsMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestNewModel_Idle(t *testing.T) {
	searcher := &fakeSearcher{}
	m := newTestModel(t, searcher)

	assert.Equal(t, search.StatusIdle, m.search.Status())
	assert.Equal(t, focusInput, m.focus)
	assert.Empty(t, searcher.Calls())
	assert.Contains(t, m.View(), "Movie Search")
}

func TestSubmit_BatmanScenario(t *testing.T) {
	searcher := &fakeSearcher{pages: batmanPages(5)}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	assert.True(t, m.search.Layout().ShowLoader)
	assert.Contains(t, m.View(), `Searching for "batman"`)

	m = settle(t, m, cmd)

	layout := m.search.Layout()
	assert.Equal(t, []search.Key{{Query: "batman", Page: 1}}, searcher.Calls())
	assert.True(t, layout.ShowGrid)
	assert.Len(t, layout.Movies, 1)
	assert.True(t, layout.ShowPagination)
	assert.Equal(t, 5, layout.TotalPages)
	assert.Equal(t, 0, layout.ActivePage)
	assert.False(t, layout.ShowLoader)
	assert.Zero(t, m.toast.seq)
}

func TestSubmit_BlankQueryShowsToast(t *testing.T) {
	searcher := &fakeSearcher{}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "   ")

	assert.Empty(t, searcher.Calls())
	assert.Equal(t, search.StatusIdle, m.search.Status())
	assert.True(t, m.toast.visible)
	assert.Equal(t, emptyQueryToast, m.toast.text)
	assert.Contains(t, m.View(), emptyQueryToast)

	m = settle(t, m, cmd)
	assert.False(t, m.toast.visible, "toast expires")
}

func TestSubmit_NoResultsNotifiesOnce(t *testing.T) {
	searcher := &fakeSearcher{}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "zzzznotfound")
	results := searchResults(collect(cmd))
	require.Len(t, results, 1)

	m, toastCmd := update(t, m, results[0])
	require.NotNil(t, toastCmd)
	assert.Equal(t, 1, m.toast.seq)
	assert.Equal(t, noResultsToast, m.toast.text)

	// A duplicate delivery of the same response must not notify again.
	m, _ = update(t, m, results[0])
	assert.Equal(t, 1, m.toast.seq)

	layout := m.search.Layout()
	assert.False(t, layout.ShowGrid)
	assert.Empty(t, layout.Movies)
	assert.False(t, layout.ShowPagination)
}

func TestSubmit_ResetsPageToFirst(t *testing.T) {
	searcher := &fakeSearcher{pages: batmanPages(5)}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	m = settle(t, m, cmd)
	m, cmd = update(t, m, pageSelectedMsg{selected: 2})
	m = settle(t, m, cmd)
	require.Equal(t, 3, m.search.Page())

	m, cmd = submitQuery(t, m, "batman")
	assert.Equal(t, 1, m.search.Page())
	m = settle(t, m, cmd)
	assert.Equal(t, 0, m.search.Layout().ActivePage)
}

func TestPageChange_KeepsResultsUntilLoaded(t *testing.T) {
	searcher := &fakeSearcher{pages: batmanPages(5)}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	m = settle(t, m, cmd)
	m, cmd = update(t, m, pageSelectedMsg{selected: 1})
	m = settle(t, m, cmd)
	require.Equal(t, 2, m.search.Page())

	m, cmd = update(t, m, pageSelectedMsg{selected: 3})
	require.NotNil(t, cmd)

	layout := m.search.Layout()
	assert.True(t, layout.Revalidating)
	assert.True(t, layout.ShowGrid)
	assert.Equal(t, 200, layout.Movies[0].ID, "page 2 stays visible")
	assert.Equal(t, 3, layout.ActivePage)

	m = settle(t, m, cmd)

	layout = m.search.Layout()
	assert.False(t, layout.Revalidating)
	assert.Equal(t, 400, layout.Movies[0].ID)
	assert.Equal(t, 3, layout.ActivePage)
}

func TestPageChange_StaleResponseDiscarded(t *testing.T) {
	searcher := &fakeSearcher{pages: batmanPages(5)}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	m = settle(t, m, cmd)

	m, first := update(t, m, pageSelectedMsg{selected: 1})
	m, second := update(t, m, pageSelectedMsg{selected: 2})

	late := searchResults(collect(first))
	latest := searchResults(collect(second))
	require.Len(t, late, 1)
	require.Len(t, latest, 1)

	m, _ = update(t, m, latest[0])
	m, _ = update(t, m, late[0])

	layout := m.search.Layout()
	assert.Equal(t, 300, layout.Movies[0].ID)
	assert.Equal(t, 2, layout.ActivePage)
	assert.Equal(t, search.StatusLoaded, m.search.Status())
}

func TestPageChange_IgnoredWithoutResults(t *testing.T) {
	searcher := &fakeSearcher{}
	m := newTestModel(t, searcher)

	m, cmd := update(t, m, pageSelectedMsg{selected: 1})
	assert.Nil(t, cmd)
	assert.Empty(t, searcher.Calls())
	assert.Equal(t, search.StatusIdle, m.search.Status())
}

func TestGridKeys_EmitZeroIndexedPageEvents(t *testing.T) {
	searcher := &fakeSearcher{pages: batmanPages(5)}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	m = settle(t, m, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusGrid, m.focus)

	_, cmd = update(t, m, keyRunes("["))
	assert.Nil(t, cmd, "already on the first page")

	_, cmd = update(t, m, keyRunes("]"))
	require.NotNil(t, cmd)
	assert.Equal(t, pageSelectedMsg{selected: 1}, cmd())

	_, cmd = update(t, m, keyRunes("G"))
	require.NotNil(t, cmd)
	assert.Equal(t, pageSelectedMsg{selected: 4}, cmd())
}

func TestGridKeys_NoPaginationForSinglePage(t *testing.T) {
	searcher := &fakeSearcher{pages: batmanPages(1)}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	m = settle(t, m, cmd)
	assert.False(t, m.search.Layout().ShowPagination)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = update(t, m, keyRunes("]"))
	assert.Nil(t, cmd)
}

func TestFetchFailure_ShowsErrorBanner(t *testing.T) {
	searcher := &fakeSearcher{err: &tmdb.NetworkError{Err: errors.New("dial tcp: connection refused")}}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "batman")
	m = settle(t, m, cmd)

	layout := m.search.Layout()
	assert.True(t, layout.ShowError)
	assert.False(t, layout.ShowGrid)
	assert.False(t, layout.ShowPagination)
	assert.Contains(t, m.View(), "Network error, check your connection.")
	assert.Zero(t, m.toast.seq, "failures are not toasts")
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "network",
			err:  &tmdb.NetworkError{Err: errors.New("timeout")},
			want: "Network error, check your connection.",
		},
		{
			name: "unauthorized",
			err:  &tmdb.APIError{StatusCode: http.StatusUnauthorized},
			want: "TMDB rejected the API token.",
		},
		{
			name: "server error",
			err:  &tmdb.APIError{StatusCode: http.StatusInternalServerError},
			want: "Whoops, something went wrong! Please try again!",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "Whoops, something went wrong! Please try again!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorText(tt.err))
		})
	}
}

func threeMovies() map[search.Key]*tmdb.ResultPage {
	return map[search.Key]*tmdb.ResultPage{
		{Query: "alien", Page: 1}: {
			Page:       1,
			TotalPages: 1,
			Results: []tmdb.Movie{
				{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25"},
				{ID: 2, Title: "Aliens", ReleaseDate: "1986-07-18"},
				{ID: 3, Title: "Alien 3", ReleaseDate: "1992-05-22"},
			},
		},
	}
}

func TestSelection_ReplaceAndClose(t *testing.T) {
	searcher := &fakeSearcher{pages: threeMovies()}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	current, ok := m.selection.Current()
	require.True(t, ok)
	assert.Equal(t, 1, current.ID)
	assert.Contains(t, m.View(), "Alien (1979)")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	current, ok = m.selection.Current()
	require.True(t, ok)
	assert.Equal(t, 2, current.ID, "next movie replaces the selection directly")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	current, _ = m.selection.Current()
	assert.Equal(t, 1, current.ID)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.selection.Viewing())
	assert.Equal(t, focusGrid, m.focus)
}

func TestSelection_GridNavigation(t *testing.T) {
	searcher := &fakeSearcher{pages: threeMovies()}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = update(t, m, keyRunes("l"))
	m, _ = update(t, m, keyRunes("l"))
	m, _ = update(t, m, keyRunes("l"))
	assert.Equal(t, 2, m.cursor, "cursor stops at the last card")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	current, ok := m.selection.Current()
	require.True(t, ok)
	assert.Equal(t, 3, current.ID)
}

func TestScores_DiscardedForPreviousSelection(t *testing.T) {
	searcher := &fakeSearcher{pages: threeMovies()}
	scores := &fakeScores{}
	m := newTestModel(t, searcher, func(o *Options) { o.Scores = scores })

	m, cmd := submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, firstCmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.scoreState.loading)
	assert.Contains(t, m.View(), "Fetching Rotten Tomatoes scores")

	m, secondCmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	for _, msg := range collect(firstCmd) {
		m, _ = update(t, m, msg)
	}
	assert.True(t, m.scoreState.loading, "scores for Alien are dropped while Aliens is viewed")
	assert.Nil(t, m.scoreState.data)

	for _, msg := range collect(secondCmd) {
		m, _ = update(t, m, msg)
	}
	assert.False(t, m.scoreState.loading)
	require.NotNil(t, m.scoreState.data)
	assert.Equal(t, "Aliens", m.scoreState.data.Title)

	view := m.View()
	assert.Contains(t, view, "Tomatometer (Critics): 90%")
	assert.Contains(t, view, "Aliens consensus")
}

func TestScores_DisabledWithoutFetcher(t *testing.T) {
	searcher := &fakeSearcher{pages: threeMovies()}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, m.selection.Viewing())
	assert.NotContains(t, m.View(), "Tomatometer")
}

func TestModal_OpensBrowser(t *testing.T) {
	var opened string
	searcher := &fakeSearcher{pages: threeMovies()}
	m := newTestModel(t, searcher, func(o *Options) {
		o.OpenURL = func(url string) error {
			opened = url
			return nil
		}
	})

	m, cmd := submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd = update(t, m, keyRunes("o"))
	require.NotNil(t, cmd)
	assert.Equal(t, openBrowserMsg{}, cmd())
	assert.Equal(t, "https://www.themoviedb.org/movie/1", opened)
}

func TestQuitKeys(t *testing.T) {
	searcher := &fakeSearcher{pages: threeMovies()}
	m := newTestModel(t, searcher)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	typed, _ := update(t, m, keyRunes("q"))
	assert.Equal(t, "q", typed.textInput.Value(), "q is text while the input is focused")

	m, cmd = submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestFocus_SlashReturnsToInput(t *testing.T) {
	searcher := &fakeSearcher{pages: threeMovies()}
	m := newTestModel(t, searcher)

	m, cmd := submitQuery(t, m, "alien")
	m = settle(t, m, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusGrid, m.focus)
	assert.False(t, m.textInput.Focused())

	m, _ = update(t, m, keyRunes("/"))
	assert.Equal(t, focusInput, m.focus)
	assert.True(t, m.textInput.Focused())
}
