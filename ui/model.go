// Package ui is the interactive terminal front end: a search bar, a paged
// grid of results and a detail modal, driven by the search state machine.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sebastiantruijens/movie-tui/config"
	"github.com/sebastiantruijens/movie-tui/rottentomatoes"
	"github.com/sebastiantruijens/movie-tui/search"
	"github.com/sebastiantruijens/movie-tui/tmdb"
)

const (
	defaultToastDuration = 4 * time.Second
	defaultPageRange     = 5
	defaultPageMargin    = 1

	// chromeHeight is the number of lines used by everything but the grid.
	chromeHeight = 16
)

type focusArea int

const (
	focusInput focusArea = iota
	focusGrid
)

// ScoresFetcher looks up critic scores for the movie being viewed.
type ScoresFetcher interface {
	Scores(ctx context.Context, title, year string) (*rottentomatoes.Scores, error)
}

// Options wires the model to its collaborators.
type Options struct {
	Searcher tmdb.Searcher
	// Scores is optional; nil hides the critic scores section.
	Scores       ScoresFetcher
	ImageBaseURL string
	Config       config.UIConfig
	Logger       zerolog.Logger
	// OpenURL defaults to the system browser.
	OpenURL func(url string) error
}

// Model represents the application state
type Model struct {
	searcher     tmdb.Searcher
	scores       ScoresFetcher
	imageBaseURL string
	cfg          config.UIConfig
	logger       zerolog.Logger
	openURL      func(string) error

	search     search.State
	selection  search.Selection
	scoreState scoresState
	toast      toast

	focus     focusArea
	cursor    int
	keys      keyMap
	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	pager     paginator.Model
	help      help.Model
	width     int
	height    int
}

// NewModel initializes the application model
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a movie title to search..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 44

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	vp := viewport.New(modalMaxWidth, 20)

	cfg := opts.Config
	if cfg.ToastDuration <= 0 {
		cfg.ToastDuration = defaultToastDuration
	}
	if cfg.PageRange <= 0 {
		cfg.PageRange = defaultPageRange
	}
	if cfg.PageMargin < 0 {
		cfg.PageMargin = defaultPageMargin
	}

	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openBrowser
	}

	return Model{
		searcher:     opts.Searcher,
		scores:       opts.Scores,
		imageBaseURL: opts.ImageBaseURL,
		cfg:          cfg,
		logger:       opts.Logger.With().Str("component", "ui").Logger(),
		openURL:      openURL,
		search:       search.New(),
		keys:         defaultKeyMap(),
		textInput:    ti,
		spinner:      sp,
		viewport:     vp,
		pager:        paginator.New(),
		help:         help.New(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeModal()
		if m.selection.Viewing() {
			m.refreshModal()
		}

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			if m.selection.Viewing() && m.scoreState.loading {
				m.refreshModal()
			}
		}

	case searchResultsMsg:
		cmds = append(cmds, m.applyResults(msg))

	case pageSelectedMsg:
		cmds = append(cmds, m.changePage(msg.selected))

	case scoresMsg:
		m.applyScores(msg)

	case toastExpiredMsg:
		m.toast.expire(msg.seq)

	case openBrowserMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("failed to open browser")
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch {
	case m.selection.Viewing():
		return m.handleModalKey(msg)
	case m.focus == focusInput:
		return m.handleInputKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit(m.textInput.Value())
	case key.Matches(msg, m.keys.FocusGrid) && m.search.Layout().ShowGrid:
		m.focusGrid()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	layout := m.search.Layout()
	cols := m.gridColumns()
	n := len(layout.Movies)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, n, cols, 0, -1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, n, cols, 0, 1)
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, n, cols, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, n, cols, 1, 0)
	case key.Matches(msg, m.keys.Open):
		if layout.ShowGrid && m.cursor < n {
			return m, m.selectMovie(&layout.Movies[m.cursor])
		}
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.pageCmd(func(p *paginator.Model) { p.PrevPage() })
	case key.Matches(msg, m.keys.NextPage):
		return m, m.pageCmd(func(p *paginator.Model) { p.NextPage() })
	case key.Matches(msg, m.keys.FirstPage):
		return m, m.pageCmd(func(p *paginator.Model) { p.Page = 0 })
	case key.Matches(msg, m.keys.LastPage):
		return m, m.pageCmd(func(p *paginator.Model) { p.Page = p.TotalPages - 1 })
	}

	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.closeModal()
		return m, nil
	case key.Matches(msg, m.keys.NextMovie):
		return m, m.stepSelection(1)
	case key.Matches(msg, m.keys.PrevMovie):
		return m, m.stepSelection(-1)
	case key.Matches(msg, m.keys.Browser):
		movie, _ := m.selection.Current()
		url := movie.PageURL()
		open := m.openURL
		return m, func() tea.Msg {
			return openBrowserMsg{err: open(url)}
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit starts a search for text, or shows a toast when it is blank.
func (m *Model) submit(text string) tea.Cmd {
	k, err := m.search.Submit(text)
	if err != nil {
		return m.toast.show(emptyQueryToast, m.cfg.ToastDuration)
	}

	m.cursor = 0
	m.logger.Debug().Str("query", k.Query).Msg("search submitted")
	return tea.Batch(m.spinner.Tick, m.fetch(k))
}

// pageCmd applies move to a paginator positioned on the active page and
// emits a page-change event when the page actually changed.
func (m Model) pageCmd(move func(*paginator.Model)) tea.Cmd {
	layout := m.search.Layout()
	if !layout.ShowPagination {
		return nil
	}

	p := m.pager
	p.TotalPages = layout.TotalPages
	p.Page = layout.ActivePage
	move(&p)
	if p.Page == layout.ActivePage {
		return nil
	}

	selected := p.Page
	return func() tea.Msg {
		return pageSelectedMsg{selected: selected}
	}
}

func (m *Model) changePage(selected int) tea.Cmd {
	k, ok := m.search.ChangePage(selected)
	if !ok {
		m.logger.Debug().Int("selected", selected).Msg("page change ignored")
		return nil
	}

	m.logger.Debug().Str("query", k.Query).Int("page", k.Page).Msg("page changed")
	return tea.Batch(m.spinner.Tick, m.fetch(k))
}

func (m Model) fetch(k search.Key) tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		page, err := searcher.SearchMovies(context.Background(), k.Query, k.Page)
		return searchResultsMsg{key: k, page: page, err: err}
	}
}

func (m *Model) applyResults(msg searchResultsMsg) tea.Cmd {
	outcome := m.search.Resolve(msg.key, msg.page, msg.err)
	if !outcome.Applied {
		m.logger.Debug().Stringer("key", msg.key).Msg("discarding stale search response")
		return nil
	}

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Stringer("key", msg.key).Msg("search failed")
		return nil
	}

	m.cursor = 0
	data := m.search.Data()
	m.logger.Debug().
		Stringer("key", msg.key).
		Int("results", len(data.Results)).
		Int("total_pages", data.TotalPages).
		Msg("search resolved")

	if outcome.NoResults {
		if m.focus == focusGrid {
			return tea.Batch(m.focusInput(), m.toast.show(noResultsToast, m.cfg.ToastDuration))
		}
		return m.toast.show(noResultsToast, m.cfg.ToastDuration)
	}
	return nil
}

// selectMovie opens the modal on movie, replacing whatever was viewed.
func (m *Model) selectMovie(movie *tmdb.Movie) tea.Cmd {
	m.selection.Select(movie)
	m.scoreState = scoresState{}

	if movie == nil {
		return nil
	}

	var cmd tea.Cmd
	if m.scores != nil {
		m.scoreState = scoresState{movieID: movie.ID, loading: true}
		fetcher := m.scores
		id, title, year := movie.ID, movie.Title, movie.Year()
		cmd = tea.Batch(m.spinner.Tick, func() tea.Msg {
			scores, err := fetcher.Scores(context.Background(), title, year)
			return scoresMsg{movieID: id, scores: scores, err: err}
		})
	}

	m.refreshModal()
	m.viewport.GotoTop()
	return cmd
}

// stepSelection views the movie delta positions away from the current one.
func (m *Model) stepSelection(delta int) tea.Cmd {
	movies := m.search.Layout().Movies
	current, ok := m.selection.Current()
	if !ok || len(movies) == 0 {
		return nil
	}

	idx := m.cursor
	for i, movie := range movies {
		if movie.ID == current.ID {
			idx = i
			break
		}
	}

	next := idx + delta
	if next < 0 || next >= len(movies) {
		return nil
	}

	m.cursor = next
	return m.selectMovie(&movies[next])
}

func (m *Model) closeModal() {
	m.selection.Close()
	m.scoreState = scoresState{}
}

func (m *Model) applyScores(msg scoresMsg) {
	current, ok := m.selection.Current()
	if !ok || current.ID != msg.movieID || m.scoreState.movieID != msg.movieID {
		return
	}

	if msg.err != nil {
		m.logger.Debug().Err(msg.err).Str("title", current.Title).Msg("critic scores unavailable")
	}

	m.scoreState.loading = false
	m.scoreState.data = msg.scores
	m.scoreState.err = msg.err
	m.refreshModal()
}

func (m *Model) focusGrid() {
	m.focus = focusGrid
	m.textInput.Blur()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.textInput.Focus()
}

func (m Model) busy() bool {
	return m.search.Status() == search.StatusFetching || m.scoreState.loading
}

// gridRows is how many card rows fit below the rest of the screen.
func (m Model) gridRows() int {
	if m.height <= 0 {
		return maxColumns * 4
	}
	return max(1, (m.height-chromeHeight)/cardHeight)
}

// errorText is the banner shown for a failed search.
func errorText(err error) string {
	if tmdb.IsNetworkError(err) {
		return "Network error, check your connection."
	}
	if apiErr, ok := tmdb.AsAPIError(err); ok && apiErr.IsUnauthorized() {
		return "TMDB rejected the API token."
	}
	return "Whoops, something went wrong! Please try again!"
}

// View renders the UI
func (m Model) View() string {
	var body string
	if m.selection.Viewing() {
		modal := modalStyle.Render(m.viewport.View() + "\n\n" + m.help.View(m.keys.modalHelp()))
		body = lipgloss.Place(m.width, max(m.height-1, 0), lipgloss.Center, lipgloss.Center, modal)
	} else {
		body = m.mainView()
	}

	if !m.toast.visible {
		return body
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, toastStyle.Render(m.toast.text)) + "\n" + body
}

func (m Model) mainView() string {
	var sb strings.Builder
	layout := m.search.Layout()

	sb.WriteString(titleStyle.Render("🎬 Movie Search"))
	sb.WriteString("\n")

	input := inputStyle
	if m.focus == focusInput {
		input = focusedInputStyle
	}
	sb.WriteString(input.Render(m.textInput.View()))
	sb.WriteString("\n\n")

	if layout.ShowError {
		sb.WriteString(errorStyle.Render(errorText(layout.Err)))
		sb.WriteString("\n\n")
	}

	if layout.ShowPagination {
		sb.WriteString(m.renderPagination(layout.TotalPages, layout.ActivePage))
		if layout.Revalidating {
			sb.WriteString(" ")
			sb.WriteString(m.spinner.View())
		}
		sb.WriteString("\n\n")
	}

	if layout.ShowLoader {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(normalTextStyle.Render(fmt.Sprintf("Searching for %q...", m.search.Query())))
		sb.WriteString("\n\n")
	}

	if layout.ShowGrid {
		sb.WriteString(m.renderGrid(layout.Movies, layout.Revalidating, m.gridRows()))
		sb.WriteString("\n\n")
	}

	if m.search.Status() == search.StatusIdle {
		sb.WriteString(mutedTextStyle.Render("Type a movie title and press enter."))
		sb.WriteString("\n\n")
	}

	if m.focus == focusInput {
		sb.WriteString(m.help.View(m.keys.inputHelp()))
	} else {
		sb.WriteString(m.help.View(m.keys.gridHelp(layout.ShowPagination)))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		AlignHorizontal(lipgloss.Center).
		MaxHeight(m.height).
		Render(sb.String())
}
