package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/SheCodesAus/vibelab/internal/auth"
	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/services"
	"github.com/SheCodesAus/vibelab/internal/share"
	"github.com/SheCodesAus/vibelab/internal/tasks"
	"github.com/SheCodesAus/vibelab/internal/tokens"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	SignupView
	PlaylistListView
	TrackListView
	CreateView
	SearchView
	PublishView
	GateView
	SharedView
)

// Backend is the API surface the TUI needs.
// Implemented by services.VibeLabService.
type Backend interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req services.SignupRequest) (models.User, error)
	Me(ctx context.Context) (models.User, error)
	Playlists(ctx context.Context) ([]models.Playlist, error)
	Playlist(ctx context.Context, id string) (*models.Playlist, error)
	RemoveItem(ctx context.Context, playlistID string, itemID int) error
	CreateShare(ctx context.Context, playlistID, passphrase string) (*models.ShareGrant, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	session *auth.Session
	backend Backend
	catalog tasks.Catalog
	engine  *tasks.PlaylistEngine
	newGate func(playlistID string) *share.Gate

	width  int
	height int
	help   help.Model
	keys   keyMap

	loginForm  fieldForm
	signupForm fieldForm
	formErr    string

	playlistList     list.Model
	playlists        []models.Playlist
	trackList        list.Model
	selectedPlaylist *models.Playlist

	createForm fieldForm
	vibes      vibePicker
	openDraft  bool
	draft      tasks.Draft

	searchInput textinput.Model
	resultList  list.Model
	searching   bool

	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	published    *tasks.PublishResult

	shareTarget string
	gate        *share.Gate
	gateMeta    *models.ShareMeta
	passInput   textinput.Model
	remember    bool
	validating  bool
	gateReason  string

	status string
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, session *auth.Session, backend Backend, catalog tasks.Catalog, engine *tasks.PlaylistEngine, newGate func(string) *share.Gate) *Model {
	search := textinput.New()
	search.Placeholder = "search the catalog"
	search.CharLimit = 120

	pass := textinput.New()
	pass.Placeholder = "passphrase"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return &Model{
		ctx:         ctx,
		view:        LoginView,
		session:     session,
		backend:     backend,
		catalog:     catalog,
		engine:      engine,
		newGate:     newGate,
		help:        help.New(),
		keys:        newKeyMap(),
		loginForm:   newLoginForm(),
		signupForm:  newSignupForm(),
		createForm:  newCreateForm(),
		vibes:       newVibePicker(),
		searchInput: search,
		passInput:   pass,
	}
}

// OpenShare points the TUI at a shared playlist instead of the library.
// Used when the program is started with a share link.
func (m *Model) OpenShare(playlistID string) *Model {
	m.shareTarget = playlistID
	return m
}

// Init decides the entry view: a share target goes straight to the gate,
// a logged-in user to their library, everyone else to the login form.
func (m *Model) Init() tea.Cmd {
	if m.shareTarget != "" {
		m.view = GateView
		return m.loadGate()
	}

	if m.session.LoggedIn() {
		m.view = PlaylistListView
		return m.fetchPlaylists()
	}

	m.view = LoginView
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case SignupView:
			return m.handleSignupKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case CreateView:
			return m.handleCreateKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case PublishView:
			return m.handlePublishKeys(msg)
		case GateView:
			return m.handleGateKeys(msg)
		case SharedView:
			return m.handleSharedKeys(msg)
		}

	case loginResultMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.formErr = ""
		m.view = PlaylistListView
		return m, m.fetchPlaylists()

	case signupResultMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.formErr = ""
		m.status = fmt.Sprintf("Account %q created, log in to continue", msg.user.Username)
		m.view = LoginView
		return m, nil

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Your Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case playlistFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.selectedPlaylist = msg.playlist
		m.trackList = newTrackList(msg.playlist, m.width, m.height)
		m.view = TrackListView
		return m, nil

	case itemRemovedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(msg.err.Error())
			return m, nil
		}
		m.status = "Track removed"
		return m, m.fetchPlaylist(m.selectedPlaylist.ID)

	case sharedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(msg.err.Error())
			return m, nil
		}
		m.status = fmt.Sprintf("Share link: %s", msg.grant.ShareURL)
		return m, nil

	case searchResultsMsg:
		m.searching = false
		if msg.err != nil {
			m.status = styles.err.Render(msg.err.Error())
			return m, nil
		}
		items := make([]list.Item, len(msg.results))
		for i, track := range msg.results {
			items[i] = catalogItem{track: track}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-12)
		m.resultList.Title = fmt.Sprintf("Results for %q", msg.query)
		m.resultList.SetShowHelp(false)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case publishCompleteMsg:
		m.published = msg.result
		m.err = msg.err
		if m.progressChan != nil {
			m.progressChan = nil
		}
		return m, nil

	case gateLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.gateMeta = msg.meta
		if msg.unlocked {
			return m.enterSharedView()
		}
		m.passInput.Focus()
		return m, textinput.Blink

	case gateResultMsg:
		m.validating = false
		if msg.unlocked {
			m.gateReason = ""
			return m.enterSharedView()
		}
		if msg.err != nil && msg.reason == "" {
			m.status = styles.err.Render(msg.err.Error())
			return m, nil
		}
		m.gateReason = msg.reason
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != PublishView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoginView:
		return m.renderLogin()
	case SignupView:
		return m.renderSignup()
	case PlaylistListView:
		return m.renderPlaylistList()
	case TrackListView:
		return m.renderTrackList()
	case CreateView:
		return m.renderCreate()
	case SearchView:
		return m.renderSearch()
	case PublishView:
		return m.renderPublish()
	case GateView:
		return m.renderGate()
	case SharedView:
		return m.renderShared()
	default:
		return ""
	}
}

func newTrackList(playlist *models.Playlist, width, height int) list.Model {
	items := make([]list.Item, len(playlist.Items))
	for i, track := range playlist.Items {
		items[i] = trackItem{track: track}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Tracks in '%s'", playlist.Name)
	l.SetSize(width-4, height-8)
	return l
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.loginForm.Next()
		return m, nil
	case "ctrl+n":
		m.view = SignupView
		m.formErr = ""
		return m, textinput.Blink
	case "enter":
		if !m.loginForm.AtLast() {
			m.loginForm.Next()
			return m, nil
		}
		return m, m.login()
	}

	return m, m.loginForm.Update(msg)
}

func (m *Model) handleSignupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LoginView
		m.formErr = ""
		return m, nil
	case "tab":
		m.signupForm.Next()
		return m, nil
	case "enter":
		if !m.signupForm.AtLast() {
			m.signupForm.Next()
			return m, nil
		}
		if errText := validateSignup(&m.signupForm); errText != "" {
			m.formErr = errText
			return m, nil
		}
		return m, m.signup()
	}

	return m, m.signupForm.Update(msg)
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.view = CreateView
		m.createForm.Reset()
		m.draft = tasks.Draft{}
		m.openDraft = false
		return m, textinput.Blink
	case "enter":
		if selected := m.playlistList.SelectedItem(); selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				return m, m.fetchPlaylist(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		m.status = ""
		return m, m.fetchPlaylists()
	case "d":
		if selected := m.trackList.SelectedItem(); selected != nil {
			if track, ok := selected.(trackItem); ok {
				return m, m.removeItem(track.track.ID)
			}
		}
	case "s":
		return m, m.createShare(m.selectedPlaylist.ID)
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "tab":
		m.createForm.Next()
		return m, nil
	case "left":
		m.vibes.Prev()
		return m, nil
	case "right":
		m.vibes.Next()
		return m, nil
	case "ctrl+o":
		m.openDraft = !m.openDraft
		return m, nil
	case "enter":
		if !m.createForm.AtLast() {
			m.createForm.Next()
			return m, nil
		}
		m.draft = tasks.Draft{
			Name:        m.createForm.Value(createName),
			Description: m.createForm.Value(createDescription),
			Vibe:        m.vibes.Value(),
			Open:        m.openDraft,
		}
		if err := m.draft.Validate(); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	return m, m.createForm.Update(msg)
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = CreateView
		return m, nil
	case "enter":
		if m.searchInput.Focused() {
			query := m.searchInput.Value()
			if query == "" {
				return m, nil
			}
			m.searching = true
			m.searchInput.Blur()
			return m, m.search(query)
		}
		if selected := m.resultList.SelectedItem(); selected != nil {
			if result, ok := selected.(catalogItem); ok {
				m.draft.Tracks = append(m.draft.Tracks, result.track.Item())
				m.status = fmt.Sprintf("Added %q (%d in draft)", result.track.Title, len(m.draft.Tracks))
			}
		}
		return m, nil
	case "/":
		if !m.searchInput.Focused() {
			m.searchInput.Focus()
			m.searchInput.SetValue("")
			return m, textinput.Blink
		}
	case "p":
		if !m.searchInput.Focused() {
			m.view = PublishView
			m.published = nil
			m.err = nil
			return m, m.startPublish()
		}
	}

	if m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handlePublishKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		if m.published != nil || m.err != nil {
			m.err = nil
			m.status = ""
			m.view = PlaylistListView
			return m, m.fetchPlaylists()
		}
	}
	return m, nil
}

func (m *Model) handleGateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.validating {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		m.remember = !m.remember
		return m, nil
	case "enter":
		passphrase := m.passInput.Value()
		if passphrase == "" {
			return m, nil
		}
		m.validating = true
		return m, m.submitPassphrase(passphrase)
	}

	var cmd tea.Cmd
	m.passInput, cmd = m.passInput.Update(msg)
	return m, cmd
}

func (m *Model) handleSharedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView, SharedView:
		m.trackList, cmd = m.trackList.Update(msg)
	case SearchView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) enterSharedView() (tea.Model, tea.Cmd) {
	playlist, err := m.gate.Playlist()
	if err != nil {
		m.err = err
		return m, nil
	}

	m.selectedPlaylist = playlist
	m.trackList = newTrackList(playlist, m.width, m.height)
	m.view = SharedView
	return m, nil
}

func (m *Model) login() tea.Cmd {
	username := m.loginForm.Value(loginUsername)
	password := m.loginForm.Value(loginPassword)

	return func() tea.Msg {
		token, err := m.backend.Login(m.ctx, username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}

		// a malformed exp claim stores the token without expiry
		expiry, _ := tokens.SessionExpiry(token)

		user := models.User{Username: username}
		if err := m.session.Login(token, expiry, user); err != nil {
			return loginResultMsg{err: err}
		}

		if me, err := m.backend.Me(m.ctx); err == nil {
			user = me
			_ = m.session.Login(token, expiry, user)
		}

		return loginResultMsg{user: user}
	}
}

func (m *Model) signup() tea.Cmd {
	req := services.SignupRequest{
		Username: m.signupForm.Value(signupUsername),
		Password: m.signupForm.Value(signupPassword),
		Name:     m.signupForm.Value(signupName),
		LastName: m.signupForm.Value(signupLastName),
	}

	return func() tea.Msg {
		user, err := m.backend.Register(m.ctx, req)
		return signupResultMsg{user: user, err: err}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.backend.Playlists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchPlaylist(id string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.backend.Playlist(m.ctx, id)
		return playlistFetchedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) removeItem(itemID int) tea.Cmd {
	playlistID := m.selectedPlaylist.ID
	return func() tea.Msg {
		err := m.backend.RemoveItem(m.ctx, playlistID, itemID)
		return itemRemovedMsg{itemID: itemID, err: err}
	}
}

func (m *Model) createShare(playlistID string) tea.Cmd {
	return func() tea.Msg {
		grant, err := m.backend.CreateShare(m.ctx, playlistID, "")
		return sharedMsg{grant: grant, err: err}
	}
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.catalog.Search(m.ctx, query, 0)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

func (m *Model) startPublish() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	draft := m.draft
	progress := m.progressChan

	go func() {
		result, err := m.engine.Publish(m.ctx, progress, draft)
		m.published = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return publishCompleteMsg{result: m.published, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return publishCompleteMsg{result: m.published, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) loadGate() tea.Cmd {
	m.gate = m.newGate(m.shareTarget)

	return func() tea.Msg {
		meta, err := m.gate.Load(m.ctx)
		if err != nil {
			return gateLoadedMsg{err: err}
		}

		if m.gate.State() == share.Unlocked {
			return gateLoadedMsg{meta: meta, unlocked: true}
		}

		unlocked, err := m.gate.TryRemembered(m.ctx)
		if err != nil {
			return gateLoadedMsg{err: err}
		}

		return gateLoadedMsg{meta: meta, unlocked: unlocked}
	}
}

func (m *Model) submitPassphrase(passphrase string) tea.Cmd {
	return func() tea.Msg {
		err := m.gate.Submit(m.ctx, passphrase, m.remember)
		if err != nil {
			return gateResultMsg{reason: m.gate.Reason(), err: err}
		}
		return gateResultMsg{unlocked: true}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Log in to VibeLab")
	body := m.loginForm.View()

	var footer string
	if m.formErr != "" {
		footer = styles.err.Render(m.formErr) + "\n\n"
	} else if m.status != "" {
		footer = styles.ok.Render(m.status) + "\n\n"
	}

	hint := styles.help.Render("enter submit • tab next field • ctrl+n sign up • ctrl+c quit")
	return fmt.Sprintf("%s\n%s%s%s", title, body, footer, hint)
}

func (m *Model) renderSignup() string {
	title := styles.title.Render("Create a VibeLab account")
	body := m.signupForm.View()

	var footer string
	if m.formErr != "" {
		footer = styles.err.Render(m.formErr) + "\n\n"
	}

	hint := styles.help.Render("enter submit • tab next field • esc back • ctrl+c quit")
	return fmt.Sprintf("%s\n%s%s%s", title, body, footer, hint)
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.newItem, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.remove, m.keys.share, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	status := ""
	if m.status != "" {
		status = "\n" + m.status
	}

	return fmt.Sprintf("%s%s\n\n%s", m.trackList.View(), status, helpView)
}

func (m *Model) renderCreate() string {
	title := styles.title.Render("New Playlist")
	body := m.createForm.View()
	vibe := fmt.Sprintf("Vibe (←/→): %s\n", m.vibes.View())
	open := fmt.Sprintf("Visibility (ctrl+o): %s\n\n", styles.warn.Render(visibilityLabel(m.openDraft)))

	var footer string
	if m.formErr != "" {
		footer = styles.err.Render(m.formErr) + "\n\n"
	}

	hint := styles.help.Render("enter continue • esc back • ctrl+c quit")
	return fmt.Sprintf("%s\n%s%s%s%s%s", title, body, vibe, open, footer, hint)
}

func visibilityLabel(open bool) string {
	if open {
		return "Open (anyone with the link)"
	}
	return "Private (passphrase on share)"
}

func (m *Model) renderSearch() string {
	title := styles.title.Render(fmt.Sprintf("Add tracks to '%s'", m.draft.Name))
	input := m.searchInput.View()

	body := ""
	if m.searching {
		body = "\n\nSearching..."
	} else if len(m.resultList.Items()) > 0 {
		body = "\n\n" + m.resultList.View()
	}

	status := ""
	if m.status != "" {
		status = "\n" + styles.ok.Render(m.status)
	}

	hint := styles.help.Render("enter search/add • / new search • p publish • esc back")
	return fmt.Sprintf("%s\n%s%s%s\n\n%s", title, input, body, status, hint)
}

func (m *Model) renderPublish() string {
	title := styles.title.Render("Publishing Playlist")

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s\n\n%s", title,
			styles.err.Render(fmt.Sprintf("Publish failed: %v", m.err)),
			styles.help.Render("enter back • q quit"))
	}

	if m.published != nil {
		summary := fmt.Sprintf("\nPlaylist: %s\nTracks added: %d/%d",
			m.published.Playlist.Name,
			m.published.SuccessCount,
			m.published.SuccessCount+m.published.FailedCount)

		var failed string
		if m.published.FailedCount > 0 {
			failed = "\n\n" + styles.warn.Render(fmt.Sprintf("Failed to add %d tracks:", m.published.FailedCount))
			for _, item := range m.published.ItemResults {
				if item.Error != nil {
					failed += fmt.Sprintf("\n  • %s - %s", item.Item.Artist, item.Item.Title)
				}
			}
		}

		return fmt.Sprintf("%s\n%s%s\n\n%s",
			styles.ok.Render("✓ Playlist Published"), summary, failed,
			styles.help.Render("enter back • q quit"))
	}

	return fmt.Sprintf("%s\n\n%s", title, m.progress.Message)
}

func (m *Model) renderGate() string {
	if m.gateMeta == nil {
		return "Loading shared playlist..."
	}

	title := styles.title.Render(m.gateMeta.Title)
	creator := styles.dim.Render(fmt.Sprintf("shared by %s", m.gateMeta.Creator))
	prompt := "\nThis playlist is locked. Enter the passphrase:\n\n" + m.passInput.View()

	rememberLabel := "off"
	if m.remember {
		rememberLabel = "on"
	}
	remember := fmt.Sprintf("\n\nRemember passphrase (ctrl+r): %s", rememberLabel)

	var footer string
	if m.validating {
		footer = "\n\nChecking passphrase..."
	} else if m.gateReason != "" {
		footer = "\n\n" + styles.err.Render(m.gateReason)
	}

	hint := styles.help.Render("enter unlock • ctrl+c quit")
	return fmt.Sprintf("%s\n%s%s%s%s\n\n%s", title, creator, prompt, remember, footer, hint)
}

func (m *Model) renderShared() string {
	header := ""
	if m.gateMeta != nil {
		header = styles.dim.Render(fmt.Sprintf("shared by %s", m.gateMeta.Creator)) + "\n"
	}

	hint := styles.help.Render("q quit")
	return fmt.Sprintf("%s%s\n\n%s", header, m.trackList.View(), hint)
}
