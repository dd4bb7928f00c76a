package ui

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/store"
	"github.com/jmrivas/ondacast/internal/widget"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeSearch
)

// View is one page of the app. HandleKey reports whether the key changed
// anything worth redrawing.
type View interface {
	Draw(s tcell.Screen)
	HandleKey(ev *tcell.EventKey) bool
}

// App owns the terminal, the page views and the playback bar, and routes
// input between them.
type App struct {
	screen tcell.Screen

	catalog *catalog.Catalog
	store   *store.Store
	widget  *widget.Widget

	mode          Mode
	commandLine   string
	statusMessage string
	pendingSeek   bool

	page     Page
	current  View
	home     *HomeView
	episodes *EpisodesView
	detail   *DetailView
	about    *StaticView
	contact  *ContactView
	help     *HelpDialog
	bar      *PlayerBar

	quit        chan struct{}
	redraw      chan struct{}
	unsubscribe func()
	quitOnce    sync.Once
}

func NewApp(c *catalog.Catalog, st *store.Store, w *widget.Widget) *App {
	a := &App{
		catalog: c,
		store:   st,
		widget:  w,
		help:    NewHelpDialog(),
		quit:    make(chan struct{}),
		redraw:  make(chan struct{}, 1),
	}

	a.home = NewHomeView(c, st)
	a.episodes = NewEpisodesView(c, st)
	a.detail = NewDetailView(c, st)
	a.about = NewStaticView(aboutContent)
	a.contact = NewContactView()
	a.bar = NewPlayerBar(st, w)

	a.home.OnOpen = a.openEpisode
	a.home.OnPlay = a.playEpisode
	a.home.OnBrowse = func() { a.showPage(PageEpisodes) }
	a.episodes.OnOpen = a.openEpisode
	a.episodes.OnPlay = a.playEpisode
	a.detail.OnPlay = a.playEpisode
	a.detail.OnBack = func() { a.showPage(PageEpisodes) }

	a.page = PageHome
	a.current = a.home
	return a
}

func (a *App) Run() error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	a.screen = s

	defer func() {
		a.Quit()
		s.Fini()
		if r := recover(); r != nil {
			logrus.Errorf("panic during shutdown: %v", r)
		}
	}()

	s.SetStyle(tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg))
	s.Clear()

	// Redraw whenever playback state changes: widget events land in the
	// store, the store notifies us here.
	a.unsubscribe = a.store.Subscribe(func(store.State) {
		select {
		case a.redraw <- struct{}{}:
		default:
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logrus.Info("interrupt received, shutting down")
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
			a.Quit()
		case <-a.quit:
		}
	}()

	go a.handleEvents()
	a.draw()

	<-a.quit
	return nil
}

// Quit asks the event loop to exit. Safe to call more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() {
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		close(a.quit)
	})
}

func (a *App) handleEvents() {
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-a.quit:
			return
		case <-a.redraw:
			a.draw()
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				a.draw()
			case *tcell.EventKey:
				if a.handleKey(ev) {
					a.draw()
				}
			case *tcell.EventInterrupt:
				return
			}
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.help.IsVisible() {
		return a.help.HandleKey(ev)
	}

	switch a.mode {
	case ModeCommand:
		return a.handleCommandKey(ev)
	case ModeSearch:
		return a.handleSearchKey(ev)
	}

	// An armed "g" seek consumes the next digit as a fraction of the episode.
	if a.pendingSeek {
		a.pendingSeek = false
		if ev.Key() == tcell.KeyRune && ev.Rune() >= '0' && ev.Rune() <= '9' {
			state := a.store.State()
			if state.Current != nil && state.Duration > 0 {
				fraction := float64(ev.Rune()-'0') / 10
				a.widget.SeekTo(fraction * state.Duration)
			}
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		if a.store.State().Current != nil {
			a.widget.Rewind()
			return true
		}
	case tcell.KeyRight:
		if a.store.State().Current != nil {
			a.widget.Forward()
			return true
		}
	case tcell.KeyCtrlC:
		a.requestQuit()
		return false
	}

	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'Q':
			a.requestQuit()
			return false
		case '?':
			a.help.Show()
			return true
		case ':':
			a.mode = ModeCommand
			a.commandLine = ""
			a.statusMessage = ""
			return true
		case '/':
			a.showPage(PageEpisodes)
			a.mode = ModeSearch
			return true
		case '1':
			a.showPage(PageHome)
			return true
		case '2':
			a.showPage(PageEpisodes)
			return true
		case '3':
			a.showPage(PageAbout)
			return true
		case '4':
			a.showPage(PageContact)
			return true
		case ' ':
			a.store.TogglePlayback()
			return true
		case 's':
			if a.store.State().Current != nil {
				a.store.Stop()
				a.statusMessage = "Reproducción detenida"
			}
			return true
		case '+', '=':
			a.adjustVolume(0.05)
			return true
		case '-':
			a.adjustVolume(-0.05)
			return true
		}
	}

	if handled := a.current.HandleKey(ev); handled {
		a.statusMessage = ""
		return true
	}

	// Views that use "g" themselves (list tops, scroll) have had their
	// chance; anywhere else it arms the fractional seek.
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'g' && a.store.State().Current != nil {
		a.pendingSeek = true
		a.statusMessage = "g: pulsa 0-9 para saltar a ese punto"
		return true
	}
	return false
}

func (a *App) handleCommandKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.commandLine = ""
		return true
	case tcell.KeyEnter:
		a.executeCommand()
		a.mode = ModeNormal
		a.commandLine = ""
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.commandLine != "" {
			runes := []rune(a.commandLine)
			a.commandLine = string(runes[:len(runes)-1])
		}
		return true
	case tcell.KeyRune:
		a.commandLine += string(ev.Rune())
		return true
	}
	return false
}

func (a *App) handleSearchKey(ev *tcell.EventKey) bool {
	search := a.episodes.SearchState()
	prev := search.Query()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		// The filter stays active after leaving search mode.
		a.mode = ModeNormal
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		search.DeleteChar()
	case tcell.KeyLeft:
		search.MoveCursorLeft()
	case tcell.KeyRight:
		search.MoveCursorRight()
	case tcell.KeyCtrlU:
		search.Clear()
	case tcell.KeyRune:
		search.InsertChar(ev.Rune())
	}

	if search.Query() != prev {
		a.episodes.Refresh()
	}
	return true
}

func (a *App) executeCommand() {
	route, err := ParseRoute(a.commandLine)
	if err != nil {
		a.statusMessage = err.Error()
		return
	}
	switch route.Page {
	case PageQuit:
		a.requestQuit()
	case PageHelp:
		a.help.Show()
	case PageEpisodeDetail:
		a.openEpisode(route.EpisodeID)
	default:
		a.showPage(route.Page)
	}
}

func (a *App) showPage(p Page) {
	a.page = p
	a.statusMessage = ""
	switch p {
	case PageHome:
		a.current = a.home
	case PageEpisodes:
		a.current = a.episodes
	case PageEpisodeDetail:
		a.current = a.detail
	case PageAbout:
		a.current = a.about
	case PageContact:
		a.current = a.contact
	}
}

// openEpisode navigates to the detail page; unknown ids get the
// not-found rendering there.
func (a *App) openEpisode(id int) {
	a.detail.Show(id)
	a.showPage(PageEpisodeDetail)
}

func (a *App) playEpisode(ep *catalog.Episode) {
	state := a.store.State()
	if state.Current != nil && state.Current.ID == ep.ID {
		a.store.TogglePlayback()
		return
	}
	a.store.SelectEpisode(ep)
	a.store.Play()
}

func (a *App) adjustVolume(delta float64) {
	v := a.store.State().Volume + delta
	a.store.SetVolume(v)
	a.statusMessage = ""
}

func (a *App) requestQuit() {
	if a.screen != nil {
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	a.Quit()
}

func (a *App) draw() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	a.current.Draw(a.screen)
	a.bar.Draw(a.screen, h-3, w)
	a.drawStatusBar(w, h)
	a.help.Draw(a.screen)
	a.screen.Show()
}

func (a *App) drawStatusBar(w, h int) {
	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	fillRow(a.screen, h-1, w, style)

	left := ""
	switch a.mode {
	case ModeNormal:
		left = a.pageTitle()
	case ModeCommand:
		left = ":" + a.commandLine
	case ModeSearch:
		left = "/" + a.episodes.SearchState().Query()
	}
	drawText(a.screen, 0, h-1, style, left)

	if a.mode == ModeSearch {
		search := a.episodes.SearchState()
		cursorX := 1 + search.CursorPos()
		ch := ' '
		if runes := []rune(search.Query()); search.CursorPos() < len(runes) {
			ch = runes[search.CursorPos()]
		}
		a.screen.SetContent(cursorX, h-1, ch, nil, style.Reverse(true))
	}

	if a.statusMessage != "" {
		msgStyle := style.Foreground(ColorYellow)
		drawTextLimit(a.screen, len([]rune(left))+2, h-1, w-len([]rune(left))-4, msgStyle, a.statusMessage)
	}

	hint := "? ayuda"
	drawText(a.screen, w-len([]rune(hint))-1, h-1, style.Foreground(ColorDimmed), hint)
}

func (a *App) pageTitle() string {
	switch a.page {
	case PageHome:
		return "1 Inicio"
	case PageEpisodes:
		return "2 Episodios"
	case PageEpisodeDetail:
		return "Episodio"
	case PageAbout:
		return "3 Acerca de"
	case PageContact:
		return "4 Contacto"
	}
	return ""
}
