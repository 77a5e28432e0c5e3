package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/catalog"
	"shopctl/internal/config"
	"shopctl/internal/session"
)

type appView int

const (
	viewLogin appView = iota
	viewHome
	viewProducts
	viewOffers
	viewForm
)

// appModel is the interactive console. Navigation goes through the
// session guard: every route change re-evaluates it, and protected
// screens render nothing until the guard authorizes them.
type appModel struct {
	cfg    *config.Config
	store  *session.Store
	client *catalog.Client

	width  int
	height int

	view     appView
	decision session.Decision

	homeCursor int

	products *catalog.ListController
	offers   *catalog.ListController

	productList list.Model
	offerList   list.Model
	spin        spinner.Model

	form    *formModel
	formGen int

	confirm *confirmState
	login   loginModel

	notices   []notice
	noticeSeq int

	// categoryIdx cycles the product category filter; -1 shows all.
	categoryIdx int
}

type listLoadedMsg struct {
	kind     catalog.Kind
	entities []catalog.Entity
	out      catalog.Outcome
}

type submitDoneMsg struct {
	gen     int
	kind    catalog.Kind
	editing bool
	out     catalog.Outcome
}

type deleteDoneMsg struct {
	kind catalog.Kind
	out  catalog.Outcome
}

type loginDoneMsg struct{ out catalog.Outcome }

func newAppModel(cfg *config.Config, store *session.Store, client *catalog.Client) appModel {
	m := appModel{
		cfg:         cfg,
		store:       store,
		client:      client,
		products:    catalog.NewListController(client, catalog.ProductSchema),
		offers:      catalog.NewListController(client, catalog.OfferSchema),
		productList: newList("Products"),
		offerList:   newList("Offers"),
		spin:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		login:       newLoginModel(),
		categoryIdx: -1,
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	// Initial navigation runs the guard for the home route; a missing
	// token redirects to login before anything protected renders.
	cmd := m.navigate(session.RouteHome)
	return tea.Batch(cmd, m.spin.Tick)
}

// navigate runs the guard and follows its redirect. The target screen's
// fetch command, if any, is returned.
func (m *appModel) navigate(route session.Route) tea.Cmd {
	m.decision = session.Evaluate(route, m.store.Token())
	if m.decision.State == session.StateRedirecting {
		route = m.decision.RedirectTo
		m.decision = session.Evaluate(route, m.store.Token())
	}

	switch route {
	case session.RouteLogin:
		m.view = viewLogin
		m.login = newLoginModel()
		return nil
	case session.RouteProducts:
		m.view = viewProducts
		return m.startFetch(m.products)
	case session.RouteOffers:
		m.view = viewOffers
		return m.startFetch(m.offers)
	default:
		m.view = viewHome
		return nil
	}
}

func (m *appModel) startFetch(lc *catalog.ListController) tea.Cmd {
	lc.Begin()
	schema := lc.Schema()
	client := m.client
	return func() tea.Msg {
		entities, out := client.List(context.Background(), schema)
		return listLoadedMsg{kind: schema.Kind, entities: entities, out: out}
	}
}

func (m *appModel) openForm(schema catalog.Schema, draft *catalog.Draft, editID string) {
	m.formGen++
	m.form = newFormModel(schema, draft, editID, m.formGen)
	m.view = viewForm
}

func (m *appModel) closeForm() {
	// The draft dies with the form; late async results are discarded by
	// generation checks.
	m.form = nil
	if m.view == viewForm {
		m.view = viewHome
	}
}

func (m *appModel) dispatchSubmit() tea.Cmd {
	f := m.form
	// The goroutine gets its own copy: the form keeps routing keystrokes
	// into the live draft while the request is in flight.
	draft := f.draft.Clone()
	editID, gen, kind := f.editID, f.gen, f.schema.Kind
	client := m.client
	return func() tea.Msg {
		var out catalog.Outcome
		if editID == "" {
			out = client.Create(context.Background(), draft)
		} else {
			out = client.Update(context.Background(), draft, editID)
		}
		return submitDoneMsg{gen: gen, kind: kind, editing: editID != "", out: out}
	}
}

func (m *appModel) dispatchDelete(c *confirmState) tea.Cmd {
	client := m.client
	schema, id := c.schema, c.id
	return func() tea.Msg {
		out := client.Delete(context.Background(), schema, id, catalog.Confirm())
		return deleteDoneMsg{kind: schema.Kind, out: out}
	}
}

func (m *appModel) controllerFor(kind catalog.Kind) *catalog.ListController {
	if kind == catalog.KindOffer {
		return m.offers
	}
	return m.products
}

func (m *appModel) listModelFor(kind catalog.Kind) *list.Model {
	if kind == catalog.KindOffer {
		return &m.offerList
	}
	return &m.productList
}

func (m *appModel) refreshListItems(kind catalog.Kind) {
	lc := m.controllerFor(kind)
	m.listModelFor(kind).SetItems(entityItems(kind, lc.Filtered()))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := m.height - 8
		if h < 8 {
			h = 8
		}
		m.productList.SetSize(m.width, h)
		m.offerList.SetSize(m.width, h)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case noticeExpiredMsg:
		m.dropNotice(msg.id)
		return m, nil

	case listLoadedMsg:
		lc := m.controllerFor(msg.kind)
		lc.Resolve(msg.entities, msg.out)
		m.refreshListItems(msg.kind)
		if msg.out.ForcedLogout {
			return m, tea.Batch(m.noticeForOutcome(msg.out), m.navigate(session.RouteLogin))
		}
		return m, nil

	case loginRequestMsg:
		client := m.client
		return m, func() tea.Msg {
			return loginDoneMsg{out: client.Login(context.Background(), msg.email, msg.phone, msg.password)}
		}

	case loginDoneMsg:
		m.login.busy = false
		if msg.out.Kind.Failed() {
			m.login.errMsg = msg.out.Message
			return m, nil
		}
		return m, tea.Batch(m.noticeForOutcome(msg.out), m.navigate(session.RouteHome))

	case submitRequestMsg:
		if m.form == nil || msg.gen != m.form.gen {
			return m, nil
		}
		return m, m.dispatchSubmit()

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case deleteDoneMsg:
		cmds := []tea.Cmd{m.noticeForOutcome(msg.out)}
		if msg.out.ForcedLogout {
			cmds = append(cmds, m.navigate(session.RouteLogin))
		} else if !msg.out.Kind.Failed() {
			// Pessimistic refresh: re-derive the list from the server.
			cmds = append(cmds, m.startFetch(m.controllerFor(msg.kind)))
		}
		return m, tea.Batch(cmds...)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x":
			// Works on every screen, including forms where "x" is text.
			m.dismissNotices()
			return m, nil
		}
		if m.confirm != nil {
			return m.updateConfirm(key)
		}
	}

	switch m.view {
	case viewLogin:
		return m, m.login.update(msg)
	case viewForm:
		if m.form == nil {
			return m, nil
		}
		cmd, closed := m.form.update(msg)
		if closed {
			kind := m.form.schema.Kind
			m.closeForm()
			route := session.RouteProducts
			if kind == catalog.KindOffer {
				route = session.RouteOffers
			}
			return m, m.navigate(route)
		}
		return m, cmd
	case viewHome:
		return m.updateHome(msg)
	case viewProducts:
		return m.updateEntityList(msg, catalog.KindProduct)
	case viewOffers:
		return m.updateEntityList(msg, catalog.KindOffer)
	}
	return m, nil
}

func (m appModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if m.form != nil && m.form.gen == msg.gen {
		m.form.submitting = false
		if msg.out.Kind == catalog.OutcomeValidationBlocked && msg.out.FieldErrors != nil {
			m.form.result = catalog.Result{FieldErrors: msg.out.FieldErrors}
		}
	}

	cmds := []tea.Cmd{m.noticeForOutcome(msg.out)}

	if msg.out.ForcedLogout {
		m.closeForm()
		cmds = append(cmds, m.navigate(session.RouteLogin))
		return m, tea.Batch(cmds...)
	}

	if !msg.out.Kind.Failed() {
		cmds = append(cmds, m.startFetch(m.controllerFor(msg.kind)))
		if msg.editing {
			// Edits go back to the list; the refetch re-derives it.
			m.closeForm()
			if msg.kind == catalog.KindOffer {
				m.view = viewOffers
			} else {
				m.view = viewProducts
			}
		} else if m.form != nil && m.form.gen == msg.gen {
			// The pipeline reset its copy; reset the live draft here on
			// the update loop and remount an empty form to match.
			m.form.draft.Reset()
			m.openForm(m.form.schema, m.form.draft, "")
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	switch key.String() {
	case "esc":
		m.confirm = nil
		return m, nil
	case "tab", "left", "right":
		if c.focus == confirmFocusCancel {
			c.focus = confirmFocusDelete
		} else {
			c.focus = confirmFocusCancel
		}
		return m, nil
	case "enter":
		m.confirm = nil
		if c.focus == confirmFocusDelete {
			// The only path that dispatches the destructive call.
			return m, m.dispatchDelete(c)
		}
		return m, nil
	}
	return m, nil
}

var homeEntries = []struct {
	label string
	route session.Route
}{
	{"Products", session.RouteProducts},
	{"Offers", session.RouteOffers},
	{"New product", ""},
	{"New offer", ""},
	{"Log out", ""},
	{"Quit", ""},
}

func (m appModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.homeCursor > 0 {
			m.homeCursor--
		}
		return m, nil
	case "down", "j":
		if m.homeCursor < len(homeEntries)-1 {
			m.homeCursor++
		}
		return m, nil
	case "x":
		m.dismissNotices()
		return m, nil
	case "q":
		return m, tea.Quit
	case "enter":
		switch homeEntries[m.homeCursor].label {
		case "Products", "Offers":
			return m, m.navigate(homeEntries[m.homeCursor].route)
		case "New product":
			m.openForm(catalog.ProductSchema, catalog.NewDraft(catalog.ProductSchema), "")
			return m, nil
		case "New offer":
			m.openForm(catalog.OfferSchema, catalog.NewDraft(catalog.OfferSchema), "")
			return m, nil
		case "Log out":
			if err := m.store.Clear(); err != nil {
				return m, m.pushNotice(err.Error(), true, false)
			}
			return m, tea.Batch(m.pushNotice("logged out", false, false), m.navigate(session.RouteLogin))
		case "Quit":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) updateEntityList(msg tea.Msg, kind catalog.Kind) (tea.Model, tea.Cmd) {
	lc := m.controllerFor(kind)
	lm := m.listModelFor(kind)

	if key, ok := msg.(tea.KeyMsg); ok && lm.FilterState() != list.Filtering {
		switch key.String() {
		case "esc":
			return m, m.navigate(session.RouteHome)
		case "x":
			m.dismissNotices()
			return m, nil
		case "r":
			return m, m.startFetch(lc)
		case "n":
			schema := lc.Schema()
			m.openForm(schema, catalog.NewDraft(schema), "")
			return m, nil
		case "c":
			if kind == catalog.KindProduct {
				m.categoryIdx++
				if m.categoryIdx >= len(catalog.Categories) {
					m.categoryIdx = -1
				}
				if m.categoryIdx < 0 {
					lc.SetCategory("")
				} else {
					lc.SetCategory(catalog.Categories[m.categoryIdx])
				}
				m.refreshListItems(kind)
				return m, nil
			}
		case "e", "enter":
			if it, ok := lm.SelectedItem().(entityItem); ok {
				schema := lc.Schema()
				draft := catalog.DraftFromEntity(schema, it.entity, m.client.BaseURL())
				m.openForm(schema, draft, it.entity.ID)
				return m, nil
			}
		case "d":
			if it, ok := lm.SelectedItem().(entityItem); ok {
				m.confirm = &confirmState{
					schema: lc.Schema(),
					id:     it.entity.ID,
					name:   it.entity.Name,
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	*lm, cmd = lm.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	header := styleHeader.Render("shopctl console")
	if u := m.store.User(); u != nil && u.Name != "" {
		header += styleMuted.Render("  " + u.Name)
	}

	// Render contract: while the guard has not authorized the current
	// route, protected content never reaches the screen.
	if !m.decision.Authorized() && m.view != viewLogin {
		return header + "\n\n" + styleMuted.Render("redirecting…")
	}

	var body string
	switch m.view {
	case viewLogin:
		body = m.login.view()
	case viewHome:
		body = m.viewHome()
	case viewProducts:
		body = m.viewEntityList(catalog.KindProduct)
	case viewOffers:
		body = m.viewEntityList(catalog.KindOffer)
	case viewForm:
		if m.form != nil {
			body = m.form.view()
		}
	}

	if m.confirm != nil {
		body = renderConfirm(m.confirm)
	}

	sections := []string{header}
	if n := m.renderNotices(); n != "" {
		sections = append(sections, n)
	}
	sections = append(sections, body)
	return strings.Join(sections, "\n\n")
}

func (m appModel) viewHome() string {
	var b strings.Builder
	for i, e := range homeEntries {
		cursor := "  "
		if i == m.homeCursor {
			cursor = "> "
		}
		b.WriteString(cursor + e.label + "\n")
	}
	b.WriteString("\n" + styleFooter.Render("↑/↓: move  enter: select  q: quit"))
	return b.String()
}

func (m appModel) viewEntityList(kind catalog.Kind) string {
	lc := m.controllerFor(kind)
	lm := m.listModelFor(kind)

	var b strings.Builder
	switch lc.State() {
	case catalog.ListLoading:
		b.WriteString(m.spin.View() + " loading…\n")
	case catalog.ListError:
		b.WriteString(styleError.Render("failed to load: "+lc.Err()) + "\n")
		b.WriteString(styleMuted.Render("r: retry") + "\n")
	default:
		b.WriteString(lm.View() + "\n")
	}
	footer := "enter/e: edit  n: new  d: delete  r: reload  esc: back"
	if kind == catalog.KindProduct {
		label := "all"
		if m.categoryIdx >= 0 {
			label = catalog.Categories[m.categoryIdx]
		}
		footer += "  c: category (" + label + ")"
	}
	b.WriteString(styleFooter.Render(footer))
	return b.String()
}
