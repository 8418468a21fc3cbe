package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/diewo77/go-artisans/internal/client"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the directory interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newBrowser(cmd.Context(), a), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}

// Search option cycles. The first entry of each means "any".
var (
	availabilityOptions = []string{"", models.AvailabilityAvailable, models.AvailabilitySoon, models.AvailabilityBusy}
	ratingOptions       = []float64{0, 3, 4, 4.5}
	priceOptions        = []string{"", models.PriceBudget, models.PriceStandard, models.PricePremium}
	distanceOptions     = []string{"", "2 km", "5 km", "10 km"}
)

func next[T comparable](opts []T, cur T) T {
	return opts[(slices.Index(opts, cur)+1)%len(opts)]
}

func categoryOptions() []string {
	out := []string{""}
	for _, t := range models.Catalog {
		out = append(out, t.Name)
	}
	return out
}

type (
	artisansLoadedMsg struct{ artisans []models.ArtisanProfile }
	profileLoadedMsg  struct{ profile *models.ArtisanProfile }
	requestsLoadedMsg struct{ requests []models.ClientRequest }
	loggedInMsg       struct{}
	errMsg            struct{ err error }
)

type artisanItem struct{ artisan models.ArtisanProfile }

func (i artisanItem) Title() string { return i.artisan.Name }
func (i artisanItem) Description() string {
	return fmt.Sprintf("%s · ★ %.1f · %s · %s", i.artisan.Trade, i.artisan.Rating, i.artisan.PriceRange, i.artisan.Availability)
}
func (i artisanItem) FilterValue() string {
	return i.artisan.Name + " " + strings.Join(i.artisan.Skills, " ")
}

// browser is the bubbletea model. Every screen change goes through the
// navigator; the model only loads data and renders the current screen.
type browser struct {
	ctx context.Context
	app *app
	nav *client.Navigator

	results  list.Model
	email    textinput.Model
	password textinput.Model

	profile  *models.ArtisanProfile
	requests []models.ClientRequest
	loading  bool
	status   string
	err      error
}

func newBrowser(ctx context.Context, a *app) *browser {
	results := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	results.Title = "Artisans"
	results.SetShowHelp(false)
	results.DisableQuitKeybindings()
	results.Styles.Title = titleStyle

	email := textinput.New()
	email.Placeholder = "email"
	_ = email.Cursor.SetMode(cursor.CursorStatic)
	password := textinput.New()
	password.Placeholder = "mot de passe"
	password.EchoMode = textinput.EchoPassword
	_ = password.Cursor.SetMode(cursor.CursorStatic)

	return &browser{
		ctx:      ctx,
		app:      a,
		nav:      client.NewNavigator(),
		results:  results,
		email:    email,
		password: password,
	}
}

func (m *browser) Init() tea.Cmd { return nil }

func (m *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.results.SetSize(msg.Width, msg.Height-4)
		return m, nil
	case errMsg:
		m.loading = false
		m.err = msg.err
		m.app.logger.Debug("browse request failed", zap.Error(msg.err))
		return m, nil
	case artisansLoadedMsg:
		m.loading = false
		return m, m.showResults(msg.artisans)
	case loggedInMsg:
		m.loading = false
		m.password.SetValue("")
		return m, m.enterDashboard()
	case profileLoadedMsg:
		m.loading = false
		m.profile = msg.profile
		return m, nil
	case requestsLoadedMsg:
		m.loading = false
		m.requests = msg.requests
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *browser) dispatch(e client.Event) {
	if err := m.nav.Dispatch(e); err != nil {
		m.err = err
	}
}

func (m *browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.nav.Screen() {
	case client.ScreenHome:
		switch key {
		case "q":
			return m, tea.Quit
		case "s", "enter":
			m.dispatch(client.Event{Kind: client.EventOpenSearch})
		case "l":
			m.dispatch(client.Event{Kind: client.EventOpenLogin})
			if m.app.auth.IsAuthenticated() {
				return m, m.enterDashboard()
			}
			return m, m.email.Focus()
		default:
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(models.Catalog) {
				trade := models.Catalog[key[0]-'1'].Name
				m.dispatch(client.Event{Kind: client.EventOpenSearch, Category: trade})
			}
		}

	case client.ScreenSearchCriteria:
		c := m.nav.Criteria()
		switch key {
		case "esc":
			m.dispatch(client.Event{Kind: client.EventBack})
			return m, nil
		case "enter":
			m.loading = true
			return m, m.loadArtisans(c.Category)
		case "c":
			c.Category = next(categoryOptions(), c.Category)
		case "a":
			c.Filters.Availability = next(availabilityOptions, c.Filters.Availability)
		case "r":
			c.Filters.MinRating = next(ratingOptions, c.Filters.MinRating)
		case "p":
			c.Filters.PriceRange = next(priceOptions, c.Filters.PriceRange)
		case "d":
			c.Filters.MaxDistance = next(distanceOptions, c.Filters.MaxDistance)
		default:
			return m, nil
		}
		m.dispatch(client.Event{Kind: client.EventUpdateCriteria, Criteria: &c})

	case client.ScreenResultList:
		if m.results.FilterState() != list.Filtering {
			switch key {
			case "esc":
				m.dispatch(client.Event{Kind: client.EventBack})
				return m, nil
			case "enter", "w":
				item, ok := m.results.SelectedItem().(artisanItem)
				if !ok {
					return m, nil
				}
				kind := client.EventSelectArtisan
				if key == "w" {
					kind = client.EventContact
				}
				m.dispatch(client.Event{Kind: kind, Artisan: &item.artisan})
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case client.ScreenProfileDetail:
		switch key {
		case "esc":
			m.dispatch(client.Event{Kind: client.EventBack})
		case "c", "enter":
			m.dispatch(client.Event{Kind: client.EventContact})
		}

	case client.ScreenContact:
		switch key {
		case "esc":
			m.dispatch(client.Event{Kind: client.EventBack})
		case "enter":
			m.dispatch(client.Event{Kind: client.EventComplete})
		}

	case client.ScreenLogin:
		switch key {
		case "esc":
			m.email.Blur()
			m.password.Blur()
			m.dispatch(client.Event{Kind: client.EventBack})
			return m, nil
		case "tab", "shift+tab":
			return m, m.toggleLoginFocus()
		case "enter":
			if m.email.Focused() {
				return m, m.toggleLoginFocus()
			}
			m.loading = true
			return m, m.login(m.email.Value(), m.password.Value())
		}
		var cmd tea.Cmd
		if m.email.Focused() {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd

	case client.ScreenDashboard:
		switch key {
		case "q":
			return m, tea.Quit
		case "p":
			m.dispatch(client.Event{Kind: client.EventOpenProfile})
			return m, m.loadProfile()
		case "a":
			m.dispatch(client.Event{Kind: client.EventOpenAvailability})
			return m, m.loadProfile()
		case "r":
			m.dispatch(client.Event{Kind: client.EventOpenRequests})
			m.loading = true
			return m, m.loadRequests()
		case "o":
			if err := m.app.auth.Logout(); err != nil {
				m.err = err
				return m, nil
			}
			m.profile, m.requests = nil, nil
			m.dispatch(client.Event{Kind: client.EventLogout})
		}

	case client.ScreenAvailability:
		switch key {
		case "esc":
			m.dispatch(client.Event{Kind: client.EventBack})
		case "1", "2", "3":
			value := []string{models.AvailabilityAvailable, models.AvailabilitySoon, models.AvailabilityBusy}[key[0]-'1']
			m.loading = true
			return m, m.setAvailability(value)
		}

	case client.ScreenProfileEdit, client.ScreenRequestsList:
		if key == "esc" {
			m.dispatch(client.Event{Kind: client.EventBack})
		}
	}
	return m, nil
}

func (m *browser) toggleLoginFocus() tea.Cmd {
	if m.email.Focused() {
		m.email.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.email.Focus()
}

func (m *browser) showResults(artisans []models.ArtisanProfile) tea.Cmd {
	found := m.nav.Criteria().Apply(artisans)
	items := make([]list.Item, len(found))
	for i := range found {
		items[i] = artisanItem{artisan: found[i]}
	}
	m.status = fmt.Sprintf("%d artisan(s)", len(found))
	cmd := m.results.SetItems(items)
	m.dispatch(client.Event{Kind: client.EventSearch})
	return cmd
}

func (m *browser) enterDashboard() tea.Cmd {
	m.email.Blur()
	m.password.Blur()
	m.dispatch(client.Event{Kind: client.EventLoggedIn})
	return m.loadProfile()
}

func (m *browser) loadArtisans(trade string) tea.Cmd {
	return func() tea.Msg {
		found, err := m.app.api.ListArtisans(m.ctx, trade, false)
		if err != nil {
			return errMsg{err}
		}
		return artisansLoadedMsg{found}
	}
}

func (m *browser) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.auth.Login(m.ctx, email, password); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{}
	}
}

func (m *browser) loadProfile() tea.Cmd {
	id, err := m.app.requireLogin()
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return func() tea.Msg {
		p, err := m.app.api.GetArtisan(m.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return profileLoadedMsg{p}
	}
}

func (m *browser) loadRequests() tea.Cmd {
	id, err := m.app.requireLogin()
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	token := m.app.auth.Token()
	return func() tea.Msg {
		reqs, err := m.app.api.ListRequests(m.ctx, token, id)
		if err != nil {
			return errMsg{err}
		}
		return requestsLoadedMsg{reqs}
	}
}

func (m *browser) setAvailability(value string) tea.Cmd {
	id, err := m.app.requireLogin()
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	token := m.app.auth.Token()
	return func() tea.Msg {
		p, err := m.app.api.UpdateArtisan(m.ctx, token, id, map[string]any{"availability": value})
		if err != nil {
			return errMsg{err}
		}
		return profileLoadedMsg{p}
	}
}

func (m *browser) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("ArtisanConnect · Lubumbashi"))
	sb.WriteString("\n\n")
	sb.WriteString(m.screenView())
	sb.WriteString("\n\n")
	if m.loading {
		sb.WriteString(mutedStyle.Render("Chargement…") + "\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	sb.WriteString(mutedStyle.Render(m.help()))
	return sb.String()
}

func orAny(v string) string {
	if v == "" {
		return "tous"
	}
	return v
}

func (m *browser) screenView() string {
	switch m.nav.Screen() {
	case client.ScreenHome:
		var sb strings.Builder
		sb.WriteString("Trouvez un artisan de confiance près de chez vous.\n\n")
		for i, t := range models.Catalog {
			fmt.Fprintf(&sb, "  %d. %s %s\n", i+1, t.Icon, t.Name)
		}
		return sb.String()

	case client.ScreenSearchCriteria:
		c := m.nav.Criteria()
		rating := "toutes"
		if c.Filters.MinRating > 0 {
			rating = fmt.Sprintf("%.1f+", c.Filters.MinRating)
		}
		rows := []string{
			"[c] Métier:         " + orAny(c.Category),
			"[a] Disponibilité:  " + orAny(c.Filters.Availability),
			"[r] Note minimale:  " + rating,
			"[p] Tarif:          " + orAny(c.Filters.PriceRange),
			"[d] Distance max:   " + orAny(c.Filters.MaxDistance),
		}
		return strings.Join(rows, "\n")

	case client.ScreenResultList:
		return m.results.View() + "\n" + mutedStyle.Render(m.status)

	case client.ScreenProfileDetail:
		if a := m.nav.Selected(); a != nil {
			return artisanCard(a)
		}

	case client.ScreenContact:
		a := m.nav.Selected()
		if a == nil {
			return ""
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			"Contacter "+titleStyle.Render(a.Name),
			"",
			"WhatsApp: "+client.WhatsAppURL(whatsappNumber(a), client.Greeting(a.Name)),
			"Appel:    "+client.TelURL(a.Phone),
		)

	case client.ScreenLogin:
		return "Espace artisan\n\n" + m.email.View() + "\n" + m.password.View()

	case client.ScreenDashboard:
		user := m.app.auth.User()
		if user == nil {
			return ""
		}
		s := "Bonjour " + user.Name
		if m.profile != nil {
			s += "\nDisponibilité: " + availabilityBadge(m.profile.Availability)
		}
		return s

	case client.ScreenProfileEdit:
		if m.profile == nil {
			return ""
		}
		return artisanCard(m.profile) + "\n" + mutedStyle.Render("Modifier: artisans profile set key=value")

	case client.ScreenAvailability:
		current := ""
		if m.profile != nil {
			current = availabilityBadge(m.profile.Availability)
		}
		return "Disponibilité actuelle: " + current + "\n\n" +
			"  1. " + models.AvailabilityAvailable + "\n" +
			"  2. " + models.AvailabilitySoon + "\n" +
			"  3. " + models.AvailabilityBusy

	case client.ScreenRequestsList:
		var sb strings.Builder
		printRequests(&sb, m.requests)
		return sb.String()
	}
	return ""
}

func (m *browser) help() string {
	switch m.nav.Screen() {
	case client.ScreenHome:
		return "s rechercher · 1-6 métier · l espace artisan · q quitter"
	case client.ScreenSearchCriteria:
		return "c/a/r/p/d changer · entrée rechercher · esc retour"
	case client.ScreenResultList:
		return "entrée profil · w contacter · / filtrer · esc retour"
	case client.ScreenProfileDetail:
		return "c contacter · esc retour"
	case client.ScreenContact:
		return "entrée terminer · esc retour"
	case client.ScreenLogin:
		return "tab champ suivant · entrée valider · esc retour"
	case client.ScreenDashboard:
		return "p profil · a disponibilité · r demandes · o déconnexion · q quitter"
	case client.ScreenAvailability:
		return "1-3 choisir · esc retour"
	default:
		return "esc retour"
	}
}
