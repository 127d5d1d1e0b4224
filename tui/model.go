// Package tui is the terminal console: a bubbletea program whose views
// mirror the back-office pages (dashboard, vehicles, customers, rentals,
// maintenance, reports) behind the login view and route guard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rentdesk/rentdesk/api"
	"github.com/rentdesk/rentdesk/auth"
	apperrors "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/routes"
)

// viewDataMsg delivers one view's fetched collection. seq is the navigation
// sequence at issue time; a message whose seq no longer matches the
// navigator is stale and must not touch the current view.
type viewDataMsg struct {
	seq   uint64
	route string
	data  any
	err   error
}

// loginResultMsg delivers the outcome of an asynchronous login call.
type loginResultMsg struct {
	err error
}

// dashboardData bundles the two aggregate fetches behind the landing view.
type dashboardData struct {
	analytics *api.DashboardAnalytics
	fleet     *api.FleetStatus
}

// reportData bundles the reports view payload.
type reportData struct {
	revenue *api.RevenueReport
}

// Model is the top-level bubbletea model for the console.
type Model struct {
	client  *api.Client
	manager *auth.Manager
	nav     *routes.Navigator
	theme   Theme
	keys    KeyMap
	logger  zerolog.Logger
	nowTime func() time.Time

	width  int
	height int

	login     loginForm
	loading   bool
	errNotice string

	vehicles    []api.Vehicle
	customers   []api.Customer
	rentals     []api.Rental
	maintenance []api.Maintenance
	dashboard   dashboardData
	report      reportData
}

// NewModel wires the console over the client, session manager and navigator.
func NewModel(client *api.Client, manager *auth.Manager, nav *routes.Navigator, logger zerolog.Logger) Model {
	return Model{
		client:  client,
		manager: manager,
		nav:     nav,
		theme:   DefaultTheme,
		keys:    DefaultKeyMap,
		logger:  logger.With().Str("component", "tui").Logger(),
		nowTime: time.Now,
	}
}

// Init implements tea.Model. When the stored session already authenticates
// the operator, the landing view starts loading immediately.
func (m Model) Init() tea.Cmd {
	if routes.IsProtected(m.nav.Current()) {
		return m.fetchCurrent()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case viewDataMsg:
		return m.handleViewData(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.onLogin() {
		_, submit := m.login.handleKey(msg)
		if submit {
			m.login.busy = true
			m.login.errText = ""
			return m, m.loginCmd(string(m.login.username), string(m.login.password))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(routes.RouteDashboard)
	case key.Matches(msg, m.keys.Vehicles):
		return m.navigate(routes.RouteVehicles)
	case key.Matches(msg, m.keys.Customers):
		return m.navigate(routes.RouteCustomers)
	case key.Matches(msg, m.keys.Rentals):
		return m.navigate(routes.RouteRentals)
	case key.Matches(msg, m.keys.Maintenance):
		return m.navigate(routes.RouteMaintenance)
	case key.Matches(msg, m.keys.Reports):
		return m.navigate(routes.RouteReports)
	case key.Matches(msg, m.keys.Refresh):
		return m.reload()
	case key.Matches(msg, m.keys.Logout):
		if err := m.manager.Logout(); err != nil {
			m.logger.Warn().Err(err).Msg("logout failed")
		}
		m.login.reset()
		m.loading = false
		m.errNotice = ""
		return m, nil
	}
	return m, nil
}

// navigate moves to target through the guard. Landing on a protected view
// starts its fetch; landing on the login detour just renders the form.
func (m Model) navigate(target string) (tea.Model, tea.Cmd) {
	landed, err := m.nav.Go(target)
	if err != nil {
		m.errNotice = err.Error()
		return m, nil
	}
	m.errNotice = ""
	if routes.IsProtected(landed) {
		return m.reload()
	}
	m.login.reset()
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.errNotice = ""
	return m, m.fetchCurrent()
}

// fetchCurrent issues the current view's fetch, tagged with the navigation
// sequence so a stale response is dropped after the operator moves on.
func (m Model) fetchCurrent() tea.Cmd {
	route := m.nav.Current()
	seq := m.nav.Seq()
	client := m.client

	return func() tea.Msg {
		ctx := context.Background()
		var (
			data any
			err  error
		)
		switch routes.Base(route) {
		case routes.RouteDashboard:
			var payload dashboardData
			payload.analytics, err = client.DashboardAnalytics(ctx)
			if err == nil {
				payload.fleet, err = client.FleetStatus(ctx)
			}
			data = payload
		case routes.RouteVehicles:
			data, err = client.Vehicles(ctx, api.VehicleFilter{})
		case routes.RouteCustomers:
			data, err = client.Customers(ctx)
		case routes.RouteRentals:
			data, err = client.Rentals(ctx, api.RentalFilter{})
		case routes.RouteMaintenance:
			data, err = client.MaintenanceJobs(ctx)
		case routes.RouteReports:
			var payload reportData
			payload.revenue, err = client.RevenueAnalytics(ctx, "month")
			data = payload
		default:
			return nil
		}
		return viewDataMsg{seq: seq, route: route, data: data, err: err}
	}
}

func (m Model) handleViewData(msg viewDataMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.nav.Seq() {
		m.logger.Debug().Str("route", msg.route).Msg("dropping stale view data")
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		if errors.Is(msg.err, apperrors.ErrSessionExpired) {
			// The pipeline already cleared the session and moved the
			// navigator to the login detour; rendering catches up here.
			m.login.reset()
			return m, nil
		}
		// Non-auth failures recover locally: log, fall back to an empty
		// collection, keep the view rendering.
		m.logger.Warn().Err(msg.err).Str("route", msg.route).Msg("view fetch failed")
		m.errNotice = fmt.Sprintf("could not load data: %v", msg.err)
		m.clearViewData(msg.route)
		return m, nil
	}

	m.errNotice = ""
	switch data := msg.data.(type) {
	case dashboardData:
		m.dashboard = data
	case []api.Vehicle:
		m.vehicles = data
	case []api.Customer:
		m.customers = data
	case []api.Rental:
		m.rentals = data
	case []api.Maintenance:
		m.maintenance = data
	case reportData:
		m.report = data
	}
	return m, nil
}

func (m *Model) clearViewData(route string) {
	switch routes.Base(route) {
	case routes.RouteDashboard:
		m.dashboard = dashboardData{}
	case routes.RouteVehicles:
		m.vehicles = []api.Vehicle{}
	case routes.RouteCustomers:
		m.customers = []api.Customer{}
	case routes.RouteRentals:
		m.rentals = []api.Rental{}
	case routes.RouteMaintenance:
		m.maintenance = []api.Maintenance{}
	case routes.RouteReports:
		m.report = reportData{}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		_, err := manager.Login(context.Background(), username, password)
		return loginResultMsg{err: err}
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.errText = loginErrorText(msg.err)
		return m, nil
	}
	m.nav.LoginSucceeded()
	m.login.reset()
	return m.reload()
}

// loginErrorText maps the distinct login failures to what the form shows.
func loginErrorText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, apperrors.ErrTimeout):
		return "The server did not respond. Please try again."
	case errors.Is(err, apperrors.ErrServerError):
		return "The server reported an error. Please try again later."
	default:
		return fmt.Sprintf("Sign in failed: %v", err)
	}
}

func (m Model) onLogin() bool {
	return !routes.IsProtected(m.nav.Current())
}
