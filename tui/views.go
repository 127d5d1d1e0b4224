package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rentdesk/rentdesk/internal/utils"
	"github.com/rentdesk/rentdesk/routes"
)

var tabRoutes = []struct {
	route string
	label string
}{
	{routes.RouteDashboard, "1 Dashboard"},
	{routes.RouteVehicles, "2 Vehicles"},
	{routes.RouteCustomers, "3 Customers"},
	{routes.RouteRentals, "4 Rentals"},
	{routes.RouteMaintenance, "5 Maintenance"},
	{routes.RouteReports, "6 Reports"},
}

// View implements tea.Model.
func (m Model) View() string {
	if m.onLogin() {
		return "\n" + m.login.view(m.theme, m.nav.SessionExpired()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.tabBar() + "\n\n")

	if m.errNotice != "" {
		b.WriteString(m.theme.Error.Render(m.errNotice) + "\n\n")
	}
	if m.loading {
		b.WriteString(m.theme.Muted.Render("Loading…") + "\n\n")
	}

	switch routes.Base(m.nav.Current()) {
	case routes.RouteDashboard:
		b.WriteString(m.dashboardView())
	case routes.RouteVehicles:
		b.WriteString(m.vehiclesView())
	case routes.RouteCustomers:
		b.WriteString(m.customersView())
	case routes.RouteRentals:
		b.WriteString(m.rentalsView())
	case routes.RouteMaintenance:
		b.WriteString(m.maintenanceView())
	case routes.RouteReports:
		b.WriteString(m.reportsView())
	}

	b.WriteString("\n" + m.statusBar())
	return b.String()
}

func (m Model) tabBar() string {
	current := routes.Base(m.nav.Current())
	tabs := make([]string, 0, len(tabRoutes))
	for _, tab := range tabRoutes {
		style := m.theme.TabIdle
		if tab.route == current {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(tab.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) statusBar() string {
	parts := []string{"r: refresh", "l: logout", "q: quit"}
	if user, ok := m.manager.CurrentUser(); ok {
		who := "signed in as " + user.Username
		if user.ExpiresAt != nil {
			who += " · session until " + user.ExpiresAt.Format("15:04")
		}
		parts = append([]string{who}, parts...)
	}
	return m.theme.StatusBar.Render(strings.Join(parts, " · "))
}

func (m Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Fleet overview") + "\n\n")

	overview := m.dashboard.fleet
	if overview != nil {
		o := overview.FleetOverview
		b.WriteString(fmt.Sprintf("  %d vehicles · %d available · %d rented · %d in maintenance · avg rate %.2f\n\n",
			o.TotalVehicles, o.Available, o.Rented, o.InMaintenance, o.AvgDailyRate))
	}

	if analytics := m.dashboard.analytics; analytics != nil && len(analytics.FleetUtilization) > 0 {
		rows := make([][]string, 0, len(analytics.FleetUtilization))
		for _, u := range analytics.FleetUtilization {
			rows = append(rows, []string{u.VehicleType, fmt.Sprintf("%d", u.TotalVehicles),
				fmt.Sprintf("%d", u.RentedCount), fmt.Sprintf("%.1f%%", u.UtilizationRate)})
		}
		b.WriteString(m.renderTable([]string{"Type", "Total", "Rented", "Utilization"}, rows))
	} else if !m.loading {
		b.WriteString(m.theme.Muted.Render("  No analytics available") + "\n")
	}
	return b.String()
}

func (m Model) vehiclesView() string {
	rows := make([][]string, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		rows = append(rows, []string{v.VehicleCode, v.Brand, v.Model,
			utils.Value(v.Type), v.Status, fmt.Sprintf("%.2f", v.DailyRate)})
	}
	return m.collectionView("Vehicles",
		[]string{"Code", "Brand", "Model", "Type", "Status", "Rate/day"}, rows)
}

func (m Model) customersView() string {
	rows := make([][]string, 0, len(m.customers))
	for _, c := range m.customers {
		loyalty := ""
		if c.IsLoyaltyMember {
			loyalty = "yes"
		}
		rows = append(rows, []string{c.CustomerCode, c.FullName(),
			utils.Value(c.Email), utils.Value(c.Phone), loyalty})
	}
	return m.collectionView("Customers",
		[]string{"Code", "Name", "Email", "Phone", "Loyalty"}, rows)
}

func (m Model) rentalsView() string {
	now := m.nowTime()
	rows := make([][]string, 0, len(m.rentals))
	for _, r := range m.rentals {
		rows = append(rows, []string{fmt.Sprintf("%d", r.RentalID), r.CustomerName,
			r.VehicleInfo, r.PickupDate, r.Status, fmt.Sprintf("%.2f", r.AccruedCost(now))})
	}
	return m.collectionView("Rentals",
		[]string{"ID", "Customer", "Vehicle", "Pickup", "Status", "Cost"}, rows)
}

func (m Model) maintenanceView() string {
	rows := make([][]string, 0, len(m.maintenance))
	for _, job := range m.maintenance {
		cost := ""
		if job.Cost != nil {
			cost = fmt.Sprintf("%.2f", *job.Cost)
		}
		rows = append(rows, []string{fmt.Sprintf("%d", job.MaintenanceID), job.VehicleInfo,
			job.Description, job.MaintenanceDate, cost})
	}
	return m.collectionView("Maintenance",
		[]string{"ID", "Vehicle", "Description", "Date", "Cost"}, rows)
}

func (m Model) reportsView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Revenue (monthly)") + "\n\n")

	revenue := m.report.revenue
	if revenue == nil || len(revenue.Data) == 0 {
		if !m.loading {
			b.WriteString(m.theme.Muted.Render("  No revenue data available") + "\n")
		}
		return b.String()
	}

	rows := make([][]string, 0, len(revenue.Data))
	for _, point := range revenue.Data {
		rows = append(rows, []string{point.Period,
			fmt.Sprintf("%.2f", point.Revenue), fmt.Sprintf("%d", point.RentalCount)})
	}
	b.WriteString(m.renderTable([]string{"Period", "Revenue", "Rentals"}, rows))
	b.WriteString(fmt.Sprintf("\n  Total: %.2f over %d rentals\n",
		revenue.TotalRevenue(), revenue.TotalRentals()))
	return b.String()
}

func (m Model) collectionView(title string, headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title) + "\n\n")
	if len(rows) == 0 {
		if !m.loading {
			b.WriteString(m.theme.Muted.Render("  Nothing to show") + "\n")
		}
		return b.String()
	}
	b.WriteString(m.renderTable(headers, rows))
	return b.String()
}

// renderTable lays out rows under headers with columns sized to content.
func (m Model) renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString("  " + m.theme.Header.Render(padRow(headers, widths)) + "\n")
	for _, row := range rows {
		b.WriteString("  " + m.theme.Cell.Render(padRow(row, widths)) + "\n")
	}
	return b.String()
}

func padRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		padded[i] = cell + strings.Repeat(" ", max(0, width-lipgloss.Width(cell)))
	}
	return strings.Join(padded, "  ")
}
