// Package routes is the console's navigation surface: the route table, the
// guard that decides whether a view may render, and the navigator that
// tracks where the operator is and where they were heading when a login
// detour interrupted them.
package routes

import "strings"

// Route path constants
// All console routes are defined here to ensure consistency and prevent typos
const (
	RouteLogin       = "/login"
	RouteDashboard   = "/"
	RouteVehicles    = "/vehicles"
	RouteCustomers   = "/customers"
	RouteRentals     = "/rentals"
	RouteMaintenance = "/maintenance"
	RouteReports     = "/reports"
)

// All routes in display order.
var All = []string{
	RouteDashboard,
	RouteVehicles,
	RouteCustomers,
	RouteRentals,
	RouteMaintenance,
	RouteReports,
	RouteLogin,
}

// Known reports whether the path (ignoring any query) is a console route.
func Known(path string) bool {
	base := basePath(path)
	for _, route := range All {
		if base == route {
			return true
		}
	}
	return false
}

// IsProtected reports whether the path requires an authenticated session.
// Everything except the login view is protected.
func IsProtected(path string) bool {
	return basePath(path) != RouteLogin
}

// Base strips the query from a route, leaving the path that selects a view.
func Base(path string) string {
	return basePath(path)
}

func basePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
