package domain

// Represents a single visited piece in a generated walking route.
// Order is the 0-based position of the stop in the route.
type Stop struct {
	ID    string
	Name  string
	Point GeoPoint
	Order int
}

// Configuration for one route generation.
//
// A nil BudgetMinutes means the walk is unbounded. A non-nil budget is always
// enforced, including zero and negative values. An empty ArtistIDs list
// disables the artist filter. A nil Start seeds the route with the first
// eligible candidate.
type RouteRequest struct {
	BudgetMinutes *float64
	ArtistIDs     []string
	Start         *GeoPoint
}

// Represents the generated walking route.
// EstimatedDuration is the cumulative walking time in minutes between
// consecutive stops (and from Start to the first stop when Start is set).
type RouteResult struct {
	Stops             []Stop
	EstimatedDuration float64
}
