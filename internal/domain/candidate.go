package domain

// A street-art piece eligible for inclusion in a walking route.
// Candidates are owned by the catalog; route generation treats a list of
// them as a read-only snapshot.
type Candidate struct {
	ID       string
	Name     string
	ArtistID string
	Point    GeoPoint
}

// An artist in the catalog. Routes may be restricted to a set of artists.
type Artist struct {
	ID   string
	Name string
}
