package dto

type ArtPieceResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ArtistID string  `json:"artist_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type ListArtPiecesResponse struct {
	ArtPieces []ArtPieceResponse `json:"art_pieces"`
}

type ArtistResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListArtistsResponse struct {
	Artists []ArtistResponse `json:"artists"`
}
