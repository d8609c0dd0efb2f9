package model

// Series represents an entry in the `series` collection.  It carries the
// same fields as Movie plus season and episode counts.
type Series struct {
	ID       int64   `json:"id" bson:"_id"`
	Title    string  `json:"title" bson:"title"`
	Director string  `json:"director" bson:"director"`
	Year     int     `json:"year" bson:"year"`
	Genre    string  `json:"genre" bson:"genre"`
	Sinopsis string  `json:"sinopsis" bson:"sinopsis"`
	Cover    string  `json:"cover" bson:"cover"`
	Seasons  int     `json:"seasons" bson:"seasons"`
	Episodes int     `json:"episodes" bson:"episodes"`
	Rating   float64 `json:"rating" bson:"rating"`
}
