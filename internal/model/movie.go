package model

// Movie represents a single catalog entry in the `movies` collection.
// Identifiers are caller-supplied integers, not generated ObjectIDs, so
// the document `_id` maps directly onto the numeric ID field.
//
// Fields:
//  ID       – unique numeric identifier (movies._id).
//  Title    – movie title.
//  Director – director name.
//  Year     – release year.
//  Genre    – free-form genre label.
//  Sinopsis – short plot summary.
//  Cover    – URL of the cover image.
//  Rating   – numeric rating (e.g. 8.8).
type Movie struct {
	ID       int64   `json:"id" bson:"_id"`
	Title    string  `json:"title" bson:"title"`
	Director string  `json:"director" bson:"director"`
	Year     int     `json:"year" bson:"year"`
	Genre    string  `json:"genre" bson:"genre"`
	Sinopsis string  `json:"sinopsis" bson:"sinopsis"`
	Cover    string  `json:"cover" bson:"cover"`
	Rating   float64 `json:"rating" bson:"rating"`
}
