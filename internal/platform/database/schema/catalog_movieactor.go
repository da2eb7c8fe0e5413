package schema

// CatalogMovieActorTable represents the 'catalog.movieactor' table
type CatalogMovieActorTable struct {
	Table   string
	MovieID string
	ActorID string
}

// CatalogMovieActor is the schema definition for catalog.movieactor
var CatalogMovieActor = CatalogMovieActorTable{
	Table:   "catalog.movieactor",
	MovieID: "movieid",
	ActorID: "actorid",
}
