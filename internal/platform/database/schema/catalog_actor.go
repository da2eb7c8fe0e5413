package schema

// CatalogActorTable represents the 'catalog.actor' table
type CatalogActorTable struct {
	Table    string
	ID       string
	Name     string
	Bio      string
	PhotoURL string
}

// CatalogActor is the schema definition for catalog.actor
var CatalogActor = CatalogActorTable{
	Table:    "catalog.actor",
	ID:       "id",
	Name:     "name",
	Bio:      "bio",
	PhotoURL: "photourl",
}
