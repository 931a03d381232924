package memory

import "github.com/mosescsmith/cbb/internal/domain/alias"

// SeedAliases covers the chronic mismatches between the schedule
// feed's slugs and the ratings table's names. Deployments extend this
// through the alias endpoints.
func SeedAliases() alias.Mapping {
	return alias.Mapping{
		"uconn":          "connecticut",
		"ole-miss":       "mississippi",
		"nc-state":       "north-carolina-st",
		"saint-marys":    "st-marys-ca",
		"usc":            "southern-california",
		"smu":            "southern-methodist",
		"vcu":            "virginia-commonwealth",
		"umass":          "massachusetts",
		"unlv":           "nevada-las-vegas",
		"penn":           "pennsylvania",
		"pitt":           "pittsburgh",
		"st-johns":       "st-johns-ny",
		"miami":          "miami-fl",
		"loyola-chicago": "loyola-il",
	}
}
