package domain

import "slices"

// BuildingTypes is the fixed set of building types the game knows about.
var BuildingTypes = []string{
	"Farm",
	"Academy",
	"Headquarters",
	"LumberMill",
	"Barracks",
}

// Construction time bounds in seconds.
const (
	MinConstructionTime = 30
	MaxConstructionTime = 1800
)

// BuildingConfiguration is a per-building-type tuning record stored in the
// document store. The "one configuration per building type" rule is applied
// by the admin frontend; the store does not enforce it.
type BuildingConfiguration struct {
	ID               string  `bson:"_id" json:"id"`
	BuildingType     string  `bson:"buildingType" json:"buildingType"`
	BuildingCost     float64 `bson:"buildingCost" json:"buildingCost"`
	ConstructionTime int     `bson:"constructionTime" json:"constructionTime"`
}

// ValidBuildingType reports whether t is one of the known building types.
func ValidBuildingType(t string) bool {
	return slices.Contains(BuildingTypes, t)
}
