package material

import "sort"

// Catalog material names.
const (
	BlueGem  = "BlueGem"
	WhiteGem = "WhiteGem"
	Metal    = "Metal"
	Gold     = "Gold"
	Stone    = "Stone"
)

// Catalog holds the fixed material descriptors used by the products.
// All entries blend alpha and hide transparent back faces.
var Catalog = map[string]Descriptor{
	// sapphire
	BlueGem: {
		BaseColor: [4]float64{0.05, 0.2, 0.7, 1.0},
		Metallic:  0.0,
		Roughness: 0.05,
		IOR:       1.77,
		Alpha:     AlphaBlend,
	},
	// diamond
	WhiteGem: {
		BaseColor: [4]float64{1.0, 1.0, 1.0, 1.0},
		Metallic:  0.0,
		Roughness: 0.0,
		IOR:       2.42,
		Alpha:     AlphaBlend,
	},
	// silver / white gold
	Metal: {
		BaseColor: [4]float64{0.9, 0.9, 0.95, 1.0},
		Metallic:  1.0,
		Roughness: 0.15,
		Alpha:     AlphaBlend,
	},
	Gold: {
		BaseColor: [4]float64{0.831, 0.686, 0.216, 1.0},
		Metallic:  1.0,
		Roughness: 0.2,
		Alpha:     AlphaBlend,
	},
	Stone: {
		BaseColor: [4]float64{0.8, 0.85, 0.9, 1.0},
		Metallic:  0.0,
		Roughness: 0.1,
		Alpha:     AlphaBlend,
	},
}

// Describe returns the catalog descriptor for name.
func Describe(name string) (Descriptor, bool) {
	d, ok := Catalog[name]
	return d, ok
}

// FromCatalog gets or creates a catalog material in r. It panics on a
// name missing from Catalog, which is a programming error.
func (r *Registry) FromCatalog(name string) *Material {
	d, ok := Catalog[name]
	if !ok {
		panic("material: no catalog entry " + name)
	}
	return r.GetOrCreate(name, d)
}

// CatalogNames returns catalog names sorted alphabetically.
func CatalogNames() []string {
	names := make([]string, 0, len(Catalog))
	for n := range Catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
