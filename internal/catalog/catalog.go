package catalog

// The storefront sells a fixed catalog. It lives in process memory on
// purpose: comment validation and product pages read it directly, the
// database only ever stores snapshots of it inside order items.

type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	InStock     bool    `json:"inStock"`
}

var Products = []Product{
	{ID: 1, Title: "Nebula RTX 4090 OC", Description: "24 Go GDDR6X, triple ventilateur, overclock usine", Price: 1899, ImageURL: "/images/rtx-4090.png", InStock: true},
	{ID: 2, Title: "Nebula RTX 4080 Super", Description: "16 Go GDDR6X, refroidissement hybride", Price: 1149, ImageURL: "/images/rtx-4080s.png", InStock: true},
	{ID: 3, Title: "Nebula RX 7900 XTX", Description: "24 Go GDDR6, architecture RDNA 3", Price: 999, ImageURL: "/images/rx-7900xtx.png", InStock: true},
	{ID: 4, Title: "Nebula RTX 4070 Ti", Description: "12 Go GDDR6X, format compact", Price: 829, ImageURL: "/images/rtx-4070ti.png", InStock: true},
	{ID: 5, Title: "Nebula RX 7800 XT", Description: "16 Go GDDR6, double ventilateur", Price: 549, ImageURL: "/images/rx-7800xt.png", InStock: true},
	{ID: 6, Title: "Nebula Arc A770 LE", Description: "16 Go GDDR6, édition limitée", Price: 349, ImageURL: "/images/arc-a770.png", InStock: false},
	{ID: 7, Title: "Nebula RTX 4060", Description: "8 Go GDDR6, basse consommation", Price: 329, ImageURL: "/images/rtx-4060.png", InStock: true},
	{ID: 8, Title: "Nebula RX 6600", Description: "8 Go GDDR6, 1080p gaming", Price: 219, ImageURL: "/images/rx-6600.png", InStock: true},
}

func ByID(id int) (Product, bool) {
	for _, p := range Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
