package domain

// Package is a purchasable service bundle. Prices are paise.
type Package struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
}

type Addon struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

var Packages = []Package{
	{ID: 1, Name: "Starter Package", Price: 2500000, OriginalPrice: 3500000},
	{ID: 2, Name: "Professional Package", Price: 5000000, OriginalPrice: 7000000},
	{ID: 3, Name: "Enterprise Package", Price: 10000000, OriginalPrice: 15000000},
}

var Addons = []Addon{
	{Name: "AI Chatbot", Price: 1500000},
	{Name: "Advanced Analytics", Price: 800000},
	{Name: "Social Media Management", Price: 1200000},
	{Name: "Extra Mobile App", Price: 2500000},
}

// PackageByID returns nil for an unknown id.
func PackageByID(id int64) *Package {
	for i := range Packages {
		if Packages[i].ID == id {
			return &Packages[i]
		}
	}
	return nil
}
