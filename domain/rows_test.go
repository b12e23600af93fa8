package domain

import (
	"testing"
)

func TestPropertyFromRow(t *testing.T) {
	row := map[string]any{
		"id":        "p1",
		"title":     "Loft",
		"price":     float64(900),
		"bedrooms":  float64(2),
		"area":      nil,
		"latitude":  "-1.2921",
		"image_url": "https://img.example.com/p1.jpg",
		"owner_id":  "u1",
	}

	p := PropertyFromRow(row)
	if p.ID != "p1" || p.Title != "Loft" || p.OwnerID != "u1" {
		t.Errorf("string fields not decoded: %+v", p)
	}
	if p.Price == nil || *p.Price != 900 {
		t.Errorf("Price = %v, want 900", p.Price)
	}
	if p.Bedrooms == nil || *p.Bedrooms != 2 {
		t.Errorf("Bedrooms = %v, want 2", p.Bedrooms)
	}
	if p.Area != nil {
		t.Errorf("Area = %v, want nil for a null column", p.Area)
	}
	if p.Bathrooms != nil {
		t.Errorf("Bathrooms = %v, want nil for a missing column", p.Bathrooms)
	}
	if p.Latitude == nil || *p.Latitude != -1.2921 {
		t.Errorf("Latitude = %v, want numeric text decoded", p.Latitude)
	}
}

func TestFavoriteEdgeRow(t *testing.T) {
	edge := FavoriteEdge{UserID: "u1", PropertyID: "p1", UserType: RoleTenant}
	row := edge.Row()
	if row["user_id"] != "u1" || row["property_id"] != "p1" || row["user_type"] != "tenant" {
		t.Errorf("Row() = %+v", row)
	}
}

func TestSortPropertiesByPrice(t *testing.T) {
	price := func(f float64) *float64 { return &f }
	build := func() []Property {
		return []Property{
			{ID: "mid", Price: price(1000)},
			{ID: "none"},
			{ID: "low", Price: price(500)},
			{ID: "high", Price: price(2000)},
		}
	}
	ids := func(props []Property) string {
		out := ""
		for _, p := range props {
			out += p.ID + " "
		}
		return out
	}

	asc := build()
	SortPropertiesByPrice(asc, true)
	if got := ids(asc); got != "low mid high none " {
		t.Errorf("ascending order = %q", got)
	}

	desc := build()
	SortPropertiesByPrice(desc, false)
	if got := ids(desc); got != "high mid low none " {
		t.Errorf("descending order = %q", got)
	}
}
