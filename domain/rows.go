package domain

import (
	"sort"
	"strconv"
)

// PropertiesTable and FavoritesTable name the backend tables the client
// reads and writes. Their schemas are owned by the backend, not by us.
const (
	PropertiesTable = "properties"
	FavoritesTable  = "favorites"
)

// PropertyColumns is the column set the client selects for listings.
var PropertyColumns = []string{
	"id", "title", "type", "price", "bedrooms", "bathrooms", "area",
	"location", "phone", "email", "description", "amenities",
	"latitude", "longitude", "full_address", "image_url", "image_path",
	"owner_id", "landlord",
}

// PropertyFromRow decodes a gateway row into a Property. Missing or null
// columns stay at their zero/absent values.
func PropertyFromRow(row map[string]any) Property {
	return Property{
		ID:          rowString(row, "id"),
		Title:       rowString(row, "title"),
		Type:        rowString(row, "type"),
		Price:       rowFloat(row, "price"),
		Bedrooms:    rowInt(row, "bedrooms"),
		Bathrooms:   rowInt(row, "bathrooms"),
		Area:        rowFloat(row, "area"),
		Location:    rowString(row, "location"),
		Phone:       rowString(row, "phone"),
		Email:       rowString(row, "email"),
		Description: rowString(row, "description"),
		Amenities:   rowString(row, "amenities"),
		Latitude:    rowFloat(row, "latitude"),
		Longitude:   rowFloat(row, "longitude"),
		FullAddress: rowString(row, "full_address"),
		ImageURL:    rowString(row, "image_url"),
		ImagePath:   rowString(row, "image_path"),
		OwnerID:     rowString(row, "owner_id"),
		Landlord:    rowString(row, "landlord"),
	}
}

// PropertiesFromRows decodes a result set, preserving backend order.
func PropertiesFromRows(rows []map[string]any) []Property {
	out := make([]Property, 0, len(rows))
	for _, r := range rows {
		out = append(out, PropertyFromRow(r))
	}
	return out
}

// Row encodes the favorite edge for insertion.
func (f FavoriteEdge) Row() map[string]any {
	return map[string]any{
		"user_id":     f.UserID,
		"property_id": f.PropertyID,
		"user_type":   string(f.UserType),
	}
}

// SortPropertiesByPrice orders a slice by price. Records without a price sort
// last in both directions.
func SortPropertiesByPrice(props []Property, ascending bool) {
	sort.SliceStable(props, func(i, j int) bool {
		a, b := props[i].Price, props[j].Price
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if ascending {
			return *a < *b
		}
		return *a > *b
	})
}

func rowString(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func rowFloat(row map[string]any, key string) *float64 {
	switch v := row[key].(type) {
	case float64:
		f := v
		return &f
	case int64:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

func rowInt(row map[string]any, key string) *int {
	if f := rowFloat(row, key); f != nil {
		i := int(*f)
		return &i
	}
	return nil
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
