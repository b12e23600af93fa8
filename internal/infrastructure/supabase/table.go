package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// Table implements domain.TableAPI against the PostgREST surface. Filters
// encode as `column=eq.value` query parameters.
type Table struct {
	c *Client
}

// NewTable creates the table gateway.
func NewTable(c *Client) domain.TableAPI {
	return &Table{c: c}
}

// Select implements domain.TableAPI.
func (t *Table) Select(ctx context.Context, table string, columns []string, filters domain.Filters) ([]map[string]any, error) {
	query := url.Values{}
	if len(columns) > 0 {
		query.Set("select", strings.Join(columns, ","))
	}
	encodeFilters(query, filters)

	var rows []map[string]any
	if err := t.c.do(ctx, "GET", "/rest/v1/"+table, query, nil, &rows, nil); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert implements domain.TableAPI.
func (t *Table) Insert(ctx context.Context, table string, row map[string]any) error {
	headers := map[string]string{"Prefer": "return=minimal"}
	return t.c.do(ctx, "POST", "/rest/v1/"+table, nil, row, nil, headers)
}

// Update implements domain.TableAPI.
func (t *Table) Update(ctx context.Context, table string, row map[string]any, filters domain.Filters) error {
	query := url.Values{}
	encodeFilters(query, filters)
	headers := map[string]string{"Prefer": "return=minimal"}
	return t.c.do(ctx, "PATCH", "/rest/v1/"+table, query, row, nil, headers)
}

// Delete implements domain.TableAPI.
func (t *Table) Delete(ctx context.Context, table string, filters domain.Filters) error {
	query := url.Values{}
	encodeFilters(query, filters)
	return t.c.do(ctx, "DELETE", "/rest/v1/"+table, query, nil, nil, nil)
}

func encodeFilters(query url.Values, filters domain.Filters) {
	for column, value := range filters {
		query.Set(column, "eq."+fmt.Sprint(value))
	}
}
