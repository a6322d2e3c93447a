package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

// HouseIndex keeps a searchable copy of listings in Elasticsearch.
type HouseIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewHouseIndex(es *elasticsearch.Client, index string) *HouseIndex {
	return &HouseIndex{ES: es, Index: index}
}

// houseDoc is the indexed projection of a listing.
type houseDoc struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
	PropertyType string  `json:"property_type"`
	Price        int     `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

func toDoc(h *entity.House) houseDoc {
	return houseDoc{
		ID:           h.ID,
		Title:        h.Title,
		Description:  h.Description,
		City:         h.City,
		State:        h.State,
		PostalCode:   h.PostalCode,
		PropertyType: string(h.PropertyType),
		Price:        h.Price,
		Bedrooms:     h.Bedrooms,
		Bathrooms:    h.Bathrooms,
		IsActive:     h.IsActive,
		CreatedAt:    h.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (x *HouseIndex) Index(ctx context.Context, h *entity.House) error {
	b, err := json.Marshal(toDoc(h))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: h.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", h.ID, res.Status())
	}
	return nil
}

// SearchBody builds a multi_match query over the text fields restricted to
// active listings.
func SearchBody(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "city^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_active": true},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
}

func (x *HouseIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	b, err := json.Marshal(SearchBody(q, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}
	return decodeHitIDs(res.Body)
}
