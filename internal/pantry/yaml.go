package pantry

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"meal-planner/internal/recipe"
)

const expiryLayout = "2006-01-02"

type importFile struct {
	Items []importItem `yaml:"items"`
}

type importItem struct {
	Name     string  `yaml:"name"`
	Quantity float64 `yaml:"quantity"`
	Unit     string  `yaml:"unit"`
	Aisle    string  `yaml:"aisle"`
	OnHand   float64 `yaml:"on_hand"`
	Barcode  string  `yaml:"barcode"`
	Expires  string  `yaml:"expires"`
}

// ParseYAML reads a pantry import file of the form
//
//	items:
//	  - name: Olive oil
//	    quantity: 1
//	    unit: bottle
//	    aisle: Pantry
//	    on_hand: 0.5
//	    expires: 2026-12-01
//
// Every item gets a fresh id.
func ParseYAML(r io.Reader) ([]Item, error) {
	var f importFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode pantry file: %w", err)
	}

	items := make([]Item, 0, len(f.Items))
	for i, in := range f.Items {
		if in.Name == "" {
			return nil, fmt.Errorf("pantry item %d: name is required", i+1)
		}

		item := Item{
			ID:             uuid.New(),
			Ingredient:     recipe.NewIngredient(in.Name, in.Quantity, in.Unit, optional(in.Aisle)),
			QuantityOnHand: in.OnHand,
			Barcode:        optional(in.Barcode),
		}
		if in.Expires != "" {
			t, err := time.Parse(expiryLayout, in.Expires)
			if err != nil {
				return nil, fmt.Errorf("pantry item %q: invalid expires date: %w", in.Name, err)
			}
			item.ExpiresOn = &t
		}
		items = append(items, item)
	}
	return items, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
