package sample

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mmcdole/vista/internal/domain"
)

//go:embed items.json
var itemsJSON []byte

// Items returns the built-in demo gallery, with stable ids
func Items() ([]domain.GalleryItem, error) {
	var items []domain.GalleryItem
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, fmt.Errorf("decode sample items: %w", err)
	}
	return items, nil
}
