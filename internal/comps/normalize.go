package comps

import (
	"slices"
	"strconv"

	"github.com/jessysellshomes/card-value-backend/internal/ebay"
	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

// Normalize converts raw Browse API item summaries into comps, dropping
// records that lack a URL or a positive, finite all-in price. Dropped items
// are expected noise in upstream results, not errors.
func Normalize(items []ebay.ItemSummary) []domain.Comp {
	comps := make([]domain.Comp, 0, len(items))
	for i := range items {
		if c := toComp(&items[i]); c.Valid() {
			comps = append(comps, c)
		}
	}
	return comps
}

func toComp(item *ebay.ItemSummary) domain.Comp {
	c := domain.Comp{
		ItemID:       item.ItemID,
		Title:        item.Title,
		Currency:     item.Price.Currency,
		BuyingOption: parseBuyingOption(item.BuyingOptions),
		Condition:    item.Condition,
		EndTime:      item.ItemEndDate,
		URL:          item.ItemWebURL,
	}

	// Absent or unparseable prices coerce to 0 and fail validation later.
	if p, err := strconv.ParseFloat(item.Price.Value, 64); err == nil {
		c.Price = p
	}

	if len(item.ShippingOptions) > 0 {
		if sc := item.ShippingOptions[0].ShippingCost; sc != nil {
			if cost, err := strconv.ParseFloat(sc.Value, 64); err == nil {
				c.Shipping = &cost
			}
		}
	}

	c.AllIn = c.Price
	if c.Shipping != nil {
		c.AllIn += *c.Shipping
	}

	return c
}

func parseBuyingOption(buyingOptions []string) domain.BuyingOption {
	if slices.Contains(buyingOptions, "AUCTION") {
		return domain.BuyingAuction
	}
	return domain.BuyingFixedPrice
}
