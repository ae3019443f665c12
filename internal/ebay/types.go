package ebay

// ItemSummary represents a single item from the eBay Browse API search
// response, limited to the fields the comp pipeline consumes.
type ItemSummary struct {
	ItemID          string           `json:"itemId"`
	Title           string           `json:"title"`
	Price           ItemPrice        `json:"price"`
	ItemWebURL      string           `json:"itemWebUrl"`
	Condition       string           `json:"condition"`
	BuyingOptions   []string         `json:"buyingOptions"`
	ShippingOptions []ShippingOption `json:"shippingOptions,omitempty"`
	ItemEndDate     string           `json:"itemEndDate,omitempty"`
}

// ItemPrice holds eBay price information. Values arrive as strings on the
// wire and are parsed during normalization.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ShippingOption holds eBay shipping information.
type ShippingOption struct {
	ShippingCost *ItemPrice `json:"shippingCost,omitempty"`
}
