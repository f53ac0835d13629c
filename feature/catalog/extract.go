package catalog

import (
	"catalog-sync/core/feed"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

// NameSource selects where a category's name is read from. Vendor exports
// genuinely differ here, so the choice is per deployment, not per feed.
type NameSource string

const (
	// NameSourceText reads the category element's own text.
	NameSourceText NameSource = "text"
	// NameSourceChild reads a nested <name> element.
	NameSourceChild NameSource = "child"
)

// ExtractOptions carries the per-deployment extraction choices.
type ExtractOptions struct {
	CategoryNameSource NameSource
}

func (o ExtractOptions) categoryName(el *feed.Node) string {
	if o.CategoryNameSource == NameSourceChild {
		return el.ChildText("name")
	}
	return el.Text()
}

// ExtractCurrencies walks currencies/currency under the feed root. Entries
// without an id are skipped; the second result counts them. A missing
// container yields no rows and no error.
func ExtractCurrencies(root *feed.Node) ([]models.Currency, int) {
	if root == nil {
		return nil, 0
	}
	container := root.Child("currencies")
	if container == nil {
		return nil, 0
	}

	var out []models.Currency
	skipped := 0
	for _, el := range container.ChildrenNamed("currency") {
		id := el.AttrValue("id")
		if id == "" {
			skipped++
			continue
		}

		code := el.AttrValue("code")
		if code == "" {
			code = id
		}

		name := el.ChildText("name")
		if name == "" {
			name = el.AttrValue("name")
		}

		out = append(out, models.Currency{
			CurrencyID: id,
			Code:       code,
			Name:       name,
			Rate:       utils.ParseDecimal(el.AttrValue("rate")),
		})
	}
	return out, skipped
}

// ExtractCategories walks categories/category. The id must parse as an
// integer because it is the table's key; entries failing that are skipped.
// parentId is kept only when it parses.
func ExtractCategories(root *feed.Node, opts ExtractOptions) ([]models.Category, int) {
	if root == nil {
		return nil, 0
	}
	container := root.Child("categories")
	if container == nil {
		return nil, 0
	}

	var out []models.Category
	skipped := 0
	for _, el := range container.ChildrenNamed("category") {
		id := utils.ParseIntPtr(el.AttrValue("id"))
		if id == nil {
			skipped++
			continue
		}

		out = append(out, models.Category{
			CategoryID: *id,
			Name:       opts.categoryName(el),
			ParentID:   utils.ParseIntPtr(el.AttrValue("parentId")),
		})
	}
	return out, skipped
}

// ExtractOffers walks offers/offer. vendorCode is the offer's identity and
// is required; entries without it are skipped. Every other field degrades to
// its default. Nested param elements become the offer's attribute list, in
// feed order.
func ExtractOffers(root *feed.Node) ([]models.Offer, int) {
	if root == nil {
		return nil, 0
	}
	container := root.Child("offers")
	if container == nil {
		return nil, 0
	}

	var out []models.Offer
	skipped := 0
	for _, el := range container.ChildrenNamed("offer") {
		vendorCode := el.ChildText("vendorCode")
		if vendorCode == "" {
			skipped++
			continue
		}

		offer := models.Offer{
			OfferID:     el.AttrValue("id"),
			VendorCode:  vendorCode,
			Available:   utils.ParseBool(el.AttrValue("available")),
			Name:        el.ChildText("name"),
			Price:       utils.ParseDecimal(el.ChildText("price")),
			CurrencyID:  el.ChildText("currencyId"),
			CategoryID:  utils.ParseInt(el.ChildText("categoryId"), 0),
			Picture:     el.ChildText("picture"),
			Description: el.ChildText("description"),
		}

		for _, param := range el.ChildrenNamed("param") {
			offer.Attributes = append(offer.Attributes, models.OfferAttribute{
				Name:  param.AttrValue("name"),
				Value: param.Text(),
			})
		}

		out = append(out, offer)
	}
	return out, skipped
}
