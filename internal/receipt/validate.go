package receipt

import (
	"regexp"

	"github.com/tidwall/gjson"
)

var (
	retailerPattern    = regexp.MustCompile(`^[\w\s\-&]+$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^\d{2}:\d{2}$`)
	amountPattern      = regexp.MustCompile(`^\d+\.\d{2}$`)
	descriptionPattern = regexp.MustCompile(`^[\w\s\-]+$`)
)

// lastField returns the value of the last occurrence of name in an object, so
// duplicate keys resolve the way JSON.parse resolves them.
func lastField(container gjson.Result, name string) gjson.Result {
	var value gjson.Result
	container.ForEach(func(key, v gjson.Result) bool {
		if key.Str == name {
			value = v
		}
		return true
	})
	return value
}

// ValidateField reports whether container is a JSON object holding field as a
// string that fully matches pattern. Patterns must be anchored at both ends.
func ValidateField(container gjson.Result, field string, pattern *regexp.Regexp) bool {
	if !container.IsObject() {
		return false
	}
	value := lastField(container, field)
	if !value.Exists() || value.Type != gjson.String {
		return false
	}
	return pattern.MatchString(value.Str)
}

// ValidateReceipt reports whether doc has every required receipt and item
// field in the expected format. There is deliberately no detail on which
// check failed.
func ValidateReceipt(doc gjson.Result) bool {
	if !ValidateField(doc, "retailer", retailerPattern) ||
		!ValidateField(doc, "purchaseDate", datePattern) ||
		!ValidateField(doc, "purchaseTime", timePattern) ||
		!ValidateField(doc, "total", amountPattern) {
		return false
	}

	items := lastField(doc, "items")
	if !items.IsArray() {
		return false
	}

	valid := true
	items.ForEach(func(_, item gjson.Result) bool {
		valid = ValidateField(item, "shortDescription", descriptionPattern) &&
			ValidateField(item, "price", amountPattern)
		return valid
	})
	return valid
}

// ParseReceipt validates a raw JSON body and, when it passes, returns the
// receipt built from the same parsed document.
func ParseReceipt(body []byte) (Receipt, bool) {
	if !gjson.ValidBytes(body) {
		return Receipt{}, false
	}

	doc := gjson.ParseBytes(body)
	if !ValidateReceipt(doc) {
		return Receipt{}, false
	}

	items := lastField(doc, "items").Array()
	r := Receipt{
		Retailer:     lastField(doc, "retailer").Str,
		PurchaseDate: lastField(doc, "purchaseDate").Str,
		PurchaseTime: lastField(doc, "purchaseTime").Str,
		Total:        lastField(doc, "total").Str,
		Items:        make([]Item, 0, len(items)),
	}
	for _, item := range items {
		r.Items = append(r.Items, Item{
			ShortDescription: lastField(item, "shortDescription").Str,
			Price:            lastField(item, "price").Str,
		})
	}
	return r, true
}
