package schema

import "strings"

// Fields is the canonical output schema, in output column order. Every
// normalized row carries exactly these fields, each a string (possibly empty).
var Fields = []string{
	"category", "sub_category", "city", "name", "area", "address",
	"phone_no_1", "phone_no2", "source", "ratings", "state", "country",
	"email", "latitude", "longitude", "reviews", "facebook_url",
	"linkdin_url", "twitter_url", "description", "pincode",
	"virtual_phone_no", "whatsapp_no", "phone_no_3", "avg_spent",
	"cost_of_two",
}

// Aliases maps each canonical field to the source column names recognized
// as synonyms for it, in priority order. Matching is case-insensitive and
// exact (never substring). Fields without an entry are only filled by
// enrichment.
var Aliases = map[string][]string{
	"source":       {"website", "url", "web_link", "link", "homepage"},
	"phone_no_1":   {"phone", "mobile", "contact", "tel", "phone_number", "cell"},
	"phone_no2":    {"phone_2", "phone2", "secondary_phone", "alternate_phone", "phone_no_2"},
	"name":         {"name", "business_name", "title", "company_name", "store_name"},
	"address":      {"address", "location", "full_address", "street"},
	"ratings":      {"rating", "stars", "review_score", "avg_rating"},
	"reviews":      {"review_count", "total_reviews", "number_of_reviews"},
	"category":     {"category", "type", "business_type"},
	"sub_category": {"subcategory", "sub_type"},
	"city":         {"city", "town", "district"},
	"state":        {"state", "province", "region"},
	"latitude":     {"lat", "latitude", "y"},
	"longitude":    {"long", "lng", "longitude", "x"},
	"email":        {"email", "e-mail", "mail", "contact_email"},
	"pincode":      {"pincode", "pin_code", "zipcode", "zip", "postal_code"},
	"description":  {"description", "about", "summary"},
	"facebook_url": {"facebook", "facebook_url", "fb_url"},
	"linkdin_url":  {"linkedin", "linkedin_url", "linkdin_url"},
	"twitter_url":  {"twitter", "twitter_url"},
	"whatsapp_no":  {"whatsapp", "whatsapp_number"},
}

// DefaultCountry is stamped onto every row; all inputs are Indian listings.
const DefaultCountry = "India"

// PhoneAliasSet returns the phone_no_1 aliases as a lookup set of
// lowercased names, used by the second-phone-column override.
func PhoneAliasSet() map[string]bool {
	set := make(map[string]bool)
	for _, a := range Aliases["phone_no_1"] {
		set[strings.ToLower(a)] = true
	}
	return set
}

// IsEmpty reports whether a value counts as empty: blank after trimming,
// or one of the nan-like sentinels that leak out of upstream exports.
func IsEmpty(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "nan", "NaN", "None":
		return true
	}
	return false
}

// Normalize maps nan-like sentinels to the true empty string and leaves
// everything else untouched. Idempotent.
func Normalize(s string) string {
	if IsEmpty(s) {
		return ""
	}
	return s
}

// Row is a mutable record over the canonical schema. Missing keys read as
// empty, so a row created from a source with fewer columns still behaves
// as all-empty for the unmapped fields.
type Row map[string]string

// NewRow returns a Row with every canonical field present and empty.
func NewRow() Row {
	r := make(Row, len(Fields))
	for _, f := range Fields {
		r[f] = ""
	}
	return r
}

// SetIfEmpty fills field with value only when the current value is empty
// and the new value is not. Reports whether a write happened. This is the
// conservative-enrichment rule: inference never overwrites existing data.
func (r Row) SetIfEmpty(field, value string) bool {
	if !IsEmpty(r[field]) || IsEmpty(value) {
		return false
	}
	r[field] = value
	return true
}

// Finalize replaces any remaining nan-like sentinels with empty strings.
func (r Row) Finalize() {
	for f, v := range r {
		r[f] = Normalize(v)
	}
}

// Values returns the row's values in the order of the given field list.
func (r Row) Values(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = r[f]
	}
	return out
}
