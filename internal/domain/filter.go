package domain

import "net/url"

// FilterCriteria holds the optional catalog filter fields. All fields are
// free-form strings; price bounds are numeric strings passed through to the
// backend unvalidated (min<=max enforcement is the backend's job).
type FilterCriteria struct {
	Query    string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`
	MinPrice string `json:"min_price,omitempty"`
	MaxPrice string `json:"max_price,omitempty"`
}

// QueryValues returns the canonical query representation of the criteria:
// empty fields are omitted entirely rather than sent as empty values.
// url.Values.Encode sorts by key, so the encoded form is stable for any
// given criteria.
func (f FilterCriteria) QueryValues() url.Values {
	params := url.Values{}
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Brand != "" {
		params.Set("brand", f.Brand)
	}
	if f.MinPrice != "" {
		params.Set("min_price", f.MinPrice)
	}
	if f.MaxPrice != "" {
		params.Set("max_price", f.MaxPrice)
	}
	return params
}

// Encode returns the canonical query string for the criteria.
func (f FilterCriteria) Encode() string {
	return f.QueryValues().Encode()
}

// IsZero reports whether no filter field is set.
func (f FilterCriteria) IsZero() bool {
	return f == FilterCriteria{}
}
