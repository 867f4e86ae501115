package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryValues_OnlyCategory(t *testing.T) {
	f := FilterCriteria{Category: "shoes"}
	assert.Equal(t, "category=shoes", f.Encode())
}

func TestQueryValues_EmptyCriteria(t *testing.T) {
	f := FilterCriteria{}
	assert.Empty(t, f.Encode())
	assert.True(t, f.IsZero())
}

func TestQueryValues_AllFields(t *testing.T) {
	f := FilterCriteria{
		Query:    "running",
		Category: "shoes",
		Brand:    "Nike",
		MinPrice: "10",
		MaxPrice: "100",
	}

	values := f.QueryValues()
	assert.Equal(t, "running", values.Get("q"))
	assert.Equal(t, "shoes", values.Get("category"))
	assert.Equal(t, "Nike", values.Get("brand"))
	assert.Equal(t, "10", values.Get("min_price"))
	assert.Equal(t, "100", values.Get("max_price"))

	// Encoding is canonical: keys in sorted order.
	assert.Equal(t, "brand=Nike&category=shoes&max_price=100&min_price=10&q=running", f.Encode())
}

func TestQueryValues_EmptyFieldsOmitted(t *testing.T) {
	f := FilterCriteria{Query: "hat", MaxPrice: "50"}

	values := f.QueryValues()
	assert.False(t, values.Has("category"))
	assert.False(t, values.Has("brand"))
	assert.False(t, values.Has("min_price"))
	assert.Equal(t, "max_price=50&q=hat", f.Encode())
}

func TestQueryValues_EncodesSpecialCharacters(t *testing.T) {
	f := FilterCriteria{Query: "blue jeans & more"}
	assert.Equal(t, "q=blue+jeans+%26+more", f.Encode())
}

func TestQueryValues_StableAcrossCalls(t *testing.T) {
	f := FilterCriteria{Query: "a", Brand: "b", Category: "c"}
	first := f.Encode()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, f.Encode())
	}
}
