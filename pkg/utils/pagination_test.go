package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListParams_Defaults(t *testing.T) {
	params := ParseListParams(url.Values{})

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, "", params.Search)
}

func TestParseListParams_PageAndLimit(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "20")
	values.Set("search", "станок")

	params := ParseListParams(values)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, 40, params.Offset)
	assert.Equal(t, "станок", params.Search)
}

func TestParseListParams_LimitCapped(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "1000")

	params := ParseListParams(values)
	assert.Equal(t, MaxLimit, params.Limit)
}

// Мусорные и отрицательные значения откатываются к значениям по умолчанию.
func TestParseListParams_InvalidValues(t *testing.T) {
	values := url.Values{}
	values.Set("page", "-5")
	values.Set("limit", "abc")

	params := ParseListParams(values)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}
