package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToMinorUnitsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 100},
		{"1.23", 123},
		{"1.234", 123},
		{"1.235", 124},
		{"1.236", 124},
		{"1000.005", 100001},
		{"-2.505", -251},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ToMinorUnits(d), "ToMinorUnits(%s)", tc.in)
	}
}

func TestParseMinorUnitsCoercesBadInputToZero(t *testing.T) {
	assert.Equal(t, int64(123), ParseMinorUnits("1.23"))
	assert.Equal(t, int64(123), ParseMinorUnits(" 1.23 "))
	assert.Equal(t, int64(0), ParseMinorUnits(""))
	assert.Equal(t, int64(0), ParseMinorUnits("abc"))
	assert.Equal(t, int64(0), ParseMinorUnits("1.2.3"))
}

func TestFromMinorUnitsRoundTrip(t *testing.T) {
	d := FromMinorUnits(123456)
	assert.Equal(t, "1234.56", d.String())
	assert.Equal(t, int64(123456), ToMinorUnits(d))
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatMinorUnits(123456, "USD"))
	assert.Equal(t, "$0.00", FormatMinorUnits(0, "USD"))
}

func TestAmountUnmarshalYAML(t *testing.T) {
	var s struct {
		A Amount `yaml:"a"`
		B Amount `yaml:"b"`
		C Amount `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 12.5\nb: \"99.99\"\nc: nonsense\n"), &s))
	assert.Equal(t, int64(1250), s.A.MinorUnits())
	assert.Equal(t, int64(9999), s.B.MinorUnits())
	assert.Equal(t, int64(0), s.C.MinorUnits(), "malformed amount should coerce to zero")
}

func TestAmountUnmarshalJSON(t *testing.T) {
	var s struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": "99.99", "c": null}`), &s))
	assert.Equal(t, int64(1250), s.A.MinorUnits())
	assert.Equal(t, int64(9999), s.B.MinorUnits())
	assert.Equal(t, int64(0), s.C.MinorUnits())
}

func TestFlexIntUnmarshal(t *testing.T) {
	var s struct {
		A FlexInt `yaml:"a"`
		B FlexInt `yaml:"b"`
		C FlexInt `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 30\nb: \"45\"\nc: oops\n"), &s))
	assert.Equal(t, 30, s.A.Int())
	assert.Equal(t, 45, s.B.Int())
	assert.Equal(t, 0, s.C.Int())
}
