package style

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDimension(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.style")
	defer teardown()
	//
	var tests = []struct {
		input string
		value float64
		unit  string
	}{
		{"12", 12, ""},
		{" 599.98px ", 599.98, "px"},
		{"3EM", 3, "em"},
		{"80%", 80, "%"},
		{"-1.5rem", -1.5, "rem"},
		{"+.5in", 0.5, "in"},
		{"/* gap */ 4pt", 4, "pt"},
	}
	for _, test := range tests {
		d, err := ParseDimension(test.input)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.input, err)
			continue
		}
		assert.Equal(t, test.value, d.Value, "value of %q", test.input)
		assert.Equal(t, test.unit, d.Unit, "unit of %q", test.input)
	}
	for _, input := range []string{"", "banana", "10 px", "- 1px", "1px 2px", "calc(1px)"} {
		if _, err := ParseDimension(input); !errors.Is(err, ErrDimension) {
			t.Errorf("expected %q not to be a dimension, err = %v", input, err)
		}
	}
	assert.Equal(t, "-1.5rem", Dimension{Value: -1.5, Unit: "rem"}.String())
}
