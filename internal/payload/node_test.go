package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropath/internal/payload"
)

func TestNodeAccessors(t *testing.T) {
	n, err := payload.Parse([]byte(`{
		"result": {
			"name": "Trattoria X",
			"price_level": 3,
			"rating": 4.5,
			"types": ["restaurant", "food"],
			"photos": [{"photo_reference": "ref-1"}, {"photo_reference": "ref-2"}]
		}
	}`))
	require.NoError(t, err)

	res := n.Get("result")

	t.Run("strings", func(t *testing.T) {
		s, ok := res.Get("name").String()
		assert.True(t, ok)
		assert.Equal(t, "Trattoria X", s)
		assert.Equal(t, "fallback", res.Get("website").StringOr("fallback"))
	})

	t.Run("ints", func(t *testing.T) {
		i, ok := res.Get("price_level").Int()
		assert.True(t, ok)
		assert.EqualValues(t, 3, i)

		_, ok = res.Get("rating").Int()
		assert.False(t, ok, "fractional numbers are not ints")

		_, ok = res.Get("name").Int()
		assert.False(t, ok)
	})

	t.Run("int range", func(t *testing.T) {
		for in, want := range map[float64]bool{
			1e18:                 true,
			-9223372036854775808: true,
			9223372036854775808:  false,
			1e19:                 false,
			-1e19:                false,
			1e300:                false,
		} {
			_, ok := payload.Wrap(in).Int()
			assert.Equal(t, want, ok, "%g", in)
		}
	})

	t.Run("arrays", func(t *testing.T) {
		assert.Equal(t, "ref-1", res.Get("photos").Index(0).Get("photo_reference").StringOr(""))
		assert.False(t, res.Get("photos").Index(5).Exists())
		assert.True(t, res.Get("types").Contains("food"))
		assert.False(t, res.Get("types").Contains("bar"))

		_, ok := res.Get("name").Array()
		assert.False(t, ok)
	})

	t.Run("paths", func(t *testing.T) {
		assert.Equal(t, "Trattoria X", n.Path("result.name").StringOr(""))
		assert.False(t, n.Path("result.missing.deeper").Exists())
		assert.False(t, payload.Node{}.Get("x").Exists())
	})
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := payload.Parse([]byte(`{not json`))
	assert.Error(t, err)
}
