package cache

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIsOrderInsensitive(t *testing.T) {
	a, _ := url.ParseQuery("city=pune&category=pg&availability=true")
	b, _ := url.ParseQuery("availability=true&city=pune&category=pg")

	assert.Equal(t, Key(a), Key(b))
}

func TestKeySortsRepeatedValues(t *testing.T) {
	a, _ := url.ParseQuery("city=pune&city=mumbai")
	b, _ := url.ParseQuery("city=mumbai&city=pune")

	assert.Equal(t, Key(a), Key(b))
}

func TestKeyDistinguishesQueries(t *testing.T) {
	cases := []string{
		"",
		"city=pune",
		"city=mumbai",
		"city=pune&category=pg",
		"category=pg",
	}
	seen := map[string]string{}
	for _, raw := range cases {
		q, err := url.ParseQuery(raw)
		assert.NoError(t, err)

		key := Key(q)
		assert.True(t, strings.HasPrefix(key, "property:"), "key %q lacks prefix", key)
		if prev, dup := seen[key]; dup {
			t.Fatalf("queries %q and %q collided on %q", prev, raw, key)
		}
		seen[key] = raw
	}
}

// A nil cache must behave as a disabled cache, not panic: main constructs one
// only when a redis address is configured.
func TestNilCacheIsNoOp(t *testing.T) {
	var c *PropertyCache
	ctx := context.Background()

	body, ok := c.Get(ctx, "property:any")
	assert.Nil(t, body)
	assert.False(t, ok)

	c.Set(ctx, "property:any", []byte(`[]`))
	c.Invalidate(ctx)
}
