package noteid_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeep/pkg/noteid"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 10000 {
		id := noteid.New()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestNew_TimestampPrefix(t *testing.T) {
	before := time.Now().UnixMilli()
	id := noteid.New()
	after := time.Now().UnixMilli()

	prefix, _, found := strings.Cut(id, "-")
	require.True(t, found, "id should contain a timestamp-suffix separator")

	ts, err := strconv.ParseInt(prefix, 36, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}

func TestNew_SortableByCreation(t *testing.T) {
	first := noteid.New()
	time.Sleep(2 * time.Millisecond)
	second := noteid.New()

	firstTS, _, _ := strings.Cut(first, "-")
	secondTS, _, _ := strings.Cut(second, "-")

	a, err := strconv.ParseInt(firstTS, 36, 64)
	require.NoError(t, err)
	b, err := strconv.ParseInt(secondTS, 36, 64)
	require.NoError(t, err)
	assert.Less(t, a, b, "later ids should carry later timestamps")
}
