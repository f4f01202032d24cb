package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Normalize(t *testing.T) {
	cases := []struct {
		name string
		in   Request
		def  int
		want Request
	}{
		{"defaults", Request{}, 10, Request{Page: 1, PageSize: 10}},
		{"negative page", Request{Page: -3, PageSize: 5}, 10, Request{Page: 1, PageSize: 5}},
		{"capped", Request{Page: 2, PageSize: 1000}, 20, Request{Page: 2, PageSize: MaxPageSize}},
		{"kept", Request{Page: 4, PageSize: 25}, 10, Request{Page: 4, PageSize: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize(tc.def))
		})
	}
}

func TestSlice_BeyondLastPageKeepsCount(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	p := Slice(all, Request{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, p.Results)
	assert.EqualValues(t, 5, p.Count)

	p = Slice(all, Request{Page: 9, PageSize: 2})
	assert.Empty(t, p.Results)
	assert.NotNil(t, p.Results)
	assert.EqualValues(t, 5, p.Count)
	assert.Equal(t, 9, p.Page)
}

func TestOffset_SaturatesOnHugePages(t *testing.T) {
	assert.Equal(t, 0, Request{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, Request{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt, PageSize: 10}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt/2 + 2, PageSize: 2}.Offset())
}

func TestPastEnd(t *testing.T) {
	assert.False(t, Request{Page: 1, PageSize: 10}.PastEnd(1))
	assert.True(t, Request{Page: 1, PageSize: 10}.PastEnd(0))
	assert.True(t, Request{Page: 2, PageSize: 10}.PastEnd(10))
	assert.False(t, Request{Page: 2, PageSize: 10}.PastEnd(11))
	assert.True(t, Request{Page: math.MaxInt, PageSize: 100}.PastEnd(math.MaxInt64))
}

func TestSlice_HugePageIsEmpty(t *testing.T) {
	all := []int{1, 2, 3}
	var p Page[int]
	assert.NotPanics(t, func() { p = Slice(all, Request{Page: math.MaxInt, PageSize: 10}) })
	assert.Empty(t, p.Results)
	assert.NotNil(t, p.Results)
	assert.EqualValues(t, 3, p.Count)

	p = Slice(all, Request{Page: 1, PageSize: 0})
	assert.Empty(t, p.Results)
}
