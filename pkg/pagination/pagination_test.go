package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Normalize(Params{}, ProductPerPage)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, ProductPerPage, p.PerPage)

	p = Normalize(Params{Page: 3, PerPage: 500}, DefaultPerPage)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := Normalize(Params{Page: 2}, ProductPerPage)
	assert.Equal(t, 12, p.Offset())
}

func TestMetaFor(t *testing.T) {
	p := Normalize(Params{Page: 1}, DefaultPerPage)

	meta := MetaFor(p, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.Total)

	meta = MetaFor(p, 0)
	assert.Equal(t, 1, meta.TotalPages)
}
