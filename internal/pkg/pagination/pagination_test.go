package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

func TestNew(t *testing.T) {
	p := New(45, 2, 20)
	assert.Equal(t, Page{TotalCount: 45, Page: 2, Limit: 20, TotalPages: 3, Showing: "21-40 of 45"}, p)

	last := New(45, 3, 20)
	assert.Equal(t, "41-45 of 45", last.Showing)

	empty := New(0, 1, 20)
	assert.Equal(t, "0 of 0", empty.Showing)
	assert.Equal(t, 0, empty.TotalPages)

	beyond := New(5, 4, 20)
	assert.Equal(t, "0 of 5", beyond.Showing)
}

func TestNormalize(t *testing.T) {
	var errs validator.ValidationErrors
	page, limit := Normalize(0, 0, &errs)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultLimit, limit)
	assert.Empty(t, errs)

	page, limit = Normalize(-1, 500, &errs)
	assert.Equal(t, 1, page)
	assert.Equal(t, 500, limit)
	assert.Len(t, errs, 2)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 0, Offset(0, 20))
}
