package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	// Praça da Sé to Avenida Paulista (MASP), roughly 2.6 km
	d := Distance(-23.5503, -46.6339, -23.5614, -46.6559)
	assert.InDelta(t, 2600, d, 400)

	assert.Zero(t, Distance(-23.5, -46.6, -23.5, -46.6))
}

func TestWithin(t *testing.T) {
	lat, lon := -23.5503, -46.6339
	nearLat, nearLon := -23.5505, -46.6340

	assert.True(t, Within(&nearLat, &nearLon, &lat, &lon, 300))
	assert.False(t, Within(&nearLat, &nearLon, &lat, &lon, 5))
	assert.False(t, Within(nil, &nearLon, &lat, &lon, 300))
	assert.False(t, Within(&nearLat, &nearLon, nil, nil, 300))
}
