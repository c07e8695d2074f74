package vessel

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestFeature(t *testing.T) {
	svc, _ := setupService(t)
	feature := NewFeature(svc)

	assert.Equal(t, "vessels", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	offline := NewFeature(NewService(nil, nil, nil, 1, nil))
	assert.False(t, offline.IsEnabled())
}
