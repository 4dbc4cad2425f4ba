package catalog_cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CopperGroup/JoyFer/models"
)

func TestSnapshotCache_VersionMustMatch(t *testing.T) {
	c := NewSnapshotCache(time.Minute)
	snap := &models.CatalogSnapshot{Delay: 300}

	c.Set(3, snap)

	got, ok := c.Get(3)
	assert.True(t, ok)
	assert.Same(t, snap, got)

	_, ok = c.Get(4)
	assert.False(t, ok)
}

func TestSnapshotCache_ExpiresAndInvalidates(t *testing.T) {
	c := NewSnapshotCache(10 * time.Millisecond)
	c.Set(1, &models.CatalogSnapshot{})
	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get(1)
	assert.False(t, ok)

	c = NewSnapshotCache(time.Minute)
	c.Set(1, &models.CatalogSnapshot{})
	c.Invalidate()
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestProperties_Invalidate(t *testing.T) {
	SetProperties([]models.CategoryProperties{{}})
	_, ok := GetProperties()
	assert.True(t, ok)

	InvalidateProperties()
	_, ok = GetProperties()
	assert.False(t, ok)
}
