package system

import (
	"testing"
	"time"

	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetimeExpiresAfterDuration(t *testing.T) {
	w := ecs.NewWorld()
	lifetime := NewLifetimeSystem()

	// spawn partway through the clock
	w.Advance(250 * time.Millisecond)
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Duration: time.Second}))
	lifetime.Update(w)

	for i := 1; i < 10; i++ {
		w.Advance(100 * time.Millisecond)
		lifetime.Update(w)
		require.Truef(t, ecs.IsAlive(w, e), "destroyed early after %dms", i*100)
	}

	w.Advance(100 * time.Millisecond)
	lifetime.Update(w)
	assert.False(t, ecs.IsAlive(w, e))
}

func TestLifetimeDestroysAttachments(t *testing.T) {
	w := ecs.NewWorld()
	lifetime := NewLifetimeSystem()

	parent := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, parent, component.LifetimeComponent.Kind(), &component.Lifetime{Duration: 50 * time.Millisecond}))
	child := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, child, component.AttachmentComponent.Kind(), &component.Attachment{Parent: uint64(parent)}))
	bystander := ecs.CreateEntity(w)

	lifetime.Update(w)
	w.Advance(time.Second)
	lifetime.Update(w)

	assert.False(t, ecs.IsAlive(w, parent))
	assert.False(t, ecs.IsAlive(w, child))
	assert.True(t, ecs.IsAlive(w, bystander))
}
