package zone

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/noise"
	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/world"
)

func newTestManager(t *testing.T, seed int64, opts ...Option) *Manager {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	defs, err := gamedata.LoadAssets()
	require.NoError(t, err)
	catalog, err := tiles.LoadCatalog(defs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(seed))
	gen, err := world.NewGenerator(catalog, world.WithRand(rng), world.WithLogger(log))
	require.NoError(t, err)

	opts = append([]Option{WithRand(rng), WithLogger(log)}, opts...)
	m, err := NewManager(gen, opts...)
	require.NoError(t, err)
	return m
}

func countRoles(z *Zone) (merchants, innkeepers, others int) {
	for _, n := range z.NPCs {
		switch n.Role {
		case "Merchant":
			merchants++
		case "Innkeeper":
			innkeepers++
		default:
			others++
		}
	}
	return
}

func TestGenerateEldergrove(t *testing.T) {
	m := newTestManager(t, 1)

	z, err := m.Generate(context.Background(), Request{
		Biome:  "village",
		Levels: LevelRange{Min: 1, Max: 3},
		Name:   "Eldergrove",
	})
	require.NoError(t, err)

	assert.Equal(t, "Eldergrove", z.Name)
	assert.Equal(t, "village", z.Biome)
	assert.Equal(t, "A village area for levels 1-3", z.Description)
	assert.Equal(t, StatePopulated, z.State)
	assert.Equal(t, DefaultWidth, z.Map.Width)
	assert.Equal(t, DefaultHeight, z.Map.Height)

	merchants, innkeepers, villagers := countRoles(z)
	assert.Equal(t, 1, merchants)
	assert.Equal(t, 1, innkeepers)
	assert.GreaterOrEqual(t, villagers, 3)
	assert.LessOrEqual(t, villagers, 6)
	assert.Empty(t, z.Enemies)

	merchant := z.NPCs["merchant_01"]
	require.NotNil(t, merchant)
	assert.Equal(t, "Marcus", merchant.Name)
	assert.Equal(t, 22, merchant.X)
	assert.Equal(t, 18, merchant.Y)
	assert.Equal(t, []string{"gather_supplies"}, merchant.QuestIDs)

	quest := z.Quests["gather_supplies"]
	require.NotNil(t, quest)
	assert.Equal(t, "merchant_01", quest.GiverID)
	require.Len(t, quest.Objectives, 1)
	assert.Equal(t, "wolf", quest.Objectives[0].Target)
	assert.Equal(t, 5, quest.Objectives[0].Amount)
	assert.Equal(t, 100, quest.Rewards.Gold)
	assert.Equal(t, []string{"leather_armor"}, quest.Rewards.Items)

	got, ok := m.Get(z.ID)
	assert.True(t, ok)
	assert.Same(t, z, got)
}

func TestVillagersStandOnWalkableCells(t *testing.T) {
	m := newTestManager(t, 8)
	z, err := m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 1, Max: 2}})
	require.NoError(t, err)

	seen := map[world.Point]string{}
	for id, n := range z.NPCs {
		pt := world.Point{X: n.X, Y: n.Y}
		if prev, dup := seen[pt]; dup {
			t.Errorf("%s and %s share cell %v", id, prev, pt)
		}
		seen[pt] = id

		if n.Role == "Merchant" || n.Role == "Innkeeper" {
			continue
		}
		assert.True(t, z.IsWalkable(n.X, n.Y), "villager %s on %v", id, pt)
		greeting, ok := n.Line("greeting")
		assert.True(t, ok)
		assert.Contains(t, greeting, "I'm a ")
		assert.NotContains(t, greeting, "%s")
	}
}

func TestGenerateForestEnemies(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		m := newTestManager(t, seed)
		z, err := m.Generate(context.Background(), Request{
			Biome:  "forest",
			Levels: LevelRange{Min: 2, Max: 5},
		})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(z.Enemies), 5)
		assert.LessOrEqual(t, len(z.Enemies), 10)
		assert.Empty(t, z.NPCs)

		for id, e := range z.Enemies {
			assert.Contains(t, []int{20, 30, 40, 50}, e.HP, "enemy %s", id)
			assert.Equal(t, e.Level*10, e.MaxHP)
			cat, ok := z.CategoryAt(e.X, e.Y)
			require.True(t, ok)
			assert.NotEqual(t, tiles.CatPaths, cat, "enemy %s spawned on a path", id)
		}

		require.Len(t, z.Landmarks, 1)
		assert.Equal(t, "Ancient Tree", z.Landmarks[0].Name)
		assert.Equal(t, z.Map.Width/2, z.Landmarks[0].X)
		assert.Equal(t, z.Map.Height/2, z.Landmarks[0].Y)
	}
}

func TestSmallForestEnemiesStayOnGrassOrTrees(t *testing.T) {
	violations := 0
	for seed := int64(1); seed <= 50; seed++ {
		m := newTestManager(t, seed)
		z, err := m.Generate(context.Background(), Request{
			Biome:  "forest",
			Levels: LevelRange{Min: 1, Max: 3},
			Width:  4,
			Height: 4,
		})
		require.NoError(t, err)

		if z.Map.CountCategory(tiles.CatGrass)+z.Map.CountCategory(tiles.CatTrees) == 0 {
			continue
		}
		assert.GreaterOrEqual(t, len(z.Enemies), 5)
		for id, e := range z.Enemies {
			cat, _ := z.CategoryAt(e.X, e.Y)
			if cat != tiles.CatGrass && cat != tiles.CatTrees {
				violations++
				t.Errorf("seed %d: enemy %s on %q at (%d,%d)", seed, id, cat, e.X, e.Y)
			}
		}
	}
	assert.Zero(t, violations)
}

func TestTrollsUseTrollSprite(t *testing.T) {
	trollOnly := gamedata.NewEnemyRegistry([]gamedata.EnemyDef{
		{ID: "troll", Name: "Forest Troll", Concept: "monster-large", SpawnWeight: 1},
	})
	m := newTestManager(t, 6, WithEnemyRegistry(trollOnly))
	z, err := m.Generate(context.Background(), Request{Biome: "forest", Levels: LevelRange{Min: 1, Max: 1}})
	require.NoError(t, err)
	require.NotEmpty(t, z.Enemies)

	for id, e := range z.Enemies {
		ref, ok := m.generator.Catalog().AssetRef(e.TileID)
		require.True(t, ok, id)
		assert.Equal(t, "dc-mon/troll.png", ref, id)
	}
}

func TestRegenerateRestoresTerrain(t *testing.T) {
	cache, err := noise.NewCache(1 << 20)
	require.NoError(t, err)
	defer cache.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	defs, err := gamedata.LoadAssets()
	require.NoError(t, err)
	catalog, err := tiles.LoadCatalog(defs)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(17))
	gen, err := world.NewGenerator(catalog, world.WithRand(rng), world.WithLogger(log), world.WithNoiseCache(cache))
	require.NoError(t, err)
	m, err := NewManager(gen, WithRand(rng), WithLogger(log))
	require.NoError(t, err)

	z, err := m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 1, Max: 2}})
	require.NoError(t, err)
	before := z.Map
	original := before.TileAt(3, 3)
	before.SetTile(3, 3, tiles.Empty)
	npcs := len(z.NPCs)

	got, err := m.Regenerate(context.Background(), z.ID)
	require.NoError(t, err)
	assert.Same(t, z, got)
	assert.NotSame(t, before, z.Map)
	assert.Equal(t, original, z.Map.TileAt(3, 3))
	assert.Equal(t, before.Seed, z.Map.Seed)
	assert.Len(t, z.NPCs, npcs)

	h1, m1 := before.Fields()
	h2, m2 := z.Map.Fields()
	assert.Same(t, h1, h2, "height field should come from the cache")
	assert.Same(t, m1, m2, "moisture field should come from the cache")

	_, err = m.Regenerate(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrUnknownZone)
}

func TestDefaultNames(t *testing.T) {
	m := newTestManager(t, 3)

	village, err := m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 1, Max: 1}})
	require.NoError(t, err)
	assert.Contains(t, []string{"Eldergrove", "Riversend", "Oakvale", "Willowhaven"}, village.Name)

	forest, err := m.Generate(context.Background(), Request{Biome: "forest", Levels: LevelRange{Min: 1, Max: 1}})
	require.NoError(t, err)
	assert.Contains(t, []string{"Darkwood", "Whispering Forest", "Ancient Grove", "Misty Woods"}, forest.Name)

	assert.NotEqual(t, village.ID, forest.ID)
}

func TestGenerateIsReproducible(t *testing.T) {
	req := Request{Biome: "forest", Levels: LevelRange{Min: 1, Max: 4}}
	a, err := newTestManager(t, 77).Generate(context.Background(), req)
	require.NoError(t, err)
	b, err := newTestManager(t, 77).Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Name, b.Name)
	require.Equal(t, len(a.Enemies), len(b.Enemies))
	for id, e := range a.Enemies {
		other := b.Enemies[id]
		require.NotNil(t, other, id)
		assert.Equal(t, e.X, other.X)
		assert.Equal(t, e.Y, other.Y)
		assert.Equal(t, e.HP, other.HP)
	}
}

func TestGenerateRejectsInvalidRequests(t *testing.T) {
	m := newTestManager(t, 1)

	_, err := m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 5, Max: 2}})
	assert.ErrorIs(t, err, ErrInvalidLevelRange)

	_, err = m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 1, Max: 2}, Width: -3})
	assert.ErrorIs(t, err, world.ErrInvalidDimensions)

	assert.Equal(t, 0, m.Len(), "failed generation must not register a zone")
}

func TestUnknownBiomeBecomesVillage(t *testing.T) {
	m := newTestManager(t, 4)
	z, err := m.Generate(context.Background(), Request{Biome: "swamp", Levels: LevelRange{Min: 1, Max: 2}})
	require.NoError(t, err)
	assert.Equal(t, "village", z.Biome)
	assert.Len(t, z.Quests, 1)
}

func TestMountainsHaveNoInhabitants(t *testing.T) {
	m := newTestManager(t, 5)
	z, err := m.Generate(context.Background(), Request{Biome: "mountains", Levels: LevelRange{Min: 3, Max: 6}, Width: 20, Height: 20})
	require.NoError(t, err)
	assert.Empty(t, z.NPCs)
	assert.Empty(t, z.Enemies)
	assert.Empty(t, z.Landmarks)
	assert.NotEmpty(t, z.Name)
}

func TestSetActive(t *testing.T) {
	m := newTestManager(t, 1)

	_, ok := m.Active()
	assert.False(t, ok)

	z, err := m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 1, Max: 3}, Width: 20, Height: 20})
	require.NoError(t, err)

	assert.True(t, m.SetActive(z.ID))
	active, ok := m.Active()
	require.True(t, ok)
	assert.Same(t, z, active)

	assert.False(t, m.SetActive("nowhere"))
	active, ok = m.Active()
	require.True(t, ok)
	assert.Equal(t, z.ID, active.ID, "unknown id must leave the active zone unchanged")
}

func generatePair(t *testing.T, m *Manager) (*Zone, *Zone) {
	t.Helper()
	a, err := m.Generate(context.Background(), Request{Biome: "village", Levels: LevelRange{Min: 1, Max: 3}, Width: 20, Height: 20})
	require.NoError(t, err)
	b, err := m.Generate(context.Background(), Request{Biome: "forest", Levels: LevelRange{Min: 2, Max: 5}, Width: 20, Height: 20})
	require.NoError(t, err)
	return a, b
}

func TestConnectionRoundTrip(t *testing.T) {
	m := newTestManager(t, 2)
	a, b := generatePair(t, m)

	require.NoError(t, m.Connect(a.ID, East, b.ID, world.Point{X: 19, Y: 10}, world.Point{X: 0, Y: 10}))

	target, entry, err := m.ResolveConnection(a, East)
	require.NoError(t, err)
	assert.Same(t, b, target)
	assert.Equal(t, world.Point{X: 0, Y: 10}, entry)

	back, entry, err := m.ResolveConnection(b, West)
	require.NoError(t, err)
	assert.Same(t, a, back)
	assert.Equal(t, world.Point{X: 19, Y: 10}, entry)

	assert.Empty(t, m.ValidateConnections())
}

func TestResolveConnectionWithoutReverseLink(t *testing.T) {
	m := newTestManager(t, 2)
	a, b := generatePair(t, m)

	require.NoError(t, a.AddConnection(North, b.ID, world.Point{X: 10, Y: 0}))

	target, entry, err := m.ResolveConnection(a, North)
	require.NoError(t, err)
	assert.Same(t, b, target)
	assert.Equal(t, world.Point{}, entry)

	problems := m.ValidateConnections()
	require.Len(t, problems, 1)
	assert.ErrorIs(t, problems[0], ErrNoConnection)
}

func TestResolveConnectionErrors(t *testing.T) {
	m := newTestManager(t, 2)
	a, _ := generatePair(t, m)

	_, _, err := m.ResolveConnection(a, South)
	assert.ErrorIs(t, err, ErrNoConnection)

	require.NoError(t, a.AddConnection(South, "ghost", world.Point{X: 5, Y: 19}))
	_, _, err = m.ResolveConnection(a, South)
	assert.ErrorIs(t, err, ErrUnknownZone)

	_, _, err = m.ResolveConnection(nil, South)
	assert.ErrorIs(t, err, ErrUnknownZone)

	problems := m.ValidateConnections()
	require.Len(t, problems, 1)
	assert.True(t, errors.Is(problems[0], ErrUnknownZone))
}

func TestConnectValidation(t *testing.T) {
	m := newTestManager(t, 2)
	a, b := generatePair(t, m)

	assert.ErrorIs(t, m.Connect(a.ID, East, "ghost", world.Point{}, world.Point{}), ErrUnknownZone)
	assert.ErrorIs(t, m.Connect("ghost", East, b.ID, world.Point{}, world.Point{}), ErrUnknownZone)
	assert.ErrorIs(t, m.Connect(a.ID, Direction("up"), b.ID, world.Point{}, world.Point{}), ErrInvalidDirection)
	assert.Error(t, m.Connect(a.ID, East, b.ID, world.Point{X: 40, Y: 0}, world.Point{}))

	assert.Empty(t, a.Connections(), "failed Connect must not add links")
	assert.Empty(t, b.Connections())
}

func TestZonesSortedAndConcurrentReads(t *testing.T) {
	m := newTestManager(t, 9)
	ctx := context.Background()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					for _, id := range m.Zones() {
						m.Get(id)
					}
					m.Active()
				}
			}
		}()
	}

	for i := 0; i < 3; i++ {
		_, err := m.Generate(ctx, Request{Biome: "forest", Levels: LevelRange{Min: 1, Max: 2}, Width: 15, Height: 15})
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()

	ids := m.Zones()
	require.Len(t, ids, 3)
	assert.IsNonDecreasing(t, ids)
}
