package zone

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/telemetry"
	"github.com/samdwyer/realmforge/internal/world"
)

var (
	// ErrUnknownZone is returned when an ID is not in the registry.
	ErrUnknownZone = errors.New("unknown zone")
	// ErrInvalidLevelRange is returned when Min > Max.
	ErrInvalidLevelRange = errors.New("invalid level range")
	// ErrNoConnection is returned when a zone has no link in a direction.
	ErrNoConnection = errors.New("no connection")
)

const (
	DefaultWidth  = 40
	DefaultHeight = 40
)

// Request describes a zone to generate. Zero Width or Height use the
// manager's default size; an empty Name picks one from the biome.
type Request struct {
	Biome  string
	Levels LevelRange
	Name   string
	Width  int
	Height int
}

// Manager owns every generated zone and the active one.
//
// Generation requests are serialised. Lookups may run concurrently with
// generation.
type Manager struct {
	generator *world.Generator
	rng       *rand.Rand
	log       logrus.FieldLogger
	enemies   *gamedata.EnemyRegistry
	roster    *gamedata.PopulationFile
	width     int
	height    int

	genMu  sync.Mutex
	mu     sync.RWMutex
	zones  map[string]*Zone
	active string
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the random source for ids, names and population.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = log }
}

// WithDefaultSize sets the size used when a request leaves it zero.
func WithDefaultSize(width, height int) Option {
	return func(m *Manager) { m.width, m.height = width, height }
}

// WithEnemyRegistry replaces the embedded enemy kinds.
func WithEnemyRegistry(r *gamedata.EnemyRegistry) Option {
	return func(m *Manager) { m.enemies = r }
}

// WithRoster replaces the embedded village roster.
func WithRoster(p gamedata.PopulationFile) Option {
	return func(m *Manager) { m.roster = &p }
}

// NewManager returns an empty manager generating maps with gen.
func NewManager(gen *world.Generator, opts ...Option) (*Manager, error) {
	m := &Manager{
		generator: gen,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       logrus.StandardLogger(),
		width:     DefaultWidth,
		height:    DefaultHeight,
		zones:     make(map[string]*Zone),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.enemies == nil {
		r, err := gamedata.LoadEnemyRegistry()
		if err != nil {
			return nil, fmt.Errorf("load enemy registry: %w", err)
		}
		m.enemies = r
	}
	if m.roster == nil {
		p, err := gamedata.LoadPopulation()
		if err != nil {
			return nil, fmt.Errorf("load roster: %w", err)
		}
		m.roster = &p
	}
	return m, nil
}

// Generate builds, populates and registers a zone. Nothing is registered
// when any step fails.
func (m *Manager) Generate(ctx context.Context, req Request) (*Zone, error) {
	tracer := telemetry.Tracer("zone")
	ctx, span := tracer.Start(ctx, "zone.generate")
	defer span.End()

	if !req.Levels.Valid() {
		return nil, fmt.Errorf("levels %s: %w", req.Levels, ErrInvalidLevelRange)
	}
	width, height := req.Width, req.Height
	if width == 0 {
		width = m.width
	}
	if height == 0 {
		height = m.height
	}

	m.genMu.Lock()
	defer m.genMu.Unlock()

	prof, known := m.generator.Profiles().Resolve(req.Biome)
	log := m.log.WithField("biome", prof.ID)
	if !known {
		log.WithField("requested", req.Biome).Warn("unknown biome, using default profile")
	}

	id, err := m.newID(prof.ID)
	if err != nil {
		return nil, err
	}
	name := req.Name
	if name == "" {
		name = m.defaultName(prof)
	}

	z := New(id, name, prof.ID, req.Levels)
	tm, err := m.generator.Generate(ctx, width, height, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("generate zone %q: %w", name, err)
	}
	z.Map = tm
	z.State = StateGenerated

	m.populate(ctx, z, prof.Features, log)
	z.State = StatePopulated

	m.mu.Lock()
	m.zones[z.ID] = z
	m.mu.Unlock()

	span.SetAttributes(
		attribute.String("zone.id", z.ID),
		attribute.String("zone.biome", z.Biome),
		attribute.Int("zone.npcs", len(z.NPCs)),
		attribute.Int("zone.enemies", len(z.Enemies)),
	)
	log.WithFields(logrus.Fields{
		"zone": z.ID,
		"name": z.Name,
	}).Info("zone generated")

	return z, nil
}

// Regenerate rebuilds the terrain of zone id from its map seed, discarding
// tile edits made since generation. Inhabitants are kept.
func (m *Manager) Regenerate(ctx context.Context, id string) (*Zone, error) {
	z, ok := m.Get(id)
	if !ok {
		return nil, fmt.Errorf("regenerate %s: %w", id, ErrUnknownZone)
	}

	m.genMu.Lock()
	defer m.genMu.Unlock()

	tm, err := m.generator.GenerateSeeded(ctx, z.Map.Width, z.Map.Height, z.Biome, z.Map.Seed)
	if err != nil {
		return nil, fmt.Errorf("regenerate zone %q: %w", z.Name, err)
	}
	z.Map = tm
	m.log.WithFields(logrus.Fields{
		"zone": z.ID,
		"seed": tm.Seed,
	}).Info("zone terrain regenerated")
	return z, nil
}

func (m *Manager) populate(ctx context.Context, z *Zone, kind world.FeatureKind, log logrus.FieldLogger) {
	_, span := telemetry.Tracer("zone").Start(ctx, "zone.populate")
	defer span.End()

	p := &populator{
		rng:     m.rng,
		catalog: m.generator.Catalog(),
		roster:  *m.roster,
		enemies: m.enemies,
		log:     log,
	}
	p.populate(z, kind)
}

// newID draws a zone id from the manager's rng so seeded runs repeat.
func (m *Manager) newID(biome string) (string, error) {
	u, err := uuid.NewRandomFromReader(m.rng)
	if err != nil {
		return "", fmt.Errorf("zone id: %w", err)
	}
	return biome + "-" + u.String(), nil
}

func (m *Manager) defaultName(prof *world.Profile) string {
	if len(prof.Names) > 0 {
		return prof.Names[m.rng.Intn(len(prof.Names))]
	}
	title := prof.ID
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return fmt.Sprintf("%s %d", title, m.rng.Intn(10)+1)
}

// Get returns the zone registered under id.
func (m *Manager) Get(id string) (*Zone, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z, ok := m.zones[id]
	return z, ok
}

// Zones returns every registered id, sorted.
func (m *Manager) Zones() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.zones))
	for id := range m.zones {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered zones.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)
}

// SetActive makes id the active zone. It reports false, leaving the active
// zone unchanged, when id is unknown.
func (m *Manager) SetActive(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.zones[id]; !ok {
		return false
	}
	m.active = id
	return true
}

// Active returns the active zone.
func (m *Manager) Active() (*Zone, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == "" {
		return nil, false
	}
	z, ok := m.zones[m.active]
	return z, ok
}

// Connect links zone a through dir to zone b, and b back to a through the
// opposite direction. exitA and exitB are the link cells in each zone.
func (m *Manager) Connect(a string, dir Direction, b string, exitA, exitB world.Point) error {
	if !dir.Valid() {
		return fmt.Errorf("connect %s: %w: %q", a, ErrInvalidDirection, dir)
	}
	za, ok := m.Get(a)
	if !ok {
		return fmt.Errorf("connect %s: %w", a, ErrUnknownZone)
	}
	zb, ok := m.Get(b)
	if !ok {
		return fmt.Errorf("connect %s: %w", b, ErrUnknownZone)
	}
	if err := checkExit(za, exitA); err != nil {
		return err
	}
	if err := checkExit(zb, exitB); err != nil {
		return err
	}

	if err := za.AddConnection(dir, zb.ID, exitA); err != nil {
		return err
	}
	return zb.AddConnection(dir.Opposite(), za.ID, exitB)
}

func checkExit(z *Zone, p world.Point) error {
	if z.Map != nil && !z.Map.InBounds(p.X, p.Y) {
		return fmt.Errorf("zone %s: exit (%d,%d) outside %dx%d map", z.ID, p.X, p.Y, z.Map.Width, z.Map.Height)
	}
	return nil
}

// ResolveConnection follows z's link in dir. The entry point is the exit
// of the target's reverse link when that link leads back to z, and (0,0)
// otherwise.
func (m *Manager) ResolveConnection(z *Zone, dir Direction) (*Zone, world.Point, error) {
	if z == nil {
		return nil, world.Point{}, ErrUnknownZone
	}
	conn, ok := z.Connection(dir)
	if !ok {
		return nil, world.Point{}, fmt.Errorf("zone %s %s: %w", z.ID, dir, ErrNoConnection)
	}
	target, ok := m.Get(conn.TargetZoneID)
	if !ok {
		return nil, world.Point{}, fmt.Errorf("zone %s %s -> %s: %w", z.ID, dir, conn.TargetZoneID, ErrUnknownZone)
	}

	var entry world.Point
	if back, ok := target.Connection(dir.Opposite()); ok && back.TargetZoneID == z.ID {
		entry = back.Exit
	}
	return target, entry, nil
}

// ValidateConnections reports links to unregistered zones, links without a
// matching return link, and exits outside their zone's map.
func (m *Manager) ValidateConnections() []error {
	var problems []error
	for _, id := range m.Zones() {
		z, ok := m.Get(id)
		if !ok {
			continue
		}
		for _, dir := range Directions() {
			conn, ok := z.Connection(dir)
			if !ok {
				continue
			}
			if err := checkExit(z, conn.Exit); err != nil {
				problems = append(problems, err)
			}
			target, ok := m.Get(conn.TargetZoneID)
			if !ok {
				problems = append(problems, fmt.Errorf("zone %s %s -> %s: %w", z.ID, dir, conn.TargetZoneID, ErrUnknownZone))
				continue
			}
			back, ok := target.Connection(dir.Opposite())
			if !ok || back.TargetZoneID != z.ID {
				problems = append(problems, fmt.Errorf("zone %s %s -> %s: no return link: %w", z.ID, dir, target.ID, ErrNoConnection))
			}
		}
	}
	return problems
}
