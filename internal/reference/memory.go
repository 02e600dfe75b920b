package reference

// Lookup table names used in NotFoundError.
const (
	TableChannelSegments   = "channel_segments"
	TableExpectedLocations = "expected_locations"
)

type segmentKey struct {
	scope string
	ident string
}

type locationKey struct {
	ident   string
	profile string
}

// MemoryStore is the in-memory Store used for tests and as the backing of
// the shapefile loader. Duplicate keys keep the first record.
type MemoryStore struct {
	segments  map[segmentKey]*ChannelSegment
	locations map[locationKey]*ExpectedLocation
	order     []*ChannelSegment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		segments:  make(map[segmentKey]*ChannelSegment),
		locations: make(map[locationKey]*ExpectedLocation),
	}
}

// AddSegment registers a channel segment. The first record for a key wins;
// later duplicates are ignored.
func (m *MemoryStore) AddSegment(s *ChannelSegment) {
	key := segmentKey{s.Scope, s.Ident}
	if _, ok := m.segments[key]; ok {
		return
	}
	m.segments[key] = s
	m.order = append(m.order, s)
}

// AddLocation registers an expected profile location, first record wins.
func (m *MemoryStore) AddLocation(l *ExpectedLocation) {
	key := locationKey{l.HydroCode, l.ProfileName}
	if _, ok := m.locations[key]; ok {
		return
	}
	m.locations[key] = l
}

func (m *MemoryStore) ChannelSegment(scope, ident string) (*ChannelSegment, error) {
	if s, ok := m.segments[segmentKey{scope, ident}]; ok {
		return s, nil
	}
	return nil, &NotFoundError{Table: TableChannelSegments, Key: ident}
}

func (m *MemoryStore) ExpectedLocation(ident, profile string) (*ExpectedLocation, error) {
	if l, ok := m.locations[locationKey{ident, profile}]; ok {
		return l, nil
	}
	return nil, &NotFoundError{Table: TableExpectedLocations, Key: ident + "/" + profile}
}

func (m *MemoryStore) Segments() []*ChannelSegment {
	return m.order
}
