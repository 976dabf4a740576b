package zone

// State tracks how far a zone has been built. Whether a zone is active is
// owned by the Manager, not the zone.
type State int

const (
	StateRequested State = iota
	StateGenerated       // map exists
	StatePopulated       // inhabitants attached
)

func (s State) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateGenerated:
		return "generated"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}
