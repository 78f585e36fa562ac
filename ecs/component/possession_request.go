package component

type PossessionAction int

const (
	PossessionBegin PossessionAction = iota + 1
	PossessionEnd
	PossessionTeleport
)

func (a PossessionAction) String() string {
	switch a {
	case PossessionBegin:
		return "begin"
	case PossessionEnd:
		return "end"
	case PossessionTeleport:
		return "teleport"
	default:
		return "unknown"
	}
}

// PossessionRequest is a one-shot command for the possession system. Target
// is the viewpoint entity for PossessionBegin.
type PossessionRequest struct {
	Action PossessionAction
	Target uint64
}

var PossessionRequestComponent = NewComponent[PossessionRequest]()
