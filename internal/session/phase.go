package session

type Phase int

const (
	Disconnected Phase = iota
	Connecting
	AwaitingAuth
	AuthenticatedNoGame
	PlacingShips
	InProgress
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "DISCONNECTED"
	case Connecting:
		return "CONNECTING"
	case AwaitingAuth:
		return "AWAITING_AUTH"
	case AuthenticatedNoGame:
		return "AUTHENTICATED_NO_GAME"
	case PlacingShips:
		return "PLACING_SHIPS"
	case InProgress:
		return "IN_PROGRESS"
	case Terminal:
		return "TERMINAL"
	default:
		return "UNKNOWN"
	}
}
