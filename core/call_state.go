package core

type CallState int

const (
	CallStateUnknown CallState = iota
	CallStateExecuting
	CallStateExecutingFailed
	CallStateRetrieved
	CallStateCanceled
)

func CallStateFromString(s string) CallState {
	switch s {
	case CallStateUnknown.String():
		return CallStateUnknown

	case CallStateExecuting.String():
		return CallStateExecuting
	case CallStateExecutingFailed.String():
		return CallStateExecutingFailed

	case CallStateRetrieved.String():
		return CallStateRetrieved

	case CallStateCanceled.String():
		return CallStateCanceled

	default:
		return CallStateUnknown
	}
}

func (s CallState) String() string {
	switch s {
	case CallStateUnknown:
		return "unknown"

	case CallStateExecuting:
		return "executing"
	case CallStateExecutingFailed:
		return "executing_failed"

	case CallStateRetrieved:
		return "retrieved"

	case CallStateCanceled:
		return "canceled"

	default:
		return "unknown"
	}
}

func (s CallState) isFinal() bool {
	return s == CallStateExecutingFailed || s == CallStateRetrieved || s == CallStateCanceled
}
