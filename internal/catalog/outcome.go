package catalog

import "fmt"

// OutcomeKind classifies what happened to one submission attempt.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	// OutcomeValidationBlocked: the draft failed validation; nothing was
	// sent.
	OutcomeValidationBlocked
	// OutcomeAuthMissing: the operation needs a token and none is
	// stored; nothing was sent.
	OutcomeAuthMissing
	// OutcomeTimeout: the request exceeded its deadline.
	OutcomeTimeout
	// OutcomeServerRejected: a response arrived outside the success
	// range.
	OutcomeServerRejected
	// OutcomeNetworkUnreachable: no response was received at all.
	OutcomeNetworkUnreachable
	// OutcomeUnknown: the request could not be constructed or sent for
	// any other reason.
	OutcomeUnknown
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationBlocked:
		return "validation_blocked"
	case OutcomeAuthMissing:
		return "auth_missing"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeServerRejected:
		return "server_rejected"
	case OutcomeNetworkUnreachable:
		return "network_unreachable"
	case OutcomeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Persistent reports whether a notification for this outcome should stay
// on screen until dismissed. Hard failures persist, everything else
// auto-dismisses; one rule, applied to every form.
func (k OutcomeKind) Persistent() bool {
	return k == OutcomeTimeout || k == OutcomeServerRejected
}

// Failed reports whether the outcome is any failure class.
func (k OutcomeKind) Failed() bool { return k != OutcomeSuccess }

// Outcome is the classified result of one submission.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	// Status is set for ServerRejected.
	Status int
	// FieldErrors is set for ValidationBlocked.
	FieldErrors map[Field]string
	// Entity is the server-decoded record on Success, when the response
	// carried one.
	Entity *Entity
	// ForcedLogout is set when a 401 cleared the session; the caller
	// must redirect to login.
	ForcedLogout bool
}

func success(msg string, e *Entity) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: msg, Entity: e}
}

func blocked(r Result) Outcome {
	return Outcome{
		Kind:        OutcomeValidationBlocked,
		Message:     "fix the highlighted fields",
		FieldErrors: r.FieldErrors,
	}
}
