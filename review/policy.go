package review

// Resolution says how a review ended.
type Resolution uint8

const (
	// ResolutionAccepted means the original span was deleted and the
	// improved text kept.
	ResolutionAccepted Resolution = iota
	// ResolutionRejected means the inserted span was deleted and the
	// original text kept.
	ResolutionRejected
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolutionAccepted:
		return "accept"
	case ResolutionRejected:
		return "reject"
	default:
		return "unknown"
	}
}

// Policy lets a host veto or rewrite review requests and observe how
// reviews resolve. Hooks run synchronously inside the controller
// operation; a policy must not dispatch into the session.
type Policy interface {
	// ReviewRequested may rewrite the request (improved text, classes,
	// id) before it is applied. Returning false drops the request.
	ReviewRequested(req Request) (Request, bool)

	// ReviewResolved observes a successful accept or reject, after the
	// record has been removed.
	ReviewResolved(rec Record, res Resolution)
}
