package domain

// OutcomeKind is the closed set of results a redemption attempt can
// end in, local or remote.
type OutcomeKind string

const (
	OutcomeSuccess          OutcomeKind = "success"
	OutcomeInvalidCode      OutcomeKind = "invalid_code"
	OutcomeAlreadyUsed      OutcomeKind = "already_used"
	OutcomeIncorrectUser    OutcomeKind = "incorrect_user"
	OutcomeExpiredCode      OutcomeKind = "expired_code"
	OutcomeUnavailable      OutcomeKind = "unavailable_code"
	OutcomeBadRequest       OutcomeKind = "bad_request"
	OutcomeUnknownRemote    OutcomeKind = "unknown_remote_error"
	OutcomeTransportFailure OutcomeKind = "transport_failure"
	OutcomeParseFailure     OutcomeKind = "parse_failure"
)

// Outcome is the normalized result of one remote redemption call.
// Message carries the raw remote error text for OutcomeUnknownRemote.
// Cause carries the underlying error for transport and parse failures.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Cause   error
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}
