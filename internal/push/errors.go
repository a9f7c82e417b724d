package push

import "fmt"

// ChannelError reports a push transport failure. The channel is closed
// when it occurs; reconnecting is the caller's policy.
type ChannelError struct {
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("push channel failed: %v", e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// ProtocolViolation reports a push event whose payload does not match
// the protocol, e.g. a handshake without a token or an event naming an
// unknown team. It is surfaced but never terminates the session.
type ProtocolViolation struct {
	Kind   string
	Reason string
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation in %q event: %s", e.Kind, e.Reason)
}
