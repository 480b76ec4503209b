package dnssd

import "errors"

// Errors surfaced on the Register/Browse result streams. Environment
// errors (ErrAddressAlreadyTaken) are worth retrying once the cause is
// gone; ErrClosing is a clean shutdown, not a failure.
var (
	ErrAddressAlreadyTaken = errors.New("dnssd: address already taken")
	ErrNameAlreadyTaken    = errors.New("dnssd: name already taken")
	ErrServiceRemoved      = errors.New("dnssd: service removed")
	ErrClosing             = errors.New("dnssd: closing")
	ErrInvalidMessage      = errors.New("dnssd: invalid message")
)

var (
	errJoiningGroup = errors.New("dnssd: failed to join multicast group on any interface")
	errMissingRData = errors.New("dnssd: resource record has no rdata")
)
