package errors

// pre-defined `Errors`
//
// 1xx: protocol model construction, 11x: caller misuse of the encode API,
// 12x: object lifetime, 13x: malformed wire content (fatal to the
// connection), 14x: dispatch drops (non-fatal), 15x: registry invariants,
// 16x: transport.
var (
	BadDescriptor       = NewError(100, "invalid protocol descriptor")
	InvalidArgumentType = NewError(101, "invalid argument type")
	ValueOutOfRange     = NewError(110, "argument value out of range")
	NullNotAllowed      = NewError(111, "null for non-nullable argument")
	StaleObject         = NewError(120, "object already destroyed")
	DanglingObject      = NewError(121, "object already destroyed or never registered")
	ProtocolViolation   = NewError(130, "malformed wire content")
	UnknownObject       = NewError(140, "event for unknown object")
	InvalidOpcode       = NewError(141, "opcode out of range")
	ReentrantDispatch   = NewError(142, "reentrant event dispatch")
	DuplicateIdentity   = NewError(150, "object identity already registered")
	ConnectionClosed    = NewError(160, "connection closed")
)
