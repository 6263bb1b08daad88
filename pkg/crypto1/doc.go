/*
Package crypto1 implements the CRYPTO1 stream cipher used by MIFARE
Classic cards for authentication and over-the-air encryption.

The cipher is a 48-bit nonlinear-filtered LFSR. The register is split into
two 24-bit halves, odd and even, either packed as two uint32 values (the
form used by [State]) or split into three little-endian bytes per half
(the form used by [ByteState] for interchange with trace captures and
other tools). The two forms are interconvertible; see state_test.go.

# Two representations

[State] holds odd/even as packed 24-bit integers and is the form every
operation in this package — [ClockBit], [ClockByte], [ClockWord], the
rollback primitives, and the bulk stream operations — runs against.
[ByteState] holds odd/even as three little-endian bytes apiece, the layout
the reference firmware keeps live in CPU registers to avoid a 32-bit
pack/unpack on every clock. [ByteState.Pack] and [State.Unpack] convert
between the two, losslessly for a state with nothing set above bit 23
(such as one fresh from [Init]); callers that need the register form for
interop with trace captures or other tools convert at the boundary rather
than this package running two parallel sets of algorithms.

# Bit ordering

Bytes transmit LSB-first. 32-bit nonces transmit in the MIFARE big-endian
bit order: bit i of a 32-bit quantity corresponds to wire position (i^24).
[ClockWord] and [RollbackWord] centralize this; see bits.go's beBit.

# Determinism and side channels

Every operation here is a synchronous pure function over caller-owned
state. None of it is constant-time — the filter's shifts and table
lookups are indexed by secret-dependent data — and that is an accepted property of this
implementation, not an oversight; deployments requiring constant-time
behavior must not use this package directly against secret key material
in a context where timing is observable by an adversary.
*/
package crypto1
