package constant

const (
	EndpointOverride = "endpoint_override"
	TempFileSuffix   = ".tmp"
)

// KTX 1.1 container layout.
const (
	HeaderSize        = 64
	IdentifierSize    = 12
	EndiannessNative  = 0x04030201
	EndiannessSwapped = 0x01020304
	LevelAlignment    = 4
	CubeFaces         = 6
)

var Identifier = [IdentifierSize]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}
