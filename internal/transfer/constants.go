package transfer

const (
	// DefaultChunkSize is how many file bytes ride in one binary frame.
	// 256 KiB keeps frames well under the relay's 1 MiB message limit
	// while keeping the header-to-payload overhead negligible.
	DefaultChunkSize = 256 * 1024
)
