package export

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
)

// Compressed block layout: [magic:4][rawLen:4][crc32(payload):4][payload:N]
// where payload is the snappy encoding of the JSON document.
var blockMagic = [4]byte{'R', 'T', 'S', 'Z'}

const blockHeaderLen = 12

// Compress wraps data in a checksummed snappy block.
func Compress(data []byte) []byte {
	payload := snappy.Encode(nil, data)
	out := make([]byte, blockHeaderLen, blockHeaderLen+len(payload))
	copy(out, blockMagic[:])
	binary.BigEndian.PutUint32(out[4:8], uint32(len(data)))
	binary.BigEndian.PutUint32(out[8:12], crc32.ChecksumIEEE(payload))
	return append(out, payload...)
}

// IsCompressed reports whether b starts with a compressed block header.
func IsCompressed(b []byte) bool {
	return len(b) >= len(blockMagic) && [4]byte(b[:4]) == blockMagic
}

// Decompress verifies and unwraps a block written by Compress.
func Decompress(b []byte) ([]byte, error) {
	if !IsCompressed(b) || len(b) < blockHeaderLen {
		return nil, ErrCorruptBlock
	}
	rawLen := binary.BigEndian.Uint32(b[4:8])
	sum := binary.BigEndian.Uint32(b[8:12])
	payload := b[blockHeaderLen:]
	if crc32.ChecksumIEEE(payload) != sum {
		return nil, ErrChecksum
	}
	data, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlock, err)
	}
	if uint32(len(data)) != rawLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, header says %d", ErrCorruptBlock, len(data), rawLen)
	}
	return data, nil
}
