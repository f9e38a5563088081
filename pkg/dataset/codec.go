package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"slotbench/pkg/common"
)

// Key-list blob layout: [CRC32 4B] [Count 4B] [Count x 32B keys].
// The CRC covers everything after itself.

const blobHeaderSize = 4 + 4

var (
	ErrBlobTruncated = errors.New("dataset: key blob truncated")
	ErrBlobChecksum  = errors.New("dataset: key blob crc mismatch")
)

func encodeKeys(keys []common.Key) []byte {
	buf := make([]byte, blobHeaderSize+len(keys)*common.KeySize)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(keys)))
	for i, k := range keys {
		copy(buf[blobHeaderSize+i*common.KeySize:], k[:])
	}
	binary.LittleEndian.PutUint32(buf[0:4], crc32.ChecksumIEEE(buf[4:]))
	return buf
}

func decodeKeys(blob []byte) ([]common.Key, error) {
	if len(blob) < blobHeaderSize {
		return nil, ErrBlobTruncated
	}
	storedCRC := binary.LittleEndian.Uint32(blob[0:4])
	if crc32.ChecksumIEEE(blob[4:]) != storedCRC {
		return nil, ErrBlobChecksum
	}

	count := binary.LittleEndian.Uint32(blob[4:8])
	want := blobHeaderSize + int(count)*common.KeySize
	if len(blob) != want {
		return nil, fmt.Errorf("%w: %d bytes for %d keys", ErrBlobTruncated, len(blob), count)
	}

	keys := make([]common.Key, count)
	for i := range keys {
		copy(keys[i][:], blob[blobHeaderSize+i*common.KeySize:])
	}
	return keys, nil
}
