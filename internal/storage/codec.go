package storage

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/SeamusWaldron/twisty"
)

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func codec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// EncodeHistory compresses a move history, savepoints included.
func EncodeHistory(moves []twisty.Move) ([]byte, error) {
	enc, _, err := codec()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd codec: %w", err)
	}
	return enc.EncodeAll([]byte(twisty.FormatMoves(moves)), nil), nil
}

// DecodeHistory reverses EncodeHistory.
func DecodeHistory(blob []byte) ([]twisty.Move, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	_, dec, err := codec()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd codec: %w", err)
	}
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress history: %w", err)
	}
	moves, err := twisty.ParseMoves(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return moves, nil
}

// StateHash fingerprints a facelet string so equal end states can be
// grouped without comparing the full string.
func StateHash(facelets string) string {
	return strconv.FormatUint(xxhash.Sum64String(facelets), 16)
}
