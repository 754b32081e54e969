package recordio

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder(w io.Writer) *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		enc := v.(*zstd.Encoder)
		enc.Reset(w)
		return enc
	}
	enc, _ := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r)
}

type zstdWriter struct {
	*zstd.Encoder
}

func (z zstdWriter) Close() error {
	err := z.Encoder.Close()
	zstdEncoderPool.Put(z.Encoder)
	return err
}

type zstdReader struct {
	*zstd.Decoder
}

func (z zstdReader) Close() error {
	_ = z.Decoder.Reset(nil)
	zstdDecoderPool.Put(z.Decoder)
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w in the given compression. Close flushes the stream
// but does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		return zstdWriter{getZstdEncoder(w)}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, ErrUnknownCompression
	}
}

// NewReader wraps r to undo the given compression.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := getZstdDecoder(r)
		if err != nil {
			return nil, err
		}
		return zstdReader{dec}, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, ErrUnknownCompression
	}
}
