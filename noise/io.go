package noise

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
)

// WriteVolume serializes q as raw bytes in (D, H, W) order: depth is the
// outermost axis, then rows, then columns. No header, one byte per voxel.
func WriteVolume(w io.Writer, q *QuantizedVolume) error {
	bw := bufio.NewWriterSize(w, 1<<16)
	layer := make([]byte, q.H*q.W)
	for d := 0; d < q.D; d++ {
		p := 0
		for h := 0; h < q.H; h++ {
			for x := 0; x < q.W; x++ {
				layer[p] = q.Data[(h*q.W+x)*q.D+d]
				p++
			}
		}
		if _, err := bw.Write(layer); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// VolumeBytes returns the serialized form of q.
func VolumeBytes(q *QuantizedVolume) []byte {
	var buf bytes.Buffer
	buf.Grow(len(q.Data))
	_ = WriteVolume(&buf, q)
	return buf.Bytes()
}

// Digest is the xxhash64 of the serialized volume.
func Digest(q *QuantizedVolume) uint64 {
	d := xxhash.New()
	_ = WriteVolume(d, q)
	return d.Sum64()
}

// SaveVolume writes q to filename, creating or truncating it.
func SaveVolume(q *QuantizedVolume, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return ioError("create", filename, err)
	}
	if err := WriteVolume(f, q); err != nil {
		f.Close()
		return ioError("write", filename, err)
	}
	if err := f.Close(); err != nil {
		return ioError("close", filename, err)
	}
	return nil
}

// ReadVolume reads an h x w x d volume written by WriteVolume and restores
// the logical [h][w][d] order.
func ReadVolume(r io.Reader, h, w, d int) (*QuantizedVolume, error) {
	q, err := NewQuantizedVolume(h, w, d)
	if err != nil {
		return nil, err
	}
	layer := make([]byte, h*w)
	for z := 0; z < d; z++ {
		if _, err := io.ReadFull(r, layer); err != nil {
			return nil, fmt.Errorf("depth layer %d: %w", z, err)
		}
		p := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				q.Data[(y*w+x)*d+z] = layer[p]
				p++
			}
		}
	}
	return q, nil
}

// VolumeFromBytes is ReadVolume over an in-memory buffer; the length must
// match exactly.
func VolumeFromBytes(data []byte, h, w, d int) (*QuantizedVolume, error) {
	if err := checkDims(h, w, d); err != nil {
		return nil, err
	}
	if len(data) != h*w*d {
		return nil, fmt.Errorf("%w: %d bytes for %dx%dx%d volume (want %d)", ErrIO, len(data), h, w, d, h*w*d)
	}
	return ReadVolume(bytes.NewReader(data), h, w, d)
}

func LoadVolume(filename string, h, w, d int) (*QuantizedVolume, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, ioError("open", filename, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, ioError("stat", filename, err)
	}
	if err := checkDims(h, w, d); err != nil {
		return nil, err
	}
	if st.Size() != int64(h*w*d) {
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d for %dx%dx%d", ErrIO, filename, st.Size(), h*w*d, h, w, d)
	}
	q, err := ReadVolume(bufio.NewReader(f), h, w, d)
	if err != nil {
		return nil, ioError("read", filename, err)
	}
	return q, nil
}
