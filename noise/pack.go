package noise

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// PackCompression selects the codec applied to the whole content section.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

func (c PackCompression) String() string {
	switch c {
	case PackCompNone:
		return "none"
	case PackCompZlib:
		return "zlib"
	case PackCompZstd:
		return "zstd"
	}
	return fmt.Sprintf("codec(%d)", uint8(c))
}

// EntryKind tells how an entry payload is laid out.
type EntryKind uint8

const (
	// KindVolume payloads are raw volumes in WriteVolume order, Dims = H, W, D.
	KindVolume EntryKind = 1
	// KindImage payloads are NRGBA pixels row by row, Dims = H, W, 4.
	KindImage EntryKind = 2
)

const (
	texPackMagic   = "NTEXPACK"
	texPackVersion = 1
)

// TexEntry is one named asset in a texture pack.
type TexEntry struct {
	Name    string
	Kind    EntryKind
	Dims    [3]uint32
	Payload []byte
}

// TexPack bundles the generated noise volume and colormap strip.
type TexPack struct {
	Entries []TexEntry
}

// AddVolume appends q serialized in depth-major order.
func (p *TexPack) AddVolume(name string, q *QuantizedVolume) {
	p.Entries = append(p.Entries, TexEntry{
		Name:    name,
		Kind:    KindVolume,
		Dims:    [3]uint32{uint32(q.H), uint32(q.W), uint32(q.D)},
		Payload: VolumeBytes(q),
	})
}

// AddImage appends img as tightly packed NRGBA rows.
func (p *TexPack) AddImage(name string, img *image.NRGBA) {
	b := img.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[off:off+b.Dx()*4]...)
	}
	p.Entries = append(p.Entries, TexEntry{
		Name:    name,
		Kind:    KindImage,
		Dims:    [3]uint32{uint32(b.Dy()), uint32(b.Dx()), 4},
		Payload: pix,
	})
}

// Volume decodes a KindVolume entry.
func (e TexEntry) Volume() (*QuantizedVolume, error) {
	if e.Kind != KindVolume {
		return nil, fmt.Errorf("entry %s: kind %d is not a volume", e.Name, e.Kind)
	}
	return VolumeFromBytes(e.Payload, int(e.Dims[0]), int(e.Dims[1]), int(e.Dims[2]))
}

// Image decodes a KindImage entry.
func (e TexEntry) Image() (*image.NRGBA, error) {
	if e.Kind != KindImage {
		return nil, fmt.Errorf("entry %s: kind %d is not an image", e.Name, e.Kind)
	}
	h, w := int(e.Dims[0]), int(e.Dims[1])
	if err := checkDims(h, w, 4); err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.Name, err)
	}
	if e.Dims[2] != 4 || len(e.Payload) != h*w*4 {
		return nil, fmt.Errorf("entry %s: %d bytes for %dx%d NRGBA image", e.Name, len(e.Payload), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, e.Payload)
	return img, nil
}

func (e TexEntry) expectedLen() uint64 {
	return uint64(e.Dims[0]) * uint64(e.Dims[1]) * uint64(e.Dims[2])
}

// Marshal encodes the pack. Every entry carries the xxhash64 of its payload.
func (p *TexPack) Marshal(comp PackCompression) ([]byte, error) {
	content := make([]byte, 0, 1024)
	content = writeUVarint(content, uint32(len(p.Entries)))
	for _, e := range p.Entries {
		if len(e.Name) > 0xFFFF {
			return nil, fmt.Errorf("entry name too long: %.32s...", e.Name)
		}
		if e.Kind != KindVolume && e.Kind != KindImage {
			return nil, fmt.Errorf("entry %s: unknown kind %d", e.Name, e.Kind)
		}
		if uint64(len(e.Payload)) != e.expectedLen() {
			return nil, fmt.Errorf("entry %s: payload is %d bytes, dims %v need %d", e.Name, len(e.Payload), e.Dims, e.expectedLen())
		}
		content = writeUVarint(content, uint32(len(e.Name)))
		content = append(content, e.Name...)
		content = append(content, byte(e.Kind))
		for _, d := range e.Dims {
			content = binary.LittleEndian.AppendUint32(content, d)
		}
		content = binary.LittleEndian.AppendUint64(content, xxhash.Sum64(e.Payload))
		content = writeUVarint(content, uint32(len(e.Payload)))
		content = append(content, e.Payload...)
	}

	var finalContent []byte
	switch comp {
	case PackCompNone:
		finalContent = content
	case PackCompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		finalContent = buf.Bytes()
	case PackCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		finalContent = enc.EncodeAll(content, nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("unsupported pack compression: %d", comp)
	}

	var out bytes.Buffer
	out.WriteString(texPackMagic)
	out.WriteByte(texPackVersion)
	out.WriteByte(byte(comp))
	out.Write(finalContent)
	return out.Bytes(), nil
}

// UnmarshalTexPack parses a pack and verifies every entry digest.
func UnmarshalTexPack(data []byte) (*TexPack, PackCompression, error) {
	if len(data) < 10 || string(data[:8]) != texPackMagic {
		return nil, 0, fmt.Errorf("not a texture pack")
	}
	if data[8] != texPackVersion {
		return nil, 0, fmt.Errorf("unsupported texture pack version: %d", data[8])
	}
	comp := PackCompression(data[9])
	content := data[10:]
	switch comp {
	case PackCompNone:
	case PackCompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(content))
		if err != nil {
			return nil, 0, err
		}
		defer zr.Close()
		b, err := io.ReadAll(zr)
		if err != nil {
			return nil, 0, err
		}
		content = b
	case PackCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		b, err := dec.DecodeAll(content, nil)
		if err != nil {
			return nil, 0, err
		}
		content = b
	default:
		return nil, 0, fmt.Errorf("unsupported pack compression: %d", comp)
	}

	pos := 0
	n, err := readUVarint(content, &pos)
	if err != nil {
		return nil, 0, fmt.Errorf("entry count: %w", err)
	}
	pack := &TexPack{Entries: make([]TexEntry, 0, min(int(n), 64))}
	for i := uint32(0); i < n; i++ {
		e, err := readEntry(content, &pos)
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		pack.Entries = append(pack.Entries, e)
	}
	return pack, comp, nil
}

func readEntry(src []byte, pos *int) (TexEntry, error) {
	var e TexEntry
	nameLen, err := readUVarint(src, pos)
	if err != nil {
		return e, err
	}
	name, err := readBytes(src, pos, int(nameLen))
	if err != nil {
		return e, err
	}
	e.Name = string(name)
	fixed, err := readBytes(src, pos, 1+3*4+8)
	if err != nil {
		return e, err
	}
	e.Kind = EntryKind(fixed[0])
	for j := range e.Dims {
		e.Dims[j] = binary.LittleEndian.Uint32(fixed[1+4*j:])
	}
	sum := binary.LittleEndian.Uint64(fixed[13:])
	plen, err := readUVarint(src, pos)
	if err != nil {
		return e, err
	}
	payload, err := readBytes(src, pos, int(plen))
	if err != nil {
		return e, err
	}
	if uint64(plen) != e.expectedLen() {
		return e, fmt.Errorf("%s: payload is %d bytes, dims %v need %d", e.Name, plen, e.Dims, e.expectedLen())
	}
	if got := xxhash.Sum64(payload); got != sum {
		return e, fmt.Errorf("%w: %s has %016x, header says %016x", ErrChecksum, e.Name, got, sum)
	}
	e.Payload = append([]byte(nil), payload...)
	return e, nil
}
