package attrib

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Sizes in bytes of one packed row.
const (
	ColorStride     = 4
	TransformStride = 16
)

// uploadUsage is the usage of both attribute buffers. The view binds them
// as storage and fills them with a queue write.
var uploadUsage = gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst

// Buffer is packed attribute data ready for a GPU buffer write.
type Buffer struct {
	// Label is the debug name of the buffer.
	Label string

	// Usage is the usage the destination buffer is created with.
	Usage gputypes.BufferUsage

	// Data is the little-endian buffer contents.
	Data []byte
}

// Size returns the buffer size in bytes.
func (b Buffer) Size() uint64 {
	return uint64(len(b.Data))
}

// Upload packs the colour and transform tables. Colours are four bytes
// per row, transforms four float32 per row in ScaleX, ScaleY, TranslateX,
// TranslateY order.
func (s *Set) Upload() (colors, transforms Buffer) {
	colorData := make([]byte, 0, len(s.Colors)*ColorStride)
	for _, c := range s.Colors {
		colorData = append(colorData, c.R, c.G, c.B, c.A)
	}

	transformData := make([]byte, 0, len(s.Transforms)*TransformStride)
	for _, t := range s.Transforms {
		transformData = binary.LittleEndian.AppendUint32(transformData, math.Float32bits(t.ScaleX))
		transformData = binary.LittleEndian.AppendUint32(transformData, math.Float32bits(t.ScaleY))
		transformData = binary.LittleEndian.AppendUint32(transformData, math.Float32bits(t.TranslateX))
		transformData = binary.LittleEndian.AppendUint32(transformData, math.Float32bits(t.TranslateY))
	}

	colors = Buffer{Label: "path-colors", Usage: uploadUsage, Data: colorData}
	transforms = Buffer{Label: "path-transforms", Usage: uploadUsage, Data: transformData}
	return colors, transforms
}

// DecodeTransforms unpacks a transform buffer produced by Upload.
func DecodeTransforms(data []byte) []Transform2D {
	out := make([]Transform2D, len(data)/TransformStride)
	for i := range out {
		row := data[i*TransformStride:]
		out[i] = Transform2D{
			ScaleX:     math.Float32frombits(binary.LittleEndian.Uint32(row[0:])),
			ScaleY:     math.Float32frombits(binary.LittleEndian.Uint32(row[4:])),
			TranslateX: math.Float32frombits(binary.LittleEndian.Uint32(row[8:])),
			TranslateY: math.Float32frombits(binary.LittleEndian.Uint32(row[12:])),
		}
	}
	return out
}
