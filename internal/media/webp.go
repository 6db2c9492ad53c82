package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// WebPInfo is what a RIFF scan of a .webp file yields.
type WebPInfo struct {
	Animated bool
	Width    int
	Height   int
}

// maxStickerDim is the WhatsApp sticker canvas size.
const maxStickerDim = 512

var errNotWebP = errors.New("not a webp file")

// ReadWebPInfo scans the RIFF chunk list of a WebP file. Extended files
// (VP8X) carry an animation flag and the canvas size directly; simple lossy
// (VP8) and lossless (VP8L) files encode dimensions in their bitstream
// header and are never animated.
func ReadWebPInfo(path string) (WebPInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WebPInfo{}, err
	}
	defer f.Close()
	return readWebPInfo(f)
}

func readWebPInfo(r io.Reader) (WebPInfo, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return WebPInfo{}, errNotWebP
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WEBP" {
		return WebPInfo{}, errNotWebP
	}

	var chunk [8]byte
	for {
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return WebPInfo{}, fmt.Errorf("webp chunk header: %w", err)
		}
		fourCC := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch fourCC {
		case "VP8X":
			payload := make([]byte, 10)
			if _, err := io.ReadFull(r, payload); err != nil {
				return WebPInfo{}, fmt.Errorf("vp8x payload: %w", err)
			}
			return WebPInfo{
				Animated: payload[0]&0x02 != 0,
				Width:    1 + le24(payload[4:7]),
				Height:   1 + le24(payload[7:10]),
			}, nil

		case "VP8 ":
			// lossy keyframe: 3-byte frame tag, 3-byte start code, dims
			payload := make([]byte, 10)
			if _, err := io.ReadFull(r, payload); err != nil {
				return WebPInfo{}, fmt.Errorf("vp8 payload: %w", err)
			}
			if payload[3] != 0x9d || payload[4] != 0x01 || payload[5] != 0x2a {
				return WebPInfo{}, errors.New("vp8 start code missing")
			}
			return WebPInfo{
				Width:  int(binary.LittleEndian.Uint16(payload[6:8]) & 0x3fff),
				Height: int(binary.LittleEndian.Uint16(payload[8:10]) & 0x3fff),
			}, nil

		case "VP8L":
			payload := make([]byte, 5)
			if _, err := io.ReadFull(r, payload); err != nil {
				return WebPInfo{}, fmt.Errorf("vp8l payload: %w", err)
			}
			if payload[0] != 0x2f {
				return WebPInfo{}, errors.New("vp8l signature missing")
			}
			bits := binary.LittleEndian.Uint32(payload[1:5])
			return WebPInfo{
				Width:  int(bits&0x3fff) + 1,
				Height: int(bits>>14&0x3fff) + 1,
			}, nil

		default:
			// chunks are padded to even sizes
			skip := int64(size) + int64(size&1)
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return WebPInfo{}, fmt.Errorf("skip %s chunk: %w", fourCC, err)
			}
		}
	}
}

func le24(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}

// IsAnimatedWebP reports whether path is an animated WebP. Anything that is
// not readable or not WebP counts as not animated.
func IsAnimatedWebP(path string) bool {
	info, err := ReadWebPInfo(path)
	return err == nil && info.Animated
}

// IsValidSticker reports whether path is a WebP within the sticker canvas.
func IsValidSticker(path string) bool {
	info, err := ReadWebPInfo(path)
	return err == nil && info.Width > 0 && info.Height > 0 &&
		info.Width <= maxStickerDim && info.Height <= maxStickerDim
}
