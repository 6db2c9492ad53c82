package media

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWebP synthesizes a minimal RIFF container around the given chunks.
func buildWebP(chunks ...[]byte) []byte {
	body := []byte("WEBP")
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func chunk(fourCC string, payload []byte) []byte {
	c := []byte(fourCC)
	c = binary.LittleEndian.AppendUint32(c, uint32(len(payload)))
	c = append(c, payload...)
	if len(payload)%2 == 1 {
		c = append(c, 0)
	}
	return c
}

func vp8xChunk(animated bool, width, height int) []byte {
	p := make([]byte, 10)
	if animated {
		p[0] |= 0x02
	}
	w, h := width-1, height-1
	p[4], p[5], p[6] = byte(w), byte(w>>8), byte(w>>16)
	p[7], p[8], p[9] = byte(h), byte(h>>8), byte(h>>16)
	return chunk("VP8X", p)
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.webp")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadWebPInfoVP8X(t *testing.T) {
	path := writeTemp(t, buildWebP(vp8xChunk(true, 512, 512)))
	info, err := ReadWebPInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Animated)
	assert.Equal(t, 512, info.Width)
	assert.Equal(t, 512, info.Height)
}

func TestReadWebPInfoLossy(t *testing.T) {
	p := make([]byte, 10)
	p[3], p[4], p[5] = 0x9d, 0x01, 0x2a
	binary.LittleEndian.PutUint16(p[6:8], 320)
	binary.LittleEndian.PutUint16(p[8:10], 240)
	path := writeTemp(t, buildWebP(chunk("VP8 ", p)))

	info, err := ReadWebPInfo(path)
	require.NoError(t, err)
	assert.False(t, info.Animated)
	assert.Equal(t, 320, info.Width)
	assert.Equal(t, 240, info.Height)
}

func TestReadWebPInfoLossless(t *testing.T) {
	p := make([]byte, 5)
	p[0] = 0x2f
	bits := uint32(100-1) | uint32(80-1)<<14
	binary.LittleEndian.PutUint32(p[1:5], bits)
	path := writeTemp(t, buildWebP(chunk("VP8L", p)))

	info, err := ReadWebPInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 100, info.Width)
	assert.Equal(t, 80, info.Height)
}

func TestReadWebPInfoSkipsLeadingChunks(t *testing.T) {
	path := writeTemp(t, buildWebP(chunk("ICCP", []byte{1, 2, 3}), vp8xChunk(false, 64, 64)))
	info, err := ReadWebPInfo(path)
	require.NoError(t, err)
	assert.False(t, info.Animated)
	assert.Equal(t, 64, info.Width)
}

func TestReadWebPInfoRejectsNonWebP(t *testing.T) {
	path := writeTemp(t, []byte("GIF89a not a webp at all"))
	_, err := ReadWebPInfo(path)
	assert.Error(t, err)
}

func TestIsValidSticker(t *testing.T) {
	ok := writeTemp(t, buildWebP(vp8xChunk(false, 512, 512)))
	assert.True(t, IsValidSticker(ok))

	big := writeTemp(t, buildWebP(vp8xChunk(false, 1024, 512)))
	assert.False(t, IsValidSticker(big))

	assert.False(t, IsValidSticker(filepath.Join(t.TempDir(), "missing.webp")))
}

func TestIsAnimatedWebP(t *testing.T) {
	anim := writeTemp(t, buildWebP(vp8xChunk(true, 128, 128)))
	assert.True(t, IsAnimatedWebP(anim))

	still := writeTemp(t, buildWebP(vp8xChunk(false, 128, 128)))
	assert.False(t, IsAnimatedWebP(still))
}

func TestTypeByExtension(t *testing.T) {
	assert.Equal(t, "image/jpeg", TypeByExtension("IMG-20231224-WA0001.JPG"))
	assert.Equal(t, "audio/ogg", TypeByExtension("PTT-20231224-WA0012.opus"))
	assert.Equal(t, "video/3gpp", TypeByExtension("clip.3gp"))
	assert.Equal(t, "", TypeByExtension("mystery.xyz"))
	assert.Equal(t, "", TypeByExtension("noextension"))
}
