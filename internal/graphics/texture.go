package graphics

import (
	"fmt"
	"image"
	imgdraw "image/draw"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"

	"chime-hunt/internal/mesh"
)

// LoadTexture loads, uploads and mipmap-generates a 2D texture. Images with
// non-power-of-two dimensions are rescaled so mipmapping behaves on older
// GL implementations.
func LoadTexture(path string) (*mesh.Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	bounds := img.Bounds()
	w := nextPowerOfTwo(bounds.Dx())
	h := nextPowerOfTwo(bounds.Dy())

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		imgdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, imgdraw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(w),
		int32(h),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &mesh.Texture{ID: texture, Width: w, Height: h}, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
