package graphics

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"

	"chime-hunt/internal/profiling"
	"chime-hunt/internal/terrain"
)

const shadersDir = "assets/shaders/terrain"

var (
	terrainVertShader = filepath.Join(shadersDir, "main.vert")
	terrainFragShader = filepath.Join(shadersDir, "main.frag")
)

// chunkBuffers is the uploaded GPU state for one chunk mesh.
type chunkBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// TerrainRenderer draws the current render set. Chunk meshes are built on
// background goroutines, so GPU buffers are uploaded lazily the first time a
// chunk is drawn and freed once the chunk leaves the render set.
type TerrainRenderer struct {
	shader    *Shader
	uploaded  map[terrain.ChunkCoord]*chunkBuffers
	wireframe bool
}

// NewTerrainRenderer creates a terrain renderer; Init must run on the GL thread.
func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{
		uploaded: make(map[terrain.ChunkCoord]*chunkBuffers),
	}
}

// Init compiles the terrain shader.
func (r *TerrainRenderer) Init() error {
	shader, err := NewShader(terrainVertShader, terrainFragShader)
	if err != nil {
		return err
	}
	r.shader = shader
	return nil
}

// ToggleWireframe flips wireframe drawing.
func (r *TerrainRenderer) ToggleWireframe() {
	r.wireframe = !r.wireframe
}

// Render draws every chunk in items with the camera's current view.
func (r *TerrainRenderer) Render(items []*terrain.Chunk, cam *Camera) {
	defer profiling.Track("renderer.Terrain")()

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	r.shader.Use()
	r.shader.SetMatrix4("view", &view[0])
	r.shader.SetMatrix4("projection", &proj[0])
	r.shader.SetVector3("lightDir", 0.4, -0.8, 0.3)
	r.shader.SetInt("terrainTexture", 0)

	visible := make(map[terrain.ChunkCoord]struct{}, len(items))
	for _, chunk := range items {
		visible[chunk.Coord()] = struct{}{}

		buffers, ok := r.uploaded[chunk.Coord()]
		if !ok {
			buffers = uploadMesh(chunk)
			r.uploaded[chunk.Coord()] = buffers
		}

		model := chunk.Transform()
		r.shader.SetMatrix4("model", &model[0])

		hasTexture := int32(0)
		if tex := chunk.Mesh().Texture; tex != nil {
			hasTexture = 1
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex.ID)
		}
		r.shader.SetInt("hasTexture", hasTexture)

		gl.BindVertexArray(buffers.vao)
		gl.DrawElements(gl.TRIANGLES, buffers.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)

	r.prune(visible)
}

// prune frees GPU buffers for chunks that left the render set.
func (r *TerrainRenderer) prune(visible map[terrain.ChunkCoord]struct{}) {
	for coord, buffers := range r.uploaded {
		if _, ok := visible[coord]; ok {
			continue
		}
		deleteBuffers(buffers)
		delete(r.uploaded, coord)
	}
}

// Dispose frees all GPU state.
func (r *TerrainRenderer) Dispose() {
	for coord, buffers := range r.uploaded {
		deleteBuffers(buffers)
		delete(r.uploaded, coord)
	}
	if r.shader != nil {
		r.shader.Dispose()
	}
}

// uploadMesh interleaves position/normal/uv streams into a single VBO.
func uploadMesh(chunk *terrain.Chunk) *chunkBuffers {
	m := chunk.Mesh()
	count := m.VertexCount()
	interleaved := make([]float32, 0, count*8)
	for i := 0; i < count; i++ {
		interleaved = append(interleaved,
			m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2],
			m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2],
			m.UVs[i*2], m.UVs[i*2+1],
		)
	}

	b := &chunkBuffers{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, gl.Ptr(interleaved), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)
	return b
}

func deleteBuffers(b *chunkBuffers) {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
}
