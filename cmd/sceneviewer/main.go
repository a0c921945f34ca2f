// Package main is the entry point for the scene viewer demo. It spawns a
// grid of spinning cube models that share materials, driving the scene
// core's per-frame update path against a real OpenGL device.
package main

import (
	"fmt"
	gomath "math"
	"os"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/quellex/renderscene/internal/config"
	"github.com/quellex/renderscene/internal/engine/camera"
	"github.com/quellex/renderscene/internal/engine/gfx"
	"github.com/quellex/renderscene/internal/engine/gfx/gldevice"
	"github.com/quellex/renderscene/internal/engine/scene"
	"github.com/quellex/renderscene/internal/engine/window"
	"github.com/quellex/renderscene/internal/logger"
	"github.com/quellex/renderscene/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Scene Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Scene Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	device := gldevice.New()

	mesh, vao, err := buildCubeMesh(device)
	if err != nil {
		return fmt.Errorf("build cube mesh: %w", err)
	}
	defer gl.DeleteVertexArrays(1, &vao)

	mat := gldevice.NewMaterial("cube", gldevice.NewPass(cubeVertexShader, cubeFragmentShader))

	modelCount := cfg.Viewer.ModelCount
	if modelCount > cfg.Scene.MaxModels {
		logger.Warn("model count exceeds scene cap, clamping",
			zap.Int("requested", modelCount),
			zap.Int("max", cfg.Scene.MaxModels),
		)
		modelCount = cfg.Scene.MaxModels
	}

	sc := scene.NewRenderScene(cfg.Scene.Name)
	models, nodes, err := spawnModels(sc, device, mesh, mat, modelCount)
	if err != nil {
		return fmt.Errorf("spawn models: %w", err)
	}
	defer func() {
		for _, m := range models {
			m.Destroy()
		}
	}()
	logger.Info("scene populated",
		zap.String("scene", sc.Name()),
		zap.Int("models", len(models)),
	)

	cam := camera.NewOrbitCamera(cfg.Viewer.CameraDistance)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.08, 0.09, 0.11, 1.0)

	last := time.Now()
	frames := 0
	fpsTimer := time.Now()

	for !window.PollQuit() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		// Animate: spin every node, which flags its transform dirty
		for i, n := range nodes {
			angle := cfg.Viewer.SpinSpeed * dt * (1 + 0.1*float32(i))
			spin := math.QuatFromAxisAngle(math.Vec3{X: 0.3, Y: 1, Z: 0}.Normalize(), angle)
			n.SetRotation(n.Rotation().Mul(spin))
		}
		cam.Orbit(math.Vec2{X: 0.25 * dt})

		// Per-frame model update pass
		for _, m := range models {
			m.UpdateTransform()
			m.UpdateUBOs()
		}

		w, h := win.GetSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		viewProj := cam.ViewProjection(float32(w) / float32(h))
		drawModels(models, vao, viewProj)

		win.SwapBuffers()

		frames++
		if cfg.Viewer.ShowFPS && time.Since(fpsTimer) >= time.Second {
			win.SetTitle(fmt.Sprintf("Scene Viewer — %d fps", frames))
			frames = 0
			fpsTimer = time.Now()
		}

		if d := frameDelay(cfg.Graphics.FPSLimit, time.Since(now)); d > 0 {
			time.Sleep(d)
		}
	}

	return nil
}

// frameDelay returns how long the loop should sleep to hold the frame rate
// at limit, given the time already spent on this frame. A limit of zero
// disables the cap.
func frameDelay(limit int, elapsed time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	target := time.Second / time.Duration(limit)
	if elapsed >= target {
		return 0
	}
	return target - elapsed
}

// spawnModels lays out count cube models in a square grid. Every model
// shares the same material, so each compiles the pipeline state set once
// regardless of sub-model count.
func spawnModels(sc *scene.RenderScene, device gfx.Device, mesh *scene.SubMesh, mat *gldevice.Material, count int) ([]*scene.Model, []*scene.Node, error) {
	side := int(gomath.Ceil(gomath.Sqrt(float64(count))))
	spacing := float32(2.5)
	offset := float32(side-1) * spacing / 2

	models := make([]*scene.Model, 0, count)
	nodes := make([]*scene.Node, 0, count)
	for i := 0; i < count; i++ {
		n := scene.NewNode(fmt.Sprintf("cube-%d", i))
		n.SetPosition(math.Vec3{
			X: float32(i%side)*spacing - offset,
			Z: float32(i/side)*spacing - offset,
		})

		m := scene.NewModel()
		if err := m.Initialize(device); err != nil {
			return nil, nil, err
		}
		m.AttachNode(n)
		if err := m.SetSubModel(0, mesh, mat); err != nil {
			return nil, nil, err
		}
		min := math.Vec3{X: -1, Y: -1, Z: -1}
		max := math.Vec3{X: 1, Y: 1, Z: 1}
		m.SetModelBounds(&min, &max)
		m.SetKey(n.Name())
		sc.AddModel(m)

		models = append(models, m)
		nodes = append(nodes, n)
	}
	return models, nodes, nil
}

func drawModels(models []*scene.Model, vao uint32, viewProj math.Mat4) {
	gl.BindVertexArray(vao)
	for _, m := range models {
		if !m.Enabled() {
			continue
		}
		for i := 0; i < m.SubModelCount(); i++ {
			sm := m.SubModelAt(i)
			if sm == nil {
				continue
			}
			for _, state := range sm.PipelineStates() {
				ps := state.(*gldevice.PipelineState)
				ps.Bind()
				loc := gldevice.GetUniform(ps.Program(), "uViewProj")
				gl.UniformMatrix4fv(loc, 1, false, viewProj.Ptr())
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(sm.SubMesh().IndexCount), gl.UNSIGNED_INT, 0)
			}
		}
	}
	gl.BindVertexArray(0)
}

// buildCubeMesh uploads a unit cube and returns its sub-mesh descriptor
// along with the VAO describing the vertex layout.
func buildCubeMesh(device gfx.Device) (*scene.SubMesh, uint32, error) {
	vertices, indices := cubeGeometry()

	vbuf, err := device.CreateBuffer(gfx.BufferInfo{
		Usage:  gfx.BufferUsageVertex,
		Memory: gfx.MemoryUsageDevice,
		Size:   uint32(len(vertices) * 4),
		Stride: 6 * 4,
	})
	if err != nil {
		return nil, 0, err
	}
	if err := vbuf.Update(floatBytes(vertices)); err != nil {
		return nil, 0, err
	}

	ibuf, err := device.CreateBuffer(gfx.BufferInfo{
		Usage:  gfx.BufferUsageIndex,
		Memory: gfx.MemoryUsageDevice,
		Size:   uint32(len(indices) * 4),
		Stride: 4,
	})
	if err != nil {
		return nil, 0, err
	}
	if err := ibuf.Update(uintBytes(indices)); err != nil {
		return nil, 0, err
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbuf.(*gldevice.Buffer).Handle())
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibuf.(*gldevice.Buffer).Handle())
	gl.BindVertexArray(0)

	return &scene.SubMesh{
		Vertices:   vbuf,
		Indices:    ibuf,
		IndexCount: uint32(len(indices)),
	}, vao, nil
}

// cubeGeometry returns interleaved position+normal vertices and triangle
// indices for a unit cube centered at the origin.
func cubeGeometry() ([]float32, []uint32) {
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	}

	var vertices []float32
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(vertices) / 6)
		for _, c := range f.corners {
			vertices = append(vertices, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

func floatBytes(f []float32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}

func uintBytes(u []uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&u[0])), len(u)*4)
}

const cubeVertexShader = `#version 410 core
layout(std140) uniform LocalBlock {
    mat4 uWorld;
    mat4 uWorldIT;
};
uniform mat4 uViewProj;

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;

out vec3 vNormal;

void main() {
    vNormal = mat3(uWorldIT) * aNormal;
    gl_Position = uViewProj * uWorld * vec4(aPos, 1.0);
}
`

const cubeFragmentShader = `#version 410 core
in vec3 vNormal;
out vec4 fragColor;

void main() {
    vec3 lightDir = normalize(vec3(0.4, 0.8, 0.5));
    float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
    vec3 base = vec3(0.55, 0.65, 0.85);
    fragColor = vec4(base * (0.25 + 0.75 * diffuse), 1.0);
}
`
