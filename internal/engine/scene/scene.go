package scene

// RenderScene is the registry of models visible to the renderer. It issues
// each attached model a unique identifier.
type RenderScene struct {
	name        string
	models      []*Model
	nextModelID uint32
}

// NewRenderScene creates an empty scene registry.
func NewRenderScene(name string) *RenderScene {
	return &RenderScene{name: name}
}

// Name returns the scene name.
func (s *RenderScene) Name() string {
	return s.name
}

// GenerateModelID issues the next unique model identifier.
func (s *RenderScene) GenerateModelID() uint32 {
	id := s.nextModelID
	s.nextModelID++
	return id
}

// AddModel attaches the model to this scene and registers it.
func (s *RenderScene) AddModel(m *Model) {
	m.attachToScene(s)
	s.models = append(s.models, m)
}

// RemoveModel unregisters the model. The model keeps its id; ids are never
// reused within a scene.
func (s *RenderScene) RemoveModel(m *Model) {
	for i, candidate := range s.models {
		if candidate == m {
			s.models = append(s.models[:i], s.models[i+1:]...)
			m.detachFromScene()
			return
		}
	}
}

// Models returns the registered models in attach order.
func (s *RenderScene) Models() []*Model {
	return s.models
}
