package ar

import (
	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/engine/scene"
)

// PopulateFunc attaches visual entities to a freshly created node.
type PopulateFunc func(*scene.Node) error

// Registry owns the mapping from detected image anchors to scene nodes.
// One anchor maps to exactly one node; re-reported identities are ignored.
// All methods run on the render thread.
type Registry struct {
	scene    *scene.Scene
	nodes    map[AnchorID]*scene.Node
	populate PopulateFunc
	log      *zap.Logger

	// OnRegistered, if set, fires after a node has been created and
	// populated for a new anchor. The demo hooks the detection chime here.
	OnRegistered func(id AnchorID, n *scene.Node)
}

// NewRegistry creates a registry feeding nodes into s. populate runs once
// per new anchor, after the node is in the scene.
func NewRegistry(s *scene.Scene, populate PopulateFunc, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		scene:    s,
		nodes:    make(map[AnchorID]*scene.Node),
		populate: populate,
		log:      log,
	}
}

// Bind subscribes the registry to a session's anchor events.
func (r *Registry) Bind(session Session) {
	session.OnAnchorAdded(r.HandleAnchorsAdded)
}

// HandleAnchorsAdded processes one batch of newly detected anchors.
// Non-image anchors are skipped; already-registered identities are left
// untouched. For each new image anchor a node is created at the anchor
// pose, attached to the scene and then populated, in that order.
func (r *Registry) HandleAnchorsAdded(batch []Anchor) {
	for _, a := range batch {
		if a.Kind != KindImage {
			continue
		}
		if _, ok := r.nodes[a.ID]; ok {
			continue
		}

		n := scene.NewNode(string(a.ID), a.Pose)
		r.nodes[a.ID] = n
		r.scene.Attach(n)

		if err := r.populate(n); err != nil {
			// Recoverable: the node stays registered with whatever
			// entities made it on.
			r.log.Warn("anchor population incomplete",
				zap.String("anchor", string(a.ID)), zap.Error(err))
		}

		r.log.Info("image anchor registered",
			zap.String("anchor", string(a.ID)),
			zap.Int("entities", len(n.Children())))

		if r.OnRegistered != nil {
			r.OnRegistered(a.ID, n)
		}
	}
}

// HandleAnchorsRemoved is where anchor-loss cleanup would go. The demo
// keeps content visible once placed, so this is a no-op.
func (r *Registry) HandleAnchorsRemoved(batch []Anchor) {}

// Node returns the node registered for an anchor, if any.
func (r *Registry) Node(id AnchorID) (*scene.Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Len returns the number of registered anchors.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// EachNode calls fn for every registered node. The animation driver walks
// the registry through this.
func (r *Registry) EachNode(fn func(n *scene.Node)) {
	for _, n := range r.nodes {
		fn(n)
	}
}
