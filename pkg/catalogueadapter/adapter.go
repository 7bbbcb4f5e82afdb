// Package catalogueadapter adapts github.com/go-mclib/data's
// per-version block table to the catalogue.GameData interface, so a
// production caller gets a real table instead of a hand-rolled test
// fake. This is the same package go-mclib-client's physics module
// (pkg/client/modules/physics/blocks.go) resolves its own water/lava
// ids through.
package catalogueadapter

import (
	"strings"

	"github.com/go-mclib/data/pkg/data/blocks"
)

// Adapter looks up block ids by their bare (non-namespaced) name,
// trying the "minecraft:" namespace go-mclib/data registers blocks
// under.
type Adapter struct{}

// New returns a ready-to-use Adapter.
func New() *Adapter { return &Adapter{} }

// BlockID implements catalogue.GameData.
func (Adapter) BlockID(name string) (int32, bool) {
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	id := blocks.BlockID(name)
	if id == 0 {
		return 0, false
	}
	return id, true
}
