// Package loader provides the plugin-like feature loading system.
//
// Each feature (patreon, dragonite, reconcile, history) implements the Feature interface and
// registers its own routes. The start command registers every feature with a Manager and calls
// LoadAll once the shared middleware is in place.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
