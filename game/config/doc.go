// Package config provides map configuration management for Pipeworks.
//
// The config package handles:
//   - Loading map configurations from JSON or YAML files
//   - Configuration validation and defaulting
//   - Default configuration management
//   - Configuration discovery and listing
//   - Resolving the tile catalog a map refers to
//
// Configuration Format:
//
// Map configurations live in the configs directory as .json, .yaml or .yml
// files. Each configuration defines:
//   - Map dimensions in cells and the tile size in world units
//   - An optional tile catalog file, relative to the configs directory
//   - Colors for the normal and engineering pipe views
//   - Debug grid and camera settings
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	mapConfig, err := manager.LoadConfig("workshop")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tiles, err := manager.LoadCatalog(mapConfig)
//
// Default Selection:
//
// The default is "classic" when present, otherwise the first valid config in
// name order, otherwise a built-in minimal map.
package config
