// Package assets provides the CSS themes of the HTML export.
//
// # Loader Architecture
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes compiled into the binary
//	    ├── FilesystemLoader  - themes from a user directory
//	    └── Resolver          - custom directory first, built-ins as fallback
//
// A theme is a single stylesheet named {name}.css. Built-in themes are
// default, dark, and print. A custom directory may add themes or replace a
// built-in one by reusing its name.
//
// # Security
//
// Theme names are validated so they cannot name paths. FilesystemLoader
// resolves symlinks and rejects files outside its directory.
package assets
