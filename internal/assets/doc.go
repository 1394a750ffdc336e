// Package assets provides the stylesheets linked from rendered pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in reset, main and blog styles (go:embed)
//	    ├── FilesystemLoader  - styles from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// Rendered pages reference stylesheets by href (see Hrefs) rather than
// embedding them, so a directory of pages shares one copy of each file.
// Publish writes the resolved files into that directory. For PDF output the
// same styles are concatenated with LoadStyles and inlined instead.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are restricted to letters, digits, '-' and '_'.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
