// Package core implements the extension framework shared by every document
// format: namespace resolution, the dialect registry, discovery of attached
// extensions from markup, the namespace pre-scan used before writing, and
// deterministic ordering of model values.
package core
