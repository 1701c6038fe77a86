package assets

import "embed"

// Built-in keypoint template definitions shipped with pixelmark. User-defined
// templates from the configured template directory are merged on top.
//
//go:embed templates/*.yaml
var embeddedTemplates embed.FS

// Templates returns the embedded template filesystem rooted at "templates".
func Templates() embed.FS {
	return embeddedTemplates
}
