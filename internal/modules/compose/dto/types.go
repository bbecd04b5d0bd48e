package dto

type ComposeInput struct {
	PhotoPaths []string `json:"selected_paths"`
	Filter     string   `json:"filter"`
	TemplateID string   `json:"template_id"`
	// Policy is optional; empty selects the canonical fill-crop placement.
	Policy string `json:"policy,omitempty"`
}

type ComposeOutput struct {
	Path string `json:"path"`
}
