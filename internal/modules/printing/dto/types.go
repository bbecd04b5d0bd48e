package dto

type SubmitInput struct {
	ArtifactPath string `json:"path"`
	Printer      string `json:"printer,omitempty"`
}
