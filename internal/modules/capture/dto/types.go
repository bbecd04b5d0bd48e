package dto

type PhotoOutput struct {
	Path string `json:"path"`
}

type StillInput struct {
	Seq    int
	Width  int
	Height int
}
