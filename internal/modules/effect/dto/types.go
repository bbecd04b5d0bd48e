package dto

type PluginInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type EffectInfo struct {
	Plugin      string
	ID          string
	Title       string
	Description string
}
